package sheets

import (
	"fmt"

	"github.com/Veraticus/work-order-flow/internal/export"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// Tab titles written by the Writer.
const (
	WorkOrdersTab = export.WorkOrdersSheet
	CategoriesTab = export.CategoriesSheet
)

// tab is one worksheet and the values written to it.
type tab struct {
	title  string
	values [][]any
}

func prepareTabs(rows []service.ReportRow) []tab {
	return []tab{
		{title: WorkOrdersTab, values: export.Table(rows)},
		{title: CategoriesTab, values: export.CategoryTable(rows)},
	}
}

func (t tab) columns() int {
	if len(t.values) == 0 {
		return 0
	}
	return len(t.values[0])
}

// a1 returns an A1-notation range anchored at the given 1-based row.
func a1(title string, row int) string {
	return fmt.Sprintf("'%s'!A%d", title, row)
}

func wholeSheet(title string) string {
	return fmt.Sprintf("'%s'!A:Z", title)
}
