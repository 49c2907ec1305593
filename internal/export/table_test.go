package export

import (
	"testing"
	"time"

	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
	"github.com/Veraticus/work-order-flow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []service.ReportRow {
	older := testutil.NewWorkOrderBuilder().
		WithNumber("100").
		WithExtractedAt(testutil.DefaultExtractedAt.Add(-time.Hour)).
		WithService("325 DL", "05/16", 10).
		Build()
	newer := testutil.NewWorkOrderBuilder().
		WithNumber("200").
		WithCompany("Aeon Landscaping").
		Build()

	return []service.ReportRow{
		{
			WorkOrder: older,
			Categorization: &model.Categorization{
				WorkOrderID: older.ID,
				Profile:     "ae3",
				Text:        "Service: Loading Fill To Lots\nBlocks/Lots/Units: Lot 67",
				Entries: []model.CategoryPair{
					{Label: "Loading Fill To Lots", Locations: "Lot 67"},
					{Label: "Miscellaneous(Digging A Trench)", Locations: model.NotSpecified},
				},
				Caveats: []model.Caveat{
					{Kind: model.CaveatSubstituted, Original: "Loading Fill From Stockpile", Label: "Loading Fill To Lots"},
				},
			},
		},
		{WorkOrder: newer},
	}
}

func TestTable(t *testing.T) {
	values := Table(sampleRows())
	require.Len(t, values, 3)

	assert.Len(t, values[0], len(Columns))
	assert.Equal(t, "Work Order ID", values[0][0])

	// Newest extraction first.
	assert.Equal(t, "200", values[1][1])
	assert.Equal(t, "100", values[2][1])

	uncategorized := values[1]
	assert.Equal(t, "", uncategorized[10])
	assert.Equal(t, "", uncategorized[11])
	assert.Equal(t, string(model.ServicesNone), uncategorized[8])

	categorized := values[2]
	assert.Equal(t, 2018, categorized[6])
	assert.Equal(t, "325 DL 05/16 10h", categorized[8])
	assert.Equal(t, "1.00", categorized[9])
	assert.Equal(t, "ae3", categorized[10])
	assert.Contains(t, categorized[11], "Loading Fill To Lots")
	assert.Equal(t, "SUBSTITUTED: Loading Fill From Stockpile -> Loading Fill To Lots", categorized[12])
	assert.Equal(t, "scans/100.pdf", categorized[13])
}

func TestTable_DoesNotReorderInput(t *testing.T) {
	rows := sampleRows()
	_ = Table(rows)
	assert.Equal(t, "100", rows[0].WorkOrder.Number)
}

func TestRow_MissingYear(t *testing.T) {
	wo := testutil.NewWorkOrderBuilder().Build()
	wo.Year = nil

	row := Row(service.ReportRow{WorkOrder: wo})
	assert.Equal(t, "", row[6])
}

func TestServiceSummary(t *testing.T) {
	qty := 3.0
	tests := []struct {
		name  string
		want  string
		order model.WorkOrder
	}{
		{
			name:  "no services",
			order: model.WorkOrder{ServiceStatus: model.ServicesNone},
			want:  "NONE",
		},
		{
			name:  "pending",
			order: model.WorkOrder{ServiceStatus: model.ServicesPending},
			want:  "PENDING",
		},
		{
			name: "quantity without hours",
			order: model.WorkOrder{
				ServiceStatus: model.ServicesFound,
				Services: []model.ServiceLineItem{
					{ServiceType: "TRI-AXLE", Date: "05/16", Quantity: &qty},
				},
			},
			want: "TRI-AXLE 05/16 qty 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceSummary(tt.order))
		})
	}
}

func TestCategoryTable(t *testing.T) {
	values := CategoryTable(sampleRows())
	require.Len(t, values, 3)

	assert.Equal(t, "Category", values[0][3])
	assert.Equal(t, "Loading Fill To Lots", values[1][3])
	assert.Equal(t, "Lot 67", values[1][4])
	assert.Equal(t, "Miscellaneous(Digging A Trench)", values[2][3])
	assert.Equal(t, model.NotSpecified, values[2][4])
}

func TestFormatCaveats_Empty(t *testing.T) {
	assert.Equal(t, "", FormatCaveats(nil))
}
