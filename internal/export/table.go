// Package export renders categorized work orders as report tables and writes
// them to local files.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// Columns is the header row shared by every report destination.
var Columns = []string{
	"Work Order ID",
	"Work Order No",
	"Company",
	"Builder",
	"Project",
	"Month",
	"Year",
	"Description",
	"Services",
	"Quality",
	"Profile",
	"Categories",
	"Caveats",
	"File",
}

// Table returns the header followed by one row per work order, newest
// extraction first.
func Table(rows []service.ReportRow) [][]any {
	sorted := make([]service.ReportRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WorkOrder.ExtractedAt.After(sorted[j].WorkOrder.ExtractedAt)
	})

	values := make([][]any, 0, len(sorted)+1)
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	values = append(values, header)

	for _, r := range sorted {
		values = append(values, Row(r))
	}
	return values
}

// Row renders a single work order.
func Row(r service.ReportRow) []any {
	wo := r.WorkOrder

	var year any = ""
	if wo.Year != nil {
		year = *wo.Year
	}

	profile, categories, caveats := "", "", ""
	if r.Categorization != nil {
		profile = r.Categorization.Profile
		categories = r.Categorization.Text
		caveats = FormatCaveats(r.Categorization.Caveats)
	}

	return []any{
		wo.ID,
		wo.Number,
		wo.CompanyName,
		wo.BuilderName,
		wo.ProjectName,
		wo.Month,
		year,
		wo.Description,
		ServiceSummary(wo),
		fmt.Sprintf("%.2f", wo.QualityScore),
		profile,
		categories,
		caveats,
		wo.FileURL,
	}
}

// ServiceSummary renders the service lines one per line.
func ServiceSummary(wo model.WorkOrder) string {
	if wo.ServiceStatus == model.ServicesNone || len(wo.Services) == 0 {
		return string(wo.ServiceStatus)
	}

	lines := make([]string, 0, len(wo.Services))
	for _, s := range wo.Services {
		line := s.ServiceType + " " + s.Date
		if s.Quantity != nil {
			line += fmt.Sprintf(" qty %g", *s.Quantity)
		}
		if s.Hours != nil {
			line += fmt.Sprintf(" %gh", *s.Hours)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatCaveats renders caveats as "KIND: original -> label" lines.
func FormatCaveats(caveats []model.Caveat) string {
	if len(caveats) == 0 {
		return ""
	}
	lines := make([]string, 0, len(caveats))
	for _, c := range caveats {
		lines = append(lines, fmt.Sprintf("%s: %s -> %s", c.Kind, c.Original, c.Label))
	}
	return strings.Join(lines, "\n")
}

// CategoryColumns is the header row of the per-category report.
var CategoryColumns = []string{"Work Order ID", "Company", "Profile", "Category", "Blocks/Lots/Units"}

// CategoryTable returns one row per categorization entry, in entry order.
// Work orders without a categorization contribute no rows.
func CategoryTable(rows []service.ReportRow) [][]any {
	header := make([]any, len(CategoryColumns))
	for i, c := range CategoryColumns {
		header[i] = c
	}
	values := [][]any{header}

	for _, r := range rows {
		if r.Categorization == nil {
			continue
		}
		for _, e := range r.Categorization.Entries {
			values = append(values, []any{
				r.WorkOrder.ID,
				r.WorkOrder.CompanyName,
				r.Categorization.Profile,
				e.Label,
				e.Locations,
			})
		}
	}
	return values
}
