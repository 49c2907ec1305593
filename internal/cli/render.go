package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// companyCell shows the company as read next to its corrected name when the
// two differ.
func companyCell(wo model.WorkOrder) string {
	if wo.CompanyRaw == "" || strings.EqualFold(wo.CompanyRaw, wo.CompanyName) {
		return wo.CompanyName
	}
	return fmt.Sprintf("%s (%s)", wo.CompanyName, wo.CompanyRaw)
}

// RenderWorkOrder renders a work order's header fields and service lines.
func RenderWorkOrder(wo model.WorkOrder) string {
	year := model.Placeholder
	if wo.Year != nil {
		year = strconv.Itoa(*wo.Year)
	}

	var b strings.Builder
	rows := [][2]string{
		{"Work order", wo.Number},
		{"Company", companyCell(wo)},
		{"Builder", wo.BuilderName},
		{"Project", wo.ProjectName},
		{"Period", wo.Month + " " + year},
		{"Description", wo.Description},
		{"Quality", fmt.Sprintf("%.2f", wo.QualityScore)},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(fmt.Sprintf("%-12s", r[0]+":")), r[1])
	}

	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Services"))
	b.WriteString("\n")
	if len(wo.Services) == 0 {
		b.WriteString(SubtleStyle.Render("  none (" + string(wo.ServiceStatus) + ")"))
		b.WriteString("\n")
	}
	for _, s := range wo.Services {
		fmt.Fprintf(&b, "  %s  %-8s qty %-6s hours %s\n",
			fmt.Sprintf("%-14s", s.ServiceType), s.Date, formatNumber(s.Quantity), formatNumber(s.Hours))
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderCategorization renders category entries and any caveats.
func RenderCategorization(entries []model.CategoryPair, caveats []model.Caveat) string {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(SubtleStyle.Render(model.NoCategorization))
	}
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n  %s", LabelStyle.Render(e.Label), e.Locations)
	}

	for _, c := range caveats {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%s %s: %q -> %q", WarningIcon, c.Kind, c.Original, c.Label)))
	}
	return b.String()
}

// RenderStats renders the result of a pipeline run.
func RenderStats(title string, stats *service.CompletionStats) string {
	lines := []string{
		fmt.Sprintf("Documents: %d", stats.Total),
		SuccessStyle.Render(fmt.Sprintf("Processed: %d", stats.Processed)),
		SubtleStyle.Render(fmt.Sprintf("Skipped:   %d", stats.Skipped)),
	}
	if stats.Empty > 0 {
		lines = append(lines, WarningStyle.Render(fmt.Sprintf("Empty:     %d", stats.Empty)))
	}
	if stats.Failed > 0 {
		lines = append(lines, ErrorStyle.Render(fmt.Sprintf("Failed:    %d", stats.Failed)))
	}
	lines = append(lines, fmt.Sprintf("Duration:  %s", stats.Duration.Round(1e6)))
	return RenderBox(title, strings.Join(lines, "\n"))
}

func formatNumber(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
