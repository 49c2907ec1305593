package extract

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/work-order-flow/internal/model"
)

var headerFields = []int{
	FieldWorkOrderNumber,
	FieldBuilderName,
	FieldProjectName,
	FieldMonth,
	FieldYear,
	FieldCompany,
	FieldDescription,
}

// BuildWorkOrder assembles a work-order record from parsed fields. Missing
// header fields carry the placeholder value.
func BuildWorkOrder(fields FieldMap, layout Layout, fileURL string, extractedAt time.Time) model.WorkOrder {
	services := AssembleServices(fields, layout)
	number := fields.Value(FieldWorkOrderNumber)

	wo := model.WorkOrder{
		ID:            fmt.Sprintf("%s_%d", number, extractedAt.UnixMilli()),
		Number:        number,
		BuilderName:   fields.Value(FieldBuilderName),
		ProjectName:   fields.Value(FieldProjectName),
		Month:         fields.Value(FieldMonth),
		Year:          ParseYear(fields.Value(FieldYear)),
		CompanyName:   fields.Value(FieldCompany),
		Description:   trimQuotes(fields.Value(FieldDescription)),
		FileURL:       fileURL,
		ExtractedAt:   extractedAt,
		Services:      services.Items,
		ServiceStatus: services.Status,
	}
	wo.QualityScore = QualityScore(fields, len(services.Items))

	return wo
}

// QualityScore rates extraction completeness in [0, 1]: the share of header
// fields present, plus up to 0.2 for service lines (full bonus at four).
func QualityScore(fields FieldMap, serviceCount int) float64 {
	present := 0
	for _, index := range headerFields {
		if _, ok := fields.Present(index); ok {
			present++
		}
	}

	score := float64(present) / float64(len(headerFields))
	score += math.Min(float64(serviceCount)/4, 1) * 0.2

	return math.Min(score, 1)
}

// trimQuotes removes the quotation marks the extraction prompt asks the model
// to put around the description.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
