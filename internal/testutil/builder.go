package testutil

import (
	"fmt"
	"time"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// DefaultExtractedAt is the extraction time used by WorkOrderBuilder.
var DefaultExtractedAt = time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC)

// WorkOrderBuilder builds valid work orders for tests.
//
// Example:
//
//	order := testutil.NewWorkOrderBuilder().
//		WithNumber("777").
//		WithCompany("Aeon Landscaping").
//		WithDescription("Sod lots 4 and 5").
//		Build()
type WorkOrderBuilder struct {
	order model.WorkOrder
}

// NewWorkOrderBuilder starts from a complete AE3 work order with no services.
func NewWorkOrderBuilder() *WorkOrderBuilder {
	year := 2018
	return &WorkOrderBuilder{order: model.WorkOrder{
		Number:        "12345",
		BuilderName:   "BROOKFIELD HOMES",
		ProjectName:   "PINEHURST",
		Month:         "MAY",
		Year:          &year,
		CompanyName:   "AE3 Excavating",
		Description:   "Loading fill from stockpile",
		ExtractedAt:   DefaultExtractedAt,
		ServiceStatus: model.ServicesNone,
		QualityScore:  1,
	}}
}

// WithNumber sets the work order number.
func (b *WorkOrderBuilder) WithNumber(number string) *WorkOrderBuilder {
	b.order.Number = number
	return b
}

// WithCompany sets the company name.
func (b *WorkOrderBuilder) WithCompany(company string) *WorkOrderBuilder {
	b.order.CompanyName = company
	return b
}

// WithDescription sets the description.
func (b *WorkOrderBuilder) WithDescription(description string) *WorkOrderBuilder {
	b.order.Description = description
	return b
}

// WithQuality sets the data quality score.
func (b *WorkOrderBuilder) WithQuality(score float64) *WorkOrderBuilder {
	b.order.QualityScore = score
	return b
}

// WithFileURL sets the source file URL.
func (b *WorkOrderBuilder) WithFileURL(url string) *WorkOrderBuilder {
	b.order.FileURL = url
	return b
}

// WithExtractedAt sets the extraction time.
func (b *WorkOrderBuilder) WithExtractedAt(at time.Time) *WorkOrderBuilder {
	b.order.ExtractedAt = at
	return b
}

// WithService appends a service line.
func (b *WorkOrderBuilder) WithService(serviceType, date string, hours float64) *WorkOrderBuilder {
	slot := len(b.order.Services) + 1
	b.order.Services = append(b.order.Services, model.ServiceLineItem{
		Slot:        slot,
		Line:        1,
		ServiceType: serviceType,
		Date:        date,
		Hours:       &hours,
	})
	b.order.ServiceStatus = model.ServicesFound
	return b
}

// Build returns the work order. ID and file URL are derived from the number
// and extraction time when not set.
func (b *WorkOrderBuilder) Build() model.WorkOrder {
	order := b.order
	order.Services = append([]model.ServiceLineItem(nil), b.order.Services...)
	if order.ID == "" {
		order.ID = fmt.Sprintf("%s_%d", order.Number, order.ExtractedAt.UnixMilli())
	}
	if order.FileURL == "" {
		order.FileURL = fmt.Sprintf("scans/%s.pdf", order.Number)
	}
	return order
}
