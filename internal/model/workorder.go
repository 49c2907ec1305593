// Package model defines the core domain models used throughout the application.
package model

import "time"

// Placeholder is the literal the extraction protocol writes for a field that
// is not present on the document.
const Placeholder = "N/A"

// ServiceStatus tells whether service lines have been assembled for a work order.
type ServiceStatus string

// Service status constants.
const (
	ServicesPending ServiceStatus = "PENDING"
	ServicesFound   ServiceStatus = "FOUND"
	ServicesNone    ServiceStatus = "NONE"
)

// ServiceLineItem is one dated line of work from the service table.
type ServiceLineItem struct {
	Quantity    *float64
	Hours       *float64
	ServiceType string
	Date        string
	Slot        int
	Line        int
}

// IsContinuation reports whether the item came from a slot's second line.
func (s ServiceLineItem) IsContinuation() bool {
	return s.Line > 1
}

// WorkOrder is the structured record extracted from one scanned document.
type WorkOrder struct {
	ExtractedAt   time.Time
	Year          *int
	ID            string
	Number        string
	BuilderName   string
	ProjectName   string
	Month         string
	CompanyName   string
	// CompanyRaw is the company name as read from the document, before
	// correction.
	CompanyRaw    string
	Description   string
	FileURL       string
	ServiceStatus ServiceStatus
	Services      []ServiceLineItem
	QualityScore  float64
}

// HasDescription reports whether the work order carries a usable description.
func (w *WorkOrder) HasDescription() bool {
	return w.Description != "" && w.Description != Placeholder
}

// CompanyLabel returns the corrected company name, or the name read from the
// document when correction did not recognize it.
func (w *WorkOrder) CompanyLabel() string {
	if w.CompanyName == Placeholder && w.CompanyRaw != "" && w.CompanyRaw != Placeholder {
		return w.CompanyRaw
	}
	return w.CompanyName
}
