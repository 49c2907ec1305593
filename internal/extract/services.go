package extract

import "github.com/Veraticus/work-order-flow/internal/model"

// ServiceResult is the outcome of service assembly. Status is ServicesNone
// when assembly ran and found no lines.
type ServiceResult struct {
	Status model.ServiceStatus
	Items  []model.ServiceLineItem
}

// AssembleServices rebuilds the service table from a FieldMap. A line is
// emitted only when both its service type and its date are present; its
// quantity and hours are coerced to numbers, becoming nil when not numeric.
// A skipped primary line does not suppress the slot's continuation line.
func AssembleServices(fields FieldMap, layout Layout) ServiceResult {
	var items []model.ServiceLineItem

	for _, entry := range layout {
		serviceType, ok := fields.Present(entry.Fields.ServiceType)
		if !ok {
			continue
		}
		date, ok := fields.Present(entry.Fields.Date)
		if !ok {
			continue
		}

		items = append(items, model.ServiceLineItem{
			ServiceType: serviceType,
			Date:        date,
			Quantity:    ParseNumber(fields.Value(entry.Fields.Quantity)),
			Hours:       ParseHours(fields.Value(entry.Fields.Hours)),
			Slot:        entry.Slot,
			Line:        entry.Line,
		})
	}

	if len(items) == 0 {
		return ServiceResult{Status: model.ServicesNone}
	}
	return ServiceResult{Status: model.ServicesFound, Items: items}
}
