package extract

import (
	"errors"
	"fmt"
)

// Header field indices of the extraction protocol.
const (
	FieldWorkOrderNumber = 1
	FieldBuilderName     = 2
	FieldProjectName     = 3
	FieldMonth           = 4
	FieldYear            = 5
	FieldCompany         = 6
	FieldDescription     = 7
)

// FieldCount is the number of fields the extraction protocol asks for.
const FieldCount = 35

// SlotLine identifies one line of the service table: Slot is 1..4 and Line is
// 1 for the primary line or 2 for the continuation line.
type SlotLine struct {
	Slot int
	Line int
}

// LineFields names the field indices that make up one service line.
// Continuation lines share the ServiceType index of their slot's primary line.
type LineFields struct {
	ServiceType int
	Date        int
	Quantity    int
	Hours       int
}

// LayoutEntry maps one service-table line to its field indices.
type LayoutEntry struct {
	Fields LineFields
	SlotLine
}

// Layout is the ordered service-table layout. Assembly emits lines in layout
// order.
type Layout []LayoutEntry

// ErrInvalidLayout is returned by Layout.Validate.
var ErrInvalidLayout = errors.New("invalid field layout")

// DefaultLayout returns the four-slot, two-line layout of the work-order form.
// A new slice is returned on every call.
func DefaultLayout() Layout {
	return Layout{
		{SlotLine: SlotLine{Slot: 1, Line: 1}, Fields: LineFields{ServiceType: 8, Date: 9, Quantity: 10, Hours: 11}},
		{SlotLine: SlotLine{Slot: 1, Line: 2}, Fields: LineFields{ServiceType: 8, Date: 12, Quantity: 13, Hours: 14}},
		{SlotLine: SlotLine{Slot: 2, Line: 1}, Fields: LineFields{ServiceType: 15, Date: 16, Quantity: 17, Hours: 18}},
		{SlotLine: SlotLine{Slot: 2, Line: 2}, Fields: LineFields{ServiceType: 15, Date: 19, Quantity: 20, Hours: 21}},
		{SlotLine: SlotLine{Slot: 3, Line: 1}, Fields: LineFields{ServiceType: 22, Date: 23, Quantity: 24, Hours: 25}},
		{SlotLine: SlotLine{Slot: 3, Line: 2}, Fields: LineFields{ServiceType: 22, Date: 26, Quantity: 27, Hours: 28}},
		{SlotLine: SlotLine{Slot: 4, Line: 1}, Fields: LineFields{ServiceType: 29, Date: 30, Quantity: 31, Hours: 32}},
		{SlotLine: SlotLine{Slot: 4, Line: 2}, Fields: LineFields{ServiceType: 29, Date: 33, Quantity: 34, Hours: 35}},
	}
}

// Lookup returns the fields for a slot line.
func (l Layout) Lookup(slot, line int) (LineFields, bool) {
	for _, entry := range l {
		if entry.Slot == slot && entry.Line == line {
			return entry.Fields, true
		}
	}
	return LineFields{}, false
}

// Validate checks that every index is positive, that no slot line appears
// twice and that date, quantity and hours indices are not shared between lines.
func (l Layout) Validate() error {
	seenLines := make(map[SlotLine]bool, len(l))
	owned := make(map[int]SlotLine)

	for _, entry := range l {
		if seenLines[entry.SlotLine] {
			return fmt.Errorf("%w: slot %d line %d declared twice", ErrInvalidLayout, entry.Slot, entry.Line)
		}
		seenLines[entry.SlotLine] = true

		f := entry.Fields
		for _, index := range []int{f.ServiceType, f.Date, f.Quantity, f.Hours} {
			if index <= 0 {
				return fmt.Errorf("%w: slot %d line %d has non-positive index %d", ErrInvalidLayout, entry.Slot, entry.Line, index)
			}
		}
		for _, index := range []int{f.Date, f.Quantity, f.Hours} {
			if other, taken := owned[index]; taken {
				return fmt.Errorf("%w: index %d used by slot %d line %d and slot %d line %d",
					ErrInvalidLayout, index, other.Slot, other.Line, entry.Slot, entry.Line)
			}
			owned[index] = entry.SlotLine
		}
	}

	return nil
}
