package appointments

import "fmt"

// The daily booking window runs 18:00 inclusive to 22:00 exclusive in
// 30-minute increments.
const (
	slotWindowStartHour = 18
	slotWindowEndHour   = 22
)

// CanonicalSlots returns every bookable slot of a day in ascending order.
// The sequence is the same for every date.
func CanonicalSlots() []string {
	slots := make([]string, 0, (slotWindowEndHour-slotWindowStartHour)*2)
	for hour := slotWindowStartHour; hour < slotWindowEndHour; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}
	return slots
}

// AvailableSlots filters the canonical sequence down to the slots not present
// in booked, preserving order. Booked entries are compared verbatim; strings
// that match no canonical slot have no effect.
func AvailableSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	canonical := CanonicalSlots()
	available := make([]string, 0, len(canonical))
	for _, slot := range canonical {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available
}
