package reservation

// GenerateSlots returns the bookable start times for date, stepping from opening time by
// the slot interval. A slot is only produced when the full interval fits before closing.
// Slots do not currently vary by date.
func GenerateSlots(s *Settings, _ Date) []TimeOfDay {
	step := TimeOfDayFromDuration(s.SlotInterval())
	if step <= 0 || s.closingTime <= s.openingTime {
		return nil
	}

	count := int((s.closingTime - s.openingTime) / step)
	slots := make([]TimeOfDay, 0, count)
	for t := s.openingTime; t+step <= s.closingTime; t += step {
		slots = append(slots, t)
	}
	return slots
}

// IsSlot reports whether t is one of the generated slots for date.
func IsSlot(s *Settings, date Date, t TimeOfDay) bool {
	for _, slot := range GenerateSlots(s, date) {
		if slot == t {
			return true
		}
	}
	return false
}
