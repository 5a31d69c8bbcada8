package reservation

// Booking is the minimal projection of a stored reservation used by capacity and
// duplicate checks.
type Booking struct {
	ID        string
	Date      Date
	Time      TimeOfDay
	PartySize int
	Status    Status
}

type SlotRequest struct {
	Date      Date
	Time      TimeOfDay
	PartySize int
}

type Availability struct {
	Available         bool
	RemainingCapacity int
	// Known is false when the existing bookings could not be read and the result is
	// the optimistic default.
	Known bool
}

// CheckAvailability is advisory. The storage layer re-checks capacity when inserting.
func CheckAvailability(s *Settings, existing []Booking, candidate SlotRequest) Availability {
	booked := BookedPartySize(existing, candidate.Date, candidate.Time)

	remaining := s.maxCapacityPerSlot - booked
	if remaining < 0 {
		remaining = 0
	}

	return Availability{
		Available:         booked+candidate.PartySize <= s.maxCapacityPerSlot,
		RemainingCapacity: remaining,
		Known:             true,
	}
}

// UnknownAvailability is returned when existing bookings are unreadable.
func UnknownAvailability(s *Settings) Availability {
	return Availability{
		Available:         true,
		RemainingCapacity: s.maxCapacityPerSlot,
		Known:             false,
	}
}

// BookedPartySize sums party sizes holding capacity in the given slot.
func BookedPartySize(bookings []Booking, date Date, t TimeOfDay) int {
	total := 0
	for _, b := range bookings {
		if b.Date != date || b.Time != t || !b.Status.HoldsCapacity() {
			continue
		}
		total += b.PartySize
	}
	return total
}
