package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          *uuid.UUID `json:"userId,omitempty"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	CustomerPhone   string     `json:"customerPhone"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	PartySize       int        `json:"partySize"`
	Status          string     `json:"status"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	Occasion        string     `json:"occasion,omitempty"`
	TablePreference string     `json:"tablePreference,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type SlotAvailabilityView struct {
	Time              string `json:"time"`
	Available         bool   `json:"available"`
	RemainingCapacity int    `json:"remainingCapacity"`
}

// AvailabilityView describes one date for display. It is advisory; booking
// re-checks everything.
type AvailabilityView struct {
	Date      string `json:"date"`
	PartySize int    `json:"partySize"`
	Open      bool   `json:"open"`
	// ClosedReason is a validation code when the date cannot be booked at all.
	ClosedReason string `json:"closedReason,omitempty"`
	// CapacityKnown is false when existing bookings could not be read.
	CapacityKnown bool `json:"capacityKnown"`
	// SettingsFallback is true when default settings were used for display.
	SettingsFallback bool                   `json:"settingsFallback"`
	Slots            []SlotAvailabilityView `json:"slots"`
}

// SettingsView represents read-optimized settings data
type SettingsView struct {
	OpeningTime         string    `json:"openingTime"`
	ClosingTime         string    `json:"closingTime"`
	SlotIntervalMinutes int       `json:"slotIntervalMinutes"`
	MaxCapacityPerSlot  int       `json:"maxCapacityPerSlot"`
	MinPartySize        int       `json:"minPartySize"`
	MaxPartySize        int       `json:"maxPartySize"`
	OperatingDays       []int     `json:"operatingDays"`
	AllowSameDayBooking bool      `json:"allowSameDayBooking"`
	AdvanceBookingDays  int       `json:"advanceBookingDays"`
	BlockedDates        []string  `json:"blockedDates"`
	TimeSlots           []string  `json:"timeSlots"`
	UpdatedAt           time.Time `json:"updatedAt"`
	// Fallback is true when the stored document could not be read.
	Fallback bool `json:"fallback"`
}
