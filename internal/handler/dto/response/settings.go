package response

import (
	"time"

	"table-reservation/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type SettingsResponse struct {
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
	Fallback            bool      `json:"fallback,omitempty"`
}

func FromSettingsView(v *queries.SettingsView) (*SettingsResponse, error) {
	res := &SettingsResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}
