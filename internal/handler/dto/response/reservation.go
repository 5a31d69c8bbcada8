package response

import (
	"time"
	"unicode"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
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

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		CustomerName:    v.CustomerName,
		CustomerEmail:   v.CustomerEmail,
		CustomerPhone:   v.CustomerPhone,
		Date:            v.Date,
		Time:            v.Time,
		PartySize:       v.PartySize,
		Status:          v.Status,
		SpecialRequests: v.SpecialRequests,
		Occasion:        v.Occasion,
		TablePreference: v.TablePreference,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// Redact hides contact details and notes. Used for lookups proven only by an email address.
func (r *ReservationResponse) Redact() *ReservationResponse {
	r.CustomerPhone = maskPhone(r.CustomerPhone)
	r.SpecialRequests = ""
	return r
}

// maskPhone keeps the last four digits.
func maskPhone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, ch := range phone {
		if unicode.IsDigit(ch) {
			digits = append(digits, ch)
		}
	}
	if len(digits) <= 4 {
		return "****"
	}
	return "***" + string(digits[len(digits)-4:])
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

type CreateReservationResponse struct {
	Success       bool                 `json:"success"`
	ReservationID uuid.UUID            `json:"reservationId"`
	Status        string               `json:"status"`
	Reservation   *ReservationResponse `json:"reservation,omitempty"`
}

func NewCreateReservationResponse(id uuid.UUID, status reservation.Status, view *queries.ReservationView) *CreateReservationResponse {
	res := &CreateReservationResponse{
		Success:       true,
		ReservationID: id,
		Status:        status.String(),
	}
	if view != nil {
		res.Reservation = FromReservationView(view)
	}
	return res
}

type SlotAvailabilityResponse struct {
	Time              string `json:"time"`
	Available         bool   `json:"available"`
	RemainingCapacity int    `json:"remainingCapacity"`
}

type AvailabilityResponse struct {
	Date             string                     `json:"date"`
	PartySize        int                        `json:"partySize"`
	Open             bool                       `json:"open"`
	ClosedReason     string                     `json:"closedReason,omitempty"`
	CapacityKnown    bool                       `json:"capacityKnown"`
	SettingsFallback bool                       `json:"settingsFallback"`
	Slots            []SlotAvailabilityResponse `json:"slots"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	res := &AvailabilityResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	if res.Slots == nil {
		res.Slots = []SlotAvailabilityResponse{}
	}
	return res, nil
}
