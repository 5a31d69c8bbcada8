package request

import (
	"table-reservation/internal/domain/reservation"
)

// CreateReservationRequest leaves required-field checks to the domain validator so
// that missing fields are reported with the same codes for every client.
type CreateReservationRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       *int   `json:"partySize"`
	SpecialRequests string `json:"specialRequests,omitempty" binding:"max=1000"`
	Occasion        string `json:"occasion,omitempty" binding:"max=100"`
	TablePreference string `json:"tablePreference,omitempty" binding:"max=100"`
}

func (r CreateReservationRequest) ToDomain(caller reservation.CallerIdentity) reservation.Request {
	return reservation.Request{
		Caller:          caller,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
		Occasion:        r.Occasion,
		TablePreference: r.TablePreference,
	}
}

// CancelReservationRequest identifies a guest by the email used when booking.
// Authenticated callers send an empty body.
type CancelReservationRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}

type AvailabilityQuery struct {
	Date      string `form:"date" binding:"required"`
	PartySize int    `form:"partySize" binding:"omitempty,min=1"`
}

type ListReservationsQuery struct {
	Email string `form:"email" binding:"omitempty,email"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed no_show declined"`
}
