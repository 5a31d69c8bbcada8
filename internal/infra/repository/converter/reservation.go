package converter

import (
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra/pgsql"
	"table-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func DateToPg(d reservation.Date) pgtype.Date {
	return pgconv.DateToPgtype(d.Time())
}

func DateFromPg(pd pgtype.Date) reservation.Date {
	return reservation.DateOf(pgconv.DateFromPgtype(pd))
}

func TimeOfDayToPg(t reservation.TimeOfDay) pgtype.Time {
	return pgconv.SecondsToPgtypeTime(int(t))
}

func TimeOfDayFromPg(pt pgtype.Time) (reservation.TimeOfDay, error) {
	seconds, err := pgconv.SecondsFromPgtypeTime(pt)
	if err != nil {
		return 0, err
	}
	return reservation.TimeOfDay(seconds), nil
}

func StatusesToInfra(statuses []reservation.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func ReservationToCreateParams(res *reservation.Reservation) pgsql.CreateReservationParams {
	return pgsql.CreateReservationParams{
		ID:              res.ID(),
		UserID:          pgconv.UUIDPtrToPgtype(res.UserID()),
		CustomerName:    res.CustomerName(),
		CustomerEmail:   res.CustomerEmail(),
		CustomerPhone:   res.CustomerPhone(),
		ReservationDate: DateToPg(res.Date()),
		ReservationTime: TimeOfDayToPg(res.Time()),
		PartySize:       int32(res.PartySize()), // #nosec G115 -- bounded by MaxPartySizeLimit
		Status:          res.Status().String(),
		SpecialRequests: pgconv.StringToPgtype(res.SpecialRequests()),
		Occasion:        pgconv.StringToPgtype(res.Occasion()),
		TablePreference: pgconv.StringToPgtype(res.TablePreference()),
		CreatedAt:       pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

func ReservationFromInfra(row pgsql.Reservation) (*reservation.Reservation, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	tod, err := TimeOfDayFromPg(row.ReservationTime)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:              row.ID,
		UserID:          pgconv.UUIDPtrFromPgtype(row.UserID),
		CustomerName:    row.CustomerName,
		CustomerEmail:   row.CustomerEmail,
		CustomerPhone:   row.CustomerPhone,
		Date:            DateFromPg(row.ReservationDate),
		Time:            tod,
		PartySize:       int(row.PartySize),
		Status:          status,
		SpecialRequests: pgconv.StringFromPgtype(row.SpecialRequests),
		Occasion:        pgconv.StringFromPgtype(row.Occasion),
		TablePreference: pgconv.StringFromPgtype(row.TablePreference),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func BookingsFromInfra(rows []pgsql.BookingRow) ([]reservation.Booking, error) {
	out := make([]reservation.Booking, 0, len(rows))
	for _, row := range rows {
		status, err := reservation.ParseStatus(row.Status)
		if err != nil {
			return nil, err
		}
		tod, err := TimeOfDayFromPg(row.ReservationTime)
		if err != nil {
			return nil, err
		}
		out = append(out, reservation.Booking{
			ID:        row.ID.String(),
			Date:      DateFromPg(row.ReservationDate),
			Time:      tod,
			PartySize: int(row.PartySize),
			Status:    status,
		})
	}
	return out, nil
}

func SettingsToInfra(s *reservation.Settings, updatedAt time.Time) pgsql.UpsertReservationSettingsParams {
	days := s.OperatingDays()
	operatingDays := make([]int16, len(days))
	for i, d := range days {
		operatingDays[i] = int16(d) // #nosec G115 -- weekday is 0..6
	}

	blocked := s.BlockedDates()
	blockedDates := make([]pgtype.Date, len(blocked))
	for i, d := range blocked {
		blockedDates[i] = DateToPg(d)
	}

	// #nosec G115 -- settings values are validated to small positive ranges
	return pgsql.UpsertReservationSettingsParams{
		OpeningTime:         TimeOfDayToPg(s.OpeningTime()),
		ClosingTime:         TimeOfDayToPg(s.ClosingTime()),
		SlotIntervalMinutes: int32(s.SlotIntervalMinutes()),
		MaxCapacityPerSlot:  int32(s.MaxCapacityPerSlot()),
		MinPartySize:        int32(s.MinPartySize()),
		MaxPartySize:        int32(s.MaxPartySize()),
		OperatingDays:       operatingDays,
		AllowSameDayBooking: s.AllowSameDayBooking(),
		AdvanceBookingDays:  int32(s.AdvanceBookingDays()),
		BlockedDates:        blockedDates,
		UpdatedAt:           pgconv.TimeToPgtype(updatedAt),
	}
}

func SettingsFromInfra(row pgsql.ReservationSetting) (*reservation.Settings, error) {
	opening, err := TimeOfDayFromPg(row.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := TimeOfDayFromPg(row.ClosingTime)
	if err != nil {
		return nil, err
	}

	days := make([]reservation.Weekday, len(row.OperatingDays))
	for i, d := range row.OperatingDays {
		days[i] = reservation.Weekday(d)
	}

	blocked := make([]reservation.Date, len(row.BlockedDates))
	for i, d := range row.BlockedDates {
		blocked[i] = DateFromPg(d)
	}

	return reservation.NewSettings(reservation.SettingsParams{
		OpeningTime:         opening,
		ClosingTime:         closing,
		SlotIntervalMinutes: int(row.SlotIntervalMinutes),
		MaxCapacityPerSlot:  int(row.MaxCapacityPerSlot),
		MinPartySize:        int(row.MinPartySize),
		MaxPartySize:        int(row.MaxPartySize),
		OperatingDays:       days,
		AllowSameDayBooking: row.AllowSameDayBooking,
		AdvanceBookingDays:  int(row.AdvanceBookingDays),
		BlockedDates:        blocked,
		UpdatedAt:           pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}
