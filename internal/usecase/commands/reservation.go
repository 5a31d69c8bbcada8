package commands

import (
	"context"
	"errors"
	"log/slog"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSettingsUnavailable = errs.New("reservation settings unavailable")
	ErrSlotConflict        = errs.New("time slot no longer available")
	ErrSlotFull            = errs.Mark(errs.New("time slot is fully booked"), ErrSlotConflict)
	ErrStorageUnavailable  = errs.New("reservation storage unavailable")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNotReservationOwner = errs.New("reservation not owned by caller")
	ErrInvalidTransition   = reservation.ErrInvalidTransition
)

type CreateReservationResult struct {
	ReservationID uuid.UUID
	Status        reservation.Status
}

type ReservationCommands interface {
	Create(ctx context.Context, req reservation.Request) (*CreateReservationResult, error)
	Cancel(ctx context.Context, id uuid.UUID, caller reservation.CallerIdentity) error
	UpdateStatus(ctx context.Context, id uuid.UUID, next reservation.Status) error
}

type reservationCommandsImpl struct {
	settings  shared.SettingsStore
	repo      shared.ReservationRepository
	validator *reservation.Validator
	notifier  shared.Notifier
	clock     clock.Clock
	logger    *slog.Logger
}

func NewReservationCommands(
	settings shared.SettingsStore,
	repo shared.ReservationRepository,
	validator *reservation.Validator,
	notifier shared.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		settings:  settings,
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		clock:     clk,
		logger:    logger,
	}
}

func (uc *reservationCommandsImpl) Create(ctx context.Context, req reservation.Request) (*CreateReservationResult, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to load reservation settings", slog.Any("error", err))
		return nil, errs.Mark(err, ErrSettingsUnavailable)
	}

	now := uc.clock.Now()
	validated, err := uc.validator.Validate(ctx, settings, req, now)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, errs.Mark(err, ErrStorageUnavailable)
		}
		return nil, err
	}

	if err := uc.precheckAvailability(ctx, settings, validated); err != nil {
		return nil, err
	}

	id, err := uc.repo.InsertIfValid(ctx, validated)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			uc.logger.InfoContext(ctx, "reservation rejected at commit",
				slog.String("date", validated.Date().String()),
				slog.String("time", validated.Time().Short()),
				slog.Any("error", err))
			return nil, errs.Mark(err, ErrSlotConflict)
		}
		return nil, errs.Mark(err, ErrStorageUnavailable)
	}

	if uc.notifier != nil {
		created := reservation.NewReservation(id, validated, now)
		if nerr := uc.notifier.ReservationCreated(ctx, created); nerr != nil {
			uc.logger.WarnContext(ctx, "failed to enqueue reservation notification",
				slog.String("reservation_id", id.String()),
				slog.Any("error", nerr))
		}
	}

	return &CreateReservationResult{ReservationID: id, Status: reservation.StatusPending}, nil
}

// precheckAvailability is an early exit only; InsertIfValid is authoritative.
func (uc *reservationCommandsImpl) precheckAvailability(ctx context.Context, settings *reservation.Settings, v *reservation.ValidatedReservation) error {
	bookings, err := uc.repo.ListBookingsForSlot(ctx, v.Date(), v.Time())

	availability := reservation.UnknownAvailability(settings)
	if err != nil {
		if ctx.Err() != nil {
			return errs.Mark(err, ErrStorageUnavailable)
		}
		uc.logger.WarnContext(ctx, "availability read failed, deferring to insert-time check",
			slog.String("date", v.Date().String()),
			slog.String("time", v.Time().Short()),
			slog.Any("error", err))
	} else {
		availability = reservation.CheckAvailability(settings, bookings, v.SlotRequest())
	}

	if !availability.Available {
		return ErrSlotFull
	}
	return nil
}

func (uc *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, caller reservation.CallerIdentity) error {
	res, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrReservationNotFound
		}
		return errs.Mark(err, ErrStorageUnavailable)
	}

	if !res.IsOwnedBy(caller) {
		return ErrNotReservationOwner
	}
	if !res.Status().CanTransitionTo(reservation.StatusCancelled) {
		return ErrInvalidTransition
	}

	return uc.applyStatus(ctx, id, reservation.StatusCancelled)
}

// UpdateStatus is the staff path; authorization is enforced by the caller.
func (uc *reservationCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, next reservation.Status) error {
	if !next.IsValid() {
		return reservation.ErrInvalidStatus
	}
	return uc.applyStatus(ctx, id, next)
}

func (uc *reservationCommandsImpl) applyStatus(ctx context.Context, id uuid.UUID, next reservation.Status) error {
	err := uc.repo.UpdateStatus(ctx, id, next)
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return ErrReservationNotFound
	case infra.IsKind(err, infra.KindInvalidTransition):
		return errs.Mark(err, ErrInvalidTransition)
	default:
		return errs.Mark(err, ErrStorageUnavailable)
	}
}
