package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/rs/zerolog"
)

// guestQuery is the input of ListPast.
type guestQuery struct {
	guestID int64
}

func (q guestQuery) Validate() error {
	if !model.ValidID(q.guestID) {
		return validation.CustomValidationErrors{{
			Field:   "guest_id",
			Message: fmt.Sprintf("must be between 1 and %d", model.MaxID),
		}}
	}
	return nil
}

type ReservationService struct {
	reservations ReservationStore
	limits       Limits
	log          *zerolog.Logger
}

func NewReservationService(reservations ReservationStore, limits Limits, log *zerolog.Logger) *ReservationService {
	return &ReservationService{reservations: reservations, limits: limits, log: log}
}

// ListPast returns the guest's finished reservations.
func (s *ReservationService) ListPast(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	if err := validation.Validate(guestQuery{guestID: guestID}); err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ListPastForGuest(ctx, guestID, s.limits.clamp(limit))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return reservations, nil
}
