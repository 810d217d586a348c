// Package service holds the operations the web routes call: it validates
// input, hashes and checks passwords, clamps limits and turns repository
// errors into *errs.Error values through sqlerr.
package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
)

// UserStore is the part of the user repository the services need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u model.NewUser) (*model.User, error)
}

// ReservationStore is the part of the reservation repository the services need.
type ReservationStore interface {
	ListPastForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error)
}

// PropertyStore is the part of the property repository the services need.
type PropertyStore interface {
	Search(ctx context.Context, s model.PropertySearch, limit int) ([]model.PropertyListing, error)
	Create(ctx context.Context, p model.NewProperty) (*model.Property, error)
}

// Limits bounds the row count of list operations.
type Limits struct {
	Default int
	Max     int
}

// clamp returns Default for limit <= 0 and never more than Max.
func (l Limits) clamp(limit int) int {
	if limit <= 0 {
		limit = l.Default
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	return limit
}
