package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const reservationsTable = "reservations"

var listPastReservationsSQL = `
	SELECT reservations.id, reservations.start_date, reservations.end_date,
	       reservations.property_id, reservations.guest_id,
	       ` + qualifiedPropertyColumns + `,
	       avg(property_reviews.rating) AS average_rating
	FROM reservations
	JOIN properties ON properties.id = reservations.property_id
	JOIN property_reviews ON properties.id = property_reviews.property_id
	WHERE reservations.guest_id = $1 AND reservations.end_date < now()::date
	GROUP BY reservations.id, properties.id
	ORDER BY reservations.start_date
	LIMIT $2`

type ReservationRepository struct {
	db  Querier
	log *zerolog.Logger
}

func NewReservationRepository(db Querier, log *zerolog.Logger) *ReservationRepository {
	return &ReservationRepository{db: db, log: log}
}

// ListPastForGuest returns the guest's reservations that ended before
// today, oldest first, each with its property and the property's average
// rating. Properties without reviews are left out. limit <= 0 means DefaultLimit.
func (r *ReservationRepository) ListPastForGuest(ctx context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	rows, err := r.db.Query(ctx, listPastReservationsSQL, guestID, normalizeLimit(limit))
	if err != nil {
		return nil, queryError(r.log, "list past reservations", reservationsTable, err)
	}

	reservations, err := pgx.CollectRows(rows, scanGuestReservation)
	if err != nil {
		return nil, queryError(r.log, "list past reservations", reservationsTable, err)
	}
	return reservations, nil
}

func scanGuestReservation(row pgx.CollectableRow) (model.GuestReservation, error) {
	var gr model.GuestReservation

	dest := []any{
		&gr.Reservation.ID,
		&gr.Reservation.StartDate,
		&gr.Reservation.EndDate,
		&gr.Reservation.PropertyID,
		&gr.Reservation.GuestID,
	}
	dest = append(dest, propertyScanTargets(&gr.Property)...)
	dest = append(dest, &gr.AverageRating)

	err := row.Scan(dest...)
	return gr, err
}
