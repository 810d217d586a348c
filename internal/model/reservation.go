package model

import "time"

// Reservation is a row of the reservations table.
type Reservation struct {
	ID         int64     `db:"id" json:"id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	PropertyID int64     `db:"property_id" json:"property_id"`
	GuestID    int64     `db:"guest_id" json:"guest_id"`
}

// GuestReservation is a past reservation together with the reserved
// property and that property's average rating.
type GuestReservation struct {
	Reservation   Reservation `json:"reservation"`
	Property      Property    `json:"property"`
	AverageRating float64     `json:"average_rating"`
}
