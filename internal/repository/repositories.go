package repository

import (
	"github.com/rs/zerolog"
)

// Repositories is a container for all repository instances.
// They share one Querier, normally the application's connection pool.
type Repositories struct {
	Users        *UserRepository
	Reservations *ReservationRepository
	Properties   *PropertyRepository
}

// NewRepositories builds every repository over db.
func NewRepositories(db Querier, logger *zerolog.Logger) *Repositories {
	log := logger.With().Str("component", "repository").Logger()

	return &Repositories{
		Users:        NewUserRepository(db, &log),
		Reservations: NewReservationRepository(db, &log),
		Properties:   NewPropertyRepository(db, &log),
	}
}
