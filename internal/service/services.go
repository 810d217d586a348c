package service

import (
	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/repository"
)

// Services is the container handed to the routes.
type Services struct {
	Users        *UserService
	Reservations *ReservationService
	Properties   *PropertyService
}

// NewServices wires every service over the repositories, taking limits
// and the logger from the application container.
func NewServices(a *app.App, repos *repository.Repositories) *Services {
	limits := Limits{
		Default: a.Config.Search.DefaultLimit,
		Max:     a.Config.Search.MaxLimit,
	}

	return &Services{
		Users:        NewUserService(repos.Users, a.Logger),
		Reservations: NewReservationService(repos.Reservations, limits, a.Logger),
		Properties:   NewPropertyService(repos.Properties, limits, a.Logger),
	}
}
