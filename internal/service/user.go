package service

import (
	"context"
	"errors"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errs.NewUnauthorizedError("Invalid email or password", true)

type UserService struct {
	users UserStore
	log   *zerolog.Logger

	// hashCost is the bcrypt cost used by Register.
	hashCost int
}

func NewUserService(users UserStore, log *zerolog.Logger) *UserService {
	return &UserService{users: users, log: log, hashCost: bcrypt.DefaultCost}
}

// Get returns the user with the given id. Ids no row can have are
// reported as not found without a query.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if !model.ValidID(id) {
		code := "USER_NOT_FOUND"
		return nil, errs.NewNotFoundError("User not found", true, &code)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

// GetByEmail returns the user with the given email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return user, nil
}

// Register validates the input, hashes the password and stores the user.
func (s *UserService) Register(ctx context.Context, input model.NewUser) (*model.User, error) {
	input.Normalize()
	if err := validation.Validate(&input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		return nil, errs.NewInternalServerError()
	}
	input.Password = string(hash)

	user, err := s.users.Create(ctx, input)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login returns the user whose email and password match.
func (s *UserService) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	creds.Email = model.NormalizeEmail(creds.Email)
	if err := validation.Validate(&creds); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, creds.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		s.log.Warn().Int64("user_id", user.ID).Msg("login with wrong password")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
