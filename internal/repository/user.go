package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const usersTable = "users"

const userColumns = `id, name, email, password`

type UserRepository struct {
	db  Querier
	log *zerolog.Logger
}

func NewUserRepository(db Querier, log *zerolog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// GetByEmail returns the user with the given email.
// A missing user is an error wrapping pgx.ErrNoRows.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`, email)
	if err != nil {
		return nil, queryError(r.log, "get user by email", usersTable, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, queryError(r.log, "get user by email", usersTable, err)
	}
	return user, nil
}

// GetByID returns the user with the given id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id)
	if err != nil {
		return nil, queryError(r.log, "get user by id", usersTable, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, queryError(r.log, "get user by id", usersTable, err)
	}
	return user, nil
}

// Create inserts a user and returns the stored row. u.Password must
// already be hashed.
func (r *UserRepository) Create(ctx context.Context, u model.NewUser) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns, u.Name, u.Email, u.Password)
	if err != nil {
		return nil, queryError(r.log, "create user", usersTable, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, queryError(r.log, "create user", usersTable, err)
	}

	r.log.Debug().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}
