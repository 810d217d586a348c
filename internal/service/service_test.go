package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byEmail map[string]*model.User
	nextID  int64
	err     error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pkgerrors.Wrap(pgx.ErrNoRows, "get user by email table:users")
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pkgerrors.Wrap(pgx.ErrNoRows, "get user by id table:users")
}

func (f *fakeUsers) Create(_ context.Context, nu model.NewUser) (*model.User, error) {
	if _, ok := f.byEmail[nu.Email]; ok {
		return nil, pkgerrors.Wrap(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			TableName:      "users",
			ConstraintName: "users_email_key",
		}, "create user table:users")
	}
	u := &model.User{ID: f.nextID, Name: nu.Name, Email: nu.Email, Password: nu.Password}
	f.nextID++
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeReservations struct {
	gotLimit int
	err      error
}

func (f *fakeReservations) ListPastForGuest(_ context.Context, guestID int64, limit int) ([]model.GuestReservation, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []model.GuestReservation{{Reservation: model.Reservation{ID: 1, GuestID: guestID}}}, nil
}

type fakeProperties struct {
	gotSearch model.PropertySearch
	gotLimit  int
	created   []model.NewProperty
	err       error
}

func (f *fakeProperties) Search(_ context.Context, s model.PropertySearch, limit int) ([]model.PropertyListing, error) {
	f.gotSearch, f.gotLimit = s, limit
	if f.err != nil {
		return nil, f.err
	}
	return []model.PropertyListing{{Property: model.Property{ID: 1}, AverageRating: 4.5}}, nil
}

func (f *fakeProperties) Create(_ context.Context, p model.NewProperty) (*model.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, p)
	return &model.Property{ID: int64(len(f.created)), OwnerID: p.OwnerID, Title: p.Title, Active: true}, nil
}

func appError(t *testing.T, err error) *errs.Error {
	t.Helper()
	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func newUserService(users UserStore) *UserService {
	log := zerolog.Nop()
	s := NewUserService(users, &log)
	s.hashCost = bcrypt.MinCost
	return s
}

func TestUserServiceRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	s := newUserService(users)

	user, err := s.Register(ctx, model.NewUser{Name: " Eva Stanley ", Email: "Eva@Example.com", Password: "secret-pw"})
	require.NoError(t, err)
	assert.Equal(t, "Eva Stanley", user.Name)
	assert.Equal(t, "eva@example.com", user.Email)
	assert.NotEqual(t, "secret-pw", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret-pw")))

	t.Run("login", func(t *testing.T) {
		got, err := s.Login(ctx, model.Credentials{Email: "EVA@example.com ", Password: "secret-pw"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, model.Credentials{Email: "eva@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, appError(t, err).Status)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(ctx, model.Credentials{Email: "ghost@example.com", Password: "secret-pw"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.Register(ctx, model.NewUser{Name: "Eva", Email: "eva@example.com", Password: "another-pw"})
		appErr := appError(t, err)
		assert.Equal(t, http.StatusConflict, appErr.Status)
		assert.Equal(t, "A User with this Email already exists", appErr.Message)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := s.Register(ctx, model.NewUser{Email: "eva"})
		appErr := appError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.NotEmpty(t, appErr.Errors)
	})
}

func TestUserServiceLookups(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	users.byEmail["kim@example.com"] = &model.User{ID: 7, Name: "Kim", Email: "kim@example.com"}
	s := newUserService(users)

	u, err := s.GetByEmail(ctx, " KIM@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)

	u, err = s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Kim", u.Name)

	_, err = s.Get(ctx, 8)
	appErr := appError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "User not found", appErr.Message)

	_, err = s.Get(ctx, model.MaxID+1)
	appErr = appError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "USER_NOT_FOUND", appErr.Code)

	users.err = errors.New("connection refused")
	_, err = s.GetByEmail(ctx, "kim@example.com")
	assert.Equal(t, http.StatusInternalServerError, appError(t, err).Status)
}

func TestReservationServiceListPast(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()
	store := &fakeReservations{}
	s := NewReservationService(store, Limits{Default: 10, Max: 50}, &log)

	got, err := s.ListPast(ctx, 3, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 10, store.gotLimit)

	_, err = s.ListPast(ctx, 3, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, store.gotLimit)

	store.gotLimit = 0
	for _, guestID := range []int64{0, -1, model.MaxID + 1} {
		_, err = s.ListPast(ctx, guestID, 10)
		appErr := appError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, []errs.FieldError{{Field: "guest_id", Error: "must be between 1 and 2147483647"}}, appErr.Errors)
	}
	assert.Zero(t, store.gotLimit)

	store.err = errors.New("boom")
	_, err = s.ListPast(ctx, 3, 10)
	assert.Equal(t, http.StatusInternalServerError, appError(t, err).Status)
}

func TestPropertyServiceSearch(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()
	store := &fakeProperties{}
	s := NewPropertyService(store, Limits{Default: 10, Max: 100}, &log)

	search := model.PropertySearch{City: "Vancouver", MinimumPricePerNight: 50}
	got, err := s.Search(ctx, search, 20)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, search, store.gotSearch)
	assert.Equal(t, 20, store.gotLimit)

	_, err = s.Search(ctx, model.PropertySearch{MinimumPricePerNight: 300, MaximumPricePerNight: 100}, 0)
	assert.Equal(t, http.StatusBadRequest, appError(t, err).Status)

	for _, bad := range []model.PropertySearch{
		{MaximumPricePerNight: 1e17},
		{MaximumPricePerNight: math.Inf(1)},
		{MinimumPricePerNight: 3e7},
		{OwnerID: model.MaxID + 1},
	} {
		store.gotLimit = 0
		_, err = s.Search(ctx, bad, 10)
		assert.Equal(t, http.StatusBadRequest, appError(t, err).Status, "%+v", bad)
		assert.Zero(t, store.gotLimit, "store must not be queried for %+v", bad)
	}
}

func TestPropertyServiceCreate(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()
	store := &fakeProperties{}
	s := NewPropertyService(store, Limits{Default: 10}, &log)

	input := model.NewProperty{
		OwnerID:           2,
		Title:             "Habit mix",
		ThumbnailPhotoURL: "https://images.example.com/thumb.jpg",
		CoverPhotoURL:     "https://images.example.com/cover.jpg",
		CostPerNight:      46058,
		Country:           "Canada",
		Street:            "651 Nami Road",
		City:              "Bohbatev",
		Province:          "Alberta",
		PostCode:          "83680",
	}

	p, err := s.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, []model.NewProperty{input}, store.created)

	_, err = s.Create(ctx, model.NewProperty{Title: "missing everything"})
	assert.Equal(t, http.StatusBadRequest, appError(t, err).Status)
	assert.Len(t, store.created, 1)

	store.err = pkgerrors.Wrap(&pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		TableName:      "properties",
		ConstraintName: "properties_owner_id_fkey",
	}, "create property table:properties")
	_, err = s.Create(ctx, input)
	appErr := appError(t, err)
	assert.Equal(t, "The referenced Owner does not exist", appErr.Message)
}

func TestLimitsClamp(t *testing.T) {
	l := Limits{Default: 10, Max: 25}
	assert.Equal(t, 10, l.clamp(0))
	assert.Equal(t, 10, l.clamp(-1))
	assert.Equal(t, 25, l.clamp(99))
	assert.Equal(t, 5, l.clamp(5))
	assert.Equal(t, 99, Limits{Default: 10}.clamp(99))
}
