package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
	"github.com/deppfellow/lightbnb/internal/testutil/pgtest"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bcrypt of "password", as stored by the seed data.
const seedPasswordHash = "$2a$10$FB/BOAVhpuLvpOREQVmvmezD4ED/.JBIDRh70tGevYzYzQgFId2u."

type fixture struct {
	pool  *pgxpool.Pool
	repos *Repositories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pool := pgtest.Pool(t)
	log := zerolog.Nop()
	return &fixture{pool: pool, repos: NewRepositories(pool, &log)}
}

func (f *fixture) user(t *testing.T, name, email string) *model.User {
	t.Helper()
	u, err := f.repos.Users.Create(context.Background(), model.NewUser{Name: name, Email: email, Password: seedPasswordHash})
	require.NoError(t, err)
	return u
}

func (f *fixture) property(t *testing.T, ownerID int64, title, city string, costCents int) *model.Property {
	t.Helper()
	p, err := f.repos.Properties.Create(context.Background(), model.NewProperty{
		OwnerID:           ownerID,
		Title:             title,
		Description:       "description",
		ThumbnailPhotoURL: "https://images.example.com/thumb.jpg",
		CoverPhotoURL:     "https://images.example.com/cover.jpg",
		CostPerNight:      costCents,
		ParkingSpaces:     1,
		NumberOfBathrooms: 2,
		NumberOfBedrooms:  3,
		Country:           "Canada",
		Street:            "1 Main St",
		City:              city,
		Province:          "BC",
		PostCode:          "V5K 0A1",
	})
	require.NoError(t, err)
	return p
}

// reservation inserts a reservation ending daysAgo days ago plus one review.
func (f *fixture) reservation(t *testing.T, guestID, propertyID int64, daysAgo, rating int) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := f.pool.QueryRow(ctx, `
		INSERT INTO reservations (start_date, end_date, property_id, guest_id)
		VALUES (now()::date - $1::int - 3, now()::date - $1::int, $2, $3)
		RETURNING id`, daysAgo, propertyID, guestID).Scan(&id)
	require.NoError(t, err)

	_, err = f.pool.Exec(ctx, `
		INSERT INTO property_reviews (guest_id, property_id, reservation_id, rating, message)
		VALUES ($1, $2, $3, $4, 'ok')`, guestID, propertyID, id, rating)
	require.NoError(t, err)
	return id
}

func TestUserRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.user(t, "Devin Sanders", "tristanjacobs@gmail.com")
	assert.NotZero(t, created.ID)
	assert.Equal(t, seedPasswordHash, created.Password)

	t.Run("GetByEmail", func(t *testing.T) {
		u, err := f.repos.Users.GetByEmail(ctx, "tristanjacobs@gmail.com")
		require.NoError(t, err)
		assert.Equal(t, created, u)
	})

	t.Run("GetByID", func(t *testing.T) {
		u, err := f.repos.Users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Devin Sanders", u.Name)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := f.repos.Users.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.Contains(t, err.Error(), "table:users")

		_, err = f.repos.Users.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.repos.Users.Create(ctx, model.NewUser{Name: "Copy", Email: "tristanjacobs@gmail.com", Password: seedPasswordHash})
		assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))
	})
}

func TestPropertyRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "Owner", "owner@example.com")
	guest := f.user(t, "Guest", "guest@example.com")

	cheap := f.property(t, owner.ID, "Cheap flat", "Vancouver", 5000)
	mid := f.property(t, owner.ID, "Mid house", "North Vancouver", 15000)
	pricey := f.property(t, guest.ID, "Pricey villa", "Calgary", 40000)
	unreviewed := f.property(t, owner.ID, "Unreviewed", "Vancouver", 1000)

	f.reservation(t, guest.ID, cheap.ID, 10, 2)
	f.reservation(t, guest.ID, mid.ID, 10, 5)
	f.reservation(t, owner.ID, pricey.ID, 10, 4)

	ids := func(listings []model.PropertyListing) []int64 {
		out := make([]int64, len(listings))
		for i, l := range listings {
			out[i] = l.ID
		}
		return out
	}

	t.Run("Create", func(t *testing.T) {
		assert.NotZero(t, unreviewed.ID)
		assert.True(t, unreviewed.Active)
		assert.Equal(t, 1000, unreviewed.CostPerNight)
	})

	t.Run("Create with unknown owner", func(t *testing.T) {
		_, err := f.repos.Properties.Create(ctx, model.NewProperty{
			OwnerID: 9999, Title: "Ghost", ThumbnailPhotoURL: "x", CoverPhotoURL: "x",
			Country: "x", Street: "x", City: "x", Province: "x", PostCode: "x",
		})
		assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
	})

	t.Run("no filters orders by cost", func(t *testing.T) {
		listings, err := f.repos.Properties.Search(ctx, model.PropertySearch{}, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{cheap.ID, mid.ID, pricey.ID}, ids(listings))
		assert.InDelta(t, 2.0, listings[0].AverageRating, 0.001)
	})

	t.Run("city is a case-insensitive substring", func(t *testing.T) {
		listings, err := f.repos.Properties.Search(ctx, model.PropertySearch{City: "vancouver"}, 10)
		require.NoError(t, err)
		assert.Equal(t, []int64{cheap.ID, mid.ID}, ids(listings))
	})

	t.Run("owner", func(t *testing.T) {
		listings, err := f.repos.Properties.Search(ctx, model.PropertySearch{OwnerID: guest.ID}, 10)
		require.NoError(t, err)
		assert.Equal(t, []int64{pricey.ID}, ids(listings))
	})

	t.Run("price range in dollars", func(t *testing.T) {
		listings, err := f.repos.Properties.Search(ctx, model.PropertySearch{MinimumPricePerNight: 60, MaximumPricePerNight: 400}, 10)
		require.NoError(t, err)
		assert.Equal(t, []int64{mid.ID, pricey.ID}, ids(listings))
	})

	t.Run("minimum rating", func(t *testing.T) {
		listings, err := f.repos.Properties.Search(ctx, model.PropertySearch{MinimumRating: 4}, 10)
		require.NoError(t, err)
		assert.Equal(t, []int64{mid.ID, pricey.ID}, ids(listings))
	})

	t.Run("limit", func(t *testing.T) {
		listings, err := f.repos.Properties.Search(ctx, model.PropertySearch{}, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{cheap.ID}, ids(listings))
	})
}

func TestReservationRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "Owner", "owner@example.com")
	guest := f.user(t, "Guest", "guest@example.com")
	other := f.user(t, "Other", "other@example.com")

	first := f.property(t, owner.ID, "First", "Vancouver", 5000)
	second := f.property(t, owner.ID, "Second", "Calgary", 9000)

	older := f.reservation(t, guest.ID, first.ID, 30, 3)
	newer := f.reservation(t, guest.ID, second.ID, 5, 5)
	f.reservation(t, other.ID, first.ID, 5, 1)

	// still ongoing: ends in the future
	_, err := f.pool.Exec(ctx, `
		INSERT INTO reservations (start_date, end_date, property_id, guest_id)
		VALUES (now()::date, now()::date + 3, $1, $2)`, first.ID, guest.ID)
	require.NoError(t, err)

	t.Run("past reservations oldest first", func(t *testing.T) {
		got, err := f.repos.Reservations.ListPastForGuest(ctx, guest.ID, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, older, got[0].Reservation.ID)
		assert.Equal(t, first.ID, got[0].Property.ID)
		assert.Equal(t, "First", got[0].Property.Title)
		assert.InDelta(t, 2.0, got[0].AverageRating, 0.001) // ratings 3 and 1

		assert.Equal(t, newer, got[1].Reservation.ID)
		assert.InDelta(t, 5.0, got[1].AverageRating, 0.001)
		assert.True(t, got[1].Reservation.EndDate.Before(time.Now()))
	})

	t.Run("limit", func(t *testing.T) {
		got, err := f.repos.Reservations.ListPastForGuest(ctx, guest.ID, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, older, got[0].Reservation.ID)
	})

	t.Run("guest without reservations", func(t *testing.T) {
		got, err := f.repos.Reservations.ListPastForGuest(ctx, owner.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
