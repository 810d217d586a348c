package model

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// Property is a row of the properties table. CostPerNight is in cents.
type Property struct {
	ID                int64  `db:"id" json:"id"`
	OwnerID           int64  `db:"owner_id" json:"owner_id"`
	Title             string `db:"title" json:"title"`
	Description       string `db:"description" json:"description"`
	ThumbnailPhotoURL string `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CoverPhotoURL     string `db:"cover_photo_url" json:"cover_photo_url"`
	CostPerNight      int    `db:"cost_per_night" json:"cost_per_night"`
	ParkingSpaces     int    `db:"parking_spaces" json:"parking_spaces"`
	NumberOfBathrooms int    `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	NumberOfBedrooms  int    `db:"number_of_bedrooms" json:"number_of_bedrooms"`
	Country           string `db:"country" json:"country"`
	Street            string `db:"street" json:"street"`
	City              string `db:"city" json:"city"`
	Province          string `db:"province" json:"province"`
	PostCode          string `db:"post_code" json:"post_code"`
	Active            bool   `db:"active" json:"active"`
}

// PropertyListing is a property with the average of its review ratings.
type PropertyListing struct {
	Property
	AverageRating float64 `db:"average_rating" json:"average_rating"`
}

// NewProperty is the input for creating a property. CostPerNight is in cents.
// Integer columns are int4, so every number is capped at MaxID.
type NewProperty struct {
	OwnerID           int64  `json:"owner_id" validate:"required,gt=0,lte=2147483647"`
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"required,url,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"required,url,max=255"`
	CostPerNight      int    `json:"cost_per_night" validate:"gte=0,lte=2147483647"`
	ParkingSpaces     int    `json:"parking_spaces" validate:"gte=0,lte=2147483647"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" validate:"gte=0,lte=2147483647"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" validate:"gte=0,lte=2147483647"`
	Country           string `json:"country" validate:"required,max=255"`
	Street            string `json:"street" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=255"`
	Province          string `json:"province" validate:"required,max=255"`
	PostCode          string `json:"post_code" validate:"required,max=255"`
}

func (p *NewProperty) Validate() error {
	return Validator().Struct(p)
}

// PropertySearch holds the optional filters of a property search.
// A zero field is not applied. Prices are in whole currency units and
// capped at MaxPricePerNight; NaN and infinities fail the bounds.
type PropertySearch struct {
	City                 string  `json:"city" validate:"max=255"`
	OwnerID              int64   `json:"owner_id" validate:"gte=0,lte=2147483647"`
	MinimumPricePerNight float64 `json:"minimum_price_per_night" validate:"gte=0,lte=21474836"`
	MaximumPricePerNight float64 `json:"maximum_price_per_night" validate:"gte=0,lte=21474836"`
	MinimumRating        float64 `json:"minimum_rating" validate:"gte=0,lte=5"`
}

// HasFilters reports whether any filter is set.
func (s PropertySearch) HasFilters() bool {
	return s.City != "" ||
		s.OwnerID != 0 ||
		s.MinimumPricePerNight != 0 ||
		s.MaximumPricePerNight != 0 ||
		s.MinimumRating != 0
}

// MinimumCents returns the minimum price in cents.
func (s PropertySearch) MinimumCents() int {
	return DollarsToCents(s.MinimumPricePerNight)
}

// MaximumCents returns the maximum price in cents.
func (s PropertySearch) MaximumCents() int {
	return DollarsToCents(s.MaximumPricePerNight)
}

func (s *PropertySearch) Validate() error {
	return Validator().Struct(s)
}

// MaxPricePerNight is the largest whole-dollar price whose cents fit cost_per_night.
const MaxPricePerNight = math.MaxInt32 / 100

// DollarsToCents rounds to the nearest cent.
func DollarsToCents(dollars float64) int {
	return int(math.Round(dollars * 100))
}

func init() {
	Validator().RegisterStructValidation(func(sl validator.StructLevel) {
		s := sl.Current().Interface().(PropertySearch)
		if s.MinimumPricePerNight > 0 && s.MaximumPricePerNight > 0 &&
			s.MinimumPricePerNight > s.MaximumPricePerNight {
			sl.ReportError(s.MaximumPricePerNight, "maximum_price_per_night", "MaximumPricePerNight", "gtefield", "minimum_price_per_night")
		}
	}, PropertySearch{})
}
