package main

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Search and add property listings",
	}

	cmd.AddCommand(newPropertiesSearchCmd(), newPropertiesAddCmd())
	return cmd
}

func bindSearchFlags(flags *pflag.FlagSet, search *model.PropertySearch) {
	flags.StringVar(&search.City, "city", "", "city name, matched case-insensitively anywhere in the city")
	flags.Int64Var(&search.OwnerID, "owner-id", 0, "only properties of this owner")
	flags.Float64Var(&search.MinimumPricePerNight, "min-price", 0, "minimum nightly price in dollars")
	flags.Float64Var(&search.MaximumPricePerNight, "max-price", 0, "maximum nightly price in dollars")
	flags.Float64Var(&search.MinimumRating, "min-rating", 0, "minimum average rating (0-5)")
}

func newPropertiesSearchCmd() *cobra.Command {
	var (
		search model.PropertySearch
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties, cheapest first",
		Args:  cobra.NoArgs,
		RunE: withServices(func(ctx context.Context, cmd *cobra.Command, s *service.Services) error {
			listings, err := s.Properties.Search(ctx, search, limit)
			if err != nil {
				return err
			}
			return printResult(cmd, listings)
		}),
	}

	bindSearchFlags(cmd.Flags(), &search)
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of properties (0 uses the configured default)")

	return cmd
}

// propertyFlags holds the add flags; the price is entered in dollars.
type propertyFlags struct {
	property model.NewProperty
	cost     float64
}

func (f *propertyFlags) bind(flags *pflag.FlagSet) {
	p := &f.property
	flags.Int64Var(&p.OwnerID, "owner-id", 0, "id of the owning user")
	flags.StringVar(&p.Title, "title", "", "listing title")
	flags.StringVar(&p.Description, "description", "", "listing description")
	flags.StringVar(&p.ThumbnailPhotoURL, "thumbnail-photo-url", "", "thumbnail photo URL")
	flags.StringVar(&p.CoverPhotoURL, "cover-photo-url", "", "cover photo URL")
	flags.Float64Var(&f.cost, "cost-per-night", 0, "nightly price in dollars")
	flags.IntVar(&p.ParkingSpaces, "parking-spaces", 0, "number of parking spaces")
	flags.IntVar(&p.NumberOfBathrooms, "bathrooms", 0, "number of bathrooms")
	flags.IntVar(&p.NumberOfBedrooms, "bedrooms", 0, "number of bedrooms")
	flags.StringVar(&p.Country, "country", "", "country")
	flags.StringVar(&p.Street, "street", "", "street address")
	flags.StringVar(&p.City, "city", "", "city")
	flags.StringVar(&p.Province, "province", "", "province or state")
	flags.StringVar(&p.PostCode, "post-code", "", "postal code")
}

// newProperty returns the input with the price converted to cents.
func (f *propertyFlags) newProperty() model.NewProperty {
	p := f.property
	p.CostPerNight = model.DollarsToCents(f.cost)
	return p
}

func newPropertiesAddCmd() *cobra.Command {
	var flags propertyFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property listing",
		Args:  cobra.NoArgs,
		RunE: withServices(func(ctx context.Context, cmd *cobra.Command, s *service.Services) error {
			property, err := s.Properties.Create(ctx, flags.newProperty())
			if err != nil {
				return err
			}
			return printResult(cmd, property)
		}),
	}

	flags.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("owner-id")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
