package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/rs/zerolog"
)

type PropertyService struct {
	properties PropertyStore
	limits     Limits
	log        *zerolog.Logger
}

func NewPropertyService(properties PropertyStore, limits Limits, log *zerolog.Logger) *PropertyService {
	return &PropertyService{properties: properties, limits: limits, log: log}
}

// Search validates the filters and returns matching listings.
func (s *PropertyService) Search(ctx context.Context, search model.PropertySearch, limit int) ([]model.PropertyListing, error) {
	if err := validation.Validate(&search); err != nil {
		return nil, err
	}

	listings, err := s.properties.Search(ctx, search, s.limits.clamp(limit))
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return listings, nil
}

// Create validates and stores a new property.
func (s *PropertyService) Create(ctx context.Context, input model.NewProperty) (*model.Property, error) {
	if err := validation.Validate(&input); err != nil {
		return nil, err
	}

	property, err := s.properties.Create(ctx, input)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	s.log.Info().
		Int64("property_id", property.ID).
		Int64("owner_id", property.OwnerID).
		Msg("property created")
	return property, nil
}
