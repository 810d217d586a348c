package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const propertiesTable = "properties"

var propertyColumns = []string{
	"id", "owner_id", "title", "description", "thumbnail_photo_url",
	"cover_photo_url", "cost_per_night", "parking_spaces",
	"number_of_bathrooms", "number_of_bedrooms", "country", "street",
	"city", "province", "post_code", "active",
}

var (
	propertyColumnList       = strings.Join(propertyColumns, ", ")
	qualifiedPropertyColumns = qualify("properties", propertyColumns)
)

func qualify(table string, columns []string) string {
	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = table + "." + c
	}
	return strings.Join(qualified, ", ")
}

// propertyScanTargets returns pointers in propertyColumns order.
func propertyScanTargets(p *model.Property) []any {
	return []any{
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.ThumbnailPhotoURL,
		&p.CoverPhotoURL, &p.CostPerNight, &p.ParkingSpaces,
		&p.NumberOfBathrooms, &p.NumberOfBedrooms, &p.Country, &p.Street,
		&p.City, &p.Province, &p.PostCode, &p.Active,
	}
}

type PropertyRepository struct {
	db  Querier
	log *zerolog.Logger
}

func NewPropertyRepository(db Querier, log *zerolog.Logger) *PropertyRepository {
	return &PropertyRepository{db: db, log: log}
}

// Search returns reviewed properties matching the filters in s, cheapest
// first. limit <= 0 means DefaultLimit.
func (r *PropertyRepository) Search(ctx context.Context, s model.PropertySearch, limit int) ([]model.PropertyListing, error) {
	query, args := BuildPropertySearch(s, normalizeLimit(limit))

	r.log.Debug().
		Bool("filtered", s.HasFilters()).
		Int("args", len(args)).
		Msg("searching properties")

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError(r.log, "search properties", propertiesTable, err)
	}

	listings, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.PropertyListing])
	if err != nil {
		return nil, queryError(r.log, "search properties", propertiesTable, err)
	}
	return listings, nil
}

// Create inserts a property and returns the stored row.
func (r *PropertyRepository) Create(ctx context.Context, p model.NewProperty) (*model.Property, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO properties (
			owner_id, title, description, thumbnail_photo_url, cover_photo_url,
			cost_per_night, parking_spaces, number_of_bathrooms, number_of_bedrooms,
			country, street, city, province, post_code
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+propertyColumnList,
		p.OwnerID, p.Title, p.Description, p.ThumbnailPhotoURL, p.CoverPhotoURL,
		p.CostPerNight, p.ParkingSpaces, p.NumberOfBathrooms, p.NumberOfBedrooms,
		p.Country, p.Street, p.City, p.Province, p.PostCode,
	)
	if err != nil {
		return nil, queryError(r.log, "create property", propertiesTable, err)
	}

	property, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Property])
	if err != nil {
		return nil, queryError(r.log, "create property", propertiesTable, err)
	}

	r.log.Debug().Int64("property_id", property.ID).Int64("owner_id", property.OwnerID).Msg("property created")
	return property, nil
}
