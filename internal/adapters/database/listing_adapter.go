package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/domain/repositories"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/clients/postgres"
	apperrors "github.com/vivasaude/consultaprecos/pkg/errors"
)

var listingColumns = []interface{}{
	"id", "clinic_name", "doctor_name", "specialty", "city", "state",
	"price_discounted", "price_original", "updated_on", "created_at", "updated_at",
}

// ListingAdapter implements the ListingRepository interface
type ListingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewListingAdapter creates a new listing adapter
func NewListingAdapter(client *postgres.Client) repositories.ListingRepository {
	return &ListingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FetchAll returns every listing in insertion order. Snapshot consumers rely
// on this order being stable between fetches of unchanged data.
func (a *ListingAdapter) FetchAll(ctx context.Context) ([]*entities.Listing, error) {
	query, args, err := a.db.Select(listingColumns...).
		From("listings").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build fetch query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to fetch listings", err)
	}
	defer rows.Close()

	listings := make([]*entities.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan listing", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to read listings", err)
	}

	return listings, nil
}

// Create creates a new listing
func (a *ListingAdapter) Create(ctx context.Context, listing *entities.Listing) error {
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	query, args, err := a.db.Insert("listings").Rows(listingRecord(listing)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create listing", err)
	}
	return nil
}

// Update updates an existing listing
func (a *ListingAdapter) Update(ctx context.Context, listing *entities.Listing) error {
	listing.UpdatedAt = time.Now()

	record := listingRecord(listing)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("listings").
		Set(record).
		Where(goqu.Ex{"id": listing.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewExternalError("failed to update listing", err)
	}
	return requireRow(result, listing.ID)
}

// Delete deletes a listing
func (a *ListingAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("listings").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewExternalError("failed to delete listing", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("listing with id %s not found", id))
	}
	return nil
}

func listingRecord(listing *entities.Listing) goqu.Record {
	return goqu.Record{
		"id":               listing.ID,
		"clinic_name":      listing.ClinicName,
		"doctor_name":      nullString(listing.DoctorName),
		"specialty":        nullString(listing.Specialty),
		"city":             nullString(listing.City),
		"state":            nullString(listing.State),
		"price_discounted": nullFloat(listing.PriceDiscounted),
		"price_original":   nullFloat(listing.PriceOriginal),
		"updated_on":       nullString(listing.UpdatedOn),
		"created_at":       listing.CreatedAt,
		"updated_at":       listing.UpdatedAt,
	}
}

func scanListing(rows *sql.Rows) (*entities.Listing, error) {
	listing := &entities.Listing{}
	var doctor, specialty, city, state, updatedOn sql.NullString
	var discounted, original sql.NullFloat64

	err := rows.Scan(
		&listing.ID,
		&listing.ClinicName,
		&doctor,
		&specialty,
		&city,
		&state,
		&discounted,
		&original,
		&updatedOn,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.DoctorName = doctor.String
	listing.Specialty = specialty.String
	listing.City = city.String
	listing.State = state.String
	listing.UpdatedOn = updatedOn.String
	if discounted.Valid {
		v := discounted.Float64
		listing.PriceDiscounted = &v
	}
	if original.Valid {
		v := original.Float64
		listing.PriceOriginal = &v
	}
	return listing, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
