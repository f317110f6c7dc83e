package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
)

// Note: These tests would typically use a test database or mock
// This is a structure showing TDD approach

func TestListingAdapter_FetchAll(t *testing.T) {
	t.Skip("Requires database connection")

	t.Run("returns listings in insertion order", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()
		// adapter := database.NewListingAdapter(testClient)

		// Act
		// listings, err := adapter.FetchAll(ctx)

		// Assert
		// require.NoError(t, err)
		// assert.NotNil(t, listings)
	})
}

func TestListingAdapter_Create(t *testing.T) {
	t.Skip("Requires database connection")

	t.Run("successfully creates a listing", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()
		// price := 150.0
		// listing := &entities.Listing{
		// 	ID:              uuid.New().String(),
		// 	ClinicName:      "Clínica Vida",
		// 	DoctorName:      "Dra. Ana Souza",
		// 	Specialty:       "Cardiologia",
		// 	City:            "Orleans",
		// 	State:           "SC",
		// 	PriceDiscounted: &price,
		// }

		// Act
		// err := adapter.Create(ctx, listing)

		// Assert
		// require.NoError(t, err)
	})
}

func TestListingAdapter_Update(t *testing.T) {
	t.Skip("Requires database connection")

	t.Run("returns not found for unknown id", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()
		// listing := &entities.Listing{ID: "non-existent-id", ClinicName: "Clínica Vida"}

		// Act
		// err := adapter.Update(ctx, listing)

		// Assert
		// require.Error(t, err)
		// assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
	})
}

func TestListingAdapter_Delete(t *testing.T) {
	t.Skip("Requires database connection")

	t.Run("successfully deletes a listing", func(t *testing.T) {
		// Arrange
		// ctx := context.Background()
		// id := "test-listing-1"

		// Act
		// err := adapter.Delete(ctx, id)

		// Assert
		// require.NoError(t, err)
	})
}

// Example test that can run without database - absent prices survive the round trip
func TestListingPricePointers(t *testing.T) {
	t.Run("absent prices stay nil", func(t *testing.T) {
		listing := &entities.Listing{
			ID:         "test-1",
			ClinicName: "Clínica Vida",
		}

		assert.Nil(t, listing.PriceDiscounted)
		assert.Nil(t, listing.PriceOriginal)
		_, ok := listing.Savings()
		assert.False(t, ok)
	})
}
