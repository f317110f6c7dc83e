package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("LISTINGS_PAGE_SIZE")
	os.Unsetenv("COMPARISON_PAGE_SIZE")
	os.Unsetenv("GEOLOCATION_PROVIDER")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 9, cfg.Listings.PageSize)
	assert.Equal(t, 5, cfg.Listings.ComparisonPageSize)
	assert.Equal(t, "mock", cfg.Geolocation.Provider)
	assert.Equal(t, "BR", cfg.Geolocation.Country)
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("LISTINGS_PAGE_SIZE", "12")
	os.Setenv("GEOLOCATION_PROVIDER", "openweather")
	os.Setenv("GEOLOCATION_API_KEY", "test-key")
	defer func() {
		os.Unsetenv("LISTINGS_PAGE_SIZE")
		os.Unsetenv("GEOLOCATION_PROVIDER")
		os.Unsetenv("GEOLOCATION_API_KEY")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 12, cfg.Listings.PageSize)
	assert.Equal(t, "openweather", cfg.Geolocation.Provider)
	assert.Equal(t, "test-key", cfg.Geolocation.APIKey)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Database: "consulta_precos", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=consulta_precos sslmode=disable",
		cfg.DatabaseDSN())
}
