package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivasaude/consultaprecos/internal/domain/entities"
	"github.com/vivasaude/consultaprecos/internal/query"
)

func price(v float64) *float64 {
	return &v
}

func listing(clinic, doctor, specialty, city string, discounted *float64) *entities.Listing {
	return &entities.Listing{
		ID:              clinic + "/" + doctor,
		ClinicName:      clinic,
		DoctorName:      doctor,
		Specialty:       specialty,
		City:            city,
		PriceDiscounted: discounted,
	}
}

func sampleListings() []*entities.Listing {
	return []*entities.Listing{
		listing("Clínica Vida", "Dra. Ana Souza", "Cardiologia", "Orleans", price(120)),
		listing("Centro Médico Sul", "Dr. Bruno Lima", "Cardiologia", "Tubarão", price(90)),
		listing("Clínica Vida", "Dr. Carlos Prado", "Dermatologia", "Orleans", price(150)),
		listing("Saúde Popular", "", "Cardiologia", "Criciúma", nil),
		listing("Bem Estar", "Dra. Paula Reis", "Pediatria", "", price(70)),
	}
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	in := sampleListings()

	out := query.Filter(in, query.Criteria{})

	require.Len(t, out, len(in))
	for i := range in {
		assert.Same(t, in[i], out[i], "order and elements must be preserved")
	}
}

func TestFilter_CityIsCaseInsensitiveSubstring(t *testing.T) {
	out := query.Filter(sampleListings(), query.Criteria{City: "ORLE"})

	require.Len(t, out, 2)
	assert.Equal(t, "Dra. Ana Souza", out[0].DoctorName)
	assert.Equal(t, "Dr. Carlos Prado", out[1].DoctorName)
}

func TestFilter_AbsentCityNeverMatches(t *testing.T) {
	out := query.Filter(sampleListings(), query.Criteria{City: "a"})

	for _, l := range out {
		assert.NotEmpty(t, l.City)
	}
}

func TestFilter_NameMatchesDoctorOrClinic(t *testing.T) {
	byDoctor := query.Filter(sampleListings(), query.Criteria{NameOrClinic: "bruno"})
	require.Len(t, byDoctor, 1)
	assert.Equal(t, "Dr. Bruno Lima", byDoctor[0].DoctorName)

	byClinic := query.Filter(sampleListings(), query.Criteria{NameOrClinic: "vida"})
	assert.Len(t, byClinic, 2)
}

func TestFilter_SpecialtySubstring(t *testing.T) {
	// substring semantics: "cardio" matches "Cardiologia"
	out := query.Filter(sampleListings(), query.Criteria{Specialty: "cardio"})
	assert.Len(t, out, 3)
}

func TestFilter_PriceRange(t *testing.T) {
	out := query.Filter(sampleListings(), query.Criteria{MinPrice: 80, MaxPrice: 130})

	require.Len(t, out, 2)
	assert.Equal(t, 120.0, *out[0].PriceDiscounted)
	assert.Equal(t, 90.0, *out[1].PriceDiscounted)
}

func TestFilter_MissingPriceBehavesAsZero(t *testing.T) {
	// a listing with no price is excluded by any MinPrice above zero
	out := query.Filter(sampleListings(), query.Criteria{MinPrice: 1})
	for _, l := range out {
		assert.NotNil(t, l.PriceDiscounted)
	}

	// and included when only an upper bound is set
	out = query.Filter(sampleListings(), query.Criteria{MaxPrice: 50})
	require.Len(t, out, 1)
	assert.Nil(t, out[0].PriceDiscounted)
}

func TestFilter_ConjunctionOfCriteria(t *testing.T) {
	out := query.Filter(sampleListings(), query.Criteria{
		City:      "orleans",
		Specialty: "cardio",
		MinPrice:  100,
	})

	require.Len(t, out, 1)
	assert.Equal(t, "Dra. Ana Souza", out[0].DoctorName)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sampleListings()
	snapshot := make([]*entities.Listing, len(in))
	copy(snapshot, in)

	query.Filter(in, query.Criteria{City: "orleans"})

	assert.Equal(t, snapshot, in)
}
