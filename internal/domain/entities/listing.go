package entities

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vivasaude/consultaprecos/internal/query/pricing"
	apperrors "github.com/vivasaude/consultaprecos/pkg/errors"
)

// Listing represents one provider price listing. Prices are nullable: a nil
// price means the value was never informed, which is not the same as zero.
type Listing struct {
	ID              string     `json:"id" db:"id"`
	ClinicName      string     `json:"clinic_name" db:"clinic_name"`
	DoctorName      string     `json:"doctor_name,omitempty" db:"doctor_name"`
	Specialty       string     `json:"specialty,omitempty" db:"specialty"`
	City            string     `json:"city,omitempty" db:"city"`
	State           string     `json:"state,omitempty" db:"state"`
	PriceDiscounted *float64   `json:"price_discounted,omitempty" db:"price_discounted"`
	PriceOriginal   *float64   `json:"price_original,omitempty" db:"price_original"`
	UpdatedOn       string     `json:"updated_on,omitempty" db:"updated_on"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// Savings returns the amount saved under the discount program. The second
// return is false when either price is missing or the original price is not
// higher than the discounted one, in which case no savings line is shown.
func (l *Listing) Savings() (float64, bool) {
	if l.PriceOriginal == nil || l.PriceDiscounted == nil {
		return 0, false
	}
	if *l.PriceOriginal <= *l.PriceDiscounted {
		return 0, false
	}
	return *l.PriceOriginal - *l.PriceDiscounted, true
}

// MarshalJSON adds the computed savings amount to the serialized listing.
// The field only appears when both prices are present and the discount is
// real, matching when the savings line is shown.
func (l *Listing) MarshalJSON() ([]byte, error) {
	type alias Listing
	out := struct {
		*alias
		Savings *float64 `json:"savings,omitempty"`
	}{alias: (*alias)(l)}

	if v, ok := l.Savings(); ok {
		out.Savings = &v
	}
	return json.Marshal(out)
}

// ListingInput is the loosely-typed payload accepted by the create and edit
// operations. Prices arrive as free text ("120,00", "120.00" or empty); all
// normalization happens here so consumers only ever see the typed Listing.
type ListingInput struct {
	ClinicName      string `json:"clinic_name"`
	DoctorName      string `json:"doctor_name"`
	Specialty       string `json:"specialty"`
	City            string `json:"city"`
	State           string `json:"state"`
	PriceDiscounted string `json:"price_discounted"`
	PriceOriginal   string `json:"price_original"`
	UpdatedOn       string `json:"updated_on"`
}

// Normalize validates the input and maps it onto a Listing. The clinic name
// is the only required field; unparseable prices degrade to absent.
func (in *ListingInput) Normalize() (*Listing, error) {
	clinic := strings.TrimSpace(in.ClinicName)
	if clinic == "" {
		return nil, apperrors.NewValidationError("clinic name is required")
	}

	listing := &Listing{
		ClinicName: clinic,
		DoctorName: strings.TrimSpace(in.DoctorName),
		Specialty:  strings.TrimSpace(in.Specialty),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		UpdatedOn:  strings.TrimSpace(in.UpdatedOn),
	}

	if v, ok := pricing.Value(in.PriceDiscounted); ok {
		listing.PriceDiscounted = &v
	}
	if v, ok := pricing.Value(in.PriceOriginal); ok {
		listing.PriceOriginal = &v
	}

	return listing, nil
}
