package geolocation

import (
	"context"
	"strings"

	"github.com/vivasaude/consultaprecos/internal/domain/providers"
)

// MockProvider implements a mock geolocation provider for development and
// testing. It covers a handful of cities in southern Santa Catarina.
type MockProvider struct{}

// NewMockProvider creates a new mock geolocation provider
func NewMockProvider() providers.GeolocationProvider {
	return &MockProvider{}
}

var mockNearbyCities = map[string][]string{
	"orleans":         {"Orleans", "São Ludgero", "Braço do Norte", "Lauro Müller", "Urussanga", "Tubarão", "Criciúma"},
	"tubarão":         {"Tubarão", "Capivari de Baixo", "Gravatal", "Laguna", "Braço do Norte", "Orleans"},
	"criciúma":        {"Criciúma", "Içara", "Nova Veneza", "Siderópolis", "Urussanga", "Orleans"},
	"braço do norte":  {"Braço do Norte", "São Ludgero", "Grão-Pará", "Orleans", "Tubarão"},
	"são ludgero":     {"São Ludgero", "Braço do Norte", "Orleans", "Tubarão"},
	"florianópolis":   {"Florianópolis", "São José", "Palhoça", "Biguaçu"},
	"porto alegre":    {"Porto Alegre", "Canoas", "Viamão", "Gravataí", "Alvorada"},
	"são paulo":       {"São Paulo", "Guarulhos", "Osasco", "Santo André", "São Bernardo do Campo"},
	"rio de janeiro":  {"Rio de Janeiro", "Niterói", "Duque de Caxias", "Nova Iguaçu", "São Gonçalo"},
	"belo horizonte":  {"Belo Horizonte", "Contagem", "Betim", "Nova Lima"},
}

// NearbyCityNames returns a canned list of nearby cities for known cities
// and an empty list for everything else.
func (m *MockProvider) NearbyCityNames(ctx context.Context, city, state string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if names, ok := mockNearbyCities[key]; ok {
		out := make([]string, len(names))
		copy(out, names)
		return out, nil
	}
	return []string{}, nil
}
