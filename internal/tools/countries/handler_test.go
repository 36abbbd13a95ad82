package countries_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vporto/almanac/internal/tools/countries"
	"github.com/vporto/almanac/pkg/domain"
)

const portugalPayload = `[{
	"name": {"common": "Portugal", "official": "Portuguese Republic"},
	"capital": ["Lisbon"],
	"population": 10000000,
	"area": 92090.0,
	"region": "Europe",
	"subregion": "Southern Europe",
	"languages": {"por": "Portuguese"},
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"cca2": "PT",
	"cca3": "PRT",
	"timezones": ["UTC-01:00", "UTC", "UTC+01:00", "UTC+02:00"],
	"flag": "🇵🇹"
}]`

func TestLocationFacts_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/Portugal", r.URL.Path)
		w.Write([]byte(portugalPayload))
	}))
	defer ts.Close()

	client := countries.NewClient(ts.URL, ts.Client())
	h := countries.NewHandler(client, nil)

	res, err := h(context.Background(), map[string]any{"country": "Portugal"})

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeOK, res.Outcome)
	assert.Contains(t, res.Text, "**Portugal**")
	assert.Contains(t, res.Text, "Official name: Portuguese Republic")
	assert.Contains(t, res.Text, "Capital: Lisbon")
	assert.Contains(t, res.Text, "Region: Europe (Southern Europe)")
	// 10000000 / 92090 = 108.58... rounded to one decimal.
	assert.Contains(t, res.Text, "Density: 108.6 per km²")
	assert.Contains(t, res.Text, "Portuguese")
	assert.Contains(t, res.Text, "Euro (€)")
	assert.Contains(t, res.Text, "Codes: PT / PRT")
	// Only the first three timezones appear.
	assert.Contains(t, res.Text, "UTC-01:00, UTC, UTC+01:00")
	assert.NotContains(t, res.Text, "UTC+02:00")
}

func TestLocationFacts_SymbolFallsBackToCode(t *testing.T) {
	payload := `[{
		"name": {"common": "Testland", "official": "Testland"},
		"population": 10,
		"area": 1.0,
		"currencies": {"XTS": {"name": "Test Dollar"}}
	}]`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer ts.Close()

	h := countries.NewHandler(countries.NewClient(ts.URL, ts.Client()), nil)
	res, err := h(context.Background(), map[string]any{"country": "Testland"})

	require.NoError(t, err)
	assert.Contains(t, res.Text, "Test Dollar (XTS)")
	assert.Contains(t, res.Text, "Capital: N/A")
}

func TestLocationFacts_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	h := countries.NewHandler(countries.NewClient(ts.URL, ts.Client()), nil)
	res, err := h(context.Background(), map[string]any{"country": "Wakanda"})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotFound, res.Outcome)
	assert.Contains(t, res.Text, "'Wakanda' not found")
}

func TestLocationFacts_EmptyMatchesIsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	h := countries.NewHandler(countries.NewClient(ts.URL, ts.Client()), nil)
	res, err := h(context.Background(), map[string]any{"country": "Nowhere"})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotFound, res.Outcome)
}

func TestLocationFacts_MissingCountry(t *testing.T) {
	h := countries.NewHandler(countries.NewClient("http://unused", http.DefaultClient), nil)

	res, err := h(context.Background(), map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeInvalidInput, res.Outcome)
	assert.Contains(t, res.Text, "'country' is missing")
}
