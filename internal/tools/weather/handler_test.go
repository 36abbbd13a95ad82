package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vporto/almanac/internal/tools/weather"
	"github.com/vporto/almanac/pkg/domain"
)

const lisbonPayload = `{
	"name": "Lisbon",
	"sys": {"country": "PT"},
	"main": {"temp": 21.4, "feels_like": 21.1, "temp_min": 19.0, "temp_max": 23.2, "humidity": 64, "pressure": 1018},
	"weather": [{"description": "clear sky"}],
	"wind": {"speed": 4.6, "deg": 320},
	"visibility": 10000
}`

func TestWeather_Success(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(lisbonPayload))
	}))
	defer ts.Close()

	client := weather.NewClient("test-key", ts.URL, ts.Client())
	h := weather.NewHandler(client, nil)

	res, err := h(context.Background(), map[string]any{"city": "Lisbon", "country_code": "PT"})

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeOK, res.Outcome)
	assert.Equal(t, "Lisbon,PT", gotQuery)
	assert.Contains(t, res.Text, "**Weather in Lisbon, PT**")
	assert.Contains(t, res.Text, "Current: 21.4°C")
	assert.Contains(t, res.Text, "Clear sky")
	assert.Contains(t, res.Text, "Humidity: 64%")
	assert.Contains(t, res.Text, "Wind: 4.6 m/s (320°)")
	assert.Contains(t, res.Text, "Visibility: 10.0 km")
}

func TestWeather_CityNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := weather.NewClient("test-key", ts.URL, ts.Client())
	h := weather.NewHandler(client, nil)

	res, err := h(context.Background(), map[string]any{"city": "Atlantis", "country_code": ""})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotFound, res.Outcome)
	assert.Contains(t, res.Text, "'Atlantis' not found")
}

func TestWeather_RemoteFault(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := weather.NewClient("test-key", ts.URL, ts.Client())
	h := weather.NewHandler(client, nil)

	res, err := h(context.Background(), map[string]any{"city": "Lisbon", "country_code": ""})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRemoteFault, res.Outcome)
	assert.Contains(t, res.Text, "Error obtaining weather")
	assert.Contains(t, res.Text, "HTTP 500")
}

func TestWeather_NotConfiguredSkipsNetwork(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("network call attempted without a credential")
	}))
	defer ts.Close()

	client := weather.NewClient("", ts.URL, ts.Client())
	h := weather.NewHandler(client, nil)

	res, err := h(context.Background(), map[string]any{"city": "Lisbon", "country_code": ""})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotConfigured, res.Outcome)
	assert.Contains(t, res.Text, "WEATHER_API_KEY is not configured")
}

func TestWeather_MissingCity(t *testing.T) {
	client := weather.NewClient("test-key", "http://unused", http.DefaultClient)
	h := weather.NewHandler(client, nil)

	res, err := h(context.Background(), map[string]any{"country_code": ""})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeInvalidInput, res.Outcome)
	assert.Contains(t, res.Text, "'city' is missing")
}
