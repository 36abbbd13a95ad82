// Package weather implements the get_weather tool on top of the
// OpenWeatherMap current-weather endpoint.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrCityNotFound is returned when the remote service has no match for the
// requested city.
var ErrCityNotFound = errors.New("city not found")

// Observation is the parsed subset of a current-weather response.
type Observation struct {
	City         string
	Country      string
	Description  string
	Temp         float64
	FeelsLike    float64
	TempMin      float64
	TempMax      float64
	Humidity     int
	WindSpeed    float64
	WindDeg      int
	Pressure     int
	VisibilityKM float64
}

// Client calls the weather service. The HTTP client is shared with other
// remote-resource clients and owned by the application wiring.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient creates a weather client. An empty apiKey produces an
// unconfigured client; Configured lets the handler short-circuit before any
// network attempt.
func NewClient(apiKey, baseURL string, httpc *http.Client) *Client {
	return &Client{apiKey: apiKey, baseURL: baseURL, httpc: httpc}
}

// Configured reports whether a credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Current fetches the current weather for query ("city" or "city,CC").
// Units are metric and the locale is fixed to English.
func (c *Client) Current(ctx context.Context, query string) (*Observation, error) {
	params := url.Values{}
	params.Set("appid", c.apiKey)
	params.Set("q", query)
	params.Set("units", "metric")
	params.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCityNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API error (HTTP %d)", resp.StatusCode)
	}

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Visibility int `json:"visibility"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}

	obs := &Observation{
		City:         payload.Name,
		Country:      payload.Sys.Country,
		Temp:         payload.Main.Temp,
		FeelsLike:    payload.Main.FeelsLike,
		TempMin:      payload.Main.TempMin,
		TempMax:      payload.Main.TempMax,
		Humidity:     payload.Main.Humidity,
		Pressure:     payload.Main.Pressure,
		WindSpeed:    payload.Wind.Speed,
		WindDeg:      payload.Wind.Deg,
		VisibilityKM: float64(payload.Visibility) / 1000,
	}
	if len(payload.Weather) > 0 {
		obs.Description = payload.Weather[0].Description
	}
	return obs, nil
}
