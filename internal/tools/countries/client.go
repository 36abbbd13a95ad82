// Package countries implements the get_location_facts tool on top of the
// RestCountries API.
package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrCountryNotFound is returned when the remote service has no match.
var ErrCountryNotFound = errors.New("country not found")

// Country is the parsed subset of a RestCountries entry.
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Population int64    `json:"population"`
	Area       float64  `json:"area"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Languages  map[string]string `json:"languages"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	CCA2      string   `json:"cca2"`
	CCA3      string   `json:"cca3"`
	Timezones []string `json:"timezones"`
	Flag      string   `json:"flag"`
}

// Client calls the country-facts service; needs no credential.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a countries client sharing the application HTTP client.
func NewClient(baseURL string, httpc *http.Client) *Client {
	return &Client{baseURL: baseURL, httpc: httpc}
}

// ByName searches countries by name and returns the first match.
func (c *Client) ByName(ctx context.Context, name string) (*Country, error) {
	u := c.baseURL + "/name/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("country request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCountryNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country API error (HTTP %d)", resp.StatusCode)
	}

	var matches []Country
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("failed to parse country response: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrCountryNotFound
	}
	return &matches[0], nil
}
