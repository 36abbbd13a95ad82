package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vporto/almanac/internal/cache"
	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/internal/tools"
	"github.com/vporto/almanac/pkg/domain"
)

// Descriptor returns the get_weather tool metadata.
func Descriptor() domain.Tool {
	return domain.Tool{
		Name: "get_weather",
		Description: "Get real-time weather for any city: temperature, " +
			"conditions, humidity and wind.",
		Params: []domain.Param{
			{Name: "city", Description: "City name (e.g. 'Lisbon', 'New York')", Required: true},
			{Name: "country_code", Description: "Optional ISO country code (e.g. 'PT', 'US')", Default: ""},
		},
	}
}

type params struct {
	City        string `mapstructure:"city"`
	CountryCode string `mapstructure:"country_code"`
}

// NewHandler builds the tool handler. The cache store may be nil.
func NewHandler(client *Client, store *cache.Store) registry.Handler {
	return func(ctx context.Context, args map[string]any) (domain.Result, error) {
		var p params
		if err := tools.DecodeArgs(args, &p); err != nil {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: invalid arguments for get_weather: %v", err), nil
		}
		if p.City == "" {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: required argument 'city' is missing"), nil
		}
		if !client.Configured() {
			return domain.Failf(domain.OutcomeNotConfigured,
				"Error: WEATHER_API_KEY is not configured. Set the environment variable to enable weather lookups."), nil
		}

		query := p.City
		if p.CountryCode != "" {
			query = p.City + "," + p.CountryCode
		}

		cacheKey := "weather:" + strings.ToLower(query)
		if text, ok := store.Get(ctx, cacheKey); ok {
			return domain.OK(text), nil
		}

		obs, err := client.Current(ctx, query)
		if errors.Is(err, ErrCityNotFound) {
			return domain.Failf(domain.OutcomeNotFound,
				"Error: city '%s' not found. Check the spelling.", p.City), nil
		}
		if err != nil {
			return domain.Failf(domain.OutcomeRemoteFault, "Error obtaining weather: %v", err), nil
		}

		text := format(obs)
		store.Set(ctx, cacheKey, text)
		return domain.OK(text), nil
	}
}

func format(obs *Observation) string {
	desc := obs.Description
	if desc == "" {
		desc = "N/A"
	} else {
		desc = strings.ToUpper(desc[:1]) + desc[1:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Weather in %s, %s**\n\n", obs.City, obs.Country)
	b.WriteString("**Temperature**\n")
	fmt.Fprintf(&b, "- Current: %.1f°C\n", obs.Temp)
	fmt.Fprintf(&b, "- Feels like: %.1f°C\n", obs.FeelsLike)
	fmt.Fprintf(&b, "- Min: %.1f°C\n", obs.TempMin)
	fmt.Fprintf(&b, "- Max: %.1f°C\n\n", obs.TempMax)
	b.WriteString("**Conditions**\n")
	fmt.Fprintf(&b, "- %s\n", desc)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", obs.Humidity)
	fmt.Fprintf(&b, "- Wind: %.1f m/s (%d°)\n", obs.WindSpeed, obs.WindDeg)
	fmt.Fprintf(&b, "- Pressure: %d hPa\n", obs.Pressure)
	fmt.Fprintf(&b, "- Visibility: %.1f km", obs.VisibilityKM)
	return b.String()
}
