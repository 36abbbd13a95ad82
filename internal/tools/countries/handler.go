package countries

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vporto/almanac/internal/cache"
	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/internal/tools"
	"github.com/vporto/almanac/pkg/domain"
)

// Descriptor returns the get_location_facts tool metadata.
func Descriptor() domain.Tool {
	return domain.Tool{
		Name: "get_location_facts",
		Description: "Get facts about a country: population, capital, " +
			"languages, currency and region.",
		Params: []domain.Param{
			{Name: "country", Description: "Country name (e.g. 'Brazil', 'Japan')", Required: true},
		},
	}
}

type params struct {
	Country string `mapstructure:"country"`
}

// NewHandler builds the tool handler. The cache store may be nil.
func NewHandler(client *Client, store *cache.Store) registry.Handler {
	return func(ctx context.Context, args map[string]any) (domain.Result, error) {
		var p params
		if err := tools.DecodeArgs(args, &p); err != nil {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: invalid arguments for get_location_facts: %v", err), nil
		}
		if p.Country == "" {
			return domain.Failf(domain.OutcomeInvalidInput, "Error: required argument 'country' is missing"), nil
		}

		cacheKey := "country:" + strings.ToLower(p.Country)
		if text, ok := store.Get(ctx, cacheKey); ok {
			return domain.OK(text), nil
		}

		info, err := client.ByName(ctx, p.Country)
		if errors.Is(err, ErrCountryNotFound) {
			return domain.Failf(domain.OutcomeNotFound,
				"Error: country '%s' not found. Check the spelling.", p.Country), nil
		}
		if err != nil {
			return domain.Failf(domain.OutcomeRemoteFault, "Error obtaining country facts: %v", err), nil
		}

		text := format(info)
		store.Set(ctx, cacheKey, text)
		return domain.OK(text), nil
	}
}

func format(c *Country) string {
	capital := "N/A"
	if len(c.Capital) > 0 {
		capital = c.Capital[0]
	}

	density := "N/A"
	if c.Area > 0 {
		density = fmt.Sprintf("%.1f per km²", float64(c.Population)/c.Area)
	}

	// Language and currency maps are unordered; sort by key for a stable card.
	langs := "N/A"
	if len(c.Languages) > 0 {
		keys := make([]string, 0, len(c.Languages))
		for k := range c.Languages {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		names := make([]string, 0, len(keys))
		for _, k := range keys {
			names = append(names, c.Languages[k])
		}
		langs = strings.Join(names, ", ")
	}

	currencies := "N/A"
	if len(c.Currencies) > 0 {
		codes := make([]string, 0, len(c.Currencies))
		for code := range c.Currencies {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		entries := make([]string, 0, len(codes))
		for _, code := range codes {
			cur := c.Currencies[code]
			symbol := cur.Symbol
			if symbol == "" {
				symbol = code
			}
			entries = append(entries, fmt.Sprintf("%s (%s)", cur.Name, symbol))
		}
		currencies = strings.Join(entries, ", ")
	}

	timezones := c.Timezones
	if len(timezones) > 3 {
		timezones = timezones[:3]
	}
	tz := "N/A"
	if len(timezones) > 0 {
		tz = strings.Join(timezones, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** %s\n\n", c.Name.Common, c.Flag)
	b.WriteString("**General**\n")
	fmt.Fprintf(&b, "- Official name: %s\n", c.Name.Official)
	fmt.Fprintf(&b, "- Capital: %s\n", capital)
	fmt.Fprintf(&b, "- Region: %s (%s)\n\n", orNA(c.Region), orNA(c.Subregion))
	b.WriteString("**Demographics**\n")
	fmt.Fprintf(&b, "- Population: %d\n", c.Population)
	fmt.Fprintf(&b, "- Area: %.0f km²\n", c.Area)
	fmt.Fprintf(&b, "- Density: %s\n\n", density)
	fmt.Fprintf(&b, "**Languages**\n- %s\n\n", langs)
	fmt.Fprintf(&b, "**Currency**\n- %s\n\n", currencies)
	b.WriteString("**Other**\n")
	fmt.Fprintf(&b, "- Codes: %s / %s\n", orNA(c.CCA2), orNA(c.CCA3))
	fmt.Fprintf(&b, "- Timezones: %s", tz)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
