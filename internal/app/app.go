// Package app wires configuration into a ready-to-serve dispatcher. All
// shared state (HTTP client, cache, provider chain) is constructed eagerly
// here, once, so handlers never race on first-use initialization.
package app

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/vporto/almanac/internal/cache"
	"github.com/vporto/almanac/internal/config"
	"github.com/vporto/almanac/internal/providers"
	"github.com/vporto/almanac/internal/registry"
	"github.com/vporto/almanac/internal/tools/analyze"
	"github.com/vporto/almanac/internal/tools/countries"
	"github.com/vporto/almanac/internal/tools/fsys"
	"github.com/vporto/almanac/internal/tools/weather"
)

// App owns the dispatcher and every shared resource behind it.
type App struct {
	Config     *config.Config
	Dispatcher *registry.Dispatcher

	log       *slog.Logger
	httpc     *http.Client
	chain     *providers.Chain
	store     *cache.Store
	closeOnce sync.Once
	closeErr  error
}

// New builds the full tool registry from configuration. Missing credentials
// degrade individual tools, never startup.
func New(cfg *config.Config, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	// One reusable client for the weather and country services; its timeout
	// bounds every data-service call.
	httpc := &http.Client{Timeout: config.DefaultRemoteTimeout}

	var store *cache.Store
	if cfg.Cache.Enabled() {
		store = cache.New(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword,
			cfg.Cache.RedisDB, cfg.Cache.TTL(), log)
		log.Info("response cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL())
	}

	var ps []providers.Provider
	if cfg.AI.OpenAIAPIKey != "" {
		ps = append(ps, providers.NewOpenAI(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel, cfg.AI.Timeout()))
	}
	if cfg.AI.AnthropicAPIKey != "" {
		ps = append(ps, providers.NewAnthropic(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, cfg.AI.Timeout()))
	}
	chain := providers.NewChain(log, ps...)

	weatherClient := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, httpc)
	countryClient := countries.NewClient(cfg.Countries.BaseURL, httpc)

	d := registry.New(log)
	d.Register(weather.Descriptor(), weather.NewHandler(weatherClient, store))
	d.Register(fsys.ReadDescriptor(), fsys.NewReadHandler())
	d.Register(fsys.ListDescriptor(), fsys.NewListHandler())
	d.Register(countries.Descriptor(), countries.NewHandler(countryClient, store))
	d.Register(analyze.Descriptor(), analyze.NewHandler(chain))

	if weatherClient.Configured() {
		log.Info("weather API configured")
	} else {
		log.Warn("WEATHER_API_KEY not set; get_weather will report not configured")
	}
	switch names := chain.Names(); len(names) {
	case 0:
		log.Warn("no AI provider configured; analyze_with_ai will report not configured")
	case 1:
		log.Info("AI provider configured", "primary", names[0])
	default:
		log.Info("AI providers configured", "primary", names[0], "fallback", names[1])
	}

	return &App{
		Config:     cfg,
		Dispatcher: d,
		log:        log,
		httpc:      httpc,
		chain:      chain,
		store:      store,
	}
}

// Close releases the shared network client, cache connection and provider
// clients. Safe to call from multiple teardown paths; only the first runs.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		if err := a.chain.Close(); err != nil {
			a.closeErr = err
		}
		if err := a.store.Close(); err != nil && a.closeErr == nil {
			a.closeErr = err
		}
		a.httpc.CloseIdleConnections()
	})
	return a.closeErr
}
