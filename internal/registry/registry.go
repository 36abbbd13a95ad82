// Package registry implements the tool registry and dispatcher: a fixed
// table of named operations invoked identically from every transport, with
// uniform fault containment. No handler fault ever propagates past Execute;
// every invocation produces exactly one textual result.
package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vporto/almanac/pkg/domain"
)

// Handler implements one tool. Handlers fold their own failures (missing
// credentials, remote errors, bad paths) into the Result; a non-nil error is
// reserved for faults the handler could not classify and is converted into a
// generic failure text by the dispatcher.
type Handler func(ctx context.Context, args map[string]any) (domain.Result, error)

// Dispatcher routes invocations by tool name.
type Dispatcher struct {
	mu       sync.RWMutex
	order    []string
	tools    map[string]domain.Tool
	handlers map[string]Handler
	log      *slog.Logger
}

// New creates an empty dispatcher. A nil logger disables logging.
func New(log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		tools:    make(map[string]domain.Tool),
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// Register adds a tool and its handler. Registration order is the order
// List reports; registering an existing name replaces the handler but keeps
// the original position.
func (d *Dispatcher) Register(tool domain.Tool, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tools[tool.Name]; !exists {
		d.order = append(d.order, tool.Name)
	}
	d.tools[tool.Name] = tool
	d.handlers[tool.Name] = h
}

// List returns the registered tool descriptors in registration order. The
// returned slice is a copy; repeated calls yield identical sequences.
func (d *Dispatcher) List() []domain.Tool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.Tool, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.tools[name])
	}
	return out
}

// Execute runs the named tool with the given arguments and returns exactly
// one result. Unknown tools, handler errors and handler panics all come back
// as failure results, never as faults.
func (d *Dispatcher) Execute(ctx context.Context, name string, args map[string]any) (res domain.Result) {
	start := time.Now()

	d.mu.RLock()
	tool, known := d.tools[name]
	h := d.handlers[name]
	d.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			d.log.Error("tool panicked", "tool", name, "panic", r)
			res = domain.Failf(domain.OutcomeRemoteFault, "Error executing %s: %v", name, r)
		}
		observe(name, res.Outcome, time.Since(start))
	}()

	if !known {
		d.log.Warn("unknown tool requested", "tool", name)
		return domain.Failf(domain.OutcomeUnknownTool, "Error: tool '%s' not found", name)
	}

	result, err := h(ctx, withDefaults(tool, args))
	if err != nil {
		d.log.Error("tool failed", "tool", name, "err", err)
		return domain.Failf(domain.OutcomeRemoteFault, "Error executing %s: %v", name, err)
	}

	if result.Failed() {
		d.log.Warn("tool returned diagnostic", "tool", name, "outcome", result.Outcome.String())
	} else {
		d.log.Info("tool executed", "tool", name, "duration", time.Since(start))
	}
	return result
}

// withDefaults copies the argument map and fills in declared defaults for
// omitted optional parameters. Missing required parameters are passed
// through untouched; each handler turns those into its own diagnostic.
func withDefaults(tool domain.Tool, args map[string]any) map[string]any {
	out := make(map[string]any, len(args)+1)
	for k, v := range args {
		out[k] = v
	}
	for _, p := range tool.Params {
		if p.Required {
			continue
		}
		if _, ok := out[p.Name]; !ok {
			out[p.Name] = p.Default
		}
	}
	return out
}
