package domain

import "fmt"

// Outcome classifies how a tool invocation ended. Failures are still regular
// results: the text carries the diagnostic and the kind lets transports map
// to status codes without parsing it.
type Outcome int

const (
	// OutcomeOK is a successful invocation.
	OutcomeOK Outcome = iota
	// OutcomeNotConfigured means a required credential is missing; no
	// remote attempt was made.
	OutcomeNotConfigured
	// OutcomeNotFound means the remote resource or local path has no match.
	OutcomeNotFound
	// OutcomeInvalidInput covers wrong path kinds, decode failures,
	// permission denials and missing required arguments.
	OutcomeInvalidInput
	// OutcomeRemoteFault covers every other remote or parsing failure.
	OutcomeRemoteFault
	// OutcomeUnknownTool means the dispatch target is not in the registry.
	OutcomeUnknownTool
)

// String returns a stable label, used for metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotConfigured:
		return "not_configured"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeRemoteFault:
		return "remote_fault"
	case OutcomeUnknownTool:
		return "unknown_tool"
	default:
		return "unknown"
	}
}

// Result is the single textual payload produced by every tool invocation.
type Result struct {
	Text    string  `json:"text"`
	Outcome Outcome `json:"-"`
}

// Failed reports whether the result carries a diagnostic instead of data.
func (r Result) Failed() bool {
	return r.Outcome != OutcomeOK
}

// OK builds a successful result.
func OK(text string) Result {
	return Result{Text: text, Outcome: OutcomeOK}
}

// Failf builds a failure result with formatted diagnostic text.
func Failf(o Outcome, format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...), Outcome: o}
}
