// Package almanac is a small tool server that exposes weather lookups,
// local filesystem reads, country facts and AI-backed text analysis as a
// fixed set of named tools. The same registry is served over the Model
// Context Protocol (stdio or SSE) and a plain HTTP JSON API.
//
// The interesting part lives in internal/registry (dispatch and fault
// containment) and internal/providers (ordered fallback across generative
// providers). Everything else is transport and formatting.
package almanac

// Version is the current almanac release.
const Version = "0.3.0"
