// Package http exposes the loaded report catalog over a read-only JSON
// API: load outcomes, exploration summaries, assignment queries and
// header-detection diagnostics, plus an explicit reload endpoint.
package http
