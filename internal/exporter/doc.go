// Package exporter writes loaded report tables and assignment matches to
// CSV for use outside the tool.
package exporter
