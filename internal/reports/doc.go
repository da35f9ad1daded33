// Package reports loads SAP spreadsheet exports into in-memory tables.
//
// Each configured file is opened with excelize, its header row is either
// taken from configuration or located by the headerdetect package, and the
// result is materialized into an immutable Catalog snapshot keyed by
// logical report name. Entries fail independently: one unreadable file
// never aborts the rest of the load.
//
// The Catalog exposes retrieval, an exploration summary, and an assignment
// finder that scans a name-like column for rows matching a user.
package reports
