// Package headerdetect locates the header row in raw spreadsheet exports.
//
// SAP exports rarely put column labels on the first row: title banners,
// blank spacer rows and export metadata commonly precede them. Detect scores
// a bounded window of leading rows on text density, value uniqueness,
// absence of numeric data and known label keywords, then picks the highest
// scoring row. Scoring is deterministic and side-effect free.
package headerdetect
