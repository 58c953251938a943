package generator

import "io"

// BatchResult is the ordered outcome of a batch run: exactly one record per
// input URL, in input order, success or degraded.
type BatchResult []*StructuredJob

// DegradedCount returns how many records in the result are degraded.
func (r BatchResult) DegradedCount() int {
	n := 0
	for _, job := range r {
		if job.Degraded() {
			n++
		}
	}
	return n
}

// ReportTable is one derived, read-only projection of a batch result.
// Absent fields render as empty cells, never as null markers.
type ReportTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReportBuilder derives the report tables from a batch result.
type ReportBuilder interface {
	Build(result BatchResult) []ReportTable
}

// ReportWriter serializes report tables into a concrete spreadsheet byte
// stream, one sheet per table.
type ReportWriter interface {
	Write(w io.Writer, tables []ReportTable) error
}
