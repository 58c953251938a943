// Package report derives the listing, detail, and statistics tables from a
// batch result. Building is pure: no I/O, no mutation of the input.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Akira-YMZK/generator"
)

// Sheet names for the three derived tables.
const (
	ListingSheet    = "Listing"
	DetailSheet     = "Details"
	StatisticsSheet = "Statistics"
)

const timestampLayout = "2006-01-02 15:04:05"

// Builder turns a BatchResult into report tables.
type Builder struct {
	// Location localizes extraction timestamps. Defaults to time.Local.
	Location *time.Location
}

// NewBuilder creates a Builder rendering timestamps in loc.
// A nil loc means local time.
func NewBuilder(loc *time.Location) *Builder {
	return &Builder{Location: loc}
}

// Build returns the listing, detail, and statistics tables in that order.
// A zero-record batch yields tables with headers and no data rows.
func (b *Builder) Build(result generator.BatchResult) []generator.ReportTable {
	return []generator.ReportTable{
		b.listingTable(result),
		b.detailTable(result),
		b.statisticsTable(result),
	}
}

func (b *Builder) listingTable(result generator.BatchResult) generator.ReportTable {
	table := generator.ReportTable{
		Name: ListingSheet,
		Header: []string{
			"Job Title", "Company", "Location",
			"Salary Min", "Salary Max", "Salary Type",
			"Employment Type", "URL", "Extracted At",
		},
	}
	for _, job := range result {
		table.Rows = append(table.Rows, []string{
			job.JobTitle,
			job.CompanyName,
			job.Location,
			formatNumber(job.Salary.Min),
			formatNumber(job.Salary.Max),
			job.Salary.Type,
			job.EmploymentType,
			job.SourceURL,
			b.formatTime(job.ExtractedAt),
		})
	}
	return table
}

func (b *Builder) detailTable(result generator.BatchResult) generator.ReportTable {
	table := generator.ReportTable{
		Name: DetailSheet,
		Header: []string{
			"#", "Job Title", "Company", "Location",
			"Salary Min", "Salary Max", "Salary Type", "Salary Details",
			"Working Hours", "Holidays", "Benefits",
			"Experience", "Skills", "Education",
			"Job Description", "Application Method", "Employment Type",
			"URL", "Extracted At",
		},
	}
	for i, job := range result {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			job.JobTitle,
			job.CompanyName,
			job.Location,
			formatNumber(job.Salary.Min),
			formatNumber(job.Salary.Max),
			job.Salary.Type,
			job.Salary.Details,
			job.WorkingHours,
			job.Holidays,
			strings.Join(job.Benefits, ", "),
			job.Requirements.Experience,
			strings.Join(job.Requirements.Skills, ", "),
			job.Requirements.Education,
			job.JobDescription,
			job.ApplicationMethod,
			job.EmploymentType,
			job.SourceURL,
			b.formatTime(job.ExtractedAt),
		})
	}
	return table
}

func (b *Builder) statisticsTable(result generator.BatchResult) generator.ReportTable {
	table := generator.ReportTable{
		Name:   StatisticsSheet,
		Header: []string{"Item", "Count"},
	}
	table.Rows = append(table.Rows, []string{"Total records", strconv.Itoa(len(result))})

	sections := []struct {
		label  string
		counts []KeyCount
	}{
		{"By job title", CountByJobTitle(result)},
		{"By location", CountByLocation(result)},
		{"By employment type", CountByEmploymentType(result)},
	}

	for _, section := range sections {
		table.Rows = append(table.Rows, []string{"", ""})
		table.Rows = append(table.Rows, []string{section.label, ""})
		for _, kc := range section.counts {
			table.Rows = append(table.Rows, []string{kc.Key, strconv.Itoa(kc.Count)})
		}
	}
	return table
}

// CountByJobTitle groups records by exact job title.
func CountByJobTitle(result generator.BatchResult) []KeyCount {
	return countBy(result, func(j *generator.StructuredJob) string { return j.JobTitle })
}

// CountByLocation groups records by exact location.
func CountByLocation(result generator.BatchResult) []KeyCount {
	return countBy(result, func(j *generator.StructuredJob) string { return j.Location })
}

// CountByEmploymentType groups records by exact employment type.
func CountByEmploymentType(result generator.BatchResult) []KeyCount {
	return countBy(result, func(j *generator.StructuredJob) string { return j.EmploymentType })
}

// KeyCount is one grouping key with its exact record count.
type KeyCount struct {
	Key   string
	Count int
}

// countBy groups records by the exact string the key function returns.
// Records with an absent (empty) key are excluded from the aggregation.
// Comparison is exact string equality; no normalization or case folding.
func countBy(result generator.BatchResult, key func(*generator.StructuredJob) string) []KeyCount {
	counts := map[string]int{}
	for _, job := range result {
		k := key(job)
		if k == "" {
			continue
		}
		counts[k]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]KeyCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, KeyCount{Key: k, Count: counts[k]})
	}
	return out
}

func (b *Builder) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	loc := b.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(timestampLayout)
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
