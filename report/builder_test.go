package report_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/Akira-YMZK/generator"
	"github.com/Akira-YMZK/generator/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func sampleResult() generator.BatchResult {
	ts := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	return generator.BatchResult{
		{
			JobTitle:       "Engineer",
			CompanyName:    "Acme",
			Location:       "Tokyo",
			Salary:         generator.Salary{Min: f64(6000000), Max: f64(9000000), Type: "annual"},
			Benefits:       []string{"remote work", "health insurance"},
			Requirements:   generator.Requirements{Experience: "3+ years", Skills: []string{"Go", "SQL"}},
			EmploymentType: "full-time",
			SourceURL:      "https://a.example/1",
			ExtractedAt:    ts,
		},
		{
			JobTitle:       "Engineer",
			Location:       "Osaka",
			EmploymentType: "full-time",
			SourceURL:      "https://b.example/2",
			ExtractedAt:    ts,
		},
		{
			JobTitle:    "Designer",
			Location:    "Tokyo",
			SourceURL:   "https://c.example/3",
			ExtractedAt: ts,
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("returns listing, detail, and statistics tables", func(t *testing.T) {
		t.Parallel()

		tables := report.NewBuilder(time.UTC).Build(sampleResult())

		require.Len(t, tables, 3)
		assert.Equal(t, report.ListingSheet, tables[0].Name)
		assert.Equal(t, report.DetailSheet, tables[1].Name)
		assert.Equal(t, report.StatisticsSheet, tables[2].Name)
	})

	t.Run("listing has one row per record with localized timestamp", func(t *testing.T) {
		t.Parallel()

		jst := time.FixedZone("JST", 9*60*60)
		tables := report.NewBuilder(jst).Build(sampleResult())
		listing := tables[0]

		require.Len(t, listing.Rows, 3)
		assert.Equal(t, "Engineer", listing.Rows[0][0])
		assert.Equal(t, "Acme", listing.Rows[0][1])
		assert.Equal(t, "6000000", listing.Rows[0][3])
		assert.Equal(t, "9000000", listing.Rows[0][4])
		// 03:00 UTC renders as 12:00 JST.
		assert.Equal(t, "2025-06-01 12:00:00", listing.Rows[0][8])
	})

	t.Run("absent fields render as empty cells", func(t *testing.T) {
		t.Parallel()

		tables := report.NewBuilder(time.UTC).Build(sampleResult())
		listing := tables[0]

		// Second record has no company and no salary.
		assert.Equal(t, "", listing.Rows[1][1])
		assert.Equal(t, "", listing.Rows[1][3])
		assert.Equal(t, "", listing.Rows[1][4])
	})

	t.Run("detail rows carry sequence numbers and joined arrays", func(t *testing.T) {
		t.Parallel()

		tables := report.NewBuilder(time.UTC).Build(sampleResult())
		detail := tables[1]

		require.Len(t, detail.Rows, 3)
		for i, row := range detail.Rows {
			assert.Equal(t, strconv.Itoa(i+1), row[0])
		}
		assert.Equal(t, "remote work, health insurance", detail.Rows[0][10])
		assert.Equal(t, "Go, SQL", detail.Rows[0][12])
	})

	t.Run("statistics totals match the detail table", func(t *testing.T) {
		t.Parallel()

		result := sampleResult()
		tables := report.NewBuilder(time.UTC).Build(result)
		stats := tables[2]

		require.NotEmpty(t, stats.Rows)
		assert.Equal(t, []string{"Total records", strconv.Itoa(len(tables[1].Rows))}, stats.Rows[0])
	})

	t.Run("grouped counts sum to records having the field", func(t *testing.T) {
		t.Parallel()

		counts := report.CountByJobTitle(sampleResult())

		total := 0
		for _, kc := range counts {
			total += kc.Count
		}
		assert.Equal(t, 3, total)
		assert.Equal(t, []report.KeyCount{{Key: "Designer", Count: 1}, {Key: "Engineer", Count: 2}}, counts)
	})

	t.Run("records with an absent grouping field are excluded from that aggregation", func(t *testing.T) {
		t.Parallel()

		// Third record has no employment type.
		counts := report.CountByEmploymentType(sampleResult())

		total := 0
		for _, kc := range counts {
			total += kc.Count
		}
		assert.Equal(t, 2, total)
	})

	t.Run("grouping is exact string equality without case folding", func(t *testing.T) {
		t.Parallel()

		ts := time.Now()
		result := generator.BatchResult{
			{JobTitle: "engineer", SourceURL: "https://a.example", ExtractedAt: ts},
			{JobTitle: "Engineer", SourceURL: "https://b.example", ExtractedAt: ts},
		}

		counts := report.CountByJobTitle(result)

		assert.Len(t, counts, 2)
	})

	t.Run("zero-record batch yields headers and no data rows", func(t *testing.T) {
		t.Parallel()

		tables := report.NewBuilder(time.UTC).Build(nil)

		require.Len(t, tables, 3)
		assert.NotEmpty(t, tables[0].Header)
		assert.Empty(t, tables[0].Rows)
		assert.NotEmpty(t, tables[1].Header)
		assert.Empty(t, tables[1].Rows)
		// Statistics still reports a zero total.
		assert.Equal(t, []string{"Total records", "0"}, tables[2].Rows[0])
	})

	t.Run("degraded records appear in listing and detail", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		degraded := generator.NewDegradedJob("https://x.example",
			generator.Errorf(generator.EUNAVAILABLE, "fetch timed out"), "raw text", now)

		tables := report.NewBuilder(time.UTC).Build(generator.BatchResult{degraded})

		require.Len(t, tables[0].Rows, 1)
		require.Len(t, tables[1].Rows, 1)
		assert.Contains(t, tables[1].Rows[0][14], generator.DegradedMarker)
	})
}
