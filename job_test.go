package generator_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Akira-YMZK/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredJob_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires source URL", func(t *testing.T) {
		t.Parallel()

		job := &generator.StructuredJob{ExtractedAt: time.Now()}

		err := job.Validate()
		require.Error(t, err)
		assert.Equal(t, generator.EINVALID, generator.ErrorCode(err))
	})

	t.Run("requires extraction timestamp", func(t *testing.T) {
		t.Parallel()

		job := &generator.StructuredJob{SourceURL: "https://example.com/jobs/1"}

		err := job.Validate()
		require.Error(t, err)
		assert.Equal(t, generator.EINVALID, generator.ErrorCode(err))
	})

	t.Run("accepts record with both populated", func(t *testing.T) {
		t.Parallel()

		job := &generator.StructuredJob{
			SourceURL:   "https://example.com/jobs/1",
			ExtractedAt: time.Now(),
		}

		require.NoError(t, job.Validate())
	})
}

func TestNewDegradedJob(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("description starts with the degraded marker", func(t *testing.T) {
		t.Parallel()

		cause := generator.Errorf(generator.EUNAVAILABLE, "fetch timed out")
		job := generator.NewDegradedJob("https://example.com/jobs/1", cause, "", now)

		assert.True(t, strings.HasPrefix(job.JobDescription, generator.DegradedMarker))
		assert.True(t, job.Degraded())
		assert.Contains(t, job.JobDescription, "fetch timed out")
	})

	t.Run("always populates source URL and timestamp", func(t *testing.T) {
		t.Parallel()

		cause := generator.Errorf(generator.ENOJSON, "no JSON object in reply")
		job := generator.NewDegradedJob("https://example.com/jobs/2", cause, "raw text", now)

		require.NoError(t, job.Validate())
		assert.Equal(t, "https://example.com/jobs/2", job.SourceURL)
		assert.Equal(t, now, job.ExtractedAt)
	})

	t.Run("embeds raw content excerpt when available", func(t *testing.T) {
		t.Parallel()

		cause := generator.Errorf(generator.EBADJSON, "reply JSON did not parse")
		job := generator.NewDegradedJob("https://example.com/jobs/3", cause, "Engineer wanted, apply now.", now)

		assert.Contains(t, job.JobDescription, "Engineer wanted, apply now.")
	})

	t.Run("truncates long raw content with a marker", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", generator.DegradedExcerptLimit+500)
		cause := generator.Errorf(generator.ERATELIMITED, "rate limited")
		job := generator.NewDegradedJob("https://example.com/jobs/4", cause, long, now)

		assert.Contains(t, job.JobDescription, "... (truncated)")
		assert.NotContains(t, job.JobDescription, strings.Repeat("a", generator.DegradedExcerptLimit+1))
	})

	t.Run("omits excerpt section when no content was extracted", func(t *testing.T) {
		t.Parallel()

		cause := generator.Errorf(generator.EUNAVAILABLE, "HTTP 503")
		job := generator.NewDegradedJob("https://example.com/jobs/5", cause, "", now)

		assert.NotContains(t, job.JobDescription, "--- raw content ---")
	})
}

func TestBatchResult_DegradedCount(t *testing.T) {
	t.Parallel()

	now := time.Now()
	result := generator.BatchResult{
		{JobTitle: "Engineer", SourceURL: "https://a.example", ExtractedAt: now},
		generator.NewDegradedJob("https://b.example", generator.Errorf(generator.EUNAVAILABLE, "timeout"), "", now),
		{JobTitle: "Designer", SourceURL: "https://c.example", ExtractedAt: now},
	}

	assert.Equal(t, 1, result.DegradedCount())
}
