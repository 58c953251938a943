//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Akira-YMZK/generator"
	"github.com/Akira-YMZK/generator/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructurer_Integration_StructuresPosting(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := gemini.NewClient(ctx, apiKey)
	require.NoError(t, err)

	raw := &generator.RawExtraction{
		Title:          "Backend Engineer - Acme Corp",
		PrimaryHeading: "Backend Engineer",
		Content: "Acme Corp is hiring a Backend Engineer in Tokyo. " +
			"Salary 6,000,000 to 9,000,000 yen per year. Full-time position. " +
			"Requirements: 3+ years of Go experience. Benefits: remote work, health insurance.",
		SourceURL: "https://example.com/jobs/1",
	}

	structurer := gemini.NewStructurer(client)

	job, err := structurer.Structure(ctx, raw)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/1", job.SourceURL)
	assert.False(t, job.ExtractedAt.IsZero())
	assert.NotEmpty(t, job.JobTitle)
}

func TestProber_Integration_ValidCredential(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gemini.NewClient(ctx, apiKey)
	require.NoError(t, err)

	result, err := gemini.NewProber(client).Probe(ctx)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, generator.ProbeValid, result.Status)
}
