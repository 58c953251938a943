package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akira-YMZK/generator"
	main "github.com/Akira-YMZK/generator/cmd/jobgen"
	"github.com/Akira-YMZK/generator/mock"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints raw extraction as JSON", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, "https://example.com/jobs/1", url)
				return "<html><body><main>Backend Engineer</main></body></html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(html, sourceURL string) (*generator.RawExtraction, error) {
				return &generator.RawExtraction{
					Title:         "Backend Engineer",
					Content:       "Backend Engineer",
					ContentLength: 16,
					SourceURL:     sourceURL,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Fetcher:   fetcher,
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{URL: "https://example.com/jobs/1"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"Backend Engineer"`)
		assert.Contains(t, stdout.String(), "https://example.com/jobs/1")
		assert.Empty(t, stderr.String())
	})

	t.Run("reports fetch failures on stderr", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", generator.Errorf(generator.EUNAVAILABLE, "HTTP 503")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Fetcher: fetcher,
		}

		cmd := &main.ExtractCmd{URL: "https://example.com/jobs/down"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, generator.EUNAVAILABLE, generator.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.Contains(t, stderr.String(), "HTTP 503")
		assert.Empty(t, stdout.String())
	})

	t.Run("reports extraction failures on stderr", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(_, _ string) (*generator.RawExtraction, error) {
				return nil, generator.Errorf(generator.EINTERNAL, "parse failed")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Fetcher:   fetcher,
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{URL: "https://example.com/jobs/1"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "parse failed")
	})
}

func TestAPIKeyGuards(t *testing.T) {
	t.Parallel()

	t.Run("preview requires an API key", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.PreviewCmd{URL: "https://example.com/jobs/1"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, generator.EINVALID, generator.ErrorCode(err))
		assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
	})

	t.Run("batch requires an API key", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := &main.BatchCmd{URLsFile: "urls.txt"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, generator.EINVALID, generator.ErrorCode(err))
		assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
	})
}
