package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Akira-YMZK/generator"
	"github.com/Akira-YMZK/generator/batch"
	"github.com/Akira-YMZK/generator/gemini"
	genslog "github.com/Akira-YMZK/generator/slog"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	if deps.APIKey == "" {
		fmt.Fprintln(deps.Stderr, "error: no API key. Set GEMINI_API_KEY or pass --api-key.")
		return generator.Errorf(generator.EINVALID, "apiKey is required")
	}

	urls, err := readURLs(c.URLsFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %s contains no URLs\n", c.URLsFile)
		return generator.Errorf(generator.EINVALID, "urls file is empty")
	}

	client, err := gemini.NewClient(deps.Ctx, deps.APIKey)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
	}

	probe, err := gemini.NewProber(client).Probe(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
	}
	if !probe.Valid {
		fmt.Fprintf(deps.Stderr, "error: %s\n", probe.Reason)
		return generator.Errorf(generator.EUNAUTHORIZED, "%s", probe.Reason)
	}

	runner := &batch.Runner{
		Fetcher:    genslog.NewLoggingFetcher(deps.Fetcher, deps.Logger),
		Extractor:  deps.Extractor,
		Structurer: genslog.NewLoggingStructurer(gemini.NewStructurer(client), deps.Logger),
		ItemDelay:  c.Delay,
		Logger:     deps.Logger,
		Progress: func(ev batch.ProgressEvent) {
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: %s\n", ev.Completed, ev.Total, ev.State, ev.URL)
		},
	}

	result, err := runner.Run(deps.Ctx, urls)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
	}

	outPath := c.Out
	if outPath == "" {
		outPath = fmt.Sprintf("job_listings_%s.xlsx", time.Now().Format("2006-01-02"))
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to create %s: %s\n", outPath, err)
		return generator.Errorf(generator.EINTERNAL, "failed to create %s: %v", outPath, err)
	}
	defer f.Close()

	if err := deps.Writer.Write(f, deps.Reports.Build(result)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d records (%d degraded) to %s\n",
		len(result), result.DegradedCount(), outPath)
	return nil
}

// readURLs reads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, generator.Errorf(generator.EINVALID, "failed to open %s: %v", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, generator.Errorf(generator.EINTERNAL, "failed to read %s: %v", path, err)
	}
	return urls, nil
}
