package main

import (
	"encoding/json"
	"fmt"

	"github.com/Akira-YMZK/generator"
	"github.com/Akira-YMZK/generator/gemini"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	if deps.APIKey == "" {
		fmt.Fprintln(deps.Stderr, "error: no API key. Set GEMINI_API_KEY or pass --api-key.")
		return generator.Errorf(generator.EINVALID, "apiKey is required")
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
	}

	raw, err := deps.Extractor.Extract(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
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

	job, err := gemini.NewStructurer(client).Structure(deps.Ctx, raw)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", generator.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return generator.Errorf(generator.EINTERNAL, "failed to encode record: %v", err)
	}

	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
