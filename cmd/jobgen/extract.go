package main

import (
	"encoding/json"
	"fmt"

	"github.com/Akira-YMZK/generator"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
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

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return generator.Errorf(generator.EINTERNAL, "failed to encode extraction: %v", err)
	}

	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
