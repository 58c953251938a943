package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Akira-YMZK/generator"
	"github.com/Akira-YMZK/generator/gemini"
	genhttp "github.com/Akira-YMZK/generator/http"
	genslog "github.com/Akira-YMZK/generator/slog"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &genhttp.Server{
		Fetcher:   genslog.NewLoggingFetcher(deps.Fetcher, deps.Logger),
		Extractor: deps.Extractor,
		NewStructurer: func(ctx context.Context, apiKey string) (generator.Structurer, error) {
			client, err := gemini.NewClient(ctx, apiKey)
			if err != nil {
				return nil, err
			}
			return genslog.NewLoggingStructurer(gemini.NewStructurer(client), deps.Logger), nil
		},
		NewProber: func(ctx context.Context, apiKey string) (generator.CredentialProber, error) {
			client, err := gemini.NewClient(ctx, apiKey)
			if err != nil {
				return nil, err
			}
			return gemini.NewProber(client), nil
		},
		Reports:   deps.Reports,
		Writer:    deps.Writer,
		ItemDelay: c.Delay,
		Logger:    deps.Logger,
	}

	deps.Logger.Info("starting server", "addr", c.Addr)
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)

	if err := http.ListenAndServe(c.Addr, srv.Handler()); err != nil {
		return generator.Errorf(generator.EINTERNAL, "server failed: %v", err)
	}
	return nil
}
