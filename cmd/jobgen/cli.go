package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Akira-YMZK/generator"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   generator.Fetcher
	Extractor generator.Extractor
	Reports   generator.ReportBuilder
	Writer    generator.ReportWriter
	APIKey    string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Fetch one URL and print the raw extraction"`
	Preview PreviewCmd `cmd:"" help:"Fetch one URL and preview its structured record"`
	Batch   BatchCmd   `cmd:"" help:"Process a list of URLs into an xlsx report"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API server"`

	APIKey string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key (defaults to GEMINI_API_KEY)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Job-posting URL"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL string `arg:"" help:"Job-posting URL"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLsFile string        `name:"urls-file" short:"u" required:"" help:"File with one URL per line"`
	Out      string        `short:"o" default:"" help:"Output xlsx path (default: job_listings_<date>.xlsx)"`
	Delay    time.Duration `short:"d" default:"1s" help:"Pause between consecutive URLs"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr  string        `default:":8080" help:"Listen address"`
	Delay time.Duration `short:"d" default:"1s" help:"Pause between consecutive batch URLs"`
}
