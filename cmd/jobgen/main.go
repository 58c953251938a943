package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	gengoquery "github.com/Akira-YMZK/generator/goquery"
	genhttp "github.com/Akira-YMZK/generator/http"
	"github.com/Akira-YMZK/generator/report"

	genexcelize "github.com/Akira-YMZK/generator/excelize"
)

func main() {
	ctx := context.Background()

	// Load GEMINI_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobgen"),
		kong.Description("Turn job-posting pages into structured spreadsheet reports"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobgen --help' to see available commands")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire shared services.
	deps.Fetcher = genhttp.NewFetcher(genhttp.WithTimeout(10 * time.Second))
	deps.Extractor = gengoquery.NewExtractor()
	deps.Reports = report.NewBuilder(time.Local)
	deps.Writer = genexcelize.NewWriter()
	deps.APIKey = cli.APIKey

	return kongCtx.Run(deps)
}
