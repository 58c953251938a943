package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Akira-YMZK/generator"
)

// Ensure LoggingStructurer implements generator.Structurer.
var _ generator.Structurer = (*LoggingStructurer)(nil)

// LoggingStructurer wraps a Structurer with structured logging.
type LoggingStructurer struct {
	next   generator.Structurer
	logger *slog.Logger
}

// NewLoggingStructurer creates a new LoggingStructurer.
func NewLoggingStructurer(next generator.Structurer, logger *slog.Logger) *LoggingStructurer {
	return &LoggingStructurer{next: next, logger: logger}
}

// Structure delegates to the wrapped structurer, logging the outcome.
func (s *LoggingStructurer) Structure(ctx context.Context, raw *generator.RawExtraction) (*generator.StructuredJob, error) {
	begin := time.Now()
	job, err := s.next.Structure(ctx, raw)
	if err != nil {
		s.logger.Error("structure",
			"url", rawURL(raw),
			"duration", time.Since(begin),
			"code", generator.ErrorCode(err),
			"err", generator.ErrorMessage(err),
		)
		return nil, err
	}
	s.logger.Info("structure",
		"url", rawURL(raw),
		"title", job.JobTitle,
		"duration", time.Since(begin),
	)
	return job, nil
}

func rawURL(raw *generator.RawExtraction) string {
	if raw == nil {
		return ""
	}
	return raw.SourceURL
}
