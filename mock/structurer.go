package mock

import (
	"context"

	"github.com/Akira-YMZK/generator"
)

var _ generator.Structurer = (*Structurer)(nil)

// Structurer is a mock implementation of generator.Structurer.
type Structurer struct {
	StructureFn func(ctx context.Context, raw *generator.RawExtraction) (*generator.StructuredJob, error)
}

func (s *Structurer) Structure(ctx context.Context, raw *generator.RawExtraction) (*generator.StructuredJob, error) {
	return s.StructureFn(ctx, raw)
}
