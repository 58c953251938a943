package mock

import (
	"context"

	"github.com/Akira-YMZK/generator"
)

var _ generator.CredentialProber = (*Prober)(nil)

// Prober is a mock implementation of generator.CredentialProber.
type Prober struct {
	ProbeFn func(ctx context.Context) (*generator.ProbeResult, error)
}

func (p *Prober) Probe(ctx context.Context) (*generator.ProbeResult, error) {
	return p.ProbeFn(ctx)
}
