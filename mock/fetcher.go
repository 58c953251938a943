package mock

import (
	"context"

	"github.com/Akira-YMZK/generator"
)

var _ generator.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of generator.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
