package generator

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its raw markup.
	// The context controls timeout and cancellation; a timeout or a
	// non-success HTTP status is an error, never a hang.
	Fetch(ctx context.Context, url string) (html string, err error)
}
