package mock

import "github.com/Akira-YMZK/generator"

var _ generator.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of generator.Extractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string) (*generator.RawExtraction, error)
}

func (e *Extractor) Extract(html string, sourceURL string) (*generator.RawExtraction, error) {
	return e.ExtractFn(html, sourceURL)
}
