// Package goquery implements content extraction for job-posting pages using
// CSS selectors on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"

	"github.com/Akira-YMZK/generator"
)

// CandidateConfig names one semantic content region evaluated during
// extraction. Source labels the candidate for logging and tests.
type CandidateConfig struct {
	Selector string
	Source   string
}

// DefaultCandidates is the ordered list of content-region candidates.
// Order only matters for ties: the extractor picks the longest candidate
// text, not the first match, because boilerplate candidates tend to be
// short and the true content region is the longest coherent block.
var DefaultCandidates = []CandidateConfig{
	{Selector: "main", Source: "main"},
	{Selector: "article", Source: "article"},
	{Selector: "[role='main']", Source: "role-main"},
	{Selector: ".job-description", Source: "job-description"},
	{Selector: ".job-detail", Source: "job-detail"},
	{Selector: "#job-content", Source: "job-content"},
	{Selector: ".main-content", Source: "main-content"},
	{Selector: "#content", Source: "content-id"},
	{Selector: ".content", Source: "content-class"},
	{Selector: "#main", Source: "main-id"},
}

// noiseSelector matches structural and decorative nodes that are removed
// before any text extraction, so boilerplate never contaminates the result.
const noiseSelector = "script, style, noscript, iframe, form, nav, header, footer, aside, " +
	".advertisement, .ads, .ad, .banner, .sidebar, .menu, .breadcrumb"

// Ensure Extractor implements generator.Extractor at compile time.
var _ generator.Extractor = (*Extractor)(nil)

// Extractor selects the best-candidate content region from raw markup.
// It is a pure transformation: no network or AI calls happen here, and the
// same markup always yields the same extraction.
type Extractor struct {
	candidates []CandidateConfig
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCandidates overrides the candidate selector list.
func WithCandidates(configs []CandidateConfig) Option {
	return func(e *Extractor) {
		e.candidates = configs
	}
}

// NewExtractor creates a new Extractor using DefaultCandidates.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		candidates: DefaultCandidates,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the normalized content region plus
// title and heading hints. An empty or missing body yields an empty Content
// string, not an error.
func (e *Extractor) Extract(html string, sourceURL string) (*generator.RawExtraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, generator.Errorf(generator.EINVALID, "failed to parse HTML: %v", err)
	}

	// Noise removal must happen before any text is read.
	doc.Find(noiseSelector).Remove()

	content := normalizeWhitespace(e.selectContent(doc))

	raw := &generator.RawExtraction{
		Title:          strings.TrimSpace(doc.Find("title").First().Text()),
		PrimaryHeading: strings.TrimSpace(doc.Find("h1").First().Text()),
		SubHeadings:    subHeadings(doc),
		Content:        content,
		ContentLength:  len(content),
		ContentHash:    fmt.Sprintf("%016x", xxhash.Sum64String(content)),
		SourceURL:      sourceURL,
	}
	return raw, nil
}

// selectContent evaluates every candidate selector and returns the longest
// candidate text. Falls back to the full body text when no candidate matches.
func (e *Extractor) selectContent(doc *goquery.Document) string {
	best := ""
	for _, c := range e.candidates {
		sel := doc.Find(c.Selector)
		if sel.Length() == 0 {
			continue
		}
		if text := sel.Text(); len(text) > len(best) {
			best = text
		}
	}
	if best == "" {
		return doc.Find("body").Text()
	}
	return best
}

// subHeadings returns up to MaxSubHeadings secondary headings in document order.
func subHeadings(doc *goquery.Document) []string {
	var subs []string
	doc.Find("h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		subs = append(subs, strings.TrimSpace(sel.Text()))
		return len(subs) < generator.MaxSubHeadings
	})
	return subs
}

var (
	spaceRe   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRe = regexp.MustCompile(`\n+`)
)

// normalizeWhitespace collapses runs of spaces to a single space and runs of
// newlines to one, then trims leading and trailing whitespace.
func normalizeWhitespace(s string) string {
	s = spaceRe.ReplaceAllString(s, " ")
	s = newlineRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
