package generator

// MaxSubHeadings caps how many secondary headings an extraction captures.
const MaxSubHeadings = 5

// RawExtraction holds the content extracted from a job-posting page.
// It is created fresh per fetch and never mutated once produced.
type RawExtraction struct {
	// Title is the document title.
	Title string `json:"title"`

	// PrimaryHeading is the first top-level heading, if any.
	PrimaryHeading string `json:"primaryHeading"`

	// SubHeadings are up to MaxSubHeadings secondary headings in
	// document order.
	SubHeadings []string `json:"subHeadings"`

	// Content is the selected content region with whitespace collapsed.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	Content string `json:"content"`

	// ContentLength is the length of Content in bytes.
	ContentLength int `json:"contentLength"`

	// ContentHash identifies the content for logging and provenance.
	ContentHash string `json:"contentHash"`

	// SourceURL is the page the content was extracted from.
	SourceURL string `json:"sourceUrl"`
}

// Extractor isolates the substantive content of a job-posting page,
// removing boilerplate. Implementations are pure transformations over the
// markup; no network or AI calls happen here.
type Extractor interface {
	// Extract processes raw HTML and returns the best-candidate content
	// region plus title and heading hints. An empty or missing body
	// yields an empty Content string, not an error; callers decide
	// whether empty content is fatal.
	Extract(html string, sourceURL string) (*RawExtraction, error)
}
