package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DegradedMarker prefixes the job description of records produced after a
// pipeline failure so they can be told apart from genuine AI-generated
// descriptions.
const DegradedMarker = "[DEGRADED]"

// DegradedExcerptLimit bounds how much raw content a degraded record carries.
const DegradedExcerptLimit = 1000

// Salary describes the compensation attached to a job posting.
// Min and Max are nil when the posting does not state them.
type Salary struct {
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Type    string   `json:"type,omitempty"`
	Details string   `json:"details,omitempty"`
}

// Requirements describes what a posting asks of applicants.
type Requirements struct {
	Experience string   `json:"experience,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Education  string   `json:"education,omitempty"`
}

// StructuredJob is the canonical record produced for one job-posting URL.
// SourceURL and ExtractedAt are always populated, even on total failure;
// every other field degrades to absent or empty rather than causing the
// record to be omitted.
type StructuredJob struct {
	JobTitle          string       `json:"jobTitle,omitempty"`
	CompanyName       string       `json:"companyName,omitempty"`
	Location          string       `json:"location,omitempty"`
	Salary            Salary       `json:"salary"`
	WorkingHours      string       `json:"workingHours,omitempty"`
	Holidays          string       `json:"holidays,omitempty"`
	Benefits          []string     `json:"benefits,omitempty"`
	Requirements      Requirements `json:"requirements"`
	JobDescription    string       `json:"jobDescription,omitempty"`
	ApplicationMethod string       `json:"applicationMethod,omitempty"`
	EmploymentType    string       `json:"employmentType,omitempty"`
	SourceURL         string       `json:"sourceUrl"`
	ExtractedAt       time.Time    `json:"extractedAtUtc"`
}

// Validate returns an error if the record is missing its always-present fields.
func (j *StructuredJob) Validate() error {
	if j.SourceURL == "" {
		return Errorf(EINVALID, "job source URL required")
	}
	if j.ExtractedAt.IsZero() {
		return Errorf(EINVALID, "job extraction timestamp required")
	}
	return nil
}

// Degraded reports whether the record was produced after a pipeline failure.
func (j *StructuredJob) Degraded() bool {
	return strings.HasPrefix(j.JobDescription, DegradedMarker)
}

// NewDegradedJob builds the best-effort record for a URL whose pipeline
// failed. The job description carries the diagnostic and, when raw content
// was already extracted, a bounded excerpt of it so the fetched page is
// never lost.
func NewDegradedJob(sourceURL string, cause error, rawContent string, now time.Time) *StructuredJob {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", DegradedMarker, ErrorMessage(cause))

	if rawContent != "" {
		excerpt := rawContent
		if r := []rune(excerpt); len(r) > DegradedExcerptLimit {
			excerpt = string(r[:DegradedExcerptLimit]) + "... (truncated)"
		}
		fmt.Fprintf(&sb, "\n\n--- raw content ---\n%s", excerpt)
	}

	return &StructuredJob{
		JobDescription: sb.String(),
		SourceURL:      sourceURL,
		ExtractedAt:    now.UTC(),
	}
}

// Structurer coerces extracted page text into a StructuredJob using an
// external language-understanding service.
type Structurer interface {
	// Structure sends the extraction to the structuring service and
	// returns the parsed record. Errors carry ENOJSON or EBADJSON for
	// contract violations in the reply, or a credential/transport code
	// mirrored from the upstream status.
	Structure(ctx context.Context, raw *RawExtraction) (*StructuredJob, error)
}
