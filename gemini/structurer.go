// Package gemini implements job-posting structuring and credential probing
// using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Akira-YMZK/generator"
)

const model = "gemini-2.5-flash"

// MaxContentChars bounds how much extracted content is embedded in the
// structuring prompt, to respect the service's input limits.
const MaxContentChars = 4000

// NewClient creates a Gemini API client for the given credential.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, generator.Errorf(generator.EINTERNAL, "failed to create Gemini client: %v", err)
	}
	return client, nil
}

// Ensure Structurer implements generator.Structurer at compile time.
var _ generator.Structurer = (*Structurer)(nil)

// Structurer implements generator.Structurer using Google Gemini.
type Structurer struct {
	client *genai.Client
	now    func() time.Time
}

// StructurerOption configures a Structurer.
type StructurerOption func(*Structurer)

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) StructurerOption {
	return func(s *Structurer) {
		s.now = now
	}
}

// NewStructurer creates a new Structurer.
func NewStructurer(client *genai.Client, opts ...StructurerOption) *Structurer {
	s := &Structurer{
		client: client,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Structure coerces the extraction into a StructuredJob via one Gemini call.
// The reply is scanned for the first balanced JSON object because the model
// may wrap JSON in prose despite instructions.
func (s *Structurer) Structure(ctx context.Context, raw *generator.RawExtraction) (*generator.StructuredJob, error) {
	if raw == nil {
		return nil, generator.Errorf(generator.EINVALID, "extraction required")
	}
	if raw.SourceURL == "" {
		return nil, generator.Errorf(generator.EINVALID, "extraction source URL required")
	}

	prompt := BuildUserPrompt(raw)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, classifyUpstreamError(err)
	}
	if result == nil {
		return nil, generator.Errorf(generator.EUNAVAILABLE, "structuring service returned nil result")
	}

	region, err := ExtractJSONObject(result.Text())
	if err != nil {
		return nil, err
	}

	var job generator.StructuredJob
	if err := json.Unmarshal([]byte(region), &job); err != nil {
		return nil, generator.Errorf(generator.EBADJSON, "structuring reply JSON did not parse: %v", err)
	}

	job.SourceURL = raw.SourceURL
	job.ExtractedAt = s.now().UTC()
	return &job, nil
}

// BuildConfig returns the GenerateContentConfig for structuring calls.
// Temperature is fixed low because this is extraction, not generation;
// repeated calls on the same input should agree.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a job-posting information extractor. You read job postings and return structured JSON. You never invent information that is not in the posting.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the structuring prompt: the output-schema contract
// followed by the heading hints and a bounded prefix of the content.
func BuildUserPrompt(raw *generator.RawExtraction) string {
	var sb strings.Builder
	sb.WriteString(`Extract the job posting below into exactly one JSON object with this shape:
{
  "jobTitle": string or null,
  "companyName": string or null,
  "location": string or null,
  "salary": {"min": number or null, "max": number or null, "type": string or null, "details": string or null},
  "workingHours": string or null,
  "holidays": string or null,
  "benefits": array of strings,
  "requirements": {"experience": string or null, "skills": array of strings, "education": string or null},
  "jobDescription": string or null,
  "applicationMethod": string or null,
  "employmentType": string or null
}

Rules:
- Return a single JSON object and nothing else.
- Set any field the posting does not state to null (empty array for array fields); never omit a key.
- Return numeric salary values as numbers, not strings.

`)

	if raw.Title != "" {
		fmt.Fprintf(&sb, "Page title: %s\n", raw.Title)
	}
	if raw.PrimaryHeading != "" {
		fmt.Fprintf(&sb, "Primary heading: %s\n", raw.PrimaryHeading)
	}
	if len(raw.SubHeadings) > 0 {
		fmt.Fprintf(&sb, "Subheadings: %s\n", strings.Join(raw.SubHeadings, " | "))
	}

	content := raw.Content
	if r := []rune(content); len(r) > MaxContentChars {
		content = string(r[:MaxContentChars])
	}
	fmt.Fprintf(&sb, "\nJob posting:\n%s", content)
	return sb.String()
}

// ExtractJSONObject returns the first balanced {...} region in the reply.
// Brace matching is string- and escape-aware so braces inside JSON string
// values do not terminate the region early.
func ExtractJSONObject(reply string) (string, error) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return "", generator.Errorf(generator.ENOJSON, "no JSON object found in structuring reply")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(reply); i++ {
		c := reply[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return reply[start : i+1], nil
			}
		}
	}
	return "", generator.Errorf(generator.ENOJSON, "no JSON object found in structuring reply")
}
