package gemini

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"

	"github.com/Akira-YMZK/generator"
)

// Ensure Prober implements generator.CredentialProber at compile time.
var _ generator.CredentialProber = (*Prober)(nil)

// Prober classifies a Gemini API credential with one minimal call through
// the same transport the Structurer uses, before a batch commits to
// full-cost work.
type Prober struct {
	client *genai.Client
}

// NewProber creates a new Prober.
func NewProber(client *genai.Client) *Prober {
	return &Prober{client: client}
}

// Probe issues the smallest possible generation call and classifies the
// outcome. Upstream failures become classifications, not errors.
func (p *Prober) Probe(ctx context.Context) (*generator.ProbeResult, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: 1,
	}

	_, err := p.client.Models.GenerateContent(ctx, model, genai.Text("ping"), config)
	if err != nil {
		return ClassifyProbeError(err), nil
	}

	return &generator.ProbeResult{Valid: true, Status: generator.ProbeValid}, nil
}

// ClassifyProbeError maps an upstream error onto a probe classification with
// a user-facing reason.
func ClassifyProbeError(err error) *generator.ProbeResult {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ClassifyStatusCode(apiErr.Code, apiErr.Message)
	}
	return &generator.ProbeResult{
		Status: generator.ProbeUpstreamError,
		Reason: "structuring service unreachable: " + err.Error(),
	}
}

// ClassifyStatusCode maps an upstream HTTP status onto a probe classification.
func ClassifyStatusCode(code int, message string) *generator.ProbeResult {
	switch code {
	case http.StatusPaymentRequired:
		return &generator.ProbeResult{
			Status: generator.ProbePaymentRequired,
			Reason: "API credit balance or quota exhausted",
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &generator.ProbeResult{
			Status: generator.ProbeUnauthorized,
			Reason: "API key was rejected",
		}
	case http.StatusTooManyRequests:
		return &generator.ProbeResult{
			Status: generator.ProbeRateLimited,
			Reason: "structuring service is rate limiting requests",
		}
	}
	reason := "structuring service error"
	if message != "" {
		reason += ": " + message
	}
	return &generator.ProbeResult{
		Status: generator.ProbeUpstreamError,
		Reason: reason,
	}
}

// classifyUpstreamError converts an upstream transport error into an
// application error whose code mirrors the upstream HTTP status.
func classifyUpstreamError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusPaymentRequired:
			return generator.Errorf(generator.EPAYMENTREQUIRED, "structuring service: payment required: %s", apiErr.Message)
		case http.StatusUnauthorized, http.StatusForbidden:
			return generator.Errorf(generator.EUNAUTHORIZED, "structuring service: credential rejected: %s", apiErr.Message)
		case http.StatusTooManyRequests:
			return generator.Errorf(generator.ERATELIMITED, "structuring service: rate limited: %s", apiErr.Message)
		}
		return generator.Errorf(generator.EUNAVAILABLE, "structuring service error (HTTP %d): %s", apiErr.Code, apiErr.Message)
	}
	return generator.Errorf(generator.EUNAVAILABLE, "structuring service: %v", err)
}
