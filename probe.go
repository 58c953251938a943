package generator

import "context"

// ProbeStatus classifies the outcome of a credential probe.
type ProbeStatus string

// Probe outcome classifications. Every status other than ProbeValid means
// a full batch would predictably fail, with the reason telling the user why.
const (
	ProbeValid           ProbeStatus = "valid"
	ProbeUnauthorized    ProbeStatus = "unauthorized"
	ProbePaymentRequired ProbeStatus = "payment_required"
	ProbeRateLimited     ProbeStatus = "rate_limited"
	ProbeUpstreamError   ProbeStatus = "upstream_error"
)

// ProbeResult is the classification of one credential probe.
type ProbeResult struct {
	Valid  bool        `json:"valid"`
	Status ProbeStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// CredentialProber classifies an API credential before a batch commits to
// full-cost work. A probe issues one minimal call through the same
// transport the Structurer uses and maps the outcome to a ProbeResult;
// upstream failures are returned as classifications, not errors.
type CredentialProber interface {
	Probe(ctx context.Context) (*ProbeResult, error)
}
