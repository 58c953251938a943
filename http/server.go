package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Akira-YMZK/generator"
	"github.com/Akira-YMZK/generator/batch"
)

// Server exposes the extraction pipeline over HTTP: single-page extraction,
// structuring preview, and batch spreadsheet generation. Credentials arrive
// per request, so structurer and prober are built per request through the
// factory fields.
type Server struct {
	Fetcher   generator.Fetcher
	Extractor generator.Extractor

	// NewStructurer builds a Structurer for the supplied credential.
	NewStructurer func(ctx context.Context, apiKey string) (generator.Structurer, error)

	// NewProber builds a CredentialProber for the supplied credential.
	NewProber func(ctx context.Context, apiKey string) (generator.CredentialProber, error)

	Reports generator.ReportBuilder
	Writer  generator.ReportWriter

	// ItemDelay is passed through to the batch runner.
	ItemDelay time.Duration

	Logger *slog.Logger
}

// Handler returns the route table for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	return mux
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

type extractRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, generator.Errorf(generator.EINVALID, "invalid request body: %v", err))
		return
	}
	if req.URL == "" {
		s.writeError(w, generator.Errorf(generator.EINVALID, "url is required"))
		return
	}

	raw, err := s.fetchAndExtract(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, raw)
}

type previewRequest struct {
	URL    string `json:"url"`
	APIKey string `json:"apiKey"`
}

type previewResponse struct {
	RawData         *generator.RawExtraction `json:"rawData"`
	StructuredData  *generator.StructuredJob `json:"structuredData"`
	CredentialValid *bool                    `json:"credentialValid,omitempty"`
	Error           string                   `json:"error,omitempty"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, generator.Errorf(generator.EINVALID, "invalid request body: %v", err))
		return
	}
	if req.URL == "" {
		s.writeError(w, generator.Errorf(generator.EINVALID, "url is required"))
		return
	}

	raw, err := s.fetchAndExtract(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := previewResponse{RawData: raw}

	// Without a credential the preview stops at raw extraction.
	if req.APIKey == "" {
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	prober, err := s.NewProber(r.Context(), req.APIKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	probe, err := prober.Probe(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp.CredentialValid = &probe.Valid
	if !probe.Valid {
		resp.Error = probe.Reason
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	structurer, err := s.NewStructurer(r.Context(), req.APIKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	job, err := structurer.Structure(r.Context(), raw)
	if err != nil {
		resp.Error = generator.ErrorMessage(err)
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.StructuredData = job
	s.writeJSON(w, http.StatusOK, resp)
}

type generateRequest struct {
	URLs   []string `json:"urls"`
	APIKey string   `json:"apiKey"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, generator.Errorf(generator.EINVALID, "invalid request body: %v", err))
		return
	}
	if len(req.URLs) == 0 {
		s.writeError(w, generator.Errorf(generator.EINVALID, "urls is required"))
		return
	}
	if req.APIKey == "" {
		s.writeError(w, generator.Errorf(generator.EINVALID, "apiKey is required"))
		return
	}

	// Probe before committing extraction work to a credential that would
	// predictably fail on every item.
	prober, err := s.NewProber(r.Context(), req.APIKey)
	if err != nil {
		s.writeError(w, err)
		return
	}
	probe, err := prober.Probe(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !probe.Valid {
		s.writeError(w, probeError(probe))
		return
	}

	structurer, err := s.NewStructurer(r.Context(), req.APIKey)
	if err != nil {
		s.writeError(w, err)
		return
	}

	runner := &batch.Runner{
		Fetcher:    s.Fetcher,
		Extractor:  s.Extractor,
		Structurer: structurer,
		ItemDelay:  s.ItemDelay,
		Logger:     s.logger(),
	}
	result, err := runner.Run(r.Context(), req.URLs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tables := s.Reports.Build(result)

	// Serialize before touching the response so a writer failure can still
	// produce an error response instead of a truncated stream.
	var buf bytes.Buffer
	if err := s.Writer.Write(&buf, tables); err != nil {
		s.writeError(w, err)
		return
	}

	filename := fmt.Sprintf("job_listings_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) fetchAndExtract(ctx context.Context, url string) (*generator.RawExtraction, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.Extractor.Extract(html, url)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := generator.ErrorCode(err)
	if code == generator.EINTERNAL {
		s.logger().Error("http error", "err", err.Error())
	}
	s.writeJSON(w, statusFromCode(code), errorResponse{Error: generator.ErrorMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger().Error("http encode", "err", err.Error())
	}
}

// statusFromCode maps application error codes onto HTTP statuses, mirroring
// the upstream structuring service's status where one is known.
func statusFromCode(code string) int {
	switch code {
	case generator.EINVALID:
		return http.StatusBadRequest
	case generator.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case generator.EPAYMENTREQUIRED:
		return http.StatusPaymentRequired
	case generator.ENOTFOUND:
		return http.StatusNotFound
	case generator.ERATELIMITED:
		return http.StatusTooManyRequests
	case generator.EUNAVAILABLE, generator.ENOJSON, generator.EBADJSON:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// probeError converts a failed probe classification into an application
// error so the response status mirrors the upstream outcome.
func probeError(probe *generator.ProbeResult) error {
	switch probe.Status {
	case generator.ProbeUnauthorized:
		return generator.Errorf(generator.EUNAUTHORIZED, "%s", probe.Reason)
	case generator.ProbePaymentRequired:
		return generator.Errorf(generator.EPAYMENTREQUIRED, "%s", probe.Reason)
	case generator.ProbeRateLimited:
		return generator.Errorf(generator.ERATELIMITED, "%s", probe.Reason)
	}
	return generator.Errorf(generator.EUNAVAILABLE, "%s", probe.Reason)
}
