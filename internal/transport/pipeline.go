package transport

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/session"
)

// Hooks receives the cross-cutting reactions the pipeline triggers.
// Implementations must be idempotent: every concurrently in-flight
// request that sees a 401 fires OnUnauthorized independently.
type Hooks interface {
	OnUnauthorized(ctx context.Context)
	OnServerError(ctx context.Context, status int)
}

// Pipeline is the interceptor stage wrapped around every outgoing
// record-service request: it tracks concurrency, injects the stored
// credential, and classifies failure responses. It observes and reacts
// but never swallows the outcome, and it never retries.
type Pipeline struct {
	base    http.RoundTripper
	session *session.Session
	tracker *Tracker
	hooks   Hooks
	header  string
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPipeline builds the interceptor around base. A nil base uses
// http.DefaultTransport; hooks may be nil.
func NewPipeline(base http.RoundTripper, sess *session.Session, tracker *Tracker, hooks Hooks, header string, metrics *observability.Metrics, logger *zap.Logger) *Pipeline {
	if base == nil {
		base = http.DefaultTransport
	}
	if header == "" {
		header = "x-access-token"
	}
	return &Pipeline{
		base:    base,
		session: sess,
		tracker: tracker,
		hooks:   hooks,
		header:  header,
		metrics: metrics,
		logger:  logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	p.tracker.Show()
	defer p.tracker.Hide()

	out := req
	// Attach the stored credential unless the caller set one explicitly.
	if token := p.session.Token(req.Context()); token != "" && req.Header.Get(p.header) == "" {
		out = req.Clone(req.Context())
		out.Header.Set(p.header, token)
	}

	resp, err := p.base.RoundTrip(out)
	if err != nil {
		p.metrics.RecordFailure(req.URL.Path, req.Method)
		return resp, err
	}

	p.metrics.RecordResponse(req.URL.Path, req.Method, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		p.logger.Warn("record service rejected credential",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode))
		if clearErr := p.session.Logout(req.Context()); clearErr != nil {
			p.logger.Error("token clear failed", zap.Error(clearErr))
		}
		if p.hooks != nil {
			p.hooks.OnUnauthorized(req.Context())
		}
	case resp.StatusCode >= http.StatusInternalServerError:
		p.logger.Warn("record service failure",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode))
		if p.hooks != nil {
			p.hooks.OnServerError(req.Context(), resp.StatusCode)
		}
	}

	return resp, nil
}

// NewClient builds the instrumented HTTP client for record-service calls.
func NewClient(timeout time.Duration, pipeline *Pipeline) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: pipeline,
	}
}
