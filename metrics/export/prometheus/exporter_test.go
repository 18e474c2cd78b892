package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authkit "github.com/lingostack/authkit"
)

type stubSource struct {
	counters map[authkit.MetricID]uint64
	dropped  uint64
}

func (s *stubSource) MetricsSnapshot() authkit.MetricsSnapshot {
	return authkit.MetricsSnapshot{Counters: s.counters}
}

func (s *stubSource) AuditDropped() uint64 {
	return s.dropped
}

func TestRenderExpositionFormat(t *testing.T) {
	source := &stubSource{
		counters: map[authkit.MetricID]uint64{
			authkit.MetricLoginSuccess:     42,
			authkit.MetricOTPVerifyFailure: 7,
		},
		dropped: 3,
	}

	out := NewPrometheusExporterFromSource(source).Render()

	for _, want := range []string{
		"# HELP authkit_login_success_total",
		"# TYPE authkit_login_success_total counter",
		"authkit_login_success_total 42",
		"authkit_otp_verify_failure_total 7",
		"authkit_audit_dropped_total 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in exposition:\n%s", want, out)
		}
	}
}

func TestRenderEmptySource(t *testing.T) {
	source := &stubSource{counters: map[authkit.MetricID]uint64{}}
	if out := NewPrometheusExporterFromSource(source).Render(); out != "" {
		t.Fatalf("expected empty exposition for empty source, got %q", out)
	}

	var exporter *PrometheusExporter
	if out := exporter.Render(); out != "" {
		t.Fatalf("nil exporter must render nothing, got %q", out)
	}
}

func TestHandlerContentType(t *testing.T) {
	source := &stubSource{
		counters: map[authkit.MetricID]uint64{authkit.MetricLoginSuccess: 1},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	NewPrometheusExporterFromSource(source).Handler().ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; version=0.0.4; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "authkit_login_success_total 1") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRenderFromEngine(t *testing.T) {
	metrics := authkit.NewMetrics()
	metrics.Inc(authkit.MetricAuthorizeSuccess)
	metrics.Inc(authkit.MetricAuthorizeSuccess)

	source := &stubSource{counters: metrics.Snapshot().Counters}
	out := NewPrometheusExporterFromSource(source).Render()
	if !strings.Contains(out, "authkit_authorize_success_total 2") {
		t.Fatalf("expected counter from live metrics:\n%s", out)
	}
}
