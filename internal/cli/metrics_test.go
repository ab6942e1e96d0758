package cli

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestMetricsHooks(t *testing.T) {
	ctx := context.Background()
	m := newMetrics()

	m.OnLayoutComplete(3, 1, time.Millisecond)
	m.OnLoad(ctx, "file", "dfa", 120, time.Millisecond, nil)
	m.OnSave(ctx, "redis", "dfa", 80, time.Millisecond, errors.New("down"))
	m.OnDelete(ctx, "mongo", "dfa", nil)
	m.OnCacheHit(ctx, "artifact")
	m.OnCacheMiss(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 512)
	m.OnRenderComplete(ctx, "svg", 2048, time.Millisecond, nil)

	body := scrape(t, m)
	want := []string{
		"graphedit_layout_total 1",
		`graphedit_layout_edges{shape="line"} 3`,
		`graphedit_layout_edges{shape="loop"} 1`,
		`graphedit_storage_operations_total{backend="file",operation="load",result="ok"} 1`,
		`graphedit_storage_operations_total{backend="redis",operation="save",result="error"} 1`,
		`graphedit_storage_operations_total{backend="mongo",operation="delete",result="ok"} 1`,
		`graphedit_storage_bytes_total{backend="file",operation="load"} 120`,
		`graphedit_cache_requests_total{key_type="artifact",result="hit"} 1`,
		`graphedit_cache_requests_total{key_type="artifact",result="miss"} 1`,
		`graphedit_cache_written_bytes_total{key_type="artifact"} 512`,
		`graphedit_render_total{format="svg",result="ok"} 1`,
		"go_goroutines",
	}
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("metrics output missing %q", w)
		}
	}
	if strings.Contains(body, `graphedit_storage_bytes_total{backend="redis"`) {
		t.Error("failed save counted written bytes")
	}
}

func TestMetricsRegistriesAreIndependent(t *testing.T) {
	a, b := newMetrics(), newMetrics()
	a.OnLayoutComplete(1, 0, time.Millisecond)

	if body := scrape(t, b); strings.Contains(body, "graphedit_layout_total 1") {
		t.Error("layout recorded on one registry showed up on another")
	}
}

func TestResult(t *testing.T) {
	if got := result(nil); got != "ok" {
		t.Errorf("result(nil) = %q, want ok", got)
	}
	if got := result(errors.New("x")); got != "error" {
		t.Errorf("result(err) = %q, want error", got)
	}
}
