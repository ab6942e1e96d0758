package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/graphedit/pkg/buildinfo"
	"github.com/matzehuels/graphedit/pkg/cache"
	"github.com/matzehuels/graphedit/pkg/geom"
	graphio "github.com/matzehuels/graphedit/pkg/io"
)

// newTestServer serves a file document holding testGraph.
func newTestServer(t *testing.T) (*previewServer, *httptest.Server) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dfa.json")
	if err := graphio.ExportJSON(testGraph(), path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	logger := log.New(io.Discard)
	r := &artifactRenderer{cache: cache.NewNullCache(), logger: logger}
	s := newPreviewServer(&document{path: path}, r, logger)
	s.metrics = newMetrics()
	if err := s.reload(context.Background()); err != nil {
		t.Fatalf("reload() error: %v", err)
	}

	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s error: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestServeEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/", "text/html", "/ws"},
		{"/graph.svg", "image/svg+xml", "<svg"},
		{"/graph.json", "application/json", `"nodes"`},
		{"/layout.json", "application/json", `"shape":"loop"`},
		{"/version", "application/json", `"version"`},
		{"/metrics", "text/plain", "go_goroutines"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %s", ct, tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestServeIndexEscapesName(t *testing.T) {
	logger := log.New(io.Discard)
	r := &artifactRenderer{cache: cache.NewNullCache(), logger: logger}
	s := newPreviewServer(&document{path: "<script>x</script>.json"}, r, logger)
	s.metrics = newMetrics()

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	body := rec.Body.String()
	if strings.Contains(body, "<script>x</script>") {
		t.Error("index page contains the unescaped document name")
	}
	if !strings.Contains(body, "&lt;script&gt;x&lt;/script&gt;") {
		t.Error("index page is missing the escaped document name")
	}
}

func TestServeLayout(t *testing.T) {
	_, ts := newTestServer(t)

	_, body := get(t, ts.URL+"/layout.json")
	var layout graphio.Layout
	if err := json.Unmarshal([]byte(body), &layout); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(layout.Nodes) != 2 || len(layout.Edges) != 2 {
		t.Errorf("layout has %d nodes, %d edges, want 2, 2", len(layout.Nodes), len(layout.Edges))
	}
}

func TestServeVersion(t *testing.T) {
	_, ts := newTestServer(t)

	_, body := get(t, ts.URL+"/version")
	var info buildinfo.Info
	if err := json.Unmarshal([]byte(body), &info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info.Version != buildinfo.Version {
		t.Errorf("version = %q, want %q", info.Version, buildinfo.Version)
	}
}

func TestServeSVGEngine(t *testing.T) {
	_, ts := newTestServer(t)

	resp, _ := get(t, ts.URL+"/graph.svg?engine=bogus")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServeReload(t *testing.T) {
	s, ts := newTestServer(t)

	g := testGraph()
	g.AddNode(geom.Pt(0.4, 0.5))
	if err := graphio.ExportJSON(g, s.doc.path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	resp, err := http.Post(ts.URL+"/reload", "", nil)
	if err != nil {
		t.Fatalf("POST /reload error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	_, body := get(t, ts.URL+"/graph.json")
	loaded, err := graphio.Unmarshal([]byte(body))
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if loaded.NodeCount() != 3 {
		t.Errorf("NodeCount() after reload = %d, want 3", loaded.NodeCount())
	}

	if err := os.Remove(s.doc.path); err != nil {
		t.Fatal(err)
	}
	resp, err = http.Post(ts.URL+"/reload", "", nil)
	if err != nil {
		t.Fatalf("POST /reload error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		t.Error("reload of a missing document succeeded")
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg map[string]any
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	return msg
}

func TestServeWebSocketReload(t *testing.T) {
	s, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()

	hello := readMessage(t, conn)
	if hello["type"] != "HELLO" || hello["doc"] != s.doc.path {
		t.Fatalf("first message = %v, want HELLO for %s", hello, s.doc.path)
	}

	if err := s.reload(context.Background()); err != nil {
		t.Fatalf("reload() error: %v", err)
	}
	msg := readMessage(t, conn)
	if msg["type"] != "RELOAD" {
		t.Fatalf("message = %v, want RELOAD", msg)
	}
	if msg["nodes"] != float64(2) || msg["edges"] != float64(2) {
		t.Errorf("RELOAD counts = %v, %v, want 2, 2", msg["nodes"], msg["edges"])
	}
}

func TestServeWatch(t *testing.T) {
	s, ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := s.watch(ctx)
	if err != nil {
		t.Fatalf("watch() error: %v", err)
	}
	defer w.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()
	readMessage(t, conn)

	g := testGraph()
	g.AddNode(geom.Pt(0.4, 0.5))
	if err := graphio.ExportJSON(g, s.doc.path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	msg := readMessage(t, conn)
	if msg["type"] != "RELOAD" || msg["nodes"] != float64(3) {
		t.Errorf("message = %v, want RELOAD with 3 nodes", msg)
	}
}
