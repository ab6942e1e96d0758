package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/buildinfo"
	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	graphio "github.com/matzehuels/graphedit/pkg/io"
)

// reloadDebounce collapses bursts of file events, such as an editor
// writing a temp file and renaming it, into one reload.
const reloadDebounce = 100 * time.Millisecond

type serveOpts struct {
	addr    string
	watch   bool
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve <name|file.json>",
		Short: "Preview a graph document in the browser",
		Long: `Serve a live preview of a graph document.

Endpoints:
  /             preview page, reloaded over a websocket when the document changes
  /graph.svg    rendered document (?engine=graphviz for neato)
  /graph.json   document
  /layout.json  computed node and edge geometry
  /metrics      Prometheus metrics
  /version      build information

With --watch, file documents are reloaded when they change on disk. Stored
documents are reloaded with POST /reload.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config().Serve
			if !cmd.Flags().Changed("addr") {
				opts.addr = cfg.Addr
			}
			if !cmd.Flags().Changed("watch") {
				opts.watch = cfg.Watch
			}
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the document when its file changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, arg string, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	m := newMetrics()
	m.install()

	doc, err := c.openDocument(ctx, arg)
	if err != nil {
		return err
	}
	defer doc.close()

	if opts.watch && doc.path == "" {
		return apperrors.New(apperrors.ErrCodeUnsupported, "--watch needs a file document, %s is stored", doc)
	}

	artifacts := c.newCache(ctx, opts.noCache)
	defer artifacts.Close()

	cfg := c.config()
	s := newPreviewServer(doc, &artifactRenderer{cache: artifacts, ttl: cfg.Cache.TTL(), logger: logger}, logger)
	s.metrics = m
	s.size = [2]float64{cfg.Render.Width, cfg.Render.Height}
	if err := s.reload(ctx); err != nil {
		return err
	}

	if opts.watch {
		w, err := s.watch(ctx)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printSuccess("Serving %s", doc)
	printKeyValue("Preview", StyleLink.Render("http://"+opts.addr+"/"))
	printKeyValue("Metrics", StyleLink.Render("http://"+opts.addr+"/metrics"))
	if opts.watch {
		printDetail("Watching %s for changes", doc.path)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// =============================================================================
// Preview Server
// =============================================================================

// previewServer serves one document. The graph is read by concurrent
// requests and replaced on reload; mu guards both.
type previewServer struct {
	doc      *document
	renderer *artifactRenderer
	logger   *log.Logger
	metrics  *metrics
	size     [2]float64

	mu      sync.Mutex
	g       *graph.Graph
	docJSON []byte

	upgrader  websocket.Upgrader
	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
}

func newPreviewServer(doc *document, r *artifactRenderer, logger *log.Logger) *previewServer {
	return &previewServer{
		doc:      doc,
		renderer: r,
		logger:   logger,
		size:     [2]float64{1000, 600},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/graph.svg", s.handleSVG)
	r.Get("/graph.json", s.handleDocument)
	r.Get("/layout.json", s.handleLayout)
	r.Get("/version", s.handleVersion)
	r.Get("/ws", s.handleWebSocket)
	r.Post("/reload", s.handleReload)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.handler())
	}
	return r
}

func (s *previewServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "took", time.Since(start).Round(time.Microsecond))
	})
}

// reload reads the document and tells connected browsers.
func (s *previewServer) reload(ctx context.Context) error {
	g, err := s.doc.load(ctx, graph.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("load %s: %w", s.doc, err)
	}
	data, err := graphio.Marshal(g)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.g, s.docJSON = g, data
	s.mu.Unlock()

	s.logger.Info("Loaded document", "doc", s.doc.String(), "nodes", g.NodeCount(), "edges", g.EdgeCount())
	s.notifyClients("reload", map[string]any{"nodes": g.NodeCount(), "edges": g.EdgeCount()})
	return nil
}

// watch reloads the document when its file changes. The directory is
// watched rather than the file, so replace-by-rename saves are seen.
func (s *previewServer) watch(ctx context.Context) (*fsnotify.Watcher, error) {
	path, err := filepath.Abs(s.doc.path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		debounce := time.NewTimer(0)
		<-debounce.C
		defer debounce.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				debounce.Reset(reloadDebounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("Watcher error", "err", err)
			case <-debounce.C:
				if err := s.reload(ctx); err != nil {
					s.logger.Error("Reload failed", "err", err)
					s.notifyClients("error", map[string]any{"message": apperrors.UserMessage(err)})
				}
			}
		}
	}()
	return w, nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, html.EscapeString(s.doc.String()))
}

func (s *previewServer) handleSVG(w http.ResponseWriter, r *http.Request) {
	engine := r.URL.Query().Get("engine")
	if engine == "" {
		engine = engineNative
	}
	if err := validateEngine(engine); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := renderOpts{engine: engine, width: s.size[0], height: s.size[1]}

	s.mu.Lock()
	data, _, err := s.renderer.render(r.Context(), s.g, s.docJSON, formatSVG, opts)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("Render failed", "err", err)
		http.Error(w, apperrors.UserMessage(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

func (s *previewServer) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := s.docJSON
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *previewServer) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	layout := graphio.BuildLayout(s.g)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, layout)
}

func (s *previewServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *previewServer) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.reload(r.Context()); err != nil {
		status := http.StatusInternalServerError
		if apperrors.Is(err, apperrors.ErrCodeNotFound) || apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{
			"error": apperrors.UserMessage(err),
			"code":  string(apperrors.GetCode(err)),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// =============================================================================
// WebSocket
// =============================================================================

func (s *previewServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	err = conn.WriteJSON(map[string]any{"type": "HELLO", "doc": s.doc.String()})
	s.clientsMu.Unlock()
	if err != nil {
		return
	}

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	// Browsers only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("WebSocket closed", "err", err)
			}
			return
		}
	}
}

// notifyClients sends a message to every connected browser. Writes are
// serialized by clientsMu since a connection allows one writer.
func (s *previewServer) notifyClients(msgType string, data map[string]any) {
	message := map[string]any{"type": strings.ToUpper(msgType)}
	for k, v := range data {
		message[k] = v
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteJSON(message); err != nil {
			s.logger.Debug("WebSocket write failed", "err", err)
		}
	}
}

func (s *previewServer) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s · graphedit</title>
<style>
  body { margin: 0; font-family: sans-serif; background: #f4f4f4; }
  header { padding: 8px 16px; color: #555; }
  img { display: block; margin: 0 auto; max-width: 100vw; background: white; box-shadow: 0 1px 4px #0002; }
  #error { color: #b33; padding: 0 16px; }
</style>
</head>
<body>
<header id="status">connecting…</header>
<div id="error"></div>
<img id="graph" src="/graph.svg" alt="graph">
<script>
(function connect() {
  const status = document.getElementById("status");
  const error = document.getElementById("error");
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type === "HELLO") {
      status.textContent = msg.doc;
    } else if (msg.type === "RELOAD") {
      error.textContent = "";
      status.textContent = status.textContent.split(" · ")[0] + " · " + msg.nodes + " nodes · " + msg.edges + " edges";
      document.getElementById("graph").src = "/graph.svg?t=" + Date.now();
    } else if (msg.type === "ERROR") {
      error.textContent = msg.message;
    }
  };
  ws.onclose = () => { status.textContent = "disconnected, retrying…"; setTimeout(connect, 1000); };
})();
</script>
</body>
</html>
`
