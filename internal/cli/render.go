package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/cache"
	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	graphio "github.com/matzehuels/graphedit/pkg/io"
	"github.com/matzehuels/graphedit/pkg/observability"
	"github.com/matzehuels/graphedit/pkg/render"
	"github.com/matzehuels/graphedit/pkg/render/nodelink"
)

// Render engines.
const (
	engineNative   = "native"   // the editor's own drawing
	engineGraphviz = "graphviz" // neato with pinned positions
)

// Output formats.
const (
	formatSVG  = "svg"
	formatPNG  = "png"
	formatPDF  = "pdf"
	formatDOT  = "dot"
	formatJSON = "json"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file, base path for several formats, or "-" for stdout
	formats  []string // output formats
	engine   string   // render engine
	width    float64  // canvas width in pixels
	height   float64  // canvas height in pixels
	scale    float64  // PNG zoom
	detailed bool     // prefix graphviz node labels with ids
	noCache  bool     // bypass the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <name|file.json>",
		Short: "Render a graph document to SVG, PNG, PDF or DOT",
		Long: `Render a graph document.

The native engine draws the graph exactly as the editor shows it. The
graphviz engine exports DOT with pinned node positions and lets neato
route the edges. PNG and PDF from the native engine, and PDF from graphviz,
need rsvg-convert (librsvg).

Rendered artifacts are cached by document content and options.`,
		Example: `  graphedit render dfa.json
  graphedit render dfa.json -f svg,png --scale 3
  graphedit render lecture-03 --engine graphviz -f svg,dot -o out/lecture`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config().Render
			if !cmd.Flags().Changed("width") {
				opts.width = cfg.Width
			}
			if !cmd.Flags().Changed("height") {
				opts.height = cfg.Height
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = cfg.Scale
			}
			opts.formats = parseFormats(formatsStr, cfg.Format)
			if err := validateEngine(opts.engine); err != nil {
				return err
			}
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return fmt.Errorf("cannot write %d formats to stdout", len(opts.formats))
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", engineNative, "render engine: native, graphviz")
	cmd.Flags().Float64Var(&opts.width, "width", render.DefaultWidth, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", render.DefaultHeight, "canvas height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG zoom factor")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node ids in labels (graphviz)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// parseFormats parses the --format flag, falling back to def.
func parseFormats(s, def string) []string {
	if s == "" {
		s = def
	}
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

var validFormats = map[string]bool{formatSVG: true, formatPNG: true, formatPDF: true, formatDOT: true, formatJSON: true}

func validateFormats(formats []string) error {
	if len(formats) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "no output format given")
	}
	for _, f := range formats {
		if !validFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg', 'png', 'pdf', 'dot' or 'json')", f)
		}
	}
	return nil
}

func validateEngine(engine string) error {
	switch engine {
	case engineNative, engineGraphviz:
		return nil
	}
	return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid engine: %s (must be 'native' or 'graphviz')", engine)
}

// outputPath names the file a format is written to.
func outputPath(output, base, format string, n int) string {
	switch {
	case output == "":
		return base + "." + format
	case n == 1:
		return output
	default:
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
}

func (c *CLI) runRender(ctx context.Context, arg string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := c.openDocument(ctx, arg)
	if err != nil {
		return err
	}
	defer doc.close()

	g, err := doc.load(ctx, graph.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load %s: %w", doc, err)
	}
	docJSON, err := graphio.Marshal(g)
	if err != nil {
		return err
	}

	artifacts := c.newCache(ctx, opts.noCache)
	defer artifacts.Close()
	r := &artifactRenderer{cache: artifacts, ttl: c.config().Cache.TTL(), logger: logger}

	allCached := true
	var paths []string
	for _, format := range opts.formats {
		prog := newProgress(logger)

		var spin *Spinner
		if opts.output != "-" && slowFormat(format, opts.engine) {
			spin = newSpinner(ctx, os.Stderr, "Rendering "+format+"...")
			spin.Start()
		}
		data, cached, err := r.render(ctx, g, docJSON, format, opts)
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		allCached = allCached && cached

		if opts.output == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}

		path := outputPath(opts.output, doc.base(), format, len(opts.formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		prog.done("Rendered", "file", path, "bytes", len(data), "cached", cached)
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", doc)
	fmt.Println(statsLine(g.NodeCount(), g.EdgeCount(), allCached))
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// slowFormat reports whether producing format shells out or runs Graphviz.
func slowFormat(format, engine string) bool {
	switch format {
	case formatPNG, formatPDF:
		return true
	case formatSVG:
		return engine == engineGraphviz
	}
	return false
}

// =============================================================================
// Artifact Rendering
// =============================================================================

// artifactRenderer draws graphs in the output formats, consulting a cache
// keyed by document content and options.
type artifactRenderer struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// render produces one artifact. docJSON is the serialized document, used
// for the cache key.
func (r *artifactRenderer) render(ctx context.Context, g *graph.Graph, docJSON []byte, format string, opts renderOpts) ([]byte, bool, error) {
	if format == formatJSON {
		return docJSON, false, nil
	}

	key := cache.ArtifactKey(cache.DocumentHash(docJSON), cache.ArtifactOpts{
		Format: opts.engine + "-" + format,
		Width:  opts.width,
		Height: opts.height,
		Scale:  opts.scale,
	})
	if data, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Debug("Cache read failed", "err", err)
	} else if ok {
		r.logger.Debug("Cache hit", "format", format)
		return data, true, nil
	}

	start := time.Now()
	data, err := drawArtifact(ctx, g, format, opts)
	observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Debug("Cache write failed", "err", err)
	}
	return data, false, nil
}

// drawArtifact renders g without caching.
func drawArtifact(ctx context.Context, g *graph.Graph, format string, opts renderOpts) ([]byte, error) {
	if format == formatDOT {
		return []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})), nil
	}

	if opts.engine == engineGraphviz {
		dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})
		switch format {
		case formatSVG:
			return nodelink.RenderSVG(ctx, dot)
		case formatPNG:
			return nodelink.RenderPNG(ctx, dot)
		case formatPDF:
			return nodelink.RenderPDF(ctx, dot)
		}
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	svg := render.RenderSVG(g, render.WithSize(opts.width, opts.height))
	switch format {
	case formatSVG:
		return svg, nil
	case formatPNG:
		return render.ToPNG(ctx, svg, opts.scale)
	case formatPDF:
		return render.ToPDF(ctx, svg)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
