package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/graph"
)

type editOpts struct {
	ids     bool
	logFile string
}

// editCommand creates the edit command, which opens the terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit <name|file.json>",
		Short: "Edit a graph document in the terminal",
		Long: `Open a graph document in a full-screen terminal editor. The document is
created on first save if it does not exist.

Mouse:
  double-click empty space   create a node
  drag from a node's center  move the node
  drag from a node's rim     draw an edge; release on the same node,
                             after going at least 60 degrees around it,
                             for a self-loop
  click                      select a node or edge

Keys:
  l, enter    label the selected node or edge
  d, delete   delete the selected node or edge
  esc         clear the selection
  s           save
  q           quit`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("ids") {
				c.config().Editor.IDs = opts.ids
			}
			return c.runEdit(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ids, "ids", false, "assign UUIDs to nodes and edges")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write editor logs to this file")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, arg string, opts editOpts) error {
	doc, err := c.openDocument(ctx, arg)
	if err != nil {
		return err
	}
	defer doc.close()

	logger := log.New(io.Discard)
	if opts.logFile != "" {
		fl, closer, err := newFileLogger(opts.logFile, c.Logger.GetLevel())
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = fl
	}
	logger = logger.With("doc", doc.String())

	g, err := c.loadOrCreate(ctx, doc, logger)
	if err != nil {
		return err
	}

	m := newEditModel(ctx, doc, g, c.config().Editor.DoubleClick(), logger)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if m.dirty {
		printWarning("Discarded unsaved changes to %s", doc)
		return nil
	}
	printSuccess("Closed %s", doc)
	printDetail("%s, %s", plural(g.NodeCount(), "node"), plural(g.EdgeCount(), "edge"))
	return nil
}

// loadOrCreate loads doc, or starts an empty graph if it was never saved.
func (c *CLI) loadOrCreate(ctx context.Context, doc *document, logger *log.Logger) (*graph.Graph, error) {
	exists, err := doc.exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Info("New document")
		return graph.New(doc.auxOption(), graph.WithLogger(logger)), nil
	}
	g, err := doc.load(ctx, graph.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", doc, err)
	}
	return g, nil
}
