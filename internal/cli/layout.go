package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/graph"
	graphio "github.com/matzehuels/graphedit/pkg/io"
)

// layoutCommand creates the layout command, which prints computed edge
// geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "layout <name|file.json>",
		Short: "Print the computed node and edge geometry as JSON",
		Long: `Print the layout of a graph document: node disks, and for every edge
either the endpoints of its arrow or the circle and arrow anchor of its
self-loop. Coordinates are world units, with the world spanning
[0,1] x [0,0.6].`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, arg, output string) error {
	logger := loggerFromContext(ctx)

	doc, err := c.openDocument(ctx, arg)
	if err != nil {
		return err
	}
	defer doc.close()

	prog := newProgress(logger)
	g, err := doc.load(ctx, graph.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load %s: %w", doc, err)
	}

	if output == "" {
		return graphio.WriteLayoutJSON(g, os.Stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := graphio.WriteLayoutJSON(g, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	prog.done("Wrote layout", "doc", doc.String(), "file", output)
	printFile(output)
	return nil
}
