package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/payload"
)

type newOpts struct {
	ids   bool
	force bool
}

// newCommand creates the "new" command, which writes an empty document.
func (c *CLI) newCommand() *cobra.Command {
	var opts newOpts

	cmd := &cobra.Command{
		Use:   "new <name|file.json>",
		Short: "Create an empty graph document",
		Long: `Create an empty graph document, either as a JSON file or under a name in
the document store.

With --ids every node and edge created later is given a stable UUID, kept
in the document's aux payloads.`,
		Example: `  graphedit new dfa.json
  graphedit new lecture-03 --store redis://localhost:6379/0
  graphedit new tracked --ids`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("ids") {
				c.config().Editor.IDs = opts.ids
			}
			return c.runNew(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ids, "ids", false, "assign UUIDs to nodes and edges")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing document")

	return cmd
}

func (c *CLI) runNew(ctx context.Context, arg string, opts newOpts) error {
	doc, err := c.openDocument(ctx, arg)
	if err != nil {
		return err
	}
	defer doc.close()

	if !opts.force {
		exists, err := doc.exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s already exists (use --force to overwrite)", doc)
		}
	}

	g := graph.New(doc.auxOption(), graph.WithLogger(c.Logger))
	if err := doc.save(ctx, g); err != nil {
		return fmt.Errorf("save %s: %w", doc, err)
	}

	printSuccess("Created %s", doc)
	if p, ok := g.Aux().(*payload.UUID); ok {
		printDetail("Document id: %s", p.DocumentID())
	}
	printNextStep("Edit it", "graphedit edit "+arg)
	return nil
}
