package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/payload"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "inspect <name|file.json>",
		Short:             "Show the nodes and edges of a graph document",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runInspect(ctx context.Context, arg string) error {
	doc, err := c.openDocument(ctx, arg)
	if err != nil {
		return err
	}
	defer doc.close()

	g, err := doc.load(ctx, graph.WithLogger(loggerFromContext(ctx)))
	if err != nil {
		return fmt.Errorf("load %s: %w", doc, err)
	}

	fmt.Println(StyleTitle.Render(doc.String()))
	printKeyValue("Nodes", strconv.Itoa(g.NodeCount()))
	printKeyValue("Edges", strconv.Itoa(g.EdgeCount()))
	if p, ok := g.Aux().(*payload.UUID); ok {
		printKeyValue("Document", p.DocumentID().String())
	}

	if g.NodeCount() > 0 {
		fmt.Println()
		fmt.Println(nodeTable(g).Render())
	}
	if g.EdgeCount() > 0 {
		fmt.Println()
		fmt.Println(edgeTable(g).Render())
	}
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// nodeTable lists nodes in id order with their positions and, when the
// document carries them, their UUIDs.
func nodeTable(g *graph.Graph) *table.Table {
	_, withIDs := g.Aux().(*payload.UUID)
	headers := []string{"ID", "Label", "X", "Y"}
	if withIDs {
		headers = append(headers, "UUID")
	}

	t := newTable(headers...)
	for _, n := range g.Nodes() {
		p := n.Position()
		row := []string{strconv.Itoa(int(n.ID)), n.Label, fmtCoord(p.X), fmtCoord(p.Y)}
		if withIDs {
			row = append(row, auxID(n.Aux))
		}
		t.Row(row...)
	}
	return t
}

// edgeTable lists edges in (from, to) order with the shape layout chose.
func edgeTable(g *graph.Graph) *table.Table {
	t := newTable("From", "To", "Label", "Shape")
	for _, e := range g.Edges() {
		shape := "line"
		if _, ok := e.Style().(graph.LoopStyle); ok {
			shape = "loop"
		}
		t.Row(strconv.Itoa(int(e.From)), strconv.Itoa(int(e.To)), e.Label, shape)
	}
	return t
}

func fmtCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func auxID(aux any) string {
	if id, ok := payload.IDOf(aux); ok {
		return id.String()
	}
	return "-"
}
