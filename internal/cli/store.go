package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/graphedit/pkg/errors"
)

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List documents in the store",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context())
		},
	}
}

func (c *CLI) runList(ctx context.Context) error {
	s, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		printInfo("No documents in %s", c.config().Store.URL)
		printNextStep("Create one", "graphedit new <name>")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// deleteCommand creates the "delete" command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a document from the store",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDelete(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runDelete(ctx context.Context, name string) error {
	if isFileRef(name) {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "%s is a file, not a stored document", name)
	}
	s, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(ctx, name); err != nil {
		return err
	}
	printSuccess("Deleted %s", name)
	return nil
}
