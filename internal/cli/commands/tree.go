package commands

import (
	"fmt"

	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/leapstack-labs/stylist/pkg/tree"
	"github.com/spf13/cobra"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	var mapExtension []string
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the parse tree of a source file",
		Long: `Print the parse tree rules see for a source file, one node per line.

Useful when writing a rule: the kind names shown are the ones paths and
searches are written in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd, "")
			factory, err := cmdCtx.Cfg.Factory(mapExtension...)
			if err != nil {
				return err
			}
			src, err := factory.ReadFile(args[0])
			if err != nil {
				return err
			}
			ts, ok := src.(source.TreeSource)
			if !ok {
				return fmt.Errorf("%s has no parse tree", src.Name())
			}
			if err := ts.TreeError(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return tree.Dump(cmd.OutOrStdout(), ts.Tree())
		},
	}
	cmd.Flags().StringArrayVar(&mapExtension, "map-extension", nil, "Map a file extension to a pipe: EXTENSION:LANGUAGE[:PREPROCESSOR]...")
	return cmd
}
