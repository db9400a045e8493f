package rockplan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rockplan/rockplan/internal/fsops"
	"github.com/rockplan/rockplan/internal/treehash"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [PATH]",
		Short: "Print the content digest of a rock directory",
		Long: `hash computes the deterministic content digest of a directory the
same way plan does, so a tag seen in the registry can be traced back to
the tree state that produced it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: hashCmdRunE,
	}
}

func hashCmdRunE(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	ops := fsops.DefaultOps()
	absDir, err := ops.Path.Abs(dir)
	if err != nil {
		return err
	}

	dig, err := treehash.Tree(absDir, ops)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), dig.Encoded())
	return nil
}
