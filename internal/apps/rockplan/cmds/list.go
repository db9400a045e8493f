package rockplan

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rockplan/rockplan/internal/discover"
	"github.com/rockplan/rockplan/internal/fsops"
	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/rockfile"
	"github.com/rockplan/rockplan/internal/treehash"
	"github.com/rockplan/rockplan/internal/ui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [PATH]",
		Short: "List the rocks found under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listCmdRunE,
	}
}

func listCmdRunE(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	ops := fsops.DefaultOps()
	absRoot, err := ops.Path.Abs(root)
	if err != nil {
		return err
	}

	descriptors, err := discover.Descriptors(absRoot, rockfile.Filename, ops)
	if err != nil {
		return err
	}
	if len(descriptors) == 0 {
		logs.Infof("no %s found under %s", rockfile.Filename, absRoot)
		return nil
	}

	table := ui.NewTable(
		ui.Column{Header: "Rock"},
		ui.Column{Header: "Version"},
		ui.Column{Header: "Platforms"},
		ui.Column{Header: "Digest", MaxWidth: 19},
		ui.Column{Header: "Path"},
	)

	for _, descriptorPath := range descriptors {
		rf, err := rockfile.Load(descriptorPath, ops)
		if err != nil {
			return err
		}

		dir := ops.Path.Dir(descriptorPath)
		dig, err := treehash.Tree(dir, ops)
		if err != nil {
			return fmt.Errorf("hash %s: %w", dir, err)
		}

		relDir, err := ops.Path.Rel(absRoot, dir)
		if err != nil {
			return err
		}

		platforms := "-"
		if arches := rf.Architectures(); len(arches) > 0 {
			platforms = strings.Join(arches, ",")
		}

		table.AddRow(rf.Name, rf.Version, platforms, dig.Encoded(), ops.Path.ToSlash(relDir))
	}

	return table.Render(os.Stdout)
}
