package rockplan

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/state"
	"github.com/rockplan/rockplan/internal/ui"
)

var cleanMaxAge time.Duration

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Prune stale entries from the local state cache",
		Args:  cobra.NoArgs,
		RunE:  cleanCmdRunE,
	}
	cmd.Flags().DurationVar(&cleanMaxAge, "max-age", 30*24*time.Hour, "prune entries unused for longer than this")
	return cmd
}

func cleanCmdRunE(cmd *cobra.Command, args []string) error {
	proceed, err := ui.Confirm("Prune the local state cache?", true)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	store, err := state.DefaultKVStore(cmd.Context())
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-cleanMaxAge)
	pruned, err := store.DeleteUnusedBefore(cmd.Context(), cutoff)
	if err != nil {
		return err
	}

	logs.Infof("pruned %d cache entr(ies)", pruned)
	return nil
}
