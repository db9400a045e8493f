package rockplan

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/version"
	"github.com/rockplan/rockplan/internal/versioncheck"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rockplan version",
		Args:  cobra.NoArgs,
		RunE:  versionCmdRunE,
	}
}

func versionCmdRunE(cmd *cobra.Command, args []string) error {
	return runVersion(cmd.Context(), cmd.OutOrStdout(), versioncheck.Check)
}

// runVersion starts the release lookup before printing so the network round
// trip overlaps the output instead of delaying it.
func runVersion(ctx context.Context, out io.Writer, check func(context.Context) *versioncheck.Result) error {
	results := make(chan *versioncheck.Result, 1)
	go func() { results <- check(ctx) }()

	fmt.Fprintf(out, "rockplan %s\n", version.Get())

	if result := <-results; result != nil && result.UpdateAvailable {
		logs.Infof("newer version available: %s (%s)", result.LatestVersion, result.UpdateURL)
	}
	return nil
}
