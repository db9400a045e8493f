package rockplan

import (
	"github.com/spf13/cobra"

	"github.com/rockplan/rockplan/internal/logs"
	"github.com/rockplan/rockplan/internal/runtime"
)

var verbosity int

func Execute(rt *runtime.Runtime) error {
	rootCmd := &cobra.Command{
		Use:   "rockplan [PATH]",
		Short: "Build planner for rock container images",
		Long: `rockplan scans a tree for rockcraft.yaml descriptors, derives a
content-addressed image reference per rock and architecture, asks the
registry which of them already exist, and emits the resulting build
matrix for CI consumption.

By default, 'rockplan' is equivalent to 'rockplan plan [PATH]'.
If PATH is omitted, the current working directory is used.`,
		Args: cobra.MaximumNArgs(1),
		// Default behavior is the same as 'plan'
		RunE: planCmdRunE,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logs.SetDebugVerbosity(verbosity)
			return nil
		},
		// we will handle that
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity level")

	// Root should accept the same flags as `plan`
	attachPlanCmdFlags(rootCmd)

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAutomergeCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd.ExecuteContext(rt.Ctx())
}
