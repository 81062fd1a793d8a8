package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version,
// typically injected by the main package via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the skelgraph CLI and returns an error if any command
// fails. The root command wires the --verbose flag into the logger that
// is attached to the context and shared, via the diagnostic sink, with
// the graph engine.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "skelgraph",
		Short:        "skelgraph edits and inspects skeletal graph files",
		Long:         `skelgraph is a tool for working with skeletal graphs: directed multigraphs of 3D vertices connected by deformable curves, stored in a tagged-line text format.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("skelgraph %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newStatsCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newTransformCmd())
	root.AddCommand(newRoundtripCmd())

	return root.ExecuteContext(ctx)
}
