package cli

import (
	"github.com/spf13/cobra"

	"github.com/skelworks/skelgraph/pkg/config"
	"github.com/skelworks/skelgraph/pkg/skelio"
)

func newCleanCmd() *cobra.Command {
	var (
		output     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "clean <graph-file>",
		Short: "Collapse short and simple edges and write the cleaned graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}

			g, scale, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			p := newProgress(logger)
			short := g.CollapseEdgesShorterThan(cfg.CollapseMinLength)
			simple := g.CollapseEdgesWithLessThanNSplines(cfg.SimpleEdgeSplineCount + 1)
			p.done(pluralize(short, "short edge") + " and " + pluralize(simple, "simple edge") + " collapsed")

			if output == "" {
				output = args[0]
			}
			return skelio.ExportFile(g, output, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to rewriting the input)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file with maintenance thresholds")
	return cmd
}
