package cli

import (
	"github.com/spf13/cobra"

	"github.com/skelworks/skelgraph/pkg/skelio"
)

func newRoundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <in-file> <out-file>",
		Short: "Import a graph file and export it again, normalizing the format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, scale, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			return skelio.ExportFile(g, args[1], scale)
		},
	}
}
