package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skelworks/skelgraph/pkg/geom"
	"github.com/skelworks/skelgraph/pkg/skelio"
)

func newTransformCmd() *cobra.Command {
	var (
		output string
		offset []float32
		factor float32
	)

	cmd := &cobra.Command{
		Use:   "transform <graph-file>",
		Short: "Translate and scale every vertex and curve sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(offset) != 3 {
				return fmt.Errorf("--offset needs exactly 3 components, got %d", len(offset))
			}

			g, scale, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			g.MoveAndScale(geom.Vec3{X: offset[0], Y: offset[1], Z: offset[2]}, factor)

			if output == "" {
				output = args[0]
			}
			return skelio.ExportFile(g, output, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to rewriting the input)")
	cmd.Flags().Float32SliceVar(&offset, "offset", []float32{0, 0, 0}, "translation applied before scaling (x,y,z)")
	cmd.Flags().Float32Var(&factor, "scale", 1, "scale factor applied after the translation")
	return cmd
}

// pluralize renders "1 short edge" / "3 short edges".
func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
