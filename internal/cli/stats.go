package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skelworks/skelgraph/pkg/diag"
	"github.com/skelworks/skelgraph/pkg/skeletal"
	"github.com/skelworks/skelgraph/pkg/skelio"
)

// loadGraph imports a graph file with diagnostics wired to the command's
// logger and returns the graph and the file's recorded scale.
func loadGraph(cmd *cobra.Command, path string) (*skeletal.Graph, float32, error) {
	logger := loggerFromContext(cmd.Context())
	g := skeletal.New()
	g.SetDiagnostics(diag.WrapLogger(logger))
	scale, err := skelio.ImportFile(path, g)
	if err != nil {
		return nil, 1, err
	}
	logger.Debugf("loaded %s: %d vertices, %d edges, scale %g",
		path, g.VertexCount(), g.EdgeCount(), scale)
	return g, scale, nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <graph-file>",
		Short: "Print counts, components, and cycle information for a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, scale, err := loadGraph(cmd, args[0])
			if err != nil {
				return err
			}

			g.FindCycles()
			cycleVertices := 0
			for _, v := range g.Vertices() {
				if props, _ := g.Vertex(v); props.InCycle {
					cycleVertices++
				}
			}
			cycleEdges := 0
			for _, e := range g.Edges() {
				if props, _ := g.Edge(e); props.InCycle {
					cycleEdges++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vertices:       %d\n", g.VertexCount())
			fmt.Fprintf(out, "edges:          %d\n", g.EdgeCount())
			fmt.Fprintf(out, "curve samples:  %d\n", g.EdgeSplineCount())
			fmt.Fprintf(out, "components:     %d\n", g.CountConnectedComponents())
			fmt.Fprintf(out, "cycle vertices: %d\n", cycleVertices)
			fmt.Fprintf(out, "cycle edges:    %d\n", cycleEdges)
			fmt.Fprintf(out, "scale:          %g\n", scale)
			return nil
		},
	}
}
