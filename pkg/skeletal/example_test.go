package skeletal_test

import (
	"fmt"

	"github.com/skelworks/skelgraph/pkg/geom"
	"github.com/skelworks/skelgraph/pkg/skeletal"
)

// Build a small Y-shaped skeleton, split one branch, and merge the
// inserted joint back away.
func Example() {
	g := skeletal.New()

	root := g.AddVertex(skeletal.VertexProps{Position: geom.Vec3{}})
	left := g.AddVertex(skeletal.VertexProps{Position: geom.Vec3{X: -1, Y: 1}})
	right := g.AddVertex(skeletal.VertexProps{Position: geom.Vec3{X: 1, Y: 1}})
	g.AddStraightEdge(root, left)
	branch, _ := g.AddStraightEdge(root, right)

	joint, _, err := g.SplitEdgeAt(branch, 0, geom.Vec3{X: 0.5, Y: 0.5})
	if err != nil {
		fmt.Println("split failed:", err)
		return
	}
	fmt.Println("after split:", g.VertexCount(), "vertices,", g.EdgeCount(), "edges")

	if _, _, err := g.RemoveDegree2VertexAndMergeEdges(joint); err != nil {
		fmt.Println("merge failed:", err)
		return
	}
	fmt.Println("after merge:", g.VertexCount(), "vertices,", g.EdgeCount(), "edges")

	// Output:
	// after split: 4 vertices, 3 edges
	// after merge: 3 vertices, 2 edges
}

func ExampleGraph_ShortestPath() {
	g := skeletal.New()
	var chain []skeletal.VertexID
	for i := 0; i < 4; i++ {
		chain = append(chain, g.AddVertex(skeletal.VertexProps{
			Position: geom.Vec3{X: float32(i)},
		}))
	}
	for i := 0; i+1 < len(chain); i++ {
		g.AddStraightEdge(chain[i], chain[i+1])
	}

	path, err := g.ShortestPath(chain[0], chain[3])
	if err != nil {
		fmt.Println("no path:", err)
		return
	}
	fmt.Println("hops:", len(path)-1)

	// Output:
	// hops: 3
}
