package skeletal

import (
	"testing"

	"github.com/skelworks/skelgraph/pkg/geom"
)

func v3(x, y, z float32) geom.Vec3 { return geom.Vec3{X: x, Y: y, Z: z} }

// checkInvariants verifies the cross-entity invariants that must hold
// after every public operation: every curve is anchored to its endpoint
// vertex positions, and the aggregate spline count matches the sum of
// curve sizes.
func checkInvariants(t *testing.T, g *Graph) {
	t.Helper()
	const eps = 1e-4

	total := 0
	for _, e := range g.Edges() {
		props, ok := g.Edge(e)
		if !ok {
			t.Fatalf("live edge listing returned a dead edge")
		}
		total += props.Curve.Size()

		src, okS := g.Vertex(g.EdgeSource(e))
		tgt, okT := g.Vertex(g.EdgeTarget(e))
		if !okS || !okT {
			t.Fatalf("edge endpoint is not a live vertex")
		}
		if !props.Curve.Front().Point.AlmostEqual(src.Position, eps) {
			t.Errorf("curve front %v does not match source position %v",
				props.Curve.Front().Point, src.Position)
		}
		if !props.Curve.Back().Point.AlmostEqual(tgt.Position, eps) {
			t.Errorf("curve back %v does not match target position %v",
				props.Curve.Back().Point, tgt.Position)
		}
	}
	if total != g.EdgeSplineCount() {
		t.Errorf("spline count = %d, want %d", g.EdgeSplineCount(), total)
	}
}

// buildTriangle creates the three-vertex cycle used across the tests:
// (0,0,0) -> (1,0,0) -> (0,1,0) -> back to the first vertex.
func buildTriangle(t *testing.T) (*Graph, [3]VertexID, [3]EdgeID) {
	t.Helper()
	g := New()
	var vs [3]VertexID
	vs[0] = g.AddVertex(VertexProps{Position: v3(0, 0, 0)})
	vs[1] = g.AddVertex(VertexProps{Position: v3(1, 0, 0)})
	vs[2] = g.AddVertex(VertexProps{Position: v3(0, 1, 0)})

	var es [3]EdgeID
	var ok bool
	if es[0], ok = g.AddStraightEdge(vs[0], vs[1]); !ok {
		t.Fatal("adding edge 0->1 failed")
	}
	if es[1], ok = g.AddStraightEdge(vs[1], vs[2]); !ok {
		t.Fatal("adding edge 1->2 failed")
	}
	if es[2], ok = g.AddStraightEdge(vs[2], vs[0]); !ok {
		t.Fatal("adding edge 2->0 failed")
	}
	return g, vs, es
}

// buildChain creates vertices at the given positions connected by
// straight edges, alternating the edge direction along the chain.
func buildChain(t *testing.T, positions ...geom.Vec3) (*Graph, []VertexID, []EdgeID) {
	t.Helper()
	g := New()
	vs := make([]VertexID, len(positions))
	for i, p := range positions {
		vs[i] = g.AddVertex(VertexProps{Position: p})
	}
	es := make([]EdgeID, 0, len(positions)-1)
	for i := 0; i+1 < len(vs); i++ {
		from, to := vs[i], vs[i+1]
		if i%2 == 1 {
			from, to = to, from
		}
		e, ok := g.AddStraightEdge(from, to)
		if !ok {
			t.Fatalf("adding chain edge %d failed", i)
		}
		es = append(es, e)
	}
	return g, vs, es
}
