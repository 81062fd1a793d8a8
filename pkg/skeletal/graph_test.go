package skeletal

import (
	"errors"
	"testing"
)

func TestAddRemoveVertex(t *testing.T) {
	g := New()
	if g.VertexCount() != 0 {
		t.Fatalf("fresh graph has %d vertices", g.VertexCount())
	}

	v := g.AddVertex(VertexProps{Position: v3(1, 2, 3)})
	if v.Nil() {
		t.Fatal("AddVertex returned the null descriptor")
	}
	props, ok := g.Vertex(v)
	if !ok {
		t.Fatal("new vertex is not live")
	}
	if props.Radius != DefaultVertexRadius {
		t.Errorf("radius = %g, want the default %g", props.Radius, DefaultVertexRadius)
	}

	removed := g.RemoveVertex(v)
	if len(removed) != 0 {
		t.Errorf("removing an isolated vertex removed %d edges", len(removed))
	}
	if g.VertexCount() != 0 {
		t.Errorf("vertex count = %d after removal, want 0", g.VertexCount())
	}
	if _, ok := g.Vertex(v); ok {
		t.Error("descriptor still resolves after removal")
	}
}

func TestDescriptorsAreGenerational(t *testing.T) {
	g := New()
	v := g.AddVertex(VertexProps{Position: v3(0, 0, 0)})
	g.RemoveVertex(v)

	// the freed slot is reused, but the stale descriptor must not alias it
	w := g.AddVertex(VertexProps{Position: v3(9, 9, 9)})
	if _, ok := g.Vertex(v); ok {
		t.Error("stale descriptor resolves after slot reuse")
	}
	if props, ok := g.Vertex(w); !ok || props.Position != v3(9, 9, 9) {
		t.Error("fresh descriptor does not resolve")
	}
}

func TestAddEdgeMaintainsSplineCount(t *testing.T) {
	g, _, _ := buildTriangle(t)
	if g.EdgeSplineCount() != 6 {
		t.Errorf("spline count = %d, want 6", g.EdgeSplineCount())
	}
	checkInvariants(t, g)
}

func TestAddEdgeRejectsNullEndpoint(t *testing.T) {
	g := New()
	v := g.AddVertex(VertexProps{Position: v3(0, 0, 0)})
	if _, ok := g.AddStraightEdge(v, NilVertex); ok {
		t.Error("adding an edge to the null vertex succeeded")
	}
	if _, ok := g.AddStraightEdge(NilVertex, v); ok {
		t.Error("adding an edge from the null vertex succeeded")
	}
	if g.EdgeSplineCount() != 0 {
		t.Errorf("failed adds changed the spline count to %d", g.EdgeSplineCount())
	}
}

func TestRemoveEdgeAutoRemovesIsolatedEndpoints(t *testing.T) {
	g, vs, es := buildChain(t, v3(0, 0, 0), v3(1, 0, 0), v3(2, 0, 0))

	// removing the first edge isolates the chain's first vertex
	s, tgt := g.RemoveEdge(es[0])
	removed := s
	if removed.Nil() {
		removed = tgt
	}
	if removed != vs[0] {
		t.Errorf("auto-removed vertex = %v, want the chain head", removed)
	}
	if g.VertexCount() != 2 {
		t.Errorf("vertex count = %d, want 2", g.VertexCount())
	}
	checkInvariants(t, g)

	// removing the last edge would isolate both endpoints, but the graph
	// must keep its final vertex
	g.RemoveEdge(es[1])
	if g.VertexCount() != 1 {
		t.Errorf("vertex count = %d after removing the last edge, want 1", g.VertexCount())
	}
}

func TestClearVertexKeepsVertex(t *testing.T) {
	g, vs, _ := buildTriangle(t)
	removed := g.ClearVertex(vs[0])
	if len(removed) != 2 {
		t.Fatalf("cleared %d edges, want 2", len(removed))
	}
	if _, ok := g.Vertex(vs[0]); !ok {
		t.Error("cleared vertex is gone")
	}
	if g.Degree(vs[0]) != 0 {
		t.Errorf("degree = %d after clear, want 0", g.Degree(vs[0]))
	}
	checkInvariants(t, g)
}

func TestEdgeExists(t *testing.T) {
	g, vs, _ := buildTriangle(t)

	edges, forward, found := g.EdgeExists(vs[0], vs[1])
	if !found || !forward || len(edges) != 1 {
		t.Errorf("EdgeExists(0,1) = %d edges, forward %t, found %t", len(edges), forward, found)
	}

	edges, forward, found = g.EdgeExists(vs[1], vs[0])
	if !found || forward || len(edges) != 1 {
		t.Errorf("EdgeExists(1,0) = %d edges, forward %t, found %t", len(edges), forward, found)
	}

	w := g.AddVertex(VertexProps{Position: v3(5, 5, 5)})
	if _, _, found = g.EdgeExists(vs[0], w); found {
		t.Error("EdgeExists found an edge to an unconnected vertex")
	}
}

func TestParallelAndAntiparallelEdges(t *testing.T) {
	g := New()
	a := g.AddVertex(VertexProps{Position: v3(0, 0, 0)})
	b := g.AddVertex(VertexProps{Position: v3(1, 0, 0)})

	if _, ok := g.AddStraightEdge(a, b); !ok {
		t.Fatal("first edge failed")
	}
	if _, ok := g.AddStraightEdge(a, b); !ok {
		t.Fatal("parallel edge failed")
	}
	if _, ok := g.AddStraightEdge(b, a); !ok {
		t.Fatal("antiparallel edge failed")
	}
	if g.EdgeCount() != 3 {
		t.Errorf("edge count = %d, want 3", g.EdgeCount())
	}
	if g.Degree(a) != 3 || g.Degree(b) != 3 {
		t.Errorf("degrees = %d, %d, want 3, 3", g.Degree(a), g.Degree(b))
	}

	edges, _, found := g.EdgeExists(a, b)
	if !found || len(edges) != 2 {
		t.Errorf("EdgeExists found %d directions, want 2", len(edges))
	}
	checkInvariants(t, g)
}

func TestIsEdgeSourceOrTarget(t *testing.T) {
	g, vs, es := buildTriangle(t)
	if !g.IsEdgeSourceOrTarget(es[0], vs[0]) || !g.IsEdgeSourceOrTarget(es[0], vs[1]) {
		t.Error("edge endpoints not recognized")
	}
	if g.IsEdgeSourceOrTarget(es[0], vs[2]) {
		t.Error("unrelated vertex recognized as endpoint")
	}
}

func TestFindVertexNotConnectedToAdjacentEdge(t *testing.T) {
	g, vs, es := buildTriangle(t)
	if got := g.FindVertexNotConnectedToAdjacentEdge(es[0], es[1]); got != vs[0] {
		t.Errorf("free vertex of edge 0 relative to edge 1 = %v, want vertex 0", got)
	}

	// two disjoint edges have no shared vertex
	g2 := New()
	a := g2.AddVertex(VertexProps{Position: v3(0, 0, 0)})
	b := g2.AddVertex(VertexProps{Position: v3(1, 0, 0)})
	c := g2.AddVertex(VertexProps{Position: v3(2, 0, 0)})
	d := g2.AddVertex(VertexProps{Position: v3(3, 0, 0)})
	e1, _ := g2.AddStraightEdge(a, b)
	e2, _ := g2.AddStraightEdge(c, d)
	if got := g2.FindVertexNotConnectedToAdjacentEdge(e1, e2); !got.Nil() {
		t.Errorf("disjoint edges returned %v, want the null descriptor", got)
	}
}

func TestEdgeRadiusInterpolation(t *testing.T) {
	g := New()
	a := g.AddVertex(VertexProps{Position: v3(0, 0, 0), Radius: 2})
	b := g.AddVertex(VertexProps{Position: v3(1, 0, 0), Radius: 4})
	e, _ := g.AddStraightEdge(a, b)

	// harmonic mean of 2 and 4 at the source end
	rStart := g.EdgeRadius(e, 0)
	want := float32(2.0 * 2 * 4 / (2 + 4))
	if diff := rStart - want; diff > 1e-5 || diff < -1e-5 {
		t.Errorf("radius at index 0 = %g, want the harmonic mean %g", rStart, want)
	}
	if rEnd := g.EdgeRadius(e, 1); rEnd != 4 {
		t.Errorf("radius at the last index = %g, want 4", rEnd)
	}
	// out-of-range indices clamp to the last sample
	if r := g.EdgeRadius(e, 99); r != 4 {
		t.Errorf("radius at a clamped index = %g, want 4", r)
	}
}

func TestUpdateVertexPositionReshapesIncidentCurves(t *testing.T) {
	g, vs, _ := buildTriangle(t)
	if !g.UpdateVertexPosition(vs[0], v3(0, 0, 2), true) {
		t.Fatal("update reported failure")
	}
	props, _ := g.Vertex(vs[0])
	if props.Position != v3(0, 0, 2) {
		t.Errorf("position = %v, want (0 0 2)", props.Position)
	}
	checkInvariants(t, g)
}

func TestUpdateVertexPositionRejectsNull(t *testing.T) {
	g := New()
	if g.UpdateVertexPosition(NilVertex, v3(1, 1, 1), true) {
		t.Error("moving the null vertex succeeded")
	}
}

func TestIsSimpleEdge(t *testing.T) {
	g, _, es := buildTriangle(t)
	if !g.IsSimpleEdge(es[0]) {
		t.Error("straight two-sample edge not reported simple")
	}
	mid, _, err := g.SplitEdgeAt(es[0], 0, v3(0.5, 0, 0))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	merged, _, err := g.RemoveDegree2VertexAndMergeEdges(mid)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if g.IsSimpleEdge(merged) {
		t.Error("three-sample merged edge reported simple")
	}
}

func TestCopyIsDeep(t *testing.T) {
	g, vs, _ := buildTriangle(t)
	cp := g.Copy()

	if cp.VertexCount() != g.VertexCount() || cp.EdgeCount() != g.EdgeCount() {
		t.Fatalf("copy has %d/%d entities, want %d/%d",
			cp.VertexCount(), cp.EdgeCount(), g.VertexCount(), g.EdgeCount())
	}
	if cp.ID() == g.ID() {
		t.Error("copy shares the original's identity")
	}

	// mutating the original must not affect the copy
	g.UpdateVertexPosition(vs[0], v3(7, 7, 7), true)
	props, ok := cp.Vertex(vs[0])
	if !ok {
		t.Fatal("descriptor does not resolve in the copy")
	}
	if props.Position != v3(0, 0, 0) {
		t.Errorf("copy position = %v after mutating the original", props.Position)
	}
	checkInvariants(t, cp)
}

func TestCollapseDeadEdgeFails(t *testing.T) {
	g, _, es := buildTriangle(t)
	g.RemoveEdge(es[0])
	if _, err := g.CollapseEdge(es[0], CollapseSource); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("collapsing a dead edge returned %v, want ErrInvalidArgument", err)
	}
}
