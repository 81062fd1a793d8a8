package skeletal

// Geometry-aware rewrite operations. Each one mutates topology and
// reshapes the affected curves in the same step, keeping every curve
// anchored to its endpoint vertex positions. Operations fail fast and do
// not roll back partial mutations.

import (
	"fmt"

	"github.com/skelworks/skelgraph/pkg/curve"
	"github.com/skelworks/skelgraph/pkg/geom"
)

// CollapseResult describes the outcome of collapsing an edge: the vertex
// that was absorbed, the edges that disappeared with it, and the edges
// re-attached to the surviving vertex.
type CollapseResult struct {
	RemovedVertex VertexID
	RemovedEdges  []EdgeID
	AddedEdges    []EdgeID
}

// SplitEdgeAt inserts a new vertex at p on e's curve, between samples
// segmentIndex and segmentIndex+1, and replaces e by two edges whose
// curves together span the original. The new vertex's radius is
// interpolated from the endpoint radii; both halves inherit e's cycle
// mark. Returns the inserted vertex and the (left, right) edge pair.
func (g *Graph) SplitEdgeAt(e EdgeID, segmentIndex int, p geom.Vec3) (VertexID, [2]EdgeID, error) {
	rec := g.edges.get(e)
	if rec == nil {
		return NilVertex, [2]EdgeID{}, fmt.Errorf("split edge: dead edge descriptor: %w", ErrInvalidArgument)
	}
	c := rec.props.Curve.Clone()
	if segmentIndex < 0 || segmentIndex >= c.Size()-1 {
		return NilVertex, [2]EdgeID{}, fmt.Errorf("split edge at segment %d of %d: %w",
			segmentIndex, c.Size(), ErrInvalidArgument)
	}
	source, target := rec.from, rec.to
	inCycle := rec.props.InCycle

	mid := g.AddVertex(VertexProps{Position: p, Radius: g.EdgeRadius(e, segmentIndex)})

	// endpoint samples of the two halves
	sourcePT := c.Front()
	targetPT := c.Back()
	newTargetPT := curve.PointTangent{Point: p, Tangent: p.Sub(c.At(segmentIndex).Point).Normalized()}
	newSourcePT := curve.PointTangent{Point: p, Tangent: c.At(segmentIndex + 1).Point.Sub(p).Normalized()}

	first := curve.New(sourcePT, newTargetPT)
	for i := 1; i <= segmentIndex; i++ {
		first.AddMiddlePoint(c.At(i))
	}
	if n := first.Size(); n >= 3 {
		pt := first.At(n - 2)
		pt.Tangent = first.Back().Point.Sub(first.At(n - 3).Point).Normalized()
		first.Set(n-2, pt)
	}

	second := curve.New(newSourcePT, targetPT)
	for i := segmentIndex + 1; i < c.Size()-1; i++ {
		second.AddMiddlePoint(c.At(i))
	}
	if second.Size() >= 3 {
		pt := second.At(1)
		pt.Tangent = second.At(2).Point.Sub(second.At(0).Point).Normalized()
		second.Set(1, pt)
	}

	left, _ := g.AddEdge(source, mid, EdgeProps{Curve: first})
	right, _ := g.AddEdge(mid, target, EdgeProps{Curve: second})
	g.edges.get(left).props.InCycle = inCycle
	g.edges.get(right).props.InCycle = inCycle

	g.RemoveEdge(e)
	return mid, [2]EdgeID{left, right}, nil
}

// CutEdgeAt severs e near p, between samples segmentIndex and
// segmentIndex+1, leaving two distinct vertices offset one unit toward
// the previous and next curve sample with no edge between them. Returns
// the (left, right) vertex pair and the (left, right) edge pair.
func (g *Graph) CutEdgeAt(e EdgeID, segmentIndex int, p geom.Vec3) ([2]VertexID, [2]EdgeID, error) {
	rec := g.edges.get(e)
	if rec == nil {
		return [2]VertexID{}, [2]EdgeID{}, fmt.Errorf("cut edge: dead edge descriptor: %w", ErrInvalidArgument)
	}
	c := rec.props.Curve
	if segmentIndex < 0 || segmentIndex >= c.Size()-1 {
		return [2]VertexID{}, [2]EdgeID{}, fmt.Errorf("cut edge at segment %d of %d: %w",
			segmentIndex, c.Size(), ErrInvalidArgument)
	}

	dirPrev := c.At(segmentIndex).Point.Sub(p).Normalized()
	dirNext := c.At(segmentIndex + 1).Point.Sub(p).Normalized()
	leftPos := p.Add(dirPrev)
	rightPos := p.Add(dirNext)

	rightVertex, rightEdges, err := g.SplitEdgeAt(e, segmentIndex, rightPos)
	if err != nil {
		return [2]VertexID{}, [2]EdgeID{}, err
	}
	leftTemp, rightEdge := rightEdges[0], rightEdges[1]

	tempProps, _ := g.Edge(leftTemp)
	lastSegment := tempProps.Curve.Size() - 2

	leftVertex, leftEdges, err := g.SplitEdgeAt(leftTemp, lastSegment, leftPos)
	if err != nil {
		return [2]VertexID{}, [2]EdgeID{}, err
	}
	leftEdge, middle := leftEdges[0], leftEdges[1]

	g.RemoveEdge(middle)

	return [2]VertexID{leftVertex, rightVertex}, [2]EdgeID{leftEdge, rightEdge}, nil
}

// CollapseEdge contracts e into a single vertex. The surviving endpoint
// is chosen by option; with CollapseMidpoint the source survives but is
// repositioned at the midpoint of the two endpoints. Every other edge of
// the absorbed vertex is re-attached to the survivor with its junction
// sample reset to the survivor's new position; edges whose re-attachment
// would produce a self-loop (their other endpoint is the survivor) are
// dropped. The absorbed vertex is removed once isolated, unless the
// graph would be left with no vertices at all.
func (g *Graph) CollapseEdge(e EdgeID, option CollapseOption) (CollapseResult, error) {
	rec := g.edges.get(e)
	if rec == nil {
		return CollapseResult{}, fmt.Errorf("collapse edge: dead edge descriptor: %w", ErrInvalidArgument)
	}
	source, target := rec.from, rec.to
	if source == target {
		return CollapseResult{}, fmt.Errorf("collapse self-loop: %w", ErrInvalidArgument)
	}

	keep, drop := source, target
	if option == CollapseTarget {
		keep, drop = target, source
	}
	newPos := g.verts.get(keep).props.Position
	if option == CollapseMidpoint {
		newPos = g.verts.get(source).props.Position.
			Add(g.verts.get(target).props.Position).Scale(0.5)
	}

	// gather re-attachments before touching the topology
	type pendingEdge struct {
		from, to VertexID
		props    EdgeProps
	}
	var pending []pendingEdge

	dropRec := g.verts.get(drop)
	for _, in := range dropRec.in {
		if in == e {
			continue
		}
		ir := g.edges.get(in)
		if ir.from == ir.to || ir.from == keep {
			continue
		}
		props := ir.props
		props.Curve = props.Curve.Clone()
		n := props.Curve.Size()
		props.Curve.Set(n-1, curve.PointTangent{
			Point:   newPos,
			Tangent: newPos.Sub(props.Curve.At(n - 2).Point).Normalized(),
		})
		pending = append(pending, pendingEdge{from: ir.from, to: keep, props: props})
	}
	for _, out := range dropRec.out {
		if out == e {
			continue
		}
		or := g.edges.get(out)
		if or.from == or.to || or.to == keep {
			continue
		}
		props := or.props
		props.Curve = props.Curve.Clone()
		props.Curve.Set(0, curve.PointTangent{
			Point:   newPos,
			Tangent: props.Curve.At(1).Point.Sub(newPos).Normalized(),
		})
		pending = append(pending, pendingEdge{from: keep, to: or.to, props: props})
	}

	cleared := g.ClearVertex(drop)

	added := make([]EdgeID, 0, len(pending))
	for _, p := range pending {
		if id, ok := g.AddEdge(p.from, p.to, p.props); ok {
			added = append(added, id)
		}
	}

	keepRec := g.verts.get(keep)
	moved := keepRec.props.Position != newPos
	keepRec.props.Position = newPos

	// a midpoint collapse moves the survivor, so its pre-existing edges
	// need their junction samples re-anchored too
	if moved {
		for _, in := range keepRec.in {
			ir := g.edges.get(in)
			n := ir.props.Curve.Size()
			ir.props.Curve.Set(n-1, curve.PointTangent{
				Point:   newPos,
				Tangent: newPos.Sub(ir.props.Curve.At(n - 2).Point).Normalized(),
			})
		}
		for _, out := range keepRec.out {
			or := g.edges.get(out)
			or.props.Curve.Set(0, curve.PointTangent{
				Point:   newPos,
				Tangent: or.props.Curve.At(1).Point.Sub(newPos).Normalized(),
			})
		}
	}

	if g.VertexCount() != 1 {
		g.verts.release(drop)
	}

	return CollapseResult{RemovedVertex: drop, RemovedEdges: cleared, AddedEdges: added}, nil
}

// MergeVertices fuses two vertices by adding a temporary straight edge
// between them and collapsing it with the given option.
func (g *Graph) MergeVertices(a, b VertexID, option CollapseOption) (CollapseResult, error) {
	temp, ok := g.AddStraightEdge(a, b)
	if !ok {
		return CollapseResult{}, fmt.Errorf("merge vertices: %w", ErrInvalidArgument)
	}
	return g.CollapseEdge(temp, option)
}

// SplitEdgeAlongCurve replaces e by one composite edge per (source,
// target) pair. For each pair it locates the incident edges of e's
// endpoints that touch the pair's vertices, concatenates touching curve,
// e's curve, and ending curve (reversing sub-curves as the discovered
// orientations require, and pseudo-elastically bending e's curve to meet
// the junctions), and adds the composite edge. All consumed edges and e
// itself are removed afterwards, along with any endpoint vertex that
// became isolated. No vertices are ever created.
func (g *Graph) SplitEdgeAlongCurve(e EdgeID, pairs []VertexPair) (GraphDiff, error) {
	rec := g.edges.get(e)
	if rec == nil {
		return GraphDiff{}, fmt.Errorf("split along curve: dead edge descriptor: %w", ErrInvalidArgument)
	}
	splitSource, splitTarget := rec.from, rec.to
	removedCurve := rec.props.Curve.Clone()

	var edgesToRemove []EdgeID
	var addedEdges []EdgeID

	for _, pair := range pairs {
		var start, end curve.Curve
		var startFound, endFound bool
		reverseMiddle := false

		// in- and out-edges of the split edge's source
		for _, in := range g.InEdges(splitSource) {
			ir := g.edges.get(in)
			switch ir.from {
			case pair.Source:
				start = ir.props.Curve.Clone()
				startFound = true
				reverseMiddle = false
				edgesToRemove = append(edgesToRemove, in)
			case pair.Target:
				end = ir.props.Curve.Reversed()
				endFound = true
				reverseMiddle = true
				edgesToRemove = append(edgesToRemove, in)
			}
		}
		for _, out := range g.OutEdges(splitSource) {
			if out == e {
				continue
			}
			or := g.edges.get(out)
			switch or.to {
			case pair.Source:
				start = or.props.Curve.Reversed()
				startFound = true
				reverseMiddle = false
				edgesToRemove = append(edgesToRemove, out)
			case pair.Target:
				end = or.props.Curve.Clone()
				endFound = true
				reverseMiddle = true
				edgesToRemove = append(edgesToRemove, out)
			}
		}

		// and of its target
		for _, in := range g.InEdges(splitTarget) {
			if in == e {
				continue
			}
			ir := g.edges.get(in)
			switch ir.from {
			case pair.Source:
				start = ir.props.Curve.Clone()
				startFound = true
				reverseMiddle = true
				edgesToRemove = append(edgesToRemove, in)
			case pair.Target:
				end = ir.props.Curve.Reversed()
				endFound = true
				reverseMiddle = false
				edgesToRemove = append(edgesToRemove, in)
			}
		}
		for _, out := range g.OutEdges(splitTarget) {
			or := g.edges.get(out)
			switch or.to {
			case pair.Source:
				start = or.props.Curve.Reversed()
				startFound = true
				reverseMiddle = true
				edgesToRemove = append(edgesToRemove, out)
			case pair.Target:
				end = or.props.Curve.Clone()
				endFound = true
				reverseMiddle = false
				edgesToRemove = append(edgesToRemove, out)
			}
		}

		if !startFound || !endFound {
			g.sink.Warnf("graph %s: split along curve: no incident edge touches pair, skipping", g.id)
			continue
		}

		// assemble start ++ middle ++ end, dropping duplicated junctions
		start.PopBack()
		middle := curve.ReversedFrom(removedCurve, reverseMiddle)
		middle.PseudoElasticDeform(true, start.Back().Point, true)
		middle.PseudoElasticDeform(false, end.At(1).Point, true)
		middle.PopBack()
		start.Append(middle, 1)
		start.Append(end, 1)

		if id, ok := g.AddEdge(pair.Source, pair.Target, EdgeProps{Curve: start}); ok {
			addedEdges = append(addedEdges, id)
		}
	}

	edgesToRemove = append(edgesToRemove, e)

	var removedVertices []VertexID
	for _, re := range edgesToRemove {
		s, t := g.RemoveEdge(re)
		if !s.Nil() {
			removedVertices = append(removedVertices, s)
		}
		if !t.Nil() {
			removedVertices = append(removedVertices, t)
		}
	}

	return GraphDiff{
		RemovedVertices: removedVertices,
		RemovedEdges:    edgesToRemove,
		AddedEdges:      addedEdges,
	}, nil
}

// RemoveDegree2VertexAndMergeEdges removes a vertex of total degree 2 by
// fusing its two incident edges into a single edge whose curve is the
// concatenation of both, reversing sub-curves and negating tangents as
// the edge directions require. Returns the merged edge and the two
// removed edges.
func (g *Graph) RemoveDegree2VertexAndMergeEdges(v VertexID) (EdgeID, [2]EdgeID, error) {
	if g.Degree(v) != 2 {
		return NilEdge, [2]EdgeID{}, fmt.Errorf("merge edges of degree-%d vertex: %w", g.Degree(v), ErrInvalidArgument)
	}

	rec := g.verts.get(v)
	var sources, targets []VertexID
	var inCurves, outCurves []curve.Curve
	for _, in := range rec.in {
		ir := g.edges.get(in)
		inCurves = append(inCurves, ir.props.Curve.Clone())
		sources = append(sources, ir.from)
	}
	for _, out := range rec.out {
		or := g.edges.get(out)
		outCurves = append(outCurves, or.props.Curve.Clone())
		targets = append(targets, or.to)
	}

	var merged curve.Curve
	var newSource, newTarget VertexID

	switch {
	case len(inCurves) == 1 && len(outCurves) == 1:
		// same direction on both sides: in-curve then out-curve
		merged = inCurves[0]
		back := merged.Back()
		back.Tangent = outCurves[0].At(1).Point.Sub(back.Point).Normalized()
		merged.Set(merged.Size()-1, back)
		merged.Append(outCurves[0], 1)
		newSource, newTarget = sources[0], targets[0]

	case len(inCurves) == 2:
		// both edges point at v: append the second in-curve reversed
		merged = inCurves[0]
		second := inCurves[1]
		back := merged.Back()
		back.Tangent = second.At(second.Size() - 2).Point.Sub(back.Point).Normalized()
		merged.Set(merged.Size()-1, back)
		merged.Append(second.Reversed(), 1)
		newSource, newTarget = sources[0], sources[1]

	case len(outCurves) == 2:
		// both edges leave v: start from the first out-curve reversed
		merged = outCurves[0].Reversed()
		back := merged.Back()
		back.Tangent = outCurves[1].At(1).Point.Sub(back.Point).Normalized()
		merged.Set(merged.Size()-1, back)
		merged.Append(outCurves[1], 1)
		newSource, newTarget = targets[0], targets[1]

	default:
		return NilEdge, [2]EdgeID{}, fmt.Errorf("merge edges of degree-2 vertex: %w", ErrInternal)
	}

	newEdge, ok := g.AddEdge(newSource, newTarget, EdgeProps{Curve: merged})
	removedEdges := g.RemoveVertex(v)
	if !ok || len(removedEdges) != 2 {
		return NilEdge, [2]EdgeID{}, fmt.Errorf("replace degree-2 vertex by merged edge: %w", ErrInternal)
	}
	return newEdge, [2]EdgeID{removedEdges[0], removedEdges[1]}, nil
}

// RemoveVerticesOfDegree2AndMergeEdges applies the degree-2 merge to
// every listed vertex that has degree 2, tracking edges that a later
// merge consumed again so the returned diff only reports edges that
// still exist (added) or existed before the call (removed).
func (g *Graph) RemoveVerticesOfDegree2AndMergeEdges(vs []VertexID) (GraphDiff, error) {
	var diff GraphDiff
	var added []EdgeID
	var stillValid []bool

	for _, v := range vs {
		if g.Degree(v) != 2 {
			continue
		}
		newEdge, removed, err := g.RemoveDegree2VertexAndMergeEdges(v)
		if err != nil {
			return diff, err
		}

		firstWasAdded, secondWasAdded := false, false
		for i, a := range added {
			if a == removed[0] {
				stillValid[i] = false
				firstWasAdded = true
			}
			if a == removed[1] {
				stillValid[i] = false
				secondWasAdded = true
			}
		}
		if !firstWasAdded {
			diff.RemovedEdges = append(diff.RemovedEdges, removed[0])
		}
		if !secondWasAdded {
			diff.RemovedEdges = append(diff.RemovedEdges, removed[1])
		}

		diff.RemovedVertices = append(diff.RemovedVertices, v)
		added = append(added, newEdge)
		stillValid = append(stillValid, true)
	}

	for i, a := range added {
		if stillValid[i] {
			diff.AddedEdges = append(diff.AddedEdges, a)
		}
	}
	return diff, nil
}
