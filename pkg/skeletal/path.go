package skeletal

// Breadth-first shortest paths over the undirected underlying graph, and
// the join operation built on top of them. The searches traverse in- and
// out-edges alike and use the transient BFS marks, which are cleared on
// entry and on exit.

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/skelworks/skelgraph/pkg/curve"
)

// ShortestPath returns the vertices of a shortest undirected path from
// one vertex to the other, starting at from and ending at to. The search
// is capped at twice the vertex count as a guard against inconsistent
// marks; exceeding the cap without reaching the target reports ErrNoPath.
func (g *Graph) ShortestPath(from, to VertexID) ([]VertexID, error) {
	if g.verts.get(from) == nil || g.verts.get(to) == nil {
		return nil, fmt.Errorf("shortest path: dead vertex descriptor: %w", ErrInvalidArgument)
	}
	if from == to {
		return []VertexID{from}, nil
	}

	g.clearBFSMarks()
	defer g.clearBFSMarks()

	// root the search at the destination so back-tracking from the
	// origin yields the path in from->to order
	g.verts.get(to).marks.bfsCost = 0

	queue := linkedlistqueue.New()
	queue.Enqueue(to)

	found := false
	iterations := 0
	budget := 2 * g.VertexCount()

	for iterations < budget && !queue.Empty() {
		front, _ := queue.Dequeue()
		current := front.(VertexID)
		curRec := g.verts.get(current)
		curCost := curRec.marks.bfsCost

		for _, other := range g.undirectedNeighbors(current) {
			if curRec.marks.bfsParent == other {
				continue
			}
			otherRec := g.verts.get(other)
			if otherRec.marks.bfsParent.Nil() {
				queue.Enqueue(other)
			}
			if otherRec.marks.bfsCost > curCost+1 {
				otherRec.marks.bfsCost = curCost + 1
				otherRec.marks.bfsParent = current
				if other == from {
					found = true
				}
			}
		}
		iterations++
	}

	if !found {
		if iterations >= budget {
			g.sink.Warnf("graph %s: shortest path hit the %d-iteration budget", g.id, budget)
		}
		return nil, fmt.Errorf("shortest path: %w", ErrNoPath)
	}

	path := []VertexID{from}
	for parent := g.verts.get(from).marks.bfsParent; !parent.Nil(); {
		path = append(path, parent)
		parent = g.verts.get(parent).marks.bfsParent
	}
	return path, nil
}

// ShortestPathBetweenEdges returns the shortest of the four paths between
// the endpoint combinations of two edges.
func (g *Graph) ShortestPathBetweenEdges(a, b EdgeID) ([]VertexID, error) {
	ar := g.edges.get(a)
	br := g.edges.get(b)
	if ar == nil || br == nil {
		return nil, fmt.Errorf("shortest path between edges: dead edge descriptor: %w", ErrInvalidArgument)
	}

	pairs := [4][2]VertexID{
		{ar.from, br.from},
		{ar.from, br.to},
		{ar.to, br.from},
		{ar.to, br.to},
	}
	var best []VertexID
	for _, p := range pairs {
		path, err := g.ShortestPath(p[0], p[1])
		if err != nil {
			return nil, err
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}
	return best, nil
}

// undirectedNeighbors lists the opposite endpoint of every edge incident
// to v, once per edge, so parallel edges contribute multiple entries.
func (g *Graph) undirectedNeighbors(v VertexID) []VertexID {
	rec := g.verts.get(v)
	if rec == nil {
		return nil
	}
	out := make([]VertexID, 0, len(rec.in)+len(rec.out))
	for _, e := range rec.in {
		out = append(out, g.edges.get(e).from)
	}
	for _, e := range rec.out {
		out = append(out, g.edges.get(e).to)
	}
	return out
}

func (g *Graph) clearBFSMarks() {
	for i := range g.verts.slots {
		if g.verts.slots[i].live {
			g.verts.slots[i].marks.bfsParent = NilVertex
			g.verts.slots[i].marks.bfsCost = infiniteCost
		}
	}
}

// ConvertToCurve concatenates the curves of the edges joined by the
// successive vertices of path, reversing each sub-curve as needed and
// skipping duplicated junction samples. The walk stops early, returning
// what was assembled so far, if two consecutive vertices turn out not to
// be connected.
func (g *Graph) ConvertToCurve(path []VertexID) curve.Curve {
	if len(path) < 2 {
		return curve.New()
	}
	first, ok := g.edgeBetweenEither(path[0], path[1])
	if !ok {
		return curve.New()
	}
	fr := g.edges.get(first)
	out := curve.ReversedFrom(fr.props.Curve, path[0] == fr.to)

	for i := 1; i < len(path)-1; i++ {
		next, ok := g.edgeBetweenEither(path[i], path[i+1])
		if !ok {
			return out
		}
		nr := g.edges.get(next)
		out.Append(curve.ReversedFrom(nr.props.Curve, path[i] == nr.to), 1)
	}
	return out
}

// edgeBetweenEither returns an edge between a and b in either direction.
func (g *Graph) edgeBetweenEither(a, b VertexID) (EdgeID, bool) {
	if e, ok := g.edgeBetween(a, b); ok {
		return e, true
	}
	return g.edgeBetween(b, a)
}

// pathEdges lists one connecting edge per consecutive vertex pair of
// path, the same edges ConvertToCurve walks.
func (g *Graph) pathEdges(path []VertexID) []EdgeID {
	var out []EdgeID
	for i := 0; i+1 < len(path); i++ {
		if e, ok := g.edgeBetweenEither(path[i], path[i+1]); ok {
			out = append(out, e)
		}
	}
	return out
}

// SplitPath joins two edges into a single composite edge routed along
// the shortest path between them. The closest endpoint pair of the two
// edges is chosen; both curves are trimmed inward by displacement
// arc-length and pseudo-elastically bent onto the path curve between
// them. The two original edges and the traversed path edges are removed
// (their geometry lives on in the composite), and remaining path
// vertices of degree 2 are merged away. Joining an edge with itself is
// rejected.
func (g *Graph) SplitPath(sourceEdge, targetEdge EdgeID, displacement float32) (GraphDiff, error) {
	if sourceEdge == targetEdge {
		return GraphDiff{}, fmt.Errorf("join edge with itself: %w", ErrInvalidArgument)
	}
	sr := g.edges.get(sourceEdge)
	tr := g.edges.get(targetEdge)
	if sr == nil || tr == nil {
		return GraphDiff{}, fmt.Errorf("join edges: dead edge descriptor: %w", ErrInvalidArgument)
	}

	sourceCurve := sr.props.Curve.Clone()
	targetCurve := tr.props.Curve.Clone()
	ss, st := sr.from, sr.to
	ts, tt := tr.from, tr.to

	paths := make([][]VertexID, 4)
	var err error
	for i, pair := range [4][2]VertexID{{ss, ts}, {ss, tt}, {st, ts}, {st, tt}} {
		if paths[i], err = g.ShortestPath(pair[0], pair[1]); err != nil {
			return GraphDiff{}, err
		}
	}
	shortest := 0
	for i := 1; i < 4; i++ {
		if len(paths[i]) < len(paths[shortest]) {
			shortest = i
		}
	}

	var start, end curve.Curve
	var newSource, newTarget VertexID
	switch shortest {
	case 0: // source's source .. target's source
		start = sourceCurve.Reversed()
		end = targetCurve
		newSource, newTarget = st, tt
	case 1: // source's source .. target's target
		start = sourceCurve.Reversed()
		end = targetCurve.Reversed()
		newSource, newTarget = st, ts
	case 2: // source's target .. target's source
		start = sourceCurve
		end = targetCurve
		newSource, newTarget = ss, tt
	case 3: // source's target .. target's target
		start = sourceCurve
		end = targetCurve.Reversed()
		newSource, newTarget = ss, ts
	}
	path := paths[shortest]

	middle := g.ConvertToCurve(path)
	consumed := g.pathEdges(path)

	// pull the start curve back from the junction by displacement
	junctionA := start.Back().Point
	var walked float32
	for start.Size() > 2 && walked < displacement {
		segment := start.Back().Point.Distance(start.BeforeBack().Point)
		step := min32(segment, displacement-walked)
		junctionA = junctionA.Add(start.BeforeBack().Point.Sub(start.Back().Point).Normalized().Scale(step))
		walked += segment
		start.PopBack()
	}
	start.PseudoElasticDeform(false, junctionA, true)

	// and the end curve forward from its junction
	junctionB := end.Front().Point
	walked = 0
	trimmed := 0
	for trimmed < end.Size()-2 && walked < displacement {
		segment := end.At(trimmed).Point.Distance(end.At(trimmed + 1).Point)
		step := min32(segment, displacement-walked)
		junctionB = junctionB.Add(end.At(trimmed + 1).Point.Sub(end.At(trimmed).Point).Normalized().Scale(step))
		walked += segment
		trimmed++
	}
	end.TrimFront(trimmed)
	end.PseudoElasticDeform(true, junctionB, true)

	if middle.Size() > 2 {
		middle.PseudoElasticDeform(true, junctionA, true)
		middle.PseudoElasticDeform(false, junctionB, true)
		start.Append(middle, 1)
		start.PopBack()
	}
	start.Append(end, 0)
	start.UpdateTangents()

	newEdge, ok := g.AddEdge(newSource, newTarget, EdgeProps{Curve: start})
	if !ok {
		return GraphDiff{}, fmt.Errorf("join edges: adding composite edge failed: %w", ErrInternal)
	}

	var diff GraphDiff
	removeAndRecord := func(e EdgeID) {
		s, t := g.RemoveEdge(e)
		diff.RemovedEdges = append(diff.RemovedEdges, e)
		if !s.Nil() {
			diff.RemovedVertices = append(diff.RemovedVertices, s)
		}
		if !t.Nil() {
			diff.RemovedVertices = append(diff.RemovedVertices, t)
		}
	}
	removeAndRecord(sourceEdge)
	removeAndRecord(targetEdge)
	for _, e := range consumed {
		removeAndRecord(e)
	}

	mergeDiff, err := g.RemoveVerticesOfDegree2AndMergeEdges(path)
	if err != nil {
		return diff, err
	}
	diff.Merge(mergeDiff)
	diff.AddedEdges = append(diff.AddedEdges, newEdge)
	return diff, nil
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
