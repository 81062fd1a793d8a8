package skeletal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/skelworks/skelgraph/pkg/curve"
	"github.com/skelworks/skelgraph/pkg/diag"
	"github.com/skelworks/skelgraph/pkg/geom"
)

// Graph is an editable skeletal graph: a directed multigraph of 3D
// vertices connected by edges carrying deformable polyline curves.
//
// Graph is not safe for concurrent use. The algorithms that walk it own
// the per-vertex transient marks exclusively while they run.
type Graph struct {
	id    uuid.UUID
	verts vertexArena
	edges edgeArena

	// splineCount is the sum of curve sample counts over all live edges.
	splineCount int

	sink diag.Sink
}

// New creates an empty graph with a discarding diagnostic sink.
func New() *Graph {
	return &Graph{id: uuid.New(), sink: diag.Noop{}}
}

// ID returns the graph's diagnostic identity.
func (g *Graph) ID() uuid.UUID { return g.id }

// SetDiagnostics injects the sink the graph reports recoverable oddities
// through. A nil sink restores the discarding default.
func (g *Graph) SetDiagnostics(s diag.Sink) {
	if s == nil {
		s = diag.Noop{}
	}
	g.sink = s
}

// Diagnostics returns the sink the graph currently reports through.
func (g *Graph) Diagnostics() diag.Sink { return g.sink }

// SetEdgeCycleMark overrides e's cycle mark. Importers use this to
// restore the mark recorded in a file, which takes precedence over the
// mark derived when the edge was created.
func (g *Graph) SetEdgeCycleMark(e EdgeID, inCycle bool) {
	if rec := g.edges.get(e); rec != nil {
		rec.props.InCycle = inCycle
	}
}

// Copy returns a deep copy of the graph, curves included. The copy gets
// its own diagnostic identity and shares the sink.
func (g *Graph) Copy() *Graph {
	cp := &Graph{
		id:          uuid.New(),
		splineCount: g.splineCount,
		sink:        g.sink,
	}
	cp.verts.slots = make([]vertexRecord, len(g.verts.slots))
	for i, rec := range g.verts.slots {
		rec.in = append([]EdgeID(nil), rec.in...)
		rec.out = append([]EdgeID(nil), rec.out...)
		cp.verts.slots[i] = rec
	}
	cp.verts.free = append([]uint32(nil), g.verts.free...)
	cp.verts.count = g.verts.count

	cp.edges.slots = make([]edgeRecord, len(g.edges.slots))
	for i, rec := range g.edges.slots {
		rec.props.Curve = rec.props.Curve.Clone()
		cp.edges.slots[i] = rec
	}
	cp.edges.free = append([]uint32(nil), g.edges.free...)
	cp.edges.count = g.edges.count
	return cp
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int { return g.verts.count }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.edges.count }

// EdgeSplineCount returns the sum of curve sample counts over all edges.
func (g *Graph) EdgeSplineCount() int { return g.splineCount }

// AddVertex creates a vertex with the given properties and returns its
// descriptor. A zero radius is replaced by DefaultVertexRadius.
func (g *Graph) AddVertex(props VertexProps) VertexID {
	if props.Radius == 0 {
		props.Radius = DefaultVertexRadius
	}
	return g.verts.alloc(props)
}

// RemoveVertex removes v and all its incident edges, returning the
// descriptors of the removed edges. A null or stale descriptor removes
// nothing.
func (g *Graph) RemoveVertex(v VertexID) []EdgeID {
	if g.verts.get(v) == nil {
		return nil
	}
	removed := g.ClearVertex(v)
	g.verts.release(v)
	return removed
}

// ClearVertex removes every edge incident to v, keeping v itself.
// Returns the removed edge descriptors, in-edges first.
func (g *Graph) ClearVertex(v VertexID) []EdgeID {
	rec := g.verts.get(v)
	if rec == nil {
		return nil
	}
	removed := make([]EdgeID, 0, len(rec.in)+len(rec.out))
	removed = append(removed, rec.in...)
	for _, e := range rec.out {
		// a self-loop sits in both lists but is removed once
		if er := g.edges.get(e); er != nil && er.from == v && er.to == v {
			continue
		}
		removed = append(removed, e)
	}
	for _, e := range removed {
		g.detachEdge(e)
	}
	return removed
}

// detachEdge unlinks e from both endpoint incident lists, updates the
// spline count, and frees the edge slot.
func (g *Graph) detachEdge(e EdgeID) {
	rec := g.edges.get(e)
	if rec == nil {
		return
	}
	g.splineCount -= rec.props.Curve.Size()
	if vr := g.verts.get(rec.from); vr != nil {
		vr.out = dropEdgeID(vr.out, e)
	}
	if vr := g.verts.get(rec.to); vr != nil {
		vr.in = dropEdgeID(vr.in, e)
	}
	g.edges.release(e)
}

// Vertex returns the properties of v.
func (g *Graph) Vertex(v VertexID) (VertexProps, bool) {
	rec := g.verts.get(v)
	if rec == nil {
		return VertexProps{}, false
	}
	return rec.props, true
}

// Vertices returns the descriptors of all live vertices.
func (g *Graph) Vertices() []VertexID { return g.verts.ids() }

// AddEdge creates an edge from one vertex to another with the given
// properties. It reports false, creating nothing, when either endpoint is
// null or stale. The new edge's cycle mark is derived from both
// endpoints' marks.
func (g *Graph) AddEdge(from, to VertexID, props EdgeProps) (EdgeID, bool) {
	fr := g.verts.get(from)
	tr := g.verts.get(to)
	if fr == nil || tr == nil {
		return NilEdge, false
	}
	props.InCycle = fr.props.InCycle && tr.props.InCycle
	g.splineCount += props.Curve.Size()
	e := g.edges.alloc(from, to, props)
	fr.out = append(fr.out, e)
	tr.in = append(tr.in, e)
	return e, true
}

// AddStraightEdge creates an edge carrying the two-sample straight curve
// between the endpoint positions.
func (g *Graph) AddStraightEdge(from, to VertexID) (EdgeID, bool) {
	fr := g.verts.get(from)
	tr := g.verts.get(to)
	if fr == nil || tr == nil {
		return NilEdge, false
	}
	return g.AddEdge(from, to, EdgeProps{
		Curve: curve.Straight(fr.props.Position, tr.props.Position),
	})
}

// RemoveEdge removes e. An endpoint whose degree was 1 before the removal
// becomes isolated and is removed too; its descriptor is returned. The
// auto-removal is skipped when the graph holds a single vertex, so that
// removing the last edge never empties the graph.
func (g *Graph) RemoveEdge(e EdgeID) (VertexID, VertexID) {
	rec := g.edges.get(e)
	if rec == nil {
		return NilVertex, NilVertex
	}
	source, target := rec.from, rec.to

	removeSource := g.Degree(source) == 1
	removeTarget := g.Degree(target) == 1 && target != source

	g.detachEdge(e)

	removed := [2]VertexID{NilVertex, NilVertex}
	if removeSource && g.VertexCount() != 1 {
		g.verts.release(source)
		removed[0] = source
	}
	if removeTarget && g.VertexCount() != 1 {
		g.verts.release(target)
		removed[1] = target
	}
	return removed[0], removed[1]
}

// Edge returns the properties of e.
func (g *Graph) Edge(e EdgeID) (EdgeProps, bool) {
	rec := g.edges.get(e)
	if rec == nil {
		return EdgeProps{}, false
	}
	return rec.props, true
}

// Edges returns the descriptors of all live edges.
func (g *Graph) Edges() []EdgeID { return g.edges.ids() }

// EdgeSource returns the source vertex of e, or the null descriptor for a
// dead edge.
func (g *Graph) EdgeSource(e EdgeID) VertexID {
	if rec := g.edges.get(e); rec != nil {
		return rec.from
	}
	return NilVertex
}

// EdgeTarget returns the target vertex of e, or the null descriptor for a
// dead edge.
func (g *Graph) EdgeTarget(e EdgeID) VertexID {
	if rec := g.edges.get(e); rec != nil {
		return rec.to
	}
	return NilVertex
}

// EdgeSourceProps returns the properties of e's source vertex.
func (g *Graph) EdgeSourceProps(e EdgeID) (VertexProps, bool) {
	return g.Vertex(g.EdgeSource(e))
}

// EdgeTargetProps returns the properties of e's target vertex.
func (g *Graph) EdgeTargetProps(e EdgeID) (VertexProps, bool) {
	return g.Vertex(g.EdgeTarget(e))
}

// InEdges returns the descriptors of edges whose target is v.
func (g *Graph) InEdges(v VertexID) []EdgeID {
	rec := g.verts.get(v)
	if rec == nil {
		return nil
	}
	return append([]EdgeID(nil), rec.in...)
}

// OutEdges returns the descriptors of edges whose source is v.
func (g *Graph) OutEdges(v VertexID) []EdgeID {
	rec := g.verts.get(v)
	if rec == nil {
		return nil
	}
	return append([]EdgeID(nil), rec.out...)
}

// Degree returns the total (in plus out) degree of v.
func (g *Graph) Degree(v VertexID) int {
	rec := g.verts.get(v)
	if rec == nil {
		return 0
	}
	return len(rec.in) + len(rec.out)
}

// EdgeExists reports edges directly connecting from and to, at most one
// per direction: further parallel edges in the same direction are not
// listed. forward reports whether the from->to direction was among them;
// found reports whether any edge was found.
func (g *Graph) EdgeExists(from, to VertexID) (edges []EdgeID, forward bool, found bool) {
	if g.verts.get(from) == nil || g.verts.get(to) == nil {
		return nil, false, false
	}
	if e, ok := g.edgeBetween(to, from); ok {
		edges = append(edges, e)
		found = true
		forward = false
	}
	if e, ok := g.edgeBetween(from, to); ok {
		edges = append(edges, e)
		found = true
		forward = true
	}
	return edges, forward, found
}

// edgeBetween returns the first live edge from->to, if any.
func (g *Graph) edgeBetween(from, to VertexID) (EdgeID, bool) {
	rec := g.verts.get(from)
	if rec == nil {
		return NilEdge, false
	}
	for _, e := range rec.out {
		if er := g.edges.get(e); er != nil && er.to == to {
			return e, true
		}
	}
	return NilEdge, false
}

// IsEdgeSourceOrTarget reports whether v is an endpoint of e.
func (g *Graph) IsEdgeSourceOrTarget(e EdgeID, v VertexID) bool {
	rec := g.edges.get(e)
	return rec != nil && (rec.from == v || rec.to == v)
}

// FindVertexNotConnectedToAdjacentEdge returns the endpoint of edge that
// is not shared with adjacent. When the two edges are not adjacent it
// returns the null descriptor.
func (g *Graph) FindVertexNotConnectedToAdjacentEdge(edge, adjacent EdgeID) VertexID {
	er := g.edges.get(edge)
	ar := g.edges.get(adjacent)
	if er == nil || ar == nil {
		return NilVertex
	}
	switch {
	case er.from == ar.from, er.from == ar.to:
		return er.to
	case er.to == ar.from, er.to == ar.to:
		return er.from
	}
	return NilVertex
}

// IsSimpleEdge reports whether e's curve has no interior samples.
func (g *Graph) IsSimpleEdge(e EdgeID) bool {
	rec := g.edges.get(e)
	return rec != nil && rec.props.Curve.Size() <= 2
}

// EdgeRadius interpolates a radius for the curve sample at segmentIndex:
// the harmonic mean of the endpoint radii at the source end, the target's
// radius at the target end. The index is clamped to the curve.
func (g *Graph) EdgeRadius(e EdgeID, segmentIndex int) float32 {
	rec := g.edges.get(e)
	if rec == nil {
		return DefaultVertexRadius
	}
	r1 := g.verts.get(rec.from).props.Radius
	r2 := g.verts.get(rec.to).props.Radius
	rStart := (2 * r1 * r2) / (r1 + r2)
	rEnd := r2

	n := rec.props.Curve.Size()
	if n < 2 {
		return rEnd
	}
	if segmentIndex < 0 {
		segmentIndex = 0
	}
	if segmentIndex > n-1 {
		segmentIndex = n - 1
	}
	t := float32(segmentIndex) / float32(n-1)
	return (1-t)*(rStart-rEnd) + rEnd
}

// DeformEdge moves the curve sample at pointIndex toward target using the
// fast local deformation.
func (g *Graph) DeformEdge(e EdgeID, pointIndex int, target geom.Vec3) {
	rec := g.edges.get(e)
	if rec == nil {
		return
	}
	curve.Deform(&rec.props.Curve, pointIndex, target)
}

// FixCurveShape re-anchors e's curve, remembering its current samples as
// the reference shape for later deformations.
func (g *Graph) FixCurveShape(e EdgeID) {
	rec := g.edges.get(e)
	if rec == nil {
		return
	}
	rec.props.Curve.SetOriginalShape()
}

// UpdateVertexPosition moves v to p and reshapes every incident edge
// curve so its endpoint sample follows, trying the fast local deformation
// first and falling back to the pseudo-elastic one. The update is
// best-effort: a curve that cannot be reshaped is reported through the
// diagnostic sink and the remaining edges are still processed. Reports
// whether every incident curve was reshaped.
func (g *Graph) UpdateVertexPosition(v VertexID, p geom.Vec3, maintainShape bool) bool {
	rec := g.verts.get(v)
	if rec == nil {
		return false
	}
	rec.props.Position = p

	ok := true
	for _, e := range rec.in {
		er := g.edges.get(e)
		c := &er.props.Curve
		if !curve.Deform(c, c.Size()-1, p) && !c.PseudoElasticDeform(false, p, maintainShape) {
			g.sink.Warnf("graph %s: could not reshape in-edge curve while moving vertex", g.id)
			ok = false
		}
	}
	for _, e := range rec.out {
		er := g.edges.get(e)
		c := &er.props.Curve
		if !curve.Deform(c, 0, p) && !c.PseudoElasticDeform(true, p, maintainShape) {
			g.sink.Warnf("graph %s: could not reshape out-edge curve while moving vertex", g.id)
			ok = false
		}
	}
	return ok
}

// MoveAndScale translates every vertex and curve sample by offset and
// scales the result by factor, then refreshes all tangents.
func (g *Graph) MoveAndScale(offset geom.Vec3, factor float32) {
	for i := range g.verts.slots {
		rec := &g.verts.slots[i]
		if rec.live {
			rec.props.Position = rec.props.Position.Add(offset).Scale(factor)
		}
	}
	for i := range g.edges.slots {
		rec := &g.edges.slots[i]
		if !rec.live {
			continue
		}
		c := &rec.props.Curve
		for j := 0; j < c.Size(); j++ {
			pt := c.At(j)
			pt.Point = pt.Point.Add(offset).Scale(factor)
			c.Set(j, pt)
		}
		c.UpdateTangents()
	}
}

// String renders the graph as a two-section listing of vertices and edges.
func (g *Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "skeletal graph with %d vertices and %d edges:\n", g.VertexCount(), g.EdgeCount())

	b.WriteString("------ vertices ------\n")
	for i, v := range g.Vertices() {
		props, _ := g.Vertex(v)
		fmt.Fprintf(&b, "%d: (%g %g %g), radius %g, in cycle %t\n",
			i, props.Position.X, props.Position.Y, props.Position.Z, props.Radius, props.InCycle)
	}

	b.WriteString("------- edges -------\n")
	for i, e := range g.Edges() {
		props, _ := g.Edge(e)
		src, _ := g.EdgeSourceProps(e)
		tgt, _ := g.EdgeTargetProps(e)
		fmt.Fprintf(&b, "%d: |%g %g %g| ->\n%s-> |%g %g %g|\n",
			i, src.Position.X, src.Position.Y, src.Position.Z,
			props.Curve.String(),
			tgt.Position.X, tgt.Position.Y, tgt.Position.Z)
	}
	return b.String()
}
