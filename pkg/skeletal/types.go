package skeletal

import (
	"github.com/skelworks/skelgraph/pkg/curve"
	"github.com/skelworks/skelgraph/pkg/geom"
)

// DefaultVertexRadius is the radius assigned to vertices created without
// an explicit one, and the fallback used when an imported radius is
// missing or rejected.
const DefaultVertexRadius float32 = 1

// MaxVertexRadius is the largest radius accepted on import; larger values
// fall back to DefaultVertexRadius.
const MaxVertexRadius float32 = 10000

// VertexID identifies a vertex. It stays valid while the vertex is alive
// and is invalidated when the vertex is removed; the zero value is the
// null descriptor.
type VertexID struct {
	idx uint32
	gen uint32
}

// Nil reports whether v is the null vertex descriptor.
func (v VertexID) Nil() bool { return v.gen == 0 }

// NilVertex is the null vertex descriptor.
var NilVertex VertexID

// EdgeID identifies an edge. It stays valid while the edge is alive and
// is invalidated when the edge is removed; the zero value is the null
// descriptor.
type EdgeID struct {
	idx uint32
	gen uint32
}

// Nil reports whether e is the null edge descriptor.
func (e EdgeID) Nil() bool { return e.gen == 0 }

// NilEdge is the null edge descriptor.
var NilEdge EdgeID

// VertexProps holds the persistent per-vertex data.
type VertexProps struct {
	Position geom.Vec3
	Radius   float32

	// InCycle marks vertices found on a simple cycle by the last
	// [Graph.FindCycles] scan.
	InCycle bool
}

// EdgeProps holds the persistent per-edge data.
type EdgeProps struct {
	Curve curve.Curve

	// InCycle is derived from both endpoints' cycle marks at edge
	// creation time and re-derived by [Graph.FindCycles].
	InCycle bool
}

// CollapseOption selects which endpoint survives a collapse.
type CollapseOption int

const (
	// CollapseSource keeps the edge's source vertex.
	CollapseSource CollapseOption = iota
	// CollapseTarget keeps the edge's target vertex.
	CollapseTarget
	// CollapseMidpoint keeps the source vertex but repositions it at the
	// midpoint between the two endpoints.
	CollapseMidpoint
)

// VertexPair names a (source, target) pair of vertices.
type VertexPair struct {
	Source VertexID
	Target VertexID
}

// GraphDiff enumerates the entities an operation added and removed, so
// callers can refresh derived views after the mutation.
type GraphDiff struct {
	AddedVertices   []VertexID
	RemovedVertices []VertexID
	AddedEdges      []EdgeID
	RemovedEdges    []EdgeID
}

// Merge appends other's entries to d.
func (d *GraphDiff) Merge(other GraphDiff) {
	d.AddedVertices = append(d.AddedVertices, other.AddedVertices...)
	d.RemovedVertices = append(d.RemovedVertices, other.RemovedVertices...)
	d.AddedEdges = append(d.AddedEdges, other.AddedEdges...)
	d.RemovedEdges = append(d.RemovedEdges, other.RemovedEdges...)
}

// Empty reports whether the diff records no changes.
func (d *GraphDiff) Empty() bool {
	return len(d.AddedVertices) == 0 && len(d.RemovedVertices) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0
}
