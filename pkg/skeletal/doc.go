// Package skeletal implements an editable skeletal graph: a directed
// multigraph whose vertices are 3D points with radii and whose edges carry
// deformable polyline curves describing the shape of the link between
// their endpoints.
//
// The package is a geometry-aware rewrite system rather than a plain graph
// library. Every topology-changing operation (split, cut, collapse, merge,
// join along a path) simultaneously rewires the graph and reshapes the
// embedded curves so that each curve keeps starting at its source vertex
// position and ending at its target vertex position. Operations report the
// vertices and edges they added and removed through a [GraphDiff], letting
// callers reconcile derived state after every mutation.
//
// # Descriptors
//
// Vertices and edges are identified by [VertexID] and [EdgeID] handles
// backed by a generational arena: a handle stays valid exactly as long as
// the entity it names is alive, and reusing a freed slot bumps the
// generation so stale handles never alias a new entity. The zero value of
// either type is the null descriptor.
//
// # Algorithms and transient marks
//
// Shortest paths, connected components, and cycle detection run over the
// undirected underlying graph, traversing in- and out-edges alike. They
// use per-vertex transient marks (BFS parent and cost, spanning-tree and
// cycle flags) that are cleared on entry and on exit; the marks are
// undefined while no algorithm is running and must not be relied on by
// callers.
//
// # Error policy
//
// Operations fail fast with wrapped sentinel errors ([ErrInvalidArgument],
// [ErrNoPath], [ErrInternal]) and do not roll back partial mutations; a
// caller that needs transactional behavior snapshots the graph up front
// with [Graph.Copy]. Recoverable oddities are reported through the
// injected diagnostic sink instead of failing the operation.
package skeletal
