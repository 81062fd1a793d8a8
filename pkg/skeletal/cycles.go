package skeletal

// Cycle detection over a breadth-first spanning tree, and connected
// component counting. Both walk the undirected underlying graph and own
// the spanning-tree and cycle-parent marks while they run.

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// FindCycles recomputes the cycle marks of every vertex and edge. It
// grows a breadth-first spanning tree per connected component; every
// back-edge it discovers closes a cycle, whose vertices and edges are
// marked through the tree's parent chains. Parallel edges between the
// two ends of a back-edge are marked as well. The spanning-tree and
// cycle-parent marks are cleared before the scan returns.
func (g *Graph) FindCycles() {
	for i := range g.verts.slots {
		if g.verts.slots[i].live {
			g.verts.slots[i].props.InCycle = false
			g.verts.slots[i].marks.cycleParent = NilVertex
			g.verts.slots[i].marks.inSpanningTree = false
		}
	}
	for i := range g.edges.slots {
		if g.edges.slots[i].live {
			g.edges.slots[i].props.InCycle = false
		}
	}

	budget := 2 * g.VertexCount()
	for _, start := range g.Vertices() {
		if g.verts.get(start).marks.inSpanningTree {
			continue
		}

		queue := linkedlistqueue.New()
		queue.Enqueue(start)
		g.verts.get(start).marks.inSpanningTree = true

		iterations := 0
		for iterations < budget && !queue.Empty() {
			front, _ := queue.Dequeue()
			current := front.(VertexID)

			for _, other := range g.undirectedNeighbors(current) {
				curRec := g.verts.get(current)
				if curRec.marks.cycleParent == other {
					continue
				}
				otherRec := g.verts.get(other)
				if otherRec.marks.inSpanningTree {
					g.findCycleInSpanningTree(current, other)
				} else {
					queue.Enqueue(other)
					otherRec.marks.inSpanningTree = true
					otherRec.marks.cycleParent = current
				}
			}
			iterations++
		}
		if iterations >= budget && !queue.Empty() {
			g.sink.Warnf("graph %s: cycle scan hit the %d-iteration budget", g.id, budget)
		}
	}

	for i := range g.verts.slots {
		if g.verts.slots[i].live {
			g.verts.slots[i].marks.cycleParent = NilVertex
			g.verts.slots[i].marks.inSpanningTree = false
		}
	}
}

// findCycleInSpanningTree marks the cycle closed by the back-edge
// between two in-tree vertices: it walks both cycle-parent chains to the
// root, trims their common prefix to find the lowest common ancestor,
// and marks the ancestor, every vertex on both descending chains, and
// every edge between consecutive chain vertices. All edges directly
// connecting the two vertices are marked too.
func (g *Graph) findCycleInSpanningTree(a, b VertexID) {
	pathA := g.parentChain(a)
	pathB := g.parentChain(b)

	if pathA[0] != pathB[0] {
		g.sink.Errorf("graph %s: spanning-tree chains of a back-edge have different roots", g.id)
	}

	bifurcation := pathA[0]
	for len(pathA) > 0 && len(pathB) > 0 && pathA[0] == pathB[0] {
		bifurcation = pathA[0]
		pathA = pathA[1:]
		pathB = pathB[1:]
	}
	g.verts.get(bifurcation).props.InCycle = true

	g.markChain(bifurcation, pathA)
	g.markChain(bifurcation, pathB)

	// parallel edges directly between the back-edge's ends
	rec := g.verts.get(a)
	for _, e := range rec.in {
		if g.edges.get(e).from == b {
			g.edges.get(e).props.InCycle = true
		}
	}
	for _, e := range rec.out {
		if g.edges.get(e).to == b {
			g.edges.get(e).props.InCycle = true
		}
	}
}

// parentChain returns the cycle-parent chain of v from the tree root
// down to v itself.
func (g *Graph) parentChain(v VertexID) []VertexID {
	chain := []VertexID{v}
	budget := g.VertexCount() + 1
	current := v
	for i := 0; i < budget; i++ {
		parent := g.verts.get(current).marks.cycleParent
		if parent.Nil() {
			break
		}
		chain = append([]VertexID{parent}, chain...)
		current = parent
	}
	return chain
}

// markChain marks every chain vertex and each edge between consecutive
// chain vertices (starting from the bifurcation) as part of a cycle.
func (g *Graph) markChain(from VertexID, chain []VertexID) {
	last := from
	for _, next := range chain {
		g.verts.get(next).props.InCycle = true
		if e, ok := g.edgeBetweenEither(next, last); ok {
			g.edges.get(e).props.InCycle = true
		} else {
			g.sink.Errorf("graph %s: spanning-tree edge disappeared during cycle marking", g.id)
		}
		last = next
	}
}

// CountConnectedComponents returns the number of connected components of
// the undirected underlying graph.
func (g *Graph) CountConnectedComponents() int {
	if g.VertexCount() == 0 {
		return 0
	}

	for i := range g.verts.slots {
		if g.verts.slots[i].live {
			g.verts.slots[i].marks.inSpanningTree = false
		}
	}

	count := 0
	for _, v := range g.Vertices() {
		if !g.verts.get(v).marks.inSpanningTree {
			g.exploreFromVertex(v)
			count++
		}
	}

	for i := range g.verts.slots {
		if g.verts.slots[i].live {
			g.verts.slots[i].marks.inSpanningTree = false
		}
	}
	return count
}

// exploreFromVertex marks every vertex reachable from start (undirected)
// as in the spanning tree.
func (g *Graph) exploreFromVertex(start VertexID) {
	queue := linkedlistqueue.New()
	queue.Enqueue(start)
	g.verts.get(start).marks.inSpanningTree = true

	iterations := 0
	budget := 2 * g.VertexCount()
	for iterations < budget && !queue.Empty() {
		front, _ := queue.Dequeue()
		current := front.(VertexID)

		for _, other := range g.undirectedNeighbors(current) {
			if rec := g.verts.get(other); !rec.marks.inSpanningTree {
				rec.marks.inSpanningTree = true
				queue.Enqueue(other)
			}
		}
		iterations++
	}
	if iterations >= budget && !queue.Empty() {
		g.sink.Warnf("graph %s: component scan hit the %d-iteration budget", g.id, budget)
	}
}
