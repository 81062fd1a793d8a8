package skeletal

// Bulk maintenance passes. Every pass materializes its work set before
// the first mutation, since rewrites invalidate descriptors of the
// entities they replace; an entry that died before its turn is skipped.

import "errors"

// CollapseEdgesShorterThan collapses, at their midpoint, all edges whose
// curve arc-length is below minLength and whose endpoints both have
// degree other than 1. Returns the number of edges collapsed.
func (g *Graph) CollapseEdgesShorterThan(minLength float32) int {
	var toCollapse []EdgeID
	for _, e := range g.Edges() {
		rec := g.edges.get(e)
		if rec.props.Curve.Length() < minLength &&
			g.Degree(rec.from) != 1 && g.Degree(rec.to) != 1 {
			toCollapse = append(toCollapse, e)
		}
	}
	return g.collapseAll(toCollapse)
}

// CollapseEdgesWithLessThanNSplines collapses, at their midpoint, all
// edges whose curve has fewer than n samples and whose endpoints both
// have degree other than 1. Returns the number of edges collapsed.
func (g *Graph) CollapseEdgesWithLessThanNSplines(n int) int {
	var toCollapse []EdgeID
	for _, e := range g.Edges() {
		rec := g.edges.get(e)
		if rec.props.Curve.Size() < n &&
			g.Degree(rec.from) != 1 && g.Degree(rec.to) != 1 {
			toCollapse = append(toCollapse, e)
		}
	}
	return g.collapseAll(toCollapse)
}

// CollapseSimpleEdges collapses, at their midpoint, all edges whose curve
// holds only its two endpoint samples and whose endpoints both have
// degree other than 1.
func (g *Graph) CollapseSimpleEdges() int {
	return g.CollapseEdgesWithLessThanNSplines(3)
}

func (g *Graph) collapseAll(edges []EdgeID) int {
	count := 0
	for _, e := range edges {
		if _, err := g.CollapseEdge(e, CollapseMidpoint); err != nil {
			// an earlier collapse can have replaced this edge already
			if errors.Is(err, ErrInvalidArgument) {
				g.sink.Debugf("graph %s: skipping stale edge during bulk collapse", g.id)
				continue
			}
			g.sink.Errorf("graph %s: bulk collapse: %v", g.id, err)
			continue
		}
		count++
	}
	return count
}

// RemoveVerticesOfDegree removes every vertex whose total degree equals k.
func (g *Graph) RemoveVerticesOfDegree(k int) {
	var toRemove []VertexID
	for _, v := range g.Vertices() {
		if g.Degree(v) == k {
			toRemove = append(toRemove, v)
		}
	}
	for _, v := range toRemove {
		g.RemoveVertex(v)
	}
}
