package curve

import (
	"math"

	"github.com/skelworks/skelgraph/pkg/geom"
)

// deformWindow is the number of samples on each side of the deformed one
// that follow its displacement.
const deformWindow = 4

// Deform moves the sample at index toward target and drags its neighbors
// along with a cosine falloff, leaving the rest of the curve untouched.
// This is the fast path used by the engine before falling back to
// Curve.PseudoElasticDeform; it reports false when it cannot handle the
// request (out-of-range index or a degenerate curve), in which case the
// curve is left unchanged.
func Deform(c *Curve, index int, target geom.Vec3) bool {
	n := c.Size()
	if n < 2 || index < 0 || index >= n {
		return false
	}

	delta := target.Sub(c.pts[index].Point)

	lo := index - deformWindow
	if lo < 0 {
		lo = 0
	}
	hi := index + deformWindow
	if hi > n-1 {
		hi = n - 1
	}

	for i := lo; i <= hi; i++ {
		// curve endpoints are anchored to vertices and only move when
		// they are the deformed sample themselves
		if i != index && (i == 0 || i == n-1) {
			continue
		}
		// falloff from 1 at the deformed sample to 0 at the window edge
		t := float64(absInt(i-index)) / float64(deformWindow+1)
		w := float32(0.5 * (1 + math.Cos(math.Pi*t)))
		c.pts[i].Point = c.pts[i].Point.Add(delta.Scale(w))
	}
	c.pts[index].Point = target

	c.UpdateTangents()
	return true
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
