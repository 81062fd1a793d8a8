package curve

import (
	"fmt"
	"strings"

	"github.com/skelworks/skelgraph/pkg/geom"
)

// PointTangent is a single sample of an embedded curve: a 3D position and
// the unit tangent of the curve at that position.
type PointTangent struct {
	Point   geom.Vec3
	Tangent geom.Vec3
}

// Curve is an ordered sequence of point-tangent samples describing the
// shape of a skeletal edge. A useful curve has at least two samples (the
// edge endpoints); curves of size <= 2 are called simple.
//
// Curve remembers the shape it had when SetOriginalShape was last called,
// which lets callers re-anchor a curve after a series of deformations.
type Curve struct {
	pts      []PointTangent
	original []PointTangent
}

// New builds a curve from the given samples.
func New(pts ...PointTangent) Curve {
	c := Curve{pts: append([]PointTangent(nil), pts...)}
	c.SetOriginalShape()
	return c
}

// Straight builds the two-sample straight curve between from and to.
// Both tangents point from from toward to.
func Straight(from, to geom.Vec3) Curve {
	dir := to.Sub(from).Normalized()
	return New(
		PointTangent{Point: from, Tangent: dir},
		PointTangent{Point: to, Tangent: dir},
	)
}

// FromPoints builds a curve from discrete positions, deriving the tangents
// from neighboring points. Returns an error when fewer than two points are
// given.
func FromPoints(points []geom.Vec3) (Curve, error) {
	if len(points) < 2 {
		return Curve{}, fmt.Errorf("curve needs at least 2 points, got %d", len(points))
	}
	pts := make([]PointTangent, len(points))
	for i, p := range points {
		pts[i] = PointTangent{Point: p}
	}
	c := Curve{pts: pts}
	c.UpdateTangents()
	c.SetOriginalShape()
	return c, nil
}

// ReversedFrom copies other, reversing it when reverse is set.
func ReversedFrom(other Curve, reverse bool) Curve {
	if reverse {
		return other.Reversed()
	}
	return other.Clone()
}

// Size returns the number of samples.
func (c *Curve) Size() int { return len(c.pts) }

// Front returns the first sample.
func (c *Curve) Front() PointTangent { return c.pts[0] }

// Back returns the last sample.
func (c *Curve) Back() PointTangent { return c.pts[len(c.pts)-1] }

// BeforeBack returns the sample preceding the last one.
func (c *Curve) BeforeBack() PointTangent { return c.pts[len(c.pts)-2] }

// At returns the sample at index i.
func (c *Curve) At(i int) PointTangent { return c.pts[i] }

// Set replaces the sample at index i.
func (c *Curve) Set(i int, pt PointTangent) { c.pts[i] = pt }

// PushBack appends a sample at the end of the curve.
func (c *Curve) PushBack(pt PointTangent) { c.pts = append(c.pts, pt) }

// PopBack removes the last sample.
func (c *Curve) PopBack() { c.pts = c.pts[:len(c.pts)-1] }

// AddMiddlePoint inserts a sample just before the back, so that a curve
// built from its two endpoints can be filled in front-to-back order.
func (c *Curve) AddMiddlePoint(pt PointTangent) {
	c.pts = append(c.pts, PointTangent{})
	n := len(c.pts)
	c.pts[n-1] = c.pts[n-2]
	c.pts[n-2] = pt
}

// Append appends other's samples to c, skipping other's first skip samples.
// Skipping one sample is the usual way to join two curves that share a
// junction point.
func (c *Curve) Append(other Curve, skip int) {
	if skip > len(other.pts) {
		skip = len(other.pts)
	}
	c.pts = append(c.pts, other.pts[skip:]...)
}

// Reversed returns a copy of c traversed back-to-front, with every tangent
// negated so that tangents still point along the direction of travel.
func (c *Curve) Reversed() Curve {
	pts := make([]PointTangent, len(c.pts))
	for i, pt := range c.pts {
		pts[len(c.pts)-1-i] = PointTangent{
			Point:   pt.Point,
			Tangent: pt.Tangent.Scale(-1),
		}
	}
	return New(pts...)
}

// TrimFront drops the first n samples.
func (c *Curve) TrimFront(n int) {
	if n <= 0 {
		return
	}
	if n > len(c.pts) {
		n = len(c.pts)
	}
	c.pts = append(c.pts[:0], c.pts[n:]...)
}

// Length returns the arc length of the polyline.
func (c *Curve) Length() float32 {
	var total float32
	for i := 1; i < len(c.pts); i++ {
		total += c.pts[i].Point.Distance(c.pts[i-1].Point)
	}
	return total
}

// UpdateTangents recomputes every tangent from the neighboring sample
// positions: central differences for interior samples, one-sided at the
// endpoints. Zero-length segments leave the previous tangent in place.
func (c *Curve) UpdateTangents() {
	n := len(c.pts)
	if n < 2 {
		return
	}
	c.setTangent(0, c.pts[1].Point.Sub(c.pts[0].Point))
	for i := 1; i < n-1; i++ {
		c.setTangent(i, c.pts[i+1].Point.Sub(c.pts[i-1].Point))
	}
	c.setTangent(n-1, c.pts[n-1].Point.Sub(c.pts[n-2].Point))
}

func (c *Curve) setTangent(i int, dir geom.Vec3) {
	if t := dir.Normalized(); t != (geom.Vec3{}) {
		c.pts[i].Tangent = t
	}
}

// SetOriginalShape remembers the current samples as the curve's reference
// shape.
func (c *Curve) SetOriginalShape() {
	c.original = append(c.original[:0], c.pts...)
}

// OriginalShape returns the samples remembered by SetOriginalShape.
func (c *Curve) OriginalShape() []PointTangent {
	return append([]PointTangent(nil), c.original...)
}

// Clone returns a deep copy of c.
func (c *Curve) Clone() Curve {
	return Curve{
		pts:      append([]PointTangent(nil), c.pts...),
		original: append([]PointTangent(nil), c.original...),
	}
}

// PseudoElasticDeform moves one end of the curve to target and relaxes the
// interior samples toward the new shape. fromStart selects which end moves.
// Each sample is displaced by a share of the end's displacement that fades
// with its arc-length distance from the moved end; with maintainShape the
// samples close to the moved tip follow it rigidly instead, preserving the
// local shape there.
//
// Tangents are recomputed afterwards. Returns false when the curve has
// fewer than two samples.
func (c *Curve) PseudoElasticDeform(fromStart bool, target geom.Vec3, maintainShape bool) bool {
	n := len(c.pts)
	if n < 2 {
		return false
	}

	moved, fixed := n-1, 0
	if fromStart {
		moved, fixed = 0, n-1
	}
	delta := target.Sub(c.pts[moved].Point)

	total := c.Length()
	if total == 0 {
		// degenerate curve: move the endpoint only
		c.pts[moved].Point = target
		c.UpdateTangents()
		return true
	}

	// tipWindow is the arc length near the moved end whose samples
	// translate rigidly when maintainShape is requested.
	var tipWindow float32
	if maintainShape {
		tipWindow = total / (2 * float32(n-1))
	}

	// arc-length distance of each sample from the moved end
	dist := make([]float32, n)
	if fromStart {
		for i := 1; i < n; i++ {
			dist[i] = dist[i-1] + c.pts[i].Point.Distance(c.pts[i-1].Point)
		}
	} else {
		for i := n - 2; i >= 0; i-- {
			dist[i] = dist[i+1] + c.pts[i].Point.Distance(c.pts[i+1].Point)
		}
	}

	for i := range c.pts {
		if i == fixed {
			continue
		}
		var w float32
		switch {
		case dist[i] <= tipWindow:
			w = 1
		default:
			w = 1 - dist[i]/total
		}
		if w < 0 {
			w = 0
		}
		c.pts[i].Point = c.pts[i].Point.Add(delta.Scale(w))
	}
	c.pts[moved].Point = target

	c.UpdateTangents()
	return true
}

// String renders each sample as "(px py pz | tx ty tz)", one per line.
func (c *Curve) String() string {
	var b strings.Builder
	for _, pt := range c.pts {
		fmt.Fprintf(&b, "(%g %g %g | %g %g %g)\n",
			pt.Point.X, pt.Point.Y, pt.Point.Z,
			pt.Tangent.X, pt.Tangent.Y, pt.Tangent.Z)
	}
	return b.String()
}
