// Package curve implements the deformable polyline curves embedded on
// skeletal graph edges.
//
// A [Curve] is an ordered sequence of [PointTangent] samples. The first
// and last sample positions coincide with the positions of the edge's
// source and target vertices; the engine keeps that invariant across
// every topology rewrite by reshaping curves with [Curve.PseudoElasticDeform]
// or the faster local [Deform].
//
// Curves can be appended to one another (skipping duplicated junction
// samples), reversed (tangents negated), trimmed, and re-tangented from
// their sample positions. Arc length is the polyline length over the
// sample positions.
package curve
