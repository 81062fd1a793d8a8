package skelio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skelworks/skelgraph/pkg/geom"
	"github.com/skelworks/skelgraph/pkg/skeletal"
)

func v3(x, y, z float32) geom.Vec3 { return geom.Vec3{X: x, Y: y, Z: z} }

func buildSample(t *testing.T) *skeletal.Graph {
	t.Helper()
	g := skeletal.New()
	a := g.AddVertex(skeletal.VertexProps{Position: v3(0, 0, 0), Radius: 2})
	b := g.AddVertex(skeletal.VertexProps{Position: v3(1, 0, 0), Radius: 3})
	c := g.AddVertex(skeletal.VertexProps{Position: v3(0, 1, 0)})
	if _, ok := g.AddStraightEdge(a, b); !ok {
		t.Fatal("edge a->b failed")
	}
	if _, ok := g.AddStraightEdge(b, c); !ok {
		t.Fatal("edge b->c failed")
	}
	if _, ok := g.AddStraightEdge(c, a); !ok {
		t.Fatal("edge c->a failed")
	}
	g.FindCycles()
	return g
}

func TestExportImportRoundTrip(t *testing.T) {
	g := buildSample(t)

	var buf bytes.Buffer
	if err := Export(g, &buf, 2.5); err != nil {
		t.Fatalf("export: %v", err)
	}

	loaded := skeletal.New()
	scale, err := Import(&buf, loaded)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if scale != 2.5 {
		t.Errorf("scale = %g, want 2.5", scale)
	}

	if loaded.VertexCount() != g.VertexCount() {
		t.Fatalf("vertex count = %d, want %d", loaded.VertexCount(), g.VertexCount())
	}
	if loaded.EdgeCount() != g.EdgeCount() {
		t.Fatalf("edge count = %d, want %d", loaded.EdgeCount(), g.EdgeCount())
	}

	// positions, radii, and cycle flags survive the text format
	const eps = 1e-5
	orig := g.Vertices()
	got := loaded.Vertices()
	for i := range orig {
		op, _ := g.Vertex(orig[i])
		lp, _ := loaded.Vertex(got[i])
		if !op.Position.AlmostEqual(lp.Position, eps) {
			t.Errorf("vertex %d at %v, want %v", i, lp.Position, op.Position)
		}
		if op.Radius != lp.Radius {
			t.Errorf("vertex %d radius = %g, want %g", i, lp.Radius, op.Radius)
		}
		if op.InCycle != lp.InCycle {
			t.Errorf("vertex %d cycle flag = %t, want %t", i, lp.InCycle, op.InCycle)
		}
	}

	origEdges := g.Edges()
	gotEdges := loaded.Edges()
	for i := range origEdges {
		oe, _ := g.Edge(origEdges[i])
		le, _ := loaded.Edge(gotEdges[i])
		if oe.InCycle != le.InCycle {
			t.Errorf("edge %d cycle flag = %t, want %t", i, le.InCycle, oe.InCycle)
		}
		if oe.Curve.Size() != le.Curve.Size() {
			t.Errorf("edge %d has %d samples, want %d", i, le.Curve.Size(), oe.Curve.Size())
			continue
		}
		for j := 0; j < oe.Curve.Size(); j++ {
			if !oe.Curve.At(j).Point.AlmostEqual(le.Curve.At(j).Point, eps) {
				t.Errorf("edge %d sample %d at %v, want %v",
					i, j, le.Curve.At(j).Point, oe.Curve.At(j).Point)
			}
		}
	}
}

func TestExportImportFiles(t *testing.T) {
	g := buildSample(t)
	path := filepath.Join(t.TempDir(), "graph.skl")

	if err := ExportFile(g, path, 1); err != nil {
		t.Fatalf("export file: %v", err)
	}
	loaded := skeletal.New()
	if _, err := ImportFile(path, loaded); err != nil {
		t.Fatalf("import file: %v", err)
	}
	if loaded.VertexCount() != 3 || loaded.EdgeCount() != 3 {
		t.Errorf("loaded %d vertices and %d edges, want 3 and 3",
			loaded.VertexCount(), loaded.EdgeCount())
	}
}

func TestImportMissingFile(t *testing.T) {
	g := skeletal.New()
	if _, err := ImportFile(filepath.Join(t.TempDir(), "absent.skl"), g); err == nil {
		t.Error("importing a missing file succeeded")
	} else if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap the underlying open failure", err)
	}
}

func TestImportIntoNilGraph(t *testing.T) {
	if _, err := Import(strings.NewReader(""), nil); err == nil {
		t.Error("importing into a nil graph succeeded")
	}
}

// Malformed fields fall back to defaults instead of aborting the load.
func TestImportMalformedFields(t *testing.T) {
	input := strings.Join([]string{
		"<scale>not-a-number</scale>",
		"<vertices>",
		"<vertex>",
		"<pos>bogus</pos>",
		"<radius>oops</radius>",
		"<cycle>1</cycle>",
		"</vertex>",
		"<vertex>",
		"<pos>1 0 0</pos>",
		"<radius>20000</radius>", // above the maximum, falls back
		"<cycle>0</cycle>",
		"</vertex>",
		"</vertices>",
		"<edges>",
		"<edge>",
		"<source>0</source>",
		"<target>1</target>",
		"<cycle>0</cycle>",
		"<curve>",
		"0 0 0",
		"1 0 0",
		"</curve>",
		"</edge>",
		"</edges>",
	}, "\n")

	g := skeletal.New()
	scale, err := Import(strings.NewReader(input), g)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if scale != 1 {
		t.Errorf("scale = %g, want the fallback 1", scale)
	}
	if g.VertexCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("loaded %d vertices and %d edges, want 2 and 1", g.VertexCount(), g.EdgeCount())
	}

	vs := g.Vertices()
	first, _ := g.Vertex(vs[0])
	if first.Position != v3(0, 0, 0) {
		t.Errorf("malformed position loaded as %v, want the origin", first.Position)
	}
	if first.Radius != skeletal.DefaultVertexRadius {
		t.Errorf("malformed radius loaded as %g, want the default", first.Radius)
	}
	second, _ := g.Vertex(vs[1])
	if second.Radius != skeletal.DefaultVertexRadius {
		t.Errorf("oversized radius loaded as %g, want the default", second.Radius)
	}
}

// An edge referencing a vertex index beyond the vertex section is
// skipped; the rest of the file still loads.
func TestImportSkipsEdgeWithBadIndices(t *testing.T) {
	input := strings.Join([]string{
		"<scale>1</scale>",
		"<vertices>",
		"<vertex>",
		"<pos>0 0 0</pos>",
		"<radius>1</radius>",
		"<cycle>0</cycle>",
		"</vertex>",
		"<vertex>",
		"<pos>1 0 0</pos>",
		"<radius>1</radius>",
		"<cycle>0</cycle>",
		"</vertex>",
		"</vertices>",
		"<edges>",
		"<edge>",
		"<source>0</source>",
		"<target>7</target>", // out of range
		"<cycle>0</cycle>",
		"<curve>",
		"0 0 0",
		"1 0 0",
		"</curve>",
		"</edge>",
		"<edge>",
		"<source>0</source>",
		"<target>1</target>",
		"<cycle>0</cycle>",
		"<curve>",
		"0 0 0",
		"1 0 0",
		"</curve>",
		"</edge>",
		"</edges>",
	}, "\n")

	g := skeletal.New()
	if _, err := Import(strings.NewReader(input), g); err != nil {
		t.Fatalf("import: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1 after skipping the bad edge", g.EdgeCount())
	}
}

// Curves are stored as discrete points; tangents are rebuilt on load.
func TestImportRecomputesTangents(t *testing.T) {
	input := strings.Join([]string{
		"<vertices>",
		"<vertex>", "<pos>0 0 0</pos>", "<radius>1</radius>", "<cycle>0</cycle>", "</vertex>",
		"<vertex>", "<pos>2 0 0</pos>", "<radius>1</radius>", "<cycle>0</cycle>", "</vertex>",
		"</vertices>",
		"<edges>",
		"<edge>",
		"<source>0</source>", "<target>1</target>", "<cycle>0</cycle>",
		"<curve>", "0 0 0", "1 0 0", "2 0 0", "</curve>",
		"</edge>",
		"</edges>",
	}, "\n")

	g := skeletal.New()
	if _, err := Import(strings.NewReader(input), g); err != nil {
		t.Fatalf("import: %v", err)
	}
	props, _ := g.Edge(g.Edges()[0])
	for i := 0; i < props.Curve.Size(); i++ {
		n := props.Curve.At(i).Tangent.Norm()
		if n < 0.999 || n > 1.001 {
			t.Errorf("tangent %d has norm %g, want 1", i, n)
		}
	}
}
