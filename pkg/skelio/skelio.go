// Package skelio reads and writes skeletal graphs in the tagged-line
// text format.
//
// The format is line-oriented: every tag and every curve sample sits on
// its own line. Curves are stored as discrete point positions only;
// tangents are recomputed on load. Malformed fields never abort a load:
// each one falls back to a default (zero position, default radius, no
// cycle mark) and is reported through the target graph's diagnostic
// sink, and an edge referencing an out-of-range vertex index is skipped
// the same way.
package skelio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skelworks/skelgraph/pkg/curve"
	"github.com/skelworks/skelgraph/pkg/diag"
	"github.com/skelworks/skelgraph/pkg/geom"
	"github.com/skelworks/skelgraph/pkg/skeletal"
)

// Export writes g to w, recording scale in the file header. Vertices are
// written in iteration order; edges refer to them by 0-based position in
// the vertex section. An edge with an endpoint missing from the vertex
// map aborts the export.
func Export(g *skeletal.Graph, w io.Writer, scale float32) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "<scale>%g</scale>\n", scale)

	index := make(map[skeletal.VertexID]int, g.VertexCount())

	fmt.Fprintln(bw, "<vertices>")
	for i, v := range g.Vertices() {
		props, _ := g.Vertex(v)
		fmt.Fprintln(bw, "<vertex>")
		fmt.Fprintf(bw, "<pos>%g %g %g</pos>\n", props.Position.X, props.Position.Y, props.Position.Z)
		fmt.Fprintf(bw, "<radius>%g</radius>\n", props.Radius)
		fmt.Fprintf(bw, "<cycle>%d</cycle>\n", boolToInt(props.InCycle))
		fmt.Fprintln(bw, "</vertex>")
		index[v] = i
	}
	fmt.Fprintln(bw, "</vertices>")

	fmt.Fprintln(bw, "<edges>")
	for _, e := range g.Edges() {
		props, _ := g.Edge(e)
		src, okS := index[g.EdgeSource(e)]
		tgt, okT := index[g.EdgeTarget(e)]
		if !okS || !okT {
			return fmt.Errorf("export: edge references a vertex outside the graph")
		}
		fmt.Fprintln(bw, "<edge>")
		fmt.Fprintf(bw, "<source>%d</source>\n", src)
		fmt.Fprintf(bw, "<target>%d</target>\n", tgt)
		fmt.Fprintf(bw, "<cycle>%d</cycle>\n", boolToInt(props.InCycle))
		fmt.Fprintln(bw, "<curve>")
		for i := 0; i < props.Curve.Size(); i++ {
			p := props.Curve.At(i).Point
			fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z)
		}
		fmt.Fprintln(bw, "</curve>")
		fmt.Fprintln(bw, "</edge>")
	}
	fmt.Fprintln(bw, "</edges>")

	return bw.Flush()
}

// ExportFile writes g to a file, creating or truncating it.
func ExportFile(g *skeletal.Graph, path string, scale float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	defer f.Close()
	if err := Export(g, f, scale); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// Import reads a graph from r into g and returns the scale recorded in
// the file. The target graph must be non-nil; its previous content is
// kept, so importing into a fresh graph is the usual call.
func Import(r io.Reader, g *skeletal.Graph) (float32, error) {
	if g == nil {
		return 1, fmt.Errorf("import into nil graph: %w", skeletal.ErrInvalidArgument)
	}
	sink := g.Diagnostics()

	var (
		scale float32 = 1

		readingVertices bool
		readingEdges    bool
		readingVertex   bool
		readingEdge     bool
		readingCurve    bool

		vprops skeletal.VertexProps
		ids    []skeletal.VertexID

		eCycle    bool
		srcIndex  int
		tgtIndex  int
		points    []geom.Vec3
		edgeCurve curve.Curve
		haveCurve bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "<scale>"):
			if _, err := fmt.Sscanf(line, "<scale>%g</scale>", &scale); err != nil {
				sink.Warnf("import: could not read scale from line %q", line)
				scale = 1
			}

		case line == "<vertices>":
			readingVertices = true
		case line == "</vertices>":
			readingVertices = false

		case readingVertices:
			switch {
			case line == "<vertex>":
				readingVertex = true
				vprops = skeletal.VertexProps{Radius: skeletal.DefaultVertexRadius}
			case line == "</vertex>":
				readingVertex = false
				ids = append(ids, g.AddVertex(vprops))
			case readingVertex:
				parseVertexField(line, &vprops, sink)
			}

		case line == "<edges>":
			readingEdges = true
			if len(ids) == 0 {
				sink.Warnf("import: edge section with no vertices, stopping")
				return scale, scanner.Err()
			}
		case line == "</edges>":
			readingEdges = false

		case readingEdges:
			switch {
			case line == "<edge>":
				readingEdge = true
				eCycle = false
				srcIndex, tgtIndex = 0, 0
				points = nil
				haveCurve = false
			case line == "</edge>":
				readingEdge = false
				if srcIndex < 0 || srcIndex >= len(ids) || tgtIndex < 0 || tgtIndex >= len(ids) {
					sink.Warnf("import: skipping edge with invalid vertex indices %d, %d", srcIndex, tgtIndex)
					continue
				}
				props := skeletal.EdgeProps{}
				if haveCurve {
					props.Curve = edgeCurve
				} else {
					srcProps, _ := g.Vertex(ids[srcIndex])
					tgtProps, _ := g.Vertex(ids[tgtIndex])
					props.Curve = curve.Straight(srcProps.Position, tgtProps.Position)
				}
				if e, ok := g.AddEdge(ids[srcIndex], ids[tgtIndex], props); ok {
					g.SetEdgeCycleMark(e, eCycle)
				}
			case readingEdge:
				switch {
				case line == "<curve>":
					readingCurve = true
				case line == "</curve>":
					readingCurve = false
					c, err := curve.FromPoints(points)
					if err != nil {
						sink.Warnf("import: discarding curve: %v", err)
					} else {
						edgeCurve = c
						haveCurve = true
					}
				case readingCurve:
					var p geom.Vec3
					if _, err := fmt.Sscanf(line, "%g %g %g", &p.X, &p.Y, &p.Z); err != nil {
						sink.Warnf("import: could not read curve point from line %q", line)
					} else {
						points = append(points, p)
					}
				case strings.HasPrefix(line, "<source>"):
					if _, err := fmt.Sscanf(line, "<source>%d</source>", &srcIndex); err != nil {
						sink.Warnf("import: could not read source from line %q", line)
					}
				case strings.HasPrefix(line, "<target>"):
					if _, err := fmt.Sscanf(line, "<target>%d</target>", &tgtIndex); err != nil {
						sink.Warnf("import: could not read target from line %q", line)
					}
				case strings.HasPrefix(line, "<cycle>"):
					var c int
					if _, err := fmt.Sscanf(line, "<cycle>%d</cycle>", &c); err != nil {
						sink.Warnf("import: could not read edge cycle flag from line %q", line)
					} else {
						eCycle = c != 0
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return scale, fmt.Errorf("import: %w", err)
	}
	return scale, nil
}

// ImportFile reads a graph file into g and returns the recorded scale.
func ImportFile(path string, g *skeletal.Graph) (float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 1, fmt.Errorf("import %s: %w", path, err)
	}
	defer f.Close()
	scale, err := Import(f, g)
	if err != nil {
		return scale, fmt.Errorf("import %s: %w", path, err)
	}
	return scale, nil
}

func parseVertexField(line string, props *skeletal.VertexProps, sink diag.Sink) {
	switch {
	case strings.HasPrefix(line, "<pos>"):
		var p geom.Vec3
		if _, err := fmt.Sscanf(line, "<pos>%g %g %g</pos>", &p.X, &p.Y, &p.Z); err != nil {
			sink.Warnf("import: could not read position from line %q", line)
			p = geom.Vec3{}
		}
		props.Position = p
	case strings.HasPrefix(line, "<radius>"):
		var r float32
		if _, err := fmt.Sscanf(line, "<radius>%g</radius>", &r); err != nil {
			sink.Warnf("import: could not read radius from line %q", line)
			r = skeletal.DefaultVertexRadius
		} else if r > skeletal.MaxVertexRadius {
			sink.Warnf("import: radius %g exceeds the maximum, falling back to the default", r)
			r = skeletal.DefaultVertexRadius
		}
		props.Radius = r
	case strings.HasPrefix(line, "<cycle>"):
		var c int
		if _, err := fmt.Sscanf(line, "<cycle>%d</cycle>", &c); err != nil {
			sink.Warnf("import: could not read vertex cycle flag from line %q", line)
			c = 0
		}
		props.InCycle = c != 0
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
