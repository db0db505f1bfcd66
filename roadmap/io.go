package roadmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/personalrobotics/multiset-planning/space"
)

// WriteGraph writes g in the persisted roadmap format: a header line,
// vertex and edge lines, then property blocks. Real-vector states are
// serialized as space-separated doubles that round-trip losslessly.
func WriteGraph(w io.Writer, g *Graph, s *space.RealVectorSpace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "graph %d %d\n", g.NumVertices(), g.NumEdges())
	for _, v := range g.Vertices {
		fmt.Fprintf(bw, "vertex %d\n", v.Index)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "edge %d %d %d\n", e.Index, e.V, e.W)
	}
	for _, v := range g.Vertices {
		fmt.Fprintf(bw, "property state vertex %d %s\n", v.Index, formatState(s, v.State))
		fmt.Fprintf(bw, "property subgraph vertex %d %d\n", v.Index, v.Subgraph)
		fmt.Fprintf(bw, "property is_shadow vertex %d %s\n", v.Index, formatBool(v.IsShadow))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "property distance edge %d %s\n", e.Index, formatFloat(e.Distance))
		fmt.Fprintf(bw, "property subgraph edge %d %d\n", e.Index, e.Subgraph)
	}
	return bw.Flush()
}

// ReadGraph parses the persisted roadmap format back into a graph whose
// states belong to s.
func ReadGraph(r io.Reader, s *space.RealVectorSpace) (*Graph, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, errors.New("missing graph header")
	}
	var numV, numE int
	if _, err := fmt.Sscanf(scanner.Text(), "graph %d %d", &numV, &numE); err != nil {
		return nil, errors.Wrap(err, "malformed graph header")
	}

	g := NewGraph()
	for i := 0; i < numV; i++ {
		if !scanner.Scan() {
			return nil, errors.Errorf("missing vertex line %d", i)
		}
		var index int
		if _, err := fmt.Sscanf(scanner.Text(), "vertex %d", &index); err != nil || index != i {
			return nil, errors.Errorf("malformed vertex line %q", scanner.Text())
		}
		g.AddVertex(s.Alloc(), 0)
	}
	for i := 0; i < numE; i++ {
		if !scanner.Scan() {
			return nil, errors.Errorf("missing edge line %d", i)
		}
		var index, u, v int
		if _, err := fmt.Sscanf(scanner.Text(), "edge %d %d %d", &index, &u, &v); err != nil || index != i {
			return nil, errors.Errorf("malformed edge line %q", scanner.Text())
		}
		if u < 0 || u >= numV || v < 0 || v >= numV {
			return nil, errors.Errorf("edge %d references unknown vertex", i)
		}
		g.AddEdge(u, v, 0, 0)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] != "property" {
			return nil, errors.Errorf("malformed property line %q", line)
		}
		name, scope := fields[1], fields[2]
		index, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, errors.Wrapf(err, "malformed property index in %q", line)
		}
		values := fields[4:]
		switch {
		case scope == "vertex" && index >= 0 && index < numV:
			if err := applyVertexProperty(s, g.Vertices[index], name, values); err != nil {
				return nil, errors.Wrapf(err, "property line %q", line)
			}
		case scope == "edge" && index >= 0 && index < numE:
			if err := applyEdgeProperty(g.Edges[index], name, values); err != nil {
				return nil, errors.Wrapf(err, "property line %q", line)
			}
		default:
			return nil, errors.Errorf("property line %q has bad scope or index", line)
		}
	}
	return g, scanner.Err()
}

func applyVertexProperty(s *space.RealVectorSpace, v *Vertex, name string, values []string) error {
	switch name {
	case "state":
		if len(values) != s.Dimension() {
			return errors.Errorf("state has %d values, space dimension is %d", len(values), s.Dimension())
		}
		coords := s.Values(v.State)
		for i, val := range values {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return err
			}
			coords[i] = f
		}
	case "subgraph":
		k, err := strconv.Atoi(values[0])
		if err != nil {
			return err
		}
		v.Subgraph = k
	case "is_shadow":
		b, err := parseBool(values[0])
		if err != nil {
			return err
		}
		v.IsShadow = b
	default:
		return errors.Errorf("unknown vertex property %q", name)
	}
	return nil
}

func applyEdgeProperty(e *Edge, name string, values []string) error {
	switch name {
	case "distance":
		f, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return err
		}
		e.Distance = f
	case "subgraph":
		k, err := strconv.Atoi(values[0])
		if err != nil {
			return err
		}
		e.Subgraph = k
	default:
		return errors.Errorf("unknown edge property %q", name)
	}
	return nil
}

func formatState(s *space.RealVectorSpace, st space.State) string {
	coords := s.Values(st)
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = formatFloat(c)
	}
	return strings.Join(parts, " ")
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func parseBool(v string) (bool, error) {
	switch v {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, errors.Errorf("malformed boolean %q", v)
}
