package resolver

import (
	"errors"

	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"

	"omibyte.io/svdgen/svd"
)

// scope is one list of siblings that may reference each other by name.
// Entities of different kinds never resolve against each other.
type scope struct {
	size  int
	kind  func(i int) string
	name  func(i int) string
	ref   func(i int) string
	merge func(dst, src int)
}

type key struct {
	kind string
	name string
}

func (s scope) resolve() error {
	index := make(map[key]int, s.size)
	for i := 0; i < s.size; i++ {
		k := key{s.kind(i), s.name(i)}
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}

	// Edges point from the source to the entity deriving from it so that a
	// topological order visits every source before its dependents.
	graph := multi.NewDirectedGraph()
	pending := false
	for i := 0; i < s.size; i++ {
		graph.AddNode(multi.Node(i))
	}
	for i := 0; i < s.size; i++ {
		ref := s.ref(i)
		if len(ref) == 0 {
			continue
		}
		pending = true

		j, ok := index[key{s.kind(i), ref}]
		if !ok {
			return &svd.ReferenceError{Kind: s.kind(i), Name: s.name(i), Ref: ref}
		}
		if j == i {
			return &svd.CycleError{Kind: s.kind(i), Names: []string{s.name(i), ref}}
		}
		graph.SetLine(graph.NewLine(multi.Node(j), multi.Node(i)))
	}

	if !pending {
		return nil
	}

	sorted, err := topo.SortStabilized(graph, nil)
	if err != nil {
		var cycles topo.Unorderable
		if errors.As(err, &cycles) && len(cycles) > 0 {
			cycle := cycles[0]
			names := make([]string, 0, len(cycle)+1)
			for _, n := range cycle {
				names = append(names, s.name(int(n.ID())))
			}
			names = append(names, names[0])
			return &svd.CycleError{Kind: s.kind(int(cycle[0].ID())), Names: names}
		}
		return err
	}

	for _, n := range sorted {
		i := int(n.ID())
		for steps := 0; len(s.ref(i)) > 0; steps++ {
			if steps == s.size {
				return &svd.CycleError{Kind: s.kind(i), Names: []string{s.name(i)}}
			}
			j := index[key{s.kind(i), s.ref(i)}]
			s.merge(i, j)
		}
	}
	return nil
}
