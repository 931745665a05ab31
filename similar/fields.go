package similar

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"omibyte.io/svdgen/svd"
)

// FieldGroup is a run of fields PREFIX0..PREFIXn-1 with the same width and
// access placed at a constant bit stride.
type FieldGroup struct {
	Prefix      string
	LSB         uint64
	Width       uint64
	Count       int
	Stride      int64
	Description string
	Access      svd.Access
	// Fields holds the members ordered by their numeric suffix.
	Fields []*svd.Field
}

// LSBAt returns the least significant bit of the member at index.
func (g FieldGroup) LSBAt(index int) uint64 {
	return uint64(int64(g.LSB) + int64(index)*g.Stride)
}

// SplitNumericSuffix splits a trailing run of decimal digits off name.
func SplitNumericSuffix(name string) (prefix string, suffix int, ok bool) {
	prefix = strings.TrimRight(name, "0123456789")
	if len(prefix) == len(name) {
		return name, 0, false
	}
	suffix, err := strconv.Atoi(name[len(prefix):])
	if err != nil {
		return prefix, 0, false
	}
	return prefix, suffix, true
}

type candidate struct {
	field  *svd.Field
	suffix int
	ok     bool
}

// GroupFields partitions the fields of one register into groups and the
// fields that stay individual. Groups are returned in the order their
// prefix first appears, individual fields in their original order.
func GroupFields(fields []*svd.Field) ([]FieldGroup, []*svd.Field) {
	var prefixes []string
	byPrefix := map[string][]candidate{}
	for _, f := range fields {
		prefix, suffix, ok := SplitNumericSuffix(f.Name)
		if _, seen := byPrefix[prefix]; !seen {
			prefixes = append(prefixes, prefix)
		}
		byPrefix[prefix] = append(byPrefix[prefix], candidate{f, suffix, ok})
	}

	var groups []FieldGroup
	grouped := map[*svd.Field]bool{}
	for _, prefix := range prefixes {
		if len(prefix) == 0 {
			continue
		}
		if g, ok := makeGroup(prefix, byPrefix[prefix]); ok {
			groups = append(groups, g)
			for _, f := range g.Fields {
				grouped[f] = true
			}
		}
	}

	var individual []*svd.Field
	for _, f := range fields {
		if !grouped[f] {
			individual = append(individual, f)
		}
	}
	return groups, individual
}

func makeGroup(prefix string, members []candidate) (FieldGroup, bool) {
	if len(members) < 2 {
		return FieldGroup{}, false
	}
	for _, m := range members {
		if !m.ok {
			return FieldGroup{}, false
		}
	}

	// The description comes from the original order, before sorting.
	var description string
	for _, m := range members {
		if len(m.field.Description) > 0 {
			description = m.field.Description
			break
		}
	}

	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b candidate) int {
		switch {
		case a.suffix < b.suffix:
			return -1
		case a.suffix > b.suffix:
			return 1
		}
		return 0
	})

	first := sorted[0].field
	g := FieldGroup{
		Prefix:      prefix,
		LSB:         first.BitRange.LSB,
		Width:       first.BitRange.Width(),
		Count:       len(sorted),
		Stride:      int64(sorted[1].field.BitRange.LSB) - int64(first.BitRange.LSB),
		Description: description,
		Access:      first.Access,
		Fields:      make([]*svd.Field, len(sorted)),
	}
	for i, m := range sorted {
		if m.suffix != i ||
			m.field.BitRange.Width() != g.Width ||
			m.field.Access != g.Access ||
			m.field.BitRange.LSB != g.LSBAt(i) {
			return FieldGroup{}, false
		}
	}
	for i, m := range sorted {
		g.Fields[i] = m.field
	}
	return g, true
}
