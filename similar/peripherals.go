package similar

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"omibyte.io/svdgen/svd"
)

// Unit is one emitted peripheral: either a single peripheral or a group of
// at least two interchangeable peripherals sharing one type.
type Unit struct {
	Name        string
	Peripherals []*svd.Peripheral

	index int
}

func (u Unit) IsGroup() bool {
	return len(u.Peripherals) > 1
}

// Representative returns the first member of the unit in document order.
func (u Unit) Representative() *svd.Peripheral {
	return u.Peripherals[0]
}

// GroupPeripherals clusters the device peripherals. Each peripheral is
// compared against the first member of every group opened so far and joins
// the first match. Groups that end up with a single member, or for which no
// shared name can be derived, are emitted individually. The returned units
// are in document order of their first member and carry unique names.
func GroupPeripherals(peripherals []*svd.Peripheral, opts Options) []Unit {
	var open [][]int
	for i, p := range peripherals {
		found := false
		for g, members := range open {
			if Peripherals(peripherals[members[0]], p, opts) {
				open[g] = append(members, i)
				found = true
				break
			}
		}
		if !found {
			open = append(open, []int{i})
		}
	}

	var units []Unit
	for _, members := range open {
		var name string
		if len(members) > 1 {
			group := make([]*svd.Peripheral, len(members))
			for i, m := range members {
				group[i] = peripherals[m]
			}
			name = GroupName(group)
		}

		if len(name) == 0 {
			for _, m := range members {
				units = append(units, Unit{
					Name:        peripherals[m].Name,
					Peripherals: []*svd.Peripheral{peripherals[m]},
					index:       m,
				})
			}
			continue
		}

		unit := Unit{Name: name, index: members[0]}
		for _, m := range members {
			unit.Peripherals = append(unit.Peripherals, peripherals[m])
		}
		units = append(units, unit)
	}

	slices.SortStableFunc(units, func(a, b Unit) int {
		return a.index - b.index
	})
	makeNamesUnique(units)
	return units
}

// Individually returns one unit per peripheral with unique names.
func Individually(peripherals []*svd.Peripheral) []Unit {
	units := make([]Unit, len(peripherals))
	for i, p := range peripherals {
		units[i] = Unit{Name: p.Name, Peripherals: []*svd.Peripheral{p}, index: i}
	}
	makeNamesUnique(units)
	return units
}

// GroupName derives the shared type name of a group: an explicit header
// struct name of any member, else the first member's name without its
// trailing digits, else the longest common prefix of all member names.
func GroupName(group []*svd.Peripheral) string {
	for _, p := range group {
		if len(p.HeaderStructName) > 0 {
			return p.HeaderStructName
		}
	}

	first := group[0].Name
	if trimmed := strings.TrimRight(first, "0123456789"); len(trimmed) < len(first) {
		return trimmed
	}

	prefix := first
	for _, p := range group[1:] {
		n := 0
		for n < len(prefix) && n < len(p.Name) && prefix[n] == p.Name[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}

// makeNamesUnique renames every unit whose name was already taken by an
// earlier unit to name_N with the smallest unused N.
func makeNamesUnique(units []Unit) {
	used := map[string]bool{}
	for i := range units {
		name := units[i].Name
		if used[name] {
			for n := 0; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		units[i].Name = name
	}
}
