// Package resolver resolves derivedFrom references between sibling
// peripherals, clusters, registers, fields and enumerated value sets.
package resolver

import (
	"fmt"

	"omibyte.io/svdgen/svd"
)

// Resolve merges every derivedFrom source into its dependent in place. A
// whole sibling scope is resolved before any of its members' children.
func Resolve(d *svd.Device) error {
	peripherals := scope{
		size: len(d.Peripherals),
		kind: func(int) string { return "peripheral" },
		name: func(i int) string { return d.Peripherals[i].Name },
		ref:  func(i int) string { return d.Peripherals[i].DerivedFrom },
		merge: func(dst, src int) {
			d.Peripherals[dst].MergeFrom(d.Peripherals[src])
		},
	}
	if err := peripherals.resolve(); err != nil {
		return err
	}

	for _, p := range d.Peripherals {
		if err := resolveRegisters(p.Registers); err != nil {
			return fmt.Errorf("peripheral %s: %w", p.Name, err)
		}
	}
	return nil
}

func resolveRegisters(list []svd.RegisterOrCluster) error {
	registers := scope{
		size: len(list),
		kind: func(i int) string {
			if list[i].IsCluster() {
				return "cluster"
			}
			return "register"
		},
		name: func(i int) string { return list[i].Name() },
		ref: func(i int) string {
			if list[i].IsCluster() {
				return list[i].Cluster.DerivedFrom
			}
			return list[i].Register.DerivedFrom
		},
		merge: func(dst, src int) {
			if list[dst].IsCluster() {
				list[dst].Cluster.MergeFrom(list[src].Cluster)
			} else {
				list[dst].Register.MergeFrom(list[src].Register)
			}
		},
	}
	if err := registers.resolve(); err != nil {
		return err
	}

	for _, rc := range list {
		if rc.IsCluster() {
			if err := resolveRegisters(rc.Cluster.Children); err != nil {
				return fmt.Errorf("cluster %s: %w", rc.Cluster.Name, err)
			}
		} else if err := resolveFields(rc.Register.Fields); err != nil {
			return fmt.Errorf("register %s: %w", rc.Register.Name, err)
		}
	}
	return nil
}

func resolveFields(fields []*svd.Field) error {
	s := scope{
		size:  len(fields),
		kind:  func(int) string { return "field" },
		name:  func(i int) string { return fields[i].Name },
		ref:   func(i int) string { return fields[i].DerivedFrom },
		merge: func(dst, src int) { fields[dst].MergeFrom(fields[src]) },
	}
	if err := s.resolve(); err != nil {
		return err
	}

	for _, f := range fields {
		if err := resolveEnumeratedValues(f.EnumeratedValues); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

func resolveEnumeratedValues(sets []*svd.EnumeratedValues) error {
	s := scope{
		size:  len(sets),
		kind:  func(int) string { return "enumeratedValues" },
		name:  func(i int) string { return sets[i].Name },
		ref:   func(i int) string { return sets[i].DerivedFrom },
		merge: func(dst, src int) { sets[dst].MergeFrom(sets[src]) },
	}
	return s.resolve()
}
