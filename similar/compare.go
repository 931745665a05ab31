// Package similar finds structurally interchangeable peripherals and fields
// so that a single parameterized accessor can serve all of them.
package similar

import (
	"golang.org/x/exp/slices"

	"omibyte.io/svdgen/svd"
)

type Options struct {
	// IgnoreFields compares registers without looking at their fields.
	IgnoreFields bool
}

// Peripherals reports whether a and b can share one generated type. They
// can when one derives directly from the other, when both derive from the
// same peripheral or when their register trees are structurally identical.
func Peripherals(a, b *svd.Peripheral, opts Options) bool {
	sa, sb := source(a), source(b)
	if sa == b.Name || sb == a.Name || (len(sa) > 0 && sa == sb) {
		return true
	}
	return registerLists(a.Registers, b.Registers, opts)
}

// source returns the name a peripheral directly derived from, if any.
func source(p *svd.Peripheral) string {
	if len(p.DerivedFrom) > 0 {
		return p.DerivedFrom
	}
	if len(p.Lineage) > 0 {
		return p.Lineage[0]
	}
	return ""
}

func registerLists(a, b []svd.RegisterOrCluster, opts Options) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].IsCluster() != b[i].IsCluster() {
			return false
		}
		if a[i].IsCluster() {
			if !clusters(a[i].Cluster, b[i].Cluster, opts) {
				return false
			}
		} else if !registers(a[i].Register, b[i].Register, opts) {
			return false
		}
	}
	return true
}

func clusters(a, b *svd.Cluster, opts Options) bool {
	return a.Name == b.Name &&
		a.AddressOffset == b.AddressOffset &&
		a.Dim.Equal(b.Dim) &&
		a.Properties.Equal(b.Properties) &&
		registerLists(a.Children, b.Children, opts)
}

func registers(a, b *svd.Register, opts Options) bool {
	if a.Name != b.Name ||
		a.AddressOffset != b.AddressOffset ||
		!a.Dim.Equal(b.Dim) ||
		!a.Properties.Equal(b.Properties) ||
		a.ModifiedWriteValues != b.ModifiedWriteValues ||
		a.ReadAction != b.ReadAction {
		return false
	}
	if opts.IgnoreFields {
		return true
	}
	return slices.EqualFunc(a.Fields, b.Fields, fields)
}

func fields(a, b *svd.Field) bool {
	return a.Name == b.Name &&
		a.BitRange == b.BitRange &&
		a.Access == b.Access &&
		a.ModifiedWriteValues == b.ModifiedWriteValues &&
		a.ReadAction == b.ReadAction &&
		slices.EqualFunc(a.EnumeratedValues, b.EnumeratedValues, enumeratedValues)
}

func enumeratedValues(a, b *svd.EnumeratedValues) bool {
	return a.Name == b.Name && a.Usage == b.Usage && slices.Equal(a.Values, b.Values)
}
