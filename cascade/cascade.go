// Package cascade propagates default register properties from the device
// down to every peripheral, cluster and register.
package cascade

import "omibyte.io/svdgen/svd"

// Apply replaces the properties of every node below the device with its
// effective properties. Values set on a node win over those of its parent.
func Apply(d *svd.Device) {
	for _, p := range d.Peripherals {
		p.Properties = p.Properties.Merge(d.Properties)
		applyRegisters(p.Registers, p.Properties)
	}
}

func applyRegisters(list []svd.RegisterOrCluster, parent svd.RegisterProperties) {
	for _, rc := range list {
		if rc.IsCluster() {
			rc.Cluster.Properties = rc.Cluster.Properties.Merge(parent)
			applyRegisters(rc.Cluster.Children, rc.Cluster.Properties)
		} else {
			rc.Register.Properties = rc.Register.Properties.Merge(parent)
		}
	}
}
