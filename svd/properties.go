package svd

// RegisterProperties is the group of register defaults inherited down the
// device tree. A nil or unspecified member means "inherit".
type RegisterProperties struct {
	Size       *uint64    `yaml:"size,omitempty"`
	Access     Access     `yaml:"access,omitempty"`
	Protection Protection `yaml:"protection,omitempty"`
	ResetValue *uint64    `yaml:"resetValue,omitempty"`
	ResetMask  *uint64    `yaml:"resetMask,omitempty"`
}

// Merge returns p with every unset member taken from parent.
func (p RegisterProperties) Merge(parent RegisterProperties) RegisterProperties {
	if p.Size == nil && parent.Size != nil {
		p.Size = Uint64(*parent.Size)
	}
	if p.Access == AccessUnspecified {
		p.Access = parent.Access
	}
	if p.Protection == ProtectionUnspecified {
		p.Protection = parent.Protection
	}
	if p.ResetValue == nil && parent.ResetValue != nil {
		p.ResetValue = Uint64(*parent.ResetValue)
	}
	if p.ResetMask == nil && parent.ResetMask != nil {
		p.ResetMask = Uint64(*parent.ResetMask)
	}
	return p
}

func (p RegisterProperties) Equal(o RegisterProperties) bool {
	return equalOptional(p.Size, o.Size) &&
		p.Access == o.Access &&
		p.Protection == o.Protection &&
		equalOptional(p.ResetValue, o.ResetValue) &&
		equalOptional(p.ResetMask, o.ResetMask)
}

func (p RegisterProperties) Clone() RegisterProperties {
	return RegisterProperties{}.Merge(p)
}

func equalOptional(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
