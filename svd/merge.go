package svd

// The MergeFrom methods copy every member of src that is unset on the
// receiver. Lists are only taken over when the receiver's list is empty and
// are deep copied. The receiver adopts src's own derivedFrom so that chained
// derivations keep resolving.

func (p *Peripheral) MergeFrom(src *Peripheral) {
	p.DerivedFrom = src.DerivedFrom
	p.Lineage = append(append(p.Lineage, src.Name), src.Lineage...)
	p.Dim.merge(src.Dim)
	mergeString(&p.Version, src.Version)
	mergeString(&p.Description, src.Description)
	mergeString(&p.AlternateOf, src.AlternateOf)
	mergeString(&p.GroupName, src.GroupName)
	mergeString(&p.PrependToName, src.PrependToName)
	mergeString(&p.AppendToName, src.AppendToName)
	mergeString(&p.HeaderStructName, src.HeaderStructName)
	mergeString(&p.DisableCondition, src.DisableCondition)
	p.Properties = p.Properties.Merge(src.Properties)

	if len(p.AddressBlocks) == 0 && len(src.AddressBlocks) > 0 {
		p.AddressBlocks = append([]AddressBlock(nil), src.AddressBlocks...)
	}
	if len(p.Interrupts) == 0 && len(src.Interrupts) > 0 {
		p.Interrupts = append([]Interrupt(nil), src.Interrupts...)
	}
	if len(p.Registers) == 0 && len(src.Registers) > 0 {
		p.Registers = cloneRegisterList(src.Registers)
	}
}

func (c *Cluster) MergeFrom(src *Cluster) {
	c.DerivedFrom = src.DerivedFrom
	c.Lineage = append(append(c.Lineage, src.Name), src.Lineage...)
	c.Dim.merge(src.Dim)
	mergeString(&c.Description, src.Description)
	mergeString(&c.AlternateCluster, src.AlternateCluster)
	mergeString(&c.HeaderStructName, src.HeaderStructName)
	c.Properties = c.Properties.Merge(src.Properties)

	if len(c.Children) == 0 && len(src.Children) > 0 {
		c.Children = cloneRegisterList(src.Children)
	}
}

func (r *Register) MergeFrom(src *Register) {
	r.DerivedFrom = src.DerivedFrom
	r.Lineage = append(append(r.Lineage, src.Name), src.Lineage...)
	r.Dim.merge(src.Dim)
	mergeString(&r.DisplayName, src.DisplayName)
	mergeString(&r.Description, src.Description)
	mergeString(&r.AlternateGroup, src.AlternateGroup)
	mergeString(&r.AlternateRegister, src.AlternateRegister)
	r.Properties = r.Properties.Merge(src.Properties)
	if r.DataType == DataTypeUnspecified {
		r.DataType = src.DataType
	}
	if r.ModifiedWriteValues == ModifiedWriteValuesUnspecified {
		r.ModifiedWriteValues = src.ModifiedWriteValues
	}
	if r.ReadAction == ReadActionUnspecified {
		r.ReadAction = src.ReadAction
	}

	if len(r.Fields) == 0 && len(src.Fields) > 0 {
		r.Fields = make([]*Field, len(src.Fields))
		for i, f := range src.Fields {
			r.Fields[i] = f.Clone()
		}
	}
}

func (f *Field) MergeFrom(src *Field) {
	f.DerivedFrom = src.DerivedFrom
	f.Lineage = append(append(f.Lineage, src.Name), src.Lineage...)
	mergeString(&f.Description, src.Description)
	if f.Access == AccessUnspecified {
		f.Access = src.Access
	}
	if f.ModifiedWriteValues == ModifiedWriteValuesUnspecified {
		f.ModifiedWriteValues = src.ModifiedWriteValues
	}
	if f.ReadAction == ReadActionUnspecified {
		f.ReadAction = src.ReadAction
	}

	if len(f.EnumeratedValues) == 0 && len(src.EnumeratedValues) > 0 {
		f.EnumeratedValues = cloneEnumeratedValues(src.EnumeratedValues)
	}
}

func (e *EnumeratedValues) MergeFrom(src *EnumeratedValues) {
	e.DerivedFrom = src.DerivedFrom
	mergeString(&e.Name, src.Name)
	if e.Usage == EnumUsageUnspecified {
		e.Usage = src.Usage
	}
	if len(e.Values) == 0 {
		e.Values = append([]EnumeratedValue(nil), src.Values...)
	}
}

func (p *Peripheral) Clone() *Peripheral {
	c := *p
	c.Dim = p.Dim.clone()
	c.Properties = p.Properties.Clone()
	c.AddressBlocks = append([]AddressBlock(nil), p.AddressBlocks...)
	c.Interrupts = append([]Interrupt(nil), p.Interrupts...)
	c.Registers = cloneRegisterList(p.Registers)
	c.Lineage = append([]string(nil), p.Lineage...)
	return &c
}

func (rc RegisterOrCluster) Clone() RegisterOrCluster {
	if rc.Cluster != nil {
		return RegisterOrCluster{Cluster: rc.Cluster.Clone()}
	}
	return RegisterOrCluster{Register: rc.Register.Clone()}
}

func (c *Cluster) Clone() *Cluster {
	n := *c
	n.Dim = c.Dim.clone()
	n.Properties = c.Properties.Clone()
	n.Children = cloneRegisterList(c.Children)
	n.Lineage = append([]string(nil), c.Lineage...)
	return &n
}

func (r *Register) Clone() *Register {
	n := *r
	n.Dim = r.Dim.clone()
	n.Properties = r.Properties.Clone()
	if r.Fields != nil {
		n.Fields = make([]*Field, len(r.Fields))
		for i, f := range r.Fields {
			n.Fields[i] = f.Clone()
		}
	}
	n.Lineage = append([]string(nil), r.Lineage...)
	return &n
}

func (f *Field) Clone() *Field {
	n := *f
	n.EnumeratedValues = cloneEnumeratedValues(f.EnumeratedValues)
	n.Lineage = append([]string(nil), f.Lineage...)
	return &n
}

func cloneRegisterList(list []RegisterOrCluster) []RegisterOrCluster {
	if list == nil {
		return nil
	}
	result := make([]RegisterOrCluster, len(list))
	for i, rc := range list {
		result[i] = rc.Clone()
	}
	return result
}

func cloneEnumeratedValues(list []*EnumeratedValues) []*EnumeratedValues {
	if list == nil {
		return nil
	}
	result := make([]*EnumeratedValues, len(list))
	for i, ev := range list {
		n := *ev
		n.Values = append([]EnumeratedValue(nil), ev.Values...)
		result[i] = &n
	}
	return result
}

func mergeString(dst *string, src string) {
	if len(*dst) == 0 {
		*dst = src
	}
}
