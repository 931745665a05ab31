package generator

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"omibyte.io/svdgen/similar"
	"omibyte.io/svdgen/svd"
)

// instance is one register accessor pair of a peripheral type.
type instance struct {
	register *svd.Register
	name     string
	// typeName is the preferred wrapper type name. Instances of the same
	// register definition share the wrapper declared first.
	typeName string
	offset   uint64
	// count is non-zero for registers accessed by index.
	count  uint64
	stride uint64
}

func (e *emitter) emitUnit(unit similar.Unit) error {
	rep := unit.Representative()

	registers := rep.Registers
	if unit.IsGroup() {
		registers = e.groupRegisters(rep)
	}

	instances, err := flatten(registers, "", cleanIdentifier(unit.Name)+"_", 0, !unit.IsGroup())
	if err != nil {
		return err
	}

	typeName := e.declare(unit.Name + "_Type")
	e.w.Line("")
	e.doc(typeName, rep.Description)
	if unit.IsGroup() {
		e.w.Open("type %s struct {", typeName)
		e.w.Line("BaseAddress uintptr")
		e.w.Close("}")
		e.w.Line("")
		e.w.Open("var (")
		for _, p := range unit.Peripherals {
			e.w.Line("%s = %s{BaseAddress: %s}", e.declare(p.Name), typeName, hex(p.BaseAddress))
		}
		e.w.Close(")")
	} else {
		e.w.Line("type %s struct{}", typeName)
		e.w.Line("")
		e.w.Line("var %s %s", e.declare(unit.Name), typeName)
	}

	for _, inst := range instances {
		if err := e.emitAccessors(typeName, rep, unit.IsGroup(), inst); err != nil {
			return fmt.Errorf("register %s: %w", inst.name, err)
		}
	}

	for _, wr := range e.pending {
		e.emitWrapper(wr)
	}
	e.pending = e.pending[:0]
	return nil
}

// groupRegisters returns the registers of the representative followed by
// those only its ancestors define.
func (e *emitter) groupRegisters(rep *svd.Peripheral) []svd.RegisterOrCluster {
	result := slices.Clone(rep.Registers)
	seen := map[string]bool{}
	for _, rc := range result {
		seen[rc.Name()] = true
	}

	for _, name := range rep.Lineage {
		ancestor, ok := e.peripherals[name]
		if !ok {
			continue
		}
		for _, rc := range ancestor.Registers {
			if !seen[rc.Name()] {
				seen[rc.Name()] = true
				result = append(result, rc)
			}
		}
	}
	return result
}

// flatten lists the register instances below a register list. Clusters
// contribute their registers with the cluster offset added and the cluster
// name prepended.
func flatten(list []svd.RegisterOrCluster, prefix, typePrefix string, offset uint64, clusters bool) ([]instance, error) {
	var result []instance
	for _, rc := range list {
		if rc.IsCluster() {
			c := rc.Cluster
			if !clusters {
				return nil, svd.Unsupported("cluster %s in a peripheral group", c.Name)
			}

			names, offsets, err := expand(c.Name, c.Dim, offset+c.AddressOffset)
			if err != nil {
				return nil, fmt.Errorf("cluster %s: %w", c.Name, err)
			}

			clusterType := typePrefix + cleanIdentifier(stripPlaceholder(c.Name)) + "_"
			for i := range names {
				children, err := flatten(c.Children, prefix+names[i]+"_", clusterType, offsets[i], true)
				if err != nil {
					return nil, fmt.Errorf("cluster %s: %w", c.Name, err)
				}
				result = append(result, children...)
			}
			continue
		}

		r := rc.Register
		typeName := typePrefix + cleanIdentifier(stripPlaceholder(r.Name))
		if r.Dim.IsArray() && strings.Contains(r.Name, "[%s]") {
			result = append(result, instance{
				register: r,
				name:     prefix + cleanIdentifier(stripPlaceholder(r.Name)),
				typeName: typeName,
				offset:   offset + r.AddressOffset,
				count:    r.Dim.Count(),
				stride:   r.Dim.Stride(),
			})
			continue
		}

		names, offsets, err := expand(r.Name, r.Dim, offset+r.AddressOffset)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", r.Name, err)
		}
		for i := range names {
			result = append(result, instance{
				register: r,
				name:     prefix + names[i],
				typeName: typeName,
				offset:   offsets[i],
			})
		}
	}
	return result, nil
}

// expand returns the names and offsets of every element described by a
// possibly repeated register or cluster.
func expand(name string, dim svd.DimElement, offset uint64) ([]string, []uint64, error) {
	if !dim.IsArray() || !strings.Contains(name, "%s") {
		return []string{cleanIdentifier(name)}, []uint64{offset}, nil
	}

	indices, err := dim.Indices()
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, len(indices))
	offsets := make([]uint64, len(indices))
	for i, index := range indices {
		n := strings.Replace(name, "[%s]", index, 1)
		names[i] = cleanIdentifier(strings.Replace(n, "%s", index, 1))
		offsets[i] = offset + uint64(i)*dim.Stride()
	}
	return names, offsets, nil
}

func (e *emitter) emitAccessors(typeName string, rep *svd.Peripheral, group bool, inst instance) error {
	r := inst.register
	size := storageSize(r.Properties)
	storage, err := typeForSize(size)
	if err != nil {
		return err
	}
	for _, f := range r.Fields {
		if f.BitRange.MSB >= size {
			return svd.Unsupported("field %s at bits %d..%d of a %d bit register", f.Name, f.BitRange.LSB, f.BitRange.MSB, size)
		}
	}

	valueType := storage
	if e.needsWrapper(r, size) {
		valueType = e.wrapper(inst.typeName, r, storage)
	}

	var address string
	if group {
		address = fmt.Sprintf("p.BaseAddress + %s", hex(inst.offset))
	} else {
		address = fmt.Sprintf("uintptr(%s)", hex(rep.BaseAddress+inst.offset))
	}
	params := ""
	if inst.count > 0 {
		address += fmt.Sprintf(" + uintptr(index)*%s", hex(inst.stride))
		params = "index int"
	}
	pointer := fmt.Sprintf("(*%s)(unsafe.Pointer(%s))", storage, address)

	access := r.Properties.Access
	if access.CanRead() {
		name := e.method(typeName, "Read"+inst.name)
		load := fmt.Sprintf("volatile.Load%s(%s)", volatileSuffix(storage), pointer)
		if valueType != storage {
			load = fmt.Sprintf("%s(%s)", valueType, load)
		}

		e.w.Line("")
		e.doc(name, r.Description)
		e.w.Open("func (p %s) %s(%s) %s {", typeName, name, params, valueType)
		e.boundsCheck(inst.count)
		e.w.Line("return %s", load)
		e.w.Close("}")
	}

	if access.CanWrite() {
		name := e.method(typeName, "Write"+inst.name)
		value := "value"
		if valueType != storage {
			value = fmt.Sprintf("%s(value)", storage)
		}
		writeParams := "value " + valueType
		if len(params) > 0 {
			writeParams = params + ", " + writeParams
		}

		e.w.Line("")
		e.doc(name, r.Description)
		e.w.Open("func (p %s) %s(%s) {", typeName, name, writeParams)
		e.boundsCheck(inst.count)
		e.w.Line("volatile.Store%s(%s, %s)", volatileSuffix(storage), pointer, value)
		e.w.Close("}")
	}

	if e.opts.WithPointers {
		name := e.method(typeName, "Ptr"+inst.name)
		e.w.Line("")
		e.w.Comment(fmt.Sprintf("%s returns the address of the %s register.", name, r.Name))
		e.w.Open("func (p %s) %s(%s) *%s {", typeName, name, params, storage)
		e.boundsCheck(inst.count)
		e.w.Line("return %s", pointer)
		e.w.Close("}")
	}

	e.usesMemory = true
	return nil
}

// boundsCheck panics in the emitted accessor when index is outside
// [0, count). Nothing is written for a zero count.
func (e *emitter) boundsCheck(count uint64) {
	if count == 0 {
		return
	}
	e.w.Open("if index < 0 || index >= %d {", count)
	e.w.Line(`panic("index out of range")`)
	e.w.Close("}")
}
