package generator

import (
	"fmt"

	"omibyte.io/svdgen/similar"
	"omibyte.io/svdgen/svd"
)

// wrapper is a named register value type carrying field accessors.
type wrapper struct {
	name     string
	storage  string
	register *svd.Register
}

// needsWrapper reports whether a register value gets its own type. That is
// the case when it has more than one field, or a single field narrower
// than the register.
func (e *emitter) needsWrapper(r *svd.Register, size uint64) bool {
	if !e.opts.WithFields {
		return false
	}
	switch len(r.Fields) {
	case 0:
		return false
	case 1:
		return r.Fields[0].BitRange.Width() < size
	default:
		return true
	}
}

// wrapper returns the type name of the register definition, queueing its
// declaration the first time it is seen. Distinct registers whose names
// clean to the same identifier get distinct types.
func (e *emitter) wrapper(typeName string, r *svd.Register, storage string) string {
	if name, ok := e.wrappers[r]; ok {
		return name
	}

	name := e.declare(typeName)
	e.wrappers[r] = name
	e.pending = append(e.pending, wrapper{name: name, storage: storage, register: r})
	return name
}

func (e *emitter) emitWrapper(wr wrapper) {
	r := wr.register

	e.w.Line("")
	e.doc(wr.name, r.Description)
	e.w.Line("type %s %s", wr.name, wr.storage)

	fields := r.Fields
	var groups []similar.FieldGroup
	if e.opts.GroupFields {
		groups, fields = similar.GroupFields(fields)
	}

	for _, g := range groups {
		e.emitFieldGroup(wr, g, fieldAccess(g.Access, r))
	}
	for _, f := range fields {
		e.emitField(wr, f, fieldAccess(f.Access, r))
	}

	if e.opts.WithEnums {
		e.emitEnums(wr)
	}
}

// fieldAccess returns the access of a field, falling back to the access of
// its register.
func fieldAccess(access svd.Access, r *svd.Register) svd.Access {
	if access != svd.AccessUnspecified {
		return access
	}
	return r.Properties.Access
}

func (e *emitter) emitField(wr wrapper, f *svd.Field, access svd.Access) {
	lsb := f.BitRange.LSB
	mask := fieldMask(f.BitRange.Width())
	flag := e.opts.BoolFields && f.BitRange.Width() == 1

	if access.CanRead() {
		name := e.method(wr.name, f.Name)
		e.w.Line("")
		e.doc(name, f.Description)
		if flag {
			e.w.Open("func (r %s) %s() bool {", wr.name, name)
			e.w.Line("return r&%s != 0", hex(uint64(1)<<lsb))
		} else {
			e.w.Open("func (r %s) %s() %s {", wr.name, name, wr.storage)
			e.w.Line("return %s(r>>%d) & %s", wr.storage, lsb, hex(mask))
		}
		e.w.Close("}")
	}

	if access.CanWrite() {
		name := e.method(wr.name, "Set"+f.Name)
		e.w.Line("")
		e.doc(name, f.Description)
		if flag {
			e.w.Open("func (r *%s) %s(value bool) {", wr.name, name)
			e.setFlag(hex(uint64(1) << lsb))
		} else {
			e.w.Open("func (r *%s) %s(value %s) {", wr.name, name, wr.storage)
			e.w.Line("*r = *r&^%s | %s(value)<<%d&%s", hex(mask<<lsb), wr.name, lsb, hex(mask<<lsb))
		}
		e.w.Close("}")
	}
}

// emitFieldGroup writes indexed accessors covering every member of the
// group. The bit position of a member is computed from its index.
func (e *emitter) emitFieldGroup(wr wrapper, g similar.FieldGroup, access svd.Access) {
	mask := fieldMask(g.Width)
	flag := e.opts.BoolFields && g.Width == 1
	lsb := fmt.Sprintf("lsb := uint(%d + index*%d)", g.LSB, g.Stride)

	if access.CanRead() {
		name := e.method(wr.name, g.Prefix)
		e.w.Line("")
		e.doc(name, g.Description)
		if flag {
			e.w.Open("func (r %s) %s(index int) bool {", wr.name, name)
		} else {
			e.w.Open("func (r %s) %s(index int) %s {", wr.name, name, wr.storage)
		}
		e.boundsCheck(uint64(g.Count))
		e.w.Line("%s", lsb)
		if flag {
			e.w.Line("return r&(1<<lsb) != 0")
		} else {
			e.w.Line("return %s(r>>lsb) & %s", wr.storage, hex(mask))
		}
		e.w.Close("}")
	}

	if access.CanWrite() {
		name := e.method(wr.name, "Set"+g.Prefix)
		e.w.Line("")
		e.doc(name, g.Description)
		if flag {
			e.w.Open("func (r *%s) %s(index int, value bool) {", wr.name, name)
		} else {
			e.w.Open("func (r *%s) %s(index int, value %s) {", wr.name, name, wr.storage)
		}
		e.boundsCheck(uint64(g.Count))
		e.w.Line("%s", lsb)
		if flag {
			e.setFlag("1 << lsb")
		} else {
			e.w.Line("*r = *r&^(%s<<lsb) | %s(value)<<lsb&(%s<<lsb)", hex(mask), wr.name, hex(mask))
		}
		e.w.Close("}")
	}
}

func (e *emitter) setFlag(bit string) {
	e.w.Open("if value {")
	e.w.Line("*r |= %s", bit)
	e.w.Dedent()
	e.w.Open("} else {")
	e.w.Line("*r &^= %s", bit)
	e.w.Close("}")
}

// emitEnums writes one constant per named enumerated value of the register
// fields. Default entries and values with don't-care bits have no single
// value and are skipped.
func (e *emitter) emitEnums(wr wrapper) {
	type constant struct {
		name, description string
		value             uint64
	}

	var constants []constant
	for _, f := range wr.register.Fields {
		for _, ev := range f.EnumeratedValues {
			for _, v := range ev.Values {
				if v.IsDefault || v.DoNotCare != 0 || len(v.Name) == 0 {
					continue
				}
				constants = append(constants, constant{
					name:        e.declare(wr.name + "_" + f.Name + "_" + v.Name),
					description: v.Description,
					value:       v.Value,
				})
			}
		}
	}

	if len(constants) == 0 {
		return
	}

	e.w.Line("")
	e.w.Open("const (")
	for _, c := range constants {
		e.doc(c.name, c.description)
		e.w.Line("%s = %s", c.name, hex(c.value))
	}
	e.w.Close(")")
}
