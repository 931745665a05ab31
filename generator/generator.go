// Package generator emits Go source with volatile register accessors for a
// resolved device.
package generator

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/imports"

	"omibyte.io/svdgen/similar"
	"omibyte.io/svdgen/svd"
)

// Generate writes the accessor source for d to w. The device must already
// have its derivations resolved and its properties cascaded. Nothing is
// written to w unless generation succeeds.
func Generate(w io.Writer, d *svd.Device, opts Options) error {
	e := &emitter{
		device:      d,
		opts:        opts,
		peripherals: make(map[string]*svd.Peripheral, len(d.Peripherals)),
		declared:    map[string]bool{"unsafe": true, "volatile": true},
		methods:     map[string]map[string]bool{},
		wrappers:    map[*svd.Register]string{},
	}
	for _, p := range d.Peripherals {
		if _, ok := e.peripherals[p.Name]; !ok {
			e.peripherals[p.Name] = p
		}
	}

	src, err := e.emit()
	if err != nil {
		return err
	}

	if opts.Format {
		fname := opts.packageName(d.Name) + ".go"
		src, err = imports.Process(fname, src, &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		})
		if err != nil {
			return fmt.Errorf("error formatting %s: %w", fname, err)
		}
	}

	_, err = w.Write(src)
	return err
}

type emitter struct {
	device *svd.Device
	opts   Options
	w      *Writer

	// peripherals indexes the device peripherals by name.
	peripherals map[string]*svd.Peripheral

	// declared holds every package level identifier emitted so far.
	declared map[string]bool
	// methods holds the method names per receiver type.
	methods map[string]map[string]bool
	// wrappers maps a register definition to its declared type name.
	wrappers map[*svd.Register]string
	pending  []wrapper

	usesMemory bool
}

func (e *emitter) emit() ([]byte, error) {
	var body bytes.Buffer
	e.w = NewWriter(&body)

	var units []similar.Unit
	if e.opts.GroupPeripherals {
		units = similar.GroupPeripherals(e.device.Peripherals, similar.Options{IgnoreFields: e.opts.IgnoreFields})
	} else {
		units = similar.Individually(e.device.Peripherals)
	}

	for _, unit := range units {
		if err := e.emitUnit(unit); err != nil {
			return nil, fmt.Errorf("peripheral %s: %w", unit.Name, err)
		}
	}

	if e.opts.WithInterrupts {
		e.emitInterrupts()
	}

	if err := e.w.Err(); err != nil {
		return nil, err
	}
	if depth := e.w.Depth(); depth != 0 {
		return nil, fmt.Errorf("unbalanced scopes, depth %d at end of file", depth)
	}

	var out bytes.Buffer
	hw := NewWriter(&out)
	e.writePreamble(hw)
	if err := hw.Err(); err != nil {
		return nil, err
	}
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func (e *emitter) writePreamble(w *Writer) {
	w.Line("// Code generated by svd-gen. DO NOT EDIT.")
	w.Line("")

	if len(e.opts.BuildTag) > 0 {
		w.Line("//go:build %s", e.opts.BuildTag)
		w.Line("")
	}

	pkg := e.opts.packageName(e.device.Name)
	w.Line("// Package %s provides register access for the %s device.", pkg, e.device.Name)
	if e.opts.WithDoc && len(collapse(e.device.Description)) > 0 {
		w.Line("//")
		w.Comment(e.device.Description)
	}
	w.Line("package %s", pkg)

	if !e.usesMemory {
		return
	}

	volatile := strconv.Quote(e.opts.volatileImport())
	paths := []string{volatile, strconv.Quote("unsafe")}
	slices.Sort(paths)

	w.Line("")
	w.Open("import (")
	for _, path := range paths {
		if alias := e.opts.volatileAlias(); len(alias) > 0 && path == volatile {
			w.Line("%s %s", alias, path)
		} else {
			w.Line("%s", path)
		}
	}
	w.Close(")")
}

// declare reserves a package level identifier. A name that is already in
// use gets the suffix _N with the smallest unused N.
func (e *emitter) declare(name string) string {
	name = cleanIdentifier(name)
	if e.declared[name] {
		for n := 0; ; n++ {
			candidate := fmt.Sprintf("%s_%d", name, n)
			if !e.declared[candidate] {
				name = candidate
				break
			}
		}
	}
	e.declared[name] = true
	return name
}

// method reserves a method name on the receiver type.
func (e *emitter) method(receiver, name string) string {
	set, ok := e.methods[receiver]
	if !ok {
		set = map[string]bool{}
		e.methods[receiver] = set
	}

	name = cleanIdentifier(name)
	if set[name] {
		for n := 0; ; n++ {
			candidate := fmt.Sprintf("%s_%d", name, n)
			if !set[candidate] {
				name = candidate
				break
			}
		}
	}
	set[name] = true
	return name
}

// doc writes a doc comment for ident when descriptions are enabled.
func (e *emitter) doc(ident, description string) {
	if !e.opts.WithDoc {
		return
	}
	if description = collapse(description); len(description) > 0 {
		e.w.Comment(ident + " " + description)
	}
}
