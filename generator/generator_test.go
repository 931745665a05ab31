package generator

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/svdgen/svd"
)

const uartGolden = `// Code generated by svd-gen. DO NOT EDIT.

// Package test provides register access for the TEST device.
package test

import (
	"runtime/volatile"
	"unsafe"
)

type UART0_Type struct{}

var UART0 UART0_Type

func (p UART0_Type) ReadDR() uint8 {
	return volatile.LoadUint8((*uint8)(unsafe.Pointer(uintptr(0x40000000))))
}

func (p UART0_Type) WriteDR(value uint8) {
	volatile.StoreUint8((*uint8)(unsafe.Pointer(uintptr(0x40000000))), value)
}

// Interrupt numbers.
const (
	IRQ_UART0 = 5
)
`

func register(name string, offset, size uint64, fields ...*svd.Field) svd.RegisterOrCluster {
	return svd.RegisterOrCluster{Register: &svd.Register{
		Name:          name,
		AddressOffset: offset,
		Properties:    svd.RegisterProperties{Size: svd.Uint64(size)},
		Fields:        fields,
	}}
}

func field(name string, lsb, width uint64) *svd.Field {
	return &svd.Field{Name: name, BitRange: svd.BitRange{LSB: lsb, MSB: lsb + width - 1}}
}

func device(peripherals ...*svd.Peripheral) *svd.Device {
	return &svd.Device{Name: "TEST", AddressUnitBits: 8, Width: 32, Peripherals: peripherals}
}

func generate(t *testing.T, d *svd.Device, opts Options) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, d, opts))

	_, err := parser.ParseFile(token.NewFileSet(), "test.go", buf.Bytes(), parser.ParseComments)
	require.NoError(t, err, buf.String())
	return buf.String()
}

func assertLines(t *testing.T, src string, lines ...string) {
	t.Helper()
	for _, line := range lines {
		assert.Contains(t, src, line+"\n")
	}
}

func TestGenerateGolden(t *testing.T) {
	d := device(&svd.Peripheral{
		Name:        "UART0",
		BaseAddress: 0x40000000,
		Registers:   []svd.RegisterOrCluster{register("DR", 0, 8)},
		Interrupts:  []svd.Interrupt{{Name: "UART0", Value: 5}},
	})

	src := generate(t, d, Options{WithFields: true, WithInterrupts: true})
	assert.Equal(t, uartGolden, src)
}

func TestGenerateFields(t *testing.T) {
	mode := field("MODE", 1, 2)
	mode.Access = svd.ReadOnly
	mode.EnumeratedValues = []*svd.EnumeratedValues{{
		Values: []svd.EnumeratedValue{
			{Name: "Slow", Value: 0},
			{Name: "Fast", Value: 1},
			{Name: "Other", IsDefault: true},
		},
	}}

	d := device(&svd.Peripheral{
		Name:        "UART0",
		BaseAddress: 0x40000000,
		Registers: []svd.RegisterOrCluster{
			register("CTRL", 4, 32,
				field("EN", 0, 1),
				mode,
				field("CH0", 4, 4),
				field("CH1", 8, 4),
				field("CH2", 12, 4),
			),
		},
	})

	src := generate(t, d, DefaultOptions())
	assertLines(t, src,
		"type UART0_CTRL uint32",
		"func (p UART0_Type) ReadCTRL() UART0_CTRL {",
		"\treturn UART0_CTRL(volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(0x40000004)))))",
		"func (p UART0_Type) WriteCTRL(value UART0_CTRL) {",
		"\tvolatile.StoreUint32((*uint32)(unsafe.Pointer(uintptr(0x40000004))), uint32(value))",

		"func (r UART0_CTRL) CH(index int) uint32 {",
		"\tif index < 0 || index >= 3 {",
		"\t\tpanic(\"index out of range\")",
		"\tlsb := uint(4 + index*4)",
		"\treturn uint32(r>>lsb) & 0xf",
		"func (r *UART0_CTRL) SetCH(index int, value uint32) {",
		"\t*r = *r&^(0xf<<lsb) | UART0_CTRL(value)<<lsb&(0xf<<lsb)",

		"func (r UART0_CTRL) EN() bool {",
		"\treturn r&0x1 != 0",
		"func (r *UART0_CTRL) SetEN(value bool) {",
		"\t\t*r |= 0x1",
		"\t} else {",
		"\t\t*r &^= 0x1",

		"func (r UART0_CTRL) MODE() uint32 {",
		"\treturn uint32(r>>1) & 0x3",

		"\tUART0_CTRL_MODE_Slow = 0x0",
		"\tUART0_CTRL_MODE_Fast = 0x1",
	)
	assert.NotContains(t, src, "SetMODE")
	assert.NotContains(t, src, "Other")
	assert.NotContains(t, src, "CH0")
}

func TestGenerateFieldsWithoutGrouping(t *testing.T) {
	d := device(&svd.Peripheral{
		Name:        "UART0",
		BaseAddress: 0x40000000,
		Registers: []svd.RegisterOrCluster{
			register("CTRL", 0, 16, field("EN", 0, 1), field("CH0", 4, 4), field("CH1", 8, 4)),
		},
	})

	src := generate(t, d, Options{WithFields: true})
	assertLines(t, src,
		"type UART0_CTRL uint16",
		"func (r UART0_CTRL) EN() uint16 {",
		"\treturn uint16(r>>0) & 0x1",
		"func (r UART0_CTRL) CH1() uint16 {",
		"\treturn uint16(r>>8) & 0xf",
		"func (r *UART0_CTRL) SetCH1(value uint16) {",
		"\t*r = *r&^0xf00 | UART0_CTRL(value)<<8&0xf00",
	)
	assert.NotContains(t, src, "index")
}

func TestGenerateWrapperSelection(t *testing.T) {
	d := device(&svd.Peripheral{
		Name:        "ADC",
		BaseAddress: 0x40020000,
		Registers: []svd.RegisterOrCluster{
			register("RESULT", 0, 16, field("RESULT", 0, 16)),
			register("STATUS", 4, 8, field("READY", 3, 1)),
			register("PLAIN", 8, 32),
		},
	})

	src := generate(t, d, DefaultOptions())
	assertLines(t, src,
		"func (p ADC_Type) ReadRESULT() uint16 {",
		"func (p ADC_Type) ReadSTATUS() ADC_STATUS {",
		"type ADC_STATUS uint8",
		"\treturn r&0x8 != 0",
		"func (p ADC_Type) ReadPLAIN() uint32 {",
	)
	assert.NotContains(t, src, "ADC_RESULT")
	assert.NotContains(t, src, "ADC_PLAIN")

	src = generate(t, d, Options{})
	assert.NotContains(t, src, "ADC_STATUS")
}

func TestGenerateAccess(t *testing.T) {
	status := register("STATUS", 0, 32)
	status.Register.Properties.Access = svd.ReadOnly
	command := register("COMMAND", 4, 32)
	command.Register.Properties.Access = svd.WriteOnly

	d := device(&svd.Peripheral{
		Name:        "DMA",
		BaseAddress: 0x1000,
		Registers:   []svd.RegisterOrCluster{status, command},
	})

	src := generate(t, d, DefaultOptions())
	assert.Contains(t, src, "ReadSTATUS")
	assert.NotContains(t, src, "WriteSTATUS")
	assert.Contains(t, src, "WriteCOMMAND")
	assert.NotContains(t, src, "ReadCOMMAND")
}

func TestGenerateGroups(t *testing.T) {
	registers := func() []svd.RegisterOrCluster {
		return []svd.RegisterOrCluster{register("CNT", 8, 16)}
	}

	d := device(
		&svd.Peripheral{Name: "TIMER0", BaseAddress: 0x40010000, Registers: registers()},
		&svd.Peripheral{Name: "TIMER1", BaseAddress: 0x40011000, Registers: registers()},
	)

	src := generate(t, d, DefaultOptions())
	assertLines(t, src,
		"type TIMER_Type struct {",
		"\tBaseAddress uintptr",
		"\tTIMER0 = TIMER_Type{BaseAddress: 0x40010000}",
		"\tTIMER1 = TIMER_Type{BaseAddress: 0x40011000}",
		"func (p TIMER_Type) ReadCNT() uint16 {",
		"\treturn volatile.LoadUint16((*uint16)(unsafe.Pointer(p.BaseAddress + 0x8)))",
	)

	src = generate(t, d, Options{})
	assertLines(t, src,
		"type TIMER0_Type struct{}",
		"var TIMER1 TIMER1_Type",
		"\treturn volatile.LoadUint16((*uint16)(unsafe.Pointer(uintptr(0x40011008))))",
	)
}

func TestGenerateGroupInheritsAncestorRegisters(t *testing.T) {
	base := &svd.Peripheral{
		Name:        "PORTA",
		BaseAddress: 0x1000,
		Registers:   []svd.RegisterOrCluster{register("DIR", 0, 32), register("OUT", 4, 32)},
	}
	derived := &svd.Peripheral{
		Name:        "PORTB",
		BaseAddress: 0x2000,
		Registers:   []svd.RegisterOrCluster{register("DIR", 0, 32)},
		Lineage:     []string{"PORTA"},
	}
	second := &svd.Peripheral{
		Name:        "PORTC",
		BaseAddress: 0x3000,
		Registers:   []svd.RegisterOrCluster{register("DIR", 0, 32)},
		Lineage:     []string{"PORTA"},
	}

	src := generate(t, device(derived, second, base), DefaultOptions())
	assertLines(t, src,
		"type PORT_Type struct {",
		"func (p PORT_Type) ReadOUT() uint32 {",
	)
}

func TestGenerateArrays(t *testing.T) {
	data := register("DATA[%s]", 0x20, 32)
	data.Register.Dim = svd.DimElement{Dim: svd.Uint64(4), Increment: svd.Uint64(4)}
	buf := register("BUF%s", 0x30, 32)
	buf.Register.Dim = svd.DimElement{Dim: svd.Uint64(2), Increment: svd.Uint64(4), Index: "A,B"}

	d := device(&svd.Peripheral{
		Name:        "UART0",
		BaseAddress: 0x40000000,
		Registers:   []svd.RegisterOrCluster{data, buf},
	})

	src := generate(t, d, DefaultOptions())
	assertLines(t, src,
		"func (p UART0_Type) ReadDATA(index int) uint32 {",
		"\tif index < 0 || index >= 4 {",
		"\treturn volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(0x40000020) + uintptr(index)*0x4)))",
		"func (p UART0_Type) WriteDATA(index int, value uint32) {",
		"func (p UART0_Type) ReadBUFA() uint32 {",
		"\treturn volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(0x40000034))))",
	)
}

func TestGenerateClusters(t *testing.T) {
	cluster := func() []svd.RegisterOrCluster {
		return []svd.RegisterOrCluster{{Cluster: &svd.Cluster{
			Name:          "CH[%s]",
			AddressOffset: 0x10,
			Dim:           svd.DimElement{Dim: svd.Uint64(2), Increment: svd.Uint64(0x8)},
			Children: []svd.RegisterOrCluster{
				register("CTRL", 4, 32, field("EN", 0, 1), field("MODE", 1, 2)),
			},
		}}}
	}

	d := device(
		&svd.Peripheral{Name: "DMA0", BaseAddress: 0x1000, Registers: cluster()},
		&svd.Peripheral{Name: "DMA1", BaseAddress: 0x2000, Registers: cluster()},
	)

	var buf bytes.Buffer
	err := Generate(&buf, d, DefaultOptions())
	assert.True(t, errors.Is(err, svd.ErrUnsupportedFeature), err)
	assert.Zero(t, buf.Len())

	opts := DefaultOptions()
	opts.GroupPeripherals = false
	src := generate(t, d, opts)
	assertLines(t, src,
		"func (p DMA0_Type) ReadCH0_CTRL() DMA0_CH_CTRL {",
		"\treturn DMA0_CH_CTRL(volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(0x1014)))))",
		"func (p DMA0_Type) ReadCH1_CTRL() DMA0_CH_CTRL {",
		"\treturn DMA0_CH_CTRL(volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(0x101c)))))",
		"type DMA0_CH_CTRL uint32",
		"type DMA1_CH_CTRL uint32",
	)
	assert.Equal(t, 1, strings.Count(src, "type DMA0_CH_CTRL uint32"))
}

func TestGenerateUnsupported(t *testing.T) {
	tests := []struct {
		name     string
		register svd.RegisterOrCluster
	}{
		{"odd register size", register("DR", 0, 24)},
		{"field beyond register", register("DR", 0, 8, field("X", 6, 4))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := device(&svd.Peripheral{
				Name:        "UART0",
				BaseAddress: 0x40000000,
				Registers:   []svd.RegisterOrCluster{register("OK", 0, 32), tc.register},
			})

			var buf bytes.Buffer
			err := Generate(&buf, d, DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, svd.ErrUnsupportedFeature))
			assert.Zero(t, buf.Len())
		})
	}
}

func TestGenerateDefaultSize(t *testing.T) {
	d := device(&svd.Peripheral{
		Name:        "UART0",
		BaseAddress: 0x40000000,
		Registers:   []svd.RegisterOrCluster{{Register: &svd.Register{Name: "DR"}}},
	})

	src := generate(t, d, DefaultOptions())
	assert.Contains(t, src, "func (p UART0_Type) ReadDR() uint32 {")
}

func TestGenerateInterrupts(t *testing.T) {
	d := device(
		&svd.Peripheral{Name: "TIMER", Interrupts: []svd.Interrupt{{Name: "TIMER", Value: 9, Description: "Timer\n   overflow"}}},
		&svd.Peripheral{Name: "UART", Interrupts: []svd.Interrupt{{Name: "UART", Value: 3}, {Name: "TIMER", Value: 9}}},
	)

	src := generate(t, d, DefaultOptions())
	assertLines(t, src,
		"\t// IRQ_TIMER Timer overflow",
	)
	assert.Less(t, strings.Index(src, "IRQ_UART = 3"), strings.Index(src, "IRQ_TIMER = 9"))
	assert.Equal(t, 1, strings.Count(src, "IRQ_TIMER = 9"))

	// Peripherals without registers need no memory access.
	assert.NotContains(t, src, "import")
}

func TestGenerateHeader(t *testing.T) {
	d := device(&svd.Peripheral{Name: "UART0", Registers: []svd.RegisterOrCluster{register("DR", 0, 8)}})
	d.Description = "Test   device\nfor tests"

	opts := DefaultOptions()
	opts.BuildTag = "test"
	opts.Package = "chip"
	opts.VolatileImport = "omibyte.io/sigo/runtime/mmio"
	src := generate(t, d, opts)

	assert.True(t, strings.HasPrefix(src, "// Code generated by svd-gen. DO NOT EDIT.\n\n//go:build test\n\n"))
	assertLines(t, src,
		"// Package chip provides register access for the TEST device.",
		"// Test device for tests",
		"package chip",
		"\tvolatile \"omibyte.io/sigo/runtime/mmio\"",
	)
}

func TestGenerateFormat(t *testing.T) {
	d := device(&svd.Peripheral{
		Name:        "UART0",
		BaseAddress: 0x40000000,
		Registers:   []svd.RegisterOrCluster{register("CTRL", 0, 32, field("EN", 0, 1), field("MODE", 1, 2))},
	})

	opts := DefaultOptions()
	opts.Format = true
	src := generate(t, d, opts)
	assert.Contains(t, src, "package test\n")
	assert.Contains(t, src, "func (r UART0_CTRL) MODE() uint32 {")
}

func TestGenerateUniqueIdentifiers(t *testing.T) {
	d := device(
		&svd.Peripheral{Name: "UART0", Registers: []svd.RegisterOrCluster{register("Type", 0, 32, field("A", 0, 1), field("B", 1, 1))}},
	)

	src := generate(t, d, DefaultOptions())
	assertLines(t, src,
		"type UART0_Type struct{}",
		"type UART0_Type_0 uint32",
		"func (p UART0_Type) ReadType() UART0_Type_0 {",
	)
}

func TestGenerateDistinctWrappers(t *testing.T) {
	opts := DefaultOptions()
	opts.GroupPeripherals = false

	// Register A_B and register B of cluster A clean to the same type name.
	d := device(&svd.Peripheral{
		Name:        "P",
		BaseAddress: 0x40000000,
		Registers: []svd.RegisterOrCluster{
			register("A_B", 0, 32, field("X", 0, 4), field("Y", 4, 4)),
			{Cluster: &svd.Cluster{
				Name:          "A",
				AddressOffset: 0x10,
				Children:      []svd.RegisterOrCluster{register("B", 0, 16, field("Q", 0, 4), field("Z", 4, 4))},
			}},
		},
	})

	src := generate(t, d, opts)
	assertLines(t, src,
		"type P_A_B uint32",
		"type P_A_B_0 uint16",
		"func (p P_Type) ReadA_B() P_A_B {",
		"func (p P_Type) ReadA_B_0() P_A_B_0 {",
		"\treturn P_A_B_0(volatile.LoadUint16((*uint16)(unsafe.Pointer(uintptr(0x40000010)))))",
		"func (r P_A_B) X() uint32 {",
		"func (r P_A_B_0) Q() uint16 {",
		"func (r *P_A_B_0) SetZ(value uint16) {",
	)
	assert.NotContains(t, src, "func (r P_A_B) Q()")

	// Unit A with register B_C and unit A_B with register C.
	d = device(
		&svd.Peripheral{Name: "A", Registers: []svd.RegisterOrCluster{register("B_C", 0, 32, field("X", 0, 4), field("Y", 4, 4))}},
		&svd.Peripheral{Name: "A_B", Registers: []svd.RegisterOrCluster{register("C", 0, 16, field("Q", 0, 4), field("Z", 4, 4))}},
	)

	src = generate(t, d, opts)
	assertLines(t, src,
		"type A_B_C uint32",
		"type A_B_C_0 uint16",
		"func (p A_Type) ReadB_C() A_B_C {",
		"func (p A_B_Type) ReadC() A_B_C_0 {",
		"func (r A_B_C_0) Q() uint16 {",
	)
}

func TestGeneratePointers(t *testing.T) {
	data := register("DATA[%s]", 0x20, 32)
	data.Register.Dim = svd.DimElement{Dim: svd.Uint64(4), Increment: svd.Uint64(4)}

	d := device(
		&svd.Peripheral{Name: "UART0", BaseAddress: 0x40000000, Registers: []svd.RegisterOrCluster{register("DR", 0, 8), data}},
		&svd.Peripheral{Name: "UART1", BaseAddress: 0x40001000, Registers: []svd.RegisterOrCluster{register("DR", 0, 8), data}},
	)

	src := generate(t, d, DefaultOptions())
	assert.NotContains(t, src, "Ptr")

	opts := DefaultOptions()
	opts.WithPointers = true
	src = generate(t, d, opts)
	assertLines(t, src,
		"// PtrDR returns the address of the DR register.",
		"func (p UART_Type) PtrDR() *uint8 {",
		"\treturn (*uint8)(unsafe.Pointer(p.BaseAddress + 0x0))",
		"func (p UART_Type) PtrDATA(index int) *uint32 {",
		"\treturn (*uint32)(unsafe.Pointer(p.BaseAddress + 0x20 + uintptr(index)*0x4))",
	)

	opts.GroupPeripherals = false
	src = generate(t, d, opts)
	assertLines(t, src,
		"func (p UART0_Type) PtrDR() *uint8 {",
		"\treturn (*uint8)(unsafe.Pointer(uintptr(0x40000000)))",
	)
}
