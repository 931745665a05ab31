package generator

import (
	"golang.org/x/exp/slices"

	"omibyte.io/svdgen/svd"
)

// emitInterrupts writes an IRQ_ constant per distinct interrupt name,
// ordered by interrupt number.
func (e *emitter) emitInterrupts() {
	var interrupts []svd.Interrupt
	seen := map[string]bool{}
	for _, p := range e.device.Peripherals {
		for _, irq := range p.Interrupts {
			if !seen[irq.Name] {
				seen[irq.Name] = true
				interrupts = append(interrupts, irq)
			}
		}
	}

	if len(interrupts) == 0 {
		return
	}

	slices.SortStableFunc(interrupts, func(a, b svd.Interrupt) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})

	e.w.Line("")
	e.w.Comment("Interrupt numbers.")
	e.w.Open("const (")
	for _, irq := range interrupts {
		name := e.declare("IRQ_" + irq.Name)
		e.doc(name, irq.Description)
		e.w.Line("%s = %d", name, irq.Value)
	}
	e.w.Close(")")
}
