package port

import (
	"avrhal-go/errcode"
	"avrhal-go/x/conv"
)

// pin is the state shared by all directions.
type pin struct {
	b   *Bank
	bit uint8
	gen uint32
}

func (p *pin) base() *pin { return p }

func (p pin) mask() uint8 { return 1 << p.bit }

func (p pin) live() bool { return p.b != nil && p.b.gen[p.bit] == p.gen }

// must panics when p has been retired. The panic value is an *errcode.E.
func (p pin) must(op string) {
	if !p.live() {
		panic(&errcode.E{C: errcode.PinMoved, Op: op, Msg: p.Name()})
	}
}

// Name returns the conventional line name, e.g. "PB5".
func (p pin) Name() string {
	var buf [4]byte
	l := byte('?')
	if p.b != nil {
		l = p.b.letter
	}
	return "P" + string(l) + string(conv.Utoa(buf[:], uint64(p.bit)))
}

// next retires p and returns its successor after checking the DDR token.
func (p pin) next(op string, b *Bank) pin {
	p.must(op)
	if b != p.b {
		panic(errcode.Wrap(errcode.InvalidParams, op))
	}
	p.b.gen[p.bit]++
	return pin{b: p.b, bit: p.bit, gen: p.b.gen[p.bit]}
}

func (p pin) output(high bool) {
	r := p.b.regs
	if high {
		r.Port.Modify(p.b.s, 0, p.mask())
	} else {
		r.Port.Modify(p.b.s, p.mask(), 0)
	}
	r.DDR.Modify(p.b.s, 0, p.mask())
}

func (p pin) input(pullUp bool) {
	r := p.b.regs
	r.DDR.Modify(p.b.s, p.mask(), 0)
	if pullUp {
		r.Port.Modify(p.b.s, 0, p.mask())
	} else {
		r.Port.Modify(p.b.s, p.mask(), 0)
	}
}

func (p pin) level() bool { return p.b.regs.Pin.Read(p.b.s)&p.mask() != 0 }

// Input is line L of group G configured as input with pull mode P.
type Input[G Group, L Line[G], P Pull] struct {
	pin
}

func (p Input[G, L, P]) IntoOutput(ddr *DDR[G]) Output[G, L] {
	n := p.next("port.into_output", ddr.b)
	n.output(false)
	return Output[G, L]{n}
}

func (p Input[G, L, P]) IntoOutputHigh(ddr *DDR[G]) Output[G, L] {
	n := p.next("port.into_output_high", ddr.b)
	n.output(true)
	return Output[G, L]{n}
}

func (p Input[G, L, P]) IntoPullUpInput(ddr *DDR[G]) Input[G, L, PullUp] {
	n := p.next("port.into_pull_up_input", ddr.b)
	n.input(true)
	return Input[G, L, PullUp]{n}
}

func (p Input[G, L, P]) IntoFloatingInput(ddr *DDR[G]) Input[G, L, Floating] {
	n := p.next("port.into_floating_input", ddr.b)
	n.input(false)
	return Input[G, L, Floating]{n}
}

func (p Input[G, L, P]) IsHigh() bool {
	p.must("port.is_high")
	return p.level()
}

func (p Input[G, L, P]) IsLow() bool { return !p.IsHigh() }

// Output is line L of group G driven by the port.
type Output[G Group, L Line[G]] struct {
	pin
}

func (p Output[G, L]) IntoOutput(ddr *DDR[G]) Output[G, L] {
	n := p.next("port.into_output", ddr.b)
	n.output(false)
	return Output[G, L]{n}
}

func (p Output[G, L]) IntoOutputHigh(ddr *DDR[G]) Output[G, L] {
	n := p.next("port.into_output_high", ddr.b)
	n.output(true)
	return Output[G, L]{n}
}

func (p Output[G, L]) IntoPullUpInput(ddr *DDR[G]) Input[G, L, PullUp] {
	n := p.next("port.into_pull_up_input", ddr.b)
	n.input(true)
	return Input[G, L, PullUp]{n}
}

func (p Output[G, L]) IntoFloatingInput(ddr *DDR[G]) Input[G, L, Floating] {
	n := p.next("port.into_floating_input", ddr.b)
	n.input(false)
	return Input[G, L, Floating]{n}
}

func (p Output[G, L]) SetHigh() {
	p.must("port.set_high")
	p.b.regs.Port.Modify(p.b.s, 0, p.mask())
}

func (p Output[G, L]) SetLow() {
	p.must("port.set_low")
	p.b.regs.Port.Modify(p.b.s, p.mask(), 0)
}

// Toggle writes the bit to PINx, which flips PORTx in one store.
func (p Output[G, L]) Toggle() {
	p.must("port.toggle")
	p.b.regs.Pin.Write(p.b.s, p.mask())
}

// IsSetHigh reports the level the port is driving, not the pad level.
func (p Output[G, L]) IsSetHigh() bool {
	p.must("port.is_set_high")
	return p.b.regs.Port.Read(p.b.s)&p.mask() != 0
}

// Analog is an ADC input line with its digital input buffer disabled.
type Analog[G Group, L AnalogLine[G]] struct {
	pin
	didr *DIDR
}

// IntoAnalogInput only accepts lines wired to the ADC multiplexer.
func IntoAnalogInput[G Group, L AnalogLine[G], P Pull](p Input[G, L, P], ddr *DDR[G], didr *DIDR) Analog[G, L] {
	n := p.next("port.into_analog_input", ddr.b)
	n.input(false)
	var l L
	didr.Reg.Modify(n.b.s, 0, 1<<l.Channel())
	return Analog[G, L]{pin: n, didr: didr}
}

// IntoFloatingInput re-enables the digital input buffer.
func (p Analog[G, L]) IntoFloatingInput(ddr *DDR[G]) Input[G, L, Floating] {
	n := p.next("port.into_floating_input", ddr.b)
	var l L
	p.didr.Reg.Modify(n.b.s, 1<<l.Channel(), 0)
	n.input(false)
	return Input[G, L, Floating]{n}
}

// Channel is the ADC multiplexer channel of the line.
func (p Analog[G, L]) Channel() uint8 {
	var l L
	return l.Channel()
}
