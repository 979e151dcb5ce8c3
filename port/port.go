// Package port implements GPIO pins whose direction is part of their type.
//
// A line is an empty struct type naming one bit of one port group, for
// example m328pb.PB5 in group m328pb.PortB. Pins are values of Input,
// Output or Analog parameterized by group and line, so a function that
// needs an output on PB5 says so in its signature and anything else fails
// to compile.
//
// Each transition returns a new pin value and retires the old one. Pins are
// ordinary Go values and can be copied, so the Bank keeps a generation per
// line: using a retired copy panics with errcode.PinMoved.
package port

import (
	"avrhal-go/errcode"
	"avrhal-go/mmio"
	"avrhal-go/reg"
)

// Group is implemented by the port group types of a chip.
type Group interface {
	Letter() byte
}

// Line is implemented by the per-bit line types of group G. Group returns
// the exact group type, so a line of another port does not satisfy
// Line[G].
type Line[G Group] interface {
	Group() G
	Bit() uint8
}

// AnalogLine is a line that doubles as an ADC input.
type AnalogLine[G Group] interface {
	Line[G]
	Channel() uint8
}

// Pull selects the input mode of a pin.
type Pull interface {
	Floating | PullUp
}

// Floating is a high-impedance input.
type Floating struct{}

// PullUp is an input with the internal pull-up enabled.
type PullUp struct{}

// Registers of one port.
type Registers struct {
	Pin  reg.Reg8 // PINx, input levels; writing ones toggles PORTx
	DDR  reg.Reg8 // DDRx, 1 = output
	Port reg.Reg8 // PORTx, output level or pull-up enable
}

func (r Registers) Validate() error {
	if !r.Pin.Valid() || !r.DDR.Valid() || !r.Port.Valid() {
		return errcode.Wrap(errcode.InvalidParams, "port.registers")
	}
	if r.Pin == r.DDR || r.Pin == r.Port || r.DDR == r.Port {
		return errcode.Wrap(errcode.InvalidParams, "port.registers")
	}
	return nil
}

// Bank tracks the live pin values and owners of one port.
type Bank struct {
	s      mmio.Space
	regs   Registers
	letter byte

	gen   [8]uint32
	owner [8]string
}

// NewBank returns the bookkeeping for one port. It touches no register.
func NewBank(s mmio.Space, letter byte, regs Registers) *Bank {
	return &Bank{s: s, regs: regs, letter: letter}
}

// Owner returns the driver holding a line, or "" when the line is free.
func (b *Bank) Owner(bit uint8) string { return b.owner[bit&7] }

// DDR is the right to change pin directions on group G. It is handed out
// once per port, by Split.
type DDR[G Group] struct {
	b *Bank
}

func NewDDR[G Group](b *Bank) *DDR[G] { return &DDR[G]{b: b} }

// DIDR is the digital input disable register of the analog lines.
type DIDR struct {
	Reg reg.Reg8
}

// Initial returns line L in its reset state, a floating input. It is meant
// for Split and writes nothing.
func Initial[G Group, L Line[G]](ddr *DDR[G]) Input[G, L, Floating] {
	var l L
	return Input[G, L, Floating]{pin{b: ddr.b, bit: l.Bit(), gen: ddr.b.gen[l.Bit()]}}
}
