// Package reg describes registers and bit-fields as plain values.
//
// A descriptor names a data-space address and, for bits and fields, a
// position inside that byte. Descriptors carry no state; every access goes
// through the mmio.Space passed by the caller.
package reg

import "avrhal-go/mmio"

// Reg8 is the data-space address of an 8-bit register.
type Reg8 uintptr

func (r Reg8) Read(s mmio.Space) uint8     { return s.Load8(uintptr(r)) }
func (r Reg8) Write(s mmio.Space, v uint8) { s.Store8(uintptr(r), v) }

// Modify performs a read-modify-write clearing the clear mask, then setting
// the set mask.
func (r Reg8) Modify(s mmio.Space, clear, set uint8) {
	v := s.Load8(uintptr(r))
	s.Store8(uintptr(r), (v&^clear)|set)
}

func (r Reg8) Valid() bool { return r != 0 }

// Reg16 is a 16-bit register split into two data-space bytes. The high byte
// goes through the shared TEMP latch, so it is written first.
type Reg16 struct {
	Lo, Hi Reg8
}

func (r Reg16) Write(s mmio.Space, v uint16) {
	r.Hi.Write(s, uint8(v>>8))
	r.Lo.Write(s, uint8(v))
}

func (r Reg16) Valid() bool { return r.Lo.Valid() && r.Hi.Valid() && r.Lo != r.Hi }

// Bit is a single named bit of a register.
type Bit struct {
	Reg Reg8
	Pos uint8
}

func (b Bit) Mask() uint8 { return 1 << b.Pos }

func (b Bit) IsSet(s mmio.Space) bool { return b.Reg.Read(s)&b.Mask() != 0 }

// Set and Clear are read-modify-write on the owning register.
func (b Bit) Set(s mmio.Space)   { b.Reg.Modify(s, 0, b.Mask()) }
func (b Bit) Clear(s mmio.Space) { b.Reg.Modify(s, b.Mask(), 0) }

// Put sets or clears the bit.
func (b Bit) Put(s mmio.Space, on bool) {
	if on {
		b.Set(s)
	} else {
		b.Clear(s)
	}
}

func (b Bit) Valid() bool { return b.Reg.Valid() && b.Pos < 8 }

// In reports whether the bit lives in register r.
func (b Bit) In(r Reg8) bool { return b.Valid() && b.Reg == r }

// Field is a contiguous run of Width bits starting at Shift.
type Field struct {
	Reg   Reg8
	Shift uint8
	Width uint8
}

func (f Field) Mask() uint8 { return uint8((1<<f.Width)-1) << f.Shift }

// Bits places v at the field position, truncating to the field width.
func (f Field) Bits(v uint8) uint8 { return (v << f.Shift) & f.Mask() }

// Masked returns the register value with only the field bits kept, left in
// place. Status codes are compared this way.
func (f Field) Masked(s mmio.Space) uint8 { return f.Reg.Read(s) & f.Mask() }

// Put writes v into the field, leaving the other bits untouched.
func (f Field) Put(s mmio.Space, v uint8) { f.Reg.Modify(s, f.Mask(), f.Bits(v)) }

func (f Field) Valid() bool {
	return f.Reg.Valid() && f.Width > 0 && uint16(f.Shift)+uint16(f.Width) <= 8
}

func (f Field) In(r Reg8) bool { return f.Valid() && f.Reg == r }
