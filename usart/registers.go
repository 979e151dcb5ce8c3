package usart

import (
	"avrhal-go/errcode"
	"avrhal-go/reg"
)

// Banks start at UCSR0A and repeat every 8 bytes.
const (
	bankBase   = 0xC0
	bankStride = 8

	offCtrlA  = 0
	offCtrlB  = 1
	offCtrlC  = 2
	offBaudLo = 4
	offBaudHi = 5
	offData   = 6
)

// Registers describes one USART. Build it with Bank.
type Registers struct {
	Suffix uint8

	CtrlA reg.Reg8  // UCSRnA
	CtrlB reg.Reg8  // UCSRnB
	CtrlC reg.Reg8  // UCSRnC
	Baud  reg.Reg16 // UBRRnH:UBRRnL
	Data  reg.Reg8  // UDRn

	// UCSRnA bits.
	RxComplete  reg.Bit // RXCn
	TxComplete  reg.Bit // TXCn, cleared by writing one
	DataEmpty   reg.Bit // UDREn
	FrameErr    reg.Bit // FEn
	DataOverrun reg.Bit // DORn
	ParityErr   reg.Bit // UPEn
	DoubleSpeed reg.Bit // U2Xn

	// UCSRnB bits.
	RxEnable reg.Bit // RXENn
	TxEnable reg.Bit // TXENn

	// UCSRnC fields.
	CharSize reg.Field // UCSZn1:0
}

// Bank returns the register set of USARTn.
func Bank(n uint8) Registers {
	base := reg.Reg8(bankBase + bankStride*uintptr(n))
	a, b, c := base+offCtrlA, base+offCtrlB, base+offCtrlC
	return Registers{
		Suffix: n,
		CtrlA:  a,
		CtrlB:  b,
		CtrlC:  c,
		Baud:   reg.Reg16{Lo: base + offBaudLo, Hi: base + offBaudHi},
		Data:   base + offData,

		RxComplete:  reg.Bit{Reg: a, Pos: 7},
		TxComplete:  reg.Bit{Reg: a, Pos: 6},
		DataEmpty:   reg.Bit{Reg: a, Pos: 5},
		FrameErr:    reg.Bit{Reg: a, Pos: 4},
		DataOverrun: reg.Bit{Reg: a, Pos: 3},
		ParityErr:   reg.Bit{Reg: a, Pos: 2},
		DoubleSpeed: reg.Bit{Reg: a, Pos: 1},

		RxEnable: reg.Bit{Reg: b, Pos: 4},
		TxEnable: reg.Bit{Reg: b, Pos: 3},

		CharSize: reg.Field{Reg: c, Shift: 1, Width: 2},
	}
}

// Validate checks that r is the bank its suffix names.
func (r Registers) Validate() error {
	if r.Suffix > 1 || r != Bank(r.Suffix) {
		return errcode.Wrap(errcode.InvalidParams, "usart.registers")
	}
	return nil
}
