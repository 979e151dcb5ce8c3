package twi

import "avrhal-go/reg"

func reg8(a uintptr) reg.Reg8 { return reg.Reg8(a) }

func bit(r reg.Reg8, pos uint8) reg.Bit { return reg.Bit{Reg: r, Pos: pos} }

func field(r reg.Reg8, shift, width uint8) reg.Field {
	return reg.Field{Reg: r, Shift: shift, Width: width}
}
