package spi

import (
	"avrhal-go/errcode"
	"avrhal-go/reg"
)

// Registers describes one SPI unit.
type Registers struct {
	Control reg.Reg8 // SPCRn
	Status  reg.Reg8 // SPSRn
	Data    reg.Reg8 // SPDRn

	// SPCRn bits.
	IntEnable reg.Bit   // SPIE
	Enable    reg.Bit   // SPE
	Order     reg.Bit   // DORD, 1 = LSB first
	Master    reg.Bit   // MSTR, cleared by hardware on a mode fault
	Polarity  reg.Bit   // CPOL
	Phase     reg.Bit   // CPHA
	Rate      reg.Field // SPR1:0

	// SPSRn bits.
	Flag      reg.Bit // SPIF
	Collision reg.Bit // WCOL
	Double    reg.Bit // SPI2X
}

func (r Registers) Validate() error {
	bad := errcode.Wrap(errcode.InvalidParams, "spi.registers")
	if !r.Control.Valid() || !r.Status.Valid() || !r.Data.Valid() {
		return bad
	}
	if r.Control == r.Status || r.Control == r.Data || r.Status == r.Data {
		return bad
	}
	for _, b := range [...]reg.Bit{r.IntEnable, r.Enable, r.Order, r.Master, r.Polarity, r.Phase} {
		if !b.In(r.Control) {
			return bad
		}
	}
	if !r.Rate.In(r.Control) {
		return bad
	}
	for _, b := range [...]reg.Bit{r.Flag, r.Collision, r.Double} {
		if !b.In(r.Status) {
			return bad
		}
	}
	return nil
}
