package twi

import (
	"avrhal-go/errcode"
	"avrhal-go/reg"
)

// Registers describes one TWI unit. The chip package provides one value per
// instance.
type Registers struct {
	Bitrate reg.Reg8 // TWBRn
	Status  reg.Reg8 // TWSRn
	Address reg.Reg8 // TWARn (slave address, unused in master mode)
	Data    reg.Reg8 // TWDRn
	Control reg.Reg8 // TWCRn

	// TWCRn bits.
	Int       reg.Bit // TWINT, set by hardware when a step completes; cleared by writing one
	Ack       reg.Bit // TWEA
	Start     reg.Bit // TWSTA
	Stop      reg.Bit // TWSTO
	Collision reg.Bit // TWWC
	Enable    reg.Bit // TWEN

	// TWSRn fields.
	Code      reg.Field // TWS7:3, compared in place
	Prescaler reg.Field // TWPS1:0
}

func (r Registers) Validate() error {
	regs := [...]reg.Reg8{r.Bitrate, r.Status, r.Address, r.Data, r.Control}
	for i, a := range regs {
		if !a.Valid() {
			return errcode.Wrap(errcode.InvalidParams, "twi.registers")
		}
		for _, b := range regs[:i] {
			if a == b {
				return errcode.Wrap(errcode.InvalidParams, "twi.registers")
			}
		}
	}
	for _, b := range [...]reg.Bit{r.Int, r.Ack, r.Start, r.Stop, r.Collision, r.Enable} {
		if !b.In(r.Control) {
			return errcode.Wrap(errcode.InvalidParams, "twi.registers")
		}
	}
	if !r.Code.In(r.Status) || !r.Prescaler.In(r.Status) || r.Code.Mask()&r.Prescaler.Mask() != 0 {
		return errcode.Wrap(errcode.InvalidParams, "twi.registers")
	}
	return nil
}

// Master-mode status codes, TWS bits in place.
const (
	statusStart      = 0x08
	statusRepStart   = 0x10
	statusMTSlaAck   = 0x18
	statusMTSlaNack  = 0x20
	statusMTDataAck  = 0x28
	statusMTDataNack = 0x30
	statusArbLost    = 0x38
	statusMRSlaAck   = 0x40
	statusMRSlaNack  = 0x48
	statusMRDataAck  = 0x50
	statusMRDataNack = 0x58
)
