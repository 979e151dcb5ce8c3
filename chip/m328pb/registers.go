package m328pb

import (
	"avrhal-go/port"
	"avrhal-go/reg"
	"avrhal-go/spi"
	"avrhal-go/twi"
	"avrhal-go/usart"
	"avrhal-go/wdt"
)

// Data-space addresses (datasheet register summary).
const (
	addrPINB  = 0x23
	addrDDRB  = 0x24
	addrPORTB = 0x25
	addrPINC  = 0x26
	addrDDRC  = 0x27
	addrPORTC = 0x28
	addrPIND  = 0x29
	addrDDRD  = 0x2A
	addrPORTD = 0x2B
	addrPINE  = 0x2C
	addrDDRE  = 0x2D
	addrPORTE = 0x2E

	addrSPCR0  = 0x4C
	addrSPSR0  = 0x4D
	addrSPDR0  = 0x4E
	addrMCUSR  = 0x54
	addrWDTCSR = 0x60
	addrDIDR0  = 0x7E
	addrSPCR1  = 0xAC
	addrSPSR1  = 0xAD
	addrSPDR1  = 0xAE

	addrTWBR0 = 0xB8
	addrTWSR0 = 0xB9
	addrTWAR0 = 0xBA
	addrTWDR0 = 0xBB
	addrTWCR0 = 0xBC
	addrTWBR1 = 0xD8
	addrTWSR1 = 0xD9
	addrTWAR1 = 0xDA
	addrTWDR1 = 0xDB
	addrTWCR1 = 0xDC
)

// TWCRn / TWSRn bit positions.
const (
	bitTWINT = 7
	bitTWEA  = 6
	bitTWSTA = 5
	bitTWSTO = 4
	bitTWWC  = 3
	bitTWEN  = 2
)

// SPCRn / SPSRn bit positions.
const (
	bitSPIE  = 7
	bitSPE   = 6
	bitDORD  = 5
	bitMSTR  = 4
	bitCPOL  = 3
	bitCPHA  = 2
	bitSPIF  = 7
	bitWCOL  = 6
	bitSPI2X = 0
)

// WDTCSR / MCUSR bit positions.
const (
	bitWDIF = 7
	bitWDIE = 6
	bitWDP3 = 5
	bitWDCE = 4
	bitWDE  = 3
	bitWDRF = 3
)

var (
	portBRegs = port.Registers{Pin: addrPINB, DDR: addrDDRB, Port: addrPORTB}
	portCRegs = port.Registers{Pin: addrPINC, DDR: addrDDRC, Port: addrPORTC}
	portDRegs = port.Registers{Pin: addrPIND, DDR: addrDDRD, Port: addrPORTD}
	portERegs = port.Registers{Pin: addrPINE, DDR: addrDDRE, Port: addrPORTE}

	twi0Regs = twiRegisters(addrTWBR0, addrTWSR0, addrTWAR0, addrTWDR0, addrTWCR0)
	twi1Regs = twiRegisters(addrTWBR1, addrTWSR1, addrTWAR1, addrTWDR1, addrTWCR1)

	spi0Regs = spiRegisters(addrSPCR0, addrSPSR0, addrSPDR0)
	spi1Regs = spiRegisters(addrSPCR1, addrSPSR1, addrSPDR1)

	usart0Regs = usart.Bank(0)
	usart1Regs = usart.Bank(1)

	wdtRegs = wdt.Registers{
		Control:   addrWDTCSR,
		Status:    addrMCUSR,
		IntFlag:   reg.Bit{Reg: addrWDTCSR, Pos: bitWDIF},
		IntEnable: reg.Bit{Reg: addrWDTCSR, Pos: bitWDIE},
		Prescale3: reg.Bit{Reg: addrWDTCSR, Pos: bitWDP3},
		Change:    reg.Bit{Reg: addrWDTCSR, Pos: bitWDCE},
		Enable:    reg.Bit{Reg: addrWDTCSR, Pos: bitWDE},
		Prescale:  reg.Field{Reg: addrWDTCSR, Shift: 0, Width: 3},
		ResetFlag: reg.Bit{Reg: addrMCUSR, Pos: bitWDRF},
	}

	didr0 = reg.Reg8(addrDIDR0)
)

func twiRegisters(br, sr, ar, dr, cr reg.Reg8) twi.Registers {
	return twi.Registers{
		Bitrate:   br,
		Status:    sr,
		Address:   ar,
		Data:      dr,
		Control:   cr,
		Int:       reg.Bit{Reg: cr, Pos: bitTWINT},
		Ack:       reg.Bit{Reg: cr, Pos: bitTWEA},
		Start:     reg.Bit{Reg: cr, Pos: bitTWSTA},
		Stop:      reg.Bit{Reg: cr, Pos: bitTWSTO},
		Collision: reg.Bit{Reg: cr, Pos: bitTWWC},
		Enable:    reg.Bit{Reg: cr, Pos: bitTWEN},
		Code:      reg.Field{Reg: sr, Shift: 3, Width: 5},
		Prescaler: reg.Field{Reg: sr, Shift: 0, Width: 2},
	}
}

func spiRegisters(cr, sr, dr reg.Reg8) spi.Registers {
	return spi.Registers{
		Control:   cr,
		Status:    sr,
		Data:      dr,
		IntEnable: reg.Bit{Reg: cr, Pos: bitSPIE},
		Enable:    reg.Bit{Reg: cr, Pos: bitSPE},
		Order:     reg.Bit{Reg: cr, Pos: bitDORD},
		Master:    reg.Bit{Reg: cr, Pos: bitMSTR},
		Polarity:  reg.Bit{Reg: cr, Pos: bitCPOL},
		Phase:     reg.Bit{Reg: cr, Pos: bitCPHA},
		Rate:      reg.Field{Reg: cr, Shift: 0, Width: 2},
		Flag:      reg.Bit{Reg: sr, Pos: bitSPIF},
		Collision: reg.Bit{Reg: sr, Pos: bitWCOL},
		Double:    reg.Bit{Reg: sr, Pos: bitSPI2X},
	}
}
