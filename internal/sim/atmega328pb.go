package sim

// Chip wires every peripheral model at its ATmega328PB address.
type Chip struct {
	*Memory

	PortB, PortC, PortD, PortE *GPIO

	TWI0, TWI1 *TWI
	SPI0, SPI1 *SPI

	USART0, USART1 *USART
}

// NewChip returns a fresh simulated ATmega328PB data space.
func NewChip() *Chip {
	m := NewMemory()
	return &Chip{
		Memory: m,
		PortB:  NewGPIO(m, PortAddrs{Pin: 0x23, DDR: 0x24, Port: 0x25}),
		PortC:  NewGPIO(m, PortAddrs{Pin: 0x26, DDR: 0x27, Port: 0x28}),
		PortD:  NewGPIO(m, PortAddrs{Pin: 0x29, DDR: 0x2A, Port: 0x2B}),
		PortE:  NewGPIO(m, PortAddrs{Pin: 0x2C, DDR: 0x2D, Port: 0x2E}),
		TWI0:   NewTWI(m, TWIAddrs{Bitrate: 0xB8, Status: 0xB9, Data: 0xBB, Control: 0xBC}),
		TWI1:   NewTWI(m, TWIAddrs{Bitrate: 0xD8, Status: 0xD9, Data: 0xDB, Control: 0xDC}),
		SPI0:   NewSPI(m, SPIAddrs{Control: 0x4C, Status: 0x4D, Data: 0x4E}),
		SPI1:   NewSPI(m, SPIAddrs{Control: 0xAC, Status: 0xAD, Data: 0xAE}),
		USART0: NewUSART(m, usartAt(0xC0)),
		USART1: NewUSART(m, usartAt(0xC8)),
	}
}

func usartAt(base uintptr) USARTAddrs {
	return USARTAddrs{
		CtrlA:  base,
		CtrlB:  base + 1,
		CtrlC:  base + 2,
		BaudLo: base + 4,
		BaudHi: base + 5,
		Data:   base + 6,
	}
}
