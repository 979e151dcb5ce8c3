// Package m328pb binds the ATmega328PB peripherals to the drivers in this
// module.
//
// TakeOn hands out one handle per peripheral instance. A binding
// constructor consumes a handle together with the pins the peripheral is
// wired to, named by type, so a pin of the wrong line or direction does not
// compile:
//
//	p := m328pb.TakeOn(space, m328pb.DefaultClock)
//	pc, _ := p.PORTC.Split()
//	sda := pc.PC4.IntoPullUpInput(pc.DDR)
//	scl := pc.PC5.IntoPullUpInput(pc.DDR)
//	i2c, err := m328pb.NewI2c0(p.TWI0, sda, scl, twi.DefaultConfig())
//
// Handles and pins are plain values; ownership is tracked at run time. A
// handle bound twice fails with errcode.BusInUse, a pin value that was
// already consumed fails with errcode.PinMoved and a line held by another
// binding fails with errcode.PinInUse.
package m328pb

import (
	"avrhal-go/errcode"
	"avrhal-go/mmio"
	"avrhal-go/port"
)

// DefaultClock is the CPU frequency of the common 16 MHz boards.
const DefaultClock = 16_000_000

// handle is the state shared by all peripheral handles.
type handle struct {
	name  string
	space mmio.Space
	clock uint32
	bound bool
}

// check reports whether h can be bound.
func (h *handle) check(op string) error {
	if h == nil || h.space == nil {
		return errcode.Wrap(errcode.InvalidParams, op)
	}
	if h.bound {
		return &errcode.E{C: errcode.BusInUse, Op: op, Msg: h.name}
	}
	return nil
}

func (h *handle) Name() string { return h.name }

// Bound reports whether a binding currently holds the handle.
func (h *handle) Bound() bool { return h.bound }

// Peripheral handles. Each type names exactly one instance.
type (
	TWI0   struct{ handle }
	TWI1   struct{ handle }
	SPI0   struct{ handle }
	SPI1   struct{ handle }
	USART0 struct{ handle }
	USART1 struct{ handle }
	WDT    struct{ handle }
)

// Port handles.
type (
	PORTB struct{ handle }
	PORTC struct{ handle }
	PORTD struct{ handle }
	PORTE struct{ handle }
)

// Peripherals is the set of handles of one chip.
type Peripherals struct {
	PORTB *PORTB
	PORTC *PORTC
	PORTD *PORTD
	PORTE *PORTE

	TWI0   *TWI0
	TWI1   *TWI1
	SPI0   *SPI0
	SPI1   *SPI1
	USART0 *USART0
	USART1 *USART1
	WDT    *WDT

	// DIDR0 disables the digital input buffers of the ADC lines; see
	// port.IntoAnalogInput.
	DIDR0 *port.DIDR
}

// TakeOn returns the peripherals of a chip whose data space is s and whose
// CPU runs at clockHz. Firmware uses Take.
func TakeOn(s mmio.Space, clockHz uint32) *Peripherals {
	h := func(name string) handle { return handle{name: name, space: s, clock: clockHz} }
	return &Peripherals{
		PORTB:  &PORTB{h("PORTB")},
		PORTC:  &PORTC{h("PORTC")},
		PORTD:  &PORTD{h("PORTD")},
		PORTE:  &PORTE{h("PORTE")},
		TWI0:   &TWI0{h("TWI0")},
		TWI1:   &TWI1{h("TWI1")},
		SPI0:   &SPI0{h("SPI0")},
		SPI1:   &SPI1{h("SPI1")},
		USART0: &USART0{h("USART0")},
		USART1: &USART1{h("USART1")},
		WDT:    &WDT{h("WDT")},
		DIDR0:  &port.DIDR{Reg: didr0},
	}
}
