package m328pb

import (
	"avrhal-go/errcode"
	"avrhal-go/port"
	"avrhal-go/spi"
	"avrhal-go/twi"
	"avrhal-go/usart"
	"avrhal-go/wdt"
)

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func nilHandle(op string) error { return errcode.Wrap(errcode.InvalidParams, op) }

// ---------------- TWI ----------------

// I2c0 is TWI0 on SDA=PC4, SCL=PC5. P is the pull mode of both lines:
// port.PullUp for the internal pull-ups, port.Floating when the board has
// its own resistors.
type I2c0[P port.Pull] struct {
	*twi.Bus
	h   *TWI0
	sda port.Input[PortC, PC4, P]
	scl port.Input[PortC, PC5, P]
}

func NewI2c0(h *TWI0, sda port.Input[PortC, PC4, port.PullUp], scl port.Input[PortC, PC5, port.PullUp], cfg twi.Config) (*I2c0[port.PullUp], error) {
	return newI2c0(h, sda, scl, cfg)
}

func NewI2c0ExternalPullup(h *TWI0, sda port.Input[PortC, PC4, port.Floating], scl port.Input[PortC, PC5, port.Floating], cfg twi.Config) (*I2c0[port.Floating], error) {
	return newI2c0(h, sda, scl, cfg)
}

func newI2c0[P port.Pull](h *TWI0, sda port.Input[PortC, PC4, P], scl port.Input[PortC, PC5, P], cfg twi.Config) (*I2c0[P], error) {
	const op = "m328pb.i2c0"
	if h == nil {
		return nil, nilHandle(op)
	}
	if err := firstErr(h.check(op), port.Check(sda), port.Check(scl)); err != nil {
		return nil, err
	}
	bus, err := twi.New(h.space, twi0Regs, h.clock, cfg)
	if err != nil {
		return nil, err
	}
	h.bound = true
	sda, _ = port.Claim(sda, h.name)
	scl, _ = port.Claim(scl, h.name)
	return &I2c0[P]{Bus: bus, h: h, sda: sda, scl: scl}, nil
}

// Release disables TWI0 and returns the handle and pins. The binding must
// not be used afterwards; calling Release again returns zero values.
func (b *I2c0[P]) Release() (h *TWI0, sda port.Input[PortC, PC4, P], scl port.Input[PortC, PC5, P]) {
	if b.Bus == nil {
		return
	}
	b.Bus.Close()
	b.Bus = nil
	b.h.bound = false
	return b.h, port.Unclaim(b.sda), port.Unclaim(b.scl)
}

// I2c1 is TWI1 on SDA=PE0, SCL=PE1.
type I2c1[P port.Pull] struct {
	*twi.Bus
	h   *TWI1
	sda port.Input[PortE, PE0, P]
	scl port.Input[PortE, PE1, P]
}

func NewI2c1(h *TWI1, sda port.Input[PortE, PE0, port.PullUp], scl port.Input[PortE, PE1, port.PullUp], cfg twi.Config) (*I2c1[port.PullUp], error) {
	return newI2c1(h, sda, scl, cfg)
}

func NewI2c1ExternalPullup(h *TWI1, sda port.Input[PortE, PE0, port.Floating], scl port.Input[PortE, PE1, port.Floating], cfg twi.Config) (*I2c1[port.Floating], error) {
	return newI2c1(h, sda, scl, cfg)
}

func newI2c1[P port.Pull](h *TWI1, sda port.Input[PortE, PE0, P], scl port.Input[PortE, PE1, P], cfg twi.Config) (*I2c1[P], error) {
	const op = "m328pb.i2c1"
	if h == nil {
		return nil, nilHandle(op)
	}
	if err := firstErr(h.check(op), port.Check(sda), port.Check(scl)); err != nil {
		return nil, err
	}
	bus, err := twi.New(h.space, twi1Regs, h.clock, cfg)
	if err != nil {
		return nil, err
	}
	h.bound = true
	sda, _ = port.Claim(sda, h.name)
	scl, _ = port.Claim(scl, h.name)
	return &I2c1[P]{Bus: bus, h: h, sda: sda, scl: scl}, nil
}

func (b *I2c1[P]) Release() (h *TWI1, sda port.Input[PortE, PE0, P], scl port.Input[PortE, PE1, P]) {
	if b.Bus == nil {
		return
	}
	b.Bus.Close()
	b.Bus = nil
	b.h.bound = false
	return b.h, port.Unclaim(b.sda), port.Unclaim(b.scl)
}

// ---------------- SPI ----------------

// Spi0 is SPI0 on SCLK=PB5, MOSI=PB3, MISO=PB4. MISO may use either pull
// mode. PB3 and PB4 double as USART1 TX and RX, so Spi0 and Usart1 cannot
// be bound at the same time.
//
// SS (PB2) is not claimed but must be an output, or an input held high.
// Pulled low as an input it drops the unit into slave mode and the bus
// reports errcode.ModeFault.
type Spi0[P port.Pull] struct {
	*spi.Bus
	h    *SPI0
	sclk port.Output[PortB, PB5]
	mosi port.Output[PortB, PB3]
	miso port.Input[PortB, PB4, P]
}

func NewSpi0[P port.Pull](h *SPI0, sclk port.Output[PortB, PB5], mosi port.Output[PortB, PB3], miso port.Input[PortB, PB4, P], set spi.Settings) (*Spi0[P], error) {
	const op = "m328pb.spi0"
	if h == nil {
		return nil, nilHandle(op)
	}
	if err := firstErr(h.check(op), port.Check(sclk), port.Check(mosi), port.Check(miso)); err != nil {
		return nil, err
	}
	bus, err := spi.New(h.space, spi0Regs, set)
	if err != nil {
		return nil, err
	}
	h.bound = true
	sclk, _ = port.Claim(sclk, h.name)
	mosi, _ = port.Claim(mosi, h.name)
	miso, _ = port.Claim(miso, h.name)
	return &Spi0[P]{Bus: bus, h: h, sclk: sclk, mosi: mosi, miso: miso}, nil
}

func (b *Spi0[P]) Release() (h *SPI0, sclk port.Output[PortB, PB5], mosi port.Output[PortB, PB3], miso port.Input[PortB, PB4, P]) {
	if b.Bus == nil {
		return
	}
	b.Bus.Close()
	b.Bus = nil
	b.h.bound = false
	return b.h, port.Unclaim(b.sclk), port.Unclaim(b.mosi), port.Unclaim(b.miso)
}

// Spi1 is SPI1 on SCLK=PC1, MOSI=PE3, MISO=PC0. As with Spi0, SS (PE2)
// must be an output or held high.
type Spi1[P port.Pull] struct {
	*spi.Bus
	h    *SPI1
	sclk port.Output[PortC, PC1]
	mosi port.Output[PortE, PE3]
	miso port.Input[PortC, PC0, P]
}

func NewSpi1[P port.Pull](h *SPI1, sclk port.Output[PortC, PC1], mosi port.Output[PortE, PE3], miso port.Input[PortC, PC0, P], set spi.Settings) (*Spi1[P], error) {
	const op = "m328pb.spi1"
	if h == nil {
		return nil, nilHandle(op)
	}
	if err := firstErr(h.check(op), port.Check(sclk), port.Check(mosi), port.Check(miso)); err != nil {
		return nil, err
	}
	bus, err := spi.New(h.space, spi1Regs, set)
	if err != nil {
		return nil, err
	}
	h.bound = true
	sclk, _ = port.Claim(sclk, h.name)
	mosi, _ = port.Claim(mosi, h.name)
	miso, _ = port.Claim(miso, h.name)
	return &Spi1[P]{Bus: bus, h: h, sclk: sclk, mosi: mosi, miso: miso}, nil
}

func (b *Spi1[P]) Release() (h *SPI1, sclk port.Output[PortC, PC1], mosi port.Output[PortE, PE3], miso port.Input[PortC, PC0, P]) {
	if b.Bus == nil {
		return
	}
	b.Bus.Close()
	b.Bus = nil
	b.h.bound = false
	return b.h, port.Unclaim(b.sclk), port.Unclaim(b.mosi), port.Unclaim(b.miso)
}

// ---------------- USART ----------------

// Usart0 is USART0 on RX=PD0, TX=PD1.
type Usart0[P port.Pull] struct {
	*usart.Serial
	h  *USART0
	rx port.Input[PortD, PD0, P]
	tx port.Output[PortD, PD1]
}

func NewUsart0[P port.Pull](h *USART0, rx port.Input[PortD, PD0, P], tx port.Output[PortD, PD1], cfg usart.Config) (*Usart0[P], error) {
	const op = "m328pb.usart0"
	if h == nil {
		return nil, nilHandle(op)
	}
	if err := firstErr(h.check(op), port.Check(rx), port.Check(tx)); err != nil {
		return nil, err
	}
	s, err := usart.New(h.space, usart0Regs, h.clock, cfg)
	if err != nil {
		return nil, err
	}
	h.bound = true
	rx, _ = port.Claim(rx, h.name)
	tx, _ = port.Claim(tx, h.name)
	return &Usart0[P]{Serial: s, h: h, rx: rx, tx: tx}, nil
}

func (b *Usart0[P]) Release() (h *USART0, rx port.Input[PortD, PD0, P], tx port.Output[PortD, PD1]) {
	if b.Serial == nil {
		return
	}
	b.Serial.Close()
	b.Serial = nil
	b.h.bound = false
	return b.h, port.Unclaim(b.rx), port.Unclaim(b.tx)
}

// Usart1 is USART1 on RX=PB4, TX=PB3; see Spi0.
type Usart1[P port.Pull] struct {
	*usart.Serial
	h  *USART1
	rx port.Input[PortB, PB4, P]
	tx port.Output[PortB, PB3]
}

func NewUsart1[P port.Pull](h *USART1, rx port.Input[PortB, PB4, P], tx port.Output[PortB, PB3], cfg usart.Config) (*Usart1[P], error) {
	const op = "m328pb.usart1"
	if h == nil {
		return nil, nilHandle(op)
	}
	if err := firstErr(h.check(op), port.Check(rx), port.Check(tx)); err != nil {
		return nil, err
	}
	s, err := usart.New(h.space, usart1Regs, h.clock, cfg)
	if err != nil {
		return nil, err
	}
	h.bound = true
	rx, _ = port.Claim(rx, h.name)
	tx, _ = port.Claim(tx, h.name)
	return &Usart1[P]{Serial: s, h: h, rx: rx, tx: tx}, nil
}

func (b *Usart1[P]) Release() (h *USART1, rx port.Input[PortB, PB4, P], tx port.Output[PortB, PB3]) {
	if b.Serial == nil {
		return
	}
	b.Serial.Close()
	b.Serial = nil
	b.h.bound = false
	return b.h, port.Unclaim(b.rx), port.Unclaim(b.tx)
}

// ---------------- Watchdog ----------------

type Watchdog struct {
	*wdt.Watchdog
	h *WDT
}

func NewWatchdog(h *WDT, cfg wdt.Config) (*Watchdog, error) {
	const op = "m328pb.wdt"
	if h == nil {
		return nil, nilHandle(op)
	}
	if err := h.check(op); err != nil {
		return nil, err
	}
	w, err := wdt.New(h.space, wdtRegs, cfg)
	if err != nil {
		return nil, err
	}
	h.bound = true
	return &Watchdog{Watchdog: w, h: h}, nil
}

// Release stops the watchdog and returns the handle, or nil when it was
// already released.
func (w *Watchdog) Release() *WDT {
	if w.Watchdog == nil {
		return nil
	}
	w.Stop()
	w.Watchdog = nil
	w.h.bound = false
	return w.h
}
