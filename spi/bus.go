// Package spi drives an AVR SPI unit as a master.
//
// Send, Read and Flush never wait: they return errcode.WouldBlock while a
// byte is still shifting. Transfer and Tx wrap them in bounded polling
// loops and satisfy drivers.SPI.
//
// The unit's SS line must be an output, or an input held high. A low level
// on an SS input clears MSTR and every later call returns errcode.ModeFault
// until Configure runs again.
package spi

import (
	"avrhal-go/errcode"
	"avrhal-go/mmio"

	"tinygo.org/x/drivers"
)

// Bus is an SPI master bound to one register set. Chip select is left to
// the caller.
type Bus struct {
	s   mmio.Space
	r   Registers
	set Settings

	inFlight bool
}

var _ drivers.SPI = (*Bus)(nil)

func New(s mmio.Space, r Registers, set Settings) (*Bus, error) {
	if s == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "spi.new")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	b := &Bus{s: s, r: r}
	if err := b.Configure(set); err != nil {
		return nil, err
	}
	return b, nil
}

// Configure applies new settings. A byte in flight is abandoned.
func (b *Bus) Configure(set Settings) error {
	if set.Divisor == 0 {
		set.Divisor = 4
	}
	if set.PollLimit == 0 {
		set.PollLimit = DefaultPollLimit
	}
	if err := set.Validate(); err != nil {
		return err
	}
	spr, double, _ := rateBits(set.Divisor)
	ctl := b.r.Enable.Mask() | b.r.Master.Mask() | b.r.Rate.Bits(spr)
	if set.Order == LSBFirst {
		ctl |= b.r.Order.Mask()
	}
	if set.Polarity == IdleHigh {
		ctl |= b.r.Polarity.Mask()
	}
	if set.Phase == CaptureOnSecond {
		ctl |= b.r.Phase.Mask()
	}
	b.r.Control.Write(b.s, ctl)
	b.r.Double.Put(b.s, double)
	b.set = set
	b.inFlight = false
	return nil
}

func (b *Bus) Settings() Settings { return b.set }

// Close disables the unit.
func (b *Bus) Close() {
	b.r.Control.Write(b.s, 0)
	b.inFlight = false
}

// Flush reports whether the last byte has finished shifting.
func (b *Bus) Flush() error {
	if !b.inFlight {
		return nil
	}
	if !b.r.Flag.IsSet(b.s) {
		return errcode.WouldBlock
	}
	b.inFlight = false
	if !b.r.Master.IsSet(b.s) {
		// SS went low: the unit dropped to slave mode.
		return errcode.Wrap(errcode.ModeFault, "spi.flush")
	}
	return nil
}

// Send starts shifting out c.
func (b *Bus) Send(c byte) error {
	if err := b.Flush(); err != nil {
		return err
	}
	if !b.r.Master.IsSet(b.s) {
		return errcode.Wrap(errcode.ModeFault, "spi.send")
	}
	b.r.Data.Write(b.s, c)
	if b.r.Collision.IsSet(b.s) {
		return errcode.Wrap(errcode.WriteCollision, "spi.send")
	}
	b.inFlight = true
	return nil
}

// Read returns the byte shifted in alongside the last Send.
func (b *Bus) Read() (byte, error) {
	if err := b.Flush(); err != nil {
		return 0, err
	}
	return b.r.Data.Read(b.s), nil
}

func (b *Bus) wait(op string) error {
	for i := 0; i < b.set.PollLimit; i++ {
		err := b.Flush()
		if errcode.Of(err) != errcode.WouldBlock {
			return err
		}
	}
	return errcode.Wrap(errcode.Timeout, op)
}

// Transfer sends c and returns the byte received at the same time.
func (b *Bus) Transfer(c byte) (byte, error) {
	if err := b.wait("spi.transfer"); err != nil {
		return 0, err
	}
	if err := b.Send(c); err != nil {
		return 0, err
	}
	if err := b.wait("spi.transfer"); err != nil {
		return 0, err
	}
	return b.r.Data.Read(b.s), nil
}

// Tx sends w while receiving into r. Either may be nil: a nil w sends
// zeros and a nil r discards what comes in. Otherwise the lengths must
// match.
func (b *Bus) Tx(w, r []byte) error {
	n := len(w)
	switch {
	case w == nil:
		n = len(r)
	case r != nil && len(r) != len(w):
		return errcode.Wrap(errcode.InvalidParams, "spi.tx")
	}
	for i := 0; i < n; i++ {
		var out byte
		if w != nil {
			out = w[i]
		}
		in, err := b.Transfer(out)
		if err != nil {
			return err
		}
		if r != nil {
			r[i] = in
		}
	}
	return nil
}
