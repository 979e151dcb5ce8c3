// Package wdt drives the AVR watchdog timer in system-reset mode.
package wdt

import (
	"time"

	"avrhal-go/errcode"
	"avrhal-go/mmio"
	"avrhal-go/reg"
)

// Registers of the watchdog.
type Registers struct {
	Control reg.Reg8 // WDTCSR
	Status  reg.Reg8 // MCUSR

	IntFlag   reg.Bit   // WDIF
	IntEnable reg.Bit   // WDIE
	Prescale3 reg.Bit   // WDP3
	Change    reg.Bit   // WDCE
	Enable    reg.Bit   // WDE
	Prescale  reg.Field // WDP2:0

	ResetFlag reg.Bit // WDRF in MCUSR
}

func (r Registers) Validate() error {
	bad := errcode.Wrap(errcode.InvalidParams, "wdt.registers")
	if !r.Control.Valid() || !r.Status.Valid() || r.Control == r.Status {
		return bad
	}
	for _, b := range [...]reg.Bit{r.IntFlag, r.IntEnable, r.Prescale3, r.Change, r.Enable} {
		if !b.In(r.Control) {
			return bad
		}
	}
	if !r.Prescale.In(r.Control) || !r.ResetFlag.In(r.Status) {
		return bad
	}
	return nil
}

// Timeout is a watchdog period. The values are the WDP3:0 encodings.
type Timeout uint8

const (
	Timeout16ms Timeout = iota
	Timeout32ms
	Timeout64ms
	Timeout125ms
	Timeout250ms
	Timeout500ms
	Timeout1s
	Timeout2s
	Timeout4s
	Timeout8s
)

// Duration is the nominal period at the 128 kHz watchdog oscillator.
func (t Timeout) Duration() time.Duration {
	if t > Timeout8s {
		return 0
	}
	// 2K cycles at 128 kHz, doubling per step.
	return time.Duration(2048<<t) * time.Second / 128_000
}

// Config for the watchdog. Feed defaults to the wdr instruction on AVR.
type Config struct {
	Feed func()
}

// Watchdog owns the watchdog registers.
type Watchdog struct {
	s    mmio.Space
	r    Registers
	feed func()
}

func New(s mmio.Space, r Registers, cfg Config) (*Watchdog, error) {
	if s == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "wdt.new")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	f := cfg.Feed
	if f == nil {
		f = wdr
	}
	return &Watchdog{s: s, r: r, feed: f}, nil
}

// CausedReset reports whether the last reset came from the watchdog.
func (w *Watchdog) CausedReset() bool { return w.r.ResetFlag.IsSet(w.s) }

// Start arms the watchdog to reset the chip after t without a Feed.
func (w *Watchdog) Start(t Timeout) error {
	if t > Timeout8s {
		return errcode.Wrap(errcode.InvalidParams, "wdt.start")
	}
	p := uint8(t)
	v := w.r.Enable.Mask() | w.r.Prescale.Bits(p&7)
	if p&8 != 0 {
		v |= w.r.Prescale3.Mask()
	}
	w.change(v)
	return nil
}

// Feed restarts the watchdog period.
func (w *Watchdog) Feed() { w.feed() }

// Stop disarms the watchdog. WDE cannot be cleared while WDRF is set, so
// the reset flag is cleared first.
func (w *Watchdog) Stop() { w.change(0) }

// change runs the timed sequence: WDCE|WDE, then the new value within
// four cycles, with interrupts held off.
func (w *Watchdog) change(v uint8) {
	st := disableInterrupts()
	w.feed()
	w.r.ResetFlag.Clear(w.s)
	w.r.Control.Write(w.s, w.r.Change.Mask()|w.r.Enable.Mask())
	w.r.Control.Write(w.s, v)
	restoreInterrupts(st)
}
