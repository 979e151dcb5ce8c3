// Package twi drives an AVR two-wire interface as an I2C master.
//
// Every transfer walks the same state machine:
//
//	Idle -> StartRequested -> Addressing -> DataTransfer -> StopRequested -> Idle
//
// with a repeated START (back to StartRequested) between the write and read
// halves of a combined transfer. Errors are never retried. The hardware is
// left as follows:
//
//   - AddressNack, DataNack: STOP has been issued; State is StopRequested.
//   - ArbitrationLost: no STOP (the bus belongs to the winner); Faulted.
//   - BusError: STOP has been issued to release the lines; Faulted.
//   - Timeout: nothing is written; Faulted. Call Reset before retrying.
package twi

import (
	"avrhal-go/errcode"
	"avrhal-go/mmio"
	"avrhal-go/x/mathx"

	"tinygo.org/x/drivers"
)

// Bus is a TWI master bound to one register set.
type Bus struct {
	s    mmio.Space
	r    Registers
	cfg  Config
	twbr uint8
	twps uint8

	state State
	hook  Hook
}

var _ drivers.I2C = (*Bus)(nil)

// New configures the bit rate and enables the unit.
func New(s mmio.Space, r Registers, clockHz uint32, cfg Config) (*Bus, error) {
	if s == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "twi.new")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(clockHz); err != nil {
		return nil, err
	}
	b := &Bus{s: s, r: r, cfg: cfg.withDefaults()}
	b.twbr, b.twps, _ = Bitrate(clockHz, b.cfg.Speed)
	b.init()
	return b, nil
}

// Bitrate returns the TWBR value and TWPS code for SCL at speed Hz, using
// the smallest prescaler whose divisor fits in TWBR:
//
//	SCL = clockHz / (16 + 2*TWBR*4^TWPS)
//
// ok is false when speed is above clockHz/16 or below what TWPS=3 and
// TWBR=255 reach.
func Bitrate(clockHz, speed uint32) (twbr, twps uint8, ok bool) {
	if speed == 0 || speed > clockHz/16 {
		return 0, 0, false
	}
	num := uint64(clockHz) - 16*uint64(speed)
	for ps := uint8(0); ps < 4; ps++ {
		if v := mathx.RoundDiv(num, 2*uint64(speed)<<(2*ps)); v <= 0xFF {
			return uint8(v), ps, true
		}
	}
	return 0, 0, false
}

func (b *Bus) init() {
	b.r.Prescaler.Put(b.s, b.twps)
	b.r.Bitrate.Write(b.s, b.twbr)
	b.r.Control.Write(b.s, b.r.Enable.Mask())
	b.set(Idle)
}

func (b *Bus) State() State { return b.state }

// SetHook installs h for state transitions; nil removes it.
func (b *Bus) SetHook(h Hook) { b.hook = h }

// Reset disables and re-enables the unit, abandoning any transfer.
func (b *Bus) Reset() {
	b.r.Control.Write(b.s, 0)
	b.init()
}

// Close disables the unit and releases SDA and SCL to the port.
func (b *Bus) Close() {
	b.r.Control.Write(b.s, 0)
	b.set(Idle)
}

func (b *Bus) set(to State) {
	if to == b.state {
		return
	}
	from := b.state
	b.state = to
	if b.hook != nil {
		b.hook(from, to)
	}
}

// ---------------- Transfers ----------------

// Tx writes w then reads into r from the 7-bit address addr, with a
// repeated START in between. With both empty it only addresses the device.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return errcode.Wrap(errcode.InvalidParams, "twi.tx")
	}
	a := uint8(addr)
	if len(w) > 0 || len(r) == 0 {
		if err := b.start(); err != nil {
			return err
		}
		if err := b.address(a, false); err != nil {
			return err
		}
		if err := b.write(w); err != nil {
			return err
		}
	}
	if len(r) > 0 {
		if err := b.start(); err != nil {
			return err
		}
		if err := b.address(a, true); err != nil {
			return err
		}
		if err := b.read(r); err != nil {
			return err
		}
	}
	return b.stop()
}

func (b *Bus) WriteTo(addr uint8, w []byte) error { return b.Tx(uint16(addr), w, nil) }

func (b *Bus) ReadFrom(addr uint8, r []byte) error {
	if len(r) == 0 {
		return errcode.Wrap(errcode.InvalidParams, "twi.read")
	}
	return b.Tx(uint16(addr), nil, r)
}

func (b *Bus) WriteRead(addr uint8, w, r []byte) error { return b.Tx(uint16(addr), w, r) }

// Ping reports whether a device acknowledges addr. Absent devices return
// AddressNack.
func (b *Bus) Ping(addr uint8) error { return b.Tx(uint16(addr), nil, nil) }

// Scan pings the non-reserved addresses 0x08..0x77 and appends the ones
// that answer to dst. It stops at the first error other than AddressNack.
func (b *Bus) Scan(dst []uint8) ([]uint8, error) {
	for a := uint8(0x08); a <= 0x77; a++ {
		err := b.Ping(a)
		switch errcode.Of(err) {
		case errcode.OK:
			dst = append(dst, a)
		case errcode.AddressNack:
		default:
			return dst, err
		}
	}
	return dst, nil
}

// ---------------- Steps ----------------

func (b *Bus) wait(op string) (uint8, error) {
	for i := 0; i < b.cfg.PollLimit; i++ {
		if b.r.Int.IsSet(b.s) {
			return b.r.Code.Masked(b.s), nil
		}
	}
	b.set(Faulted)
	return 0, errcode.Wrap(errcode.Timeout, op)
}

func (b *Bus) start() error {
	const op = "twi.start"
	b.set(StartRequested)
	b.r.Control.Write(b.s, b.r.Int.Mask()|b.r.Start.Mask()|b.r.Enable.Mask())
	st, err := b.wait(op)
	if err != nil {
		return err
	}
	switch st {
	case statusStart, statusRepStart:
		return nil
	case statusArbLost:
		return b.lost(op, st)
	}
	return b.busError(op, st)
}

func (b *Bus) address(a uint8, read bool) error {
	const op = "twi.address"
	b.set(Addressing)
	sla, ack, nack := a<<1, uint8(statusMTSlaAck), uint8(statusMTSlaNack)
	if read {
		sla, ack, nack = sla|1, statusMRSlaAck, statusMRSlaNack
	}
	b.r.Data.Write(b.s, sla)
	b.r.Control.Write(b.s, b.r.Int.Mask()|b.r.Enable.Mask())
	st, err := b.wait(op)
	if err != nil {
		return err
	}
	switch st {
	case ack:
		return nil
	case nack:
		return b.nack(errcode.AddressNack, op, st)
	case statusArbLost:
		return b.lost(op, st)
	}
	return b.busError(op, st)
}

func (b *Bus) write(w []byte) error {
	const op = "twi.write"
	if len(w) == 0 {
		return nil
	}
	b.set(DataTransfer)
	for _, c := range w {
		b.r.Data.Write(b.s, c)
		b.r.Control.Write(b.s, b.r.Int.Mask()|b.r.Enable.Mask())
		st, err := b.wait(op)
		if err != nil {
			return err
		}
		switch st {
		case statusMTDataAck:
			continue
		case statusMTDataNack:
			return b.nack(errcode.DataNack, op, st)
		case statusArbLost:
			return b.lost(op, st)
		}
		return b.busError(op, st)
	}
	return nil
}

// read ACKs every byte but the last, which tells the target to let go.
func (b *Bus) read(r []byte) error {
	const op = "twi.read"
	b.set(DataTransfer)
	for i := range r {
		last := i == len(r)-1
		ctl, want := b.r.Int.Mask()|b.r.Enable.Mask()|b.r.Ack.Mask(), uint8(statusMRDataAck)
		if last {
			ctl, want = b.r.Int.Mask()|b.r.Enable.Mask(), statusMRDataNack
		}
		b.r.Control.Write(b.s, ctl)
		st, err := b.wait(op)
		if err != nil {
			return err
		}
		if st == statusArbLost {
			return b.lost(op, st)
		}
		if st != want {
			return b.busError(op, st)
		}
		r[i] = b.r.Data.Read(b.s)
	}
	return nil
}

func (b *Bus) issueStop() {
	b.set(StopRequested)
	b.r.Control.Write(b.s, b.r.Int.Mask()|b.r.Enable.Mask()|b.r.Stop.Mask())
}

func (b *Bus) stop() error {
	b.issueStop()
	// TWSTO clears once the STOP condition is on the bus. TWINT is not set.
	for i := 0; i < b.cfg.PollLimit; i++ {
		if !b.r.Stop.IsSet(b.s) {
			b.set(Idle)
			return nil
		}
	}
	b.set(Faulted)
	return errcode.Wrap(errcode.Timeout, "twi.stop")
}

// ---------------- Failures ----------------

func (b *Bus) nack(c errcode.Code, op string, st uint8) error {
	b.issueStop()
	return errcode.WithStatus(c, op, st)
}

func (b *Bus) lost(op string, st uint8) error {
	b.set(Faulted)
	return errcode.WithStatus(errcode.ArbitrationLost, op, st)
}

func (b *Bus) busError(op string, st uint8) error {
	b.issueStop()
	b.set(Faulted)
	return errcode.WithStatus(errcode.BusError, op, st)
}
