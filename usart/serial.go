// Package usart drives an AVR USART in asynchronous 8N1 mode.
//
// ReadByte and WriteByte never wait and return errcode.WouldBlock when the
// hardware is not ready. Read, Write and Buffered satisfy drivers.UART:
// received bytes are moved into a ring buffer whenever the driver is
// polled, and Write waits (bounded) for room in the transmit register.
package usart

import (
	"avrhal-go/errcode"
	"avrhal-go/mmio"
	"avrhal-go/x/ring"

	"tinygo.org/x/drivers"
)

// Serial is a USART bound to one register bank.
type Serial struct {
	s   mmio.Space
	r   Registers
	cfg Config

	ubrr   uint16
	double bool

	rx      *ring.Ring
	rxErr   error
	pending bool // bytes written since the last Flush
}

var _ drivers.UART = (*Serial)(nil)

func New(s mmio.Space, r Registers, clockHz uint32, cfg Config) (*Serial, error) {
	if s == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "usart.new")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(clockHz); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	u := &Serial{s: s, r: r, cfg: cfg, rx: ring.New(cfg.RxBuffer)}
	u.ubrr, u.double, _ = BaudRate(clockHz, cfg.Baud)
	u.init()
	return u, nil
}

func (u *Serial) init() {
	u.r.Baud.Write(u.s, u.ubrr)
	u.r.DoubleSpeed.Put(u.s, u.double)
	// 8 data bits, no parity, one stop bit.
	u.r.CtrlC.Write(u.s, u.r.CharSize.Bits(3))
	u.r.CtrlB.Write(u.s, u.r.RxEnable.Mask()|u.r.TxEnable.Mask())
}

// Divisor returns the programmed UBRR value and whether double speed is on.
func (u *Serial) Divisor() (uint16, bool) { return u.ubrr, u.double }

// Close disables the receiver and transmitter. Buffered bytes are dropped.
func (u *Serial) Close() {
	u.r.CtrlB.Write(u.s, 0)
	u.rx.Reset()
	u.rxErr = nil
	u.pending = false
}

// ---------------- Non-blocking ----------------

// ReadByte takes one byte straight from the hardware. A byte received
// with a frame or parity error is dropped and the error returned. An
// overrun means frames before this one were lost; the byte itself is
// returned and the overrun is reported by a later Read.
func (u *Serial) ReadByte() (byte, error) {
	const op = "usart.read"
	a := u.r.CtrlA.Read(u.s)
	if a&u.r.RxComplete.Mask() == 0 {
		return 0, errcode.WouldBlock
	}
	// Status must be read before UDRn; reading UDRn pops the FIFO.
	c := u.r.Data.Read(u.s)
	switch {
	case a&u.r.FrameErr.Mask() != 0:
		return 0, errcode.Wrap(errcode.FrameError, op)
	case a&u.r.ParityErr.Mask() != 0:
		return 0, errcode.Wrap(errcode.ParityError, op)
	case a&u.r.DataOverrun.Mask() != 0:
		u.keep(errcode.Wrap(errcode.Overrun, op))
	}
	return c, nil
}

// WriteByte hands c to the transmitter if its data register is empty.
func (u *Serial) WriteByte(c byte) error {
	if !u.r.DataEmpty.IsSet(u.s) {
		return errcode.WouldBlock
	}
	u.r.Data.Write(u.s, c)
	u.pending = true
	return nil
}

// ---------------- Buffered ----------------

// poll moves received bytes into the ring until the hardware is empty or
// the ring is full. The first receive error is kept for Read.
func (u *Serial) poll() {
	for u.rx.Space() > 0 {
		c, err := u.ReadByte()
		if err == errcode.WouldBlock {
			return
		}
		if err != nil {
			u.keep(err)
			continue
		}
		u.rx.Put(c)
	}
}

// keep records the first receive error for Read.
func (u *Serial) keep(err error) {
	if u.rxErr == nil {
		u.rxErr = err
	}
}

// Buffered returns how many received bytes are waiting.
func (u *Serial) Buffered() int {
	u.poll()
	return u.rx.Available()
}

// Read returns buffered bytes without waiting. It returns 0, nil when
// nothing has arrived, and a pending receive error once the bytes received
// before it have been read.
func (u *Serial) Read(p []byte) (int, error) {
	u.poll()
	if n := u.rx.ReadInto(p); n > 0 {
		return n, nil
	}
	if err := u.rxErr; err != nil {
		u.rxErr = nil
		return 0, err
	}
	return 0, nil
}

// Write sends p, waiting for the transmitter between bytes.
func (u *Serial) Write(p []byte) (int, error) {
	for n, c := range p {
		if err := u.waitWrite(c); err != nil {
			return n, err
		}
	}
	return len(p), nil
}

func (u *Serial) waitWrite(c byte) error {
	for i := 0; i < u.cfg.PollLimit; i++ {
		err := u.WriteByte(c)
		if err != errcode.WouldBlock {
			return err
		}
		// Keep the receiver drained while the transmitter is busy.
		u.poll()
	}
	return errcode.Wrap(errcode.Timeout, "usart.write")
}

// Flush waits until the last written byte has left the shift register.
func (u *Serial) Flush() error {
	if !u.pending {
		return nil
	}
	for i := 0; i < u.cfg.PollLimit; i++ {
		a := u.r.CtrlA.Read(u.s)
		if a&u.r.TxComplete.Mask() != 0 {
			// TXC clears by writing one; keep U2X as configured.
			u.r.CtrlA.Write(u.s, a&u.r.DoubleSpeed.Mask()|u.r.TxComplete.Mask())
			u.pending = false
			return nil
		}
	}
	return errcode.Wrap(errcode.Timeout, "usart.flush")
}
