package usart

import (
	"errors"
	"io"
	"testing"

	"avrhal-go/errcode"
	"avrhal-go/internal/sim"
)

func newSerial(t *testing.T, n uint8, cfg Config) (*Serial, *sim.USART, *sim.Memory) {
	t.Helper()
	m := sim.NewMemory()
	base := uintptr(0xC0 + 8*int(n))
	hw := sim.NewUSART(m, sim.USARTAddrs{
		CtrlA: base, CtrlB: base + 1, CtrlC: base + 2,
		BaudLo: base + 4, BaudHi: base + 5, Data: base + 6,
	})
	u, err := New(m, Bank(n), 16_000_000, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return u, hw, m
}

func TestBankAddresses(t *testing.T) {
	r := Bank(1)
	if r.CtrlA != 0xC8 || r.CtrlB != 0xC9 || r.CtrlC != 0xCA || r.Data != 0xCE {
		t.Fatalf("bank 1: %+v", r)
	}
	if r.Baud.Lo != 0xCC || r.Baud.Hi != 0xCD {
		t.Fatalf("bank 1 baud: %+v", r.Baud)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	r.Data = 0xC6
	if !errors.Is(r.Validate(), errcode.InvalidParams) {
		t.Fatal("mixed bank accepted")
	}
	if !errors.Is(Bank(2).Validate(), errcode.InvalidParams) {
		t.Fatal("USART2 accepted")
	}
}

func TestBaudRate(t *testing.T) {
	cases := []struct {
		baud   uint32
		ubrr   uint16
		double bool
	}{
		{57600, 34, true},
		{9600, 207, true},
		{115200, 16, true},
		{300, 3332, false},
		{245, 4081, false},
	}
	for _, c := range cases {
		ubrr, double, ok := BaudRate(16_000_000, c.baud)
		if !ok || ubrr != c.ubrr || double != c.double {
			t.Fatalf("BaudRate(%d)=%d,%v,%v want %d,%v", c.baud, ubrr, double, ok, c.ubrr, c.double)
		}
	}
	// Below 244 baud even the normal-speed divisor exceeds 12 bits.
	for _, baud := range []uint32{0, 100, 244, 2_000_001} {
		if _, _, ok := BaudRate(16_000_000, baud); ok {
			t.Fatalf("BaudRate(%d) accepted", baud)
		}
	}
}

func TestInitProgramsFrame(t *testing.T) {
	_, _, m := newSerial(t, 0, DefaultConfig())
	if lo, hi := m.Peek(0xC4), m.Peek(0xC5); lo != 34 || hi != 0 {
		t.Fatalf("UBRR0=%d:%d", hi, lo)
	}
	if m.Peek(0xC0)&(1<<1) == 0 {
		t.Fatal("U2X0 not set")
	}
	if got := m.Peek(0xC2); got != 0x06 {
		t.Fatalf("UCSR0C=%#x", got)
	}
	if got := m.Peek(0xC1); got != 0x18 {
		t.Fatalf("UCSR0B=%#x", got)
	}
}

func TestSlowBaudHighByteFirst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Baud = 300
	u, _, m := newSerial(t, 1, cfg)
	if ubrr, double := u.Divisor(); ubrr != 3332 || double {
		t.Fatalf("divisor %d %v", ubrr, double)
	}
	if lo, hi := m.Peek(0xCC), m.Peek(0xCD); uint16(hi)<<8|uint16(lo) != 3332 {
		t.Fatalf("UBRR1=%d:%d", hi, lo)
	}
	if m.Peek(0xC8)&(1<<1) != 0 {
		t.Fatal("U2X1 set for a normal-speed divisor")
	}
}

func TestNonBlockingByteIO(t *testing.T) {
	u, hw, _ := newSerial(t, 0, DefaultConfig())
	if _, err := u.ReadByte(); err != errcode.WouldBlock {
		t.Fatalf("ReadByte on empty: %v", err)
	}
	hw.Inject('a')
	c, err := u.ReadByte()
	if err != nil || c != 'a' {
		t.Fatalf("ReadByte: %q %v", c, err)
	}
	if err := u.WriteByte('z'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if string(hw.Sent) != "z" {
		t.Fatalf("sent=%q", hw.Sent)
	}
}

func TestReceiveErrors(t *testing.T) {
	cases := []struct {
		flag uint8
		code errcode.Code
	}{
		{sim.FlagFrame, errcode.FrameError},
		{sim.FlagParity, errcode.ParityError},
	}
	for _, c := range cases {
		u, hw, _ := newSerial(t, 0, DefaultConfig())
		hw.InjectWithError(0x55, c.flag)
		if _, err := u.ReadByte(); !errors.Is(err, c.code) {
			t.Fatalf("flag %#x: %v", c.flag, err)
		}
		if _, err := u.ReadByte(); err != errcode.WouldBlock {
			t.Fatalf("bad byte not dropped: %v", err)
		}
	}
}

func TestOverrunKeepsByte(t *testing.T) {
	u, hw, _ := newSerial(t, 0, DefaultConfig())
	hw.InjectWithError('A', sim.FlagOverrun)
	c, err := u.ReadByte()
	if err != nil || c != 'A' {
		t.Fatalf("ReadByte: %q %v", c, err)
	}
	if _, err := u.ReadByte(); err != errcode.WouldBlock {
		t.Fatalf("ReadByte after overrun: %v", err)
	}
	buf := make([]byte, 4)
	if _, err := u.Read(buf); !errors.Is(err, errcode.Overrun) {
		t.Fatalf("overrun not reported: %v", err)
	}

	hw.Inject('x')
	hw.InjectWithError('y', sim.FlagOverrun)
	hw.Inject('z')
	n, err := u.Read(buf)
	if err != nil || string(buf[:n]) != "xyz" {
		t.Fatalf("Read: %q %v", buf[:n], err)
	}
	if _, err := u.Read(buf); !errors.Is(err, errcode.Overrun) {
		t.Fatalf("Read: %v", err)
	}
	if n, err := u.Read(buf); n != 0 || err != nil {
		t.Fatalf("error reported twice: %d %v", n, err)
	}
}

func TestBufferedRead(t *testing.T) {
	u, hw, _ := newSerial(t, 0, DefaultConfig())
	hw.Inject([]byte("hello")...)
	if n := u.Buffered(); n != 5 {
		t.Fatalf("Buffered=%d", n)
	}
	buf := make([]byte, 3)
	n, err := u.Read(buf)
	if err != nil || string(buf[:n]) != "hel" {
		t.Fatalf("Read: %q %v", buf[:n], err)
	}
	n, err = u.Read(buf)
	if err != nil || string(buf[:n]) != "lo" {
		t.Fatalf("Read: %q %v", buf[:n], err)
	}
	if n, err := u.Read(buf); n != 0 || err != nil {
		t.Fatalf("Read on empty: %d %v", n, err)
	}
}

func TestReadSurfacesErrorAfterData(t *testing.T) {
	u, hw, _ := newSerial(t, 0, DefaultConfig())
	hw.Inject('o', 'k')
	hw.InjectWithError(0, sim.FlagFrame)
	buf := make([]byte, 8)
	n, err := u.Read(buf)
	if err != nil || string(buf[:n]) != "ok" {
		t.Fatalf("Read: %q %v", buf[:n], err)
	}
	if _, err := u.Read(buf); !errors.Is(err, errcode.FrameError) {
		t.Fatalf("Read: %v", err)
	}
}

func TestRingLimitsDrain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RxBuffer = 4
	u, hw, _ := newSerial(t, 0, cfg)
	hw.Inject([]byte("abcdef")...)
	if n := u.Buffered(); n != 4 {
		t.Fatalf("Buffered=%d", n)
	}
	got, err := io.ReadAll(io.LimitReader(readerFunc(u.Read), 6))
	if err != nil || string(got) != "abcdef" {
		t.Fatalf("ReadAll: %q %v", got, err)
	}
}

func TestEchoWriteFlush(t *testing.T) {
	u, hw, m := newSerial(t, 1, DefaultConfig())
	hw.Echo = true
	n, err := u.Write([]byte("ping"))
	if err != nil || n != 4 {
		t.Fatalf("Write: %d %v", n, err)
	}
	if err := u.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if m.Peek(0xC8)&(1<<6) != 0 {
		t.Fatal("TXC1 not cleared")
	}
	if m.Peek(0xC8)&(1<<1) == 0 {
		t.Fatal("Flush dropped U2X1")
	}
	buf := make([]byte, 4)
	if n, _ := u.Read(buf); string(buf[:n]) != "ping" {
		t.Fatalf("echo=%q", buf[:n])
	}
}

func TestWriteTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PollLimit = 8
	u, _, m := newSerial(t, 0, cfg)
	// A transmitter that never empties.
	m.OnLoad(0xC0, func(v uint8) uint8 { return v &^ (1 << 5) })
	if _, err := u.Write([]byte{1}); !errors.Is(err, errcode.Timeout) {
		t.Fatalf("Write: %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	m := sim.NewMemory()
	for _, cfg := range []Config{
		{RxBuffer: 3},
		{Baud: 4_000_000},
		{Baud: 100},
		{PollLimit: -1},
	} {
		if _, err := New(m, Bank(0), 16_000_000, cfg); !errors.Is(err, errcode.InvalidParams) {
			t.Fatalf("%+v accepted: %v", cfg, err)
		}
	}
}

func TestClose(t *testing.T) {
	u, hw, m := newSerial(t, 0, DefaultConfig())
	hw.Inject('x')
	u.Buffered()
	u.Close()
	if m.Peek(0xC1) != 0 {
		t.Fatalf("UCSR0B=%#x", m.Peek(0xC1))
	}
	if u.rx.Available() != 0 {
		t.Fatal("ring not reset")
	}
}

type readerFunc func([]byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
