package usart

import (
	"avrhal-go/errcode"
	"avrhal-go/x/mathx"
)

// maxUBRR is the largest 12-bit baud divisor.
const maxUBRR = 0x0FFF

const (
	DefaultBaud      = 57600
	DefaultPollLimit = 1 << 16
	DefaultRxBuffer  = 16
)

// Config for a USART in asynchronous 8N1 mode. Zero fields take the
// defaults.
type Config struct {
	Baud      uint32
	PollLimit int // iterations allowed per blocking wait
	RxBuffer  int // receive ring size, a power of two
}

func DefaultConfig() Config {
	return Config{Baud: DefaultBaud, PollLimit: DefaultPollLimit, RxBuffer: DefaultRxBuffer}
}

func (c Config) withDefaults() Config {
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.PollLimit == 0 {
		c.PollLimit = DefaultPollLimit
	}
	if c.RxBuffer == 0 {
		c.RxBuffer = DefaultRxBuffer
	}
	return c
}

func (c Config) Validate(clockHz uint32) error {
	c = c.withDefaults()
	if clockHz == 0 || c.PollLimit < 0 || c.RxBuffer < 2 || c.RxBuffer&(c.RxBuffer-1) != 0 {
		return errcode.Wrap(errcode.InvalidParams, "usart.config")
	}
	if _, _, ok := BaudRate(clockHz, c.Baud); !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "usart.config", Msg: "baud out of range"}
	}
	return nil
}

// BaudRate returns the rounded UBRR value for baud, preferring double
// speed. When the double-speed divisor does not fit in 12 bits it falls
// back to normal speed. ok is false when baud needs fewer than 8 clocks
// per bit or a normal-speed divisor above 4095.
func BaudRate(clockHz, baud uint32) (ubrr uint16, double, ok bool) {
	if baud == 0 || baud > clockHz/8 {
		return 0, false, false
	}
	if v := mathx.RoundDiv(uint64(clockHz), 8*uint64(baud)) - 1; v <= maxUBRR {
		return uint16(v), true, true
	}
	if v := mathx.RoundDiv(uint64(clockHz), 16*uint64(baud)) - 1; v <= maxUBRR {
		return uint16(v), false, true
	}
	return 0, false, false
}
