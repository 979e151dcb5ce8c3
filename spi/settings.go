package spi

import "avrhal-go/errcode"

type Polarity uint8

const (
	IdleLow  Polarity = iota // CPOL=0
	IdleHigh                 // CPOL=1
)

type Phase uint8

const (
	CaptureOnFirst  Phase = iota // CPHA=0, sample on the leading edge
	CaptureOnSecond              // CPHA=1
)

type Order uint8

const (
	MSBFirst Order = iota
	LSBFirst
)

const DefaultPollLimit = 1 << 16

// Settings for an SPI master. The default is mode 0, MSB first, clock/4.
type Settings struct {
	Polarity  Polarity
	Phase     Phase
	Order     Order
	Divisor   uint8 // clock divisor: 2, 4, 8, 16, 32, 64 or 128
	PollLimit int   // iterations allowed per blocking wait; 0 = default
}

func DefaultSettings() Settings {
	return Settings{Divisor: 4, PollLimit: DefaultPollLimit}
}

// Mode returns the conventional SPI mode number 0..3.
func (s Settings) Mode() uint8 { return uint8(s.Polarity)<<1 | uint8(s.Phase) }

func (s Settings) Validate() error {
	if _, _, ok := rateBits(s.Divisor); !ok || s.PollLimit < 0 ||
		s.Polarity > IdleHigh || s.Phase > CaptureOnSecond || s.Order > LSBFirst {
		return errcode.Wrap(errcode.InvalidParams, "spi.settings")
	}
	return nil
}

// rateBits maps a divisor onto SPR1:0 and SPI2X.
func rateBits(div uint8) (spr uint8, double bool, ok bool) {
	switch div {
	case 2:
		return 0, true, true
	case 4:
		return 0, false, true
	case 8:
		return 1, true, true
	case 16:
		return 1, false, true
	case 32:
		return 2, true, true
	case 64:
		return 2, false, true
	case 128:
		return 3, false, true
	}
	return 0, false, false
}
