package twi

import "avrhal-go/errcode"

const (
	DefaultSpeed     = 100_000
	DefaultPollLimit = 1 << 16
)

// Config for a TWI master. Zero fields take the defaults.
type Config struct {
	Speed     uint32 // SCL frequency in Hz
	PollLimit int    // iterations allowed per hardware wait
}

func DefaultConfig() Config {
	return Config{Speed: DefaultSpeed, PollLimit: DefaultPollLimit}
}

func (c Config) withDefaults() Config {
	if c.Speed == 0 {
		c.Speed = DefaultSpeed
	}
	if c.PollLimit == 0 {
		c.PollLimit = DefaultPollLimit
	}
	return c
}

// Validate checks the configuration against the CPU clock. SCL must be
// reachable by some TWBR/TWPS pair; see Bitrate.
func (c Config) Validate(clockHz uint32) error {
	c = c.withDefaults()
	if c.PollLimit < 0 || clockHz == 0 {
		return errcode.Wrap(errcode.InvalidParams, "twi.config")
	}
	if _, _, ok := Bitrate(clockHz, c.Speed); !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "twi.config", Msg: "speed out of range"}
	}
	return nil
}
