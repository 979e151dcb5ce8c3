package errcode

import "avrhal-go/x/conv"

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"

	// Ownership of handles and pins.
	BusInUse Code = "bus_in_use"
	PinInUse Code = "pin_in_use"
	PinMoved Code = "pin_moved"

	// Polling.
	Timeout    Code = "timeout"
	WouldBlock Code = "would_block"

	// Two-wire bus.
	ArbitrationLost Code = "arbitration_lost"
	AddressNack     Code = "address_nack"
	DataNack        Code = "data_nack"
	BusError        Code = "bus_error"

	// Synchronous serial.
	WriteCollision Code = "write_collision"
	ModeFault      Code = "mode_fault"

	// Asynchronous serial.
	FrameError  Code = "frame_error"
	Overrun     Code = "overrun"
	ParityError Code = "parity_error"

	Error Code = "error" // generic fallback
)

// E is the optional wrapper used when an operation name, detail or cause
// is worth keeping next to the code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is reports whether target is the same Code, so errors.Is(err, DataNack)
// holds for a wrapped DataNack.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Wrap returns an *E for op carrying code c.
func Wrap(c Code, op string) *E { return &E{C: c, Op: op} }

// WithStatus returns an *E whose message is the raw status byte as hex,
// formatted without fmt so it stays cheap on MCU builds.
func WithStatus(c Code, op string, status uint8) *E {
	var buf [4]byte
	return &E{C: c, Op: op, Msg: "status 0x" + string(conv.U8Hex(buf[:], status))}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
