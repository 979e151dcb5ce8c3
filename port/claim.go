package port

import "avrhal-go/errcode"

// Pin is satisfied by pointers to Input, Output and Analog.
type Pin interface {
	base() *pin
}

// Claim hands the line behind p to owner and returns its successor. The
// caller's copy of p is retired. A line already held by another owner
// fails with PinInUse; a retired p fails with PinMoved.
func Claim[T any, PT interface {
	*T
	Pin
}](p T, owner string) (T, error) {
	b := PT(&p).base()
	if err := b.check(); err != nil {
		return p, err
	}
	b.b.owner[b.bit] = owner
	b.b.gen[b.bit]++
	b.gen = b.b.gen[b.bit]
	return p, nil
}

// Check reports the error Claim would return for p without claiming it.
// Binders check every pin before claiming any.
func Check[T any, PT interface {
	*T
	Pin
}](p T) error {
	return PT(&p).base().check()
}

func (p *pin) check() error {
	if p.b == nil {
		return errcode.Wrap(errcode.InvalidParams, "port.claim")
	}
	if o := p.b.Owner(p.bit); o != "" {
		return &errcode.E{C: errcode.PinInUse, Op: "port.claim", Msg: p.Name() + " held by " + o}
	}
	if !p.live() {
		return &errcode.E{C: errcode.PinMoved, Op: "port.claim", Msg: p.Name()}
	}
	return nil
}

// Unclaim frees the line held through p. p stays live and is returned to
// the caller as is.
func Unclaim[T any, PT interface {
	*T
	Pin
}](p T) T {
	b := PT(&p).base()
	if b.b != nil && b.live() {
		b.b.owner[b.bit] = ""
	}
	return p
}

// Live reports whether p is the most recent value of its line.
func Live[T any, PT interface {
	*T
	Pin
}](p T) bool {
	return PT(&p).base().live()
}
