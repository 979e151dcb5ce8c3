package sim

// UCSRnA bits.
const (
	rxc  = 7
	txc  = 6
	udre = 5
	fe   = 4
	dor  = 3
	upe  = 2
	u2x  = 1
	mpcm = 0
)

// UCSRnB bits.
const (
	rxen = 4
	txen = 3
)

// Receive error flags accepted by InjectWithError.
const (
	FlagFrame   = 1 << fe
	FlagOverrun = 1 << dor
	FlagParity  = 1 << upe
)

// USARTAddrs are the data-space addresses of one USART unit.
type USARTAddrs struct {
	CtrlA, CtrlB, CtrlC, BaudLo, BaudHi, Data uintptr
}

type rxFrame struct {
	b     byte
	flags uint8
}

// USART models one USART. Transmission completes instantly.
type USART struct {
	m *Memory
	a USARTAddrs

	// Echo feeds every transmitted byte back into the receiver.
	Echo bool

	Sent []byte

	rx []rxFrame
}

// NewUSART attaches a USART model to m at the given addresses.
func NewUSART(m *Memory, a USARTAddrs) *USART {
	u := &USART{m: m, a: a}
	m.Poke(a.CtrlA, 1<<udre)
	m.Poke(a.CtrlC, 0x06)
	m.OnStore(a.Data, u.storeData)
	m.OnLoad(a.Data, u.loadData)
	m.OnStore(a.CtrlA, func(old, v uint8) uint8 {
		out := old&^(1<<u2x|1<<mpcm) | v&(1<<u2x|1<<mpcm)
		if v&(1<<txc) != 0 {
			out &^= 1 << txc
		}
		return out
	})
	m.OnStore(a.CtrlB, func(old, v uint8) uint8 {
		u.sync(v)
		return v
	})
	return u
}

func (u *USART) enabled(bit uint8) bool { return u.m.Peek(u.a.CtrlB)&(1<<bit) != 0 }

// Inject queues bytes on the receive line.
func (u *USART) Inject(bs ...byte) {
	for _, b := range bs {
		u.rx = append(u.rx, rxFrame{b: b})
	}
	u.sync(u.m.Peek(u.a.CtrlB))
}

// InjectWithError queues one byte received with the given error flags.
func (u *USART) InjectWithError(b byte, flags uint8) {
	u.rx = append(u.rx, rxFrame{b: b, flags: flags & (FlagFrame | FlagOverrun | FlagParity)})
	u.sync(u.m.Peek(u.a.CtrlB))
}

// sync mirrors the head of the receive FIFO into UCSRnA and UDRn.
func (u *USART) sync(ctrlB uint8) {
	a := u.m.Peek(u.a.CtrlA) &^ (1<<rxc | FlagFrame | FlagOverrun | FlagParity)
	if ctrlB&(1<<rxen) != 0 && len(u.rx) > 0 {
		a |= 1<<rxc | u.rx[0].flags
		u.m.Poke(u.a.Data, u.rx[0].b)
	}
	u.m.Poke(u.a.CtrlA, a)
}

func (u *USART) storeData(old, v uint8) uint8 {
	if !u.enabled(txen) {
		return old
	}
	u.Sent = append(u.Sent, v)
	u.m.Poke(u.a.CtrlA, u.m.Peek(u.a.CtrlA)|1<<txc|1<<udre)
	if u.Echo {
		u.rx = append(u.rx, rxFrame{b: v})
		u.sync(u.m.Peek(u.a.CtrlB))
	}
	// The data register reads back the receive buffer, not what was sent.
	return old
}

func (u *USART) loadData(v uint8) uint8 {
	if u.enabled(rxen) && len(u.rx) > 0 {
		v = u.rx[0].b
		u.rx = u.rx[1:]
		u.sync(u.m.Peek(u.a.CtrlB))
	}
	return v
}
