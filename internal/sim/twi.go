package sim

// TWCR bits.
const (
	twen  = 2
	twsto = 4
	twsta = 5
	twea  = 6
	twint = 7
)

// TWSR status codes (prescaler bits masked).
const (
	StatusStart       = 0x08
	StatusRepStart    = 0x10
	StatusMTSlaAck    = 0x18
	StatusMTSlaNack   = 0x20
	StatusMTDataAck   = 0x28
	StatusMTDataNack  = 0x30
	StatusArbLost     = 0x38
	StatusMRSlaAck    = 0x40
	StatusMRSlaNack   = 0x48
	StatusMRDataAck   = 0x50
	StatusMRDataNack  = 0x58
	StatusNoInfo      = 0xF8
	StatusBusError    = 0x00
)

// Target is a device on the simulated bus. tinygo.org/x/drivers/tester
// devices satisfy it.
type Target interface {
	Addr() uint8
	Tx(w, r []byte) error
}

// Transfer records one START..STOP bus transaction.
type Transfer struct {
	Addr  uint8
	Write []byte
	Read  []byte
	Err   error
}

// TWIAddrs are the data-space addresses of one TWI unit.
type TWIAddrs struct {
	Bitrate, Status, Data, Control uintptr
}

type twiPhase uint8

const (
	phaseIdle twiPhase = iota
	phaseStarted
	phaseMT
	phaseMR
)

// TWI models one two-wire interface in master mode.
type TWI struct {
	m *Memory
	a TWIAddrs

	targets map[uint8]Target

	// NackAfter makes the Nth data byte of a master-transmit transaction
	// answer NACK (1-based). Zero disables.
	NackAfter int
	// LoseArbitration makes the next address byte lose arbitration.
	LoseArbitration bool
	// Stuck keeps TWINT low forever, as a wedged bus would.
	Stuck bool
	// BusError makes the next START or byte end with a bus error (status
	// 0x00), abandoning the transaction.
	BusError bool
	// HoldStop keeps TWSTO set after a STOP request, as when another
	// master holds SCL low.
	HoldStop bool
	// ReadAhead is how many bytes are fetched from a target when it is
	// addressed for reading. Default 16.
	ReadAhead int

	Transfers []Transfer
	// Stops counts STOP requests.
	Stops int

	phase    twiPhase
	cur      *Transfer
	target   Target
	consumed bool
	written  int
	rbuf     []byte
	ridx     int
}

// NewTWI attaches a TWI model to m at the given addresses.
func NewTWI(m *Memory, a TWIAddrs) *TWI {
	t := &TWI{m: m, a: a, targets: make(map[uint8]Target)}
	m.Poke(a.Status, StatusNoInfo)
	m.Poke(a.Data, 0xFF)
	m.OnStore(a.Control, t.storeControl)
	m.OnStore(a.Status, func(old, v uint8) uint8 { return old&0xF8 | v&0x03 })
	return t
}

// Attach puts d on the bus. A second device at the same address panics.
func (t *TWI) Attach(d Target) {
	if _, ok := t.targets[d.Addr()]; ok {
		panic("sim: duplicate twi target")
	}
	t.targets[d.Addr()] = d
}

func (t *TWI) setStatus(s uint8) {
	t.m.Poke(t.a.Status, t.m.Peek(t.a.Status)&0x03|s)
}

func (t *TWI) storeControl(old, v uint8) uint8 {
	// TWINT is cleared by writing one; writing zero leaves it.
	out := v &^ (1 << twint)
	if v&(1<<twint) == 0 {
		out |= old & (1 << twint)
	}
	if v&(1<<twen) == 0 {
		t.reset()
		return out
	}
	if v&(1<<twint) == 0 {
		return out
	}

	switch {
	case v&(1<<twsto) != 0:
		t.stop()
		if t.HoldStop {
			return out
		}
		// TWSTO clears itself once the STOP is on the bus; TWINT stays low.
		return out &^ (1 << twsto)
	case t.BusError:
		t.BusError = false
		t.reset()
		t.setStatus(StatusBusError)
	case v&(1<<twsta) != 0:
		t.start()
	default:
		t.step(v&(1<<twea) != 0)
	}
	if t.Stuck {
		return out
	}
	return out | 1<<twint
}

func (t *TWI) reset() {
	t.phase = phaseIdle
	t.cur = nil
	t.target = nil
}

func (t *TWI) start() {
	if t.phase == phaseIdle {
		t.setStatus(StatusStart)
		t.cur = &Transfer{}
		t.consumed = false
		t.written = 0
	} else {
		t.setStatus(StatusRepStart)
	}
	t.phase = phaseStarted
}

func (t *TWI) stop() {
	t.Stops++
	if t.cur != nil {
		if t.target != nil && len(t.cur.Write) > 0 && !t.consumed {
			t.cur.Err = t.target.Tx(t.cur.Write, nil)
		}
		t.Transfers = append(t.Transfers, *t.cur)
	}
	t.reset()
}

func (t *TWI) step(ack bool) {
	switch t.phase {
	case phaseStarted:
		t.address()
	case phaseMT:
		b := t.m.Peek(t.a.Data)
		t.cur.Write = append(t.cur.Write, b)
		t.written++
		if t.NackAfter > 0 && t.written == t.NackAfter {
			// The target refused the byte; nothing is delivered on STOP.
			t.consumed = true
			t.setStatus(StatusMTDataNack)
			return
		}
		t.setStatus(StatusMTDataAck)
	case phaseMR:
		var b uint8 = 0xFF
		if t.ridx < len(t.rbuf) {
			b = t.rbuf[t.ridx]
		}
		t.ridx++
		t.m.Poke(t.a.Data, b)
		t.cur.Read = append(t.cur.Read, b)
		if ack {
			t.setStatus(StatusMRDataAck)
		} else {
			t.setStatus(StatusMRDataNack)
		}
	default:
		t.setStatus(StatusBusError)
	}
}

func (t *TWI) address() {
	sla := t.m.Peek(t.a.Data)
	addr, read := sla>>1, sla&1 == 1
	t.cur.Addr = addr
	if t.LoseArbitration {
		t.LoseArbitration = false
		t.setStatus(StatusArbLost)
		t.Transfers = append(t.Transfers, *t.cur)
		t.reset()
		return
	}
	d, ok := t.targets[addr]
	if !ok {
		if read {
			t.setStatus(StatusMRSlaNack)
		} else {
			t.setStatus(StatusMTSlaNack)
		}
		return
	}
	t.target = d
	if !read {
		t.phase = phaseMT
		t.setStatus(StatusMTSlaAck)
		return
	}
	n := t.ReadAhead
	if n <= 0 {
		n = 16
	}
	t.rbuf = make([]byte, n)
	t.ridx = 0
	t.cur.Err = d.Tx(t.cur.Write, t.rbuf)
	t.consumed = true
	t.phase = phaseMR
	t.setStatus(StatusMRSlaAck)
}
