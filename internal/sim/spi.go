package sim

// SPCR/SPSR bits.
const (
	spe  = 6
	mstr = 4
	spif = 7
	wcol = 6
)

// SPIAddrs are the data-space addresses of one SPI unit.
type SPIAddrs struct {
	Control, Status, Data uintptr
}

// SPI models one SPI unit in master mode. Without a Peer the unit is wired
// in loopback: MISO sees what MOSI sent.
type SPI struct {
	m *Memory
	a SPIAddrs

	// Peer returns the byte shifted in for each byte shifted out.
	Peer func(out byte) byte
	// Latency is how many status reads pass before SPIF rises.
	Latency int

	Sent []byte

	busy    bool
	pending int
	rx      byte
}

// NewSPI attaches an SPI model to m at the given addresses.
func NewSPI(m *Memory, a SPIAddrs) *SPI {
	s := &SPI{m: m, a: a}
	m.OnStore(a.Data, s.storeData)
	m.OnLoad(a.Status, s.loadStatus)
	m.OnLoad(a.Data, s.loadData)
	// SPIF and WCOL are read-only; SPI2X is the only writable status bit.
	m.OnStore(a.Status, func(old, v uint8) uint8 { return old&^0x01 | v&0x01 })
	return s
}

func (s *SPI) master() bool {
	c := s.m.Peek(s.a.Control)
	return c&(1<<spe) != 0 && c&(1<<mstr) != 0
}

func (s *SPI) storeData(old, v uint8) uint8 {
	if !s.master() {
		return v
	}
	if s.busy {
		s.m.Poke(s.a.Status, s.m.Peek(s.a.Status)|1<<wcol)
		return old
	}
	// Accessing SPDR clears a pending SPIF and WCOL.
	s.m.Poke(s.a.Status, s.m.Peek(s.a.Status)&^(1<<spif|1<<wcol))
	s.Sent = append(s.Sent, v)
	s.rx = v
	if s.Peer != nil {
		s.rx = s.Peer(v)
	}
	s.busy = true
	s.pending = s.Latency
	if s.pending == 0 {
		s.complete()
		return s.rx
	}
	// SPDR reads back the receive buffer until the byte completes.
	return old
}

func (s *SPI) complete() {
	s.busy = false
	s.m.Poke(s.a.Data, s.rx)
	s.m.Poke(s.a.Status, s.m.Peek(s.a.Status)|1<<spif)
}

func (s *SPI) loadStatus(v uint8) uint8 {
	if s.busy {
		if s.pending > 0 {
			s.pending--
		}
		if s.pending == 0 {
			s.complete()
			v = s.m.Peek(s.a.Status)
		}
	}
	return v
}

func (s *SPI) loadData(v uint8) uint8 {
	// Reading SPDR after SPSR clears SPIF and WCOL.
	s.m.Poke(s.a.Status, s.m.Peek(s.a.Status)&^(1<<spif|1<<wcol))
	return v
}

// ModeFault emulates SS being pulled low while in master mode: MSTR drops
// and SPIF rises.
func (s *SPI) ModeFault() {
	s.m.Poke(s.a.Control, s.m.Peek(s.a.Control)&^(1<<mstr))
	s.m.Poke(s.a.Status, s.m.Peek(s.a.Status)|1<<spif)
	s.busy = false
}
