package sim

// PortAddrs are the data-space addresses of one I/O port.
type PortAddrs struct {
	Pin, DDR, Port uintptr
}

// GPIO models one I/O port. Lines configured as inputs read the externally
// driven level; undriven inputs read high when the pull-up is on and low
// otherwise.
type GPIO struct {
	m *Memory
	a PortAddrs

	driven uint8
	level  uint8
}

// NewGPIO attaches a port model to m at the given addresses.
func NewGPIO(m *Memory, a PortAddrs) *GPIO {
	g := &GPIO{m: m, a: a}
	m.OnLoad(a.Pin, g.loadPin)
	// Writing a one to PINx toggles the matching PORTx bit.
	m.OnStore(a.Pin, func(old, v uint8) uint8 {
		m.Poke(a.Port, m.Peek(a.Port)^v)
		return old
	})
	return g
}

// Drive forces an external level on one line.
func (g *GPIO) Drive(bit uint8, high bool) {
	g.driven |= 1 << bit
	if high {
		g.level |= 1 << bit
	} else {
		g.level &^= 1 << bit
	}
}

// Release stops driving a line externally.
func (g *GPIO) Release(bit uint8) {
	g.driven &^= 1 << bit
}

// Output reports the level the port drives on a line configured as output.
func (g *GPIO) Output(bit uint8) bool {
	return g.m.Peek(g.a.Port)&(1<<bit) != 0
}

// IsOutput reports whether a line is configured as output.
func (g *GPIO) IsOutput(bit uint8) bool {
	return g.m.Peek(g.a.DDR)&(1<<bit) != 0
}

func (g *GPIO) loadPin(uint8) uint8 {
	ddr := g.m.Peek(g.a.DDR)
	port := g.m.Peek(g.a.Port)
	in := g.level&g.driven | port&^g.driven
	return port&ddr | in&^ddr
}
