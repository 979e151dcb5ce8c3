// Package sim models the ATmega328PB data space and the peripherals the
// drivers talk to, so bindings can be exercised on the host.
//
// The models follow the datasheet register layouts directly; they do not
// read the driver descriptors, which keeps them an independent check of the
// descriptor tables.
package sim

import (
	"avrhal-go/mmio"
	"avrhal-go/x/conv"
)

// Size covers the register file, I/O and extended I/O space.
const Size = 0x100

// StoreHook receives the current cell value and the value written by the
// CPU, and returns the value the cell holds afterwards.
type StoreHook func(old, v uint8) uint8

// LoadHook receives the cell value and returns what the CPU reads. It may
// update other cells through Poke.
type LoadHook func(v uint8) uint8

// Memory is a flat simulated data space.
type Memory struct {
	cells  [Size]uint8
	stores [Size]StoreHook
	loads  [Size]LoadHook

	storeCount [Size]int
	loadCount  [Size]int
}

var _ mmio.Space = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func check(addr uintptr) {
	if addr >= Size {
		var buf [8]byte
		panic("sim: address 0x" + string(conv.U16Hex(buf[:], uint16(addr))) + " out of range")
	}
}

// Load8 implements mmio.Space.
func (m *Memory) Load8(addr uintptr) uint8 {
	check(addr)
	m.loadCount[addr]++
	v := m.cells[addr]
	if h := m.loads[addr]; h != nil {
		v = h(v)
	}
	return v
}

// Store8 implements mmio.Space.
func (m *Memory) Store8(addr uintptr, v uint8) {
	check(addr)
	m.storeCount[addr]++
	if h := m.stores[addr]; h != nil {
		v = h(m.cells[addr], v)
	}
	m.cells[addr] = v
}

// Peek and Poke access a cell without hooks or accounting.
func (m *Memory) Peek(addr uintptr) uint8 { check(addr); return m.cells[addr] }
func (m *Memory) Poke(addr uintptr, v uint8) {
	check(addr)
	m.cells[addr] = v
}

// OnStore installs h for CPU stores to addr, replacing any previous hook.
func (m *Memory) OnStore(addr uintptr, h StoreHook) { check(addr); m.stores[addr] = h }

// OnLoad installs h for CPU loads from addr, replacing any previous hook.
func (m *Memory) OnLoad(addr uintptr, h LoadHook) { check(addr); m.loads[addr] = h }

// Stores returns how many CPU stores hit addr.
func (m *Memory) Stores(addr uintptr) int { check(addr); return m.storeCount[addr] }

// Loads returns how many CPU loads hit addr.
func (m *Memory) Loads(addr uintptr) int { check(addr); return m.loadCount[addr] }

// ResetCounters zeroes the access counters.
func (m *Memory) ResetCounters() {
	m.storeCount = [Size]int{}
	m.loadCount = [Size]int{}
}
