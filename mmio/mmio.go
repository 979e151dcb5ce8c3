// Package mmio is the register access contract every driver in this module
// is written against. A Space is the MCU's byte-addressed data space: on the
// target it is backed by volatile loads and stores, on the host by a
// simulation (see internal/sim).
package mmio

// Space is a byte-addressed I/O data space.
type Space interface {
	Load8(addr uintptr) uint8
	Store8(addr uintptr, v uint8)
}
