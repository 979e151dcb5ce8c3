//go:build tinygo && avr

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

type volatileSpace struct{}

func (volatileSpace) Load8(addr uintptr) uint8 {
	return volatile.LoadUint8((*uint8)(unsafe.Pointer(addr)))
}

func (volatileSpace) Store8(addr uintptr, v uint8) {
	volatile.StoreUint8((*uint8)(unsafe.Pointer(addr)), v)
}

// Volatile is the chip's own data space.
var Volatile Space = volatileSpace{}
