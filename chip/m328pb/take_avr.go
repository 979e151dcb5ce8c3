//go:build tinygo && avr

package m328pb

import "avrhal-go/mmio"

var taken bool

// Take returns the chip peripherals on the first call and nil afterwards.
func Take() *Peripherals {
	if taken {
		return nil
	}
	taken = true
	return TakeOn(mmio.Volatile, DefaultClock)
}
