//go:build tinygo && avr

package wdt

import (
	"device/avr"
	"runtime/interrupt"
)

func wdr() { avr.Asm("wdr") }

func disableInterrupts() interrupt.State { return interrupt.Disable() }

func restoreInterrupts(s interrupt.State) { interrupt.Restore(s) }
