//go:build !(tinygo && avr)

package wdt

func wdr() {}

type irqState struct{}

func disableInterrupts() irqState { return irqState{} }

func restoreInterrupts(irqState) {}
