package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/port"
	"avrhal-go/usart"
)

// An output line cannot serve as a receive input.
func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pd, _ := p.PORTD.Split()
	rx := pd.PD0.IntoOutput(pd.DDR)
	tx := pd.PD1.IntoOutput(pd.DDR)
	_, _ = m328pb.NewUsart0[port.Floating](p.USART0, rx, tx, usart.DefaultConfig()) // want "cannot use"
}
