package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/twi"
)

// Without the ExternalPullup variant the lines must carry pull-ups.
func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pc, _ := p.PORTC.Split()
	_, _ = m328pb.NewI2c0(p.TWI0, pc.PC4, pc.PC5, twi.DefaultConfig()) // want "cannot use"
}
