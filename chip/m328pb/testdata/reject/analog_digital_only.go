package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/port"
)

// PB5 has no ADC channel.
func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pb, _ := p.PORTB.Split()
	_ = port.IntoAnalogInput(pb.PB5, pb.DDR, p.DIDR0) // want "missing method Channel"
}
