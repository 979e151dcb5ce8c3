package main

import "avrhal-go/chip/m328pb"

func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pb, _ := p.PORTB.Split()
	pc, _ := p.PORTC.Split()
	_ = pc.PC4.IntoOutput(pb.DDR) // want "cannot use"
}
