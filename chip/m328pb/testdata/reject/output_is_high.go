package main

import "avrhal-go/chip/m328pb"

func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pb, _ := p.PORTB.Split()
	out := pb.PB0.IntoOutput(pb.DDR)
	_ = out.IsHigh() // want "IsHigh undefined"
}
