package main

import "avrhal-go/chip/m328pb"

func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pb, _ := p.PORTB.Split()
	pb.PB0.SetHigh() // want "SetHigh undefined"
}
