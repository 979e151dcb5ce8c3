package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/twi"
)

func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pc, _ := p.PORTC.Split()
	sda := pc.PC4.IntoPullUpInput(pc.DDR)
	scl := pc.PC5.IntoPullUpInput(pc.DDR)
	_, _ = m328pb.NewI2c0(p.TWI1, sda, scl, twi.DefaultConfig()) // want "cannot use"
}
