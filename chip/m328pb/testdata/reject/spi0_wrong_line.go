package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/port"
	"avrhal-go/spi"
)

func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pb, _ := p.PORTB.Split()
	sclk := pb.PB2.IntoOutput(pb.DDR)
	mosi := pb.PB3.IntoOutput(pb.DDR)
	_, _ = m328pb.NewSpi0[port.Floating](p.SPI0, sclk, mosi, pb.PB4, spi.DefaultSettings()) // want "cannot use"
}
