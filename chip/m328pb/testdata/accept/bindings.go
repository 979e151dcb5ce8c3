package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/port"
	"avrhal-go/spi"
	"avrhal-go/twi"
	"avrhal-go/usart"
)

func main() {
	p := m328pb.TakeOn(nil, m328pb.DefaultClock)
	pb, _ := p.PORTB.Split()
	pc, _ := p.PORTC.Split()
	pd, _ := p.PORTD.Split()
	pe, _ := p.PORTE.Split()

	_, _ = m328pb.NewI2c0(p.TWI0, pc.PC4.IntoPullUpInput(pc.DDR), pc.PC5.IntoPullUpInput(pc.DDR), twi.DefaultConfig())
	_, _ = m328pb.NewI2c1ExternalPullup(p.TWI1, pe.PE0, pe.PE1, twi.DefaultConfig())
	_, _ = m328pb.NewSpi0(p.SPI0, pb.PB5.IntoOutput(pb.DDR), pb.PB3.IntoOutput(pb.DDR), pb.PB4, spi.DefaultSettings())
	_, _ = m328pb.NewSpi1(p.SPI1, pc.PC1.IntoOutput(pc.DDR), pe.PE3.IntoOutput(pe.DDR), pc.PC0.IntoPullUpInput(pc.DDR), spi.DefaultSettings())
	_, _ = m328pb.NewUsart0(p.USART0, pd.PD0, pd.PD1.IntoOutput(pd.DDR), usart.DefaultConfig())
	_ = port.IntoAnalogInput(pc.PC2, pc.DDR, p.DIDR0)
}
