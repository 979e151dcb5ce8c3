package m328pb

import "avrhal-go/port"

// PinsB holds the lines of port B and the right to change their direction.
type PinsB struct {
	DDR *port.DDR[PortB]

	PB0 port.Input[PortB, PB0, port.Floating]
	PB1 port.Input[PortB, PB1, port.Floating]
	PB2 port.Input[PortB, PB2, port.Floating]
	PB3 port.Input[PortB, PB3, port.Floating]
	PB4 port.Input[PortB, PB4, port.Floating]
	PB5 port.Input[PortB, PB5, port.Floating]
	PB6 port.Input[PortB, PB6, port.Floating]
	PB7 port.Input[PortB, PB7, port.Floating]
}

// PinsC holds the lines of port C and the right to change their direction.
type PinsC struct {
	DDR *port.DDR[PortC]

	PC0 port.Input[PortC, PC0, port.Floating]
	PC1 port.Input[PortC, PC1, port.Floating]
	PC2 port.Input[PortC, PC2, port.Floating]
	PC3 port.Input[PortC, PC3, port.Floating]
	PC4 port.Input[PortC, PC4, port.Floating]
	PC5 port.Input[PortC, PC5, port.Floating]
	PC6 port.Input[PortC, PC6, port.Floating]
}

// PinsD holds the lines of port D and the right to change their direction.
type PinsD struct {
	DDR *port.DDR[PortD]

	PD0 port.Input[PortD, PD0, port.Floating]
	PD1 port.Input[PortD, PD1, port.Floating]
	PD2 port.Input[PortD, PD2, port.Floating]
	PD3 port.Input[PortD, PD3, port.Floating]
	PD4 port.Input[PortD, PD4, port.Floating]
	PD5 port.Input[PortD, PD5, port.Floating]
	PD6 port.Input[PortD, PD6, port.Floating]
	PD7 port.Input[PortD, PD7, port.Floating]
}

// PinsE holds the lines of port E and the right to change their direction.
type PinsE struct {
	DDR *port.DDR[PortE]

	PE0 port.Input[PortE, PE0, port.Floating]
	PE1 port.Input[PortE, PE1, port.Floating]
	PE2 port.Input[PortE, PE2, port.Floating]
	PE3 port.Input[PortE, PE3, port.Floating]
}

// Split hands out the lines of port B. It succeeds once.
func (p *PORTB) Split() (PinsB, error) {
	if err := p.check("m328pb.split"); err != nil {
		return PinsB{}, err
	}
	p.bound = true
	ddr := port.NewDDR[PortB](port.NewBank(p.space, 'B', portBRegs))
	return PinsB{
		DDR: ddr,
		PB0: port.Initial[PortB, PB0](ddr),
		PB1: port.Initial[PortB, PB1](ddr),
		PB2: port.Initial[PortB, PB2](ddr),
		PB3: port.Initial[PortB, PB3](ddr),
		PB4: port.Initial[PortB, PB4](ddr),
		PB5: port.Initial[PortB, PB5](ddr),
		PB6: port.Initial[PortB, PB6](ddr),
		PB7: port.Initial[PortB, PB7](ddr),
	}, nil
}

// Split hands out the lines of port C. It succeeds once.
func (p *PORTC) Split() (PinsC, error) {
	if err := p.check("m328pb.split"); err != nil {
		return PinsC{}, err
	}
	p.bound = true
	ddr := port.NewDDR[PortC](port.NewBank(p.space, 'C', portCRegs))
	return PinsC{
		DDR: ddr,
		PC0: port.Initial[PortC, PC0](ddr),
		PC1: port.Initial[PortC, PC1](ddr),
		PC2: port.Initial[PortC, PC2](ddr),
		PC3: port.Initial[PortC, PC3](ddr),
		PC4: port.Initial[PortC, PC4](ddr),
		PC5: port.Initial[PortC, PC5](ddr),
		PC6: port.Initial[PortC, PC6](ddr),
	}, nil
}

// Split hands out the lines of port D. It succeeds once.
func (p *PORTD) Split() (PinsD, error) {
	if err := p.check("m328pb.split"); err != nil {
		return PinsD{}, err
	}
	p.bound = true
	ddr := port.NewDDR[PortD](port.NewBank(p.space, 'D', portDRegs))
	return PinsD{
		DDR: ddr,
		PD0: port.Initial[PortD, PD0](ddr),
		PD1: port.Initial[PortD, PD1](ddr),
		PD2: port.Initial[PortD, PD2](ddr),
		PD3: port.Initial[PortD, PD3](ddr),
		PD4: port.Initial[PortD, PD4](ddr),
		PD5: port.Initial[PortD, PD5](ddr),
		PD6: port.Initial[PortD, PD6](ddr),
		PD7: port.Initial[PortD, PD7](ddr),
	}, nil
}

// Split hands out the lines of port E. It succeeds once.
func (p *PORTE) Split() (PinsE, error) {
	if err := p.check("m328pb.split"); err != nil {
		return PinsE{}, err
	}
	p.bound = true
	ddr := port.NewDDR[PortE](port.NewBank(p.space, 'E', portERegs))
	return PinsE{
		DDR: ddr,
		PE0: port.Initial[PortE, PE0](ddr),
		PE1: port.Initial[PortE, PE1](ddr),
		PE2: port.Initial[PortE, PE2](ddr),
		PE3: port.Initial[PortE, PE3](ddr),
	}, nil
}
