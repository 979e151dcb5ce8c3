package m328pb

// Port groups.
type (
	PortB struct{}
	PortC struct{}
	PortD struct{}
	PortE struct{}
)

func (PortB) Letter() byte { return 'B' }
func (PortC) Letter() byte { return 'C' }
func (PortD) Letter() byte { return 'D' }
func (PortE) Letter() byte { return 'E' }

// Lines. PC6 is RESET unless the fuse says otherwise; PE0..PE3 exist only on
// the PB variant.
type (
	PB0 struct{}
	PB1 struct{}
	PB2 struct{}
	PB3 struct{}
	PB4 struct{}
	PB5 struct{}
	PB6 struct{}
	PB7 struct{}

	PC0 struct{}
	PC1 struct{}
	PC2 struct{}
	PC3 struct{}
	PC4 struct{}
	PC5 struct{}
	PC6 struct{}

	PD0 struct{}
	PD1 struct{}
	PD2 struct{}
	PD3 struct{}
	PD4 struct{}
	PD5 struct{}
	PD6 struct{}
	PD7 struct{}

	PE0 struct{}
	PE1 struct{}
	PE2 struct{}
	PE3 struct{}
)

func (PB0) Group() PortB { return PortB{} }
func (PB0) Bit() uint8   { return 0 }
func (PB1) Group() PortB { return PortB{} }
func (PB1) Bit() uint8   { return 1 }
func (PB2) Group() PortB { return PortB{} }
func (PB2) Bit() uint8   { return 2 }
func (PB3) Group() PortB { return PortB{} }
func (PB3) Bit() uint8   { return 3 }
func (PB4) Group() PortB { return PortB{} }
func (PB4) Bit() uint8   { return 4 }
func (PB5) Group() PortB { return PortB{} }
func (PB5) Bit() uint8   { return 5 }
func (PB6) Group() PortB { return PortB{} }
func (PB6) Bit() uint8   { return 6 }
func (PB7) Group() PortB { return PortB{} }
func (PB7) Bit() uint8   { return 7 }

func (PC0) Group() PortC { return PortC{} }
func (PC0) Bit() uint8   { return 0 }
func (PC1) Group() PortC { return PortC{} }
func (PC1) Bit() uint8   { return 1 }
func (PC2) Group() PortC { return PortC{} }
func (PC2) Bit() uint8   { return 2 }
func (PC3) Group() PortC { return PortC{} }
func (PC3) Bit() uint8   { return 3 }
func (PC4) Group() PortC { return PortC{} }
func (PC4) Bit() uint8   { return 4 }
func (PC5) Group() PortC { return PortC{} }
func (PC5) Bit() uint8   { return 5 }
func (PC6) Group() PortC { return PortC{} }
func (PC6) Bit() uint8   { return 6 }

func (PD0) Group() PortD { return PortD{} }
func (PD0) Bit() uint8   { return 0 }
func (PD1) Group() PortD { return PortD{} }
func (PD1) Bit() uint8   { return 1 }
func (PD2) Group() PortD { return PortD{} }
func (PD2) Bit() uint8   { return 2 }
func (PD3) Group() PortD { return PortD{} }
func (PD3) Bit() uint8   { return 3 }
func (PD4) Group() PortD { return PortD{} }
func (PD4) Bit() uint8   { return 4 }
func (PD5) Group() PortD { return PortD{} }
func (PD5) Bit() uint8   { return 5 }
func (PD6) Group() PortD { return PortD{} }
func (PD6) Bit() uint8   { return 6 }
func (PD7) Group() PortD { return PortD{} }
func (PD7) Bit() uint8   { return 7 }

func (PE0) Group() PortE { return PortE{} }
func (PE0) Bit() uint8   { return 0 }
func (PE1) Group() PortE { return PortE{} }
func (PE1) Bit() uint8   { return 1 }
func (PE2) Group() PortE { return PortE{} }
func (PE2) Bit() uint8   { return 2 }
func (PE3) Group() PortE { return PortE{} }
func (PE3) Bit() uint8   { return 3 }

// ADC channels.
func (PC0) Channel() uint8 { return 0 }
func (PC1) Channel() uint8 { return 1 }
func (PC2) Channel() uint8 { return 2 }
func (PC3) Channel() uint8 { return 3 }
func (PC4) Channel() uint8 { return 4 }
func (PC5) Channel() uint8 { return 5 }
func (PE2) Channel() uint8 { return 6 }
func (PE3) Channel() uint8 { return 7 }
