package m328pb

import "sort"

// Pin directions as they appear in the binding table.
const (
	ModeOutput = "output"
	ModeInput  = "input"
	ModePullUp = "input-pullup"
)

// PinRole is one line of a binding.
type PinRole struct {
	Role string `yaml:"role"`
	Line string `yaml:"line"`
	Mode string `yaml:"mode"`
}

// Binding describes one constructor: the handle it consumes and the lines
// it claims.
type Binding struct {
	Name        string    `yaml:"name"`
	Handle      string    `yaml:"handle"`
	Constructor string    `yaml:"constructor"`
	Pins        []PinRole `yaml:"pins"`
}

// Bindings returns the binding table of the chip. Input lines that accept
// either pull mode are listed as ModeInput.
func Bindings() []Binding {
	return []Binding{
		{Name: "I2c0", Handle: "TWI0", Constructor: "NewI2c0", Pins: []PinRole{
			{"SDA", "PC4", ModePullUp}, {"SCL", "PC5", ModePullUp}}},
		{Name: "I2c0", Handle: "TWI0", Constructor: "NewI2c0ExternalPullup", Pins: []PinRole{
			{"SDA", "PC4", ModeInput}, {"SCL", "PC5", ModeInput}}},
		{Name: "I2c1", Handle: "TWI1", Constructor: "NewI2c1", Pins: []PinRole{
			{"SDA", "PE0", ModePullUp}, {"SCL", "PE1", ModePullUp}}},
		{Name: "I2c1", Handle: "TWI1", Constructor: "NewI2c1ExternalPullup", Pins: []PinRole{
			{"SDA", "PE0", ModeInput}, {"SCL", "PE1", ModeInput}}},
		{Name: "Spi0", Handle: "SPI0", Constructor: "NewSpi0", Pins: []PinRole{
			{"SCLK", "PB5", ModeOutput}, {"MOSI", "PB3", ModeOutput}, {"MISO", "PB4", ModeInput}}},
		{Name: "Spi1", Handle: "SPI1", Constructor: "NewSpi1", Pins: []PinRole{
			{"SCLK", "PC1", ModeOutput}, {"MOSI", "PE3", ModeOutput}, {"MISO", "PC0", ModeInput}}},
		{Name: "Usart0", Handle: "USART0", Constructor: "NewUsart0", Pins: []PinRole{
			{"RX", "PD0", ModeInput}, {"TX", "PD1", ModeOutput}}},
		{Name: "Usart1", Handle: "USART1", Constructor: "NewUsart1", Pins: []PinRole{
			{"RX", "PB4", ModeInput}, {"TX", "PB3", ModeOutput}}},
	}
}

// SharedLines maps each line used by more than one peripheral to the sorted
// names of those peripherals. Variants of the same binding count once.
func SharedLines(bs []Binding) map[string][]string {
	users := map[string]map[string]bool{}
	for _, b := range bs {
		for _, p := range b.Pins {
			if users[p.Line] == nil {
				users[p.Line] = map[string]bool{}
			}
			users[p.Line][b.Name] = true
		}
	}
	out := map[string][]string{}
	for line, set := range users {
		if len(set) < 2 {
			continue
		}
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		out[line] = names
	}
	return out
}
