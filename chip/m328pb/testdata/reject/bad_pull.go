package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/port"
)

var _ port.Input[m328pb.PortB, m328pb.PB0, int] // want "does not satisfy"

func main() {}
