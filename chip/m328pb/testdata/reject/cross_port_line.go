package main

import (
	"avrhal-go/chip/m328pb"
	"avrhal-go/port"
)

var _ port.Input[m328pb.PortB, m328pb.PC4, port.Floating] // want "does not satisfy"

func main() {}
