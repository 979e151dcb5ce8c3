//go:build tinygo && avr

// m328pb-demo echoes USART0, blinks PB5 and reports an MCP9808 on TWI0
// every second while feeding the watchdog.
package main

import (
	"io"
	"time"

	"avrhal-go/chip/m328pb"
	"avrhal-go/twi"
	"avrhal-go/usart"
	"avrhal-go/wdt"
	"avrhal-go/x/conv"

	"tinygo.org/x/drivers/mcp9808"
)

const (
	reportEvery = time.Second
	tick        = 10 * time.Millisecond
)

func main() {
	p := m328pb.Take()
	pb, _ := p.PORTB.Split()
	pc, _ := p.PORTC.Split()
	pd, _ := p.PORTD.Split()

	// ---------------- Console ----------------

	u, err := m328pb.NewUsart0(p.USART0, pd.PD0, pd.PD1.IntoOutputHigh(pd.DDR), usart.DefaultConfig())
	if err != nil {
		println("[demo] usart0:", err.Error())
		return
	}
	say(u, "[demo] boot")

	dog, err := m328pb.NewWatchdog(p.WDT, wdt.Config{})
	if err != nil {
		say(u, "[demo] wdt: "+err.Error())
		return
	}
	if dog.CausedReset() {
		say(u, "[demo] watchdog reset")
	}
	_ = dog.Start(wdt.Timeout2s)

	// ---------------- Sensor ----------------

	cfg := twi.DefaultConfig()
	cfg.Speed = 400_000
	i2c, err := m328pb.NewI2c0(p.TWI0, pc.PC4.IntoPullUpInput(pc.DDR), pc.PC5.IntoPullUpInput(pc.DDR), cfg)
	if err != nil {
		say(u, "[demo] i2c0: "+err.Error())
		return
	}
	sensor := mcp9808.New(i2c)
	if !sensor.Connected() {
		say(u, "[demo] mcp9808 not found")
	}

	led := pb.PB5.IntoOutput(pb.DDR)

	// ---------------- Loop ----------------

	var buf [16]byte
	last := time.Now()
	for {
		dog.Feed()
		if n, _ := u.Read(buf[:]); n > 0 {
			_, _ = u.Write(buf[:n])
		}
		if time.Since(last) >= reportEvery {
			last = time.Now()
			led.Toggle()
			report(u, &sensor)
		}
		time.Sleep(tick)
	}
}

func report(w io.Writer, d *mcp9808.Device) {
	c, err := d.ReadTemperature()
	if err != nil {
		say(w, "[temp] "+err.Error())
		return
	}
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	milli := uint64(c*1000 + 0.5)
	var whole [20]byte
	frac := [3]byte{
		byte('0' + milli/100%10),
		byte('0' + milli/10%10),
		byte('0' + milli%10),
	}
	say(w, "[temp] "+sign+string(conv.Utoa(whole[:], milli/1000))+"."+string(frac[:])+" C")
}

func say(w io.Writer, s string) {
	_, _ = w.Write([]byte(s))
	_, _ = w.Write([]byte("\r\n"))
}
