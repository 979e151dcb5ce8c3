// echo-check drives the m328pb-demo firmware over a serial port and checks
// that every numbered line comes back.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tarm/serial"
)

func main() {
	dev := flag.String("port", "/dev/ttyUSB0", "serial device")
	baud := flag.Int("baud", 57600, "baud rate")
	rounds := flag.Int("n", 10, "number of lines sent")
	wait := flag.Duration("timeout", 2*time.Second, "time to wait for each echo")
	flag.Parse()

	p, err := serial.OpenPort(&serial.Config{Name: *dev, Baud: *baud, ReadTimeout: 100 * time.Millisecond})
	if err != nil {
		fmt.Fprintf(os.Stderr, "[echo] open %s: %v\n", *dev, err)
		os.Exit(1)
	}
	defer p.Close()

	failed := 0
	for i := 0; i < *rounds; i++ {
		line := []byte(fmt.Sprintf("ping %03d\n", i))
		if err := check(p, line, *wait); err != nil {
			fmt.Fprintf(os.Stderr, "[echo] %d: %v\n", i, err)
			failed++
			continue
		}
		fmt.Printf("[echo] %d ok\n", i)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "[echo] %d/%d lines lost\n", failed, *rounds)
		os.Exit(1)
	}
}

type port interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
}

// check writes line and reads until it shows up in the input. Firmware
// report lines may arrive around it.
func check(p port, line []byte, wait time.Duration) error {
	if _, err := p.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	var got []byte
	buf := make([]byte, 64)
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		n, err := p.Read(buf)
		if err != nil && n == 0 {
			return fmt.Errorf("read: %w", err)
		}
		got = append(got, buf[:n]...)
		if bytes.Contains(got, line) {
			return nil
		}
	}
	return fmt.Errorf("no echo within %v (got %q)", wait, got)
}
