package wdt

import (
	"errors"
	"testing"
	"time"

	"avrhal-go/errcode"
	"avrhal-go/internal/sim"
	"avrhal-go/reg"
)

func testRegisters() Registers {
	c, s := reg.Reg8(0x60), reg.Reg8(0x54)
	return Registers{
		Control:   c,
		Status:    s,
		IntFlag:   reg.Bit{Reg: c, Pos: 7},
		IntEnable: reg.Bit{Reg: c, Pos: 6},
		Prescale3: reg.Bit{Reg: c, Pos: 5},
		Change:    reg.Bit{Reg: c, Pos: 4},
		Enable:    reg.Bit{Reg: c, Pos: 3},
		Prescale:  reg.Field{Reg: c, Shift: 0, Width: 3},
		ResetFlag: reg.Bit{Reg: s, Pos: 3},
	}
}

func newWatchdog(t *testing.T) (*Watchdog, *sim.Memory, *[]uint8, *int) {
	t.Helper()
	m := sim.NewMemory()
	var writes []uint8
	m.OnStore(0x60, func(_, v uint8) uint8 {
		writes = append(writes, v)
		return v
	})
	feeds := 0
	w, err := New(m, testRegisters(), Config{Feed: func() { feeds++ }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, m, &writes, &feeds
}

func TestStartSequence(t *testing.T) {
	w, m, writes, feeds := newWatchdog(t)
	m.Poke(0x54, 1<<3)
	if !w.CausedReset() {
		t.Fatal("WDRF not reported")
	}
	if err := w.Start(Timeout2s); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// WDCE|WDE, then WDE with WDP=0111.
	want := []uint8{0x18, 0x0F}
	if len(*writes) != 2 || (*writes)[0] != want[0] || (*writes)[1] != want[1] {
		t.Fatalf("writes=%#x want %#x", *writes, want)
	}
	if m.Peek(0x54)&(1<<3) != 0 {
		t.Fatal("WDRF not cleared")
	}
	if *feeds != 1 {
		t.Fatalf("feeds=%d", *feeds)
	}
}

func TestLongTimeoutUsesWDP3(t *testing.T) {
	w, _, writes, _ := newWatchdog(t)
	if err := w.Start(Timeout8s); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := (*writes)[1]; got != 0x29 {
		t.Fatalf("WDTCSR=%#x", got)
	}
}

func TestStopAndFeed(t *testing.T) {
	w, m, writes, feeds := newWatchdog(t)
	w.Feed()
	w.Stop()
	if got := (*writes)[len(*writes)-1]; got != 0 {
		t.Fatalf("last WDTCSR=%#x", got)
	}
	if m.Peek(0x60) != 0 {
		t.Fatal("watchdog still enabled")
	}
	if *feeds != 2 {
		t.Fatalf("feeds=%d", *feeds)
	}
}

func TestTimeoutRange(t *testing.T) {
	w, _, _, _ := newWatchdog(t)
	if err := w.Start(Timeout8s + 1); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("Start: %v", err)
	}
	if d := Timeout16ms.Duration(); d != 16*time.Millisecond {
		t.Fatalf("16ms=%v", d)
	}
	if d := Timeout8s.Duration(); d != 8192*time.Millisecond {
		t.Fatalf("8s=%v", d)
	}
}

func TestValidate(t *testing.T) {
	r := testRegisters()
	r.ResetFlag = reg.Bit{Reg: r.Control, Pos: 3}
	if _, err := New(sim.NewMemory(), r, Config{}); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("WDRF in WDTCSR accepted: %v", err)
	}
}
