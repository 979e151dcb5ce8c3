package port

import (
	"errors"
	"testing"

	"avrhal-go/errcode"
	"avrhal-go/internal/sim"
)

type grpC struct{}

func (grpC) Letter() byte { return 'C' }

type lineC0 struct{}

func (lineC0) Group() grpC    { return grpC{} }
func (lineC0) Bit() uint8     { return 0 }
func (lineC0) Channel() uint8 { return 0 }

type lineC5 struct{}

func (lineC5) Group() grpC { return grpC{} }
func (lineC5) Bit() uint8  { return 5 }

var regsC = Registers{Pin: 0x26, DDR: 0x27, Port: 0x28}

func newPortC(t *testing.T) (*sim.Memory, *sim.GPIO, *DDR[grpC]) {
	t.Helper()
	m := sim.NewMemory()
	g := sim.NewGPIO(m, sim.PortAddrs{Pin: 0x26, DDR: 0x27, Port: 0x28})
	return m, g, NewDDR[grpC](NewBank(m, 'C', regsC))
}

func expectPanic(t *testing.T, code errcode.Code, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, code) {
			t.Fatalf("panic=%v want %s", r, code)
		}
	}()
	f()
}

func TestRegistersValidate(t *testing.T) {
	if err := regsC.Validate(); err != nil {
		t.Fatalf("valid registers rejected: %v", err)
	}
	bad := []Registers{
		{DDR: 0x27, Port: 0x28},
		{Pin: 0x26, DDR: 0x26, Port: 0x28},
	}
	for i, r := range bad {
		if !errors.Is(r.Validate(), errcode.InvalidParams) {
			t.Fatalf("case %d accepted", i)
		}
	}
}

func TestInitialWritesNothing(t *testing.T) {
	m, _, ddr := newPortC(t)
	p := Initial[grpC, lineC5](ddr)
	if m.Stores(0x27) != 0 || m.Stores(0x28) != 0 {
		t.Fatal("Initial touched registers")
	}
	if p.Name() != "PC5" {
		t.Fatalf("name=%q", p.Name())
	}
}

func TestOutputDrivesPort(t *testing.T) {
	_, g, ddr := newPortC(t)
	out := Initial[grpC, lineC5](ddr).IntoOutput(ddr)
	if !g.IsOutput(5) || g.Output(5) {
		t.Fatal("IntoOutput should leave an output driving low")
	}
	out.SetHigh()
	if !g.Output(5) || !out.IsSetHigh() {
		t.Fatal("SetHigh")
	}
	out.Toggle()
	if g.Output(5) {
		t.Fatal("Toggle should drive low")
	}
	out.SetLow()
	if out.IsSetHigh() {
		t.Fatal("SetLow")
	}
	hi := out.IntoOutputHigh(ddr)
	if !g.Output(5) || !hi.IsSetHigh() {
		t.Fatal("IntoOutputHigh")
	}
}

func TestInputLevels(t *testing.T) {
	_, g, ddr := newPortC(t)
	in := Initial[grpC, lineC5](ddr).IntoFloatingInput(ddr)
	if in.IsHigh() {
		t.Fatal("undriven floating input should read low")
	}
	g.Drive(5, true)
	if !in.IsHigh() {
		t.Fatal("driven input should read high")
	}
	g.Release(5)
	pu := in.IntoPullUpInput(ddr)
	if !pu.IsHigh() {
		t.Fatal("pull-up input should read high")
	}
	g.Drive(5, false)
	if !pu.IsLow() {
		t.Fatal("input pulled low should read low")
	}
}

func TestTransitionAlwaysWritesDirection(t *testing.T) {
	m, _, ddr := newPortC(t)
	p := Initial[grpC, lineC5](ddr).IntoFloatingInput(ddr)
	before := m.Stores(0x27)
	p = p.IntoFloatingInput(ddr)
	if m.Stores(0x27) != before+1 {
		t.Fatalf("DDR stores: got=%d want=%d", m.Stores(0x27), before+1)
	}
	_ = p
}

func TestStalePinPanics(t *testing.T) {
	_, _, ddr := newPortC(t)
	old := Initial[grpC, lineC5](ddr)
	out := old.IntoOutput(ddr)
	expectPanic(t, errcode.PinMoved, func() { old.IntoOutput(ddr) })
	expectPanic(t, errcode.PinMoved, func() { old.IsHigh() })

	_ = out.IntoFloatingInput(ddr)
	expectPanic(t, errcode.PinMoved, func() { out.SetHigh() })
}

func TestForeignDDRPanics(t *testing.T) {
	_, _, ddr := newPortC(t)
	_, _, other := newPortC(t)
	p := Initial[grpC, lineC5](ddr)
	expectPanic(t, errcode.InvalidParams, func() { p.IntoOutput(other) })
}

func TestAnalogInput(t *testing.T) {
	m, g, ddr := newPortC(t)
	didr := &DIDR{Reg: 0x7E}
	p := Initial[grpC, lineC0](ddr).IntoPullUpInput(ddr)
	a := IntoAnalogInput(p, ddr, didr)
	if m.Peek(0x7E)&1 == 0 {
		t.Fatal("digital input buffer still enabled")
	}
	if g.IsOutput(0) || m.Peek(0x28)&1 != 0 {
		t.Fatal("analog line must be a floating input")
	}
	if a.Channel() != 0 {
		t.Fatalf("channel=%d", a.Channel())
	}
	back := a.IntoFloatingInput(ddr)
	if m.Peek(0x7E)&1 != 0 {
		t.Fatal("digital input buffer not restored")
	}
	_ = back
}

func TestClaim(t *testing.T) {
	_, _, ddr := newPortC(t)
	p := Initial[grpC, lineC5](ddr).IntoOutput(ddr)
	if err := Check(p); err != nil {
		t.Fatalf("Check: %v", err)
	}
	held, err := Claim(p, "spi0")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if Live(p) || !Live(held) {
		t.Fatal("claim should retire the caller's copy")
	}
	if ddr.b.Owner(5) != "spi0" {
		t.Fatalf("owner=%q", ddr.b.Owner(5))
	}

	_, err = Claim(p, "usart1")
	if !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("second claim: %v", err)
	}

	back := Unclaim(held)
	if ddr.b.Owner(5) != "" || !Live(back) {
		t.Fatal("unclaim should free the line and keep the pin live")
	}
	_, err = Claim(p, "usart1")
	if !errors.Is(err, errcode.PinMoved) {
		t.Fatalf("stale claim: %v", err)
	}
	back.SetHigh()
}
