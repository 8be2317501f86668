package system

import (
	"bytes"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"github.com/jmchacon/65c02/cpu"
	"github.com/jmchacon/65c02/io"
	"github.com/jmchacon/65c02/memory"
)

const (
	RESET = uint16(0x0200)
	IRQ   = uint16(0x0300)
	NMI   = uint16(0x0400)
)

// hello prints HELLO to the console one byte at a time and stops.
var hello = []uint8{
	0xA2, 0x00, // LDX #$00
	0xBD, 0x0E, 0x02, // LDA $020E,X
	0xF0, 0x06, // BEQ $020D
	0x8D, 0x10, 0xF0, // STA $F010
	0xE8,       // INX
	0x80, 0xF5, // BRA $0202
	0xDB,                         // STP
	'H', 'E', 'L', 'L', 'O', 0x00, // message
}

func setup(t *testing.T, d *Def, prog []uint8) *System {
	t.Helper()
	s, err := Init(d)
	if err != nil {
		t.Fatalf("Can't initialize system: %v", err)
	}
	s.SetVectors(RESET, IRQ, NMI)
	if err := s.LoadBinary(RESET, prog); err != nil {
		t.Fatalf("Can't load program: %v", err)
	}
	return s
}

func TestInit(t *testing.T) {
	if _, err := Init(nil); err == nil {
		t.Error("Init(nil) didn't return an error")
	}
	s, err := Init(&Def{Debug: true})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if s.Debug() == "" {
		t.Error("Debug() with debug set returned nothing")
	}
	if got, want := s.CPU().State(), cpu.STATE_RECOVERING_FROM_RESET; got != want {
		t.Errorf("Bad CPU state: got %s want %s", got, want)
	}
}

func TestHello(t *testing.T) {
	var out bytes.Buffer
	s := setup(t, &Def{Output: &out}, hello)
	n, err := s.Run(10000)
	var stop Stopped
	if !errors.As(err, &stop) {
		t.Fatalf("Run didn't stop on STP: %v\n%s", err, spew.Sdump(s.CPU()))
	}
	if got, want := stop.PC, RESET+0x0E; got != want {
		t.Errorf("Stopped at wrong PC: got %.4X want %.4X", got, want)
	}
	if got, want := out.String(), "HELLO"; got != want {
		t.Errorf("Bad output: got %q want %q", got, want)
	}
	if got, want := s.Console().Output(), uint8('O'); got != want {
		t.Errorf("Bad console latch: got %.2X want %.2X", got, want)
	}
	if got, want := uint64(n), s.Cycles(); got != want {
		t.Errorf("Run cycles don't match system total: got %d want %d", got, want)
	}
	// Once stopped each run costs one idle cycle and reports the stop again.
	n, err = s.Run(100)
	if !errors.As(err, &stop) {
		t.Errorf("Run after STP didn't report stop: %v", err)
	}
	if got, want := n, 1; got != want {
		t.Errorf("Run after STP: got %d cycles want %d", got, want)
	}
	s.Reset()
	if _, err := s.Step(); err != nil {
		t.Errorf("Still getting error after reset: %v", err)
	}
	if got, want := s.CPU().PC, RESET; got != want {
		t.Errorf("Bad PC after reset: got %.4X want %.4X", got, want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestOutputError(t *testing.T) {
	s := setup(t, &Def{Output: failWriter{}}, hello)
	if _, err := s.Run(10000); err == nil {
		t.Error("Run didn't report the output error")
	}
}

func TestBudget(t *testing.T) {
	// JMP * forever.
	s := setup(t, &Def{}, []uint8{0x4C, 0x00, 0x02})
	for _, budget := range []int{1, 10, 100, 1000} {
		n, err := s.Run(budget)
		if err != nil {
			t.Fatalf("Run(%d): %v", budget, err)
		}
		// An instruction is never split so we can overshoot by at most one instruction.
		if n < budget || n >= budget+7 {
			t.Errorf("Run(%d) ran %d cycles", budget, n)
		}
	}
}

func TestBreakpoint(t *testing.T) {
	var out bytes.Buffer
	s := setup(t, &Def{Output: &out}, hello)
	s.AddBreakpoint(0x020A)
	for i, want := range []string{"H", "HE", "HEL"} {
		_, err := s.Run(10000)
		var bp Breakpoint
		if !errors.As(err, &bp) {
			t.Fatalf("%d: didn't hit breakpoint: %v", i, err)
		}
		if got, want := bp.PC, uint16(0x020A); got != want {
			t.Errorf("%d: breakpoint at wrong PC: got %.4X want %.4X", i, got, want)
		}
		if got := out.String(); got != want {
			t.Errorf("%d: bad output at breakpoint: got %q want %q", i, got, want)
		}
	}
	s.RemoveBreakpoint(0x020A)
	_, err := s.Run(10000)
	if !errors.As(err, &Stopped{}) {
		t.Errorf("Didn't run to completion after removing breakpoint: %v", err)
	}
	if got, want := out.String(), "HELLO"; got != want {
		t.Errorf("Bad output: got %q want %q", got, want)
	}
}

func TestWatchpoint(t *testing.T) {
	s := setup(t, &Def{}, hello)
	s.AddWatchpoint(CONSOLE_OUT)
	_, err := s.Run(10000)
	var wp Watchpoint
	if !errors.As(err, &wp) {
		t.Fatalf("Didn't hit watchpoint: %v", err)
	}
	if diff := deep.Equal(wp, Watchpoint{Addr: CONSOLE_OUT, Val: 'H', Write: true, PC: 0x0207}); diff != nil {
		t.Errorf("Bad watchpoint: %v", diff)
	}
	// Reads of the message are watched as well.
	s.RemoveWatchpoint(CONSOLE_OUT)
	s.AddWatchpoint(0x0210)
	_, err = s.Run(10000)
	if !errors.As(err, &wp) {
		t.Fatalf("Didn't hit read watchpoint: %v", err)
	}
	if diff := deep.Equal(wp, Watchpoint{Addr: 0x0210, Val: 'L', Write: false, PC: 0x0202}); diff != nil {
		t.Errorf("Bad watchpoint: %v", diff)
	}
}

func TestTrace(t *testing.T) {
	s := setup(t, &Def{}, hello)
	var cycles []memory.Cycle
	s.Trace(func(c memory.Cycle) {
		cycles = append(cycles, c)
	})
	n, err := s.Step()
	if err != nil {
		t.Fatalf("Reset step: %v", err)
	}
	if got, want := len(cycles), n; got != want {
		t.Fatalf("Traced %d cycles but step took %d", got, want)
	}
	want := []memory.Cycle{
		{Addr: cpu.RESET_VECTOR, Val: uint8(RESET & 0xFF), Kind: memory.ACCESS_VECTOR},
		{Addr: cpu.RESET_VECTOR + 1, Val: uint8(RESET >> 8), Kind: memory.ACCESS_VECTOR},
	}
	if diff := deep.Equal(cycles[n-2:], want); diff != nil {
		t.Errorf("Bad vector fetch: %v\n%s", diff, spew.Sdump(cycles))
	}
	cycles = nil
	if _, err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	want = []memory.Cycle{
		{Addr: RESET, Val: 0xA2, Opcode: true, Kind: memory.ACCESS_OPCODE},
		{Addr: RESET + 1, Val: 0x00, Kind: memory.ACCESS_OPERAND},
	}
	if diff := deep.Equal(cycles, want); diff != nil {
		t.Errorf("Bad LDX trace: %v", diff)
	}
	s.Trace(nil)
	if _, err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got, want := len(cycles), 2; got != want {
		t.Errorf("Tracing didn't stop: got %d cycles want %d", got, want)
	}
}

func TestTimerIRQ(t *testing.T) {
	s := setup(t, &Def{}, []uint8{
		0xA9, 0x80, // LDA #$80
		0x8D, 0x05, 0xF0, // STA $F005
		0xA9, 0x10, // LDA #$10
		0x8D, 0x00, 0xF0, // STA $F000
		0x58, // CLI
		0xCB, // WAI
		0xDB, // STP
	})
	if err := s.LoadBinary(IRQ, []uint8{
		0xAD, 0x04, 0xF0, // LDA $F004
		0xE6, 0x10, // INC $10
		0x40, // RTI
	}); err != nil {
		t.Fatalf("Can't load handler: %v", err)
	}
	_, err := s.Run(1000)
	var stop Stopped
	if !errors.As(err, &stop) {
		t.Fatalf("Didn't stop: %v\n%s", err, spew.Sdump(s.CPU()))
	}
	if got, want := stop.PC, RESET+0x0D; got != want {
		t.Errorf("Stopped at wrong PC: got %.4X want %.4X", got, want)
	}
	if got, want := s.RAM().Read(0x10), uint8(1); got != want {
		t.Errorf("IRQ handler ran %d times, want %d", got, want)
	}
	if got, want := s.CPU().A, uint8(0x80); got != want {
		t.Errorf("Handler didn't see timer status: got %.2X want %.2X", got, want)
	}
}

func TestNMIRegister(t *testing.T) {
	s := setup(t, &Def{}, []uint8{
		0xA9, 0x01, // LDA #$01
		0x8D, 0x12, 0xF0, // STA $F012
		0xEA, // NOP
		0xDB, // STP
	})
	if err := s.LoadBinary(NMI, []uint8{
		0xE6, 0x20, // INC $20
		0x9C, 0x12, 0xF0, // STZ $F012
		0x40, // RTI
	}); err != nil {
		t.Fatalf("Can't load handler: %v", err)
	}
	_, err := s.Run(1000)
	if !errors.As(err, &Stopped{}) {
		t.Fatalf("Didn't stop: %v", err)
	}
	if got, want := s.RAM().Read(0x20), uint8(1); got != want {
		t.Errorf("NMI handler ran %d times, want %d", got, want)
	}
}

func TestSOStrobe(t *testing.T) {
	prog := []uint8{
		0xB8,             // CLV
		0x8D, 0x13, 0xF0, // STA $F013
		0x50, 0xFE, // BVC *
		0xDB, // STP
	}
	s := setup(t, &Def{}, prog)
	if _, err := s.Run(1000); !errors.As(err, &Stopped{}) {
		t.Errorf("SO strobe didn't set V: %v", err)
	}
	// Without the strobe BVC spins forever.
	prog[1] = 0xAD // LDA $F013
	s = setup(t, &Def{}, prog)
	if _, err := s.Run(1000); err != nil {
		t.Errorf("Unexpected stop without SO: %v", err)
	}
}

func TestKeyboard(t *testing.T) {
	kb := &io.Queue{}
	kb.Push('A', 'B')
	s := setup(t, &Def{Keyboard: kb}, []uint8{
		0xAD, 0x11, 0xF0, // LDA $F011
		0x85, 0x10, // STA $10
		0xAD, 0x11, 0xF0, // LDA $F011
		0x85, 0x11, // STA $11
		0xAD, 0x11, 0xF0, // LDA $F011
		0x85, 0x12, // STA $12
		0xAD, 0xFF, 0xF0, // LDA $F0FF
		0x85, 0x13, // STA $13
		0xDB, // STP
	})
	if _, err := s.Run(1000); !errors.As(err, &Stopped{}) {
		t.Fatalf("Didn't stop: %v", err)
	}
	var got [4]uint8
	for i := range got {
		got[i] = s.RAM().Read(0x10 + uint16(i))
	}
	if diff := deep.Equal(got, [4]uint8{'A', 'B', 0x00, 0xFF}); diff != nil {
		t.Errorf("Bad keyboard reads: %v", diff)
	}
}

func TestNOP(t *testing.T) {
	tests := []struct {
		name   string
		fill   uint8
		bytes  int
		cycles int
	}{
		{name: "Classic NOP", fill: 0xEA, bytes: 1, cycles: 2},
		{name: "0x03 single cycle NOP", fill: 0x03, bytes: 1, cycles: 1},
		{name: "0xFB single cycle NOP", fill: 0xFB, bytes: 1, cycles: 1},
		{name: "0x02 immediate NOP", fill: 0x02, bytes: 2, cycles: 2},
		{name: "0x44 zero page NOP", fill: 0x44, bytes: 2, cycles: 3},
		{name: "0x54 zero page X NOP", fill: 0x54, bytes: 2, cycles: 4},
		{name: "0xDC absolute NOP", fill: 0xDC, bytes: 3, cycles: 4},
		{name: "0x5C long NOP", fill: 0x5C, bytes: 3, cycles: 8},
	}
	const count = 0x100
	for _, test := range tests {
		s, err := Init(&Def{Fill: test.fill})
		if err != nil {
			t.Fatalf("%s: Init: %v", test.name, err)
		}
		s.SetVectors(RESET, IRQ, NMI)
		stp := RESET + uint16(count*test.bytes)
		s.RAM().Write(stp, 0xDB)
		n, err := s.Run(1 << 20)
		var stop Stopped
		if !errors.As(err, &stop) {
			t.Errorf("%s: Didn't stop: %v", test.name, err)
			continue
		}
		if got, want := stop.PC, stp+1; got != want {
			t.Errorf("%s: Stopped at wrong PC: got %.4X want %.4X", test.name, got, want)
		}
		// Reset sequence, the sled and the STP itself.
		if got, want := n, 7+count*test.cycles+2; got != want {
			t.Errorf("%s: Bad cycle count: got %d want %d", test.name, got, want)
		}
		c := s.CPU()
		if c.A != 0 || c.X != 0 || c.Y != 0 || c.S != 0xFD {
			t.Errorf("%s: Registers changed:\n%s", test.name, spew.Sdump(c))
		}
	}
}

func TestLoaders(t *testing.T) {
	s, err := Init(&Def{})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	addr, err := s.LoadPRG([]uint8{0x00, 0x03, 0xAA, 0xBB})
	if err != nil {
		t.Fatalf("LoadPRG: %v", err)
	}
	if got, want := addr, uint16(0x0300); got != want {
		t.Errorf("Bad PRG load address: got %.4X want %.4X", got, want)
	}
	if got, want := []uint8{s.RAM().Read(0x300), s.RAM().Read(0x301)}, []uint8{0xAA, 0xBB}; !bytes.Equal(got, want) {
		t.Errorf("Bad PRG data: got %v want %v", got, want)
	}
	if _, err := s.LoadPRG([]uint8{0x00, 0x03}); err == nil {
		t.Error("Short PRG didn't error")
	}
	if _, err := s.LoadPRG([]uint8{0xFF, 0xFF, 0x01, 0x02}); err == nil {
		t.Error("PRG past end of memory didn't error")
	}
	if err := s.LoadBinary(0x1000, nil); err == nil {
		t.Error("Empty binary didn't error")
	}
	if err := s.LoadBinary(0xFFFF, []uint8{0x01}); err != nil {
		t.Errorf("Loading the last byte of memory failed: %v", err)
	}
	s.SetVectors(0x1234, 0x5678, 0x9ABC)
	var vec [6]uint8
	for i := range vec {
		vec[i] = s.RAM().Read(cpu.NMI_VECTOR + uint16(i))
	}
	if diff := deep.Equal(vec, [6]uint8{0xBC, 0x9A, 0x34, 0x12, 0x78, 0x56}); diff != nil {
		t.Errorf("Bad vectors: %v", diff)
	}
}

func TestErrorStrings(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{Breakpoint{PC: 0x1234}, "breakpoint at PC 0x1234"},
		{Stopped{PC: 0x0201}, "CPU stopped at PC 0x0201"},
		{Watchpoint{Addr: 0xF010, Val: 0x41, Write: true, PC: 0x0207}, "watchpoint write of 0x41 at 0xF010 by instruction at PC 0x0207"},
		{Watchpoint{Addr: 0x0010, Val: 0x00, PC: 0x0300}, "watchpoint read of 0x00 at 0x0010 by instruction at PC 0x0300"},
	}
	for _, test := range tests {
		if got := test.err.Error(); got != test.want {
			t.Errorf("got %q want %q", got, test.want)
		}
	}
}
