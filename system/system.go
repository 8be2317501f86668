// Package system wires a 65C02 to 64k of RAM, an interval timer and a
// handful of memory mapped I/O registers. It implements memory.Bus for
// the CPU and is the single owner of the cycle count: every bus access
// the CPU makes is one cycle here.
//
// Memory map:
//
//	0000-EFFF RAM
//	F000-F005 interval timer (see package timer)
//	F010      console output (W)
//	F011      keyboard input (R), 0x00 if nothing is waiting
//	F012      NMI line (W), non-zero holds NMI high
//	F013      SO strobe (W), any write pulses SO
//	F0xx      everything else in the page reads 0xFF and ignores writes
//	F100-FFFF RAM, including the vectors
package system

import (
	"errors"
	"fmt"
	stdio "io"

	"github.com/jmchacon/65c02/cpu"
	"github.com/jmchacon/65c02/io"
	"github.com/jmchacon/65c02/irq"
	"github.com/jmchacon/65c02/memory"
	"github.com/jmchacon/65c02/timer"
)

var (
	_ = memory.Bus(&System{})
	_ = irq.Receiver(&System{})
)

const (
	IO_PAGE     = uint16(0xF000)
	TIMER_BASE  = uint16(0xF000)
	CONSOLE_OUT = uint16(0xF010)
	KEYBOARD_IN = uint16(0xF011)
	NMI_LINE    = uint16(0xF012)
	SO_STROBE   = uint16(0xF013)

	kIO_PAGE_MASK = uint16(0xFF00)
	kOPEN_BUS     = uint8(0xFF)
)

// Breakpoint is returned when execution reaches a PC registered with AddBreakpoint.
// The instruction at PC has not run yet. Running again executes it.
type Breakpoint struct {
	PC uint16
}

// Error implements the interface for error types.
func (e Breakpoint) Error() string {
	return fmt.Sprintf("breakpoint at PC 0x%.4X", e.PC)
}

// Watchpoint is returned after an instruction touched an address registered
// with AddWatchpoint.
type Watchpoint struct {
	Addr  uint16
	Val   uint8
	Write bool
	PC    uint16 // PC of the instruction making the access.
}

// Error implements the interface for error types.
func (e Watchpoint) Error() string {
	dir := "read"
	if e.Write {
		dir = "write"
	}
	return fmt.Sprintf("watchpoint %s of 0x%.2X at 0x%.4X by instruction at PC 0x%.4X", dir, e.Val, e.Addr, e.PC)
}

// Stopped is returned once the CPU has executed STP. Only Reset clears it.
type Stopped struct {
	PC uint16
}

// Error implements the interface for error types.
func (e Stopped) Error() string {
	return fmt.Sprintf("CPU stopped at PC 0x%.4X", e.PC)
}

// Def defines a system to be created by Init.
type Def struct {
	// PHPSetsBreak is passed through to the CPU.
	PHPSetsBreak bool

	// Keyboard if non-nil supplies bytes for reads of KEYBOARD_IN.
	Keyboard io.PortIn8

	// Output if non-nil receives every byte written to CONSOLE_OUT.
	Output stdio.Writer

	// Fill is the value RAM holds after power on.
	Fill uint8

	// Debug enables Debug() output on the CPU and timer.
	Debug bool
}

// System is a complete 65C02 machine.
type System struct {
	cpu      *cpu.Chip
	ram      *memory.RAM
	timer    *timer.Chip
	keyboard io.PortIn8
	output   stdio.Writer
	console  *io.Latch
	nmi      *irq.Line
	irqs     []irq.Sender
	debug    bool

	cycles  uint64 // Total cycles since power on.
	budget  int    // Cycles left in the current Run.
	trace   func(memory.Cycle)
	outErr  error
	pc      uint16 // PC at the start of the current instruction.
	broke   bool   // Set when we just returned a breakpoint for pc.
	hit     *Watchpoint
	breaks  map[uint16]bool
	watches map[uint16]bool
}

// Init returns a powered on system. The CPU runs its reset sequence on the first Step.
func Init(d *Def) (*System, error) {
	if d == nil {
		return nil, errors.New("nil Def")
	}
	s := &System{
		ram:      memory.NewRAM(d.Fill),
		keyboard: d.Keyboard,
		output:   d.Output,
		console:  &io.Latch{},
		nmi:      &irq.Line{},
		debug:    d.Debug,
		breaks:   make(map[uint16]bool),
		watches:  make(map[uint16]bool),
	}
	var err error
	if s.timer, err = timer.Init(&timer.ChipDef{Debug: d.Debug}); err != nil {
		return nil, fmt.Errorf("can't initialize timer: %v", err)
	}
	s.Install(s.timer)
	if s.cpu, err = cpu.Init(&cpu.ChipDef{
		Bus:          s,
		PHPSetsBreak: d.PHPSetsBreak,
		Debug:        d.Debug,
	}); err != nil {
		return nil, fmt.Errorf("can't initialize cpu: %v", err)
	}
	return s, nil
}

// Install implements irq.Receiver. Any installed sender being raised holds IRQ low on the CPU.
func (s *System) Install(sender irq.Sender) {
	s.irqs = append(s.irqs, sender)
}

// CPU returns the processor so callers can inspect or preset registers.
func (s *System) CPU() *cpu.Chip {
	return s.cpu
}

// RAM returns the backing memory without any I/O decoding or cycle cost.
func (s *System) RAM() *memory.RAM {
	return s.ram
}

// Console returns the last byte written to CONSOLE_OUT.
func (s *System) Console() io.PortOut8 {
	return s.console
}

// Cycles returns the number of bus cycles run since power on.
func (s *System) Cycles() uint64 {
	return s.cycles
}

// PowerOn clears RAM, the timer and the CPU.
func (s *System) PowerOn() {
	s.ram.PowerOn()
	s.timer.PowerOn()
	s.nmi.Set(false)
	s.cpu.PowerOn()
	s.cycles = 0
}

// Reset resets the CPU and timer. RAM is untouched.
func (s *System) Reset() {
	s.timer.Reset()
	s.nmi.Set(false)
	s.cpu.SetNMI(false)
	s.cpu.Reset()
}

// LoadBinary copies data into RAM at addr.
func (s *System) LoadBinary(addr uint16, data []uint8) error {
	if len(data) == 0 {
		return errors.New("no data to load")
	}
	if int(addr)+len(data) > 0x10000 {
		return fmt.Errorf("%d bytes at 0x%.4X runs past the end of memory", len(data), addr)
	}
	s.ram.Load(addr, data)
	return nil
}

// LoadPRG loads a PRG image (2 byte little endian load address followed by data)
// and returns the load address.
func (s *System) LoadPRG(data []uint8) (uint16, error) {
	if len(data) < 3 {
		return 0, fmt.Errorf("PRG too short: %d bytes", len(data))
	}
	addr := uint16(data[1])<<8 | uint16(data[0])
	if err := s.LoadBinary(addr, data[2:]); err != nil {
		return 0, fmt.Errorf("can't load PRG: %v", err)
	}
	return addr, nil
}

// SetVectors writes the reset, IRQ and NMI vectors.
func (s *System) SetVectors(reset, irqVec, nmi uint16) {
	for _, v := range []struct {
		addr uint16
		val  uint16
	}{
		{cpu.RESET_VECTOR, reset},
		{cpu.IRQ_VECTOR, irqVec},
		{cpu.NMI_VECTOR, nmi},
	} {
		s.ram.Write(v.addr, uint8(v.val&0xFF))
		s.ram.Write(v.addr+1, uint8(v.val>>8))
	}
}

// AddBreakpoint stops Run/Step before the instruction at pc executes.
func (s *System) AddBreakpoint(pc uint16) {
	s.breaks[pc] = true
}

// RemoveBreakpoint clears a breakpoint set with AddBreakpoint.
func (s *System) RemoveBreakpoint(pc uint16) {
	delete(s.breaks, pc)
}

// AddWatchpoint stops Run/Step after any instruction which reads or writes addr
// as data (not opcode or operand fetches).
func (s *System) AddWatchpoint(addr uint16) {
	s.watches[addr] = true
}

// RemoveWatchpoint clears a watchpoint set with AddWatchpoint.
func (s *System) RemoveWatchpoint(addr uint16) {
	delete(s.watches, addr)
}

// Trace installs a function called for every bus cycle. nil disables tracing.
func (s *System) Trace(fn func(memory.Cycle)) {
	s.trace = fn
}

// Run steps the CPU until at least cycles bus cycles have run. It returns the
// number of cycles actually run (an instruction is never split so this can
// overshoot) and a Breakpoint, Watchpoint or Stopped error if execution
// ended early. Writing to Output failing also ends the run.
func (s *System) Run(cycles int) (int, error) {
	start := s.cycles
	s.budget = cycles
	for s.budget > 0 {
		if err := s.step(); err != nil {
			return int(s.cycles - start), err
		}
	}
	return int(s.cycles - start), nil
}

// Step runs a single CPU step (one instruction, interrupt entry, reset sequence or
// idle cycle) and returns the cycles it took.
func (s *System) Step() (int, error) {
	start := s.cycles
	err := s.step()
	return int(s.cycles - start), err
}

func (s *System) step() error {
	s.pc = s.cpu.PC
	if s.cpu.State() == cpu.STATE_RUNNING && s.breaks[s.pc] && !s.broke {
		s.broke = true
		return Breakpoint{PC: s.pc}
	}
	s.broke = false
	s.hit = nil
	s.outErr = nil
	s.cpu.Step()

	// Pins are sampled by the CPU at the start of its next step.
	s.cpu.SetIRQ(irq.Any(s.irqs))
	s.cpu.SetNMI(s.nmi.Raised())

	if s.outErr != nil {
		return fmt.Errorf("console output failed at PC 0x%.4X: %v", s.pc, s.outErr)
	}
	if s.hit != nil {
		return *s.hit
	}
	if s.cpu.State() == cpu.STATE_STOPPED {
		return Stopped{PC: s.cpu.PC}
	}
	return nil
}

// cycle accounts for one bus access.
func (s *System) cycle(c memory.Cycle) {
	s.cycles++
	s.budget--
	s.timer.Tick()
	if s.trace != nil {
		s.trace(c)
	}
	if c.Kind == memory.ACCESS_DATA && s.hit == nil && s.watches[c.Addr] {
		s.hit = &Watchpoint{Addr: c.Addr, Val: c.Val, Write: c.Write, PC: s.pc}
	}
}

// load decodes a read without side effects on the cycle count.
func (s *System) load(addr uint16) uint8 {
	if addr&kIO_PAGE_MASK != IO_PAGE {
		return s.ram.Read(addr)
	}
	switch {
	case addr >= TIMER_BASE && addr < TIMER_BASE+timer.REGISTERS:
		return s.timer.Read(addr - TIMER_BASE)
	case addr == KEYBOARD_IN:
		if s.keyboard != nil {
			return s.keyboard.Input()
		}
		return 0x00
	case addr == CONSOLE_OUT:
		return s.console.Output()
	case addr == NMI_LINE:
		if s.nmi.Raised() {
			return 0x01
		}
		return 0x00
	}
	return kOPEN_BUS
}

func (s *System) store(addr uint16, val uint8) {
	if addr&kIO_PAGE_MASK != IO_PAGE {
		s.ram.Write(addr, val)
		return
	}
	switch {
	case addr >= TIMER_BASE && addr < TIMER_BASE+timer.REGISTERS:
		s.timer.Write(addr-TIMER_BASE, val)
	case addr == CONSOLE_OUT:
		s.console.Set(val)
		if s.output != nil {
			if _, err := s.output.Write([]byte{val}); err != nil && s.outErr == nil {
				s.outErr = err
			}
		}
	case addr == NMI_LINE:
		s.nmi.Set(val != 0)
	case addr == SO_STROBE:
		s.cpu.SetSO(true)
		s.cpu.SetSO(false)
	}
}

// Read implements memory.Bus.
func (s *System) Read(addr uint16, kind memory.Access) uint8 {
	val := s.load(addr)
	s.cycle(memory.Cycle{Addr: addr, Val: val, Kind: kind})
	return val
}

// ReadOpcode implements memory.Bus.
func (s *System) ReadOpcode(addr uint16, kind memory.Access) uint8 {
	val := s.load(addr)
	s.cycle(memory.Cycle{Addr: addr, Val: val, Opcode: true, Kind: kind})
	return val
}

// Write implements memory.Bus.
func (s *System) Write(addr uint16, val uint8, kind memory.Access) {
	s.store(addr, val)
	s.cycle(memory.Cycle{Addr: addr, Val: val, Write: true, Kind: kind})
}

// FetchVectorByte implements memory.Bus.
func (s *System) FetchVectorByte(addr uint16) uint8 {
	val := s.ram.Read(addr)
	s.cycle(memory.Cycle{Addr: addr, Val: val, Kind: memory.ACCESS_VECTOR})
	return val
}

// Debug returns CPU and timer state if the system was created with Debug set.
func (s *System) Debug() string {
	if !s.debug {
		return ""
	}
	return fmt.Sprintf("cycles: %d\n%s%s", s.cycles, s.cpu.Debug(), s.timer.Debug())
}
