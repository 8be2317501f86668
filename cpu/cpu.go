// Package cpu defines the 65C02 architecture and provides
// the methods needed to run the CPU and interface with it
// for emulation.
//
// The core is cycle exact at the bus level. Every call it makes into the
// memory.Bus it was given is one clock cycle, and calls happen in the same
// order (with the same dummy reads) as the real WDC part. The system the
// chip is installed in owns the clock and counts cycles as they pass
// through the bus.
package cpu

import (
	"errors"
	"fmt"

	"github.com/jmchacon/65c02/memory"
)

// State is an enumeration of the execution states of the chip.
type State int

const (
	STATE_INVALID               State = iota // Zero value. Stepping here is a programming error.
	STATE_RECOVERING_FROM_RESET              // Next Step runs the reset sequence.
	STATE_RUNNING                            // Executing instructions.
	STATE_AWAITING_INTERRUPT                 // Executed WAI.
	STATE_STOPPED                            // Executed STP. Only Reset() gets out of this.
	STATE_MAX                                // End of state enumerations.
)

var stateNames = [STATE_MAX]string{
	STATE_INVALID:               "INVALID",
	STATE_RECOVERING_FROM_RESET: "RECOVERING_FROM_RESET",
	STATE_RUNNING:               "RUNNING",
	STATE_AWAITING_INTERRUPT:    "AWAITING_INTERRUPT",
	STATE_STOPPED:               "STOPPED",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < STATE_INVALID || s >= STATE_MAX {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

const (
	NMI_VECTOR   = uint16(0xFFFA)
	RESET_VECTOR = uint16(0xFFFC)
	IRQ_VECTOR   = uint16(0xFFFE)

	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_S1        = uint8(0x20) // Always 1
	P_B         = uint8(0x10) // Only exists in pushed copies of P. Never held in the live register.
	P_DECIMAL   = uint8(0x8)
	P_INTERRUPT = uint8(0x4)
	P_ZERO      = uint8(0x2)
	P_CARRY     = uint8(0x1)

	kSTACK_PAGE = uint16(0x0100)
)

// InvalidCPUState represents an invalid CPU state in the emulator.
// This is used as the panic value when the chip is driven incorrectly.
type InvalidCPUState struct {
	Reason string
}

// Error implements the interface for error types.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// Chip is a 65C02 including its register file, pins and execution state.
type Chip struct {
	A  uint8  // Accumulator register
	X  uint8  // X register
	Y  uint8  // Y register
	S  uint8  // Stack pointer
	P  uint8  // Processor status register
	PC uint16 // Program counter

	bus          memory.Bus
	state        State
	phpSetsBreak bool // If true PHP pushes P with B set.
	debug        bool // If true Debug() emits output.
	op           uint8
	irq          bool // IRQ line level.
	nmi          bool // NMI line level. Only used for edge detection.
	nmiLatched   bool // An NMI edge was seen and hasn't been serviced.
	so           bool // SO line level. Only used for edge detection.
	soLatched    bool // An SO edge was seen and V hasn't been set yet.
	modes        [MODE_MAX]mode
}

// ChipDef defines a 65C02 to be created by Init.
type ChipDef struct {
	// Bus is the system the chip runs against. Required.
	Bus memory.Bus

	// PHPSetsBreak selects whether PHP pushes a copy of P with B set.
	// Bit 5 is always set in the pushed copy regardless.
	PHPSetsBreak bool

	// Debug if true wll emit output from Debug() calls
	Debug bool
}

// Init will create a new 65C02 and return it in powered on state. The reset
// sequence runs on the first Step.
func Init(d *ChipDef) (*Chip, error) {
	if d == nil {
		return nil, errors.New("nil ChipDef")
	}
	if d.Bus == nil {
		return nil, errors.New("ChipDef must define a Bus")
	}
	c := &Chip{
		bus:          d.Bus,
		phpSetsBreak: d.PHPSetsBreak,
		debug:        d.Debug,
	}
	c.modes = newModes(c)
	c.PowerOn()
	return c, nil
}

// PowerOn will reset the CPU to specific power on state. Registers are zero, stack is at 0x00
// (so the reset sequence leaves it at 0xFD) and all pins are released.
func (c *Chip) PowerOn() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.S = 0x00
	// This bit is always set.
	c.P = P_S1 | P_INTERRUPT
	c.irq = false
	c.nmi = false
	c.so = false
	c.Reset()
}

// Reset asserts the reset line. Registers aren't touched here. The next Step runs
// the 7 cycle reset sequence which moves the stack by 3 as if PC/P were pushed,
// disables interrupts, clears decimal mode and loads the PC from the reset vector.
// This also takes the chip out of STATE_STOPPED and STATE_AWAITING_INTERRUPT.
func (c *Chip) Reset() {
	c.state = STATE_RECOVERING_FROM_RESET
	c.nmiLatched = false
	c.soLatched = false
}

// State returns the current execution state.
func (c *Chip) State() State {
	return c.state
}

// SetIRQ sets the level of the IRQ line. true means asserted. IRQ is level
// sensitive so it must be held until the handler clears the source.
func (c *Chip) SetIRQ(v bool) {
	c.irq = v
}

// SetNMI sets the level of the NMI line. true means asserted.
// A released to asserted transition latches an NMI which stays pending
// until serviced even if the line is released again.
func (c *Chip) SetNMI(v bool) {
	if v && !c.nmi {
		c.nmiLatched = true
	}
	c.nmi = v
}

// SetSO sets the level of the set overflow line. true means asserted.
// A released to asserted transition sets V before the next instruction.
// NOTE: Real hardware needs the pulse to stay for a cycle. Any edge counts here.
func (c *Chip) SetSO(v bool) {
	if v && !c.so {
		c.soLatched = true
	}
	c.so = v
}

// interruptReady returns true if an interrupt would be taken at the next instruction boundary.
func (c *Chip) interruptReady() bool {
	return c.nmiLatched || (c.irq && c.P&P_INTERRUPT == 0x00)
}

// Productive returns true if the next Step will do architectural work.
// A stopped chip, or one waiting with nothing it can service, only idles the bus.
func (c *Chip) Productive() bool {
	switch c.state {
	case STATE_RECOVERING_FROM_RESET, STATE_RUNNING:
		return true
	case STATE_AWAITING_INTERRUPT:
		return c.interruptReady()
	}
	return false
}

// Step runs the chip forward one unit of work. That's a reset sequence, an interrupt
// entry, a whole instruction or (when stopped or waiting) a single idle cycle.
// It returns true if the chip is waiting or stopped when done.
// Stepping a chip that didn't come from Init panics with InvalidCPUState.
func (c *Chip) Step() bool {
	switch c.state {
	case STATE_RECOVERING_FROM_RESET:
		c.runReset()
		return false
	case STATE_STOPPED:
		c.bus.Read(c.PC, memory.ACCESS_STOPPED)
		return true
	case STATE_AWAITING_INTERRUPT:
		if !c.interruptReady() {
			kind := memory.ACCESS_WAIT
			if c.irq || c.nmi {
				kind = memory.ACCESS_WAIT_PENDING
			}
			c.bus.Read(c.PC, kind)
			return true
		}
		c.state = STATE_RUNNING
	case STATE_RUNNING:
	default:
		panic(InvalidCPUState{fmt.Sprintf("Step called in state %s", c.state)})
	}

	if c.soLatched {
		c.soLatched = false
		c.P |= P_OVERFLOW
	}

	// NMI always wins over IRQ.
	switch {
	case c.nmiLatched:
		c.nmiLatched = false
		c.runInterrupt(NMI_VECTOR)
		return false
	case c.irq && c.P&P_INTERRUPT == 0x00:
		c.runInterrupt(IRQ_VECTOR)
		return false
	}

	c.op = c.bus.ReadOpcode(c.PC, memory.ACCESS_OPCODE)
	c.PC++
	o := opcodes[c.op]
	exec := operations[o.Op]
	m := c.modes[o.Mode]
	m.begin(c, exec.kind)
	exec.fn(c, m)
	return c.state == STATE_AWAITING_INTERRUPT || c.state == STATE_STOPPED
}

// runReset does the reset sequence. It looks like an interrupt entry except the pushes
// are reads so nothing is written to the stack.
func (c *Chip) runReset() {
	c.bus.ReadOpcode(c.PC, memory.ACCESS_PREEMPTED_OPCODE)
	c.bus.Read(c.PC, memory.ACCESS_OPERAND)
	for i := 0; i < 3; i++ {
		c.bus.Read(kSTACK_PAGE+uint16(c.S), memory.ACCESS_PUSH)
		c.S--
	}
	c.P |= P_INTERRUPT | P_S1
	c.P &^= P_DECIMAL | P_B
	c.PC = c.readVector(RESET_VECTOR)
	c.state = STATE_RUNNING
}

// runInterrupt does the 7 cycle hardware interrupt entry for NMI/IRQ.
// The opcode fetched is thrown away and PC doesn't advance.
func (c *Chip) runInterrupt(vector uint16) {
	c.bus.ReadOpcode(c.PC, memory.ACCESS_PREEMPTED_OPCODE)
	c.bus.Read(c.PC, memory.ACCESS_OPERAND)
	c.enterInterrupt(vector, false)
}

// enterInterrupt pushes PC and P, sets up the flags and loads PC from the vector.
// BRK shares this with brk true so the pushed copy of P has B set.
func (c *Chip) enterInterrupt(vector uint16, brk bool) {
	c.pushStack(uint8(c.PC >> 8))
	c.pushStack(uint8(c.PC & 0xFF))
	push := c.P | P_S1
	push &^= P_B
	if brk {
		push |= P_B
	}
	c.pushStack(push)
	c.P |= P_INTERRUPT
	c.P &^= P_DECIMAL
	c.PC = c.readVector(vector)
}

// readVector reads the 2 byte vector at addr.
func (c *Chip) readVector(addr uint16) uint16 {
	lo := c.bus.FetchVectorByte(addr)
	hi := c.bus.FetchVectorByte(addr + 1)
	return (uint16(hi) << 8) + uint16(lo)
}

// zeroCheck sets the Z flag based on the register contents.
func (c *Chip) zeroCheck(reg uint8) {
	if reg == 0 {
		c.P |= P_ZERO
	} else {
		c.P &^= P_ZERO
	}
}

// negativeCheck sets the N flag based on the register contents.
func (c *Chip) negativeCheck(reg uint8) {
	if (reg & P_NEGATIVE) == 0x80 {
		c.P |= P_NEGATIVE
	} else {
		c.P &^= P_NEGATIVE
	}
}

// carryCheck sets the C flag if the result of an 8 bit ALU operation
// (passed as a 16 bit result) caused a carry out by generating a value >= 0x100.
// NOTE: normally this just means masking 0x100 but in some overflow cases for BCD
//       math the value can be 0x200 here so it's still a carry.
func (c *Chip) carryCheck(res uint16) {
	if res >= 0x100 {
		c.P |= P_CARRY
	} else {
		c.P &^= P_CARRY
	}
}

// overflowCheck sets the V flag if the result of the ALU operation
// caused a two's complement sign change.
// Taken from http://www.righto.com/2012/12/the-6502-overflow-flag-explained.html
func (c *Chip) overflowCheck(reg uint8, arg uint8, res uint8) {
	// If the originals signs differ from the end sign bit
	if (reg^res)&(arg^res)&0x80 != 0x00 {
		c.P |= P_OVERFLOW
	} else {
		c.P &^= P_OVERFLOW
	}
}

// loadRegister takes the val and inserts it into the given register.
// It then does Z and N checks against the new value and sets flags.
func (c *Chip) loadRegister(reg *uint8, val uint8) {
	*reg = val
	c.zeroCheck(*reg)
	c.negativeCheck(*reg)
}

// pushStack pushes the given byte onto the stack and adjusts the stack pointer accordingly.
func (c *Chip) pushStack(val uint8) {
	c.bus.Write(kSTACK_PAGE+uint16(c.S), val, memory.ACCESS_PUSH)
	c.S--
}

// popStack pops the top byte off the stack and adjusts the stack pointer accordingly.
func (c *Chip) popStack() uint8 {
	c.S++
	return c.bus.Read(kSTACK_PAGE+uint16(c.S), memory.ACCESS_POP)
}

// stackIdle is the internal cycle pulls and returns take before touching the stack.
func (c *Chip) stackIdle() {
	c.bus.Read(kSTACK_PAGE+uint16(c.S), memory.ACCESS_IDLE)
}

// Debug returns a one line register dump if the chip was created with Debug set.
func (c *Chip) Debug() string {
	if c.debug {
		return fmt.Sprintf("PC: %.4X A: %.2X X: %.2X Y: %.2X S: %.2X P: %.2X op: %.2X state: %s\n", c.PC, c.A, c.X, c.Y, c.S, c.P, c.op, c.state)
	}
	return ""
}
