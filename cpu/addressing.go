package cpu

import "github.com/jmchacon/65c02/memory"

// instructionMode is an enumeration indicating the type of instruction being processed.
// Used below in addressing modes.
type instructionMode int

const (
	kLOAD_INSTRUCTION instructionMode = iota
	kRMW_INSTRUCTION
	kSTORE_INSTRUCTION
)

// mode is the capability set every addressing mode provides to an operation.
// begin runs the bus cycles needed to resolve the operand and is called once
// by Step before the operation executes.
type mode interface {
	begin(c *Chip, kind instructionMode)
	// read returns the operand. For memory modes this is a data cycle.
	read(c *Chip) uint8
	// write stores val into the operand. For memory modes this is a data cycle.
	write(c *Chip, val uint8)
	// spuriousRead is the extra cycle RMW instructions run between read and write.
	spuriousRead(c *Chip)
	// address returns the effective address (if any).
	address() uint16
}

// brancher is implemented by the relative modes.
type brancher interface {
	mode
	// target returns the PC the branch goes to if taken.
	target() uint16
	// penalty runs the page fixup cycle (if any) for a taken branch.
	penalty(c *Chip)
}

// newModes builds the per chip mode instances. These are reused for every
// instruction so Step never allocates.
func newModes(c *Chip) [MODE_MAX]mode {
	return [MODE_MAX]mode{
		MODE_IMPLIED:            &implied{},
		MODE_ACCUMULATOR:        &register{reg: &c.A},
		MODE_X_REGISTER:         &register{reg: &c.X},
		MODE_Y_REGISTER:         &register{reg: &c.Y},
		MODE_SINGLE_CYCLE:       &singleCycle{},
		MODE_IMMEDIATE:          &immediate{},
		MODE_ZP:                 &zeroPage{},
		MODE_ZPX:                &zeroPageIndexed{reg: &c.X},
		MODE_ZPY:                &zeroPageIndexed{reg: &c.Y},
		MODE_INDIRECTX:          &indirectX{},
		MODE_INDIRECT_ZP:        &indirectZP{},
		MODE_INDIRECTY:          &indirectY{},
		MODE_ABSOLUTE:           &absolute{},
		MODE_ABSOLUTEX:          &absoluteIndexed{reg: &c.X},
		MODE_ABSOLUTEX_RMW:      &absoluteXRMW{},
		MODE_ABSOLUTEY:          &absoluteIndexed{reg: &c.Y},
		MODE_INDIRECT:           &absoluteIndirect{},
		MODE_INDIRECT_ABSOLUTEX: &absoluteIndexedIndirect{},
		MODE_RELATIVE:           &relative{},
		MODE_ZP_RELATIVE:        &relativeBitBranch{},
		MODE_SUBROUTINE:         &subroutine{},
	}
}

// fetchOperand reads the byte at PC as an operand and advances PC.
func (c *Chip) fetchOperand() uint8 {
	v := c.bus.Read(c.PC, memory.ACCESS_OPERAND)
	c.PC++
	return v
}

// fetchAddr reads a little endian 16 bit operand at PC.
func (c *Chip) fetchAddr() uint16 {
	lo := c.fetchOperand()
	hi := c.fetchOperand()
	return (uint16(hi) << 8) + uint16(lo)
}

// memoryOperand is the common implementation for any mode which ends
// up with an effective address that data cycles run against.
type memoryOperand struct {
	addr uint16
}

func (m *memoryOperand) read(c *Chip) uint8 {
	return c.bus.Read(m.addr, memory.ACCESS_DATA)
}

func (m *memoryOperand) write(c *Chip, val uint8) {
	c.bus.Write(m.addr, val, memory.ACCESS_DATA)
}

func (m *memoryOperand) spuriousRead(c *Chip) {
	c.bus.Read(m.addr, memory.ACCESS_DATA)
}

func (m *memoryOperand) address() uint16 {
	return m.addr
}

// implied has no operand. The CPU still fetches (and ignores) the byte after the opcode.
type implied struct{}

func (*implied) begin(c *Chip, _ instructionMode) {
	c.bus.Read(c.PC, memory.ACCESS_OPERAND)
}

func (*implied) read(*Chip) uint8 { return 0x00 }

func (*implied) write(*Chip, uint8) {
	panic(InvalidCPUState{"write to implied operand"})
}

func (*implied) spuriousRead(*Chip) {}

func (*implied) address() uint16 { return 0x0000 }

// register is implied mode operating on A, X or Y. Since spuriousRead is a no-op
// the same RMW operation works for ASL A and ASL a.
type register struct {
	implied
	reg *uint8
}

func (r *register) read(*Chip) uint8 { return *r.reg }

func (r *register) write(_ *Chip, val uint8) { *r.reg = val }

// singleCycle is used by the reserved 1 byte NOPs which never fetch an operand.
type singleCycle struct{}

func (*singleCycle) begin(*Chip, instructionMode) {}
func (*singleCycle) read(*Chip) uint8             { return 0x00 }
func (*singleCycle) write(*Chip, uint8)           {}
func (*singleCycle) spuriousRead(*Chip)           {}
func (*singleCycle) address() uint16              { return 0x0000 }

// immediate implements #i
// The address is kept so decimal mode ADC/SBC can run their extra read against it.
type immediate struct {
	addr uint16
	val  uint8
}

func (m *immediate) begin(c *Chip, _ instructionMode) {
	m.addr = c.PC
	m.val = c.fetchOperand()
}

func (m *immediate) read(*Chip) uint8 { return m.val }

func (*immediate) write(*Chip, uint8) {
	panic(InvalidCPUState{"write to immediate operand"})
}

func (*immediate) spuriousRead(*Chip) {}

func (m *immediate) address() uint16 { return m.addr }

// zeroPage implements d
type zeroPage struct {
	memoryOperand
}

func (m *zeroPage) begin(c *Chip, _ instructionMode) {
	m.addr = uint16(c.fetchOperand())
}

// zeroPageIndexed implements d,x and d,y
// The index add never carries out of the zero page.
type zeroPageIndexed struct {
	memoryOperand
	reg *uint8
}

func (m *zeroPageIndexed) begin(c *Chip, _ instructionMode) {
	base := c.fetchOperand()
	c.bus.Read(uint16(base), memory.ACCESS_IDLE)
	m.addr = uint16(base + *m.reg)
}

// readZPPointer reads the 16 bit pointer stored at the zero page address given,
// wrapping within the zero page for the high byte.
func (c *Chip) readZPPointer(zp uint8) uint16 {
	lo := c.bus.Read(uint16(zp), memory.ACCESS_POINTER)
	hi := c.bus.Read(uint16(zp+1), memory.ACCESS_POINTER)
	return (uint16(hi) << 8) + uint16(lo)
}

// indirectX implements (d,x)
type indirectX struct {
	memoryOperand
}

func (m *indirectX) begin(c *Chip, _ instructionMode) {
	zp := c.fetchOperand()
	c.bus.Read(uint16(zp), memory.ACCESS_IDLE)
	m.addr = c.readZPPointer(zp + c.X)
}

// indirectZP implements (d)
type indirectZP struct {
	memoryOperand
}

func (m *indirectZP) begin(c *Chip, _ instructionMode) {
	m.addr = c.readZPPointer(c.fetchOperand())
}

// indexedFixup adds the index to base and runs the dummy read at the un-carried
// address when the page changes. Stores always pay the cycle since they can't
// speculatively write.
func (c *Chip) indexedFixup(base uint16, idx uint8, kind instructionMode) uint16 {
	addr := base + uint16(idx)
	if (addr&0xFF00) != (base&0xFF00) || kind == kSTORE_INSTRUCTION {
		c.bus.Read((base&0xFF00)|(addr&0x00FF), memory.ACCESS_IDLE)
	}
	return addr
}

// indirectY implements (d),y
type indirectY struct {
	memoryOperand
}

func (m *indirectY) begin(c *Chip, kind instructionMode) {
	base := c.readZPPointer(c.fetchOperand())
	m.addr = c.indexedFixup(base, c.Y, kind)
}

// absolute implements a
type absolute struct {
	memoryOperand
}

func (m *absolute) begin(c *Chip, _ instructionMode) {
	m.addr = c.fetchAddr()
}

// absoluteIndexed implements a,x and a,y
type absoluteIndexed struct {
	memoryOperand
	reg *uint8
}

func (m *absoluteIndexed) begin(c *Chip, kind instructionMode) {
	m.addr = c.indexedFixup(c.fetchAddr(), *m.reg, kind)
}

// absoluteXRMW implements a,x for INC and DEC. These always take the fixup
// cycle and their spurious read lands one past the effective address.
type absoluteXRMW struct {
	memoryOperand
}

func (m *absoluteXRMW) begin(c *Chip, _ instructionMode) {
	base := c.fetchAddr()
	m.addr = base + uint16(c.X)
	c.bus.Read((base&0xFF00)|(m.addr&0x00FF), memory.ACCESS_IDLE)
}

func (m *absoluteXRMW) spuriousRead(c *Chip) {
	c.bus.Read(m.addr+1, memory.ACCESS_DATA)
}

// absoluteIndirect implements (a) for JMP.
// The NMOS page wrap bug is fixed by reading the un-carried high byte address
// first and then the correct one.
type absoluteIndirect struct {
	memoryOperand
}

func (m *absoluteIndirect) begin(c *Chip, _ instructionMode) {
	ptr := c.fetchAddr()
	lo := c.bus.Read(ptr, memory.ACCESS_POINTER)
	c.bus.Read((ptr&0xFF00)|((ptr+1)&0x00FF), memory.ACCESS_IDLE)
	hi := c.bus.Read(ptr+1, memory.ACCESS_POINTER)
	m.addr = (uint16(hi) << 8) + uint16(lo)
}

// absoluteIndexedIndirect implements (a,x) for JMP.
type absoluteIndexedIndirect struct {
	memoryOperand
}

func (m *absoluteIndexedIndirect) begin(c *Chip, _ instructionMode) {
	base := c.fetchAddr()
	c.bus.Read(c.PC-1, memory.ACCESS_IDLE)
	ptr := base + uint16(c.X)
	lo := c.bus.Read(ptr, memory.ACCESS_POINTER)
	hi := c.bus.Read(ptr+1, memory.ACCESS_POINTER)
	m.addr = (uint16(hi) << 8) + uint16(lo)
}

// relative implements *+r for the branch instructions.
type relative struct {
	offset uint8
	dest   uint16
}

func (m *relative) begin(c *Chip, _ instructionMode) {
	m.offset = c.fetchOperand()
	// Per http://www.6502.org/tutorials/6502opcodes.html
	// the page crossing is defined against the byte after the branch. i.e. PC now.
	m.dest = c.PC + uint16(int16(int8(m.offset)))
}

func (m *relative) read(*Chip) uint8 { return m.offset }

func (*relative) write(*Chip, uint8) {
	panic(InvalidCPUState{"write to relative operand"})
}

func (*relative) spuriousRead(*Chip) {}

func (m *relative) address() uint16 { return m.dest }

func (m *relative) target() uint16 { return m.dest }

// penalty runs one more cycle at the un-carried target if the branch changes pages.
func (m *relative) penalty(c *Chip) {
	if (m.dest & 0xFF00) != (c.PC & 0xFF00) {
		c.bus.Read((c.PC&0xFF00)|(m.dest&0x00FF), memory.ACCESS_IDLE)
	}
}

// relativeBitBranch implements d,*+r for BBR/BBS.
// The zero page value is read during begin and the page fixup cycle is always
// run so penalty has nothing left to do.
type relativeBitBranch struct {
	zp   uint16
	val  uint8
	dest uint16
}

func (m *relativeBitBranch) begin(c *Chip, _ instructionMode) {
	m.zp = uint16(c.fetchOperand())
	m.val = c.bus.Read(m.zp, memory.ACCESS_DATA)
	off := c.fetchOperand()
	m.dest = c.PC + uint16(int16(int8(off)))
	c.bus.Read((c.PC&0xFF00)|(m.dest&0x00FF), memory.ACCESS_IDLE)
}

func (m *relativeBitBranch) read(*Chip) uint8 { return m.val }

func (*relativeBitBranch) write(*Chip, uint8) {
	panic(InvalidCPUState{"write to bit branch operand"})
}

func (*relativeBitBranch) spuriousRead(*Chip) {}

func (m *relativeBitBranch) address() uint16 { return m.zp }

func (m *relativeBitBranch) target() uint16 { return m.dest }

func (*relativeBitBranch) penalty(*Chip) {}

// subroutine is absolute mode for JSR. Only the low byte is fetched here since
// the stack pushes happen before the high byte is read. The operation finishes it.
type subroutine struct {
	lo uint8
}

func (m *subroutine) begin(c *Chip, _ instructionMode) {
	m.lo = c.fetchOperand()
}

func (m *subroutine) read(*Chip) uint8 { return m.lo }

func (*subroutine) write(*Chip, uint8) {
	panic(InvalidCPUState{"write to subroutine operand"})
}

func (*subroutine) spuriousRead(*Chip) {}

func (m *subroutine) address() uint16 { return uint16(m.lo) }
