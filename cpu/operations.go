package cpu

import "github.com/jmchacon/65c02/memory"

// operation binds an instruction implementation to the kind of bus access it
// makes. The kind only matters to the indexed modes which always take the
// fixup cycle for stores.
type operation struct {
	fn   func(c *Chip, m mode)
	kind instructionMode
}

var operations = [OP_MAX]operation{
	OP_UNIMPLEMENTED: {(*Chip).iNOP, kLOAD_INSTRUCTION},
	OP_ADC:           {(*Chip).iADC, kLOAD_INSTRUCTION},
	OP_AND:           {(*Chip).iAND, kLOAD_INSTRUCTION},
	OP_ASL:           {(*Chip).iASL, kRMW_INSTRUCTION},
	OP_BBR:           {(*Chip).iBBR, kLOAD_INSTRUCTION},
	OP_BBS:           {(*Chip).iBBS, kLOAD_INSTRUCTION},
	OP_BCC:           {(*Chip).iBCC, kLOAD_INSTRUCTION},
	OP_BCS:           {(*Chip).iBCS, kLOAD_INSTRUCTION},
	OP_BEQ:           {(*Chip).iBEQ, kLOAD_INSTRUCTION},
	OP_BIT:           {(*Chip).iBIT, kLOAD_INSTRUCTION},
	OP_BMI:           {(*Chip).iBMI, kLOAD_INSTRUCTION},
	OP_BNE:           {(*Chip).iBNE, kLOAD_INSTRUCTION},
	OP_BPL:           {(*Chip).iBPL, kLOAD_INSTRUCTION},
	OP_BRA:           {(*Chip).iBRA, kLOAD_INSTRUCTION},
	OP_BRK:           {(*Chip).iBRK, kLOAD_INSTRUCTION},
	OP_BVC:           {(*Chip).iBVC, kLOAD_INSTRUCTION},
	OP_BVS:           {(*Chip).iBVS, kLOAD_INSTRUCTION},
	OP_CLC:           {(*Chip).iCLC, kLOAD_INSTRUCTION},
	OP_CLD:           {(*Chip).iCLD, kLOAD_INSTRUCTION},
	OP_CLI:           {(*Chip).iCLI, kLOAD_INSTRUCTION},
	OP_CLV:           {(*Chip).iCLV, kLOAD_INSTRUCTION},
	OP_CMP:           {(*Chip).iCMP, kLOAD_INSTRUCTION},
	OP_CPX:           {(*Chip).iCPX, kLOAD_INSTRUCTION},
	OP_CPY:           {(*Chip).iCPY, kLOAD_INSTRUCTION},
	OP_DEC:           {(*Chip).iDEC, kRMW_INSTRUCTION},
	OP_DEX:           {(*Chip).iDEC, kRMW_INSTRUCTION},
	OP_DEY:           {(*Chip).iDEC, kRMW_INSTRUCTION},
	OP_EOR:           {(*Chip).iEOR, kLOAD_INSTRUCTION},
	OP_INC:           {(*Chip).iINC, kRMW_INSTRUCTION},
	OP_INX:           {(*Chip).iINC, kRMW_INSTRUCTION},
	OP_INY:           {(*Chip).iINC, kRMW_INSTRUCTION},
	OP_JMP:           {(*Chip).iJMP, kLOAD_INSTRUCTION},
	OP_JSR:           {(*Chip).iJSR, kLOAD_INSTRUCTION},
	OP_LDA:           {(*Chip).iLDA, kLOAD_INSTRUCTION},
	OP_LDX:           {(*Chip).iLDX, kLOAD_INSTRUCTION},
	OP_LDY:           {(*Chip).iLDY, kLOAD_INSTRUCTION},
	OP_LSR:           {(*Chip).iLSR, kRMW_INSTRUCTION},
	OP_NOP:           {(*Chip).iNOP, kLOAD_INSTRUCTION},
	OP_NOP_LONG:      {(*Chip).iNOPLong, kLOAD_INSTRUCTION},
	OP_ORA:           {(*Chip).iORA, kLOAD_INSTRUCTION},
	OP_PHA:           {(*Chip).iPHA, kLOAD_INSTRUCTION},
	OP_PHP:           {(*Chip).iPHP, kLOAD_INSTRUCTION},
	OP_PHX:           {(*Chip).iPHX, kLOAD_INSTRUCTION},
	OP_PHY:           {(*Chip).iPHY, kLOAD_INSTRUCTION},
	OP_PLA:           {(*Chip).iPLA, kLOAD_INSTRUCTION},
	OP_PLP:           {(*Chip).iPLP, kLOAD_INSTRUCTION},
	OP_PLX:           {(*Chip).iPLX, kLOAD_INSTRUCTION},
	OP_PLY:           {(*Chip).iPLY, kLOAD_INSTRUCTION},
	OP_RMB:           {(*Chip).iRMB, kRMW_INSTRUCTION},
	OP_ROL:           {(*Chip).iROL, kRMW_INSTRUCTION},
	OP_ROR:           {(*Chip).iROR, kRMW_INSTRUCTION},
	OP_RTI:           {(*Chip).iRTI, kLOAD_INSTRUCTION},
	OP_RTS:           {(*Chip).iRTS, kLOAD_INSTRUCTION},
	OP_SBC:           {(*Chip).iSBC, kLOAD_INSTRUCTION},
	OP_SEC:           {(*Chip).iSEC, kLOAD_INSTRUCTION},
	OP_SED:           {(*Chip).iSED, kLOAD_INSTRUCTION},
	OP_SEI:           {(*Chip).iSEI, kLOAD_INSTRUCTION},
	OP_SMB:           {(*Chip).iSMB, kRMW_INSTRUCTION},
	OP_STA:           {(*Chip).iSTA, kSTORE_INSTRUCTION},
	OP_STP:           {(*Chip).iSTP, kLOAD_INSTRUCTION},
	OP_STX:           {(*Chip).iSTX, kSTORE_INSTRUCTION},
	OP_STY:           {(*Chip).iSTY, kSTORE_INSTRUCTION},
	OP_STZ:           {(*Chip).iSTZ, kSTORE_INSTRUCTION},
	OP_TAX:           {(*Chip).iTAX, kLOAD_INSTRUCTION},
	OP_TAY:           {(*Chip).iTAY, kLOAD_INSTRUCTION},
	OP_TRB:           {(*Chip).iTRB, kRMW_INSTRUCTION},
	OP_TSB:           {(*Chip).iTSB, kRMW_INSTRUCTION},
	OP_TSX:           {(*Chip).iTSX, kLOAD_INSTRUCTION},
	OP_TXA:           {(*Chip).iTXA, kLOAD_INSTRUCTION},
	OP_TXS:           {(*Chip).iTXS, kLOAD_INSTRUCTION},
	OP_TYA:           {(*Chip).iTYA, kLOAD_INSTRUCTION},
	OP_WAI:           {(*Chip).iWAI, kLOAD_INSTRUCTION},
}

// modify runs the read and spurious read of a RMW instruction returning the value read.
// The caller then computes and does the write.
func (c *Chip) modify(m mode) uint8 {
	v := m.read(c)
	m.spuriousRead(c)
	return v
}

// decimalRead is the extra cycle ADC/SBC take in decimal mode.
func (c *Chip) decimalRead(m mode) {
	if c.P&P_DECIMAL != 0x00 {
		c.bus.Read(m.address(), memory.ACCESS_DATA)
	}
}

// adc implements the ADC math for both binary and BCD modes and sets all associated flags.
func (c *Chip) adc(arg uint8) {
	// Pull the carry bit out which thankfully is the low bit so can be
	// used directly.
	carry := c.P & P_CARRY

	if c.P&P_DECIMAL != 0x00 {
		// BCD details - http://6502.org/tutorials/decimal_mode.html
		aL := (c.A & 0x0F) + (arg & 0x0F) + carry
		// Low nibble fixup
		if aL >= 0x0A {
			aL = ((aL + 0x06) & 0x0F) + 0x10
		}
		sum := uint16(c.A&0xF0) + uint16(arg&0xF0) + uint16(aL)
		// V comes from the sum before the high nibble gets fixed.
		c.overflowCheck(c.A, arg, uint8(sum))
		// High nibble fixup
		if sum >= 0xA0 {
			sum += 0x60
		}
		c.carryCheck(sum)
		// The 65C02 sets N and Z from the decimal result.
		c.loadRegister(&c.A, uint8(sum))
		return
	}

	sum := c.A + arg + carry
	c.overflowCheck(c.A, arg, sum)
	// Yes, could do bit checks here like the hardware but
	// just treating as uint16 math is simpler to code.
	c.carryCheck(uint16(c.A) + uint16(arg) + uint16(carry))
	c.loadRegister(&c.A, sum)
}

// sbc implements the SBC math for both binary and BCD modes and sets all associated flags.
func (c *Chip) sbc(arg uint8) {
	if c.P&P_DECIMAL == 0x00 {
		// Binary mode is just ones complement the arg and ADC.
		c.adc(^arg)
		return
	}
	carry := int16(c.P & P_CARRY)

	// This is the 65C02 sequence from appendix A of
	// http://6502.org/tutorials/decimal_mode.html
	aL := int16(c.A&0x0F) - int16(arg&0x0F) + carry - 1
	sum := int16(c.A) - int16(arg) + carry - 1
	if sum < 0 {
		sum -= 0x60
	}
	if aL < 0 {
		sum -= 0x06
	}

	// C and V are the same as binary mode.
	b := uint16(c.A) + uint16(^arg) + uint16(carry)
	c.overflowCheck(c.A, ^arg, uint8(b))
	c.carryCheck(b)
	c.loadRegister(&c.A, uint8(sum))
}

// compare implements the logic for all CMP/CPX/CPY instructions and
// sets flags accordingly from the results.
func (c *Chip) compare(reg uint8, val uint8) {
	c.zeroCheck(reg - val)
	c.negativeCheck(reg - val)
	// A-M done as 2's complement addition by ones complement and add 1
	// This way we get valid sign extension and a carry bit test.
	c.carryCheck(uint16(reg) + uint16(^val) + uint16(1))
}

// branch takes the branch if taken is true. The first extra cycle is always
// paid for a taken branch and the mode decides on the page fixup one.
func (c *Chip) branch(m mode, taken bool) {
	if !taken {
		return
	}
	b := m.(brancher)
	c.bus.Read(c.PC, memory.ACCESS_IDLE)
	b.penalty(c)
	c.PC = b.target()
}

func (c *Chip) iADC(m mode) {
	c.adc(m.read(c))
	c.decimalRead(m)
}

func (c *Chip) iSBC(m mode) {
	c.sbc(m.read(c))
	c.decimalRead(m)
}

func (c *Chip) iAND(m mode) {
	c.loadRegister(&c.A, c.A&m.read(c))
}

func (c *Chip) iORA(m mode) {
	c.loadRegister(&c.A, c.A|m.read(c))
}

func (c *Chip) iEOR(m mode) {
	c.loadRegister(&c.A, c.A^m.read(c))
}

// iBIT implements BIT. The immediate form only sets Z since there's no memory
// location whose top bits mean anything.
func (c *Chip) iBIT(m mode) {
	v := m.read(c)
	c.zeroCheck(c.A & v)
	if _, ok := m.(*immediate); ok {
		return
	}
	c.negativeCheck(v)
	c.P &^= P_OVERFLOW
	c.P |= v & P_OVERFLOW
}

func (c *Chip) iCMP(m mode) {
	c.compare(c.A, m.read(c))
}

func (c *Chip) iCPX(m mode) {
	c.compare(c.X, m.read(c))
}

func (c *Chip) iCPY(m mode) {
	c.compare(c.Y, m.read(c))
}

func (c *Chip) iLDA(m mode) {
	c.loadRegister(&c.A, m.read(c))
}

func (c *Chip) iLDX(m mode) {
	c.loadRegister(&c.X, m.read(c))
}

func (c *Chip) iLDY(m mode) {
	c.loadRegister(&c.Y, m.read(c))
}

func (c *Chip) iSTA(m mode) {
	m.write(c, c.A)
}

func (c *Chip) iSTX(m mode) {
	m.write(c, c.X)
}

func (c *Chip) iSTY(m mode) {
	m.write(c, c.Y)
}

func (c *Chip) iSTZ(m mode) {
	m.write(c, 0x00)
}

// iASL implements the ASL instruction on memory or the accumulator.
func (c *Chip) iASL(m mode) {
	v := c.modify(m)
	c.carryCheck(uint16(v) << 1)
	v <<= 1
	c.zeroCheck(v)
	c.negativeCheck(v)
	m.write(c, v)
}

// iLSR implements the LSR instruction on memory or the accumulator.
func (c *Chip) iLSR(m mode) {
	v := c.modify(m)
	// Get bit 0 from the original but shifted to bit 8 for carry check.
	c.carryCheck(uint16(v&0x01) << 8)
	v >>= 1
	c.zeroCheck(v)
	c.negativeCheck(v)
	m.write(c, v)
}

// iROL implements the ROL instruction on memory or the accumulator.
func (c *Chip) iROL(m mode) {
	v := c.modify(m)
	carry := c.P & P_CARRY
	c.carryCheck(uint16(v) << 1)
	v = (v << 1) | carry
	c.zeroCheck(v)
	c.negativeCheck(v)
	m.write(c, v)
}

// iROR implements the ROR instruction on memory or the accumulator.
func (c *Chip) iROR(m mode) {
	v := c.modify(m)
	carry := (c.P & P_CARRY) << 7
	c.carryCheck(uint16(v&0x01) << 8)
	v = (v >> 1) | carry
	c.zeroCheck(v)
	c.negativeCheck(v)
	m.write(c, v)
}

// iINC implements INC/INX/INY depending on the mode attached.
func (c *Chip) iINC(m mode) {
	v := c.modify(m) + 1
	c.zeroCheck(v)
	c.negativeCheck(v)
	m.write(c, v)
}

// iDEC implements DEC/DEX/DEY depending on the mode attached.
func (c *Chip) iDEC(m mode) {
	v := c.modify(m) - 1
	c.zeroCheck(v)
	c.negativeCheck(v)
	m.write(c, v)
}

// iTSB sets the bits in memory that are set in A. Z is from A&M before the write.
func (c *Chip) iTSB(m mode) {
	v := c.modify(m)
	c.zeroCheck(c.A & v)
	m.write(c, v|c.A)
}

// iTRB clears the bits in memory that are set in A. Z is from A&M before the write.
func (c *Chip) iTRB(m mode) {
	v := c.modify(m)
	c.zeroCheck(c.A & v)
	m.write(c, v&^c.A)
}

// iRMB clears the bit in the zero page location given by the opcode.
func (c *Chip) iRMB(m mode) {
	v := c.modify(m)
	m.write(c, v&^(1<<BitIndex(c.op)))
}

// iSMB sets the bit in the zero page location given by the opcode.
func (c *Chip) iSMB(m mode) {
	v := c.modify(m)
	m.write(c, v|(1<<BitIndex(c.op)))
}

func (c *Chip) iBBR(m mode) {
	c.branch(m, m.read(c)&(1<<BitIndex(c.op)) == 0x00)
}

func (c *Chip) iBBS(m mode) {
	c.branch(m, m.read(c)&(1<<BitIndex(c.op)) != 0x00)
}

func (c *Chip) iBCC(m mode) {
	c.branch(m, c.P&P_CARRY == 0x00)
}

func (c *Chip) iBCS(m mode) {
	c.branch(m, c.P&P_CARRY != 0x00)
}

func (c *Chip) iBEQ(m mode) {
	c.branch(m, c.P&P_ZERO != 0x00)
}

func (c *Chip) iBNE(m mode) {
	c.branch(m, c.P&P_ZERO == 0x00)
}

func (c *Chip) iBMI(m mode) {
	c.branch(m, c.P&P_NEGATIVE != 0x00)
}

func (c *Chip) iBPL(m mode) {
	c.branch(m, c.P&P_NEGATIVE == 0x00)
}

func (c *Chip) iBVC(m mode) {
	c.branch(m, c.P&P_OVERFLOW == 0x00)
}

func (c *Chip) iBVS(m mode) {
	c.branch(m, c.P&P_OVERFLOW != 0x00)
}

func (c *Chip) iBRA(m mode) {
	c.branch(m, true)
}

// iBRK runs the interrupt sequence through IRQ_VECTOR. The signature byte was
// already consumed by the immediate mode so the pushed PC skips it.
func (c *Chip) iBRK(mode) {
	c.enterInterrupt(IRQ_VECTOR, true)
}

func (c *Chip) iCLC(mode) { c.P &^= P_CARRY }
func (c *Chip) iCLD(mode) { c.P &^= P_DECIMAL }
func (c *Chip) iCLI(mode) { c.P &^= P_INTERRUPT }
func (c *Chip) iCLV(mode) { c.P &^= P_OVERFLOW }
func (c *Chip) iSEC(mode) { c.P |= P_CARRY }
func (c *Chip) iSED(mode) { c.P |= P_DECIMAL }
func (c *Chip) iSEI(mode) { c.P |= P_INTERRUPT }

func (c *Chip) iTAX(mode) { c.loadRegister(&c.X, c.A) }
func (c *Chip) iTAY(mode) { c.loadRegister(&c.Y, c.A) }
func (c *Chip) iTSX(mode) { c.loadRegister(&c.X, c.S) }
func (c *Chip) iTXA(mode) { c.loadRegister(&c.A, c.X) }
func (c *Chip) iTYA(mode) { c.loadRegister(&c.A, c.Y) }

// iTXS doesn't touch flags unlike the other transfers.
func (c *Chip) iTXS(mode) { c.S = c.X }

func (c *Chip) iPHA(mode) { c.pushStack(c.A) }
func (c *Chip) iPHX(mode) { c.pushStack(c.X) }
func (c *Chip) iPHY(mode) { c.pushStack(c.Y) }

// iPHP pushes P with bit 5 always set. B is only set if the chip was defined that way.
func (c *Chip) iPHP(mode) {
	push := c.P | P_S1
	push &^= P_B
	if c.phpSetsBreak {
		push |= P_B
	}
	c.pushStack(push)
}

func (c *Chip) iPLA(mode) {
	c.stackIdle()
	c.loadRegister(&c.A, c.popStack())
}

func (c *Chip) iPLX(mode) {
	c.stackIdle()
	c.loadRegister(&c.X, c.popStack())
}

func (c *Chip) iPLY(mode) {
	c.stackIdle()
	c.loadRegister(&c.Y, c.popStack())
}

// iPLP restores P. Bit 5 is forced on and B never lands in the live register.
func (c *Chip) iPLP(mode) {
	c.stackIdle()
	c.P = (c.popStack() | P_S1) &^ P_B
}

func (c *Chip) iJMP(m mode) {
	c.PC = m.address()
}

// iJSR pushes the address of the high byte of the target and then reads it.
// The subroutine mode only fetched the low byte.
func (c *Chip) iJSR(m mode) {
	c.stackIdle()
	c.pushStack(uint8(c.PC >> 8))
	c.pushStack(uint8(c.PC & 0xFF))
	hi := c.bus.Read(c.PC, memory.ACCESS_OPERAND)
	c.PC = (uint16(hi) << 8) + uint16(m.read(c))
}

// iRTS pops the return address and then spends a cycle incrementing it.
func (c *Chip) iRTS(mode) {
	c.stackIdle()
	lo := c.popStack()
	hi := c.popStack()
	c.PC = (uint16(hi) << 8) + uint16(lo)
	c.bus.Read(c.PC, memory.ACCESS_IDLE)
	c.PC++
}

func (c *Chip) iRTI(mode) {
	c.stackIdle()
	c.P = (c.popStack() | P_S1) &^ P_B
	lo := c.popStack()
	hi := c.popStack()
	c.PC = (uint16(hi) << 8) + uint16(lo)
}

// iNOP reads its operand (if the mode has one) and throws it away.
func (c *Chip) iNOP(m mode) {
	_ = m.read(c)
}

// iNOPLong is 0x5C which after fetching its 2 operand bytes idles for 5 cycles
// on the top page.
func (c *Chip) iNOPLong(m mode) {
	addr := 0xFF00 | (m.address() & 0x00FF)
	for i := 0; i < 5; i++ {
		c.bus.Read(addr, memory.ACCESS_IDLE)
	}
}

func (c *Chip) iWAI(mode) {
	c.state = STATE_AWAITING_INTERRUPT
}

func (c *Chip) iSTP(mode) {
	c.state = STATE_STOPPED
}
