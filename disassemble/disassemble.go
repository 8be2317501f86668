// Package disassemble implements a disassembler for 65C02 opcodes
// driven by the same opcode table the CPU dispatches from.
package disassemble

import (
	"fmt"
	"strings"

	"github.com/jmchacon/65c02/cpu"
	"github.com/jmchacon/65c02/memory"
)

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the bytes forward the PC should move to get to
// the next instruction. This does not interpret the instructions so LDA, JMP, LDA in memory
// will disassemble as that sequence and not follow the JMP.
// This always reads two bytes past the current PC (wrapping at the top of memory).
func Step(pc uint16, r memory.Bank) (string, int) {
	o := r.Read(pc)
	pc1 := r.Read(pc + 1)
	pc2 := r.Read(pc + 2)
	abs := uint16(pc2)<<8 | uint16(pc1)

	op := cpu.Lookup(o)
	name := op.Op.String()
	switch op.Op {
	case cpu.OP_RMB, cpu.OP_SMB, cpu.OP_BBR, cpu.OP_BBS:
		name += fmt.Sprintf("%d", cpu.BitIndex(o))
	}

	var args string
	switch op.Mode {
	case cpu.MODE_IMPLIED, cpu.MODE_X_REGISTER, cpu.MODE_Y_REGISTER, cpu.MODE_SINGLE_CYCLE:
	case cpu.MODE_ACCUMULATOR:
		args = "A"
	case cpu.MODE_IMMEDIATE:
		args = fmt.Sprintf("#$%.2X", pc1)
	case cpu.MODE_ZP:
		args = fmt.Sprintf("$%.2X", pc1)
	case cpu.MODE_ZPX:
		args = fmt.Sprintf("$%.2X,X", pc1)
	case cpu.MODE_ZPY:
		args = fmt.Sprintf("$%.2X,Y", pc1)
	case cpu.MODE_INDIRECTX:
		args = fmt.Sprintf("($%.2X,X)", pc1)
	case cpu.MODE_INDIRECT_ZP:
		args = fmt.Sprintf("($%.2X)", pc1)
	case cpu.MODE_INDIRECTY:
		args = fmt.Sprintf("($%.2X),Y", pc1)
	case cpu.MODE_ABSOLUTE, cpu.MODE_SUBROUTINE:
		args = fmt.Sprintf("$%.4X", abs)
	case cpu.MODE_ABSOLUTEX, cpu.MODE_ABSOLUTEX_RMW:
		args = fmt.Sprintf("$%.4X,X", abs)
	case cpu.MODE_ABSOLUTEY:
		args = fmt.Sprintf("$%.4X,Y", abs)
	case cpu.MODE_INDIRECT:
		args = fmt.Sprintf("($%.4X)", abs)
	case cpu.MODE_INDIRECT_ABSOLUTEX:
		args = fmt.Sprintf("($%.4X,X)", abs)
	case cpu.MODE_RELATIVE:
		// Branch offsets are relative to the following instruction and sign extended.
		args = fmt.Sprintf("$%.4X", pc+2+uint16(int16(int8(pc1))))
	case cpu.MODE_ZP_RELATIVE:
		args = fmt.Sprintf("$%.2X,$%.4X", pc1, pc+3+uint16(int16(int8(pc2))))
	default:
		panic(fmt.Sprintf("Invalid mode: %s for opcode %.2X", op.Mode, o))
	}

	count := op.Mode.Bytes()
	var raw string
	switch count {
	case 2:
		raw = fmt.Sprintf("%.2X", pc1)
	case 3:
		raw = fmt.Sprintf("%.2X %.2X", pc1, pc2)
	}
	out := fmt.Sprintf("%.4X %.2X %-5s %-4s %s", pc, o, raw, name, args)
	return strings.TrimRight(out, " "), count
}
