package cpu

import "fmt"

// Operation is an enumeration of the distinct instruction kinds, independent of addressing mode.
type Operation int

const (
	OP_UNIMPLEMENTED Operation = iota // Start of valid operation enumerations.
	OP_ADC
	OP_AND
	OP_ASL
	OP_BBR
	OP_BBS
	OP_BCC
	OP_BCS
	OP_BEQ
	OP_BIT
	OP_BMI
	OP_BNE
	OP_BPL
	OP_BRA
	OP_BRK
	OP_BVC
	OP_BVS
	OP_CLC
	OP_CLD
	OP_CLI
	OP_CLV
	OP_CMP
	OP_CPX
	OP_CPY
	OP_DEC
	OP_DEX
	OP_DEY
	OP_EOR
	OP_INC
	OP_INX
	OP_INY
	OP_JMP
	OP_JSR
	OP_LDA
	OP_LDX
	OP_LDY
	OP_LSR
	OP_NOP
	OP_NOP_LONG // 0x5C which reads its operand and then idles for 5 more cycles.
	OP_ORA
	OP_PHA
	OP_PHP
	OP_PHX
	OP_PHY
	OP_PLA
	OP_PLP
	OP_PLX
	OP_PLY
	OP_RMB
	OP_ROL
	OP_ROR
	OP_RTI
	OP_RTS
	OP_SBC
	OP_SEC
	OP_SED
	OP_SEI
	OP_SMB
	OP_STA
	OP_STP
	OP_STX
	OP_STY
	OP_STZ
	OP_TAX
	OP_TAY
	OP_TRB
	OP_TSB
	OP_TSX
	OP_TXA
	OP_TXS
	OP_TYA
	OP_WAI
	OP_MAX // End of operation enumerations.
)

var opNames = [OP_MAX]string{
	OP_UNIMPLEMENTED: "UNIMPLEMENTED",
	OP_ADC:           "ADC",
	OP_AND:           "AND",
	OP_ASL:           "ASL",
	OP_BBR:           "BBR",
	OP_BBS:           "BBS",
	OP_BCC:           "BCC",
	OP_BCS:           "BCS",
	OP_BEQ:           "BEQ",
	OP_BIT:           "BIT",
	OP_BMI:           "BMI",
	OP_BNE:           "BNE",
	OP_BPL:           "BPL",
	OP_BRA:           "BRA",
	OP_BRK:           "BRK",
	OP_BVC:           "BVC",
	OP_BVS:           "BVS",
	OP_CLC:           "CLC",
	OP_CLD:           "CLD",
	OP_CLI:           "CLI",
	OP_CLV:           "CLV",
	OP_CMP:           "CMP",
	OP_CPX:           "CPX",
	OP_CPY:           "CPY",
	OP_DEC:           "DEC",
	OP_DEX:           "DEX",
	OP_DEY:           "DEY",
	OP_EOR:           "EOR",
	OP_INC:           "INC",
	OP_INX:           "INX",
	OP_INY:           "INY",
	OP_JMP:           "JMP",
	OP_JSR:           "JSR",
	OP_LDA:           "LDA",
	OP_LDX:           "LDX",
	OP_LDY:           "LDY",
	OP_LSR:           "LSR",
	OP_NOP:           "NOP",
	OP_NOP_LONG:      "NOP",
	OP_ORA:           "ORA",
	OP_PHA:           "PHA",
	OP_PHP:           "PHP",
	OP_PHX:           "PHX",
	OP_PHY:           "PHY",
	OP_PLA:           "PLA",
	OP_PLP:           "PLP",
	OP_PLX:           "PLX",
	OP_PLY:           "PLY",
	OP_RMB:           "RMB",
	OP_ROL:           "ROL",
	OP_ROR:           "ROR",
	OP_RTI:           "RTI",
	OP_RTS:           "RTS",
	OP_SBC:           "SBC",
	OP_SEC:           "SEC",
	OP_SED:           "SED",
	OP_SEI:           "SEI",
	OP_SMB:           "SMB",
	OP_STA:           "STA",
	OP_STP:           "STP",
	OP_STX:           "STX",
	OP_STY:           "STY",
	OP_STZ:           "STZ",
	OP_TAX:           "TAX",
	OP_TAY:           "TAY",
	OP_TRB:           "TRB",
	OP_TSB:           "TSB",
	OP_TSX:           "TSX",
	OP_TXA:           "TXA",
	OP_TXS:           "TXS",
	OP_TYA:           "TYA",
	OP_WAI:           "WAI",
}

// String implements fmt.Stringer and returns the assembler mnemonic.
func (o Operation) String() string {
	if o < OP_UNIMPLEMENTED || o >= OP_MAX {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return opNames[o]
}

// Mode is an enumeration of the addressing modes.
type Mode int

const (
	MODE_UNIMPLEMENTED       Mode = iota // Start of valid mode enumerations.
	MODE_IMPLIED                         // 1 byte, 1 unused operand fetch.
	MODE_ACCUMULATOR                     // As implied but operates on A.
	MODE_X_REGISTER                      // As implied but operates on X.
	MODE_Y_REGISTER                      // As implied but operates on Y.
	MODE_SINGLE_CYCLE                    // 1 byte, no operand fetch at all. The reserved $x3/$xB NOPs.
	MODE_IMMEDIATE                       // #i
	MODE_ZP                              // d
	MODE_ZPX                             // d,x
	MODE_ZPY                             // d,y
	MODE_INDIRECTX                       // (d,x)
	MODE_INDIRECT_ZP                     // (d)
	MODE_INDIRECTY                       // (d),y
	MODE_ABSOLUTE                        // a
	MODE_ABSOLUTEX                       // a,x
	MODE_ABSOLUTEX_RMW                   // a,x for INC/DEC which always take the fixup cycle.
	MODE_ABSOLUTEY                       // a,y
	MODE_INDIRECT                        // (a) for JMP
	MODE_INDIRECT_ABSOLUTEX              // (a,x) for JMP
	MODE_RELATIVE                        // *+r
	MODE_ZP_RELATIVE                     // d,*+r for BBR/BBS
	MODE_SUBROUTINE                      // a for JSR which interleaves the stack pushes with the operand fetch.
	MODE_MAX                             // End of mode enumerations.
)

var modeNames = [MODE_MAX]string{
	MODE_UNIMPLEMENTED:      "UNIMPLEMENTED",
	MODE_IMPLIED:            "IMPLIED",
	MODE_ACCUMULATOR:        "ACCUMULATOR",
	MODE_X_REGISTER:         "X_REGISTER",
	MODE_Y_REGISTER:         "Y_REGISTER",
	MODE_SINGLE_CYCLE:       "SINGLE_CYCLE",
	MODE_IMMEDIATE:          "IMMEDIATE",
	MODE_ZP:                 "ZP",
	MODE_ZPX:                "ZPX",
	MODE_ZPY:                "ZPY",
	MODE_INDIRECTX:          "INDIRECTX",
	MODE_INDIRECT_ZP:        "INDIRECT_ZP",
	MODE_INDIRECTY:          "INDIRECTY",
	MODE_ABSOLUTE:           "ABSOLUTE",
	MODE_ABSOLUTEX:          "ABSOLUTEX",
	MODE_ABSOLUTEX_RMW:      "ABSOLUTEX_RMW",
	MODE_ABSOLUTEY:          "ABSOLUTEY",
	MODE_INDIRECT:           "INDIRECT",
	MODE_INDIRECT_ABSOLUTEX: "INDIRECT_ABSOLUTEX",
	MODE_RELATIVE:           "RELATIVE",
	MODE_ZP_RELATIVE:        "ZP_RELATIVE",
	MODE_SUBROUTINE:         "SUBROUTINE",
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m < MODE_UNIMPLEMENTED || m >= MODE_MAX {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Bytes returns the instruction length (opcode included) for the mode.
func (m Mode) Bytes() int {
	switch m {
	case MODE_IMPLIED, MODE_ACCUMULATOR, MODE_X_REGISTER, MODE_Y_REGISTER, MODE_SINGLE_CYCLE:
		return 1
	case MODE_IMMEDIATE, MODE_ZP, MODE_ZPX, MODE_ZPY, MODE_INDIRECTX, MODE_INDIRECT_ZP, MODE_INDIRECTY, MODE_RELATIVE:
		return 2
	case MODE_ABSOLUTE, MODE_ABSOLUTEX, MODE_ABSOLUTEX_RMW, MODE_ABSOLUTEY, MODE_INDIRECT, MODE_INDIRECT_ABSOLUTEX, MODE_ZP_RELATIVE, MODE_SUBROUTINE:
		return 3
	}
	return 1
}

// Opcode is one entry in the dispatch table.
type Opcode struct {
	Op   Operation
	Mode Mode
}

// Lookup returns the dispatch table entry for the given opcode byte.
func Lookup(op uint8) Opcode {
	return opcodes[op]
}

// BitIndex returns the bit tested or modified by the RMB/SMB/BBR/BBS opcode given.
func BitIndex(op uint8) uint8 {
	return (op >> 4) & 0x07
}

// opcodes is the dispatch table. Every one of the 256 entries is defined.
// The reserved opcodes are all NOPs of the size and timing the WDC part gives them.
var opcodes = [256]Opcode{
	0x00: {OP_BRK, MODE_IMMEDIATE}, // The signature byte is read and skipped.
	0x01: {OP_ORA, MODE_INDIRECTX},
	0x02: {OP_NOP, MODE_IMMEDIATE},
	0x03: {OP_NOP, MODE_SINGLE_CYCLE},
	0x04: {OP_TSB, MODE_ZP},
	0x05: {OP_ORA, MODE_ZP},
	0x06: {OP_ASL, MODE_ZP},
	0x07: {OP_RMB, MODE_ZP},
	0x08: {OP_PHP, MODE_IMPLIED},
	0x09: {OP_ORA, MODE_IMMEDIATE},
	0x0A: {OP_ASL, MODE_ACCUMULATOR},
	0x0B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x0C: {OP_TSB, MODE_ABSOLUTE},
	0x0D: {OP_ORA, MODE_ABSOLUTE},
	0x0E: {OP_ASL, MODE_ABSOLUTE},
	0x0F: {OP_BBR, MODE_ZP_RELATIVE},

	0x10: {OP_BPL, MODE_RELATIVE},
	0x11: {OP_ORA, MODE_INDIRECTY},
	0x12: {OP_ORA, MODE_INDIRECT_ZP},
	0x13: {OP_NOP, MODE_SINGLE_CYCLE},
	0x14: {OP_TRB, MODE_ZP},
	0x15: {OP_ORA, MODE_ZPX},
	0x16: {OP_ASL, MODE_ZPX},
	0x17: {OP_RMB, MODE_ZP},
	0x18: {OP_CLC, MODE_IMPLIED},
	0x19: {OP_ORA, MODE_ABSOLUTEY},
	0x1A: {OP_INC, MODE_ACCUMULATOR},
	0x1B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x1C: {OP_TRB, MODE_ABSOLUTE},
	0x1D: {OP_ORA, MODE_ABSOLUTEX},
	0x1E: {OP_ASL, MODE_ABSOLUTEX},
	0x1F: {OP_BBR, MODE_ZP_RELATIVE},

	0x20: {OP_JSR, MODE_SUBROUTINE},
	0x21: {OP_AND, MODE_INDIRECTX},
	0x22: {OP_NOP, MODE_IMMEDIATE},
	0x23: {OP_NOP, MODE_SINGLE_CYCLE},
	0x24: {OP_BIT, MODE_ZP},
	0x25: {OP_AND, MODE_ZP},
	0x26: {OP_ROL, MODE_ZP},
	0x27: {OP_RMB, MODE_ZP},
	0x28: {OP_PLP, MODE_IMPLIED},
	0x29: {OP_AND, MODE_IMMEDIATE},
	0x2A: {OP_ROL, MODE_ACCUMULATOR},
	0x2B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x2C: {OP_BIT, MODE_ABSOLUTE},
	0x2D: {OP_AND, MODE_ABSOLUTE},
	0x2E: {OP_ROL, MODE_ABSOLUTE},
	0x2F: {OP_BBR, MODE_ZP_RELATIVE},

	0x30: {OP_BMI, MODE_RELATIVE},
	0x31: {OP_AND, MODE_INDIRECTY},
	0x32: {OP_AND, MODE_INDIRECT_ZP},
	0x33: {OP_NOP, MODE_SINGLE_CYCLE},
	0x34: {OP_BIT, MODE_ZPX},
	0x35: {OP_AND, MODE_ZPX},
	0x36: {OP_ROL, MODE_ZPX},
	0x37: {OP_RMB, MODE_ZP},
	0x38: {OP_SEC, MODE_IMPLIED},
	0x39: {OP_AND, MODE_ABSOLUTEY},
	0x3A: {OP_DEC, MODE_ACCUMULATOR},
	0x3B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x3C: {OP_BIT, MODE_ABSOLUTEX},
	0x3D: {OP_AND, MODE_ABSOLUTEX},
	0x3E: {OP_ROL, MODE_ABSOLUTEX},
	0x3F: {OP_BBR, MODE_ZP_RELATIVE},

	0x40: {OP_RTI, MODE_IMPLIED},
	0x41: {OP_EOR, MODE_INDIRECTX},
	0x42: {OP_NOP, MODE_IMMEDIATE},
	0x43: {OP_NOP, MODE_SINGLE_CYCLE},
	0x44: {OP_NOP, MODE_ZP},
	0x45: {OP_EOR, MODE_ZP},
	0x46: {OP_LSR, MODE_ZP},
	0x47: {OP_RMB, MODE_ZP},
	0x48: {OP_PHA, MODE_IMPLIED},
	0x49: {OP_EOR, MODE_IMMEDIATE},
	0x4A: {OP_LSR, MODE_ACCUMULATOR},
	0x4B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x4C: {OP_JMP, MODE_ABSOLUTE},
	0x4D: {OP_EOR, MODE_ABSOLUTE},
	0x4E: {OP_LSR, MODE_ABSOLUTE},
	0x4F: {OP_BBR, MODE_ZP_RELATIVE},

	0x50: {OP_BVC, MODE_RELATIVE},
	0x51: {OP_EOR, MODE_INDIRECTY},
	0x52: {OP_EOR, MODE_INDIRECT_ZP},
	0x53: {OP_NOP, MODE_SINGLE_CYCLE},
	0x54: {OP_NOP, MODE_ZPX},
	0x55: {OP_EOR, MODE_ZPX},
	0x56: {OP_LSR, MODE_ZPX},
	0x57: {OP_RMB, MODE_ZP},
	0x58: {OP_CLI, MODE_IMPLIED},
	0x59: {OP_EOR, MODE_ABSOLUTEY},
	0x5A: {OP_PHY, MODE_IMPLIED},
	0x5B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x5C: {OP_NOP_LONG, MODE_ABSOLUTE},
	0x5D: {OP_EOR, MODE_ABSOLUTEX},
	0x5E: {OP_LSR, MODE_ABSOLUTEX},
	0x5F: {OP_BBR, MODE_ZP_RELATIVE},

	0x60: {OP_RTS, MODE_IMPLIED},
	0x61: {OP_ADC, MODE_INDIRECTX},
	0x62: {OP_NOP, MODE_IMMEDIATE},
	0x63: {OP_NOP, MODE_SINGLE_CYCLE},
	0x64: {OP_STZ, MODE_ZP},
	0x65: {OP_ADC, MODE_ZP},
	0x66: {OP_ROR, MODE_ZP},
	0x67: {OP_RMB, MODE_ZP},
	0x68: {OP_PLA, MODE_IMPLIED},
	0x69: {OP_ADC, MODE_IMMEDIATE},
	0x6A: {OP_ROR, MODE_ACCUMULATOR},
	0x6B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x6C: {OP_JMP, MODE_INDIRECT},
	0x6D: {OP_ADC, MODE_ABSOLUTE},
	0x6E: {OP_ROR, MODE_ABSOLUTE},
	0x6F: {OP_BBR, MODE_ZP_RELATIVE},

	0x70: {OP_BVS, MODE_RELATIVE},
	0x71: {OP_ADC, MODE_INDIRECTY},
	0x72: {OP_ADC, MODE_INDIRECT_ZP},
	0x73: {OP_NOP, MODE_SINGLE_CYCLE},
	0x74: {OP_STZ, MODE_ZPX},
	0x75: {OP_ADC, MODE_ZPX},
	0x76: {OP_ROR, MODE_ZPX},
	0x77: {OP_RMB, MODE_ZP},
	0x78: {OP_SEI, MODE_IMPLIED},
	0x79: {OP_ADC, MODE_ABSOLUTEY},
	0x7A: {OP_PLY, MODE_IMPLIED},
	0x7B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x7C: {OP_JMP, MODE_INDIRECT_ABSOLUTEX},
	0x7D: {OP_ADC, MODE_ABSOLUTEX},
	0x7E: {OP_ROR, MODE_ABSOLUTEX},
	0x7F: {OP_BBR, MODE_ZP_RELATIVE},

	0x80: {OP_BRA, MODE_RELATIVE},
	0x81: {OP_STA, MODE_INDIRECTX},
	0x82: {OP_NOP, MODE_IMMEDIATE},
	0x83: {OP_NOP, MODE_SINGLE_CYCLE},
	0x84: {OP_STY, MODE_ZP},
	0x85: {OP_STA, MODE_ZP},
	0x86: {OP_STX, MODE_ZP},
	0x87: {OP_SMB, MODE_ZP},
	0x88: {OP_DEY, MODE_Y_REGISTER},
	0x89: {OP_BIT, MODE_IMMEDIATE},
	0x8A: {OP_TXA, MODE_IMPLIED},
	0x8B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x8C: {OP_STY, MODE_ABSOLUTE},
	0x8D: {OP_STA, MODE_ABSOLUTE},
	0x8E: {OP_STX, MODE_ABSOLUTE},
	0x8F: {OP_BBS, MODE_ZP_RELATIVE},

	0x90: {OP_BCC, MODE_RELATIVE},
	0x91: {OP_STA, MODE_INDIRECTY},
	0x92: {OP_STA, MODE_INDIRECT_ZP},
	0x93: {OP_NOP, MODE_SINGLE_CYCLE},
	0x94: {OP_STY, MODE_ZPX},
	0x95: {OP_STA, MODE_ZPX},
	0x96: {OP_STX, MODE_ZPY},
	0x97: {OP_SMB, MODE_ZP},
	0x98: {OP_TYA, MODE_IMPLIED},
	0x99: {OP_STA, MODE_ABSOLUTEY},
	0x9A: {OP_TXS, MODE_IMPLIED},
	0x9B: {OP_NOP, MODE_SINGLE_CYCLE},
	0x9C: {OP_STZ, MODE_ABSOLUTE},
	0x9D: {OP_STA, MODE_ABSOLUTEX},
	0x9E: {OP_STZ, MODE_ABSOLUTEX},
	0x9F: {OP_BBS, MODE_ZP_RELATIVE},

	0xA0: {OP_LDY, MODE_IMMEDIATE},
	0xA1: {OP_LDA, MODE_INDIRECTX},
	0xA2: {OP_LDX, MODE_IMMEDIATE},
	0xA3: {OP_NOP, MODE_SINGLE_CYCLE},
	0xA4: {OP_LDY, MODE_ZP},
	0xA5: {OP_LDA, MODE_ZP},
	0xA6: {OP_LDX, MODE_ZP},
	0xA7: {OP_SMB, MODE_ZP},
	0xA8: {OP_TAY, MODE_IMPLIED},
	0xA9: {OP_LDA, MODE_IMMEDIATE},
	0xAA: {OP_TAX, MODE_IMPLIED},
	0xAB: {OP_NOP, MODE_SINGLE_CYCLE},
	0xAC: {OP_LDY, MODE_ABSOLUTE},
	0xAD: {OP_LDA, MODE_ABSOLUTE},
	0xAE: {OP_LDX, MODE_ABSOLUTE},
	0xAF: {OP_BBS, MODE_ZP_RELATIVE},

	0xB0: {OP_BCS, MODE_RELATIVE},
	0xB1: {OP_LDA, MODE_INDIRECTY},
	0xB2: {OP_LDA, MODE_INDIRECT_ZP},
	0xB3: {OP_NOP, MODE_SINGLE_CYCLE},
	0xB4: {OP_LDY, MODE_ZPX},
	0xB5: {OP_LDA, MODE_ZPX},
	0xB6: {OP_LDX, MODE_ZPY},
	0xB7: {OP_SMB, MODE_ZP},
	0xB8: {OP_CLV, MODE_IMPLIED},
	0xB9: {OP_LDA, MODE_ABSOLUTEY},
	0xBA: {OP_TSX, MODE_IMPLIED},
	0xBB: {OP_NOP, MODE_SINGLE_CYCLE},
	0xBC: {OP_LDY, MODE_ABSOLUTEX},
	0xBD: {OP_LDA, MODE_ABSOLUTEX},
	0xBE: {OP_LDX, MODE_ABSOLUTEY},
	0xBF: {OP_BBS, MODE_ZP_RELATIVE},

	0xC0: {OP_CPY, MODE_IMMEDIATE},
	0xC1: {OP_CMP, MODE_INDIRECTX},
	0xC2: {OP_NOP, MODE_IMMEDIATE},
	0xC3: {OP_NOP, MODE_SINGLE_CYCLE},
	0xC4: {OP_CPY, MODE_ZP},
	0xC5: {OP_CMP, MODE_ZP},
	0xC6: {OP_DEC, MODE_ZP},
	0xC7: {OP_SMB, MODE_ZP},
	0xC8: {OP_INY, MODE_Y_REGISTER},
	0xC9: {OP_CMP, MODE_IMMEDIATE},
	0xCA: {OP_DEX, MODE_X_REGISTER},
	0xCB: {OP_WAI, MODE_IMPLIED},
	0xCC: {OP_CPY, MODE_ABSOLUTE},
	0xCD: {OP_CMP, MODE_ABSOLUTE},
	0xCE: {OP_DEC, MODE_ABSOLUTE},
	0xCF: {OP_BBS, MODE_ZP_RELATIVE},

	0xD0: {OP_BNE, MODE_RELATIVE},
	0xD1: {OP_CMP, MODE_INDIRECTY},
	0xD2: {OP_CMP, MODE_INDIRECT_ZP},
	0xD3: {OP_NOP, MODE_SINGLE_CYCLE},
	0xD4: {OP_NOP, MODE_ZPX},
	0xD5: {OP_CMP, MODE_ZPX},
	0xD6: {OP_DEC, MODE_ZPX},
	0xD7: {OP_SMB, MODE_ZP},
	0xD8: {OP_CLD, MODE_IMPLIED},
	0xD9: {OP_CMP, MODE_ABSOLUTEY},
	0xDA: {OP_PHX, MODE_IMPLIED},
	0xDB: {OP_STP, MODE_IMPLIED},
	0xDC: {OP_NOP, MODE_ABSOLUTE},
	0xDD: {OP_CMP, MODE_ABSOLUTEX},
	0xDE: {OP_DEC, MODE_ABSOLUTEX_RMW},
	0xDF: {OP_BBS, MODE_ZP_RELATIVE},

	0xE0: {OP_CPX, MODE_IMMEDIATE},
	0xE1: {OP_SBC, MODE_INDIRECTX},
	0xE2: {OP_NOP, MODE_IMMEDIATE},
	0xE3: {OP_NOP, MODE_SINGLE_CYCLE},
	0xE4: {OP_CPX, MODE_ZP},
	0xE5: {OP_SBC, MODE_ZP},
	0xE6: {OP_INC, MODE_ZP},
	0xE7: {OP_SMB, MODE_ZP},
	0xE8: {OP_INX, MODE_X_REGISTER},
	0xE9: {OP_SBC, MODE_IMMEDIATE},
	0xEA: {OP_NOP, MODE_IMPLIED},
	0xEB: {OP_NOP, MODE_SINGLE_CYCLE},
	0xEC: {OP_CPX, MODE_ABSOLUTE},
	0xED: {OP_SBC, MODE_ABSOLUTE},
	0xEE: {OP_INC, MODE_ABSOLUTE},
	0xEF: {OP_BBS, MODE_ZP_RELATIVE},

	0xF0: {OP_BEQ, MODE_RELATIVE},
	0xF1: {OP_SBC, MODE_INDIRECTY},
	0xF2: {OP_SBC, MODE_INDIRECT_ZP},
	0xF3: {OP_NOP, MODE_SINGLE_CYCLE},
	0xF4: {OP_NOP, MODE_ZPX},
	0xF5: {OP_SBC, MODE_ZPX},
	0xF6: {OP_INC, MODE_ZPX},
	0xF7: {OP_SMB, MODE_ZP},
	0xF8: {OP_SED, MODE_IMPLIED},
	0xF9: {OP_SBC, MODE_ABSOLUTEY},
	0xFA: {OP_PLX, MODE_IMPLIED},
	0xFB: {OP_NOP, MODE_SINGLE_CYCLE},
	0xFC: {OP_NOP, MODE_ABSOLUTE},
	0xFD: {OP_SBC, MODE_ABSOLUTEX},
	0xFE: {OP_INC, MODE_ABSOLUTEX_RMW},
	0xFF: {OP_BBS, MODE_ZP_RELATIVE},
}
