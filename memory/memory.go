// Package memory defines the basic interfaces for working
// with a 65C02 family memory map. Since each implementation
// that is emulated has specific mappings (including shadowed
// regions) this is defined as an interface.
//
// Two views exist. A Bank is plain storage which can be read and written
// without side effects on timing. A Bus is what the CPU core drives: every
// call is exactly one emulated clock cycle and carries an Access category
// so tracing and debugging tools can see why the cycle happened.
package memory

import "fmt"

type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

// Access is an enumeration of the reasons the CPU touches the bus on a given cycle.
// It exists purely for observability and never changes timing.
type Access int

const (
	ACCESS_UNIMPLEMENTED    Access = iota // Start of valid access enumerations.
	ACCESS_OPCODE                         // Opcode fetch for an instruction which will execute.
	ACCESS_PREEMPTED_OPCODE               // Opcode fetch thrown away because an interrupt or reset took over.
	ACCESS_OPERAND                        // Instruction operand byte (or the unused operand fetch of 1 byte instructions).
	ACCESS_POINTER                        // Byte of an indirect pointer.
	ACCESS_DATA                           // Data read or written by the instruction.
	ACCESS_PUSH                           // Stack push (or the fake pushes during reset).
	ACCESS_POP                            // Stack pop.
	ACCESS_IDLE                           // Internal cycle whose read value is discarded.
	ACCESS_VECTOR                         // Interrupt/reset vector byte.
	ACCESS_WAIT                           // Idle cycle while WAI has nothing to service.
	ACCESS_WAIT_PENDING                   // Idle cycle while WAI sees an interrupt line it can't take yet.
	ACCESS_STOPPED                        // Idle cycle after STP.
	ACCESS_MAX                            // End of access enumerations.
)

var accessNames = [ACCESS_MAX]string{
	ACCESS_UNIMPLEMENTED:    "UNIMPLEMENTED",
	ACCESS_OPCODE:           "OPCODE",
	ACCESS_PREEMPTED_OPCODE: "PREEMPTED_OPCODE",
	ACCESS_OPERAND:          "OPERAND",
	ACCESS_POINTER:          "POINTER",
	ACCESS_DATA:             "DATA",
	ACCESS_PUSH:             "PUSH",
	ACCESS_POP:              "POP",
	ACCESS_IDLE:             "IDLE",
	ACCESS_VECTOR:           "VECTOR",
	ACCESS_WAIT:             "WAIT",
	ACCESS_WAIT_PENDING:     "WAIT_PENDING",
	ACCESS_STOPPED:          "STOPPED",
}

// String implements fmt.Stringer.
func (a Access) String() string {
	if a < ACCESS_UNIMPLEMENTED || a >= ACCESS_MAX {
		return fmt.Sprintf("Access(%d)", int(a))
	}
	return accessNames[a]
}

// Bus is the contract between the CPU core and the system it runs in.
// Each method call represents one bus cycle and the core calls them in
// the same order real hardware drives its address and data pins.
// The system owns the cycle counter and is expected to account for a
// cycle (and tick any other chips) inside each call.
type Bus interface {
	// Read performs a read cycle at addr.
	Read(addr uint16, kind Access) uint8
	// ReadOpcode performs a read cycle with SYNC asserted.
	ReadOpcode(addr uint16, kind Access) uint8
	// Write performs a write cycle of val to addr.
	Write(addr uint16, val uint8, kind Access)
	// FetchVectorByte performs a read cycle of one byte of an interrupt or reset vector.
	FetchVectorByte(addr uint16) uint8
}

// RAM is a flat 64k Bank.
type RAM struct {
	addr [65536]uint8
	fill uint8
}

// NewRAM returns a 64k Bank which fills with the given value on PowerOn.
func NewRAM(fill uint8) *RAM {
	r := &RAM{fill: fill}
	r.PowerOn()
	return r
}

// Read implements the interface for memory.Bank.
func (r *RAM) Read(addr uint16) uint8 {
	return r.addr[addr]
}

// Write implements the interface for memory.Bank.
func (r *RAM) Write(addr uint16, val uint8) {
	r.addr[addr] = val
}

// PowerOn implements the interface for memory.Bank.
func (r *RAM) PowerOn() {
	for i := range r.addr {
		r.addr[i] = r.fill
	}
}

// Load copies data into RAM starting at addr, wrapping at the top of memory.
func (r *RAM) Load(addr uint16, data []uint8) {
	for _, b := range data {
		r.addr[addr] = b
		addr++
	}
}
