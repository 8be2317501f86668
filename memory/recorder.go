package memory

import "fmt"

var _ = Bus(&Recorder{})

// Cycle is a single observed bus cycle.
type Cycle struct {
	Addr   uint16
	Val    uint8
	Write  bool
	Opcode bool // SYNC was asserted.
	Kind   Access
}

// String implements fmt.Stringer.
func (c Cycle) String() string {
	dir := "R"
	if c.Write {
		dir = "W"
	}
	return fmt.Sprintf("%s %.4X %.2X %s", dir, c.Addr, c.Val, c.Kind)
}

// Recorder adapts a Bank into a Bus and remembers every cycle run through it.
type Recorder struct {
	Bank   Bank
	Cycles []Cycle
}

// NewRecorder returns a Recorder on top of the given Bank.
func NewRecorder(b Bank) *Recorder {
	return &Recorder{Bank: b}
}

// Read implements the interface for memory.Bus.
func (r *Recorder) Read(addr uint16, kind Access) uint8 {
	val := r.Bank.Read(addr)
	r.Cycles = append(r.Cycles, Cycle{Addr: addr, Val: val, Kind: kind})
	return val
}

// ReadOpcode implements the interface for memory.Bus.
func (r *Recorder) ReadOpcode(addr uint16, kind Access) uint8 {
	val := r.Bank.Read(addr)
	r.Cycles = append(r.Cycles, Cycle{Addr: addr, Val: val, Opcode: true, Kind: kind})
	return val
}

// Write implements the interface for memory.Bus.
func (r *Recorder) Write(addr uint16, val uint8, kind Access) {
	r.Bank.Write(addr, val)
	r.Cycles = append(r.Cycles, Cycle{Addr: addr, Val: val, Write: true, Kind: kind})
}

// FetchVectorByte implements the interface for memory.Bus.
func (r *Recorder) FetchVectorByte(addr uint16) uint8 {
	val := r.Bank.Read(addr)
	r.Cycles = append(r.Cycles, Cycle{Addr: addr, Val: val, Kind: ACCESS_VECTOR})
	return val
}

// Clear drops all recorded cycles but keeps the backing storage.
func (r *Recorder) Clear() {
	r.Cycles = r.Cycles[:0]
}
