// convertprg takes a PRG file (2 byte load address followed by data)
// and converts it into a 64k bin image which run65 can load at 0x0000.
//
// The reset vector points at a stub at -stub (default 0xEF00) which
// JSR's to -start_pc (default the load address) and then executes STP
// so the run ends cleanly when the program returns. IRQ and NMI vectors
// point at an RTI placed after the stub.
//
// The output file is named after the input with .bin
// appended onto the end.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/jmchacon/65c02/system"
)

var (
	startPC = flag.Int("start_pc", -1, "PC value to start execution. Defaults to the PRG load address.")
	stub    = flag.Int("stub", 0xEF00, "Address of the 5 byte startup stub and RTI handler.")
)

// stubCode returns the startup routine: JSR start, STP, RTI.
func stubCode(start uint16) []uint8 {
	return []uint8{
		0x20, uint8(start & 0xFF), uint8(start >> 8), // JSR start
		0xDB, // STP
		0x40, // RTI
	}
}

// convert loads prg into a fresh system and returns the full 64k image.
func convert(prg []uint8, start int, stubAddr uint16) ([]uint8, uint16, error) {
	s, err := system.Init(&system.Def{})
	if err != nil {
		return nil, 0, err
	}
	addr, err := s.LoadPRG(prg)
	if err != nil {
		return nil, 0, err
	}
	pc := addr
	if start >= 0 {
		pc = uint16(start)
	}
	if err := s.LoadBinary(stubAddr, stubCode(pc)); err != nil {
		return nil, 0, err
	}
	s.SetVectors(stubAddr, stubAddr+4, stubAddr+4)
	out := make([]uint8, 65536)
	for i := range out {
		out[i] = s.RAM().Read(uint16(i))
	}
	return out, addr, nil
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-start_pc=XXXX] [-stub=XXXX] <filename>", os.Args[0])
	}
	if *startPC > 65535 {
		log.Fatal("-start_pc out of range. Must be between 0-65535")
	}
	if *stub < 0 || *stub > 65535-5 {
		log.Fatal("-stub out of range")
	}
	fn := flag.Args()[0]
	b, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}
	out, addr, err := convert(b, *startPC, uint16(*stub))
	if err != nil {
		log.Fatalf("Can't convert %s - %v", fn, err)
	}
	log.Printf("Addr is 0x%.4X", addr)

	outfn := fn + ".bin"
	if err := os.WriteFile(outfn, out, 0644); err != nil {
		log.Fatalf("Can't write %q: %v", outfn, err)
	}
}
