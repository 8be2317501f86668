// disassembler takes a filename and loads it and then
// disassembles it to stdout starting at the first instruction.
// If the filename ends in .prg (case insensitive) it will assume
// this is a PRG file and use the first 2 bytes as the load
// address (overriding -offset and -start_pc).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmchacon/65c02/disassemble"
	"github.com/jmchacon/65c02/memory"
)

var (
	startPC = flag.Int("start_pc", 0x0000, "PC value to start disassembling")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out. Ignored for PRG files.")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-start_pc <PC> -offset <offset>] <filename>", os.Args[0])
	}
	if *startPC < 0 || *startPC > 0xFFFF || *offset < 0 || *offset > 0xFFFF {
		log.Fatal("-start_pc and -offset must be between 0-65535")
	}
	fn := flag.Args()[0]

	b, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}
	pc := uint16(*startPC)
	if strings.ToLower(filepath.Ext(fn)) == ".prg" {
		if len(b) < 3 {
			log.Fatalf("PRG file %s too short: %d bytes", fn, len(b))
		}
		fmt.Println("PRG file")
		// We're supplied with the load offset instead of using the flag (which we'll override).
		*offset = int(uint16(b[1])<<8 | uint16(b[0]))
		pc = uint16(*offset)
		b = b[2:]
	}
	max := 65536 - *offset
	if l := len(b); l > max {
		log.Printf("Length %d at offset %d too long, truncating to 64k", l, *offset)
		b = b[:max]
	}
	fmt.Printf("0x%.2X bytes at pc: %.4X\n", len(b), pc)

	r := memory.NewRAM(0x00)
	r.Load(uint16(*offset), b)

	cnt := 0
	// Can't base it on PC since it may rollover so just disassemble until we run out of buffer.
	for cnt < len(b) {
		dis, off := disassemble.Step(pc, r)
		pc += uint16(off)
		cnt += off
		fmt.Println(dis)
	}
}
