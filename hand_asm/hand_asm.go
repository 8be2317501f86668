// hand_asm takes a filename and produces a bin file
// from parsing the output as a hand assembled file
// of the form:
//
// XXXX OP A1 A2 ....
//
// Where XXXX is the address field and OP is the opcode
// A1,A2 are then optional params as needed. Anything after
// the hex bytes (mnemonics, comments) is ignored so the output
// of disassembler can be fed back in. Lines not starting with
// an address are skipped.
//
// The instruction length is checked against the 65C02 opcode
// table and bytes land at their address less -offset. Gaps
// are zero filled.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmchacon/65c02/cpu"
)

var (
	offset = flag.Int("offset", 0x0000, "Address of the first byte of the output. Lines below this are an error.")
)

var lineRE = regexp.MustCompile(`^([0-9A-Fa-f]{4})\s+(.*)$`)
var byteRE = regexp.MustCompile(`^[0-9A-Fa-f]{2}$`)

// assemble parses a listing from r and returns the resulting image starting at base.
func assemble(r io.Reader, base int) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	var output []byte
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		m := lineRE.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		addr, err := strconv.ParseUint(m[1], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d %q: bad address - %v", l, t, err)
		}
		var insn []byte
		for _, v := range strings.Fields(m[2]) {
			if len(insn) == 3 || !byteRE.MatchString(v) {
				break
			}
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d %q: %v", l, t, err)
			}
			insn = append(insn, byte(b))
		}
		if len(insn) == 0 {
			return nil, fmt.Errorf("line %d %q: no opcode", l, t)
		}
		if got, want := len(insn), cpu.Lookup(insn[0]).Mode.Bytes(); got != want {
			return nil, fmt.Errorf("line %d %q: opcode %.2X (%s) takes %d bytes, got %d", l, t, insn[0], cpu.Lookup(insn[0]).Op, want, got)
		}
		start := int(addr) - base
		if start < 0 {
			return nil, fmt.Errorf("line %d %q: address below offset 0x%.4X", l, t, base)
		}
		for len(output) < start+len(insn) {
			output = append(output, 0x00)
		}
		copy(output[start:], insn)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return output, nil
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s [-offset <addr>] <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	in, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	defer in.Close()
	output, err := assemble(in, *offset)
	if err != nil {
		log.Fatalf("Can't process %q - %v", fn, err)
	}
	if err := os.WriteFile(out, output, 0644); err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
}
