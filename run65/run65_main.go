// run65 loads a binary or PRG image into a 65C02 system and runs it.
// Console output goes to stdout, -keyboard feeds raw stdin to the
// keyboard register and -display opens a window showing the 32x32
// framebuffer at 0x0200.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/jmchacon/65c02/cpu"
	"github.com/jmchacon/65c02/disassemble"
	"github.com/jmchacon/65c02/io"
	"github.com/jmchacon/65c02/memory"
	"github.com/jmchacon/65c02/system"
)

var (
	debug       = flag.Bool("debug", false, "If true will emit full CPU/timer debugging while running")
	cycles      = flag.Int("cycles", 0, "Number of cycles to run. 0 runs until the CPU executes STP")
	load        = flag.String("load", "", "Path to image to load. Files ending in .prg use their first 2 bytes as the load address")
	loadAddr    = flag.Int("load_addr", 0x0000, "Address to load a raw image at. Ignored for PRG files")
	startPC     = flag.Int("start_pc", -1, "If set overrides the reset vector. PRG files default to their load address")
	trace       = flag.Bool("trace", false, "If true prints every bus cycle and a disassembly of each instruction to stderr")
	breaks      = flag.String("break", "", "Comma separated list of hex PCs to stop and dump state at")
	watches     = flag.String("watch", "", "Comma separated list of hex addresses to stop and dump state on access")
	showDisplay = flag.Bool("display", false, "If true opens a window showing the framebuffer")
	scale       = flag.Int("scale", 8, "Window scale factor for -display")
	keyboard    = flag.Bool("keyboard", false, "If true puts the terminal in raw mode and feeds keys to the keyboard register")
	stats       = flag.Bool("statsview", false, "If true serves runtime stats over HTTP")
	statsAddr   = flag.String("statsview_addr", "localhost:12600", "Address for -statsview")
	dump        = flag.Bool("dump", false, "If true dumps the full CPU state on exit")
	nmosPHP     = flag.Bool("nmos_php", true, "If true PHP pushes P with the B bit set as NMOS parts do")
)

// kFRAME_CYCLES is one 60Hz frame at 1MHz.
const kFRAME_CYCLES = 1000000 / 60

func parseAddrs(s string) ([]uint16, error) {
	var ret []uint16
	if s == "" {
		return ret, nil
	}
	for _, a := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(a), "0x"), 16, 16)
		if err != nil {
			return nil, fmt.Errorf("bad address %q: %v", a, err)
		}
		ret = append(ret, uint16(v))
	}
	return ret, nil
}

// loadImage reads fn into s and points the reset vector at the right place.
func loadImage(s *system.System, fn string) error {
	b, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	start := *startPC
	if strings.ToLower(filepath.Ext(fn)) == ".prg" {
		addr, err := s.LoadPRG(b)
		if err != nil {
			return err
		}
		if start < 0 {
			start = int(addr)
		}
	} else if err := s.LoadBinary(uint16(*loadAddr), b); err != nil {
		return err
	}
	if start >= 0 {
		s.RAM().Write(cpu.RESET_VECTOR, uint8(start&0xFF))
		s.RAM().Write(cpu.RESET_VECTOR+1, uint8(start>>8))
	}
	return nil
}

// runLoop runs s in frame sized chunks calling frame after each one until
// the cycle limit, a stop, or frame returning false.
func runLoop(s *system.System, frame func() bool) error {
	total := 0
	for {
		budget := kFRAME_CYCLES
		if *cycles > 0 && *cycles-total < budget {
			budget = *cycles - total
		}
		n, err := s.Run(budget)
		total += n
		if err != nil {
			var bp system.Breakpoint
			var wp system.Watchpoint
			switch {
			case errors.As(err, &bp), errors.As(err, &wp):
				log.Printf("%v\n%s", err, spew.Sdump(s.CPU()))
				continue
			}
			return err
		}
		if *debug {
			log.Print(s.Debug())
		}
		if frame != nil && !frame() {
			return nil
		}
		if *cycles > 0 && total >= *cycles {
			return nil
		}
	}
}

func main() {
	flag.Parse()
	if *load == "" {
		log.Fatalf("Invalid command: %s -load <image> [flags]", os.Args[0])
	}
	if *loadAddr < 0 || *loadAddr > 0xFFFF || *startPC > 0xFFFF {
		log.Fatal("-load_addr and -start_pc must be between 0-65535")
	}

	if *stats {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(*statsAddr))
			mgr := statsview.New()
			mgr.Start()
		}()
		log.Printf("stats server available at http://%s/debug/statsview", *statsAddr)
	}

	var kb io.PortIn8
	var out = &crlfWriter{w: os.Stdout}
	if *keyboard {
		q := &io.Queue{}
		restore, err := rawKeyboard(q)
		if err != nil {
			log.Fatalf("Can't set up keyboard: %v", err)
		}
		defer restore()
		out.crlf = true
		kb = q
	}

	s, err := system.Init(&system.Def{
		PHPSetsBreak: *nmosPHP,
		Keyboard:     kb,
		Output:       out,
		Debug:        *debug,
	})
	if err != nil {
		log.Fatalf("Can't init system: %v", err)
	}
	if err := loadImage(s, *load); err != nil {
		log.Fatalf("Can't load %s: %v", *load, err)
	}
	bps, err := parseAddrs(*breaks)
	if err != nil {
		log.Fatalf("Bad -break: %v", err)
	}
	for _, a := range bps {
		s.AddBreakpoint(a)
	}
	wps, err := parseAddrs(*watches)
	if err != nil {
		log.Fatalf("Bad -watch: %v", err)
	}
	for _, a := range wps {
		s.AddWatchpoint(a)
	}
	if *trace {
		s.Trace(func(c memory.Cycle) {
			if c.Opcode {
				dis, _ := disassemble.Step(c.Addr, s.RAM())
				fmt.Fprintln(os.Stderr, dis)
			}
			fmt.Fprintf(os.Stderr, "  %s\n", c)
		})
	}

	if *showDisplay {
		err = runWindowed(s)
	} else {
		err = runLoop(s, nil)
	}
	var stop system.Stopped
	switch {
	case err == nil:
	case errors.As(err, &stop):
		log.Printf("%v after %d cycles", err, s.Cycles())
	default:
		log.Printf("Run error: %v", err)
	}
	if *dump {
		fmt.Fprint(os.Stderr, spew.Sdump(s.CPU()))
	}
}
