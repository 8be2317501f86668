// Package timer implements a 6532 style interval timer suitable for
// mapping onto a 65C02 bus. It counts down once every 1, 8, 64 or 1024
// clocks depending on which register was written, free runs at one
// count per clock once it passes zero and can raise an IRQ on expiry.
//
// Register layout (offset from the base address):
//
//	0 R  current counter
//	0 W  load counter, count every clock
//	1 W  load counter, count every 8 clocks
//	2 W  load counter, count every 64 clocks
//	3 W  load counter, count every 1024 clocks
//	4 R  status: bit 7 set if the timer expired. Reading acknowledges the interrupt.
//	5 RW control: bit 7 enables the IRQ output.
package timer

import (
	"fmt"
	"math/rand"

	"github.com/jmchacon/65c02/irq"
	"github.com/jmchacon/65c02/memory"
)

var (
	_ = memory.Bank(&Chip{})
	_ = irq.Sender(&Chip{})
)

const (
	kREG_COUNTER      = uint16(0x0000)
	kWRITE_TIMER_1    = uint16(0x0000)
	kWRITE_TIMER_8    = uint16(0x0001)
	kWRITE_TIMER_64   = uint16(0x0002)
	kWRITE_TIMER_1024 = uint16(0x0003)
	kREG_STATUS       = uint16(0x0004)
	kREG_CONTROL      = uint16(0x0005)

	// REGISTERS is the number of addresses the timer decodes.
	REGISTERS = 6

	kMASK_INT = uint8(0x80)

	kTIMER_MULT1    = uint16(0x0001)
	kTIMER_MULT8    = uint16(0x0008)
	kTIMER_MULT64   = uint16(0x0040)
	kTIMER_MULT1024 = uint16(0x0400)
)

// Chip holds the complete timer state.
type Chip struct {
	clocks         int    // Total number of clock cycles since start.
	debug          bool   // If true Debug() emits output.
	timer          uint8  // Current timer value.
	timerMult      uint16 // Timer value adjustment multiplier.
	timerMultCount uint16 // The current countdown for timerMult.
	timerExpired   bool   // Whether current timer countdown has hit the end.
	flag           bool   // Set on expiry, cleared by reading status or reloading.
	enable         bool   // Whether expiry drives the IRQ output.
}

// ChipDef defines a timer.
type ChipDef struct {
	// Debug if true will allow Debug() to return state.
	Debug bool
}

// Init returns a powered on timer.
func Init(d *ChipDef) (*Chip, error) {
	if d == nil {
		return nil, fmt.Errorf("can't initialize timer: nil ChipDef")
	}
	t := &Chip{
		debug: d.Debug,
	}
	t.PowerOn()
	return t, nil
}

// PowerOn implements memory.Bank and resets the timer.
func (t *Chip) PowerOn() {
	t.Reset()
}

// Reset puts the timer into its power up state: a random count
// running at the slowest rate with interrupts disabled.
func (t *Chip) Reset() {
	t.clocks = 0
	t.timer = uint8(rand.Intn(256))
	// Real hardware starts up in this mode and some code loops
	// watching for a zero crossing without programming the timer first.
	t.timerMult = kTIMER_MULT1024
	t.timerMultCount = kTIMER_MULT1024 - 1
	t.timerExpired = false
	t.flag = false
	t.enable = false
}

// Read implements memory.Bank. Only the low bits of addr are decoded.
func (t *Chip) Read(addr uint16) uint8 {
	switch addr % REGISTERS {
	case kREG_COUNTER:
		return t.timer
	case kREG_STATUS:
		var ret uint8
		if t.flag {
			ret = kMASK_INT
		}
		t.flag = false
		return ret
	case kREG_CONTROL:
		if t.enable {
			return kMASK_INT
		}
		return 0x00
	}
	return 0x00
}

// Write implements memory.Bank. Only the low bits of addr are decoded.
func (t *Chip) Write(addr uint16, val uint8) {
	var mult uint16
	switch addr % REGISTERS {
	case kWRITE_TIMER_1:
		mult = kTIMER_MULT1
	case kWRITE_TIMER_8:
		mult = kTIMER_MULT8
	case kWRITE_TIMER_64:
		mult = kTIMER_MULT64
	case kWRITE_TIMER_1024:
		mult = kTIMER_MULT1024
	case kREG_CONTROL:
		t.enable = val&kMASK_INT != 0
		return
	default:
		return
	}
	t.timer = val
	t.timerMult = mult
	t.timerMultCount = mult
	t.timerExpired = false
	t.flag = false
}

// Tick advances the timer by one clock.
func (t *Chip) Tick() {
	t.clocks++
	if t.timerExpired {
		// Once expired the timer free runs (and wraps around) until reloaded.
		t.timer--
		return
	}
	// When the multiplier resets we decrement the timer.
	// This allows it to sit at 0x00 until the multiplier is done.
	if t.timerMultCount == t.timerMult {
		t.timer--
	}
	t.timerMultCount--
	if t.timerMultCount == 0x0000 {
		t.timerMultCount = t.timerMult
	}
	if t.timer == 0xFF {
		t.timerExpired = true
		t.flag = true
	}
}

// Raised implements irq.Sender.
func (t *Chip) Raised() bool {
	return t.enable && t.flag
}

// Expired reports whether the current countdown has passed zero.
func (t *Chip) Expired() bool {
	return t.timerExpired
}

func (t *Chip) Debug() string {
	if t.debug {
		return fmt.Sprintf("%.6d timer: %.2X mult: %.4X multCount: %.4X expired: %t flag: %t enable: %t\n", t.clocks, t.timer, t.timerMult, t.timerMultCount, t.timerExpired, t.flag, t.enable)
	}
	return ""
}
