// Package irq defines the basic interfaces for working
// with a 65C02 interrupt line. A receiver of interrupts (IRQ/NMI)
// will implement this interface to allow other components which generate
// them to easily raise state without cross coupling component logic.
// NOTE: The CPU treats IRQ as a level and NMI as an edge. Senders here
//       only report the current level and the receiver decides which
//       of those applies.
package irq

type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}

type Receiver interface {
	// Install takes the given sender and stores it for later checks in appropriate logic.
	Install(s Sender)
}

// Line is a Sender which simply holds whatever level it was last set to.
// Useful for wiring an external signal (a button, a test harness) into a Receiver.
type Line struct {
	raised bool
}

// Set drives the line to the given level.
func (l *Line) Set(raised bool) {
	l.raised = raised
}

// Raised implements Sender.
func (l *Line) Raised() bool {
	return l.raised
}

// Any reports whether any of the given senders is currently raised.
func Any(senders []Sender) bool {
	for _, s := range senders {
		if s.Raised() {
			return true
		}
	}
	return false
}
