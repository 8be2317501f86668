// Package io defines the basic interfaces for working
// with a 65C02 system's 8 bit I/O ports along with a simple
// queued input port suitable for a keyboard.
package io

import "sync"

// PortIn8 defines an 8 bit input port.
type PortIn8 interface {
	// Input will return the current value being set on the given input port.
	Input() uint8
}

// PortOut8 defines an 8 bit output port.
type PortOut8 interface {
	// Output will return the current value being driven on the given output port.
	Output() uint8
}

// Queue is a PortIn8 fed from another goroutine. Each Input call
// consumes one byte. An empty queue reads as 0x00.
type Queue struct {
	mu   sync.Mutex
	data []uint8
}

// Push appends bytes to the end of the queue.
func (q *Queue) Push(b ...uint8) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.data = append(q.data, b...)
}

// Len returns the number of bytes waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.data)
}

// Input implements PortIn8.
func (q *Queue) Input() uint8 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.data) == 0 {
		return 0x00
	}
	b := q.data[0]
	q.data = q.data[1:]
	return b
}

// Latch is a PortOut8 holding the last value written to it.
type Latch struct {
	val uint8
}

// Set stores a new value on the latch.
func (l *Latch) Set(val uint8) {
	l.val = val
}

// Output implements PortOut8.
func (l *Latch) Output() uint8 {
	return l.val
}
