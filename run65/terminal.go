package main

import (
	"bytes"
	stdio "io"
	"os"

	"golang.org/x/term"

	"github.com/jmchacon/65c02/io"
)

// crlfWriter expands \n to \r\n when crlf is set. A terminal in raw mode
// doesn't do that translation itself.
type crlfWriter struct {
	w    stdio.Writer
	crlf bool
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if !c.crlf {
		return c.w.Write(p)
	}
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// rawKeyboard puts stdin into raw mode and pushes every byte typed onto q.
// Enter arrives as \n and backspace as 0x08. Ctrl-C restores the terminal and exits.
// The returned func restores the terminal.
func rawKeyboard(q *io.Queue) (func(), error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	restore := func() {
		_ = term.Restore(fd, old)
	}
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			q.Push(translateKey(buf[0]))
			if buf[0] == 0x03 {
				restore()
				os.Exit(130)
			}
		}
	}()
	return restore, nil
}

func translateKey(b uint8) uint8 {
	switch b {
	case '\r':
		return '\n'
	case 0x7F:
		return 0x08
	}
	return b
}
