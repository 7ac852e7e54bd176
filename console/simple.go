package console

import (
	"fmt"
	"io"
)

// Simple console type definition, writes straight through to w
type Simple struct {
	w           io.Writer
	currentLine int // counter of lines written
}

// NewSimple returns a console writing to w
func NewSimple(w io.Writer) *Simple {
	c := new(Simple)
	c.w = w
	return c
}

// WriteConsole displays a string on the console
func (c *Simple) WriteConsole(msg string) error {
	for _, line := range lines(msg) {
		if _, err := fmt.Fprintln(c.w, line); err != nil {
			return err
		}
		c.currentLine++
	}
	return nil
}

// Lines returns the number of lines written so far
func (c *Simple) Lines() int {
	return c.currentLine
}
