package console

import (
	"fmt"

	"github.com/jroimartin/gocui"
)

// Gui type definition
type Gui struct {
	consoleOut  chan string // string channel, to which the console data is sent to
	g           *gocui.Gui  // main gocui GUI object
	v           *gocui.View // gocui view of the control console
	currentLine int         // counter to keep the position of the cursor
}

// NewGui returns a pointer to the new console writing to the view "name"
func NewGui(g *gocui.Gui, name string) (*Gui, error) {
	v, err := g.View(name)
	if err != nil {
		return nil, err
	}
	c := new(Gui)
	c.consoleOut = make(chan string, 64)
	c.g = g
	c.v = v
	c.initGui()
	return c, nil
}

// initGui starts the goroutine feeding the view.
// gocui allows updating a view only from within Update.
func (c *Gui) initGui() {
	go func() {
		for s := range c.consoleOut {
			line := s
			c.g.Update(func(g *gocui.Gui) error {
				fmt.Fprint(c.v, line)
				return nil
			})
		}
	}()
}

// WriteConsole displays a string on the console
func (c *Gui) WriteConsole(msg string) error {
	for _, line := range lines(msg) {
		c.consoleOut <- line + "\n"
		c.currentLine++
	}
	return nil
}

// Lines returns the number of lines written so far
func (c *Gui) Lines() int {
	return c.currentLine
}
