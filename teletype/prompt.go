// Package teletype is the input side of the shell: an editable gocui view
// that hands complete lines to the system.
package teletype

import (
	"strings"

	"github.com/jroimartin/gocui"
)

// Prompt wraps the editable input view
type Prompt struct {
	gui     *gocui.Gui
	name    string
	history *History

	// every entered line, trimmed, goes through queue to submit
	queue *LineQueue
}

// New makes the view "name" editable and binds enter and the arrow keys
func New(gui *gocui.Gui, name string, submit func(string)) (*Prompt, error) {
	v, err := gui.View(name)
	if err != nil {
		return nil, err
	}
	p := Prompt{}
	p.gui = gui
	p.name = name
	p.history = NewHistory(256)
	p.queue = NewLineQueue(256, submit)

	v.Editable = true
	v.Wrap = false
	gui.Cursor = true
	if _, err := gui.SetCurrentView(name); err != nil {
		return nil, err
	}

	if err := gui.SetKeybinding(name, gocui.KeyEnter, gocui.ModNone, p.enter); err != nil {
		return nil, err
	}
	if err := gui.SetKeybinding(name, gocui.KeyArrowUp, gocui.ModNone, p.up); err != nil {
		return nil, err
	}
	if err := gui.SetKeybinding(name, gocui.KeyArrowDown, gocui.ModNone, p.down); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Prompt) enter(g *gocui.Gui, v *gocui.View) error {
	line := strings.TrimSpace(v.Buffer())
	p.history.Push(line)
	if err := p.replace(v, ""); err != nil {
		return err
	}
	if line != "" {
		p.queue.Send(line)
	}
	return nil
}

// Close waits for the queued lines to finish
func (p *Prompt) Close() {
	p.queue.Close()
}

func (p *Prompt) up(g *gocui.Gui, v *gocui.View) error {
	if line, ok := p.history.Prev(); ok {
		return p.replace(v, line)
	}
	return nil
}

func (p *Prompt) down(g *gocui.Gui, v *gocui.View) error {
	return p.replace(v, p.history.Next())
}

// replace sets the view content to line and puts the cursor at its end
func (p *Prompt) replace(v *gocui.View, line string) error {
	v.Clear()
	if err := v.SetOrigin(0, 0); err != nil {
		return err
	}
	v.Write([]byte(line))
	return v.SetCursor(len(line), 0)
}
