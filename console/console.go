// Package console carries shell output either to a gocui view or to a plain
// writer. Every line written is a complete line, the console adds the newline.
package console

import "strings"

// Console is implemented by all output targets of the shell
type Console interface {
	WriteConsole(msg string) error
}

// lines splits msg into non empty lines
func lines(msg string) []string {
	var out []string
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
