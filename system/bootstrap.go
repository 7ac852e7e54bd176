package system

import (
	"github.com/pkg/errors"
)

/*
	Bootstrap scenario: two frames, one process filling both, then a second
	process forcing the first one out and back in through the backing store.
*/

var bootscript = [...]string{
	"init 128 64",
	"alloc 1 128",
	"write 1 10 1234",
	"write 1 70 4321",
	"read 1 10",
	"read 1 70",
	"vmstat",

	// second process: its first touch evicts pid 1 page 0
	"alloc 2 64",
	"write 2 0 777",
	"process-smi",

	// pid 1 page 0 comes back from the backing store
	"read 1 10",
	"read 2 0",

	// symbolic variables on top of the same pages
	"exec 1 DECLARE x 10",
	"exec 1 DECLARE y 20",
	"exec 1 ADD z x y",
	"exec 1 PRINT z",
	"symbols 1",

	// out of range access terminates the process
	"exec 2 READ v 64",
	"vmstat",
}

func (sys *System) demoCmd(args []string) error {
	for _, line := range bootscript {
		if err := sys.console.WriteConsole(". " + line); err != nil {
			return err
		}
		if err := sys.execute(line); err != nil {
			return errors.Wrapf(err, "demo: %s", line)
		}
	}
	return nil
}
