package system

import (
	"log"
	"sort"
	"strings"
	"sync"

	"mmusim/config"
	"mmusim/console"
	"mmusim/cpu"
	"mmusim/interrupts"
	"mmusim/mmu"
	"mmusim/symbols"

	"github.com/pkg/errors"
)

// State of the simulator: Running / Halted
type State int

const (
	// Running - commands are accepted
	Running State = iota
	// Halted - a trap stopped the simulator, every command is refused
	Halted
)

// ErrHalted is returned for every command after a trap
var ErrHalted = errors.New("system halted")

// Process groups everything the shell keeps for one pid
type Process struct {
	PID     int
	View    *mmu.View
	Symbols *symbols.Table
	CPU     *cpu.CPU

	// logs of the CPU already shown on the console
	shown int
}

// System definition.
type System struct {
	mu sync.Mutex

	Manager   *mmu.Manager
	processes map[int]*Process
	State     State

	symbolLimit int
	config      config.Config

	// console output and log file
	console console.Console
	log     *log.Logger

	// commands is a map, where key is the command name and value the handler
	commands map[string]command

	// Trap holds the trap which halted the system
	Trap *interrupts.Trap
}

// InitializeSystem builds the memory manager described by cfg and performs
// its preload allocations
func InitializeSystem(cfg config.Config, c console.Console, log *log.Logger) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sys := new(System)
	sys.config = cfg
	sys.console = c
	sys.log = log
	sys.symbolLimit = cfg.SymbolLimit
	sys.initCommands()

	if err := sys.reset(cfg.Capacity, cfg.PageSize); err != nil {
		return nil, err
	}
	for _, p := range cfg.Preload {
		if err := sys.allocate(p.PID, p.Bytes); err != nil {
			return nil, errors.Wrapf(err, "preload pid %d", p.PID)
		}
	}
	return sys, nil
}

// Execute runs a single shell line. A trap raised while executing halts the
// system: it is logged, reported and every later command fails with ErrHalted.
func (sys *System) Execute(line string) (err error) {
	sys.mu.Lock()
	defer sys.mu.Unlock()

	if sys.State == Halted {
		return ErrHalted
	}

	defer func() {
		t := recover()
		switch t := t.(type) {
		case interrupts.Trap:
			sys.log.Printf("TRAP %o while executing %q: %s\n", t.Vector, line, t.Msg)
			sys.State = Halted
			sys.Trap = &t
			_ = sys.console.WriteConsole("HALT: " + t.Error())
			err = errors.Wrap(t, "system halted")
		case nil:
			// ignore
		default:
			panic(t)
		}
	}()

	return sys.execute(line)
}

// execute runs a line without locking, used by Execute and the demo
func (sys *System) execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	cmd, ok := sys.commands[name]
	if !ok {
		return errors.Errorf("unknown command %q, try help", name)
	}
	if cmd.args >= 0 && len(args) != cmd.args || cmd.args < 0 && len(args) < -cmd.args {
		return errors.Errorf("usage: %s %s", name, cmd.usage)
	}
	sys.log.Printf("command: %s\n", line)
	return cmd.exec(args)
}

// reset replaces the memory manager and forgets all processes
func (sys *System) reset(capacity, pageSize int) error {
	m, err := mmu.New(capacity, pageSize, sys.log)
	if err != nil {
		return err
	}
	sys.Manager = m
	sys.processes = make(map[int]*Process)
	return nil
}

// allocate reserves memory for pid and sets up its symbol table and cpu
func (sys *System) allocate(pid, bytes int) error {
	if err := sys.Manager.Allocate(pid, bytes); err != nil {
		return err
	}
	// the symbol region never extends past the reservation
	limit := sys.symbolLimit
	pageSize := sys.Manager.PageSize()
	if reserved := (bytes + pageSize - 1) / pageSize * pageSize; reserved < limit {
		limit = reserved
	}
	view := sys.Manager.View(pid)
	table := symbols.New(view, limit)
	sys.processes[pid] = &Process{
		PID:     pid,
		View:    view,
		Symbols: table,
		CPU:     cpu.New(table, view),
	}
	return nil
}

// process returns the registered process of pid
func (sys *System) process(pid int) (*Process, error) {
	p, ok := sys.processes[pid]
	if !ok {
		return nil, errors.Wrapf(mmu.ErrUnknownProcess, "pid %d", pid)
	}
	return p, nil
}

// PIDs returns the registered pids in ascending order
func (sys *System) PIDs() []int {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	pids := make([]int, 0, len(sys.processes))
	for pid := range sys.processes {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// IsHalted returns true once a trap stopped the system
func (sys *System) IsHalted() bool {
	sys.mu.Lock()
	defer sys.mu.Unlock()
	return sys.State == Halted
}
