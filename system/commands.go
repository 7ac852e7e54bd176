package system

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"mmusim/cpu"
	"mmusim/status"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// command is a shell command. args is the exact number of arguments,
// or the negated minimum for commands taking a variable number.
type command struct {
	args  int
	usage string
	help  string
	exec  func(args []string) error
}

func (sys *System) initCommands() {
	sys.commands = make(map[string]command)
	sys.commands["init"] = command{2, "<capacity> <page_size>", "reset physical memory", sys.initCmd}
	sys.commands["alloc"] = command{2, "<pid> <bytes>", "reserve memory for a process", sys.allocCmd}
	sys.commands["free"] = command{1, "<pid>", "release all memory of a process", sys.freeCmd}
	sys.commands["write"] = command{3, "<pid> <vaddr> <value>", "write a 16 bit word", sys.writeCmd}
	sys.commands["read"] = command{2, "<pid> <vaddr>", "read a 16 bit word", sys.readCmd}
	sys.commands["exec"] = command{-2, "<pid> <INSTRUCTION> [args...]", "run one instruction in a process", sys.execCmd}
	sys.commands["symbols"] = command{1, "<pid>", "show the symbol table of a process", sys.symbolsCmd}
	sys.commands["process-smi"] = command{0, "", "per process page tables", sys.processSmiCmd}
	sys.commands["vmstat"] = command{0, "", "system wide memory statistics", sys.vmstatCmd}
	sys.commands["dump-memory"] = command{1, "<file>", "hex dump of physical memory", sys.dumpMemoryCmd}
	sys.commands["dump-frames"] = command{1, "<file.png>", "render the frame map as png", sys.dumpFramesCmd}
	sys.commands["demo"] = command{0, "", "run the bootstrap scenario", sys.demoCmd}
	sys.commands["help"] = command{0, "", "list commands", sys.helpCmd}
}

// parseNumber reads a decimal or 0x hex number
func parseNumber(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number %q", s)
	}
	return v, nil
}

func parsePID(s string) (int, error) {
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid pid %q", s)
	}
	return int(v), nil
}

// describe renders the status of an access for the console
func describe(st status.Status) string {
	if st.OK() {
		return ""
	}
	return " (" + st.String() + ")"
}

func (sys *System) initCmd(args []string) error {
	capacity, err := parseNumber(args[0], 32)
	if err != nil {
		return err
	}
	pageSize, err := parseNumber(args[1], 32)
	if err != nil {
		return err
	}
	if err := sys.reset(int(capacity), int(pageSize)); err != nil {
		return err
	}
	return sys.console.WriteConsole(fmt.Sprintf("initialized %d bytes, %d frames of %d bytes",
		capacity, sys.Manager.FrameCount(), pageSize))
}

func (sys *System) allocCmd(args []string) error {
	pid, err := parsePID(args[0])
	if err != nil {
		return err
	}
	size, err := strconv.ParseInt(args[1], 0, 32)
	if err != nil {
		return errors.Wrapf(err, "invalid size %q", args[1])
	}
	if err := sys.allocate(pid, int(size)); err != nil {
		return err
	}
	pages := (int(size) + sys.Manager.PageSize() - 1) / sys.Manager.PageSize()
	return sys.console.WriteConsole(fmt.Sprintf("pid %d: %d pages reserved", pid, pages))
}

func (sys *System) freeCmd(args []string) error {
	pid, err := parsePID(args[0])
	if err != nil {
		return err
	}
	if err := sys.Manager.Free(pid); err != nil {
		return err
	}
	delete(sys.processes, pid)
	return sys.console.WriteConsole(fmt.Sprintf("pid %d: memory released", pid))
}

func (sys *System) writeCmd(args []string) error {
	pid, err := parsePID(args[0])
	if err != nil {
		return err
	}
	vaddr, err := parseNumber(args[1], 32)
	if err != nil {
		return err
	}
	value, err := parseNumber(args[2], 16)
	if err != nil {
		return err
	}
	st := sys.Manager.Write(pid, uint32(vaddr), uint16(value))
	if st.Violation() {
		return sys.console.WriteConsole(fmt.Sprintf("access violation: pid %d vaddr %#x", pid, vaddr))
	}
	return sys.console.WriteConsole("ok" + describe(st))
}

func (sys *System) readCmd(args []string) error {
	pid, err := parsePID(args[0])
	if err != nil {
		return err
	}
	vaddr, err := parseNumber(args[1], 32)
	if err != nil {
		return err
	}
	value, st := sys.Manager.Read(pid, uint32(vaddr))
	if st.Violation() {
		return sys.console.WriteConsole(fmt.Sprintf("access violation: pid %d vaddr %#x", pid, vaddr))
	}
	return sys.console.WriteConsole(fmt.Sprintf("%d%s", value, describe(st)))
}

func (sys *System) execCmd(args []string) error {
	pid, err := parsePID(args[0])
	if err != nil {
		return err
	}
	p, err := sys.process(pid)
	if err != nil {
		return err
	}
	inst, err := cpu.Parse(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if _, err := p.CPU.Execute(inst); err != nil {
		return errors.Wrapf(err, "pid %d", pid)
	}

	var out []string
	for _, l := range p.CPU.Logs[p.shown:] {
		out = append(out, fmt.Sprintf("[pid %d] %s", pid, l))
	}
	p.shown = len(p.CPU.Logs)
	if p.CPU.Terminated() {
		out = append(out, fmt.Sprintf("[pid %d] process terminated", pid))
	}
	return sys.console.WriteConsole(strings.Join(out, "\n"))
}

func (sys *System) symbolsCmd(args []string) error {
	pid, err := parsePID(args[0])
	if err != nil {
		return err
	}
	p, err := sys.process(pid)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "=== SYMBOLS: pid %d (%d declared, %d bytes free) ===\n", pid, p.Symbols.Len(), p.Symbols.Free())
	p.Symbols.Dump(&buf)
	return sys.console.WriteConsole(buf.String())
}

func (sys *System) processSmiCmd(args []string) error {
	var buf bytes.Buffer
	sys.processSmi(&buf)
	return sys.console.WriteConsole(buf.String())
}

func (sys *System) vmstatCmd(args []string) error {
	var buf bytes.Buffer
	sys.vmstat(&buf)
	return sys.console.WriteConsole(buf.String())
}

func (sys *System) dumpMemoryCmd(args []string) error {
	if err := sys.dumpMemory(args[0]); err != nil {
		return err
	}
	return sys.console.WriteConsole(fmt.Sprintf("physical memory written to %s", args[0]))
}

func (sys *System) dumpFramesCmd(args []string) error {
	if err := sys.dumpFrames(args[0]); err != nil {
		return err
	}
	return sys.console.WriteConsole(fmt.Sprintf("frame map written to %s", args[0]))
}

func (sys *System) helpCmd(args []string) error {
	names := make([]string, 0, len(sys.commands))
	width := 0
	for n, c := range sys.commands {
		names = append(names, n)
		if l := runewidth.StringWidth(n + " " + c.usage); l > width {
			width = l
		}
	}
	sort.Strings(names)

	var out []string
	for _, n := range names {
		c := sys.commands[n]
		out = append(out, "  "+runewidth.FillRight(strings.TrimSpace(n+" "+c.usage), width)+"  "+c.help)
	}
	return sys.console.WriteConsole(strings.Join(out, "\n"))
}
