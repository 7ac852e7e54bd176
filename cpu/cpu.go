package cpu

import (
	"fmt"
	"strconv"
	"strings"

	"mmusim/mmu"
	"mmusim/status"
	"mmusim/symbols"

	"github.com/pkg/errors"
)

// CPU state: Run / Halt
const (
	HALT   = 0
	CPURUN = 1
)

// Instruction is a decoded program line, e.g. ADD x y 1
type Instruction struct {
	Opcode string
	Args   []string
}

func (i Instruction) String() string {
	return strings.TrimSpace(i.Opcode + " " + strings.Join(i.Args, " "))
}

// Parse decodes a program line. The opcode is case insensitive.
func Parse(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Instruction{}, errors.New("empty instruction")
	}
	return Instruction{Opcode: strings.ToUpper(fields[0]), Args: fields[1:]}, nil
}

// CPU executes instructions of one process against its symbol table
type CPU struct {
	State int

	// memory access is required: named variables and the raw address space
	memory *symbols.Table
	space  mmu.AddressSpace

	// Logs collects the output of PRINT and every fault report
	Logs []string

	// opcodes is a map, where key is the opcode, and value is the function
	// executing it together with the number of arguments it takes
	opcodes map[string]opcode
}

type opcode struct {
	args int
	exec func(Instruction) status.Status
}

// New initializes and returns the CPU variable:
func New(memory *symbols.Table, space mmu.AddressSpace) *CPU {
	c := CPU{}
	c.State = CPURUN
	c.memory = memory
	c.space = space

	c.opcodes = make(map[string]opcode)
	c.opcodes["DECLARE"] = opcode{2, c.declareOp}
	c.opcodes["READ"] = opcode{2, c.readOp}
	c.opcodes["WRITE"] = opcode{2, c.writeOp}
	c.opcodes["ADD"] = opcode{3, c.addOp}
	c.opcodes["SUBTRACT"] = opcode{3, c.subtractOp}
	c.opcodes["PRINT"] = opcode{-1, c.printOp}
	return &c
}

// Execute runs a single instruction and returns the combined status of its
// memory accesses. Errors are reserved for malformed instructions and for
// executing on a halted CPU.
func (c *CPU) Execute(inst Instruction) (status.Status, error) {
	if c.State == HALT {
		return 0, errors.Errorf("process terminated, cannot execute %s", inst)
	}
	op, ok := c.opcodes[inst.Opcode]
	if !ok {
		return 0, errors.Errorf("unknown opcode %q", inst.Opcode)
	}
	if op.args >= 0 && len(inst.Args) != op.args {
		return 0, errors.Errorf("%s takes %d arguments, got %d", inst.Opcode, op.args, len(inst.Args))
	}
	if op.args < 0 && len(inst.Args) == 0 {
		return 0, errors.Errorf("%s needs an argument", inst.Opcode)
	}
	return op.exec(inst), nil
}

// Terminated returns true once a violation stopped the process
func (c *CPU) Terminated() bool {
	return c.State == HALT
}

func (c *CPU) log(format string, args ...interface{}) {
	c.Logs = append(c.Logs, fmt.Sprintf(format, args...))
}

// parseWord reads a decimal or 0x hex 16 bit literal
func parseWord(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid 16 bit value %q", s)
	}
	return uint16(v), nil
}

// parseAddress reads a decimal or 0x hex virtual address
func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid address %q", s)
	}
	return uint32(v), nil
}
