package cpu

import (
	"strings"

	"mmusim/status"
)

// Definition of all process instructions.
// All follow the func (*CPU) (Instruction) status.Status signature.

// declare (2): DECLARE var value
func (c *CPU) declareOp(inst Instruction) status.Status {
	name := inst.Args[0]
	value, err := parseWord(inst.Args[1])
	if err != nil {
		c.log("[DECLARE] %v", err)
		return 0
	}

	st := c.memory.Set(name, value)
	switch {
	case st.SymbolTableFull():
		c.log("[DECLARE] failed: symbol table full → '%s'", name)
	case st.Violation():
		c.log("[DECLARE] write violation for '%s'", name)
	case st.PageFault():
		c.log("[DECLARE] page fault resolved for '%s'", name)
	}
	return st
}

// read (2): READ var vaddr
func (c *CPU) readOp(inst Instruction) status.Status {
	name := inst.Args[0]
	addr, err := parseAddress(inst.Args[1])
	if err != nil {
		c.log("[READ] %v", err)
		return 0
	}

	value, st := c.space.ReadMemoryWord(addr)
	if st.Violation() {
		c.log("[READ] access violation at address %#X", addr)
		c.State = HALT
		return st
	}
	st.Merge(c.memory.Set(name, value))
	if st.SymbolTableFull() {
		c.log("[READ] symbol table full → '%s'", name)
	} else if st.PageFault() {
		c.log("[READ] page fault resolved for '%s'", name)
	}
	return st
}

// write (2): WRITE vaddr value-or-var
func (c *CPU) writeOp(inst Instruction) status.Status {
	addr, err := parseAddress(inst.Args[0])
	if err != nil {
		c.log("[WRITE] %v", err)
		return 0
	}
	value, st := c.memory.Resolve(inst.Args[1])
	if st.Violation() {
		c.log("[WRITE] cannot resolve '%s': %v", inst.Args[1], st)
		c.State = HALT
		return st
	}

	st.Merge(c.space.WriteMemoryWord(addr, value))
	if st.Violation() {
		c.log("[WRITE] access violation at address %#X", addr)
		c.State = HALT
	} else if st.PageFault() {
		c.log("[WRITE] page fault resolved at address %#X", addr)
	}
	return st
}

// add (3): ADD dst a b -> dst = min(a + b, 65535)
func (c *CPU) addOp(inst Instruction) status.Status {
	return c.arithmetic("ADD", inst, func(l, r uint32) uint32 {
		if l+r > 0xFFFF {
			return 0xFFFF
		}
		return l + r
	})
}

// subtract (3): SUBTRACT dst a b -> dst = max(a - b, 0)
func (c *CPU) subtractOp(inst Instruction) status.Status {
	return c.arithmetic("SUBTRACT", inst, func(l, r uint32) uint32 {
		if l < r {
			return 0
		}
		return l - r
	})
}

// arithmetic resolves both operands (undeclared ones are declared with 0),
// computes and stores the result in the first argument
func (c *CPU) arithmetic(name string, inst Instruction, f func(l, r uint32) uint32) status.Status {
	var st status.Status
	operands := [2]uint32{}

	for i, token := range inst.Args[1:] {
		v, s := c.memory.Resolve(token)
		if s.Undeclared() {
			s = c.memory.Set(token, 0)
			v = 0
		}
		if s.Violation() {
			c.log("[%s] violation during operand read of '%s'", name, token)
		}
		st.Merge(s)
		operands[i] = uint32(v)
	}

	result := uint16(f(operands[0], operands[1]))
	s := c.memory.Set(inst.Args[0], result)
	st.Merge(s)
	switch {
	case s.SymbolTableFull():
		c.log("[%s] symbol table full → could not declare '%s'", name, inst.Args[0])
	case s.Violation():
		c.log("[%s] violation during result write", name)
		c.State = HALT
	case st.PageFault():
		c.log("[%s] page fault resolved", name)
	}
	return st
}

// print (n): PRINT message... or PRINT var
func (c *CPU) printOp(inst Instruction) status.Status {
	if len(inst.Args) == 1 {
		if _, ok := c.memory.Address(inst.Args[0]); ok {
			v, st := c.memory.Get(inst.Args[0])
			c.log("%s = %d", inst.Args[0], v)
			return st
		}
	}
	c.log("%s", strings.Trim(strings.Join(inst.Args, " "), "\""))
	return 0
}
