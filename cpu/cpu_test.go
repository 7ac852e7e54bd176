package cpu

import (
	"strings"
	"testing"

	"mmusim/logger"
	"mmusim/mmu"
	"mmusim/symbols"
)

func newCPU(t *testing.T, capacity, bytes int) (*CPU, *symbols.Table) {
	t.Helper()
	m, err := mmu.New(capacity, 64, logger.Discard())
	if err != nil {
		t.Fatalf("mmu.New() error = %v", err)
	}
	if err := m.Allocate(1, bytes); err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	view := m.View(1)
	table := symbols.New(view, symbols.DefaultLimit)
	return New(table, view), table
}

func run(t *testing.T, c *CPU, line string) {
	t.Helper()
	inst, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", line, err)
	}
	if _, err := c.Execute(inst); err != nil {
		t.Fatalf("Execute(%q) error = %v", line, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		opcode  string
		args    int
		wantErr bool
	}{
		{"declare", "DECLARE x 10", "DECLARE", 2, false},
		{"lower case", "add z x y", "ADD", 3, false},
		{"extra spaces", "  PRINT   hello  ", "PRINT", 1, false},
		{"empty", "   ", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := Parse(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if inst.Opcode != tt.opcode || len(inst.Args) != tt.args {
				t.Errorf("Parse() = %+v, want %s with %d args", inst, tt.opcode, tt.args)
			}
		})
	}
}

func TestCPU_Arithmetic(t *testing.T) {
	tests := []struct {
		name    string
		program []string
		varName string
		want    uint16
	}{
		{"add", []string{"DECLARE x 10", "DECLARE y 20", "ADD z x y"}, "z", 30},
		{"add literal", []string{"DECLARE x 10", "ADD x x 5"}, "x", 15},
		{"add clamps", []string{"DECLARE x 65530", "ADD z x 100"}, "z", 65535},
		{"subtract", []string{"DECLARE x 10", "SUBTRACT z x 3"}, "z", 7},
		{"subtract clamps", []string{"DECLARE x 3", "SUBTRACT z x 10"}, "z", 0},
		{"undeclared operand is zero", []string{"ADD z a 4"}, "z", 4},
		{"hex literal", []string{"ADD z 0x10 0x01"}, "z", 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, table := newCPU(t, 128, 128)
			for _, line := range tt.program {
				run(t, c, line)
			}
			got, st := table.Get(tt.varName)
			if st.Violation() {
				t.Fatalf("Get(%s) status = %v", tt.varName, st)
			}
			if got != tt.want {
				t.Errorf("%s = %d, want %d", tt.varName, got, tt.want)
			}
			if c.Terminated() {
				t.Errorf("CPU terminated, logs: %v", c.Logs)
			}
		})
	}
}

func TestCPU_ReadWrite(t *testing.T) {
	c, table := newCPU(t, 128, 128)
	run(t, c, "DECLARE v 500")
	run(t, c, "WRITE 100 v")
	run(t, c, "READ w 100")

	got, _ := table.Get("w")
	if got != 500 {
		t.Errorf("w = %d, want 500", got)
	}
	run(t, c, "WRITE 0x70 0xBEEF")
	run(t, c, "READ u 0x70")
	got, _ = table.Get("u")
	if got != 0xBEEF {
		t.Errorf("u = %#x, want 0xbeef", got)
	}
}

func TestCPU_ViolationTerminates(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"read past end", "READ x 127"},
		{"write past end", "WRITE 200 1"},
		{"write undeclared", "WRITE 10 nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newCPU(t, 128, 128)
			inst, _ := Parse(tt.line)
			st, err := c.Execute(inst)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !st.Violation() {
				t.Errorf("status = %s, want violation", st.GetFlags())
			}
			if !c.Terminated() {
				t.Errorf("CPU still running after violation")
			}
			if _, err := c.Execute(Instruction{Opcode: "PRINT", Args: []string{"x"}}); err == nil {
				t.Errorf("Execute() on terminated CPU returned no error")
			}
		})
	}
}

func TestCPU_SymbolTableFull(t *testing.T) {
	c, table := newCPU(t, 128, 128)
	for i := 0; i < symbols.DefaultLimit/2; i++ {
		run(t, c, "DECLARE v"+strings.Repeat("x", i)+" 1")
	}
	inst, _ := Parse("DECLARE last 1")
	st, err := c.Execute(inst)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !st.SymbolTableFull() {
		t.Errorf("status = %s, want symbol table full", st.GetFlags())
	}
	if c.Terminated() {
		t.Errorf("full symbol table must not terminate the process")
	}
	if table.Len() != symbols.DefaultLimit/2 {
		t.Errorf("Len() = %d, want %d", table.Len(), symbols.DefaultLimit/2)
	}
	if last := c.Logs[len(c.Logs)-1]; !strings.Contains(last, "symbol table full") {
		t.Errorf("last log = %q", last)
	}
}

func TestCPU_Print(t *testing.T) {
	c, _ := newCPU(t, 128, 128)
	run(t, c, "DECLARE x 42")
	run(t, c, "PRINT x")
	run(t, c, `PRINT "hello world"`)

	want := []string{"x = 42", "hello world"}
	got := c.Logs[len(c.Logs)-2:]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Logs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCPU_BadInstruction(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
	}{
		{"unknown opcode", Instruction{Opcode: "JUMP", Args: []string{"1"}}},
		{"missing args", Instruction{Opcode: "ADD", Args: []string{"x"}}},
		{"print nothing", Instruction{Opcode: "PRINT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newCPU(t, 128, 128)
			if _, err := c.Execute(tt.inst); err == nil {
				t.Errorf("Execute(%v) returned no error", tt.inst)
			}
			if c.Terminated() {
				t.Errorf("malformed instruction must not terminate")
			}
		})
	}
}
