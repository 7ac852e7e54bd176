package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mmu.log")
	l := New(path)
	l.Printf("page in: pid %d", 1)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "Initializing "+path) {
		t.Errorf("log file missing init line: %q", data)
	}
	if !strings.Contains(string(data), "page in: pid 1") {
		t.Errorf("log file missing message: %q", data)
	}
}
