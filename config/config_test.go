package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mmusim.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Capacity != DefaultCapacity || c.PageSize != DefaultPageSize ||
		c.SymbolLimit != DefaultSymbolLimit || c.LogPath != DefaultLogPath {
		t.Errorf("Load(\"\") = %+v, want defaults", c)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		capacity int
		pageSize int
		preload  int
		wantErr  bool
	}{
		{"partial keeps defaults", `{"capacity": 256}`, 256, 64, 0, false},
		{"full", `{"capacity": 512, "page_size": 128, "symbol_limit": 32,
			"preload": [{"pid": 1, "bytes": 100}, {"pid": 2, "bytes": 64}]}`, 512, 128, 2, false},
		{"not a multiple", `{"capacity": 100}`, 0, 0, 0, true},
		{"zero page", `{"page_size": 0}`, 0, 0, 0, true},
		{"odd symbol limit", `{"symbol_limit": 7}`, 0, 0, 0, true},
		{"duplicate preload", `{"preload": [{"pid": 1, "bytes": 1}, {"pid": 1, "bytes": 2}]}`, 0, 0, 0, true},
		{"negative preload", `{"preload": [{"pid": 1, "bytes": -1}]}`, 0, 0, 0, true},
		{"broken json", `{"capacity": `, 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if c.Capacity != tt.capacity || c.PageSize != tt.pageSize || len(c.Preload) != tt.preload {
				t.Errorf("Load() = %+v", c)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Errorf("Load() of missing file returned no error")
	}
}
