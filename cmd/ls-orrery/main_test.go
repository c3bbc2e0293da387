package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/litescript/ls-orrery/internal/config"
)

func TestSummaryWriter(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		wantErr  bool
	}{
		{"no snapshot", "", false},
		{"snapshot file", "out.json", false},
		{"snapshot on stdout", "-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			w := summaryWriter(tt.snapshot, &stdout, &stderr)
			if _, err := w.Write([]byte("table")); err != nil {
				t.Fatal(err)
			}
			if got := stderr.Len() > 0; got != tt.wantErr {
				t.Errorf("table on stderr = %v, want %v", got, tt.wantErr)
			}
			if stdout.Len() > 0 == tt.wantErr {
				t.Errorf("stdout = %q", stdout.String())
			}
		})
	}
}

func TestWriteConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 77
	cfg.Quality = 0.5
	cfg.Focus = "Mars"

	var buf bytes.Buffer
	if err := writeConfig(&buf, &cfg); err != nil {
		t.Fatalf("writeConfig: %v", err)
	}

	path := filepath.Join(t.TempDir(), "effective.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != cfg {
		t.Errorf("reloaded = %+v, want %+v", *loaded, cfg)
	}
}
