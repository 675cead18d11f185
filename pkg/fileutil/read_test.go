package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/timeto/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	const limit = 1024
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", limit, false},
		{"too large", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, tt.name)
			if err := os.WriteFile(path, make([]byte, tt.size), 0o600); err != nil {
				t.Fatal(err)
			}

			data, err := ReadFileWithLimit(path, limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFileWithLimit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrFileTooLarge) {
					t.Errorf("expected ErrFileTooLarge, got %v", err)
				}
				return
			}
			if len(data) != tt.size {
				t.Errorf("read %d bytes, want %d", len(data), tt.size)
			}
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "missing"), 10)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
