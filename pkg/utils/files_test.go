package utils

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFilePlainPassthrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.gba")
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("LoadFile = %v, want %v", got, want)
	}
}

func TestLoadFileGzipDecompresses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.gba.gz")

	want := bytes.Repeat([]byte{0x01, 0x02, 0x03}, 100)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write(want); err != nil {
		t.Fatalf("gzip.Write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip.Close: %v", err)
	}
	f.Close()

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("LoadFile decompressed %d bytes, want %d matching bytes", len(got), len(want))
	}
}

func TestIsSizeMatchesExactLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.sav")
	if err := os.WriteFile(path, make([]byte, 65536), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !IsSize(path, 65536) {
		t.Error("IsSize = false, want true for an exact match")
	}
	if IsSize(path, 1024) {
		t.Error("IsSize = true, want false for a mismatched size")
	}
}

func TestIsSizeMissingFile(t *testing.T) {
	if IsSize(filepath.Join(t.TempDir(), "missing.sav"), 0) {
		t.Error("IsSize = true for a nonexistent file, want false")
	}
}
