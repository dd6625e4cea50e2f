package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gverrors "github.com/FocuswithJustin/gedvault/core/errors"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "John Smith", "John Smith"},
		{"allowed punctuation", "Mary-Ann O'Neil (Jones)_2", "Mary-Ann O'Neil (Jones)_2"},
		{"slashes and dots", "a/b.c", "a_b_c"},
		{"gedcom id", "@I12@", "_I12_"},
		{"hebrew kept", "שרה כהן", "שרה כהן"},
		{"edges trimmed", "  Anne  ", "Anne"},
		{"tab replaced", "A\tB", "A_B"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"decomposed accent normalized", "Jose\u0301", "Jos\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFilename(tt.in); got != tt.want {
				t.Errorf("SafeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafeFilename_Idempotent(t *testing.T) {
	for _, in := range []string{"a/b", "@I1@", "Zoë ?*", "שרה /כהן/"} {
		once := SafeFilename(in)
		if twice := SafeFilename(once); twice != once {
			t.Errorf("SafeFilename not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "note.md")

	if err := WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFile overwrite failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestWriteFile_Error(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := WriteFile(filepath.Join(blocker, "child.md"), []byte("x"), 0o644)
	var ioErr *gverrors.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error = %v, want IOError", err)
	}
	if !errors.Is(err, gverrors.ErrIO) {
		t.Error("expected ErrIO in chain")
	}
}
