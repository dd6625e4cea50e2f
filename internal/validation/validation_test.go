package validation

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestVaultPath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vault")

	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr error
	}{
		{name: "simple", rel: "People", want: filepath.Join(root, "People")},
		{name: "slash path", rel: "People/John Smith.md", want: filepath.Join(root, "People", "John Smith.md")},
		{name: "dots in name", rel: "a..b.md", want: filepath.Join(root, "a..b.md")},
		{name: "inner dotdot", rel: "People/../index.md", want: filepath.Join(root, "index.md")},
		{name: "escape", rel: "../outside.md", wantErr: ErrPathTraversal},
		{name: "deep escape", rel: "People/../../outside.md", wantErr: ErrPathTraversal},
		{name: "parent", rel: "..", wantErr: ErrPathTraversal},
		{name: "absolute", rel: "/etc/passwd", wantErr: ErrPathTraversal},
		{name: "empty", rel: "", wantErr: ErrEmptyPath},
		{name: "nul", rel: "a\x00b", wantErr: ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VaultPath(root, tt.rel)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("VaultPath(%q) error = %v, want %v", tt.rel, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("VaultPath(%q) unexpected error: %v", tt.rel, err)
			}
			if got != tt.want {
				t.Errorf("VaultPath(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestIsInside(t *testing.T) {
	root := t.TempDir()
	if !IsInside(root, "People") {
		t.Error("People should be inside the vault")
	}
	if IsInside(root, "../People") {
		t.Error("../People should not be inside the vault")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr error
	}{
		{"tree.ged", nil},
		{"/home/user/שרה.ged", nil},
		{"", ErrEmptyPath},
		{"tree\n.ged", ErrInvalidCharacter},
		{strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
	}
	for _, tt := range tests {
		err := ValidatePath(tt.path)
		if tt.wantErr == nil && err != nil {
			t.Errorf("ValidatePath(%.20q) unexpected error: %v", tt.path, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidatePath(%.20q) error = %v, want %v", tt.path, err, tt.wantErr)
		}
	}
}
