// Package validation checks user-supplied and manifest-supplied paths
// before gedvault writes or removes anything.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxPathLength is the maximum accepted path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path escapes the vault")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
)

// VaultPath resolves rel against the vault root and returns the joined
// path. rel must be relative and must stay inside root once cleaned.
func VaultPath(root, rel string) (string, error) {
	if err := ValidatePath(rel); err != nil {
		return "", err
	}

	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	full := filepath.Join(root, clean)
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve vault root: %w", err)
	}
	absFull, err := filepath.Abs(full)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	relPath, err := filepath.Rel(absRoot, absFull)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	return full, nil
}

// IsInside reports whether rel resolves to a path inside root.
func IsInside(root, rel string) bool {
	_, err := VaultPath(root, rel)
	return err == nil
}

// ValidatePath rejects empty paths, overlong paths and paths containing
// NUL or other control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}
