// Package bios looks up hand-written biographies for individuals.
//
// A biography for @I12@ lives in <dir>/I12.md (or I12.MD). Its text is
// merged into the person's note. A missing directory or file is normal.
package bios

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/internal/fileutil"
)

var extensions = []string{".md", ".MD"}

// Store reads biographies from one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory need not exist.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// FileStem is the file name, without extension, holding id's biography.
func FileStem(id string) string {
	return fileutil.SafeFilename(strings.ReplaceAll(id, "@", ""))
}

// Lookup returns the biography for id with carriage returns removed and
// surrounding whitespace trimmed. ok is false when there is none. Only a
// file that exists but cannot be read is an error.
func (s *Store) Lookup(id string) (text string, ok bool, err error) {
	if s.dir == "" {
		return "", false, nil
	}
	stem := FileStem(id)
	if stem == "" {
		return "", false, nil
	}
	for _, ext := range extensions {
		path := filepath.Join(s.dir, stem+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || isDir(path) {
				continue
			}
			return "", false, errors.NewIO("read", path, err)
		}
		return clean(string(data)), true, nil
	}
	return "", false, nil
}

func clean(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
