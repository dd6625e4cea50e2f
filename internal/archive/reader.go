// Package archive writes and reads reproducible tar.xz snapshots of a vault.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/internal/fileutil"
	"github.com/FocuswithJustin/gedvault/internal/validation"
)

// Ext is the file extension of vault archives.
const Ext = ".tar.xz"

// IsArchive reports whether path names a vault archive.
func IsArchive(path string) bool {
	return strings.HasSuffix(path, Ext)
}

// Reader wraps a tar.Reader over an xz stream.
type Reader struct {
	*tar.Reader
	file *os.File
}

// NewReader opens the tar.xz archive at path.
func NewReader(path string) (*Reader, error) {
	if !IsArchive(path) {
		return nil, errors.NewValidation("archive", "unsupported archive format: "+path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	xzr, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.NewParse("tar.xz", path, err.Error())
	}
	return &Reader{Reader: tar.NewReader(xzr), file: f}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Visitor is called for each archive entry. Return true to stop.
type Visitor func(header *tar.Header, content io.Reader) (stop bool, err error)

// Iterate walks through all entries in the archive, calling the visitor for each.
func (r *Reader) Iterate(visitor Visitor) error {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		stop, err := visitor(header, r)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// Walk opens an archive and iterates through its entries.
func Walk(path string, visitor Visitor) error {
	r, err := NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Iterate(visitor)
}

// Entry describes one regular file in an archive.
type Entry struct {
	Name string
	Size int64
}

// List returns the regular files in the archive in stored order.
func List(path string) ([]Entry, error) {
	var entries []Entry
	err := Walk(path, func(h *tar.Header, _ io.Reader) (bool, error) {
		if h.Typeflag == tar.TypeReg {
			entries = append(entries, Entry{Name: h.Name, Size: h.Size})
		}
		return false, nil
	})
	return entries, err
}

// ReadFile reads a file from the archive. name may include or omit the
// leading base directory.
func ReadFile(archivePath, name string) ([]byte, error) {
	var content []byte
	found := false
	err := Walk(archivePath, func(header *tar.Header, r io.Reader) (bool, error) {
		stored := header.Name
		if idx := strings.Index(stored, "/"); idx >= 0 {
			stored = stored[idx+1:]
		}
		if stored == name || header.Name == name {
			found = true
			var err error
			content, err = io.ReadAll(r)
			return true, err
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFound("archive entry", name)
	}
	return content, nil
}

// Extract unpacks the archive into dst and returns the vault directory,
// the single top-level directory every entry is stored under. Entries that
// would land outside dst are rejected.
func Extract(archivePath, dst string) (string, error) {
	base := ""
	err := Walk(archivePath, func(h *tar.Header, r io.Reader) (bool, error) {
		top, _, _ := strings.Cut(strings.TrimPrefix(h.Name, "./"), "/")
		if base == "" {
			base = top
		} else if top != base {
			return true, errors.NewParse("tar.xz", archivePath, "entries under more than one directory")
		}

		path, err := validation.VaultPath(dst, h.Name)
		if err != nil {
			return true, errors.NewParse("tar.xz", archivePath, h.Name+": "+err.Error())
		}

		switch h.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return true, errors.NewIO("create", path, err)
			}
		case tar.TypeReg:
			data, err := io.ReadAll(r)
			if err != nil {
				return true, fmt.Errorf("read %s: %w", h.Name, err)
			}
			if err := fileutil.WriteFile(path, data, 0o644); err != nil {
				return true, err
			}
		}
		return false, nil
	})
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", errors.NewParse("tar.xz", archivePath, "archive is empty")
	}
	return filepath.Join(dst, base), nil
}
