// Package manifest records the hashes of every file in a vault.
//
// The manifest lives at <vault>/.gedvault/manifest.json. It holds no
// timestamps, so converting the same input twice yields byte-identical
// manifests, and Verify can tell whether a vault still matches what was
// written.
package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/internal/fileutil"
)

const (
	// Dir is the vault-relative directory holding gedvault metadata.
	Dir = ".gedvault"
	// FileName is the manifest file inside Dir.
	FileName = "manifest.json"
	// Version is the manifest format version.
	Version = 1
)

// Entry describes one vault file.
type Entry struct {
	Path string `json:"path"` // slash-separated, relative to the vault
	Size int64  `json:"size"`
	HashResult
}

// Source describes the GEDCOM input a vault was built from.
type Source struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	HashResult
}

// Manifest lists every file written for a vault, sorted by path.
type Manifest struct {
	Version int     `json:"version"`
	Source  *Source `json:"source,omitempty"`
	People  int     `json:"people"`
	Files   []Entry `json:"files"`
}

// Path returns the manifest location for a vault root.
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// Add records a file written with the given content.
func (m *Manifest) Add(relPath string, data []byte) {
	m.Files = append(m.Files, Entry{
		Path:       filepath.ToSlash(relPath),
		Size:       int64(len(data)),
		HashResult: HashBytes(data),
	})
}

// SetSource records the hashes of the input file.
func (m *Manifest) SetSource(path string) error {
	h, size, err := HashFile(path)
	if err != nil {
		return err
	}
	m.Source = &Source{Name: filepath.Base(path), Size: size, HashResult: h}
	return nil
}

// Sort orders entries by path.
func (m *Manifest) Sort() {
	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].Path < m.Files[j].Path })
}

// Marshal returns the canonical JSON encoding.
func (m *Manifest) Marshal() ([]byte, error) {
	m.Version = Version
	m.Sort()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Write stores the manifest under root.
func (m *Manifest) Write(root string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return fileutil.WriteFile(Path(root), data, 0o644)
}

// Read loads the manifest of a vault.
func Read(root string) (*Manifest, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &errors.ParseError{Format: "manifest", Path: path, Message: err.Error(), Err: err}
	}
	if m.Version != Version {
		return nil, errors.NewParse("manifest", path, fmt.Sprintf("unsupported version %d", m.Version))
	}
	return &m, nil
}

// Problem kinds reported by Verify.
const (
	Missing   = "missing"
	Modified  = "modified"
	Untracked = "untracked"
)

// Problem is one difference between a vault and its manifest.
type Problem struct {
	Path string
	Kind string
}

func (p Problem) String() string {
	return p.Kind + ": " + p.Path
}

// Verify recomputes the hash of every listed file and reports files that
// are missing or modified. Files not listed are reported as untracked when
// they sit in a directory that holds listed files, such as a note left over
// from an earlier conversion; other directories are left alone.
func Verify(root string) (*Manifest, []Problem, error) {
	m, err := Read(root)
	if err != nil {
		return nil, nil, err
	}

	var problems []Problem
	listed := make(map[string]bool, len(m.Files))
	owned := make(map[string]bool)
	for _, e := range m.Files {
		listed[e.Path] = true
		owned[path.Dir(e.Path)] = true
		h, size, err := HashFile(filepath.Join(root, filepath.FromSlash(e.Path)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			problems = append(problems, Problem{Path: e.Path, Kind: Missing})
		case err != nil:
			return m, nil, err
		case size != e.Size || h != e.HashResult:
			problems = append(problems, Problem{Path: e.Path, Kind: Modified})
		}
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == Dir {
				return filepath.SkipDir
			}
			return nil
		}
		if owned[path.Dir(rel)] && !listed[rel] {
			problems = append(problems, Problem{Path: rel, Kind: Untracked})
		}
		return nil
	})
	if err != nil {
		return m, nil, errors.NewIO("walk", root, err)
	}

	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Path != problems[j].Path {
			return problems[i].Path < problems[j].Path
		}
		return problems[i].Kind < problems[j].Kind
	})
	return m, problems, nil
}
