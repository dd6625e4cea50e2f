// Package render turns a resolved population into Markdown notes for an
// Obsidian-style vault: one profile note per person, linked to relatives
// with [[wikilinks]], plus an index of all people and an index of people
// with biographies.
//
// A Renderer is immutable once built and every method may be called from
// multiple goroutines.
package render

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/gedvault/core/genealogy"
	"github.com/FocuswithJustin/gedvault/internal/bios"
	"github.com/FocuswithJustin/gedvault/internal/fileutil"
	"github.com/FocuswithJustin/gedvault/internal/places"
)

const (
	// IndexFile lists every profile.
	IndexFile = "index.md"
	// BiosFile lists profiles that have a biography.
	BiosFile = "bios.md"
)

// Options configures a Renderer. Nil collaborators get neutral defaults.
type Options struct {
	Places  *places.Gazetteer
	Bios    *bios.Store
	Mermaid bool
}

// Note is one rendered profile.
type Note struct {
	ID      string
	File    string // base name inside the people directory
	Title   string // File without the .md extension
	Content []byte
	HasBio  bool
}

// Renderer renders notes for one population.
type Renderer struct {
	pop     *genealogy.Population
	places  *places.Gazetteer
	bios    *bios.Store
	mermaid bool

	files map[string]string
}

// New assigns a file name to every person and returns a Renderer.
func New(pop *genealogy.Population, opts Options) *Renderer {
	r := &Renderer{
		pop:     pop,
		places:  opts.Places,
		bios:    opts.Bios,
		mermaid: opts.Mermaid,
	}
	if r.places == nil {
		r.places = places.New("")
	}
	if r.bios == nil {
		r.bios = bios.NewStore("")
	}
	r.files = AssignFiles(pop)
	return r
}

// AssignFiles maps every individual id to a note file name. The name is
// SafeFilename of the display name; when two people would share a file,
// people after the first in id order get a " (<id>)" suffix. Matching is
// case-insensitive and the index pages' names are reserved, so no note can
// overwrite another on any file system.
func AssignFiles(pop *genealogy.Population) map[string]string {
	taken := map[string]bool{
		strings.ToLower(IndexFile): true,
		strings.ToLower(BiosFile):  true,
	}
	files := make(map[string]string, pop.Len())

	for _, id := range pop.IDs() {
		stem := fileutil.SafeFilename(pop.Name(id))
		idStem := bios.FileStem(id)
		if stem == "" {
			stem = idStem
		}
		if stem == "" {
			stem = "Unknown"
		}

		name := stem + ".md"
		if taken[strings.ToLower(name)] {
			name = stem + " (" + idStem + ").md"
		}
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = stem + " (" + idStem + "-" + strconv.Itoa(n) + ").md"
		}

		taken[strings.ToLower(name)] = true
		files[id] = name
	}
	return files
}

// File returns the note file name assigned to id, or "" when id is not an
// individual of the population.
func (r *Renderer) File(id string) string {
	return r.files[id]
}

// Files returns a copy of the id to file name assignment.
func (r *Renderer) Files() map[string]string {
	out := make(map[string]string, len(r.files))
	for id, f := range r.files {
		out[id] = f
	}
	return out
}

// Population returns the population being rendered.
func (r *Renderer) Population() *genealogy.Population {
	return r.pop
}

// link renders a wikilink to id. The link targets the note file; when the
// file stem differs from the display name the name is kept as the alias.
func (r *Renderer) link(id string) string {
	if id == "" {
		return ""
	}
	label := r.pop.Name(id)
	if label == "" {
		label = "Unknown"
	}
	if file, ok := r.files[id]; ok {
		if stem := strings.TrimSuffix(file, ".md"); stem != label {
			return "[[" + stem + "|" + label + "]]"
		}
	}
	return "[[" + label + "]]"
}
