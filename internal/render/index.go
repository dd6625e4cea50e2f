package render

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
)

// Index renders the page listing every note, sorted by file name.
func Index(notes []*Note) []byte {
	var buf bytes.Buffer
	buf.WriteString("# All People\n")
	for _, n := range sortedByFile(notes) {
		fmt.Fprintf(&buf, "\n* [%s](%s)", n.Title, escapePath(n.File))
	}
	buf.WriteString("\n")
	return buf.Bytes()
}

// BiosIndex renders the page listing notes that include a biography.
func BiosIndex(notes []*Note) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Profiles with Biographies\n\n")
	buf.WriteString("This page lists all family members who have biographical information.\n")

	n := 0
	for _, note := range sortedByFile(notes) {
		if !note.HasBio {
			continue
		}
		fmt.Fprintf(&buf, "\n* [%s](%s)", note.Title, escapePath(note.File))
		n++
	}
	if n == 0 {
		buf.WriteString("\n*No biographical information available yet.*")
	}
	buf.WriteString("\n")
	return buf.Bytes()
}

func sortedByFile(notes []*Note) []*Note {
	out := make([]*Note, len(notes))
	copy(out, notes)
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// escapePath percent-encodes a file name for a Markdown link target.
func escapePath(name string) string {
	return url.PathEscape(name)
}
