// Package fileutil holds the file name and file write helpers shared by the
// vault writers.
package fileutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// allowedPunct lists the non-alphanumeric characters kept in file names.
const allowedPunct = "-_ ()'"

// SafeFilename returns name with every character that is not a letter, a
// digit, a space or one of -_()' replaced by an underscore, then trimmed of
// surrounding spaces. Input is NFC-normalized first so that decomposed and
// precomposed spellings of a name map to the same file.
//
// Letters from any script are kept, so Hebrew or Cyrillic names produce
// readable file names. The result may be empty.
func SafeFilename(name string) string {
	name = norm.NFC.String(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || strings.ContainsRune(allowedPunct, r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return strings.TrimSpace(b.String())
}
