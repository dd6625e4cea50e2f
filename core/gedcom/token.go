package gedcom

import (
	"strconv"
	"strings"
)

// Token is one tokenized GEDCOM line.
type Token struct {
	Level   int
	Tag     string
	Payload string
}

// Tokenize splits a line into level, tag and payload.
//
// The line is split on the first two single spaces. The level must be a
// non-negative integer; otherwise, or when the line is blank or has fewer
// than two fields, ok is false and the caller should skip the line. The
// payload is everything after the second space with surrounding whitespace
// trimmed and may be empty. Tag and payload are not unescaped.
func Tokenize(line string) (tok Token, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Token{}, false
	}

	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return Token{}, false
	}

	level, err := strconv.Atoi(parts[0])
	if err != nil || level < 0 {
		return Token{}, false
	}

	tok = Token{Level: level, Tag: parts[1]}
	if len(parts) == 3 {
		tok.Payload = strings.TrimSpace(parts[2])
	}
	return tok, true
}

// IsPointer reports whether tag is a record identifier such as "@I1@".
func IsPointer(tag string) bool {
	return strings.HasPrefix(tag, "@")
}

// firstWord returns the payload up to its first space.
func firstWord(payload string) string {
	word, _, _ := strings.Cut(payload, " ")
	return word
}
