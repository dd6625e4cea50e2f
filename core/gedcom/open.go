package gedcom

import (
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	gverrors "github.com/FocuswithJustin/gedvault/core/errors"
)

const utf8BOM = "\ufeff"

// readCloser pairs a decompressing reader with the file it reads from.
type readCloser struct {
	io.Reader
	file *os.File
}

func (r *readCloser) Close() error {
	return r.file.Close()
}

// Open opens a GEDCOM file for reading. Paths ending in ".xz" are
// decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gverrors.NewIO("open", path, err)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".xz") {
		return f, nil
	}

	xzr, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, gverrors.NewIO("read", path, err)
	}
	return &readCloser{Reader: xzr, file: f}, nil
}

func stripBOM(line string) string {
	return strings.TrimPrefix(line, utf8BOM)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
