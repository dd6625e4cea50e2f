package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/gedvault/core/errors"
)

// HashResult contains both SHA-256 and BLAKE3 hashes of one file.
type HashResult struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// HashBytes hashes data with both algorithms.
func HashBytes(data []byte) HashResult {
	s := sha256.Sum256(data)
	b := blake3.Sum256(data)
	return HashResult{
		SHA256: hex.EncodeToString(s[:]),
		BLAKE3: hex.EncodeToString(b[:]),
	}
}

// HashFile streams the file at path through both hashes in one pass and
// returns them with the file size.
func HashFile(path string) (HashResult, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return HashResult{}, 0, errors.NewIO("open", path, err)
	}
	defer f.Close()

	s := sha256.New()
	b := blake3.New()
	n, err := io.Copy(io.MultiWriter(s, b), f)
	if err != nil {
		return HashResult{}, 0, errors.NewIO("read", path, err)
	}
	return HashResult{
		SHA256: hex.EncodeToString(s.Sum(nil)),
		BLAKE3: hex.EncodeToString(b.Sum(nil)),
	}, n, nil
}
