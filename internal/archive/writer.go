package archive

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/gedvault/core/errors"
	"github.com/FocuswithJustin/gedvault/internal/fileutil"
)

// Epoch is the modification time stamped on every entry so that the same
// vault always produces the same archive bytes.
var Epoch = time.Unix(0, 0).UTC()

// CreateTarXz writes srcDir as a tar.xz archive at dstPath. Entries are
// stored under baseDir in lexical order with normalized owners, modes and
// timestamps. The archive is written atomically and parent directories of
// dstPath are created as needed. If dstPath lies inside srcDir it is not
// archived.
func CreateTarXz(srcDir, dstPath, baseDir string) error {
	var buf bytes.Buffer
	if err := WriteTarXz(&buf, srcDir, baseDir, dstPath); err != nil {
		return errors.NewIO("archive", dstPath, err)
	}
	return fileutil.WriteFile(dstPath, buf.Bytes(), 0o644)
}

// WriteTarXz streams the archive of srcDir to w. Any path equal to skip is
// left out.
func WriteTarXz(w io.Writer, srcDir, baseDir, skip string) error {
	skipAbs := ""
	if skip != "" {
		if abs, err := filepath.Abs(skip); err == nil {
			skipAbs = abs
		}
	}

	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	// WalkDir visits entries in lexical order.
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skipAbs != "" {
			if abs, aerr := filepath.Abs(path); aerr == nil && abs == skipAbs {
				return nil
			}
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() && !info.IsDir() {
			return nil
		}

		header := &tar.Header{
			Name:    baseDir + "/" + filepath.ToSlash(relPath),
			ModTime: Epoch,
			Format:  tar.FormatPAX,
		}
		if info.IsDir() {
			header.Typeflag = tar.TypeDir
			header.Name += "/"
			header.Mode = 0o755
		} else {
			header.Typeflag = tar.TypeReg
			header.Mode = 0o644
			header.Size = info.Size()
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(tw, file)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return xw.Close()
}
