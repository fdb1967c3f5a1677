package extractor

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrArchiveTooLarge is returned when an archive expands past its limit.
var ErrArchiveTooLarge = errors.New("archive exceeds uncompressed size limit")

// ExtractZip unpacks the archive at src into dest, creating nested
// directories as needed. Entries that would land outside dest are skipped.
// maxBytes caps the total uncompressed size written; 0 means no cap.
func ExtractZip(src, dest string, maxBytes int64) error {
	r, err := zip.OpenReader(src)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create extraction dir: %w", err)
	}

	remaining := maxBytes
	root := filepath.Clean(dest) + string(os.PathSeparator)
	for _, f := range r.File {
		path := filepath.Join(dest, f.Name)
		if !strings.HasPrefix(path, root) {
			continue
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", f.Name, err)
			}
			continue
		}

		limit := int64(-1)
		if maxBytes > 0 {
			limit = remaining
		}
		n, err := extractFile(f, path, limit)
		if err != nil {
			return err
		}
		remaining -= n
	}

	return nil
}

// extractFile writes one entry and returns the bytes written. A negative
// limit means unbounded.
func extractFile(f *zip.File, path string, limit int64) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", filepath.Dir(f.Name), err)
	}

	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", f.Name, err)
	}

	var src io.Reader = rc
	if limit >= 0 {
		// One byte past the limit tells a full archive from an oversized one.
		src = io.LimitReader(rc, limit+1)
	}

	n, err := io.Copy(out, src)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("failed to extract entry %s: %w", f.Name, err)
	}
	if limit >= 0 && n > limit {
		out.Close()
		return n, fmt.Errorf("%w: entry %s", ErrArchiveTooLarge, f.Name)
	}
	return n, out.Close()
}

// FindFirst searches root for the first regular file whose name ends with
// suffix. Each directory's own files are checked, in name order, before its
// subdirectories are entered. ok is false when none exists.
func FindFirst(root, suffix string) (path string, ok bool, err error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", root, err)
	}

	var dirs []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			dirs = append(dirs, filepath.Join(root, e.Name()))
		case e.Type().IsRegular() && strings.HasSuffix(e.Name(), suffix):
			return filepath.Join(root, e.Name()), true, nil
		}
	}

	for _, dir := range dirs {
		if path, ok, err = FindFirst(dir, suffix); err != nil || ok {
			return path, ok, err
		}
	}
	return "", false, nil
}
