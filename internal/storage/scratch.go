package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/BerylCAtieno/data-question-api/internal/utils"
)

const scopePrefix = "ask-"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Scratch hands out per-request temporary directories under a base dir.
type Scratch interface {
	Open() (Scope, error)
}

// Scope is one request's temporary directory. Close removes it and
// everything written into it.
type Scope interface {
	Dir() string
	Save(name string, data []byte) (string, error)
	Mkdir(name string) (string, error)
	Close() error
}

type localScratch struct {
	baseDir string
}

func NewScratch(baseDir string) (Scratch, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return &localScratch{baseDir: baseDir}, nil
}

func (s *localScratch) Open() (Scope, error) {
	dir := filepath.Join(s.baseDir, scopePrefix+utils.GenerateID())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create scratch scope: %w", err)
	}
	return &localScope{dir: dir}, nil
}

type localScope struct {
	dir string
}

func (s *localScope) Dir() string {
	return s.dir
}

// Save writes data under the sanitized form of name and returns its path.
func (s *localScope) Save(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, SafeFilename(name))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to save %q: %w", name, err)
	}
	return path, nil
}

func (s *localScope) Mkdir(name string) (string, error) {
	path := filepath.Join(s.dir, SafeFilename(name))
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %q: %w", name, err)
	}
	return path, nil
}

func (s *localScope) Close() error {
	return os.RemoveAll(s.dir)
}

// SafeFilename reduces name to a single ASCII path component.
// "../../etc/passwd" becomes "etc_passwd", "My Data.zip" becomes "My_Data.zip".
// A name with nothing usable left becomes "upload".
func SafeFilename(name string) string {
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range decomposed {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}

	cleaned := strings.ReplaceAll(b.String(), string(os.PathSeparator), " ")
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	cleaned = unsafeFilenameChars.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, "._")

	if cleaned == "" {
		return "upload"
	}
	return cleaned
}
