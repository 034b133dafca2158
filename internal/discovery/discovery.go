// Package discovery lists the audio files of a folder that a batch should process.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDirectoryNotFound wraps discovery failures caused by a missing target folder.
var ErrDirectoryNotFound = errors.New("directory not found")

// Matcher decides whether a file name belongs to the allow-list.
// Matching is an exact suffix test on the name unless CaseInsensitive is set.
type Matcher struct {
	Extensions      []string
	CaseInsensitive bool
}

// Match reports whether name ends with one of the allowed extensions.
func (m Matcher) Match(name string) bool {
	if m.CaseInsensitive {
		name = strings.ToLower(name)
	}
	for _, ext := range m.Extensions {
		if m.CaseInsensitive {
			ext = strings.ToLower(ext)
		}
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Files returns the paths of the entries directly inside dir whose name ends
// with one of exts, in directory listing order.
func Files(dir string, exts []string) ([]string, error) {
	return Matcher{Extensions: exts}.Files(dir)
}

// Files returns the matching files directly inside dir. Sub-directories are skipped.
func (m Matcher) Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m.Match(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
