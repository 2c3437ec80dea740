package merge

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Discover returns the regular files directly inside dir whose names match
// pattern, sorted by name. Hidden files are skipped.
func Discover(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "merge: read dir %s", dir)
	}

	// os.ReadDir returns entries sorted by filename.
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, eris.Wrapf(err, "merge: match pattern %q", pattern)
		}
		if ok {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}
