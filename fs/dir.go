// Package fs writes rendered pages to the local filesystem.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wikihtml"
)

// DefaultOutputDir is the output directory used when none is given.
const DefaultOutputDir = "wikihtml-output"

// IndexName is the file name, without extension, of the generated index.
const IndexName = "index"

// ConfirmDir makes sure path is a directory, creating it if needed, and
// returns its absolute path. Returns EINVALID if path exists but is not a
// directory.
func ConfirmDir(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return "", wikihtml.Errorf(wikihtml.EINVALID, "%s exists but is not a directory", path)
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	}
	return filepath.Abs(path)
}

// SanitizeName maps a page title to a file name made of ASCII letters, digits
// and underscores. Every other character becomes an underscore. Names that
// would clash with generated files get a suffix.
func SanitizeName(title string) string {
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || name == "_" || name == IndexName {
		name += "munged"
	}
	return name
}

// AssignFileNames returns the sanitized name of every title, in order.
// Returns ECONFLICT if two titles map to the same name.
func AssignFileNames(titles []string) ([]string, error) {
	names := make([]string, len(titles))
	owners := make(map[string]string, len(titles))
	for i, title := range titles {
		name := SanitizeName(title)
		if owner, ok := owners[name]; ok {
			return nil, wikihtml.Errorf(wikihtml.ECONFLICT, "pages %q and %q both map to %s", title, owner, name)
		}
		owners[name] = title
		names[i] = name
	}
	return names, nil
}

// SiteDirName returns the name of the directory that holds the output of a
// site inside the output directory.
func SiteDirName(site string) string {
	if site == "" {
		return "wiki"
	}
	return SanitizeName(site)
}
