//go:build !windows

package fs

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Names computes ASCII aliases on systems without filesystem short names.
// LongName is the identity; ShortName decomposes each path element, drops
// combining marks and replaces any remaining non-ASCII rune with '_'.
type Names struct{}

// NewNames creates a new Names.
func NewNames() *Names {
	return &Names{}
}

// LongName returns path unchanged.
func (n *Names) LongName(path string) (string, error) {
	return path, nil
}

// ShortName returns the ASCII alias of path.
func (n *Names) ShortName(path string) (string, error) {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i, p := range parts {
		alias, err := asciiAlias(p)
		if err != nil {
			return "", err
		}
		parts[i] = alias
	}
	return filepath.FromSlash(strings.Join(parts, "/")), nil
}

func asciiAlias(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '_'
		}
		return r
	}), norm.NFC)
	out, _, err := transform.String(t, s)
	return out, err
}
