package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// CanonicalPath identifies a script file independently of how a caller spelled it.
// Path, Dir and Base are guaranteed ASCII.
type CanonicalPath struct {
	// Path is the absolute path to the file.
	Path string
	// Dir is the directory holding the file.
	Dir string
	// Base is the file name without directory and extension.
	Base string
	// Ext is the extension without the leading period.
	Ext string
	// BasenameIsShort records that Base is an ASCII alias of a non-ASCII name.
	BasenameIsShort bool
	// Source is the fully expanded on-disk location, used for file access.
	Source string
}

// String returns the canonical path.
func (p CanonicalPath) String() string { return p.Path }

// SourceDir returns the on-disk directory holding the file.
func (p CanonicalPath) SourceDir() string { return filepath.Dir(p.Source) }

// SplitPath splits a filename into directory, basename and extension.
// Both '/' and '\' are treated as separators. A filename ending in a separator
// has no basename. A name that starts or ends with a period, or has no period,
// has no extension. In both cases the returned error says which part is missing,
// but the parts that could be split are still returned.
func SplitPath(name string) (dir, base, ext string, err error) {
	sep := strings.LastIndexAny(name, `/\`)
	file := name
	if sep >= 0 {
		dir = name[:sep]
		file = name[sep+1:]
	}
	if file == "" {
		return dir, "", "", zerr.With(zerr.Wrap(ErrMissingBasename, "cannot split filename"), "path", name)
	}

	dot := strings.LastIndexByte(file, '.')
	if dot <= 0 || dot == len(file)-1 {
		return dir, file, "", zerr.With(zerr.Wrap(ErrMissingExtension, "cannot split filename"), "path", name)
	}
	return dir, file[:dot], file[dot+1:], nil
}

// ValidExtension reports whether ext matches one of the recognized extensions,
// ignoring case.
func ValidExtension(ext string, recognized []string) bool {
	for _, r := range recognized {
		if strings.EqualFold(ext, strings.TrimPrefix(r, ".")) {
			return true
		}
	}
	return false
}
