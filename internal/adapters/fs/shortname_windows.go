//go:build windows

package fs

import (
	"golang.org/x/sys/windows"
	"go.trai.ch/zerr"
)

// Names queries the filesystem for 8.3 short names and their long forms.
type Names struct{}

// NewNames creates a new Names.
func NewNames() *Names {
	return &Names{}
}

// LongName returns the fully expanded form of path.
func (n *Names) LongName(path string) (string, error) {
	return query(path, windows.GetLongPathName)
}

// ShortName returns the 8.3 form of path.
func (n *Names) ShortName(path string) (string, error) {
	return query(path, windows.GetShortPathName)
}

func query(path string, fn func(*uint16, *uint16, uint32) (uint32, error)) (string, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "invalid path"), "path", path)
	}
	size, err := fn(p, nil, 0)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "path name query failed"), "path", path)
	}
	buf := make([]uint16, size)
	n, err := fn(p, &buf[0], size)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "path name query failed"), "path", path)
	}
	return windows.UTF16ToString(buf[:n]), nil
}
