package ports

import (
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// PathResolver canonicalizes script filenames and queries the files behind them.
type PathResolver interface {
	// Resolve expands rawName into an absolute, ASCII-safe canonical path.
	// It fails with domain.ErrPathResolution if the file does not exist or cannot be queried.
	Resolve(rawName string) (domain.CanonicalPath, error)

	// ModTime returns the current modification time of the file at path.
	// path is the on-disk location, domain.CanonicalPath.Source.
	ModTime(path string) (time.Time, error)

	// Fingerprint returns a content hash of the file at path.
	Fingerprint(path string) (uint64, error)
}

// ShortNamer translates between the fully expanded and the ASCII-only spelling of a path.
type ShortNamer interface {
	// LongName returns the fully expanded form of an existing path.
	LongName(path string) (string, error)

	// ShortName returns an ASCII-only alias of an existing path.
	ShortName(path string) (string, error)
}
