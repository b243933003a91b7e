package fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathResolver = (*Resolver)(nil)

// Resolver canonicalizes user supplied script filenames.
type Resolver struct {
	names  ports.ShortNamer
	hasher *Hasher
}

// NewResolver creates a new Resolver.
func NewResolver(names ports.ShortNamer, hasher *Hasher) *Resolver {
	return &Resolver{names: names, hasher: hasher}
}

// Resolve expands rawName and returns its canonical, ASCII-only spelling.
// The path and the basename are shortened independently: a file with an ASCII
// name in a non-ASCII directory keeps its long basename.
func (r *Resolver) Resolve(rawName string) (domain.CanonicalPath, error) {
	expanded, err := expand(rawName)
	if err != nil {
		return domain.CanonicalPath{}, resolutionError(err, rawName)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return domain.CanonicalPath{}, resolutionError(err, rawName)
	}

	source, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return domain.CanonicalPath{}, resolutionError(err, rawName)
	}

	info, err := os.Stat(source)
	if err != nil {
		return domain.CanonicalPath{}, resolutionError(err, rawName)
	}
	if info.IsDir() {
		return domain.CanonicalPath{}, resolutionError(zerr.New("path is a directory"), rawName)
	}

	long, err := r.names.LongName(source)
	if err != nil {
		return domain.CanonicalPath{}, resolutionError(err, rawName)
	}

	path := long
	if !domain.IsASCII(long) {
		if path, err = r.names.ShortName(long); err != nil {
			return domain.CanonicalPath{}, resolutionError(err, rawName)
		}
	}

	// A missing extension is left for the caller to reject.
	dir, base, ext, _ := domain.SplitPath(path)
	if _, longBase, _, _ := domain.SplitPath(long); domain.IsASCII(longBase) {
		base = longBase
	}

	return domain.CanonicalPath{
		Path:            path,
		Dir:             dir,
		Base:            base,
		Ext:             ext,
		BasenameIsShort: !domain.IsASCII(filepath.Base(long)),
		Source:          long,
	}, nil
}

// ModTime returns the modification time of the file at path.
func (r *Resolver) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, resolutionError(err, path)
	}
	return info.ModTime(), nil
}

// Fingerprint returns the xxhash of the file's content.
func (r *Resolver) Fingerprint(path string) (uint64, error) {
	return r.hasher.ComputeFileHash(path)
}

func resolutionError(cause error, rawName string) error {
	err := zerr.Wrap(domain.ErrPathResolution, cause.Error())
	return zerr.With(err, "path", rawName)
}

// expand resolves a leading "~", $VAR and ${VAR} references, and %VAR% references.
func expand(name string) (string, error) {
	if name == "~" || strings.HasPrefix(name, "~/") || strings.HasPrefix(name, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		name = home + name[1:]
	}
	return expandPercentVars(os.ExpandEnv(name)), nil
}

// expandPercentVars replaces %NAME% with the value of NAME when it is set,
// leaving unknown references untouched.
func expandPercentVars(s string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		key := s[start+1 : end]
		if val, ok := os.LookupEnv(key); ok && key != "" {
			b.WriteString(s[:start])
			b.WriteString(val)
			s = s[end+1:]
			continue
		}
		b.WriteString(s[:end])
		s = s[end:]
	}
	b.WriteString(s)
	return b.String()
}
