package luavm

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/zerr"
)

// locate finds name.ext in first, then in the search directories, most recent first.
// Other recognized extensions are tried after ext. While the case-insensitive flag
// is set, directory entries also match by case-folded name or by their ASCII alias.
func (r *Runtime) locate(name, ext, first string) (string, error) {
	exts := r.extensionsFrom(ext)
	dirs := r.dirs
	if first != "" {
		dirs = append([]string{first}, slices.DeleteFunc(slices.Clone(r.dirs), func(d string) bool { return d == first })...)
	}

	folding := caseInsensitive.Load()
	for _, dir := range dirs {
		for _, e := range exts {
			candidate := filepath.Join(dir, name+"."+e)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		if folding {
			if found, ok := r.scan(dir, name, exts); ok {
				return found, nil
			}
		}
	}

	err := zerr.With(zerr.New("module not found on search path"), "module", name)
	return "", zerr.With(err, "case_insensitive", folding)
}

// scan matches the entries of dir against name, ignoring case.
func (r *Runtime) scan(dir, name string, exts []string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		_, base, ext, err := domain.SplitPath(entry.Name())
		if err != nil || !domain.ValidExtension(ext, exts) {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if strings.EqualFold(base, name) {
			return full, true
		}
		if domain.IsASCII(base) {
			continue
		}
		short, err := r.names.ShortName(full)
		if err != nil {
			continue
		}
		if _, alias, _, err := domain.SplitPath(short); err == nil && strings.EqualFold(alias, name) {
			return full, true
		}
	}
	return "", false
}

func (r *Runtime) extensionsFrom(ext string) []string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return r.exts
	}
	out := []string{ext}
	for _, e := range r.exts {
		if !strings.EqualFold(e, ext) {
			out = append(out, e)
		}
	}
	return out
}

// installLoader appends a package.loaders entry that resolves require() through locate,
// so scripts see the same search directories and case folding as the host.
func (r *Runtime) installLoader() {
	loaders, ok := r.state.GetField(r.state.Get(lua.RegistryIndex), "_LOADERS").(*lua.LTable)
	if !ok {
		return
	}
	loaders.Append(r.state.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		file, err := r.locate(strings.ReplaceAll(name, ".", string(filepath.Separator)), "", "")
		if err != nil {
			L.Push(lua.LString(fmt.Sprintf("\n\tno file for '%s' in gridscript search directories", name)))
			return 1
		}
		fn, err := L.LoadFile(file)
		if err != nil {
			L.RaiseError("%s", err.Error())
		}
		L.Push(fn)
		return 1
	}))
}
