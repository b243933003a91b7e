package luavm

import (
	"runtime/debug"

	lua "github.com/yuin/gopher-lua"
)

const modulePath = "github.com/yuin/gopher-lua"

// Library describes the linked interpreter, e.g.
// "github.com/yuin/gopher-lua@v1.1.1 (Lua 5.1)". Builds without module
// information, such as test binaries, report the package version instead.
func Library() string {
	version := modulePath + " " + lua.PackageVersion
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range info.Deps {
			if dep.Path != modulePath {
				continue
			}
			if dep.Replace != nil {
				dep = dep.Replace
			}
			version = dep.Path + "@" + dep.Version
			break
		}
	}
	return version + " (" + lua.LuaVersion + ")"
}
