// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/gridscript/internal/adapters/config"
	_ "go.trai.ch/gridscript/internal/adapters/daemon"
	_ "go.trai.ch/gridscript/internal/adapters/fs"
	_ "go.trai.ch/gridscript/internal/adapters/logger"
	_ "go.trai.ch/gridscript/internal/adapters/luavm"
	_ "go.trai.ch/gridscript/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/gridscript/internal/app"
)
