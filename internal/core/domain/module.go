package domain

import "time"

// Signature describes how a callable declares its parameters.
type Signature struct {
	// Params is the number of fixed positional parameters.
	Params int
	// Variadic is set when the callable takes a trailing catch-all.
	Variadic bool
}

// ArgCount returns how many argument slots must be forwarded to a callable
// with this signature when the host always supplies max slots.
func (s Signature) ArgCount(maxArgs int) int {
	if s.Variadic {
		return maxArgs
	}
	return s.Params
}

// ModuleStat is a snapshot of one cached module.
type ModuleStat struct {
	Path        string
	ModTime     time.Time
	Fingerprint uint64
	Clean       bool
	Reloads     int
	Aliases     []string
}

// CacheStats summarizes the module cache.
type CacheStats struct {
	Freshness   bool
	Modules     []ModuleStat
	Directories []string
}
