package domain

import "go.trai.ch/zerr"

var (
	// ErrPathResolution is returned when a script filename cannot be expanded or queried on disk.
	ErrPathResolution = zerr.New("failed to resolve script path")

	// ErrMissingBasename is returned when a filename ends in a path separator.
	ErrMissingBasename = zerr.New("path has no basename")

	// ErrMissingExtension is returned when a filename has no usable extension.
	ErrMissingExtension = zerr.New("path has no extension")

	// ErrUnsupportedExtension is returned when a file extension is not a recognized script extension.
	ErrUnsupportedExtension = zerr.New("unsupported script extension")

	// ErrCacheLoad is returned when the first import of a script fails. Nothing is cached.
	ErrCacheLoad = zerr.New("failed to load script module")

	// ErrCacheReload is reported when a stale module could not be reloaded.
	// The cache keeps serving the previous module, so callers never receive it.
	ErrCacheReload = zerr.New("failed to reload script module")

	// ErrModuleReleased is returned when a released module handle is used.
	ErrModuleReleased = zerr.New("module handle has been released")

	// ErrFunctionNotFound is returned when a module has no attribute with the requested name.
	ErrFunctionNotFound = zerr.New("function not found in module")

	// ErrNotCallable is returned when the requested attribute is not a function.
	ErrNotCallable = zerr.New("attribute is not callable")

	// ErrArity is returned when a callable declares more fixed parameters than the host can pass.
	ErrArity = zerr.New("declared arity exceeds maximum supported inputs")

	// ErrArgumentConversion is returned when an input grid cannot be converted to a runtime value.
	ErrArgumentConversion = zerr.New("argument conversion failed")

	// ErrCall is returned when the callable raised an error during invocation.
	ErrCall = zerr.New("callable raised an error")

	// ErrResultConversion is returned when the callable returned a value of unsupported shape or type.
	ErrResultConversion = zerr.New("result has unsupported shape/type")

	// ErrConversion is the underlying marshalling failure wrapped by the argument and result errors.
	ErrConversion = zerr.New("value conversion failed")

	// ErrRaggedGrid is returned when nested rows have different lengths.
	ErrRaggedGrid = zerr.New("ragged grids are not supported")

	// ErrEmptyGrid is returned when a grid has no rows or no columns.
	ErrEmptyGrid = zerr.New("grid must have at least one row and one column")

	// ErrTooManyArguments is returned when more than MaxArgs argument grids are supplied.
	ErrTooManyArguments = zerr.New("too many argument grids")

	// ErrUnknownLibrary is returned when a loaded library lookup names an unknown component.
	ErrUnknownLibrary = zerr.New(`library must be "lua" or "gridscript"`)

	// ErrConfigRead is returned when the configuration file exists but cannot be read.
	ErrConfigRead = zerr.New("failed to read config file")

	// ErrConfigParse is returned when the configuration file is not valid YAML.
	ErrConfigParse = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrDaemonNotRunning is returned when the daemon socket cannot be reached.
	ErrDaemonNotRunning = zerr.New("daemon is not running")

	// ErrDaemonSpawnFailed is returned when the daemon process could not be started.
	ErrDaemonSpawnFailed = zerr.New("failed to spawn daemon")

	// ErrInvalidArgument is returned when a CLI argument cannot be parsed into a grid.
	ErrInvalidArgument = zerr.New("invalid argument")
)
