package config

// Configfile represents the structure of the gridscript.yaml configuration file.
// Pointer fields distinguish an absent key from its zero value.
type Configfile struct {
	FreshnessCheck *bool     `yaml:"freshness_check"`
	Extensions     []string  `yaml:"extensions"`
	SearchPath     []string  `yaml:"search_path"`
	Log            LogDTO    `yaml:"log"`
	Daemon         DaemonDTO `yaml:"daemon"`
}

// LogDTO holds the log section.
type LogDTO struct {
	Level string `yaml:"level"`
	JSON  *bool  `yaml:"json"`
}

// DaemonDTO holds the daemon section.
type DaemonDTO struct {
	Socket      string `yaml:"socket"`
	IdleTimeout string `yaml:"idle_timeout"`
}
