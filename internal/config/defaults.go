package config

const (
	defaultConfigPath       = "~/.config/scmutil/config.toml"
	projectConfigName       = "scmutil.toml"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultProbeTimeoutSecs = 5
	defaultProbeArg         = "help"
)

// Environment variables consulted after the config file is decoded.
const (
	EnvLogLevel     = "SCMUTIL_LOG_LEVEL"
	EnvLogFormat    = "SCMUTIL_LOG_FORMAT"
	EnvProbeTimeout = "SCMUTIL_PROBE_TIMEOUT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Probe: Probe{
			TimeoutSeconds: defaultProbeTimeoutSecs,
			DefaultArgs:    []string{defaultProbeArg},
			Warn:           true,
		},
		Tools: []Tool{
			{
				Name:        "git",
				Command:     "git",
				Args:        []string{"help"},
				Description: "Reads version metadata from git checkouts",
			},
			{
				Name:        "hg",
				Command:     "hg",
				Args:        []string{"help"},
				Description: "Reads version metadata from mercurial checkouts",
				Optional:    true,
			},
		},
	}
}
