package config

const (
	defaultDataDir              = "~/.local/share/gamematch"
	defaultLogDir               = "~/.local/share/gamematch/logs"
	defaultCorpusDatabasePath   = "~/.local/share/gamematch/corpus.db"
	defaultMinMatchScore        = 70
	defaultNewReleaseWindowDays = 30
	defaultModelPolicy          = "gate"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			MinMatchScore:        defaultMinMatchScore,
			NewReleaseWindowDays: defaultNewReleaseWindowDays,
		},
		Model: Model{
			Policy: defaultModelPolicy,
		},
		Corpus: Corpus{
			DatabasePath: defaultCorpusDatabasePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
