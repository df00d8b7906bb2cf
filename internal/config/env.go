package config

import "os"

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	bind := func(name, field string, target *string) {
		if v := os.Getenv(name); v != "" {
			*target = v
			cfg.setSource(field, SourceEnv)
		}
	}

	bind("GREENTHUMB_DATA_FILE", "data_file", &cfg.DataFile)
	bind("GREENTHUMB_LOG_DIR", "log_dir", &cfg.LogDir)
	bind("GREENTHUMB_LOG_LEVEL", "log_level", &cfg.LogLevel)
	bind("GREENTHUMB_LOG_FORMAT", "log_format", &cfg.LogFormat)
	bind("GREENTHUMB_TODAY", "today", &cfg.Today)
}
