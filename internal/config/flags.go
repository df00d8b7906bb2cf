package config

import "flag"

// parseFlags defines the global flags on fs and parses args.
// Only flags that were explicitly set are recorded as flag-sourced.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("greenthumb", flag.ContinueOnError)
	}

	// Field name for each flag, for source tracking.
	fields := map[string]string{
		"data":       "data_file",
		"log-dir":    "log_dir",
		"log-level":  "log_level",
		"log-format": "log_format",
		"today":      "today",
	}

	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to the plant data file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.StringVar(&cfg.Today, "today", cfg.Today, "Evaluate reminders as of this date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := fields[f.Name]; ok {
			cfg.setSource(field, SourceFlag)
		}
	})
	return nil
}
