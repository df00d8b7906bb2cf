package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# GreenThumb configuration file
# Values can be overridden by GREENTHUMB_* environment variables or CLI flags

# Plant data file (relative to the working directory)
data_file = "plants.json"

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.greenthumb/logs"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Evaluate reminders as of a fixed date instead of the system clock
# today = "2024-01-05"
`
}
