package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/greenthumb/internal/config"
)

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	today := cfg.Today
	if today == "" {
		today = fmt.Sprintf("(system clock: %s)", cfg.TodayDate())
	}
	rows := []struct{ key, value string }{
		{"data_file", cfg.DataFile},
		{"log_dir", cfg.LogDir},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"today", today},
	}
	for _, r := range rows {
		fmt.Fprintf(stdout, "%-11s = %-40s # %s\n", r.key, r.value, cfg.Source(r.key))
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(stdout, "# read %s\n", f)
	}
	return nil
}
