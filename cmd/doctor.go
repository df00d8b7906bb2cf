package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/greenthumb/internal/config"
	"github.com/nibzard/greenthumb/internal/logging"
	"github.com/nibzard/greenthumb/internal/reminder"
	"github.com/nibzard/greenthumb/internal/store"
)

// doctorCommand checks the configuration, data file and log directory.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Fprintln(stdout, "GreenThumb Doctor")
	fmt.Fprintln(stdout, "=================")
	fmt.Fprintln(stdout)

	allOK := true

	fmt.Fprintln(stdout, "Config:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(stdout, "  ✅ No config files (using defaults)")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(stdout, "  ✅ Loaded %s\n", f)
	}
	fmt.Fprintf(stdout, "  Today: %s (%s)\n", cfg.TodayDate(), cfg.Source("today"))
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Data file: %s\n", cfg.DataFile)
	info, err := os.Stat(cfg.DataFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first change)")
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(stdout, "  ❌ Error: path is a directory")
		allOK = false
	default:
		plants, loadErr := store.New(cfg.DataFile).Load()
		var corrupt *store.CorruptDataError
		switch {
		case errors.As(loadErr, &corrupt):
			fmt.Fprintln(stdout, "  ❌ Validation failed:")
			for _, e := range corrupt.Errs {
				fmt.Fprintf(stdout, "     - %v\n", e)
			}
			allOK = false
		case loadErr != nil:
			fmt.Fprintf(stdout, "  ❌ Load error: %v\n", loadErr)
			allOK = false
		default:
			due := reminder.DuePlants(plants, cfg.TodayDate())
			fmt.Fprintf(stdout, "  ✅ Valid (%d plants, %d due)\n", len(plants), len(due))
			if *verbose {
				for _, p := range plants {
					fmt.Fprintf(stdout, "    - %s\n", reminder.Status(p))
				}
			}
		}
	}
	if info, err := os.Stat(cfg.DataFile + store.BackupSuffix); err == nil && info.Mode().IsRegular() {
		fmt.Fprintf(stdout, "  ⚠️  Backup of a corrupt file exists: %s\n", cfg.DataFile+store.BackupSuffix)
	}
	fmt.Fprintln(stdout)

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.DataFile)
	if err != nil {
		logDir = cfg.LogDir
	}
	fmt.Fprintf(stdout, "Log directory: %s\n", logDir)
	if _, err := os.Stat(logDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first session)")
		} else {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
