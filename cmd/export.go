package cmd

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/nibzard/greenthumb/internal/config"
	"github.com/nibzard/greenthumb/internal/export"
)

// exportCommand writes the plant list to another file.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", "", "Output format (json|yaml|xlsx), default from extension")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("export needs exactly one output file")
	}
	path := fs.Arg(0)
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.WorkDir, path)
	}

	var (
		format export.Format
		err    error
	)
	if *formatName != "" {
		format, err = export.ParseFormat(*formatName)
	} else {
		format, err = export.FormatFromPath(path)
	}
	if err != nil {
		return err
	}
	if filepath.Clean(path) == filepath.Clean(cfg.DataFile) {
		return fmt.Errorf("refusing to export over the data file %s", cfg.DataFile)
	}

	s, err := openForCommand(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	plants := s.garden.Plants()
	if err := export.WriteFile(path, format, plants, cfg.TodayDate()); err != nil {
		return err
	}
	s.logger.Info("exported plants", "path", path, "format", format, "count", len(plants))
	fmt.Fprintf(stdout, "Exported %d plants to %s (%s)\n", len(plants), path, format)
	return nil
}
