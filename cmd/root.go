// Package cmd implements the CLI command structure for greenthumb.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/greenthumb/internal/config"
	"github.com/nibzard/greenthumb/internal/logging"
	"github.com/nibzard/greenthumb/internal/store"
	"github.com/nibzard/greenthumb/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// Run executes the greenthumb CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("greenthumb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// With no subcommand, launch the interactive UI.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "due":
		return dueCommand(cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "water":
		return careCommand(cfg, "water", remainingArgs)
	case "fertilize", "fertilise":
		return careCommand(cfg, "fertilize", remainingArgs)
	case "care":
		return careCommand(cfg, "", remainingArgs)
	case "set":
		return setCommand(cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "completion":
		return completionCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// gardenSession bundles what a command needs to work on the plant list.
type gardenSession struct {
	garden  *store.Garden
	logger  *log.Logger
	console *log.Logger
	logs    *logging.Session
	warning string
	// unsafe is set when saving would overwrite a corrupt data file
	// that could not be backed up.
	unsafe error
}

func (s *gardenSession) Close() {
	if s.garden != nil && s.garden.Dirty() {
		s.console.Warn("unsaved changes were discarded", "plants", s.garden.Len())
	}
	s.logger.Debug("session closed")
	_ = s.logs.Close()
}

// openGarden opens the session log and loads the plant list. A corrupt
// data file is reported through warning and does not fail the command.
// If it could not be backed up, unsafe is set as well.
func openGarden(cfg *config.Config) (*gardenSession, error) {
	s := &gardenSession{console: logging.NewConsole(stderr, cfg.LogLevel)}

	logs, err := logging.Open(cfg.LogDir, cfg.DataFile, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		s.console.Warn("session log disabled", "err", err)
		s.logger = logging.NewLogger(io.Discard, logging.Options{})
	} else {
		s.logs = logs
		s.logger = logs.Logger
	}
	s.logger.Info("session started", "version", Version, "data_file", cfg.DataFile, "today", cfg.TodayDate())

	garden, err := store.Open(store.New(cfg.DataFile), s.logger)
	if err != nil {
		if garden == nil {
			_ = s.logs.Close()
			return nil, fmt.Errorf("loading plants: %w", err)
		}
		var corrupt *store.CorruptDataError
		switch {
		case errors.As(err, &corrupt) && corrupt.Backup != "":
			s.warning = fmt.Sprintf("%v. Starting with an empty list; the unreadable file was copied to %s.", err, corrupt.Backup)
		case errors.As(err, &corrupt) && corrupt.BackupErr != nil:
			s.warning = fmt.Sprintf("%v. Starting with an empty list; the file could not be backed up (%v), so saving will overwrite it.", err, corrupt.BackupErr)
			s.unsafe = fmt.Errorf("refusing to save: %s is corrupt and could not be backed up (%w); move it aside first", cfg.DataFile, corrupt.BackupErr)
		default:
			s.warning = fmt.Sprintf("%v. Starting with an empty list; saving will overwrite the file.", err)
		}
	}
	s.garden = garden
	return s, nil
}

// tuiCommand launches the interactive UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openGarden(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := []ui.Option{
		ui.WithToday(cfg.TodayDate),
		ui.WithDataFile(cfg.DataFile),
		ui.WithVersion(Version),
	}
	if s.warning != "" {
		opts = append(opts, ui.WithWarning(s.warning))
	}
	return ui.RunTUI(ctx, s.garden, opts...)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "greenthumb version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "GreenThumb - watering and fertilizing reminders for house plants")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  greenthumb [global options] [command] [options] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options must come before a command's arguments, e.g. greenthumb ls -due fern.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                     Launch the interactive UI (default command)")
	fmt.Fprintln(w, "  ls [query]              List plants, optionally filtered by name")
	fmt.Fprintln(w, "  due                     List plants that need care today")
	fmt.Fprintln(w, "  add NAME                Add a plant (-water, -fertilize required)")
	fmt.Fprintln(w, "  water NAME              Record watering today")
	fmt.Fprintln(w, "  fertilize NAME          Record fertilizing today")
	fmt.Fprintln(w, "  care -kind KIND NAME    Record water, fertilize or both")
	fmt.Fprintln(w, "  set NAME                Change care intervals (-water, -fertilize)")
	fmt.Fprintln(w, "  rm NAME                 Delete a plant (asks unless -y)")
	fmt.Fprintln(w, "  export FILE             Write plants as json, yaml or xlsx")
	fmt.Fprintln(w, "  doctor                  Check config, data file and log directory")
	fmt.Fprintln(w, "  tail                    Show the latest session log")
	fmt.Fprintln(w, "  config                  Show effective configuration")
	fmt.Fprintln(w, "  completion SHELL        Print shell completion script")
	fmt.Fprintln(w, "  version                 Show version information")
	fmt.Fprintln(w, "  help                    Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add/Set Options:")
	fmt.Fprintln(w, "  -water int")
	fmt.Fprintln(w, "        Days between waterings")
	fmt.Fprintln(w, "  -fertilize int")
	fmt.Fprintln(w, "        Days between fertilizings")
	fmt.Fprintln(w, "  -watered string, -fertilized string (add only)")
	fmt.Fprintln(w, "        Last care date, YYYY-MM-DD")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        json, yaml or xlsx (default: from file extension)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List session logs instead of printing one")
}

// nameArg joins positional arguments into a plant name.
func nameArg(args []string) (string, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "", fmt.Errorf("plant name is required")
	}
	return name, nil
}
