package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/greenthumb/internal/config"
	"github.com/nibzard/greenthumb/internal/plant"
	"github.com/nibzard/greenthumb/internal/reminder"
)

// openForCommand opens the garden and prints any load warning.
func openForCommand(cfg *config.Config) (*gardenSession, error) {
	s, err := openGarden(cfg)
	if err != nil {
		return nil, err
	}
	if s.warning != "" {
		s.console.Warn(s.warning)
	}
	return s, nil
}

// openForChange is openForCommand for commands that save. It refuses to
// run when saving would destroy a corrupt file that has no backup.
func openForChange(cfg *config.Config) (*gardenSession, error) {
	s, err := openForCommand(cfg)
	if err != nil {
		return nil, err
	}
	if s.unsafe != nil {
		s.Close()
		return nil, s.unsafe
	}
	return s, nil
}

// lsCommand lists plants with their schedules.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dueOnly := fs.Bool("due", false, "Only show plants that need care")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, arg := range fs.Args() {
		if strings.HasPrefix(arg, "-") {
			return fmt.Errorf("flag %s after the query: options must come before it (greenthumb ls -due QUERY)", arg)
		}
	}
	query := strings.Join(fs.Args(), " ")

	s, err := openForCommand(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	today := cfg.TodayDate()
	plants := s.garden.Search(query)
	if *dueOnly {
		var due []plant.Plant
		for _, p := range plants {
			if reminder.Evaluate(p, today).Any() {
				due = append(due, p)
			}
		}
		plants = due
	}

	if len(plants) == 0 {
		if s.garden.Len() == 0 {
			fmt.Fprintln(stdout, "No plants yet. Add one with: greenthumb add -water 3 -fertilize 30 NAME")
		} else {
			fmt.Fprintln(stdout, "No plants found.")
		}
		return nil
	}

	fmt.Fprintln(stdout, plantTable(plants, today))
	return nil
}

func plantTable(plants []plant.Plant, today civil.Date) string {
	rows := make([][]string, 0, len(plants))
	for _, p := range plants {
		flags := reminder.Evaluate(p, today)
		due := ""
		if flags.Any() {
			due = reminder.Describe(flags)
		}
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.WaterIntervalDays),
			strconv.Itoa(p.FertilizeIntervalDays),
			dateOrNever(p.LastWatered),
			dateOrNever(p.LastFertilized),
			due,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "WATER (d)", "FERTILIZE (d)", "LAST WATERED", "LAST FERTILIZED", "DUE").
		Rows(rows...).
		String()
}

// dueCommand prints the plants that need care today.
func dueCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb due", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openForCommand(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	today := cfg.TodayDate()
	due := reminder.DuePlants(s.garden.Plants(), today)
	if len(due) == 0 {
		fmt.Fprintf(stdout, "Nothing is due on %s.\n", today)
		return nil
	}

	fmt.Fprintf(stdout, "Due on %s:\n", today)
	for _, r := range due {
		line := fmt.Sprintf("  %s: %s", r.Plant.Name, reminder.Describe(r.Flags))
		if overdue := maxOverdue(r.Plant, r.Flags, today); overdue > 0 {
			line += fmt.Sprintf(" (%d days overdue)", overdue)
		}
		fmt.Fprintln(stdout, line)
	}
	return nil
}

func maxOverdue(p plant.Plant, flags reminder.Flags, today civil.Date) int {
	n := 0
	if flags.NeedsWater {
		n = max(n, reminder.DaysOverdue(p.WaterIntervalDays, p.LastWatered, today))
	}
	if flags.NeedsFertilize {
		n = max(n, reminder.DaysOverdue(p.FertilizeIntervalDays, p.LastFertilized, today))
	}
	return n
}

// addCommand adds a plant.
func addCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	water := fs.String("water", "", "Days between waterings")
	fertilize := fs.String("fertilize", "", "Days between fertilizings")
	watered := fs.String("watered", "", "Last watered date (YYYY-MM-DD)")
	fertilized := fs.String("fertilized", "", "Last fertilized date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := plant.ParseInput(plant.Input{
		Name:           strings.Join(fs.Args(), " "),
		WaterDays:      *water,
		FertilizeDays:  *fertilize,
		LastWatered:    *watered,
		LastFertilized: *fertilized,
	}, cfg.TodayDate())
	if err != nil {
		return err
	}

	s, err := openForChange(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.garden.Add(p); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Added %s (water every %dd, fertilize every %dd)\n", p.Name, p.WaterIntervalDays, p.FertilizeIntervalDays)
	fmt.Fprintln(stdout, "  "+reminder.Schedule(p))
	return nil
}

// careCommand records care for a plant. kind fixes the care kind for the
// water and fertilize shortcuts.
func careCommand(cfg *config.Config, kind string, args []string) error {
	fs := flag.NewFlagSet("greenthumb care", flag.ContinueOnError)
	fs.SetOutput(stderr)
	kindFlag := fs.String("kind", "both", "Care kind (water|fertilize|both)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if kind == "" {
		kind = *kindFlag
	}
	care, err := plant.ParseCare(kind)
	if err != nil {
		return err
	}
	name, err := nameArg(fs.Args())
	if err != nil {
		return err
	}

	s, err := openForChange(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	today := cfg.TodayDate()
	if err := s.garden.RecordCare(name, care, today); err != nil {
		return err
	}
	p, err := s.garden.Get(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Recorded %s for %s on %s\n", care, name, today)
	fmt.Fprintln(stdout, "  "+reminder.Schedule(p))
	return nil
}

// setCommand changes the care intervals of a plant.
func setCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb set", flag.ContinueOnError)
	fs.SetOutput(stderr)
	water := fs.String("water", "", "Days between waterings")
	fertilize := fs.String("fertilize", "", "Days between fertilizings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := nameArg(fs.Args())
	if err != nil {
		return err
	}
	if *water == "" && *fertilize == "" {
		return fmt.Errorf("nothing to change: pass -water and/or -fertilize")
	}

	s, err := openForChange(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.garden.Get(name)
	if err != nil {
		return err
	}
	waterDays, fertilizeDays := p.WaterIntervalDays, p.FertilizeIntervalDays
	if *water != "" {
		if waterDays, err = plant.ParseInterval("water_interval_days", *water); err != nil {
			return err
		}
	}
	if *fertilize != "" {
		if fertilizeDays, err = plant.ParseInterval("fertilize_interval_days", *fertilize); err != nil {
			return err
		}
	}

	if err := s.garden.SetIntervals(name, waterDays, fertilizeDays); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Updated %s: water every %dd, fertilize every %dd\n", name, waterDays, fertilizeDays)
	return nil
}

// rmCommand deletes a plant after confirmation.
func rmCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("greenthumb rm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name, err := nameArg(fs.Args())
	if err != nil {
		return err
	}

	s, err := openForChange(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.garden.Get(name); err != nil {
		return err
	}
	if !*yes && !confirm(fmt.Sprintf("Delete %s?", name)) {
		fmt.Fprintln(stdout, "Cancelled.")
		return nil
	}

	if err := s.garden.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Deleted %s\n", name)
	return nil
}

// confirm asks a y/N question on stdin.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func dateOrNever(d *civil.Date) string {
	if d == nil {
		return "never"
	}
	return d.String()
}
