// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/greenthumb/internal/plant"
	"github.com/nibzard/greenthumb/internal/store"
)

// Option configures the TUI.
type Option func(*Model)

// WithToday sets the clock used for due dates and care records.
func WithToday(today func() civil.Date) Option {
	return func(m *Model) {
		m.today = today
	}
}

// WithWarning shows a banner at startup, e.g. after a corrupt data file.
func WithWarning(msg string) Option {
	return func(m *Model) {
		m.warning = msg
	}
}

// WithDataFile sets the data file path shown on the about screen.
func WithDataFile(path string) Option {
	return func(m *Model) {
		m.dataFile = path
	}
}

// WithVersion sets the version shown on the about screen.
func WithVersion(v string) Option {
	return func(m *Model) {
		m.version = v
	}
}

// RunTUI runs the interactive interface over garden until the user quits
// or ctx is cancelled.
func RunTUI(ctx context.Context, garden *store.Garden, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(garden, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
	modeHelp
)

// Model is the bubbletea model for the plant list.
type Model struct {
	garden   *store.Garden
	today    func() civil.Date
	dataFile string
	version  string

	mode    mode
	search  textinput.Model
	form    *form
	visible []plant.Plant
	cursor  int
	confirm string // plant pending deletion

	warning   string
	status    string
	statusErr bool
	quitArmed bool

	width  int
	height int
}

// NewModel builds a Model over garden.
func NewModel(garden *store.Garden, opts ...Option) *Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search plants"
	search.CharLimit = 64

	m := &Model{
		garden: garden,
		today:  func() civil.Date { return civil.DateOf(time.Now()) },
		search: search,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeForm && m.form != nil {
		return m, m.form.updateInputs(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" {
		m.quitArmed = false
	}

	switch key {
	case "q":
		if m.garden.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.setError("Unsaved changes: ctrl+s to retry saving, q again to quit anyway")
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refresh()
		}
		m.warning = ""
	case "a":
		m.form = newAddForm()
		m.mode = modeForm
		return m, textinput.Blink
	case "e":
		if p, ok := m.selected(); ok {
			m.form = newEditForm(p.Name, p.WaterIntervalDays, p.FertilizeIntervalDays)
			m.mode = modeForm
			return m, textinput.Blink
		}
	case "w":
		m.recordCare(plant.Water)
	case "f":
		m.recordCare(plant.Fertilize)
	case "b":
		m.recordCare(plant.Both)
	case "d", "delete":
		if p, ok := m.selected(); ok {
			m.confirm = p.Name
			m.mode = modeConfirm
		}
	case "ctrl+s":
		m.retrySave()
	case "?":
		m.mode = modeHelp
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeList
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeList
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "enter":
		m.submitForm()
		return m, nil
	}
	return m, m.form.updateInputs(msg)
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		name := m.confirm
		m.confirm = ""
		m.mode = modeList
		m.apply(fmt.Sprintf("Deleted %s", name), m.garden.Delete(name))
	case "n", "N", "esc", "q":
		m.confirm = ""
		m.mode = modeList
		m.setStatus("Delete cancelled")
	}
	return m, nil
}

func (m *Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q", "enter":
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) submitForm() {
	f := m.form
	today := m.today()

	switch f.kind {
	case formAdd:
		p, err := plant.ParseInput(plant.Input{
			Name:           f.value(0),
			WaterDays:      f.value(1),
			FertilizeDays:  f.value(2),
			LastWatered:    f.value(3),
			LastFertilized: f.value(4),
		}, today)
		if err != nil {
			f.err = err
			return
		}
		err = m.garden.Add(p)
		if err != nil && !store.IsSaveError(err) {
			f.err = err
			return
		}
		m.closeForm()
		m.apply(fmt.Sprintf("Added %s", p.Name), err)
		m.selectName(p.Name)

	case formEdit:
		water, err := plant.ParseInterval("water_interval_days", f.value(0))
		if err != nil {
			f.err = err
			return
		}
		fertilize, err := plant.ParseInterval("fertilize_interval_days", f.value(1))
		if err != nil {
			f.err = err
			return
		}
		err = m.garden.SetIntervals(f.target, water, fertilize)
		if err != nil && !store.IsSaveError(err) && !errors.Is(err, plant.ErrNotFound) {
			f.err = err
			return
		}
		m.closeForm()
		m.apply(fmt.Sprintf("Updated %s: water every %dd, fertilize every %dd", f.target, water, fertilize), err)
	}
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeList
}

func (m *Model) recordCare(care plant.Care) {
	p, ok := m.selected()
	if !ok {
		m.setError("No plant selected")
		return
	}
	today := m.today()
	m.apply(fmt.Sprintf("Recorded %s for %s on %s", careVerb(care), p.Name, today), m.garden.RecordCare(p.Name, care, today))
}

func (m *Model) retrySave() {
	if !m.garden.Dirty() {
		m.setStatus("Nothing to save")
		return
	}
	m.apply("Saved", m.garden.Save())
}

// apply refreshes the view after a mutation and reports its outcome.
func (m *Model) apply(success string, err error) {
	m.refresh()
	switch {
	case err == nil:
		m.setStatus(success)
	case store.IsSaveError(err):
		m.setError(fmt.Sprintf("%s, but saving failed: %v (changes kept in memory, ctrl+s to retry)", success, err))
	default:
		m.setError(err.Error())
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

// refresh recomputes the visible list from the garden.
func (m *Model) refresh() {
	m.visible = m.garden.Search(m.search.Value())
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (plant.Plant, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return plant.Plant{}, false
	}
	return m.visible[m.cursor], true
}

func (m *Model) selectName(name string) {
	for i, p := range m.visible {
		if p.Name == name {
			m.cursor = i
			return
		}
	}
}

func careVerb(c plant.Care) string {
	switch c {
	case plant.Water:
		return "watering"
	case plant.Fertilize:
		return "fertilizing"
	default:
		return "watering and fertilizing"
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
