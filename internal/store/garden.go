package store

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/log"

	"github.com/nibzard/greenthumb/internal/plant"
)

// Persister loads and saves the whole plant list.
// *Store is the file-backed implementation.
type Persister interface {
	Load() ([]plant.Plant, error)
	Save([]plant.Plant) error
}

type backuper interface {
	Backup() (string, error)
}

// Garden is the in-memory plant collection for one session.
// Every mutation is flushed to the persister before the method returns.
// A Garden is not safe for concurrent use.
type Garden struct {
	persister Persister
	plants    []plant.Plant
	dirty     bool
	logger    *log.Logger
}

// Open loads the plant list from p.
//
// When the data is corrupt, Open backs the file up (if p supports it),
// starts with an empty list and returns the Garden together with the
// *CorruptDataError so the caller can warn the user. The error's Backup
// and BackupErr fields report whether a copy was written; without one the
// next save overwrites the corrupt file. Any other load error is returned
// with a nil Garden.
func Open(p Persister, logger *log.Logger) (*Garden, error) {
	g := NewGarden(p, nil, logger)

	plants, err := p.Load()
	if err == nil {
		g.plants = plants
		g.logger.Debug("loaded plants", "count", len(plants))
		return g, nil
	}

	var corrupt *CorruptDataError
	if !errors.As(err, &corrupt) {
		return nil, err
	}

	g.logger.Warn("data file is corrupt, starting empty", "path", corrupt.Path, "err", err)
	if b, ok := p.(backuper); ok {
		backup, berr := b.Backup()
		if berr != nil {
			corrupt.BackupErr = berr
			g.logger.Error("backup corrupt data file", "err", berr)
		} else {
			corrupt.Backup = backup
			g.logger.Info("backed up corrupt data file", "backup", backup)
		}
	}
	return g, err
}

// NewGarden returns a Garden holding plants without loading anything.
// A nil logger discards output.
func NewGarden(p Persister, plants []plant.Plant, logger *log.Logger) *Garden {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if plants == nil {
		plants = []plant.Plant{}
	}
	return &Garden{persister: p, plants: plants, logger: logger}
}

// Plants returns a copy of every plant in insertion order.
func (g *Garden) Plants() []plant.Plant {
	out := make([]plant.Plant, len(g.plants))
	for i, p := range g.plants {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of plants.
func (g *Garden) Len() int {
	return len(g.plants)
}

// Get returns a copy of the plant with the given name.
func (g *Garden) Get(name string) (plant.Plant, error) {
	i := g.index(name)
	if i < 0 {
		return plant.Plant{}, fmt.Errorf("%w: %q", plant.ErrNotFound, name)
	}
	return g.plants[i].Clone(), nil
}

// Add appends p after validating it. Add does not know the current date,
// so rejecting care dates in the future is left to the caller
// (plant.ParseInput or Plant.ValidateAt).
func (g *Garden) Add(p plant.Plant) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return err
	}
	if g.index(p.Name) >= 0 {
		return fmt.Errorf("%w: %q", plant.ErrDuplicateName, p.Name)
	}

	g.plants = append(g.plants, p.Clone())
	g.logger.Info("added plant", "name", p.Name,
		"water_every", p.WaterIntervalDays, "fertilize_every", p.FertilizeIntervalDays)
	return g.flush()
}

// RecordWatering sets the plant's last watered date to today.
func (g *Garden) RecordWatering(name string, today civil.Date) error {
	return g.RecordCare(name, plant.Water, today)
}

// RecordFertilizing sets the plant's last fertilized date to today.
func (g *Garden) RecordFertilizing(name string, today civil.Date) error {
	return g.RecordCare(name, plant.Fertilize, today)
}

// RecordCare sets every care date selected by care to today in a single save.
func (g *Garden) RecordCare(name string, care plant.Care, today civil.Date) error {
	if care == 0 {
		return &plant.ValidationError{Field: "care", Err: errors.New("no care kind selected")}
	}
	i := g.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", plant.ErrNotFound, name)
	}

	p := &g.plants[i]
	if care.Has(plant.Water) {
		p.LastWatered = plant.DateRef(today)
	}
	if care.Has(plant.Fertilize) {
		p.LastFertilized = plant.DateRef(today)
	}
	g.logger.Info("recorded care", "name", p.Name, "care", care, "date", today)
	return g.flush()
}

// SetIntervals replaces both care intervals of a plant.
func (g *Garden) SetIntervals(name string, waterDays, fertilizeDays int) error {
	i := g.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", plant.ErrNotFound, name)
	}

	updated := g.plants[i].Clone()
	updated.WaterIntervalDays = waterDays
	updated.FertilizeIntervalDays = fertilizeDays
	if err := updated.Validate(); err != nil {
		return err
	}

	g.plants[i] = updated
	g.logger.Info("changed intervals", "name", name, "water_every", waterDays, "fertilize_every", fertilizeDays)
	return g.flush()
}

// Delete removes the plant with the given name.
func (g *Garden) Delete(name string) error {
	i := g.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", plant.ErrNotFound, name)
	}

	g.plants = append(g.plants[:i:i], g.plants[i+1:]...)
	g.logger.Info("deleted plant", "name", name)
	return g.flush()
}

// Search returns copies of the plants whose name contains query,
// ignoring case, in insertion order. An empty query matches every plant.
func (g *Garden) Search(query string) []plant.Plant {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []plant.Plant{}
	for _, p := range g.plants {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Save writes the current list. Use it to retry after a *SaveError.
func (g *Garden) Save() error {
	return g.flush()
}

// Dirty reports whether the last save failed, leaving changes that are
// only held in memory.
func (g *Garden) Dirty() bool {
	return g.dirty
}

func (g *Garden) flush() error {
	if err := g.persister.Save(g.Plants()); err != nil {
		g.dirty = true
		g.logger.Error("save failed, changes kept in memory", "err", err)
		var se *SaveError
		if errors.As(err, &se) {
			return err
		}
		return &SaveError{Err: err}
	}
	if g.dirty {
		g.logger.Info("pending changes saved")
	}
	g.dirty = false
	return nil
}

func (g *Garden) index(name string) int {
	for i := range g.plants {
		if g.plants[i].Name == name {
			return i
		}
	}
	return -1
}
