// Package plant defines plant records and the validation applied to them.
package plant

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Plant is a single plant and its care schedule.
type Plant struct {
	Name                  string      `json:"name" yaml:"name"`
	WaterIntervalDays     int         `json:"water_interval_days" yaml:"water_interval_days"`
	FertilizeIntervalDays int         `json:"fertilize_interval_days" yaml:"fertilize_interval_days"`
	LastWatered           *civil.Date `json:"last_watered" yaml:"last_watered"`
	LastFertilized        *civil.Date `json:"last_fertilized" yaml:"last_fertilized"`
}

// Care is a bit set of care kinds.
type Care uint8

const (
	Water Care = 1 << iota
	Fertilize

	Both = Water | Fertilize
)

// Has reports whether c includes kind.
func (c Care) Has(kind Care) bool {
	return c&kind != 0
}

func (c Care) String() string {
	switch c {
	case Water:
		return "water"
	case Fertilize:
		return "fertilize"
	case Both:
		return "water+fertilize"
	}
	return fmt.Sprintf("care(%d)", uint8(c))
}

// ParseCare accepts "water", "fertilize" or "both" (case-insensitive).
func ParseCare(s string) (Care, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "water", "w":
		return Water, nil
	case "fertilize", "fertilise", "f":
		return Fertilize, nil
	case "both", "b":
		return Both, nil
	}
	return 0, &ValidationError{Field: "care", Err: fmt.Errorf("unknown care kind %q, must be one of: water, fertilize, both", s)}
}

// Clone returns a deep copy of p.
func (p Plant) Clone() Plant {
	p.LastWatered = cloneDate(p.LastWatered)
	p.LastFertilized = cloneDate(p.LastFertilized)
	return p
}

// Validate checks the record invariants that do not depend on the current date.
func (p *Plant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Err: errRequired}
	}
	if p.WaterIntervalDays < 1 {
		return &ValidationError{Field: "water_interval_days", Err: fmt.Errorf("must be a positive number of days, got %d", p.WaterIntervalDays)}
	}
	if p.FertilizeIntervalDays < 1 {
		return &ValidationError{Field: "fertilize_interval_days", Err: fmt.Errorf("must be a positive number of days, got %d", p.FertilizeIntervalDays)}
	}
	if p.LastWatered != nil && !p.LastWatered.IsValid() {
		return &ValidationError{Field: "last_watered", Err: fmt.Errorf("invalid date %s", p.LastWatered)}
	}
	if p.LastFertilized != nil && !p.LastFertilized.IsValid() {
		return &ValidationError{Field: "last_fertilized", Err: fmt.Errorf("invalid date %s", p.LastFertilized)}
	}
	return nil
}

// ValidateAt runs Validate and also rejects care dates after today.
func (p *Plant) ValidateAt(today civil.Date) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.LastWatered != nil && p.LastWatered.After(today) {
		return &ValidationError{Field: "last_watered", Err: errFuture}
	}
	if p.LastFertilized != nil && p.LastFertilized.After(today) {
		return &ValidationError{Field: "last_fertilized", Err: errFuture}
	}
	return nil
}

// DateRef returns a pointer to a copy of d.
func DateRef(d civil.Date) *civil.Date {
	return &d
}

func cloneDate(d *civil.Date) *civil.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
