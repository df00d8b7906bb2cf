// Package reminder decides which plants are due for care.
//
// Everything here is a pure function of a plant record and "today";
// callers supply the date so results are reproducible.
package reminder

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/nibzard/greenthumb/internal/plant"
)

// Flags holds the due state of each care kind for one plant.
type Flags struct {
	NeedsWater     bool
	NeedsFertilize bool
}

// Any reports whether any care is due.
func (f Flags) Any() bool {
	return f.NeedsWater || f.NeedsFertilize
}

// Care returns the due care kinds as a bit set.
func (f Flags) Care() plant.Care {
	var c plant.Care
	if f.NeedsWater {
		c |= plant.Water
	}
	if f.NeedsFertilize {
		c |= plant.Fertilize
	}
	return c
}

// Reminder pairs a plant with its due flags.
type Reminder struct {
	Plant plant.Plant
	Flags
}

// IsDue reports whether care with the given interval is due on today.
// Care that was never done is always due.
func IsDue(intervalDays int, lastDone *civil.Date, today civil.Date) bool {
	if lastDone == nil {
		return true
	}
	return today.DaysSince(*lastDone) >= intervalDays
}

// Evaluate applies IsDue to both care kinds of p.
func Evaluate(p plant.Plant, today civil.Date) Flags {
	return Flags{
		NeedsWater:     IsDue(p.WaterIntervalDays, p.LastWatered, today),
		NeedsFertilize: IsDue(p.FertilizeIntervalDays, p.LastFertilized, today),
	}
}

// DuePlants returns the plants needing any care today, in input order.
func DuePlants(plants []plant.Plant, today civil.Date) []Reminder {
	var due []Reminder
	for _, p := range plants {
		flags := Evaluate(p, today)
		if !flags.Any() {
			continue
		}
		due = append(due, Reminder{Plant: p.Clone(), Flags: flags})
	}
	return due
}

// NextDue returns the date care is next due. ok is false when care was
// never recorded, meaning it is due immediately.
func NextDue(intervalDays int, lastDone *civil.Date) (next civil.Date, ok bool) {
	if lastDone == nil {
		return civil.Date{}, false
	}
	return lastDone.AddDays(intervalDays), true
}

// DaysOverdue returns how many days past the due date today is.
// Zero means due today; negative values count days remaining.
// Never-done care reports zero.
func DaysOverdue(intervalDays int, lastDone *civil.Date, today civil.Date) int {
	next, ok := NextDue(intervalDays, lastDone)
	if !ok {
		return 0
	}
	return today.DaysSince(next)
}

// Status renders a one-line summary such as
// "Fern: water by 2024-01-04, fertilize by 2024-01-31".
func Status(p plant.Plant) string {
	return p.Name + ": " + Schedule(p)
}

// Schedule renders both next care dates without the plant name.
func Schedule(p plant.Plant) string {
	return fmt.Sprintf("water %s, fertilize %s",
		dueLabel(p.WaterIntervalDays, p.LastWatered),
		dueLabel(p.FertilizeIntervalDays, p.LastFertilized),
	)
}

// Describe lists the due care kinds, e.g. "water, fertilize".
func Describe(f Flags) string {
	var parts []string
	if f.NeedsWater {
		parts = append(parts, "water")
	}
	if f.NeedsFertilize {
		parts = append(parts, "fertilize")
	}
	if len(parts) == 0 {
		return "nothing due"
	}
	return strings.Join(parts, ", ")
}

func dueLabel(intervalDays int, lastDone *civil.Date) string {
	next, ok := NextDue(intervalDays, lastDone)
	if !ok {
		return "now"
	}
	return "by " + next.String()
}
