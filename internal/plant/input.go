package plant

import (
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

// MaxIntervalDays bounds intervals accepted from forms.
const MaxIntervalDays = 3650

// Input holds the raw values of the add-plant form.
type Input struct {
	Name           string
	WaterDays      string
	FertilizeDays  string
	LastWatered    string // optional, YYYY-MM-DD
	LastFertilized string // optional, YYYY-MM-DD
}

// ParseInput validates form values and builds a Plant.
// The first invalid field is reported as a *ValidationError.
func ParseInput(in Input, today civil.Date) (Plant, error) {
	name, err := ParseName(in.Name)
	if err != nil {
		return Plant{}, err
	}
	water, err := ParseInterval("water_interval_days", in.WaterDays)
	if err != nil {
		return Plant{}, err
	}
	fertilize, err := ParseInterval("fertilize_interval_days", in.FertilizeDays)
	if err != nil {
		return Plant{}, err
	}
	lastWatered, err := ParseDate("last_watered", in.LastWatered, today)
	if err != nil {
		return Plant{}, err
	}
	lastFertilized, err := ParseDate("last_fertilized", in.LastFertilized, today)
	if err != nil {
		return Plant{}, err
	}

	p := Plant{
		Name:                  name,
		WaterIntervalDays:     water,
		FertilizeIntervalDays: fertilize,
		LastWatered:           lastWatered,
		LastFertilized:        lastFertilized,
	}
	if err := p.ValidateAt(today); err != nil {
		return Plant{}, err
	}
	return p, nil
}

// ParseName trims s and rejects empty names.
func ParseName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", &ValidationError{Field: "name", Err: errRequired}
	}
	return name, nil
}

// ParseInterval parses a positive whole number of days.
func ParseInterval(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: field, Err: errRequired}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: field, Err: fmt.Errorf("%q is not a whole number", s)}
	}
	if n < 1 {
		return 0, &ValidationError{Field: field, Err: fmt.Errorf("must be a positive number of days, got %d", n)}
	}
	if n > MaxIntervalDays {
		return 0, &ValidationError{Field: field, Err: fmt.Errorf("must be at most %d days, got %d", MaxIntervalDays, n)}
	}
	return n, nil
}

// ParseDate parses an optional YYYY-MM-DD date that must not be after today.
// An empty string yields nil.
func ParseDate(field, s string, today civil.Date) (*civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return nil, &ValidationError{Field: field, Err: fmt.Errorf("%q is not a valid date, use YYYY-MM-DD", s)}
	}
	if d.After(today) {
		return nil, &ValidationError{Field: field, Err: errFuture}
	}
	return &d, nil
}
