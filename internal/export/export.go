// Package export writes the plant list to a file in JSON, YAML or XLSX.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/greenthumb/internal/plant"
	"github.com/nibzard/greenthumb/internal/reminder"
	"github.com/nibzard/greenthumb/internal/store"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet that holds plants in XLSX exports.
const SheetName = "Plants"

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q (valid: json, yaml, xlsx)", s)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer export format from %q, use -format", path)
	}
	return ParseFormat(ext)
}

// Row is one plant as written to YAML and XLSX exports, including the
// computed schedule for the export date.
type Row struct {
	Name           string `yaml:"name"`
	WaterEveryDays int    `yaml:"water_every_days"`
	FertilizeEvery int    `yaml:"fertilize_every_days"`
	LastWatered    string `yaml:"last_watered,omitempty"`
	LastFertilized string `yaml:"last_fertilized,omitempty"`
	NextWater      string `yaml:"next_water"`
	NextFertilize  string `yaml:"next_fertilize"`
	NeedsWater     bool   `yaml:"needs_water"`
	NeedsFertilize bool   `yaml:"needs_fertilize"`
}

// Rows builds export rows for plants as of today.
func Rows(plants []plant.Plant, today civil.Date) []Row {
	rows := make([]Row, 0, len(plants))
	for _, p := range plants {
		flags := reminder.Evaluate(p, today)
		rows = append(rows, Row{
			Name:           p.Name,
			WaterEveryDays: p.WaterIntervalDays,
			FertilizeEvery: p.FertilizeIntervalDays,
			LastWatered:    dateString(p.LastWatered),
			LastFertilized: dateString(p.LastFertilized),
			NextWater:      nextString(p.WaterIntervalDays, p.LastWatered),
			NextFertilize:  nextString(p.FertilizeIntervalDays, p.LastFertilized),
			NeedsWater:     flags.NeedsWater,
			NeedsFertilize: flags.NeedsFertilize,
		})
	}
	return rows
}

// Write renders plants to w in the given format.
func Write(w io.Writer, format Format, plants []plant.Plant, today civil.Date) error {
	switch format {
	case FormatJSON:
		data, err := store.Encode(plants)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		return writeYAML(w, Rows(plants, today))
	case FormatXLSX:
		return writeXLSX(w, Rows(plants, today))
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteFile renders plants to path, replacing any existing file.
func WriteFile(path string, format Format, plants []plant.Plant, today civil.Date) error {
	var buf bytes.Buffer
	if err := Write(&buf, format, plants, today); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, rows []Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]Row{"plants": rows}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

var xlsxHeader = []any{
	"Name", "Water every (days)", "Fertilize every (days)",
	"Last watered", "Last fertilized",
	"Next water", "Next fertilize", "Needs water", "Needs fertilize",
}

func writeXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.Name, r.WaterEveryDays, r.FertilizeEvery,
			r.LastWatered, r.LastFertilized,
			r.NextWater, r.NextFertilize, yesNo(r.NeedsWater), yesNo(r.NeedsFertilize),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "I", 16); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func dateString(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func nextString(interval int, last *civil.Date) string {
	next, ok := reminder.NextDue(interval, last)
	if !ok {
		return "now"
	}
	return next.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
