package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/greenthumb/internal/plant"
)

// BenchmarkLoad benchmarks data file loading and validation.
func BenchmarkLoad(b *testing.B) {
	content := `[
  {"name": "Fern", "water_interval_days": 3, "fertilize_interval_days": 30, "last_watered": "2024-01-01", "last_fertilized": null},
  {"name": "Cactus", "water_interval_days": 14, "fertilize_interval_days": 60, "last_watered": null, "last_fertilized": null},
  {"name": "Basil", "water_interval_days": 1, "fertilize_interval_days": 14, "last_watered": "2024-01-03", "last_fertilized": "2023-12-30"}
]`
	path := filepath.Join(b.TempDir(), "plants.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	s := New(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Load(); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkLoadLarge benchmarks loading a file with 100 plants.
func BenchmarkLoadLarge(b *testing.B) {
	entries := make([]string, 0, 100)
	for i := 1; i <= 100; i++ {
		watered := "null"
		if i%3 != 0 {
			watered = fmt.Sprintf(`"2024-01-%02d"`, i%28+1)
		}
		entries = append(entries, fmt.Sprintf(
			`{"name": "Plant %03d", "water_interval_days": %d, "fertilize_interval_days": %d, "last_watered": %s, "last_fertilized": null}`,
			i, i%7+1, i%30+1, watered))
	}
	content := "[" + strings.Join(entries, ",") + "]"

	path := filepath.Join(b.TempDir(), "plants.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		b.Fatalf("Failed to create test file: %v", err)
	}
	s := New(path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Load(); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkSave benchmarks saving with 2-space indentation.
func BenchmarkSave(b *testing.B) {
	plants := []plant.Plant{
		{Name: "Fern", WaterIntervalDays: 3, FertilizeIntervalDays: 30, LastWatered: date(2024, 1, 1)},
		{Name: "Cactus", WaterIntervalDays: 14, FertilizeIntervalDays: 60},
	}
	s := New(filepath.Join(b.TempDir(), "plants.json"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Save(plants); err != nil {
			b.Fatalf("Save failed: %v", err)
		}
	}
}
