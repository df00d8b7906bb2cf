package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/greenthumb/internal/plant"
	"github.com/nibzard/greenthumb/internal/store"
)

var today = civil.Date{Year: 2024, Month: 1, Day: 4}

func samplePlants() []plant.Plant {
	return []plant.Plant{
		{Name: "Fern", WaterIntervalDays: 3, FertilizeIntervalDays: 30, LastWatered: plant.DateRef(civil.Date{Year: 2024, Month: 1, Day: 1})},
		{Name: "Cactus", WaterIntervalDays: 14, FertilizeIntervalDays: 60, LastWatered: plant.DateRef(civil.Date{Year: 2024, Month: 1, Day: 2}), LastFertilized: plant.DateRef(civil.Date{Year: 2023, Month: 12, Day: 20})},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xlsx", FormatXLSX, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("backup/plants.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("plants")
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	rows := Rows(samplePlants(), today)
	require.Len(t, rows, 2)

	fern := rows[0]
	assert.Equal(t, "Fern", fern.Name)
	assert.Equal(t, "2024-01-01", fern.LastWatered)
	assert.Empty(t, fern.LastFertilized)
	assert.Equal(t, "2024-01-04", fern.NextWater)
	assert.Equal(t, "now", fern.NextFertilize)
	assert.True(t, fern.NeedsWater)
	assert.True(t, fern.NeedsFertilize)

	cactus := rows[1]
	assert.False(t, cactus.NeedsWater)
	assert.False(t, cactus.NeedsFertilize)
	assert.Equal(t, "2024-01-16", cactus.NextWater)
}

func TestWriteJSONMatchesDataFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, samplePlants(), today))

	plants, err := store.Decode("export.json", buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, plants, 2)
	assert.Equal(t, "Cactus", plants[1].Name)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, samplePlants(), today))

	var doc struct {
		Plants []Row `yaml:"plants"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Plants, 2)
	assert.Equal(t, "Fern", doc.Plants[0].Name)
	assert.Equal(t, 3, doc.Plants[0].WaterEveryDays)
	assert.Equal(t, "2024-01-01", doc.Plants[0].LastWatered)
	assert.True(t, doc.Plants[0].NeedsWater)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.xlsx")
	require.NoError(t, WriteFile(path, FormatXLSX, samplePlants(), today))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Fern", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	assert.Equal(t, "yes", rows[1][7])
	assert.Equal(t, "Cactus", rows[2][0])
	assert.Equal(t, "no", rows[2][7])
}

func TestWriteEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil, today))
	assert.Equal(t, "[]\n", buf.String())
}
