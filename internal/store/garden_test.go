package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/greenthumb/internal/plant"
)

// memPersister keeps the saved list in memory and can be told to fail.
type memPersister struct {
	saved   []plant.Plant
	saves   int
	failErr error
	loadErr error
}

func (m *memPersister) Load() ([]plant.Plant, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]plant.Plant{}, m.saved...), nil
}

func (m *memPersister) Save(plants []plant.Plant) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.saved = plants
	return nil
}

func names(plants []plant.Plant) []string {
	out := make([]string, len(plants))
	for i, p := range plants {
		out[i] = p.Name
	}
	return out
}

func fern() plant.Plant {
	return plant.Plant{Name: "Fern", WaterIntervalDays: 3, FertilizeIntervalDays: 30}
}

func TestGardenAdd(t *testing.T) {
	m := &memPersister{}
	g := NewGarden(m, nil, nil)

	require.NoError(t, g.Add(fern()))
	require.NoError(t, g.Add(plant.Plant{Name: "  Cactus ", WaterIntervalDays: 14, FertilizeIntervalDays: 60}))

	assert.Equal(t, []string{"Fern", "Cactus"}, names(g.Plants()))
	assert.Equal(t, []string{"Fern", "Cactus"}, names(m.saved))
	assert.Equal(t, 2, m.saves)
	assert.False(t, g.Dirty())
}

func TestGardenAddDuplicateLeavesListUnchanged(t *testing.T) {
	m := &memPersister{}
	g := NewGarden(m, nil, nil)
	require.NoError(t, g.Add(fern()))

	dup := fern()
	dup.WaterIntervalDays = 7
	err := g.Add(dup)

	require.ErrorIs(t, err, plant.ErrDuplicateName)
	assert.Equal(t, 1, g.Len())
	got, err := g.Get("Fern")
	require.NoError(t, err)
	assert.Equal(t, 3, got.WaterIntervalDays)
	assert.Equal(t, 1, m.saves)
}

func TestGardenAddRejectsInvalid(t *testing.T) {
	g := NewGarden(&memPersister{}, nil, nil)

	err := g.Add(plant.Plant{Name: "Fern", WaterIntervalDays: 0, FertilizeIntervalDays: 30})

	assert.True(t, plant.IsValidation(err))
	assert.Equal(t, 0, g.Len())
}

func TestGardenRecordCare(t *testing.T) {
	today := civil.Date{Year: 2024, Month: 1, Day: 4}
	m := &memPersister{}
	g := NewGarden(m, nil, nil)
	require.NoError(t, g.Add(fern()))

	require.NoError(t, g.RecordWatering("Fern", today))
	got, err := g.Get("Fern")
	require.NoError(t, err)
	require.NotNil(t, got.LastWatered)
	assert.Equal(t, today, *got.LastWatered)
	assert.Nil(t, got.LastFertilized)

	later := today.AddDays(2)
	require.NoError(t, g.RecordFertilizing("Fern", later))
	got, err = g.Get("Fern")
	require.NoError(t, err)
	require.NotNil(t, got.LastFertilized)
	assert.Equal(t, later, *got.LastFertilized)
	assert.Equal(t, today, *got.LastWatered)

	require.NoError(t, g.RecordCare("Fern", plant.Both, later.AddDays(1)))
	got, _ = g.Get("Fern")
	assert.Equal(t, later.AddDays(1), *got.LastWatered)
	assert.Equal(t, later.AddDays(1), *got.LastFertilized)
	assert.Equal(t, 4, m.saves)
}

func TestGardenRecordUnknownPlant(t *testing.T) {
	today := civil.Date{Year: 2024, Month: 1, Day: 4}
	m := &memPersister{}
	g := NewGarden(m, nil, nil)
	require.NoError(t, g.Add(fern()))

	assert.ErrorIs(t, g.RecordWatering("Rose", today), plant.ErrNotFound)
	assert.ErrorIs(t, g.RecordFertilizing("fern", today), plant.ErrNotFound)
	assert.Equal(t, 1, m.saves)
}

func TestGardenSetIntervals(t *testing.T) {
	g := NewGarden(&memPersister{}, nil, nil)
	require.NoError(t, g.Add(fern()))

	require.NoError(t, g.SetIntervals("Fern", 5, 45))
	got, _ := g.Get("Fern")
	assert.Equal(t, 5, got.WaterIntervalDays)
	assert.Equal(t, 45, got.FertilizeIntervalDays)

	err := g.SetIntervals("Fern", -1, 45)
	assert.True(t, plant.IsValidation(err))
	got, _ = g.Get("Fern")
	assert.Equal(t, 5, got.WaterIntervalDays)

	assert.ErrorIs(t, g.SetIntervals("Rose", 1, 1), plant.ErrNotFound)
}

func TestGardenDelete(t *testing.T) {
	m := &memPersister{}
	g := NewGarden(m, nil, nil)
	for _, name := range []string{"Fern", "Cactus", "Basil"} {
		require.NoError(t, g.Add(plant.Plant{Name: name, WaterIntervalDays: 1, FertilizeIntervalDays: 1}))
	}

	require.NoError(t, g.Delete("Cactus"))
	assert.Equal(t, []string{"Fern", "Basil"}, names(g.Plants()))
	assert.Equal(t, []string{"Fern", "Basil"}, names(m.saved))

	err := g.Delete("Cactus")
	assert.ErrorIs(t, err, plant.ErrNotFound)
	assert.Equal(t, []string{"Fern", "Basil"}, names(g.Plants()))
}

func TestGardenSearch(t *testing.T) {
	g := NewGarden(&memPersister{}, []plant.Plant{
		{Name: "Boston Fern", WaterIntervalDays: 3, FertilizeIntervalDays: 30},
		{Name: "Cactus", WaterIntervalDays: 14, FertilizeIntervalDays: 60},
		{Name: "Asparagus fern", WaterIntervalDays: 4, FertilizeIntervalDays: 30},
	}, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"fern", []string{"Boston Fern", "Asparagus fern"}},
		{"FERN", []string{"Boston Fern", "Asparagus fern"}},
		{"act", []string{"Cactus"}},
		{"", []string{"Boston Fern", "Cactus", "Asparagus fern"}},
		{"rose", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, names(g.Search(tt.query)))
		})
	}
}

func TestGardenReturnsCopies(t *testing.T) {
	today := civil.Date{Year: 2024, Month: 1, Day: 4}
	g := NewGarden(&memPersister{}, []plant.Plant{{Name: "Fern", WaterIntervalDays: 3, FertilizeIntervalDays: 30, LastWatered: plant.DateRef(today)}}, nil)

	got := g.Plants()
	got[0].Name = "Changed"
	got[0].LastWatered.Day = 1

	p, err := g.Get("Fern")
	require.NoError(t, err)
	assert.Equal(t, today, *p.LastWatered)
}

func TestGardenFailedSaveKeepsMutation(t *testing.T) {
	m := &memPersister{failErr: &SaveError{Path: "plants.json", Err: os.ErrPermission}}
	g := NewGarden(m, nil, nil)

	err := g.Add(fern())

	require.Error(t, err)
	assert.True(t, IsSaveError(err))
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, []string{"Fern"}, names(g.Plants()))
	assert.True(t, g.Dirty())

	m.failErr = nil
	require.NoError(t, g.Save())
	assert.False(t, g.Dirty())
	assert.Equal(t, []string{"Fern"}, names(m.saved))
}

func TestGardenWrapsForeignSaveErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	g := NewGarden(&memPersister{failErr: boom}, nil, nil)

	err := g.Add(fern())

	var se *SaveError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, boom)
}

func TestOpenLoadsExistingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "plants.json"))
	require.NoError(t, s.Save([]plant.Plant{fern()}))

	g, err := Open(s, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"Fern"}, names(g.Plants()))
}

func TestOpenCorruptFileFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	g, err := Open(New(path), nil)

	require.Error(t, err)
	assert.True(t, IsCorrupt(err))
	require.NotNil(t, g)
	assert.Equal(t, 0, g.Len())

	var corrupt *CorruptDataError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, path+BackupSuffix, corrupt.Backup)
	assert.NoError(t, corrupt.BackupErr)

	backup, rerr := os.ReadFile(path + BackupSuffix)
	require.NoError(t, rerr)
	assert.Equal(t, "{broken", string(backup))

	require.NoError(t, g.Add(fern()))
	reloaded, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Fern"}, names(reloaded))
}

func TestOpenOtherLoadErrors(t *testing.T) {
	boom := errors.New("permission denied")

	g, err := Open(&memPersister{loadErr: boom}, nil)

	assert.Nil(t, g)
	assert.ErrorIs(t, err, boom)
}

func TestOpenCorruptFileReportsFailedBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	require.NoError(t, os.Mkdir(path+BackupSuffix, 0755))

	g, err := Open(New(path), nil)

	require.NotNil(t, g)
	var corrupt *CorruptDataError
	require.ErrorAs(t, err, &corrupt)
	assert.Empty(t, corrupt.Backup)
	assert.Error(t, corrupt.BackupErr)

	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, "{broken", string(data))
}

func TestGardenAddLeavesFutureDateCheckToCaller(t *testing.T) {
	today := civil.Date{Year: 2024, Month: 1, Day: 4}
	p := fern()
	p.LastWatered = plant.DateRef(today.AddDays(3))

	g := NewGarden(&memPersister{}, nil, nil)
	require.NoError(t, g.Add(p))

	assert.True(t, plant.IsValidation(p.ValidateAt(today)))
}
