package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tickd/internal/models"
	"tickd/internal/testutil"
)

func newTestFileManager(t *testing.T) *FileManager {
	compressor, err := NewZstdCompressor()
	assert.NoError(t, err)
	return NewFileManager(compressor, &testutil.MockLogger{})
}

func TestFileManagerSaveAndLoad(t *testing.T) {
	fm := newTestFileManager(t)
	defer fm.Close()
	fileName := filepath.Join(t.TempDir(), "state.bin")

	ticked := time.Date(2026, 3, 9, 22, 15, 0, 0, time.UTC).UnixMilli()
	state := &models.TrackerState{
		Mode:      "ramadan",
		TodayDate: "2026-03-10",
		History: []models.CycleRecord{
			{Date: "2026-03-08", Missed: true},
			{Date: "2026-03-09", TickedAt: &ticked},
		},
	}

	err := fm.SaveToFile(fileName, state)
	assert.NoError(t, err)

	loaded, err := fm.LoadFromFile(fileName)
	assert.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestFileManagerLoadMissingFile(t *testing.T) {
	fm := newTestFileManager(t)
	defer fm.Close()

	state, err := fm.LoadFromFile(filepath.Join(t.TempDir(), "missing.bin"))

	assert.NoError(t, err)
	assert.Nil(t, state)
}

func TestFileManagerLoadCorruptFile(t *testing.T) {
	fm := newTestFileManager(t)
	defer fm.Close()
	fileName := filepath.Join(t.TempDir(), "state.bin")
	assert.NoError(t, os.WriteFile(fileName, []byte("not a snapshot"), 0644))

	_, err := fm.LoadFromFile(fileName)

	assert.Error(t, err)
}

func TestFileManagerSaveLeavesNoTmpFile(t *testing.T) {
	fm := newTestFileManager(t)
	defer fm.Close()
	dir := t.TempDir()
	fileName := filepath.Join(dir, "state.bin")

	err := fm.SaveToFile(fileName, &models.TrackerState{Mode: "normal", History: []models.CycleRecord{}})
	assert.NoError(t, err)

	_, err = os.Stat(fileName + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManagerLoadNormalizesNilHistory(t *testing.T) {
	fm := newTestFileManager(t)
	defer fm.Close()
	fileName := filepath.Join(t.TempDir(), "state.bin")

	err := fm.SaveToFile(fileName, &models.TrackerState{Mode: "normal", TodayDate: "2026-03-10"})
	assert.NoError(t, err)

	loaded, err := fm.LoadFromFile(fileName)
	assert.NoError(t, err)
	assert.NotNil(t, loaded.History)
	assert.Empty(t, loaded.History)
}
