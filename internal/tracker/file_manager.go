package tracker

import (
	"os"

	json "github.com/goccy/go-json"

	"tickd/internal/models"
	"tickd/internal/providers"
	"tickd/internal/tracker/interfaces"
)

// FileManager persists the tracker state snapshot as a zstd-compressed
// JSON file, written atomically.
type FileManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string, state *models.TrackerState) error {
	jsonData, err := json.Marshal(state)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile reads a persisted snapshot. A missing file is not an
// error: (nil, nil) means first run.
func (f *FileManager) LoadFromFile(fileName string) (*models.TrackerState, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var state models.TrackerState
	if err := json.Unmarshal(decompressedData, &state); err != nil {
		return nil, err
	}
	if state.History == nil {
		state.History = []models.CycleRecord{}
	}
	return &state, nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
