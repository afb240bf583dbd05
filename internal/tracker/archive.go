package tracker

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"tickd/internal/models"
	"tickd/internal/providers"
	"tickd/internal/structures"
	"tickd/internal/tracker/interfaces"
)

const archiveFileName = "history.cold.zst"

// ArchiveEntry is one cycle record evicted past the rolling history
// window, with the instant it left the window.
type ArchiveEntry struct {
	Record     models.CycleRecord `json:"record"`
	ArchivedAt time.Time          `json:"archived_at"`
}

type archiveFile struct {
	Entries []ArchiveEntry `json:"entries"`
}

// Archive retains cycle records evicted from the rolling history window.
// Write-only: archived cycles are never read back by the app. Append
// buffers in memory; Flush is the only method that touches disk.
type Archive struct {
	mu         sync.Mutex
	dir        string
	ttl        time.Duration
	pending    []ArchiveEntry
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewArchive(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Archive {
	if conf.Persistence.ArchiveDir == "" {
		logger.Infof(providers.TypeApp, "History archive disabled")
	}
	return &Archive{
		dir:        conf.Persistence.ArchiveDir,
		ttl:        conf.Persistence.ArchiveTTL,
		compressor: compressor,
		logger:     logger,
	}
}

// Append buffers evicted records for the next Flush. No disk I/O.
func (a *Archive) Append(records []models.CycleRecord) {
	if a.dir == "" || len(records) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	now := time.Now()
	for _, r := range records {
		a.pending = append(a.pending, ArchiveEntry{Record: r, ArchivedAt: now})
	}
}

// Flush merges pending entries into the archive file, drops entries older
// than the TTL and writes the result atomically.
func (a *Archive) Flush() error {
	if a.dir == "" {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.pending) == 0 && a.ttl <= 0 {
		return nil
	}

	af := a.loadFromDisk()
	af.Entries = append(af.Entries, a.pending...)

	if a.ttl > 0 {
		now := time.Now()
		kept := af.Entries[:0]
		for _, e := range af.Entries {
			if now.Sub(e.ArchivedAt) <= a.ttl {
				kept = append(kept, e)
			}
		}
		af.Entries = kept
	}

	if len(af.Entries) == 0 {
		os.Remove(a.filePath())
		a.pending = nil
		return nil
	}

	if err := a.writeToDisk(af); err != nil {
		return err
	}
	a.pending = nil
	return nil
}

func (a *Archive) filePath() string {
	return filepath.Join(a.dir, archiveFileName)
}

func (a *Archive) loadFromDisk() *archiveFile {
	data, err := os.ReadFile(a.filePath())
	if err != nil {
		if !os.IsNotExist(err) {
			a.logger.Errorf(providers.TypeApp, "Failed to read archive file: %s", err)
		}
		return &archiveFile{}
	}

	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to decompress archive file: %s", err)
		return &archiveFile{}
	}

	var af archiveFile
	if err := json.Unmarshal(decompressed, &af); err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to parse archive file: %s", err)
		return &archiveFile{}
	}
	return &af
}

func (a *Archive) writeToDisk(af *archiveFile) error {
	jsonData, err := json.Marshal(af)
	if err != nil {
		return err
	}

	compressed, err := a.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return err
	}

	tmpFile := a.filePath() + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, a.filePath())
}
