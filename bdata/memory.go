package bdata

import (
	"sync"
	"sync/atomic"

	"git.thinkinpower.net/bindb/mod"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var (
	memoryCreateOnce sync.Once
	memory           *MemoryDatabase
)

// MemoryDatabase is a write-once BIN table. It is populated by a single
// successful load and never changes afterwards, so Search needs no lock.
type MemoryDatabase struct {
	fs      afero.Fs
	mu      sync.Mutex
	loaded  atomic.Bool
	dataMap map[string]mod.Record
}

var _ BinDatabase = (*MemoryDatabase)(nil)

// NewMemoryDatabase returns an empty table reading its source from fs.
// A nil fs means the operating system filesystem.
func NewMemoryDatabase(fs afero.Fs) *MemoryDatabase {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &MemoryDatabase{fs: fs}
}

// Default returns the process-wide table.
func Default() *MemoryDatabase {
	memoryCreateOnce.Do(func() {
		memory = NewMemoryDatabase(afero.NewOsFs())
	})
	return memory
}

// Load populates the table from the CSV file at filepath. Errors are logged,
// not returned; a failed load leaves the table unloaded and Search keeps
// reporting ErrNotLoaded.
func (m *MemoryDatabase) Load(filepath string) {
	if err := m.TryLoad(filepath); err != nil {
		logger.Errorf("load bin data failed, error: %s", err)
	}
}

// TryLoad is Load with the failure returned to the caller. It is a no-op
// returning nil once the table is loaded.
func (m *MemoryDatabase) TryLoad(filepath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded.Load() {
		return nil
	}

	var (
		dataMap map[string]mod.Record
		skipped int
		err     error
	)
	if dataMap, skipped, err = read(m.fs, filepath); err != nil {
		return err
	}
	m.dataMap = dataMap
	m.loaded.Store(true)
	if skipped > 0 {
		logger.Warnf("bin data loaded with malformed rows skipped, records: %d, skipped: %d, filepath: %s",
			len(dataMap), skipped, filepath)
		return nil
	}
	logger.Infof("bin data loaded, records: %d, filepath: %s", len(dataMap), filepath)
	return nil
}

func (m *MemoryDatabase) Loaded() bool {
	return m.loaded.Load()
}

// Len is the number of distinct BINs in the table, 0 before loading.
func (m *MemoryDatabase) Len() int {
	if !m.loaded.Load() {
		return 0
	}
	return len(m.dataMap)
}

// Search validates bin and returns a copy of its record.
func (m *MemoryDatabase) Search(bin string) (mod.Record, error) {
	if !m.loaded.Load() {
		return NullRecord, ErrNotLoaded
	}
	if !ValidBin(bin) {
		return NullRecord, InvalidFormatError{Bin: bin}
	}
	if result, ok := m.dataMap[bin]; ok {
		return result, nil
	}
	return NullRecord, NotFoundError{Bin: bin}
}
