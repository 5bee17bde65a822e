package bdata

import "git.thinkinpower.net/bindb/mod"

const (
	binMinLength = 6
	binMaxLength = 8
)

var NullRecord mod.Record

type BinDatabase interface {
	Load(filepath string)
	TryLoad(filepath string) error
	Loaded() bool
	Search(bin string) (mod.Record, error)
}

// Load populates the process-wide table. See MemoryDatabase.Load.
func Load(filepath string) {
	Default().Load(filepath)
}

// Search queries the process-wide table. See MemoryDatabase.Search.
func Search(bin string) (mod.Record, error) {
	return Default().Search(bin)
}

// ValidBin reports whether bin is 6 to 8 ASCII digits. Nothing is trimmed.
func ValidBin(bin string) bool {
	if len(bin) < binMinLength || len(bin) > binMaxLength {
		return false
	}
	for i := 0; i < len(bin); i++ {
		if bin[i] < '0' || bin[i] > '9' {
			return false
		}
	}
	return true
}
