package bdata

import (
	"math/rand"
	"testing"

	"github.com/spf13/afero"
)

var sampleBins = []string{"100100", "100101", "100102", "100103", "100104", "100105"}

func newBenchDatabase(b *testing.B) *MemoryDatabase {
	b.Helper()
	db := NewMemoryDatabase(nil)
	if err := db.TryLoad(sampleBinData); err != nil {
		b.Fatalf("load bin data fail %v\n", err)
	}
	return db
}

func BenchmarkSearchSameBin(b *testing.B) {
	db := newBenchDatabase(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = db.Search("100101")
	}
}

func BenchmarkSearchRandomBin(b *testing.B) {
	db := newBenchDatabase(b)
	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = db.Search(sampleBins[rng.Intn(len(sampleBins))])
	}
}

func BenchmarkSearchInvalidBin(b *testing.B) {
	db := newBenchDatabase(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = db.Search("xyzabc")
	}
}

func BenchmarkSearchNotFound(b *testing.B) {
	db := newBenchDatabase(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = db.Search("000000")
	}
}

func BenchmarkSearchParallel(b *testing.B) {
	db := newBenchDatabase(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = db.Search("100101")
		}
	})
}

func BenchmarkLoadCold(b *testing.B) {
	content, err := afero.ReadFile(afero.NewOsFs(), sampleBinData)
	if err != nil {
		b.Fatalf("read bin data fail %v\n", err)
	}
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/bin_data.csv", content, 0644); err != nil {
		b.Fatalf("write bin data fail %v\n", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		db := NewMemoryDatabase(fs)
		db.Load("/bin_data.csv")
		if !db.Loaded() {
			b.Fatal("bin data not loaded")
		}
	}
}
