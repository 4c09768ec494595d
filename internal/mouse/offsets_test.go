package mouse

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestLoadOffsets(t *testing.T) {
	repo, err := LoadOffsets(filepath.Join("testdata", "mousedata.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", repo.Len())
	}
	if n := repo.Count(130, North); n != 2 {
		t.Errorf("expected 2 samples for (130, N), got %d", n)
	}
	if n := repo.Count(500, East); n != 1 {
		t.Errorf("expected 1 sample for (500, E), got %d", n)
	}
}

func TestLoadOffsetsMissingFile(t *testing.T) {
	repo, err := LoadOffsets(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if repo == nil || repo.Len() != 0 {
		t.Fatalf("expected an empty repository, got %v", repo)
	}
}

func TestParseOffsetsMalformed(t *testing.T) {
	repo, err := ParseOffsets([]byte(`{"12": [1, 2, 3]`))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if repo.Len() != 0 {
		t.Errorf("expected empty repository, got %d samples", repo.Len())
	}
}

func TestParseOffsetsSkipsMistypedSample(t *testing.T) {
	raw := []byte(`{
		"12": {"E": [[[1, 2], [3, 4]], [["x", 2], [3, 4]]], "N": [[[0], [5]]]},
		"18": "not an object",
		"26": {"S": {"not": "a list"}, "W": [[[-9], [1]]]}
	}`)

	repo, err := ParseOffsets(raw)
	if err == nil {
		t.Fatal("expected the mistyped entries to be reported")
	}
	if repo.Len() != 3 {
		t.Fatalf("expected 3 usable samples, got %d", repo.Len())
	}
	for _, tt := range []struct {
		bucket Bucket
		dir    Direction
		want   int
	}{
		{12, East, 1},
		{12, North, 1},
		{26, West, 1},
		{26, South, 0},
	} {
		if n := repo.Count(tt.bucket, tt.dir); n != tt.want {
			t.Errorf("(%d, %s): %d samples, want %d", tt.bucket, tt.dir, n, tt.want)
		}
	}
}

func TestLookupNonThresholdBucket(t *testing.T) {
	repo := mustOffsets(OffsetData{"18": {"E": {{{5}, {0}}}}})

	if _, ok := repo.Lookup(18, East, fixedRand{0}); !ok {
		t.Fatal("expected a hit for (18, E)")
	}
	for _, b := range []Bucket{13, 17, 0, 501} {
		if _, ok := repo.Lookup(b, East, fixedRand{0}); ok {
			t.Errorf("bucket %d is not a threshold and should miss", b)
		}
		if n := repo.Count(b, East); n != 0 {
			t.Errorf("bucket %d: count %d, want 0", b, n)
		}
	}
}

func TestNewOffsetRepositorySkipsBadEntries(t *testing.T) {
	data := OffsetData{
		"12": {
			"E": {
				{{1, 2}, {3, 4}},
				{{1, 2, 3}, {3, 4}},
				{{}, {}},
				{{1}},
			},
			"UP": {{{1}, {1}}},
		},
		"13": {"E": {{{1}, {1}}}},
	}

	repo, err := NewOffsetRepository(data)
	if err == nil {
		t.Fatal("expected diagnostics for the bad entries")
	}
	if repo.Len() != 1 {
		t.Fatalf("expected only the valid sample to load, got %d", repo.Len())
	}
	path, ok := repo.Lookup(12, East, fixedRand{})
	if !ok || path.Len() != 2 {
		t.Fatalf("lookup returned %v, %v", path, ok)
	}
}

func TestLookupEverySlot(t *testing.T) {
	repo, err := LoadOffsets(filepath.Join("testdata", "mousedata.json"))
	if err != nil {
		t.Fatal(err)
	}
	rng := NewRand(1)

	for _, b := range Thresholds {
		for _, d := range Directions {
			path, ok := repo.Lookup(b, d, rng)
			if !ok {
				continue
			}
			if path.Len() == 0 || len(path.X) != len(path.Y) {
				t.Errorf("(%d, %s): series lengths %d/%d", b, d, len(path.X), len(path.Y))
			}
		}
	}
}

func TestLookupEmpty(t *testing.T) {
	repo := EmptyOffsets()
	for _, b := range Thresholds {
		for _, d := range Directions {
			if _, ok := repo.Lookup(b, d, fixedRand{}); ok {
				t.Fatalf("empty repository returned a sample for (%d, %s)", b, d)
			}
		}
	}
}

func TestLookupUniform(t *testing.T) {
	repo := mustOffsets(OffsetData{
		"58": {"S": {
			{{1}, {1}},
			{{2}, {2}},
		}},
	})

	if p, _ := repo.Lookup(58, South, fixedRand{v: 0}); p.X[0] != 1 {
		t.Errorf("low draw picked %v", p.X)
	}
	if p, _ := repo.Lookup(58, South, fixedRand{v: 0.99}); p.X[0] != 2 {
		t.Errorf("high draw picked %v", p.X)
	}
}

func TestLookupConcurrent(t *testing.T) {
	repo, _ := LoadOffsets(filepath.Join("testdata", "mousedata.json"))
	rng := NewRand(7)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if _, ok := repo.Lookup(130, North, rng); !ok {
					t.Error("lookup missed a populated class")
					return
				}
			}
		}()
	}
	wg.Wait()
}
