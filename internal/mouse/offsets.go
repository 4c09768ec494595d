package mouse

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smartmouse/smartmouse/internal/utils"
)

// OffsetPath is one recorded trajectory expressed as per-step deviations.
// X and Y always have the same, non-zero length.
type OffsetPath struct {
	X []float64
	Y []float64
}

func (o OffsetPath) Len() int {
	return len(o.X)
}

// Total returns the net displacement the offsets encode.
func (o OffsetPath) Total() (x, y float64) {
	for i := range o.X {
		x += o.X[i]
		y += o.Y[i]
	}
	return x, y
}

// OffsetData is the on-disk shape of the offset dataset:
//
//	{"12": {"N": [[[dx...], [dy...]], ...], "NE": [...], ...}, "18": {...}, ...}
type OffsetData map[string]map[string][][][]float64

// OffsetRepository holds recorded offset paths per (bucket, direction). It is
// never mutated after construction, so concurrent lookups need no locking.
type OffsetRepository struct {
	paths [len(Thresholds)][len(Directions)][]OffsetPath
	total int
}

// EmptyOffsets returns a repository in which every lookup misses.
func EmptyOffsets() *OffsetRepository {
	return &OffsetRepository{}
}

// NewOffsetRepository converts the raw dataset into a repository. Entries that
// cannot be used (unknown keys, malformed series) are skipped and reported in
// the returned error; the repository is usable either way.
func NewOffsetRepository(data OffsetData) (*OffsetRepository, error) {
	repo := &OffsetRepository{}
	var errs []error

	for bucketKey, byDirection := range data {
		bucket, ok := ParseBucket(bucketKey)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown distance threshold %q", bucketKey))
			continue
		}
		bi, _ := thresholdIndex(bucket)
		for dirKey, samples := range byDirection {
			dir, ok := ParseDirection(dirKey)
			if !ok {
				errs = append(errs, fmt.Errorf("threshold %s: unknown direction %q", bucketKey, dirKey))
				continue
			}
			for i, sample := range samples {
				path, err := offsetPathFrom(sample)
				if err != nil {
					errs = append(errs, fmt.Errorf("threshold %s direction %s sample %d: %w", bucketKey, dirKey, i, err))
					continue
				}
				repo.paths[bi][dir] = append(repo.paths[bi][dir], path)
				repo.total++
			}
		}
	}

	return repo, errors.Join(errs...)
}

func offsetPathFrom(sample [][]float64) (OffsetPath, error) {
	if len(sample) != 2 {
		return OffsetPath{}, fmt.Errorf("expected [dx, dy] pair, got %d series", len(sample))
	}
	if len(sample[0]) != len(sample[1]) {
		return OffsetPath{}, fmt.Errorf("dx has %d offsets, dy has %d", len(sample[0]), len(sample[1]))
	}
	if len(sample[0]) == 0 {
		return OffsetPath{}, errors.New("empty offset series")
	}
	return OffsetPath{X: sample[0], Y: sample[1]}, nil
}

// ParseOffsets decodes a JSON dataset. Each threshold, direction and sample is
// decoded on its own, so a sample with the wrong JSON types only drops itself.
// When the document itself is unreadable the result is an empty repository
// alongside the error.
func ParseOffsets(raw []byte) (*OffsetRepository, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return EmptyOffsets(), fmt.Errorf("error decoding offset data: %w", err)
	}

	data := make(OffsetData, len(doc))
	var errs []error
	for bucketKey, rawDirections := range doc {
		var byDirection map[string]json.RawMessage
		if err := json.Unmarshal(rawDirections, &byDirection); err != nil {
			errs = append(errs, fmt.Errorf("threshold %s: %w", bucketKey, err))
			continue
		}
		data[bucketKey] = make(map[string][][][]float64, len(byDirection))
		for dirKey, rawSamples := range byDirection {
			var samples []json.RawMessage
			if err := json.Unmarshal(rawSamples, &samples); err != nil {
				errs = append(errs, fmt.Errorf("threshold %s direction %s: %w", bucketKey, dirKey, err))
				continue
			}
			decoded := make([][][]float64, 0, len(samples))
			for i, rawSample := range samples {
				var sample [][]float64
				if err := json.Unmarshal(rawSample, &sample); err != nil {
					errs = append(errs, fmt.Errorf("threshold %s direction %s sample %d: %w", bucketKey, dirKey, i, err))
					continue
				}
				decoded = append(decoded, sample)
			}
			data[bucketKey][dirKey] = decoded
		}
	}

	repo, err := NewOffsetRepository(data)
	return repo, errors.Join(append(errs, err)...)
}

// LoadOffsets reads the dataset at path. It never returns a nil repository: a
// missing or broken file degrades to straight-line moves.
func LoadOffsets(path string) (*OffsetRepository, error) {
	raw, err := utils.GetJsonData(path)
	if err != nil {
		return EmptyOffsets(), fmt.Errorf("error loading offset data %s: %w", path, err)
	}
	return ParseOffsets(raw)
}

// Lookup picks one of the recorded paths for the class uniformly at random.
func (r *OffsetRepository) Lookup(bucket Bucket, dir Direction, rng Rand) (OffsetPath, bool) {
	bi, ok := thresholdIndex(bucket)
	if r == nil || !ok || int(dir) >= len(Directions) {
		return OffsetPath{}, false
	}
	candidates := r.paths[bi][dir]
	if len(candidates) == 0 {
		return OffsetPath{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// Count returns how many samples exist for a class.
func (r *OffsetRepository) Count(bucket Bucket, dir Direction) int {
	bi, ok := thresholdIndex(bucket)
	if r == nil || !ok || int(dir) >= len(Directions) {
		return 0
	}
	return len(r.paths[bi][dir])
}

// Len is the total number of stored samples.
func (r *OffsetRepository) Len() int {
	if r == nil {
		return 0
	}
	return r.total
}
