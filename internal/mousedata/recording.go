// Package mousedata turns raw recorder sessions into the offset dataset the
// mouse package samples from, and keeps that dataset clean.
package mousedata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	cp "github.com/otiai10/copy"
	"github.com/smartmouse/smartmouse/internal/mouse"
	"github.com/smartmouse/smartmouse/internal/utils"
	"golang.org/x/sync/errgroup"
)

// Recording is one recorded human movement as the recorder stores it.
type Recording struct {
	Distance    float64     `json:"distance"`
	AngleDeg    float64     `json:"angle_deg"`
	Orientation string      `json:"orientation,omitempty"`
	Offsets     [][]float64 `json:"offsets"`
}

// Recordings groups recorder entries by stringified distance threshold.
type Recordings map[string][]Recording

// NewRecording builds an entry from the raw cursor positions sampled between
// the start and end of a movement.
func NewRecording(positions []mouse.Point) Recording {
	if len(positions) == 0 {
		return Recording{Offsets: [][]float64{{}, {}}}
	}
	start, end := positions[0], positions[len(positions)-1]
	dx, dy := float64(end.X-start.X), float64(end.Y-start.Y)
	angle := math.Atan2(dy, dx) * 180 / math.Pi

	return Recording{
		Distance:    math.Hypot(dx, dy),
		AngleDeg:    angle,
		Orientation: mouse.ClassifyAngle(angle).String(),
		Offsets:     PathToOffsets(positions),
	}
}

// Add files r under the threshold its distance belongs to.
func (r Recordings) Add(rec Recording) {
	key := mouse.BucketFor(rec.Distance).String()
	r[key] = append(r[key], rec)
}

// PathToOffsets converts consecutive positions into per-step deltas, skipping
// steps where the cursor did not move.
func PathToOffsets(positions []mouse.Point) [][]float64 {
	xs, ys := []float64{}, []float64{}
	for i := 1; i < len(positions); i++ {
		d := positions[i].Sub(positions[i-1])
		if d.X != 0 || d.Y != 0 {
			xs = append(xs, float64(d.X))
			ys = append(ys, float64(d.Y))
		}
	}
	return [][]float64{xs, ys}
}

// ReadRecordings reads a single recorder session file.
func ReadRecordings(path string) (Recordings, error) {
	raw, err := utils.GetJsonData(path)
	if err != nil {
		return nil, fmt.Errorf("error reading recordings %s: %w", path, err)
	}
	var recs Recordings
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("error decoding recordings %s: %w", path, err)
	}
	return recs, nil
}

// ReadTraces reads a file of raw cursor traces, one list of sampled positions
// per movement, and files each trace under its threshold.
func ReadTraces(path string) (Recordings, error) {
	raw, err := utils.GetJsonData(path)
	if err != nil {
		return nil, fmt.Errorf("error reading traces %s: %w", path, err)
	}
	var traces [][]mouse.Point
	if err := json.Unmarshal(raw, &traces); err != nil {
		return nil, fmt.Errorf("error decoding traces %s: %w", path, err)
	}

	recs := make(Recordings)
	for _, trace := range traces {
		if len(trace) < 2 {
			continue
		}
		recs.Add(NewRecording(trace))
	}
	return recs, nil
}

// LoadRecordings reads several session files concurrently and merges them in
// the order given.
func LoadRecordings(ctx context.Context, paths ...string) (Recordings, error) {
	return loadAll(ctx, ReadRecordings, paths)
}

// LoadTraces is LoadRecordings for raw trace files.
func LoadTraces(ctx context.Context, paths ...string) (Recordings, error) {
	return loadAll(ctx, ReadTraces, paths)
}

func loadAll(ctx context.Context, read func(string) (Recordings, error), paths []string) (Recordings, error) {
	results := make([]Recordings, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := read(path)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(Recordings)
	for _, recs := range results {
		for key, entries := range recs {
			merged[key] = append(merged[key], entries...)
		}
	}
	return merged, nil
}

// ReadDataset reads an offset dataset file.
func ReadDataset(path string) (mouse.OffsetData, error) {
	raw, err := utils.GetJsonData(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset %s: %w", path, err)
	}
	var data mouse.OffsetData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("error decoding dataset %s: %w", path, err)
	}
	return data, nil
}

// WriteDataset writes data as indented JSON. An existing file is backed up
// first.
func WriteDataset(path string, data mouse.OffsetData) error {
	if _, err := os.Stat(path); err == nil {
		if _, err := Backup(path); err != nil {
			return err
		}
	}

	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding dataset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating dataset folder: %w", err)
	}
	if err := os.WriteFile(path, text, 0644); err != nil {
		return fmt.Errorf("error writing dataset %s: %w", path, err)
	}
	return nil
}

// Backup copies path aside with a timestamp suffix and returns the copy's path.
func Backup(path string) (string, error) {
	dest := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405.000"))
	if err := cp.Copy(path, dest); err != nil {
		return "", fmt.Errorf("error backing up %s: %w", path, err)
	}
	return dest, nil
}
