// Package store persists sampling runs and sweep results under a base
// directory, one subdirectory per run with JSON metadata and CSV data.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/qplex/atombeam/internal/beam"
	"github.com/qplex/atombeam/internal/sweep"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one persisted run.
type RunMetadata struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // "sample" or "sweep"
	Atom      string    `json:"atom"`
	Timestamp time.Time `json:"timestamp"`
	Seed      uint64    `json:"seed"`
	Count     int       `json:"count"`
	Rate      float64   `json:"rate,omitempty"`
}

// SaveCloud persists an initial phase-space cloud as cloud.csv plus
// metadata, returning the run ID.
func (s *Store) SaveCloud(atom string, seed uint64, cloud beam.Cloud) (string, error) {
	runID := fmt.Sprintf("sample_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      "sample",
		Atom:      atom,
		Timestamp: time.Now(),
		Seed:      seed,
		Count:     len(cloud),
	}
	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "cloud.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "vx", "vy", "vz"}); err != nil {
		return "", err
	}
	row := make([]string, 6)
	for _, st := range cloud {
		for i, v := range st {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// SaveSweep persists a detuning scan as rates.csv plus metadata.
func (s *Store) SaveSweep(atom string, seed uint64, count int, points []sweep.Point) (string, error) {
	runID := fmt.Sprintf("sweep_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      "sweep",
		Atom:      atom,
		Timestamp: time.Now(),
		Seed:      seed,
		Count:     count,
	}
	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "rates.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"detuning", "rate"}); err != nil {
		return "", err
	}
	for _, p := range points {
		err := w.Write([]string{
			strconv.FormatFloat(p.Detuning, 'g', -1, 64),
			strconv.FormatFloat(p.Rate, 'g', -1, 64),
		})
		if err != nil {
			return "", err
		}
	}
	return runID, nil
}

// List returns the metadata of every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads one run's metadata by ID.
func (s *Store) Load(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// LoadSweep reads a stored scan's points back from rates.csv.
func (s *Store) LoadSweep(runID string) ([]sweep.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "rates.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("store: empty rates file for %s", runID)
	}

	points := make([]sweep.Point, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 2 {
			return nil, fmt.Errorf("store: malformed rates row %v", rec)
		}
		det, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		rate, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, err
		}
		points = append(points, sweep.Point{Detuning: det, Rate: rate})
	}
	return points, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
