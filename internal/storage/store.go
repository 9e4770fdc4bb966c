// Package storage persists simulation runs: one directory per run
// holding the run metadata as JSON and the trajectory as a row-aligned
// CSV table keyed by time.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aholtz/demag/internal/m3tm"
	"github.com/aholtz/demag/internal/sim"
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

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Material  m3tm.Material      `json:"material"`
	InitTe    float64            `json:"init_te"`
	InitTph   float64            `json:"init_tph"`
	Fluence   float64            `json:"fluence"`
	FWHM      float64            `json:"fwhm"`
	GridStart float64            `json:"grid_start"`
	GridEnd   float64            `json:"grid_end"`
	Points    int                `json:"points"`
	Metrics   map[string]float64 `json:"metrics"`
	Measured  sim.Measurements   `json:"measured"`
}

// Trace is the stored trajectory: four parallel series, one row per
// snapshot.
type Trace struct {
	Times []float64
	Te    []float64
	Tph   []float64
	M     []float64
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("m3tm_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics
	meta.Measured = result.Measured

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "te", "tph", "m"}); err != nil {
		return "", err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'e', 9, 64),
			strconv.FormatFloat(result.Te[i], 'e', 9, 64),
			strconv.FormatFloat(result.Tph[i], 'e', 9, 64),
			strconv.FormatFloat(result.M[i], 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &Trace{}, nil
	}

	tr := &Trace{
		Times: make([]float64, 0, len(records)-1),
		Te:    make([]float64, 0, len(records)-1),
		Tph:   make([]float64, 0, len(records)-1),
		M:     make([]float64, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		tr.Times = append(tr.Times, vals[0])
		tr.Te = append(tr.Te, vals[1])
		tr.Tph = append(tr.Tph, vals[2])
		tr.M = append(tr.M, vals[3])
	}

	return tr, nil
}
