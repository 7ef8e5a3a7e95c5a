package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// Store keeps headless run reports, one directory per run.
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
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	TimeScale float64            `json:"time_scale"`
	Ordering  string             `json:"ordering"`
	Steps     int                `json:"steps"`
	SimTime   float64            `json:"sim_time"`
	Anchor    string             `json:"anchor,omitempty"`
	Bodies    []string           `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

// Save writes the run metadata and every body's trajectory. Trajectory rows
// are indexed by step; row i holds the positions after step i+1.
func (s *Store) Save(name string, cfg sim.Config, bodies []*physics.Body, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		TimeScale: cfg.TimeScale,
		Ordering:  cfg.Ordering.String(),
		Steps:     result.StepsTaken,
		SimTime:   result.SimTime,
		Metrics:   make(map[string]float64, len(result.Metrics)),
	}
	for k, v := range result.Metrics {
		// encoding/json rejects NaN and Inf
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		meta.Metrics[k] = v
	}
	if a := physics.Anchor(bodies); a != nil {
		meta.Anchor = a.Name
	}
	for _, b := range bodies {
		meta.Bodies = append(meta.Bodies, b.Name)
	}
	for _, e := range result.Errors {
		meta.Errors = append(meta.Errors, e.Error())
	}

	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeTrajectories(filepath.Join(runDir, "trajectories.csv"), bodies, cfg.TimeScale); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeInto(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectories(path string, bodies []*physics.Body, timeScale float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeInto(f, &err)

	w := csv.NewWriter(f)

	header := []string{"time"}
	rows := 0
	for _, b := range bodies {
		header = append(header, b.Name+"_x", b.Name+"_y")
		rows = max(rows, len(b.Trajectory()))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		row := []string{strconv.FormatFloat(float64(i+1)*timeScale, 'f', 0, 64)}
		for _, b := range bodies {
			path := b.Trajectory()
			if i >= len(path) {
				row = append(row, "", "")
				continue
			}
			row = append(row,
				strconv.FormatFloat(path[i].X, 'g', -1, 64),
				strconv.FormatFloat(path[i].Y, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// closeInto closes c and reports its error through err unless err already
// holds one.
func closeInto(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// List returns saved runs, oldest first. Unreadable entries are skipped.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadDistances reads the trajectory file of a run and returns, for the
// named body, its distance to the anchor body at every saved step.
func (s *Store) LoadDistances(runID, body, anchor string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectories.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty trajectory file", runID)
	}

	bx, by := -1, -1
	ax, ay := -1, -1
	for i, h := range records[0] {
		switch h {
		case body + "_x":
			bx = i
		case body + "_y":
			by = i
		case anchor + "_x":
			ax = i
		case anchor + "_y":
			ay = i
		}
	}
	if bx < 0 || by < 0 {
		return nil, fmt.Errorf("run %s: no body %q", runID, body)
	}
	if ax < 0 || ay < 0 {
		return nil, fmt.Errorf("run %s: no body %q", runID, anchor)
	}

	distances := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		vals := make([]float64, 4)
		ok := true
		for k, col := range []int{bx, by, ax, ay} {
			v, err := strconv.ParseFloat(rec[col], 64)
			if err != nil {
				ok = false
				break
			}
			vals[k] = v
		}
		if !ok {
			continue
		}
		dx, dy := vals[0]-vals[2], vals[1]-vals[3]
		distances = append(distances, r2.Norm(r2.Vec{X: dx, Y: dy}))
	}
	return distances, nil
}
