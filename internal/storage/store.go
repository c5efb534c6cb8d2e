package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/verletsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	snapshotFile = "snapshot.json"
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
	Scene     string             `json:"scene"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Substeps  int                `json:"substeps"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Frames    int                `json:"frames"`
	FramesRun int                `json:"frames_run"`
	GravityX  float64            `json:"gravity_x"`
	GravityY  float64            `json:"gravity_y"`
	Stiffness float64            `json:"stiffness"`
	Points    int                `json:"points"`
	Edges     int                `json:"edges"`
	Metrics   map[string]float64 `json:"metrics"`
	Errors    []string           `json:"errors,omitempty"`
}

// Series is the per-frame metric table of a run.
type Series struct {
	Names  []string
	Frames []int
	Values map[string][]float64
}

// Save writes a run directory holding metadata.json, frames.csv and, when
// the result carries one, snapshot.json. Fields of meta that the result
// knows better (id, timestamp, counts, metrics) are filled in here.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID, runDir, err := s.newRunDir(meta.Scene)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.FramesRun = result.FramesRun
	meta.Errors = nil
	for _, e := range result.Errors {
		meta.Errors = append(meta.Errors, e.Error())
	}
	var dropped []string
	meta.Metrics, dropped = finiteMetrics(result.Metrics)
	for _, name := range dropped {
		meta.Errors = append(meta.Errors, fmt.Sprintf("metric %s is not finite, not stored", name))
	}
	snapshot := result.Snapshot
	if snapshot != nil {
		meta.Points = len(snapshot.Points)
		meta.Edges = len(snapshot.Edges)
		if !snapshotFinite(snapshot) {
			meta.Errors = append(meta.Errors, "snapshot holds non-finite coordinates, not stored")
			snapshot = nil
		}
	}

	if err := writeRun(runDir, meta, result, snapshot); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *sim.Result, snapshot *sim.Snapshot) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result); err != nil {
		return err
	}
	if snapshot != nil {
		return writeJSON(filepath.Join(runDir, snapshotFile), snapshot)
	}
	return nil
}

// finiteMetrics copies m without NaN or infinite entries, which
// encoding/json refuses. The names of dropped entries come back sorted.
func finiteMetrics(m map[string]float64) (map[string]float64, []string) {
	out := make(map[string]float64, len(m))
	var dropped []string
	for name, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			dropped = append(dropped, name)
			continue
		}
		out[name] = v
	}
	sort.Strings(dropped)
	return out, dropped
}

func snapshotFinite(s *sim.Snapshot) bool {
	ok := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}
	for _, p := range s.Points {
		if !ok(p.X, p.Y) {
			return false
		}
	}
	for _, e := range s.Edges {
		if !ok(e.RestLength, e.Length, e.Stiffness) {
			return false
		}
	}
	return ok(s.Width, s.Height)
}

func (s *Store) newRunDir(scene string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}

	base := fmt.Sprintf("%s_%d", scene, time.Now().Unix())
	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

var createFile = os.Create

func writeJSON(path string, v any) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, result *sim.Result) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := w.Write(append([]string{"frame"}, names...)); err != nil {
		return err
	}

	for i := 0; i < result.FramesRun; i++ {
		row := []string{strconv.Itoa(i)}
		for _, name := range names {
			val := 0.0
			if series := result.Series[name]; i < len(series) {
				val = series[i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	series := &Series{Values: make(map[string][]float64)}
	if len(records) == 0 {
		return series, nil
	}

	series.Names = append(series.Names, records[0][1:]...)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		series.Frames = append(series.Frames, frame)

		for j, name := range series.Names {
			val := 0.0
			if j+1 < len(record) {
				val, _ = strconv.ParseFloat(record[j+1], 64)
			}
			series.Values[name] = append(series.Values[name], val)
		}
	}

	return series, nil
}

func (s *Store) LoadSnapshot(runID string) (*sim.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, snapshotFile))
	if err != nil {
		return nil, err
	}

	var snap sim.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &snap, nil
}
