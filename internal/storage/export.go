package storage

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/verletsim/internal/sim"
)

type ExportData struct {
	Metadata RunMetadata          `json:"metadata"`
	Frames   []int                `json:"frames"`
	Series   map[string][]float64 `json:"series"`
	Snapshot *sim.Snapshot        `json:"snapshot,omitempty"`
}

// Export gathers everything stored for a run. A missing snapshot is not an
// error; runs saved without one simply export without it.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}
	snap, _ := s.LoadSnapshot(runID)

	return &ExportData{
		Metadata: *meta,
		Frames:   frames.Frames,
		Series:   frames.Values,
		Snapshot: snap,
	}, nil
}

// ExportJSON writes data as indented JSON. Non-finite series values, which
// frames.csv keeps as NaN or Inf, become null.
func ExportJSON(w io.Writer, data *ExportData) error {
	series := make(map[string][]jsonFloat, len(data.Series))
	for name, values := range data.Series {
		out := make([]jsonFloat, len(values))
		for i, v := range values {
			out[i] = jsonFloat(v)
		}
		series[name] = out
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		*ExportData
		Series map[string][]jsonFloat `json:"series"`
	}{data, series})
}

type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}
