package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"tick", "id", "x", "y", "dx", "dy", "radius", "elasticity", "color"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes the scene a result came from.
type RunInfo struct {
	Name   string        `json:"name"`
	Seed   int64         `json:"seed"`
	World  physics.World `json:"world"`
	Policy string        `json:"policy"`
	Ticks  int           `json:"ticks"`
}

type RunMetadata struct {
	RunInfo
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Bodies    int                `json:"bodies"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	bodies := 0
	if len(result.Frames) > 0 {
		bodies = len(result.Frames[0].Bodies)
	}

	meta := RunMetadata{
		RunInfo:   info,
		ID:        runID,
		Timestamp: now,
		Bodies:    bodies,
		Frames:    len(result.Frames),
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result.Frames); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}

	for _, frame := range frames {
		for _, b := range frame.Bodies {
			row := []string{
				strconv.Itoa(frame.Tick),
				strconv.Itoa(int(b.ID)),
				formatFloat(b.Center.X),
				formatFloat(b.Center.Y),
				formatFloat(b.Velocity.DX),
				formatFloat(b.Velocity.DY),
				formatFloat(b.HitBox.Width / 2),
				formatFloat(b.Elasticity),
				b.Color,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// List returns every readable run, oldest first.
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
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads the recorded frames back, grouped by tick in file order.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0)
	for i := 1; i < len(records); i++ {
		tick, snap, err := parseRow(records[i])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
		}
		if len(frames) == 0 || frames[len(frames)-1].Tick != tick {
			frames = append(frames, sim.Frame{Tick: tick})
		}
		last := &frames[len(frames)-1]
		last.Bodies = append(last.Bodies, snap)
	}

	return frames, nil
}

func parseRow(rec []string) (int, physics.Snapshot, error) {
	tick, err := strconv.Atoi(rec[0])
	if err != nil {
		return 0, physics.Snapshot{}, err
	}
	id, err := strconv.Atoi(rec[1])
	if err != nil {
		return 0, physics.Snapshot{}, err
	}

	vals := make([]float64, 6)
	for i := range vals {
		vals[i], err = strconv.ParseFloat(rec[i+2], 64)
		if err != nil {
			return 0, physics.Snapshot{}, err
		}
	}

	return tick, physics.Snapshot{
		ID:         physics.ID(id),
		Center:     physics.Vec2{X: vals[0], Y: vals[1]},
		Velocity:   physics.Velocity{DX: vals[2], DY: vals[3]},
		HitBox:     physics.Size{Width: vals[4] * 2, Height: vals[4] * 2},
		Elasticity: vals[5],
		Color:      rec[8],
	}, nil
}
