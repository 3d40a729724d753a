package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/experiment"
	"github.com/san-kum/bounce/internal/optim"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted batch of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Config takes precedence over
// Preset; zero values leave the scene untouched, except Seed which applies
// whenever it is set.
type ScenarioStep struct {
	Preset  string             `yaml:"preset"`
	Config  string             `yaml:"config"`
	Ticks   int                `yaml:"ticks"`
	Seed    *int64             `yaml:"seed"`
	Policy  string             `yaml:"policy"`
	Params  map[string]float64 `yaml:"params"`
	Metrics []string           `yaml:"metrics"`
	SaveAs  string             `yaml:"save_as"`
}

// StepResult pairs a finished step with the run it was stored under.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s ScenarioStep) scene() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		c, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = c
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.Policy != "" {
		cfg.Policy = s.Policy
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return optim.ApplyParams(cfg, s.Params)
}

// RunScenario executes all steps in a scenario. Results are stored when st is
// not nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.scene()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		ms, err := registry.Metrics(step.Metrics, cfg.World)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(ms); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: cfg.Name, Result: result}
		if st != nil {
			sr.RunID, err = st.Save(storage.RunInfo{
				Name:   cfg.Name,
				Seed:   cfg.Seed,
				World:  cfg.World,
				Policy: cfg.SimPolicy().String(),
				Ticks:  result.TicksTaken,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one perturbed trial
type MonteCarloResult struct {
	TrialID   int
	Initial   []physics.Snapshot
	Final     []physics.Snapshot
	Contained bool // every body stayed inside the arena on every tick
	Overshoot float64
}

// RunMonteCarlo executes trials with the explicit body velocities nudged by
// up to Perturbation on each axis.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		scene := cfg.Base.Clone()
		for i := range scene.Bodies {
			scene.Bodies[i].DX += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
			scene.Bodies[i].DY += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		}
		scene.Seed = cfg.Base.Seed + int64(trial)

		ms, err := registry.Metrics([]string{"containment", "max_overshoot"}, scene.World)
		if err != nil {
			return nil, err
		}

		exp := experiment.New(scene)
		if err := exp.Setup(ms); err != nil {
			return nil, err
		}
		initial := physics.Snapshots(exp.Bodies())

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		var final []physics.Snapshot
		if n := len(result.Frames); n > 0 {
			final = result.Frames[n-1].Bodies
		}

		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Initial:   initial,
			Final:     final,
			Contained: result.Metrics["containment"] == 1,
			Overshoot: result.Metrics["max_overshoot"],
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts trials that kept every body inside the arena.
func MonteCarloStats(results []MonteCarloResult) (contained int, escaped int) {
	for _, r := range results {
		if r.Contained {
			contained++
		} else {
			escaped++
		}
	}
	return
}
