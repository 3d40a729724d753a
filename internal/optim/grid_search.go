package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/experiment"
)

// Point is one evaluated parameter combination.
type Point struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Maximize makes Search pick the largest metric value instead of the smallest.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Search runs one experiment per grid point and returns the best point along
// with every point in visiting order.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("grid search: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Point{Value: math.Inf(1)}
	if g.maximize {
		best.Value = math.Inf(-1)
	}
	var all []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &all)
	if err != nil {
		return Point{}, all, err
	}
	return best, all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *Point,
	all *[]Point,
) error {
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("grid search: metric %s not recorded", metricName)
		}

		p := Point{Params: current, Value: val}
		*all = append(*all, p)
		if (g.maximize && val > best.Value) || (!g.maximize && val < best.Value) {
			*best = p
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, best, all); err != nil {
			return err
		}
	}
	return nil
}

var sceneParams = map[string]func(c *config.Config, v float64){
	"gravity": func(c *config.Config, v float64) { c.World.Gravity = v },
	"elasticity": func(c *config.Config, v float64) {
		for i := range c.Bodies {
			c.Bodies[i].Elasticity = v
		}
		c.Random.Elasticity = v
	},
	"radius": func(c *config.Config, v float64) {
		for i := range c.Bodies {
			c.Bodies[i].Radius = v
		}
		c.Random.RadiusMin, c.Random.RadiusMax = v, v
	},
	"speed": setSpeed,
}

// setSpeed gives every moving explicit body speed v along its current heading
// and caps random bodies at v. Bodies at rest stay at rest.
func setSpeed(c *config.Config, v float64) {
	for i := range c.Bodies {
		b := &c.Bodies[i]
		cur := math.Hypot(b.DX, b.DY)
		if cur == 0 {
			continue
		}
		b.DX, b.DY = b.DX/cur*v, b.DY/cur*v
	}
	c.Random.SpeedMax = v
}

// SceneParams lists the names ApplyParams understands.
func SceneParams() []string {
	names := make([]string, 0, len(sceneParams))
	for name := range sceneParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyParams returns a copy of base with params written into it.
func ApplyParams(base *config.Config, params map[string]float64) (*config.Config, error) {
	c := base.Clone()
	for name, v := range params {
		set, ok := sceneParams[name]
		if !ok {
			return nil, fmt.Errorf("unknown scene parameter: %s (available: %v)", name, SceneParams())
		}
		set(c, v)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SceneBuilder adapts a base config into the builder Search expects.
func SceneBuilder(base *config.Config, registry *experiment.Registry, metrics []string) func(map[string]float64) (*experiment.Experiment, error) {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, err := ApplyParams(base, params)
		if err != nil {
			return nil, err
		}
		ms, err := registry.Metrics(metrics, cfg.World)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(cfg)
		if err := exp.Setup(ms); err != nil {
			return nil, err
		}
		return exp, nil
	}
}
