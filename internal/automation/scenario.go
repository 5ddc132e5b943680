package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/metrics"
	"github.com/san-kum/equilibria/internal/sim"
	"github.com/san-kum/equilibria/internal/state"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scripted session: timed commands against one simulation.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Reaction    string `yaml:"reaction"`
	Seed        int64  `yaml:"seed"`
	Ticks       int    `yaml:"ticks"`
	Particles   int    `yaml:"particles"`
	Steps       []Step `yaml:"steps"`
}

// Step applies Command once At ticks have elapsed. At 0 runs before the
// first tick; At equal to Ticks runs after the last one.
type Step struct {
	At      int         `yaml:"at"`
	Command sim.Command `yaml:"command"`
}

// ScenarioResult holds everything a scenario produced.
type ScenarioResult struct {
	Name         string              `json:"name"`
	Trace        []sim.TracePoint    `json:"trace"`
	Observations []state.Observation `json:"observations"`
	Metrics      map[string]float64  `json:"metrics"`
	Final        sim.Snapshot        `json:"final"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if _, err := chem.ParseReactionType(sc.Reaction); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if sc.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, sc.Ticks)
	}
	for i, st := range sc.Steps {
		if st.At < 0 || st.At > sc.Ticks {
			return fmt.Errorf("%w: step %d at tick %d outside [0, %d]", ErrInvalidScenario, i+1, st.At, sc.Ticks)
		}
		if st.Command.Type == "" {
			return fmt.Errorf("%w: step %d has no command type", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// RunScenario executes the steps of sc in tick order. Steps sharing a tick
// run in file order. Centroids are reported for every particle kind, each
// averaged over the ticks where that kind was present.
func RunScenario(ctx context.Context, sc *Scenario, logger *zap.Logger) (*ScenarioResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rt, _ := chem.ParseReactionType(sc.Reaction)

	cfg := sim.DefaultConfig()
	cfg.Reaction = rt
	cfg.Seed = sc.Seed
	if sc.Particles > 0 {
		cfg.Particles = sc.Particles
	}

	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	tracer := sim.NewTracer(sc.Ticks)
	s.AddObserver(tracer)
	for _, m := range metrics.AllSpecies(s.Chamber()) {
		s.AddMetric(m)
	}

	steps := make([]Step, len(sc.Steps))
	copy(steps, sc.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	logger.Info("scenario started",
		zap.String("name", sc.Name),
		zap.Stringer("reaction", rt),
		zap.Int("ticks", sc.Ticks),
		zap.Int("steps", len(steps)),
	)

	next := 0
	for tick := 0; tick <= sc.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for next < len(steps) && steps[next].At == tick {
			cmd := steps[next].Command
			if err := s.Apply(cmd); err != nil {
				return nil, fmt.Errorf("step %d at tick %d: %w", next+1, tick, err)
			}
			logger.Debug("scenario step", zap.Int("tick", tick), zap.Stringer("command", cmd))
			next++
		}

		if tick < sc.Ticks {
			s.Tick()
		}
	}

	res := &ScenarioResult{
		Name:         sc.Name,
		Trace:        tracer.Points(),
		Observations: s.Observations(),
		Metrics:      s.MetricValues(),
		Final:        s.Snapshot(),
	}
	logger.Info("scenario finished",
		zap.String("name", sc.Name),
		zap.Float64("final_shift", res.Final.State.Shift),
		zap.Int("observations", len(res.Observations)),
	)
	return res, nil
}
