package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/state"
)

// Simulation bundles the store, the observation log and the particle set.
// It is owned by a single goroutine.
type Simulation struct {
	store     *state.Store
	log       *state.Log
	coeffs    chem.Coefficients
	chamber   kinematics.Chamber
	total     int
	seed      int64
	rng       kinematics.RandSource
	particles []kinematics.Particle
	result    chem.Result
	tick      int
	logger    *zap.Logger
	metrics   []Metric
	observers []Observer
}

type Option func(*Simulation)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRand replaces the seeded source built from Config.Seed.
func WithRand(rng kinematics.RandSource) Option {
	return func(s *Simulation) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// New builds a simulation at the baseline of cfg.Reaction. A zero Seed seeds
// from the clock.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Chamber.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Particles < 0 {
		return nil, fmt.Errorf("%w: negative particle count %d", ErrInvalidConfig, cfg.Particles)
	}

	if cfg.Limits == (state.Limits{}) {
		cfg.Limits = state.DefaultLimits()
	}
	coeffs := chem.DefaultCoefficients()
	if cfg.Coefficients != nil {
		coeffs = *cfg.Coefficients
	}

	seed := ResolveSeed(cfg.Seed)

	s := &Simulation{
		store:   state.NewStore(cfg.Reaction, cfg.Limits),
		log:     state.NewLog(cfg.LogCapacity),
		coeffs:  coeffs,
		chamber: cfg.Chamber,
		total:   cfg.Particles,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.recompute()
	s.regenerate()
	return s, nil
}

// ResolveSeed replaces a zero seed with one drawn from the clock.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Reaction() chem.ReactionType       { return s.store.Reaction() }
func (s *Simulation) State() state.SystemState          { return s.store.State() }
func (s *Simulation) Result() chem.Result               { return s.result }
func (s *Simulation) Chamber() kinematics.Chamber       { return s.chamber }
func (s *Simulation) Ticks() int                        { return s.tick }
func (s *Simulation) Seed() int64                       { return s.seed }
func (s *Simulation) Limits() state.Limits              { return s.store.Limits() }
func (s *Simulation) Observations() []state.Observation { return s.log.Entries() }

// Particles returns a copy of the current particle set.
func (s *Simulation) Particles() []kinematics.Particle {
	out := make([]kinematics.Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Apply executes cmd. Invalid commands leave the simulation untouched and
// return a *CommandError.
func (s *Simulation) Apply(cmd Command) error {
	change, err := s.dispatch(cmd)
	if err != nil {
		return &CommandError{Command: cmd, Err: err}
	}

	s.logger.Debug("command applied",
		zap.Stringer("command", cmd),
		zap.Stringer("change", change),
	)

	switch change {
	case state.ChangeStructure:
		s.recompute()
		s.regenerate()
	case state.ChangeControl:
		s.recompute()
	}
	return nil
}

func (s *Simulation) dispatch(cmd Command) (state.Change, error) {
	switch cmd.Type {
	case CmdSelectReaction:
		rt, err := chem.ParseReactionType(cmd.Reaction)
		if err != nil {
			return state.ChangeNone, err
		}
		return s.store.SelectReaction(rt), nil
	case CmdSetTemperature:
		return s.store.SetTemperature(cmd.Value)
	case CmdSetPressure:
		return s.store.SetPressure(cmd.Value)
	case CmdSetReactant:
		return s.store.SetReactantConc(cmd.Value)
	case CmdSetProduct:
		return s.store.SetProductConc(cmd.Value)
	case CmdReset:
		return s.store.Reset(!cmd.KeepConcentrations), nil
	case CmdRecord:
		s.Record()
		return state.ChangeNone, nil
	case CmdClearObservations:
		s.log.Clear()
		return state.ChangeNone, nil
	}
	return state.ChangeNone, fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Type)
}

// Record appends the current conditions to the observation log.
func (s *Simulation) Record() state.Observation {
	obs := s.log.Record(s.store.Reaction(), s.store.State())
	s.logger.Debug("observation recorded", zap.Int("id", obs.ID), zap.String("status", obs.Status))
	return obs
}

func (s *Simulation) recompute() {
	s.result = s.coeffs.ComputeShift(s.store.Input(), s.store.Reaction())
	s.store.SetResult(s.result.Shift, s.result.Status)
}

func (s *Simulation) regenerate() {
	st := s.store.State()
	s.particles = kinematics.Spawn(s.store.Reaction(), st.ReactantConc, st.ProductConc, s.chamber, s.rng, s.total)
	s.logger.Debug("particles regenerated",
		zap.Stringer("reaction", s.store.Reaction()),
		zap.Int("count", len(s.particles)),
	)
}

// Tick advances every particle one frame and notifies metrics and observers.
func (s *Simulation) Tick() {
	st := s.store.State()
	kinematics.StepAll(s.particles, st.Shift, st.Temperature, s.store.Reaction(), s.chamber, s.rng)
	s.tick++

	for _, m := range s.metrics {
		m.Observe(s.particles, s.tick)
	}
	for _, o := range s.observers {
		o.OnTick(s.tick, s.particles, st)
	}
}

// Run advances ticks frames. callback, when set, receives a Frame after
// each tick and stops the run by returning false.
func (s *Simulation) Run(ctx context.Context, ticks int, callback func(Frame) bool) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidTicks, ticks)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	done := 0
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return s.summarise(done), ctx.Err()
		default:
		}

		s.Tick()
		done++
		if callback != nil && !callback(s.Frame()) {
			break
		}
	}
	return s.summarise(done), nil
}

func (s *Simulation) summarise(ticks int) *Result {
	return &Result{Seed: s.seed, Ticks: ticks, Final: s.Snapshot(), Metrics: s.MetricValues()}
}

func (s *Simulation) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulation) Snapshot() Snapshot {
	st := s.store.State()
	factors := make([]string, len(s.result.Factors))
	copy(factors, s.result.Factors)
	return Snapshot{
		Tick:     s.tick,
		Reaction: s.store.Reaction(),
		Equation: s.store.Reaction().Equation(),
		State:    st,
		Factors:  factors,
		Display:  NewDisplay(st),
		Counts:   kinematics.CountKinds(s.particles),
	}
}

func (s *Simulation) Frame() Frame {
	return Frame{Snapshot: s.Snapshot(), Particles: s.Particles()}
}
