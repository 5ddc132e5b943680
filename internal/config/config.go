package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/sim"
	"github.com/san-kum/equilibria/internal/state"
)

const (
	DefaultTicks = 600
	DefaultFPS   = 30
	DefaultAddr  = ":8080"
	DefaultSeed  = 42
	MaxFPS       = 240
	MaxParticles = 5000
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Reaction     string             `yaml:"reaction"`
	Seed         int64              `yaml:"seed"`
	Ticks        int                `yaml:"ticks"`
	FPS          int                `yaml:"fps"`
	Particles    int                `yaml:"particles"`
	Observations int                `yaml:"observations"`
	Controls     chem.Input         `yaml:"controls"`
	Chamber      kinematics.Chamber `yaml:"chamber"`
	// Coefficients starts at chem.DefaultCoefficients; a file that sets
	// every weight to zero disables the calculator.
	Coefficients chem.Coefficients  `yaml:"coefficients"`
	Server       ServerConfig       `yaml:"server"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	rt := chem.Exothermic
	return &Config{
		Reaction:     rt.String(),
		Seed:         DefaultSeed,
		Ticks:        DefaultTicks,
		FPS:          DefaultFPS,
		Particles:    kinematics.DefaultParticleCount,
		Observations: state.DefaultLogCapacity,
		Controls:     chem.Baseline(rt),
		Chamber:      kinematics.DefaultChamber(),
		Coefficients: chem.DefaultCoefficients(),
		Server:       ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads a YAML file over the defaults. When the file names a reaction
// but no concentrations, the reaction's default split is used.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var probe struct {
		Controls map[string]any `yaml:"controls"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if rt, err := chem.ParseReactionType(cfg.Reaction); err == nil {
		base := chem.Baseline(rt)
		if _, ok := probe.Controls["reactant"]; !ok {
			cfg.Controls.ReactantConc = base.ReactantConc
		}
		if _, ok := probe.Controls["product"]; !ok {
			cfg.Controls.ProductConc = base.ProductConc
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) ReactionType() (chem.ReactionType, error) {
	return chem.ParseReactionType(c.Reaction)
}

// SetReaction switches reaction and resets the concentrations to its split.
func (c *Config) SetReaction(rt chem.ReactionType) {
	c.Reaction = rt.String()
	c.Controls.ReactantConc, c.Controls.ProductConc = rt.DefaultSplit()
}

func (c *Config) Validate() error {
	if _, err := c.ReactionType(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative, got %d", ErrInvalidConfig, c.Ticks)
	}
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps must be in [1, %d], got %d", ErrInvalidConfig, MaxFPS, c.FPS)
	}
	if c.Particles < 0 || c.Particles > MaxParticles {
		return fmt.Errorf("%w: particles must be in [0, %d], got %d", ErrInvalidConfig, MaxParticles, c.Particles)
	}
	if err := state.DefaultLimits().Check(c.Controls); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if sum := c.Controls.ReactantConc + c.Controls.ProductConc; sum > 100 {
		return fmt.Errorf("%w: reactant and product sum to %.1f, above 100", ErrInvalidConfig, sum)
	}
	if err := c.Chamber.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SimConfig converts the file form into the simulation's configuration.
func (c *Config) SimConfig() (sim.Config, error) {
	if err := c.Validate(); err != nil {
		return sim.Config{}, err
	}
	rt, _ := c.ReactionType()
	coeffs := c.Coefficients
	return sim.Config{
		Reaction:     rt,
		Seed:         c.Seed,
		Particles:    c.Particles,
		Chamber:      c.Chamber,
		Coefficients: &coeffs,
		Limits:       state.DefaultLimits(),
		LogCapacity:  c.Observations,
	}, nil
}

// SetupCommands moves a freshly built simulation from its baseline to the
// configured controls. Concentrations go first since they reset no other
// control.
func (c *Config) SetupCommands() []sim.Command {
	rt, err := c.ReactionType()
	if err != nil {
		return nil
	}
	base := chem.Baseline(rt)
	var cmds []sim.Command
	if c.Controls.ReactantConc != base.ReactantConc || c.Controls.ProductConc != base.ProductConc {
		// lower first so the sum invariant never rewrites the other side
		if c.Controls.ReactantConc <= base.ReactantConc {
			cmds = append(cmds, sim.Reactant(c.Controls.ReactantConc), sim.Product(c.Controls.ProductConc))
		} else {
			cmds = append(cmds, sim.Product(c.Controls.ProductConc), sim.Reactant(c.Controls.ReactantConc))
		}
	}
	if c.Controls.Temperature != base.Temperature {
		cmds = append(cmds, sim.Temperature(c.Controls.Temperature))
	}
	if c.Controls.Pressure != base.Pressure {
		cmds = append(cmds, sim.Pressure(c.Controls.Pressure))
	}
	return cmds
}

// Build validates the config and returns a simulation at the configured
// controls.
func (c *Config) Build(opts ...sim.Option) (*sim.Simulation, error) {
	sc, err := c.SimConfig()
	if err != nil {
		return nil, err
	}
	s, err := sim.New(sc, opts...)
	if err != nil {
		return nil, err
	}
	for _, cmd := range c.SetupCommands() {
		if err := s.Apply(cmd); err != nil {
			return nil, err
		}
	}
	return s, nil
}
