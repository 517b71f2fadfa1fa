package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds everything read from defaults.yaml plus an optional user
// override file. It is converted into a SimParams before the core sees it;
// the core never reads config directly.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Packet    PacketConfig    `yaml:"packet"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Brush     BrushConfig     `yaml:"brush"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GridConfig holds the grid extents. Powers of two are expected; other
// values run but transform calls will fail, so Validate rejects them early.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PhysicsConfig holds the physical constants and the time step.
type PhysicsConfig struct {
	DomainSize float64 `yaml:"domain_size"`
	Hbar       float64 `yaml:"hbar"`
	Mass       float64 `yaml:"mass"`
	Dt         float64 `yaml:"dt"`
}

// PacketConfig holds the initial wave-packet parameters.
type PacketConfig struct {
	X0            float64 `yaml:"x0"` // Fractions of the domain size
	Y0            float64 `yaml:"y0"`
	Px            float64 `yaml:"px"`
	Py            float64 `yaml:"py"`
	Sigma         float64 `yaml:"sigma"` // Fraction of the domain size
	NyquistMargin float64 `yaml:"nyquist_margin"`
}

// BoundaryConfig holds the boundary mode and energy constants.
type BoundaryConfig struct {
	Mode       string  `yaml:"mode"` // reflective | absorbing | both
	WallEnergy float64 `yaml:"wall_energy"`
	AbsorbRate float64 `yaml:"absorb_rate"`
}

// BrushConfig holds the default potential brush.
type BrushConfig struct {
	Radius float64 `yaml:"radius"` // Cells
	Energy float64 `yaml:"energy"`
}

// RenderConfig holds display settings passed through to the GUI.
type RenderConfig struct {
	Brightness   float64 `yaml:"brightness"`
	TickMs       int     `yaml:"tick_ms"`
	StepsPerTick int     `yaml:"steps_per_tick"`
}

// TelemetryConfig controls step-record sampling and CSV export.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Every   int    `yaml:"every"`
	Path    string `yaml:"path"`
}

// LoadConfig parses the embedded defaults and, when path is non-empty,
// overlays the user's file on top of them.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values before anything is allocated.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("%w (width=%d, height=%d)", ErrBadGrid, c.Grid.Width, c.Grid.Height)
	}
	if !isPowerOfTwo(c.Grid.Width) || !isPowerOfTwo(c.Grid.Height) {
		return fmt.Errorf("%w (width=%d, height=%d)", ErrInvalidSize, c.Grid.Width, c.Grid.Height)
	}
	if c.Physics.DomainSize <= 0 {
		return fmt.Errorf("physics.domain_size must be positive, got %g", c.Physics.DomainSize)
	}
	if c.Physics.Hbar <= 0 || c.Physics.Mass <= 0 {
		return fmt.Errorf("physics constants must be positive (hbar=%g, mass=%g)", c.Physics.Hbar, c.Physics.Mass)
	}
	if c.Physics.Dt == 0 {
		return fmt.Errorf("physics.dt must be nonzero")
	}
	if c.Packet.Sigma <= 0 {
		return fmt.Errorf("packet.sigma must be positive, got %g", c.Packet.Sigma)
	}
	if _, err := ParseBoundaryMode(c.Boundary.Mode); err != nil {
		return err
	}
	if c.Telemetry.Enabled && c.Telemetry.Every <= 0 {
		return fmt.Errorf("telemetry.every must be positive when telemetry is enabled")
	}
	return nil
}

// Params converts the config into the parameter record the core consumes.
// Packet positions and width are given as fractions of the domain and are
// scaled to physical units here.
func (c *Config) Params() *SimParams {
	mode, _ := ParseBoundaryMode(c.Boundary.Mode)
	d := c.Physics.DomainSize
	return &SimParams{
		Dt:            c.Physics.Dt,
		X0:            c.Packet.X0 * d,
		Y0:            c.Packet.Y0 * d,
		Px:            c.Packet.Px,
		Py:            c.Packet.Py,
		Sigma:         c.Packet.Sigma * d,
		Brightness:    c.Render.Brightness,
		Boundary:      mode,
		WallEnergy:    c.Boundary.WallEnergy,
		AbsorbRate:    c.Boundary.AbsorbRate,
		Hbar:          c.Physics.Hbar,
		Mass:          c.Physics.Mass,
		DomainSize:    d,
		NyquistMargin: c.Packet.NyquistMargin,
		BrushRadius:   c.Brush.Radius,
		BrushEnergy:   c.Brush.Energy,
	}
}
