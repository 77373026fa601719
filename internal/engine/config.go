package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate for unusable tuning values.
var ErrInvalidConfig = errors.New("invalid engine config")

// SpeedRange is a closed range of vertical speeds in field units per frame.
type SpeedRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Config holds every tunable engine parameter.
// Positions are field-percent coordinates: x in [0,100] left to right,
// y in [-5,100] top to bottom.
type Config struct {
	InitialLives int  `yaml:"initial_lives"`
	MaxLives     int  `yaml:"max_lives"`
	PowerUps     bool `yaml:"power_ups"`

	// Spawning
	CollectibleInterval time.Duration `yaml:"collectible_interval"`
	HazardInterval      time.Duration `yaml:"hazard_interval"`
	PowerUpInterval     time.Duration `yaml:"power_up_interval"`
	CollectibleSpeed    SpeedRange    `yaml:"collectible_speed"`
	HazardSpeed         SpeedRange    `yaml:"hazard_speed"`
	PowerUpSpeed        float64       `yaml:"power_up_speed"`
	SpawnY              float64       `yaml:"spawn_y"`

	// Field
	MinX     float64 `yaml:"min_x"`
	MaxX     float64 `yaml:"max_x"`
	StartX   float64 `yaml:"start_x"`
	ExitY    float64 `yaml:"exit_y"`
	BandTop  float64 `yaml:"band_top"`
	BandBase float64 `yaml:"band_base"`
	Reach    float64 `yaml:"reach"`

	// Collision sampling
	CollisionInterval time.Duration `yaml:"collision_interval"`

	// Magnet
	MagnetDuration  time.Duration `yaml:"magnet_duration"`
	MagnetPull      float64       `yaml:"magnet_pull"`
	MagnetThreshold float64       `yaml:"magnet_threshold"`
}

// DefaultConfig returns the standard tuning, power-ups enabled.
func DefaultConfig() Config {
	return Config{
		InitialLives: 3,
		MaxLives:     5,
		PowerUps:     true,

		CollectibleInterval: 800 * time.Millisecond,
		HazardInterval:      3000 * time.Millisecond,
		PowerUpInterval:     8000 * time.Millisecond,
		CollectibleSpeed:    SpeedRange{Min: 1.5, Max: 2.5},
		HazardSpeed:         SpeedRange{Min: 2.0, Max: 3.5},
		PowerUpSpeed:        1.2,
		SpawnY:              -5,

		MinX:     5,
		MaxX:     95,
		StartX:   50,
		ExitY:    100,
		BandTop:  80,
		BandBase: 95,
		Reach:    12,

		CollisionInterval: 50 * time.Millisecond,

		MagnetDuration:  5000 * time.Millisecond,
		MagnetPull:      0.08,
		MagnetThreshold: 40,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.InitialLives < 1:
		return fmt.Errorf("%w: initial lives %d < 1", ErrInvalidConfig, c.InitialLives)
	case c.MaxLives < c.InitialLives:
		return fmt.Errorf("%w: max lives %d below initial lives %d", ErrInvalidConfig, c.MaxLives, c.InitialLives)
	case c.CollectibleInterval <= 0 || c.HazardInterval <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalidConfig)
	case c.PowerUps && c.PowerUpInterval <= 0:
		return fmt.Errorf("%w: power-up interval must be positive", ErrInvalidConfig)
	case c.CollisionInterval <= 0:
		return fmt.Errorf("%w: collision interval must be positive", ErrInvalidConfig)
	case c.MagnetDuration <= 0:
		return fmt.Errorf("%w: magnet duration must be positive", ErrInvalidConfig)
	}
	if err := c.CollectibleSpeed.validate("collectible"); err != nil {
		return err
	}
	if err := c.HazardSpeed.validate("hazard"); err != nil {
		return err
	}
	if c.PowerUpSpeed <= 0 {
		return fmt.Errorf("%w: power-up speed must be positive", ErrInvalidConfig)
	}
	if c.MinX >= c.MaxX || c.StartX < c.MinX || c.StartX > c.MaxX {
		return fmt.Errorf("%w: horizontal bounds [%v,%v] start %v", ErrInvalidConfig, c.MinX, c.MaxX, c.StartX)
	}
	if c.BandTop >= c.BandBase || c.BandBase > c.ExitY || c.SpawnY >= c.BandTop {
		return fmt.Errorf("%w: ground band (%v,%v) exit %v spawn %v", ErrInvalidConfig, c.BandTop, c.BandBase, c.ExitY, c.SpawnY)
	}
	if c.Reach <= 0 {
		return fmt.Errorf("%w: reach must be positive", ErrInvalidConfig)
	}
	if c.MagnetPull < 0 || c.MagnetPull > 1 {
		return fmt.Errorf("%w: magnet pull %v outside [0,1]", ErrInvalidConfig, c.MagnetPull)
	}
	return nil
}

func (r SpeedRange) validate(name string) error {
	if r.Min <= 0 || r.Max < r.Min {
		return fmt.Errorf("%w: %s speed range [%v,%v]", ErrInvalidConfig, name, r.Min, r.Max)
	}
	return nil
}
