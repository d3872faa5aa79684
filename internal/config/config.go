// Package config provides configuration loading for the simulation. Every
// tunable rate, duration and distance lives here; the simulation packages only
// encode the structure of the rules.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Pet       PetConfig       `yaml:"pet"`
	Economy   EconomyConfig   `yaml:"economy"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Fruit     FruitConfig     `yaml:"fruit"`
	Score     ScoreConfig     `yaml:"score"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorldConfig holds the playable area and the host frame clamp.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxFrameStep float64 `yaml:"max_frame_step"` // Host clamps each frame's dt to this (seconds)
}

// ActionConfig describes one timed action: how long it lasts and how much of
// its target need it restores over that time.
type ActionConfig struct {
	Duration float64 `yaml:"duration"`
	Gain     float64 `yaml:"gain"`
}

// FeedConfig is the flat delta applied by a direct eat command.
type FeedConfig struct {
	Hunger    float64 `yaml:"hunger"`
	Happiness float64 `yaml:"happiness"`
	Energy    float64 `yaml:"energy"`
	Hold      float64 `yaml:"hold"` // Eating animation hold (seconds)
}

// PetConfig holds the pet's movement and behavior parameters.
type PetConfig struct {
	MaxStep             float64      `yaml:"max_step"`              // Per-update time advance cap
	ManualSpeed         float64      `yaml:"manual_speed"`          // Units per second under manual control
	WalkSpeed           float64      `yaml:"walk_speed"`            // Units per second while wandering
	ArrivalEpsilon      float64      `yaml:"arrival_epsilon"`       // Wander target reached within this distance
	Padding             float64      `yaml:"padding"`               // Manual moves stay this far from the edges
	WanderPadding       float64      `yaml:"wander_padding"`        // Fraction of each dimension kept clear for wander targets
	BlinkRate           float64      `yaml:"blink_rate"`            // Blink toggles per second (expected)
	WanderRate          float64      `yaml:"wander_rate"`           // Wander picks per second (expected)
	AutoBehaviorTimeout float64      `yaml:"auto_behavior_timeout"` // Seconds of suppression after a manual move
	DeathAnimation      float64      `yaml:"death_animation"`
	Sleep               ActionConfig `yaml:"sleep"`
	Play                ActionConfig `yaml:"play"`
	Feed                FeedConfig   `yaml:"feed"`
}

// WellbeingBand pairs a lower bound on the needs average with the rate applied
// while the average is at or above it.
type WellbeingBand struct {
	Min  float64 `yaml:"min"`
	Rate float64 `yaml:"rate"` // Wellbeing change per second
}

// EconomyConfig holds need decay and wellbeing parameters.
type EconomyConfig struct {
	BaseDecay            float64         `yaml:"base_decay"`             // Need loss per second
	PlayHungerMultiplier float64         `yaml:"play_hunger_multiplier"` // Hunger decay multiple while playing
	PlayEnergyMultiplier float64         `yaml:"play_energy_multiplier"` // Energy decay multiple while playing
	InitialWellbeing     float64         `yaml:"initial_wellbeing"`
	Bands                []WellbeingBand `yaml:"bands"`         // Ordered from highest Min down
	CriticalRate         float64         `yaml:"critical_rate"` // Applied below the last band
}

// EnemyConfig holds hostile entity parameters and the player's strike.
type EnemyConfig struct {
	MaxHealth      float64 `yaml:"max_health"`
	Speed          float64 `yaml:"speed"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackDamage   float64 `yaml:"attack_damage"` // Subtracted from each need on a hit
	AttackCooldown float64 `yaml:"attack_cooldown"`
	HurtDuration   float64 `yaml:"hurt_duration"`
	DeathAnimation float64 `yaml:"death_animation"`
	MaxStep        float64 `yaml:"max_step"`
	StrikeDamage   float64 `yaml:"strike_damage"` // Damage dealt by one player strike
	StrikeReach    float64 `yaml:"strike_reach"`  // Nearest-enemy strike radius around the pet
	HitRadius      float64 `yaml:"hit_radius"`    // Click hit-test radius around an enemy
}

// SpawnConfig holds enemy pool parameters.
type SpawnConfig struct {
	Interval    float64 `yaml:"interval"`
	MaxEnemies  int     `yaml:"max_enemies"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Margin      float64 `yaml:"margin"` // Spawn points stay this far from the edges
}

// FruitConfig holds consumable lifetime and pickup parameters.
type FruitConfig struct {
	TTL          float64 `yaml:"ttl"`
	BlinkWindow  float64 `yaml:"blink_window"` // Blink during the last N seconds of life
	BlinkPeriod  float64 `yaml:"blink_period"`
	DropDistance float64 `yaml:"drop_distance"` // Feed drops land this far from the pet
	PickupRadius float64 `yaml:"pickup_radius"`
	Margin       float64 `yaml:"margin"`
}

// ScoreConfig holds point values and the high score table location.
type ScoreConfig struct {
	Feed    int    `yaml:"feed"`
	Play    int    `yaml:"play"`
	Sleep   int    `yaml:"sleep"`
	Kill    int    `yaml:"kill"`
	Collect int    `yaml:"collect"`
	Keep    int    `yaml:"keep"` // Number of runs kept in the table
	Path    string `yaml:"path"` // Empty = ~/.config/throng/scores.toml
}

// TelemetryConfig holds headless stats parameters.
type TelemetryConfig struct {
	Window float64 `yaml:"window"` // Seconds per stats row
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// wellbeingBands is the number of configured bands; critical_rate is the
// fourth, below the last of them.
const wellbeingBands = 3

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, errors.New("world: width and height must be positive"))
	}
	if c.World.MaxFrameStep <= 0 || c.Pet.MaxStep <= 0 || c.Enemy.MaxStep <= 0 {
		errs = append(errs, errors.New("step caps must be positive"))
	}
	if c.Pet.Sleep.Duration <= 0 || c.Pet.Play.Duration <= 0 {
		errs = append(errs, errors.New("pet: sleep and play durations must be positive"))
	}
	if n := len(c.Economy.Bands); n != wellbeingBands {
		errs = append(errs, fmt.Errorf("economy: %d wellbeing bands configured, want %d", n, wellbeingBands))
	} else {
		b := c.Economy.Bands
		if b[0].Rate <= 0 || b[1].Rate <= 0 {
			errs = append(errs, errors.New("economy: the two upper band rates must be positive"))
		}
		if b[2].Rate >= 0 || c.Economy.CriticalRate >= 0 {
			errs = append(errs, errors.New("economy: the lowest band rate and critical rate must be negative"))
		}
	}
	for i := 1; i < len(c.Economy.Bands); i++ {
		prev, cur := c.Economy.Bands[i-1], c.Economy.Bands[i]
		if cur.Min >= prev.Min {
			errs = append(errs, fmt.Errorf("economy: band %d min %.1f must be below band %d min %.1f", i, cur.Min, i-1, prev.Min))
		}
		if cur.Rate > prev.Rate {
			errs = append(errs, fmt.Errorf("economy: band %d rate %.2f exceeds band %d rate %.2f", i, cur.Rate, i-1, prev.Rate))
		}
	}
	if n := len(c.Economy.Bands); n > 0 && c.Economy.CriticalRate > c.Economy.Bands[n-1].Rate {
		errs = append(errs, errors.New("economy: critical rate must not exceed the lowest band rate"))
	}
	if c.Enemy.MaxHealth <= 0 || c.Enemy.HurtDuration <= 0 || c.Enemy.DeathAnimation <= 0 {
		errs = append(errs, errors.New("enemy: health, hurt and death durations must be positive"))
	}
	if c.Spawn.MaxEnemies < 1 {
		errs = append(errs, errors.New("spawn: max_enemies must be at least 1"))
	}
	if c.Spawn.Interval <= 0 {
		errs = append(errs, errors.New("spawn: interval must be positive"))
	}
	if c.Spawn.MinDistance > c.Spawn.MaxDistance {
		errs = append(errs, fmt.Errorf("spawn: min_distance %.0f exceeds max_distance %.0f", c.Spawn.MinDistance, c.Spawn.MaxDistance))
	}
	if c.Fruit.TTL <= 0 {
		errs = append(errs, errors.New("fruit: ttl must be positive"))
	}
	if c.Telemetry.Window <= 0 {
		errs = append(errs, errors.New("telemetry: window must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
