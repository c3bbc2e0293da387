// Package config loads orrery settings from defaults, an optional YAML file,
// and the environment (including an optional .env file).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/procgen"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Environment variables read by ApplyEnv.
const (
	EnvSeed     = "ORRERY_SEED"
	EnvWorkers  = "ORRERY_WORKERS"
	EnvLogLevel = "ORRERY_LOG_LEVEL"
)

type Config struct {
	Seed          uint64       `yaml:"seed"` // 0 picks a random seed
	Workers       int          `yaml:"workers"`
	LogLevel      string       `yaml:"log_level"`
	Quality       float64      `yaml:"quality"` // scales every body's particle budget
	OrbitSegments int          `yaml:"orbit_segments"`
	Focus         string       `yaml:"focus"`
	Galaxy        GalaxyConfig `yaml:"galaxy"`
	Stars         StarsConfig  `yaml:"stars"`
}

type GalaxyConfig struct {
	Count           int          `yaml:"count"`
	Radius          float64      `yaml:"radius"`
	Branches        int          `yaml:"branches"`
	Spin            float64      `yaml:"spin"`
	Randomness      float64      `yaml:"randomness"`
	RandomnessPower float64      `yaml:"randomness_power"`
	BarLength       float64      `yaml:"bar_length"`
	BulgeHeight     float64      `yaml:"bulge_height"`
	Opacity         float64      `yaml:"opacity"`
	Colors          GalaxyColors `yaml:"colors"`
}

// GalaxyColors are "#rrggbb" strings.
type GalaxyColors struct {
	Core   string `yaml:"core"`
	Bar    string `yaml:"bar"`
	Arms   string `yaml:"arms"`
	Nebula string `yaml:"nebula"`
}

type StarsConfig struct {
	Count      int     `yaml:"count"`
	HalfExtent float64 `yaml:"half_extent"`
	Color      string  `yaml:"color"`
	Opacity    float64 `yaml:"opacity"`
}

// DefaultConfig returns the standard orrery settings.
func DefaultConfig() Config {
	g := procgen.DefaultGalaxyParams()
	st := procgen.DefaultStarField()
	return Config{
		Workers:       0,
		LogLevel:      "info",
		Quality:       1,
		OrbitSegments: procgen.DefaultOrbitSegments,
		Galaxy: GalaxyConfig{
			Count:           g.Count,
			Radius:          g.Radius,
			Branches:        g.Branches,
			Spin:            g.Spin,
			Randomness:      g.Randomness,
			RandomnessPower: g.RandomnessPower,
			BarLength:       g.BarLength,
			BulgeHeight:     g.BulgeHeight,
			Opacity:         g.Opacity,
			Colors: GalaxyColors{
				Core:   g.Colors.Core.Hex(),
				Bar:    g.Colors.Bar.Hex(),
				Arms:   g.Colors.Arms.Hex(),
				Nebula: g.Colors.Nebula.Hex(),
			},
		},
		Stars: StarsConfig{
			Count:      st.Count,
			HalfExtent: st.HalfExtent,
			Color:      st.Color.Hex(),
			Opacity:    st.Opacity,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result. Keys
// absent from the file keep their default values; unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyEnv loads the given .env files (".env" when none are named) into the
// process environment and then overlays the ORRERY_* variables. A missing
// default .env is not an error. Variables already set in the environment
// win over .env entries.
func (c *Config) ApplyEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env: %w", err)
		}
	}

	if v, ok := lookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return &procgen.ConfigError{Generator: "env", Field: EnvSeed, Value: v, Reason: "not an unsigned integer"}
		}
		c.Seed = seed
	}
	if v, ok := lookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &procgen.ConfigError{Generator: "env", Field: EnvWorkers, Value: v, Reason: "not an integer"}
		}
		c.Workers = n
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks every setting, including the generator parameters it
// feeds, and reports the first problem as a *procgen.ConfigError.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.LogLevel) {
		return &procgen.ConfigError{Generator: "config", Field: "log_level", Value: c.LogLevel, Reason: "must be debug, info, warn, or error"}
	}
	if !(c.Quality > 0) {
		return &procgen.ConfigError{Generator: "config", Field: "quality", Value: c.Quality, Reason: "must be positive"}
	}
	if c.Workers < 0 {
		return &procgen.ConfigError{Generator: "config", Field: "workers", Value: c.Workers, Reason: "must not be negative"}
	}
	if c.Focus != "" {
		if _, ok := catalog.Lookup(c.Focus); !ok {
			return &procgen.ConfigError{Generator: "config", Field: "focus", Value: c.Focus, Reason: "unknown body"}
		}
	}
	sc, err := c.scene()
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}
	if err := sc.Stars.Validate(); err != nil {
		return err
	}
	cat, err := c.Catalog()
	if err != nil {
		return err
	}
	return cat.Validate()
}

// Scene converts the settings into a scene configuration.
func (c Config) Scene(log *logging.Logger) (scene.Config, error) {
	sc, err := c.scene()
	if err != nil {
		return scene.Config{}, err
	}
	sc.Logger = log
	return sc, nil
}

// Catalog returns the default bodies with particle budgets scaled by Quality.
func (c Config) Catalog() (catalog.Catalog, error) {
	cat := catalog.Default()
	if c.Quality == 1 {
		return cat, nil
	}
	return cat.ScaleParticles(c.Quality)
}

func (c Config) scene() (scene.Config, error) {
	sc := scene.DefaultConfig(c.Seed)
	sc.Workers = c.Workers
	sc.OrbitSegments = c.OrbitSegments

	g := &sc.Galaxy
	g.Count = c.Galaxy.Count
	g.Radius = c.Galaxy.Radius
	g.Branches = c.Galaxy.Branches
	g.Spin = c.Galaxy.Spin
	g.Randomness = c.Galaxy.Randomness
	g.RandomnessPower = c.Galaxy.RandomnessPower
	g.BarLength = c.Galaxy.BarLength
	g.BulgeHeight = c.Galaxy.BulgeHeight
	g.Opacity = c.Galaxy.Opacity

	colors := []struct {
		field string
		value string
		dst   *procgen.Color
	}{
		{"galaxy.colors.core", c.Galaxy.Colors.Core, &g.Colors.Core},
		{"galaxy.colors.bar", c.Galaxy.Colors.Bar, &g.Colors.Bar},
		{"galaxy.colors.arms", c.Galaxy.Colors.Arms, &g.Colors.Arms},
		{"galaxy.colors.nebula", c.Galaxy.Colors.Nebula, &g.Colors.Nebula},
		{"stars.color", c.Stars.Color, &sc.Stars.Color},
	}
	for _, col := range colors {
		v, err := procgen.ParseHex(col.value)
		if err != nil {
			return scene.Config{}, &procgen.ConfigError{Generator: "config", Field: col.field, Value: col.value, Reason: "not a #rrggbb color"}
		}
		*col.dst = v
	}

	sc.Stars.Count = c.Stars.Count
	sc.Stars.HalfExtent = c.Stars.HalfExtent
	sc.Stars.Opacity = c.Stars.Opacity
	return sc, nil
}
