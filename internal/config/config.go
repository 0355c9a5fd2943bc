// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads vizlab's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete vizlab configuration. Every chart reads
// only its own section.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Seed       int64            `yaml:"seed"`
	Stars      StarsConfig      `yaml:"stars"`
	Temps      TempsConfig      `yaml:"temps"`
	Budget     BudgetConfig     `yaml:"budget"`
	Routes     RoutesConfig     `yaml:"routes"`
	Flights    FlightsConfig    `yaml:"flights"`
	Choropleth ChoroplethConfig `yaml:"choropleth"`
	Batch      BatchConfig      `yaml:"batch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Size is a chart's pixel size and margins.
type Size struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Margin Margin `yaml:"margin"`
}

// Margin is in pixels.
type Margin struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// StarsConfig configures the spectral-class chart.
type StarsConfig struct {
	Size      `yaml:",inline"`
	Bandwidth float64 `yaml:"bandwidth"` // kelvin
	Steps     int     `yaml:"steps"`     // density grid points per class
}

// TempsConfig configures the temperature anomaly charts.
type TempsConfig struct {
	Size          `yaml:",inline"`
	ReferenceYear int `yaml:"reference_year"`
	RowHeight     int `yaml:"row_height"`
	StripeWidth   int `yaml:"stripe_width"`
	LabelWidth    int `yaml:"label_width"`
}

// BudgetConfig configures the budget hierarchy charts.
type BudgetConfig struct {
	Size         `yaml:",inline"`
	Layout       string  `yaml:"layout"` // treemap or radial
	PaddingInner float64 `yaml:"padding_inner"`
	PaddingOuter float64 `yaml:"padding_outer"`
	Degrees      float64 `yaml:"degrees"`
}

// RoutesConfig configures the route graph.
type RoutesConfig struct {
	Size     `yaml:",inline"`
	Mode     string  `yaml:"mode"` // force or map
	MinCount int     `yaml:"min_count"`
	Scale    float64 `yaml:"scale"` // Albers USA scale
	Inset    int     `yaml:"inset"` // fallback distance from the bottom-right corner
}

// FlightsConfig configures the aircraft charts.
type FlightsConfig struct {
	Size      `yaml:",inline"`
	Bandwidth float64 `yaml:"bandwidth"` // feet
	Steps     int     `yaml:"steps"`
}

// ChoroplethConfig configures the population density map.
type ChoroplethConfig struct {
	Size `yaml:",inline"`
	Year string `yaml:"year"`
}

// BatchConfig lists chart jobs for "vizlab batch".
type BatchConfig struct {
	OutDir      string `yaml:"out_dir"`
	Concurrency int    `yaml:"concurrency"`
	Jobs        []Job  `yaml:"jobs"`
}

// Job is one chart to render.
type Job struct {
	Name    string   `yaml:"name"`
	Chart   string   `yaml:"chart"` // a vizlab subcommand name
	Inputs  []string `yaml:"inputs"`
	Output  string   `yaml:"output"`
	Format  string   `yaml:"format"`
	Variant string   `yaml:"variant"` // budget layout, routes mode or flights chart
}

// Charts names the charts a Job may render, with the number of input
// files each reads.
var Charts = map[string]int{
	"stars":      1,
	"temps":      1,
	"budget":     1,
	"routes":     2,
	"flights":    1,
	"choropleth": 2,
}

// Load reads the YAML file at path, expanding ${VAR} and
// ${VAR:-default} from the environment, then applies defaults and
// validates. An empty path yields the defaults. A .env file next to
// the config, if present, is loaded into the environment first.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		env := filepath.Join(filepath.Dir(path), ".env")
		if _, err := os.Stat(env); err == nil {
			if err := godotenv.Load(env); err != nil {
				return Config{}, fmt.Errorf("failed to load %s: %w", env, err)
			}
		}
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}

func (s *Size) defaults(w, h int, m Margin) {
	if s.Width <= 0 {
		s.Width = w
	}
	if s.Height <= 0 {
		s.Height = h
	}
	if s.Margin == (Margin{}) {
		s.Margin = m
	}
}

var chartMargin = Margin{Top: 20, Right: 20, Bottom: 50, Left: 70}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Seed == 0 {
		c.Seed = 1
	}

	c.Stars.defaults(1280, 720, chartMargin)
	if c.Stars.Bandwidth == 0 {
		c.Stars.Bandwidth = 1000
	}
	if c.Stars.Steps == 0 {
		c.Stars.Steps = 100
	}

	c.Temps.defaults(1000, 400, chartMargin)
	if c.Temps.ReferenceYear == 0 {
		c.Temps.ReferenceYear = 2010
	}
	if c.Temps.RowHeight == 0 {
		c.Temps.RowHeight = 20
	}
	if c.Temps.StripeWidth == 0 {
		c.Temps.StripeWidth = 2
	}
	if c.Temps.LabelWidth == 0 {
		c.Temps.LabelWidth = 110
	}

	c.Budget.defaults(1280, 1024, Margin{})
	if c.Budget.Layout == "" {
		c.Budget.Layout = "treemap"
	}
	if c.Budget.PaddingInner == 0 {
		c.Budget.PaddingInner = 3
	}
	if c.Budget.PaddingOuter == 0 {
		c.Budget.PaddingOuter = 3
	}
	if c.Budget.Degrees == 0 {
		c.Budget.Degrees = 360
	}

	c.Routes.defaults(860, 600, Margin{})
	if c.Routes.Mode == "" {
		c.Routes.Mode = "force"
	}
	if c.Routes.MinCount == 0 {
		c.Routes.MinCount = 2600
	}
	if c.Routes.Scale == 0 {
		c.Routes.Scale = 1000
	}
	if c.Routes.Inset == 0 {
		c.Routes.Inset = 50
	}

	c.Flights.defaults(700, 500, chartMargin)
	if c.Flights.Bandwidth == 0 {
		c.Flights.Bandwidth = 1000
	}
	if c.Flights.Steps == 0 {
		c.Flights.Steps = 50
	}

	c.Choropleth.defaults(1024, 1024, Margin{})
	if c.Choropleth.Year == "" {
		c.Choropleth.Year = "2020"
	}

	if c.Batch.OutDir == "" {
		c.Batch.OutDir = "out"
	}
	if c.Batch.Concurrency <= 0 {
		c.Batch.Concurrency = 4
	}
	for i := range c.Batch.Jobs {
		j := &c.Batch.Jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("%s-%d", j.Chart, i)
		}
		if j.Format == "" {
			j.Format = "svg"
			if j.Chart == "temps" {
				j.Format = "png"
			}
		}
		if j.Output == "" {
			j.Output = j.Name + "." + j.Format
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	for _, s := range []struct {
		name string
		Size
	}{
		{"stars", c.Stars.Size}, {"temps", c.Temps.Size}, {"budget", c.Budget.Size},
		{"routes", c.Routes.Size}, {"flights", c.Flights.Size}, {"choropleth", c.Choropleth.Size},
	} {
		check(s.Width > s.Margin.Left+s.Margin.Right && s.Height > s.Margin.Top+s.Margin.Bottom,
			"%s: margins leave no room to plot in %dx%d", s.name, s.Width, s.Height)
	}
	check(c.Stars.Bandwidth > 0, "stars.bandwidth must be positive, got %g", c.Stars.Bandwidth)
	check(c.Stars.Steps > 0, "stars.steps must be positive, got %d", c.Stars.Steps)
	check(c.Flights.Bandwidth > 0, "flights.bandwidth must be positive, got %g", c.Flights.Bandwidth)
	check(c.Flights.Steps > 0, "flights.steps must be positive, got %d", c.Flights.Steps)
	check(c.Temps.RowHeight > 0 && c.Temps.StripeWidth > 0, "temps.row_height and temps.stripe_width must be positive")
	check(c.Budget.Layout == "treemap" || c.Budget.Layout == "radial",
		`budget.layout must be "treemap" or "radial", got %q`, c.Budget.Layout)
	check(c.Budget.Degrees > 0 && c.Budget.Degrees <= 360, "budget.degrees must be in (0, 360], got %g", c.Budget.Degrees)
	check(c.Routes.Mode == "force" || c.Routes.Mode == "map",
		`routes.mode must be "force" or "map", got %q`, c.Routes.Mode)
	check(c.Routes.MinCount >= 0, "routes.min_count must not be negative, got %d", c.Routes.MinCount)

	// Batch jobs run concurrently, so no two may share an output
	// file or stdin.
	names := make(map[string]bool)
	outputs := make(map[string]bool)
	stdin := false
	for i, j := range c.Batch.Jobs {
		n, ok := Charts[j.Chart]
		check(ok, "batch.jobs[%d]: unknown chart %q", i, j.Chart)
		check(!ok || len(j.Inputs) == n, "batch.jobs[%d]: %s needs %d inputs, got %d", i, j.Chart, n, len(j.Inputs))
		check(!names[j.Name], "batch.jobs[%d]: duplicate name %q", i, j.Name)
		names[j.Name] = true
		if j.Output != "" {
			out := filepath.Clean(j.Output)
			check(!outputs[out], "batch.jobs[%d]: output %q is written by another job", i, j.Output)
			outputs[out] = true
		}
		if slices.Contains(j.Inputs, "-") {
			check(!stdin, "batch.jobs[%d]: stdin is read by another job", i)
			stdin = true
		}
	}
	return errors.Join(errs...)
}
