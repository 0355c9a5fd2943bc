// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vizlab turns tabular, hierarchical, network and geographic
// datasets into static charts.
//
// Each subcommand reads its inputs (a path, or "-" for stdin), runs
// the transforms and writes one chart:
//
//	vizlab stars gaia.csv -o stars.svg
//	vizlab temps --format png temps.csv -o stripes.png
//	vizlab budget --layout radial budget.csv -o budget.svg
//	vizlab routes --mode map airports.json flights.json -o routes.svg
//	vizlab flights --chart altitudes dump.json -o altitudes.svg
//	vizlab choropleth regions.geojson density.csv -o density.svg
//	vizlab batch --config vizlab.yaml
//
// With --format json the transform results are written instead of a
// chart. Settings come from the YAML file named by --config.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vizlab/go-vizlab/internal/config"
	"github.com/vizlab/go-vizlab/internal/logger"
)

var (
	flagConfig     string
	flagLogLevel   string
	flagFormat     string
	flagOut        string
	flagOpen       string
	flagCPUProfile string
	flagMemProfile string
)

// Loaded by the root command before any subcommand runs.
var (
	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vizlab",
	Short: "Render datasets as static charts",
	Long: `vizlab turns star catalogs, temperature series, budget hierarchies,
route networks, aircraft positions and regional statistics into SVG or
PNG charts, or into JSON for further processing.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "read settings from YAML `file`")
	pf.StringVar(&flagLogLevel, "log-level", "", "log `level` (debug, info, warn, error)")
	pf.StringVar(&flagFormat, "format", "svg", "output `format`: svg, png or json")
	pf.StringVarP(&flagOut, "out", "o", "", "write output to `file` (default: stdout)")
	pf.StringVar(&flagOpen, "open", "", "open the output with viewer `command` when done")
	pf.StringVar(&flagCPUProfile, "cpuprofile", "", "write CPU profile to `file`")
	pf.StringVar(&flagMemProfile, "memprofile", "", "write heap profile to `file`")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return usageError(err)
	}
	level := cfg.Logging.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	l, err := logger.New(level, cfg.Logging.Development)
	if err != nil {
		return usageError(err)
	}
	log = l.Named(cmd.Name())
	return startProfiles()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	stopProfiles()
	if log != nil {
		log.Sync()
	}
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "vizlab: %v\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Errors that reach here come from cobra's own flag and
	// argument checks.
	return ExitUsage
}

// profileStops undo startProfiles, in reverse order.
var profileStops []func()

func startProfiles() error {
	if flagCPUProfile != "" {
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			return usageError(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return failure(err)
		}
		profileStops = append(profileStops, func() {
			pprof.StopCPUProfile()
			f.Close()
		})
	}
	if flagMemProfile != "" {
		path := flagMemProfile
		profileStops = append(profileStops, func() {
			runtime.GC()
			f, err := os.Create(path)
			if err != nil {
				log.Error("writing heap profile", zap.Error(err))
				return
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		})
	}
	return nil
}

func stopProfiles() {
	for i := len(profileStops) - 1; i >= 0; i-- {
		profileStops[i]()
	}
	profileStops = nil
}
