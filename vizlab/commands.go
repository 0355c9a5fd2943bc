// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vizlab/go-vizlab/internal/config"
)

// chartCmd describes the subcommand for one chart.
type chartCmd struct {
	name, short string

	// variantFlag names the flag that selects the chart variant,
	// if the chart has variants. configVariant returns the
	// configured default.
	variantFlag   string
	configVariant func(*config.Config) string
}

var chartCmds = []chartCmd{
	{name: "stars", short: "Temperature box and violin plots by spectral class", variantFlag: "chart"},
	{name: "temps", short: "Monthly temperature anomalies as stripes or lines"},
	{name: "budget", short: "Budget hierarchy as a treemap or radial tree", variantFlag: "layout",
		configVariant: func(c *config.Config) string { return c.Budget.Layout }},
	{name: "routes", short: "Air route network on a map or by force layout", variantFlag: "mode",
		configVariant: func(c *config.Config) string { return c.Routes.Mode }},
	{name: "flights", short: "Aircraft positions, altitudes and status", variantFlag: "chart"},
	{name: "choropleth", short: "Regional population density map"},
}

func init() {
	for _, cc := range chartCmds {
		rootCmd.AddCommand(cc.command())
	}
}

func (cc chartCmd) command() *cobra.Command {
	ch := charts[cc.name]
	var variant string
	var dot bool
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [flags] %s", cc.name, strings.Join(ch.inputs, " ")),
		Short: cc.short,
		Args:  cobra.ExactArgs(len(ch.inputs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := config.Job{
				Name:   cc.name,
				Chart:  cc.name,
				Inputs: args,
				Output: flagOut,
				Format: flagFormat,
			}
			if !cmd.Flags().Changed("format") {
				job.Format = ch.formats[0]
			}
			if dot {
				job.Format = "dot"
			}
			switch {
			case cc.variantFlag != "" && cmd.Flags().Changed(cc.variantFlag):
				job.Variant = variant
			case cc.configVariant != nil:
				job.Variant = cc.configVariant(&cfg)
			}
			if err := runJob(&cfg, job, log); err != nil {
				return err
			}
			if flagOpen != "" {
				return openViewer(flagOpen, flagOut)
			}
			return nil
		},
	}
	if cc.variantFlag != "" {
		cmd.Flags().StringVar(&variant, cc.variantFlag, ch.variants[0],
			fmt.Sprintf("draw `%s` (%s)", cc.variantFlag, strings.Join(ch.variants, ", ")))
	}
	if cc.name == "routes" {
		cmd.Flags().BoolVar(&dot, "dot", false, "write the graph in Graphviz format")
	}
	return cmd
}
