// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vizlab/go-vizlab/internal/config"
)

func init() {
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render every job listed in the configuration",
	Long: `Render the charts listed under batch.jobs in the --config file,
several at a time, into batch.out_dir. A manifest.json in the output
directory records the run ID and the outcome of every job.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Batch.Jobs) == 0 {
			return usageError(errors.New("no batch jobs configured"))
		}
		m, err := runBatch(&cfg, log)
		if werr := writeManifest(filepath.Join(cfg.Batch.OutDir, "manifest.json"), m); werr != nil && err == nil {
			err = failure(werr)
		}
		return err
	},
}

// Manifest records one batch run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Started time.Time       `json:"started"`
	Jobs    []ManifestEntry `json:"jobs"`
}

// ManifestEntry is the outcome of one job.
type ManifestEntry struct {
	Name     string `json:"name"`
	Chart    string `json:"chart"`
	Output   string `json:"output"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// runBatch runs every job of c.Batch, at most c.Batch.Concurrency at
// a time. Outputs are relative to c.Batch.OutDir. All jobs run even if
// some fail; the first error is returned with the manifest.
func runBatch(c *config.Config, l *zap.Logger) (*Manifest, error) {
	m := &Manifest{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Jobs:    make([]ManifestEntry, len(c.Batch.Jobs)),
	}
	l = l.With(zap.String("run", m.RunID))
	if err := os.MkdirAll(c.Batch.OutDir, 0o777); err != nil {
		return m, failure(err)
	}

	var g errgroup.Group
	g.SetLimit(c.Batch.Concurrency)
	var mu sync.Mutex
	for i, job := range c.Batch.Jobs {
		i, job := i, job
		job.Output = filepath.Join(c.Batch.OutDir, job.Output)
		g.Go(func() error {
			start := time.Now()
			err := runJob(c, job, l.With(zap.String("job", job.Name)))
			e := ManifestEntry{
				Name:     job.Name,
				Chart:    job.Chart,
				Output:   job.Output,
				Duration: time.Since(start).Round(time.Millisecond).String(),
			}
			if err != nil {
				e.Error = err.Error()
				l.Error("job failed", zap.String("job", job.Name), zap.Error(err))
				err = fmt.Errorf("job %s: %w", job.Name, err)
			}
			mu.Lock()
			m.Jobs[i] = e
			mu.Unlock()
			return err
		})
	}
	return m, g.Wait()
}

func writeManifest(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeJSON(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
