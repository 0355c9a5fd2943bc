// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/vizlab/go-vizlab/internal/config"
)

// isTerminal reports whether fd is a terminal. Tests replace it.
var isTerminal = func(fd int) bool {
	return os.Getenv("TERM") != "dumb" && terminal.IsTerminal(fd)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// createOutput opens path for writing, or stdout if path is "" or
// "-". Charts are not written to a terminal.
func createOutput(path, format string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		if format != "json" && format != "dot" && isTerminal(int(os.Stdout.Fd())) {
			return nil, usageError(fmt.Errorf("refusing to write %s to a terminal; use -o", format))
		}
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return nil, failure(err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, usageError(err)
	}
	return f, nil
}

// openInputs opens every path, with "-" meaning stdin. The returned
// function closes them.
func openInputs(paths []string) ([]io.Reader, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	in := make([]io.Reader, len(paths))
	stdin := false
	for i, p := range paths {
		if p == "-" {
			if stdin {
				closeAll()
				return nil, nil, usageError(errors.New("stdin can only be read once"))
			}
			stdin = true
			in[i] = os.Stdin
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, usageError(err)
		}
		files = append(files, f)
		in[i] = f
	}
	return in, closeAll, nil
}

// runJob renders one chart from job's inputs to job's output.
func runJob(c *config.Config, job config.Job, l *zap.Logger) error {
	ch, ok := charts[job.Chart]
	if !ok {
		return usageError(fmt.Errorf("unknown chart %q", job.Chart))
	}
	if err := ch.check(&job); err != nil {
		return usageError(err)
	}
	in, closeInputs, err := openInputs(job.Inputs)
	if err != nil {
		return err
	}
	defer closeInputs()
	out, err := createOutput(job.Output, job.Format)
	if err != nil {
		return err
	}

	start := time.Now()
	err = ch.render(c, job, in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = failure(cerr)
	}
	if err != nil {
		return err
	}
	l.Info("wrote chart",
		zap.String("chart", job.Chart),
		zap.String("variant", job.Variant),
		zap.String("format", job.Format),
		zap.String("output", job.Output),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// openViewer starts the viewer command line on path without waiting
// for it.
func openViewer(cmdline, path string) error {
	args, err := shellquote.Split(cmdline)
	if err != nil {
		return usageError(fmt.Errorf("parsing --open: %w", err))
	}
	if len(args) == 0 {
		return nil
	}
	if path == "" || path == "-" {
		return usageError(errors.New("--open needs an output file; use -o"))
	}
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdout, cmd.Stderr = os.Stderr, os.Stderr
	if err := cmd.Start(); err != nil {
		return failure(fmt.Errorf("starting viewer: %w", err))
	}
	return cmd.Process.Release()
}
