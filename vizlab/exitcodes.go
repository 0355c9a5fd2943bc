// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1 // a transform or renderer failed
	ExitUsage   = 2 // bad flags, configuration or input
)

// exitError carries the exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{ExitUsage, err}
}

func failure(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{ExitFailure, err}
}
