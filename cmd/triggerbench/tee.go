// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
)

// lineTee duplicates every status line to the console and the persisted
// run log, syncing the file after each write so an interrupted run still
// leaves a complete log behind.
type lineTee struct {
	console io.Writer
	file    *os.File
}

func (t *lineTee) Write(p []byte) (int, error) {
	n, err := t.console.Write(p)
	if t.file != nil {
		_, _ = t.file.Write(p)
		_ = t.file.Sync()
	}
	return n, err
}
