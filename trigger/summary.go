// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package trigger

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
)

// ErrNoCycles is returned by Compute for a zero cycle count. That is a
// caller bug, not a runtime condition: rates over an empty run are
// undefined.
var ErrNoCycles = errors.New("cannot summarize a run of zero cycles")

// Summary is the measured result of one trigger run.
type Summary struct {
	Cycles  int
	Elapsed time.Duration
	// WriteFailures counts pin writes that errored during the run. They
	// never abort the sequence, but a non-zero count is worth reporting:
	// it can mask a real hardware fault.
	WriteFailures int
}

// Compute builds a Summary from a cycle count and a measured elapsed time.
// Pure function of its inputs; callers must guarantee cycles >= 1.
func Compute(cycles int, elapsed time.Duration) (Summary, error) {
	if cycles < 1 {
		return Summary{}, ErrNoCycles
	}
	return Summary{Cycles: cycles, Elapsed: elapsed}, nil
}

// RatePerSecond returns the average trigger rate in cycles per second.
func (s Summary) RatePerSecond() float64 {
	return float64(s.Cycles) / s.Elapsed.Seconds()
}

// Rate returns the average trigger rate as a frequency.
func (s Summary) Rate() physic.Frequency {
	return physic.Frequency(s.RatePerSecond() * float64(physic.Hertz))
}

// CycleTime returns the average wall-clock time of one press/release cycle.
func (s Summary) CycleTime() time.Duration {
	return s.Elapsed / time.Duration(s.Cycles)
}

func (s Summary) String() string {
	return fmt.Sprintf("%d triggers in %.2fs (%.2f/s, %s per cycle)",
		s.Cycles, s.Elapsed.Seconds(), s.RatePerSecond(),
		s.CycleTime().Round(time.Millisecond))
}
