// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package trigger drives a GPIO output line through timed press/release
// cycles and reports timing statistics for the run.
package trigger

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Output is the single line the controller drives. *gpioline.Pin
// satisfies it.
type Output interface {
	SetValue(gpio.Level) error
}

// Config holds the cycle parameters for a run.
type Config struct {
	// Cycles is the number of press/release pairs to run.
	Cycles int
	// Press is how long the line is held high per cycle.
	Press time.Duration
	// Delay is the pause after release before the next press. It covers
	// whatever the triggered device needs to finish one actuation.
	Delay time.Duration
}

// Controller runs the press/release schedule against an Output.
type Controller struct {
	cfg      Config
	progress func(done, total int)
	sleep    func(time.Duration)
}

func New(cfg Config) *Controller {
	return &Controller{cfg: cfg, sleep: time.Sleep}
}

// OnProgress registers a per-cycle callback. It is a reporting side channel
// only; it carries no control flow and must return promptly so it does not
// distort the cycle timing.
func (c *Controller) OnProgress(fn func(done, total int)) {
	c.progress = fn
}

// Run executes the configured cycles: high, hold for Press, low, hold for
// Delay. The sequence always runs to completion once started; a failed
// write cannot be distinguished from a cosmetic fault without hardware
// feedback, so failures are tallied on the summary instead of aborting.
// Sleeps are best effort and may overshoot. No attempt is made to
// compensate for drift: the summary's elapsed time comes from real
// timestamps, not the nominal durations.
func (c *Controller) Run(out Output) Summary {
	start := time.Now()
	failures := 0
	for i := 1; i <= c.cfg.Cycles; i++ {
		if c.progress != nil {
			c.progress(i, c.cfg.Cycles)
		}
		if err := out.SetValue(gpio.High); err != nil {
			failures++
		}
		c.sleep(c.cfg.Press)
		if err := out.SetValue(gpio.Low); err != nil {
			failures++
		}
		c.sleep(c.cfg.Delay)
	}
	return Summary{
		Cycles:        c.cfg.Cycles,
		Elapsed:       time.Since(start),
		WriteFailures: failures,
	}
}
