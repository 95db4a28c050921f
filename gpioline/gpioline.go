// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package gpioline provides scoped exclusive ownership of a single GPIO
// output line on a Linux GPIO character device chip.
//
// A Pin is obtained with Acquire() and holds both the chip and the
// requested line until Release() is called. Release is idempotent and is
// meant to be deferred immediately after a successful Acquire, so the line
// is driven low and both kernel resources are returned on every exit path.
package gpioline

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// State tracks where a Pin is in its lifecycle.
type State uint32

const (
	Unacquired State = 0
	Acquired   State = 1
	Released   State = 2
)

var stateLabels = []string{"Unacquired", "Acquired", "Released"}

func (s State) String() string {
	if int(s) >= len(stateLabels) {
		return fmt.Sprintf("State(%d)", uint32(s))
	}
	return stateLabels[s]
}

// Acquisition errors. All of them abort the run; a mis-acquired line
// cannot safely be driven.
var (
	// ErrPlatformUnsupported is returned on platforms without the GPIO
	// character device, before any acquisition is attempted.
	ErrPlatformUnsupported = errors.New("hardware GPIO is not supported on this platform")
	// ErrChipOpen is returned when the named chip device cannot be opened.
	ErrChipOpen = errors.New("failed to open GPIO chip")
	// ErrLineNotFound is returned when the requested offset does not exist
	// on the opened chip. The chip is closed before the error propagates.
	ErrLineNotFound = errors.New("line offset not present on GPIO chip")
	// ErrLineRequest is returned when the line exists but cannot be claimed
	// as an output, typically because another consumer holds it. The chip
	// is closed before the error propagates.
	ErrLineRequest = errors.New("failed to request GPIO line as output")
)

// HardwareLineProvider is the platform capability needed to reach a GPIO
// line. SystemProvider() returns the implementation for the running
// platform; tests substitute a recording fake.
type HardwareLineProvider interface {
	Open(chip string) (HardwareChip, error)
}

// HardwareChip is one opened GPIO chip device.
type HardwareChip interface {
	// Lines returns the number of lines the chip exposes.
	Lines() int
	// RequestOutput claims exclusive output ownership of the line at
	// offset, driven to initial.
	RequestOutput(offset int, initial gpio.Level) (HardwareLine, error)
	Close() error
}

// HardwareLine is one requested output line.
type HardwareLine interface {
	SetValue(gpio.Level) error
	Close() error
}

// Pin owns one hardware output line. The zero value is an Unacquired pin:
// writes to it are silently ignored and Release() moves it straight to
// Released.
type Pin struct {
	chip   string
	offset int
	state  State
	hwChip HardwareChip
	hwLine HardwareLine
}

// Acquire opens the named chip and claims the line at offset for output,
// driven to initial. On failure nothing remains held: if the line lookup or
// request fails after the chip opened, the chip is closed before the error
// is returned. The caller should defer Release() on the returned Pin.
func Acquire(p HardwareLineProvider, chip string, offset int, initial gpio.Level) (*Pin, error) {
	c, err := p.Open(chip)
	if err != nil {
		if errors.Is(err, ErrPlatformUnsupported) {
			return nil, err
		}
		return nil, fmt.Errorf("%w %s: %v", ErrChipOpen, chip, err)
	}
	if offset < 0 || offset >= c.Lines() {
		_ = c.Close()
		return nil, fmt.Errorf("%w: offset %d, %s has %d lines", ErrLineNotFound, offset, chip, c.Lines())
	}
	l, err := c.RequestOutput(offset, initial)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: %s:%d: %v", ErrLineRequest, chip, offset, err)
	}
	return &Pin{chip: chip, offset: offset, state: Acquired, hwChip: c, hwLine: l}, nil
}

// SetValue drives the line. It silently does nothing unless the pin is
// Acquired, so defensive writes during teardown are safe. A write error
// from the hardware is returned for the caller to tally; the pin state
// cannot be verified without hardware feedback, so such errors are never
// treated as fatal here.
func (p *Pin) SetValue(l gpio.Level) error {
	if p.state != Acquired {
		return nil
	}
	return p.hwLine.SetValue(l)
}

// Release drives the line low, releases it and closes the chip. Safe to
// call any number of times; only the first call on an Acquired pin touches
// the hardware.
func (p *Pin) Release() {
	if p.state != Acquired {
		p.state = Released
		return
	}
	_ = p.hwLine.SetValue(gpio.Low)
	_ = p.hwLine.Close()
	_ = p.hwChip.Close()
	p.hwLine = nil
	p.hwChip = nil
	p.state = Released
}

// Chip returns the chip device name the pin was acquired from.
func (p *Pin) Chip() string {
	return p.chip
}

// Offset returns the line offset on the chip. Note that this has no
// relationship to any board pin numbering scheme.
func (p *Pin) Offset() int {
	return p.offset
}

// State returns the pin's lifecycle state.
func (p *Pin) State() State {
	return p.state
}

func (p *Pin) String() string {
	return fmt.Sprintf("%s:%d (%s)", p.chip, p.offset, p.state)
}
