package gpioline

// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// These tests run against a recording fake provider so that resource
// handling across the failure paths can be verified without hardware.

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
)

type fakeLine struct {
	values []gpio.Level
	closed int
	setErr error
}

func (l *fakeLine) SetValue(v gpio.Level) error {
	if l.setErr != nil {
		return l.setErr
	}
	l.values = append(l.values, v)
	return nil
}

func (l *fakeLine) Close() error {
	l.closed++
	return nil
}

type fakeChip struct {
	lines      int
	line       *fakeLine
	requestErr error
	requests   int
	closed     int
}

func (c *fakeChip) Lines() int {
	return c.lines
}

func (c *fakeChip) RequestOutput(offset int, initial gpio.Level) (HardwareLine, error) {
	c.requests++
	if c.requestErr != nil {
		return nil, c.requestErr
	}
	c.line.values = append(c.line.values, initial)
	return c.line, nil
}

func (c *fakeChip) Close() error {
	c.closed++
	return nil
}

type fakeProvider struct {
	chip    *fakeChip
	openErr error
	opens   int
}

func (p *fakeProvider) Open(chip string) (HardwareChip, error) {
	p.opens++
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.chip, nil
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{chip: &fakeChip{lines: 32, line: &fakeLine{}}}
}

func TestAcquire(t *testing.T) {
	p := newFakeProvider()
	pin, err := Acquire(p, "gpiochip4", 12, gpio.Low)
	if err != nil {
		t.Fatalf("Acquire() returned %v", err)
	}
	if pin.State() != Acquired {
		t.Errorf("expected state %s, got %s", Acquired, pin.State())
	}
	if pin.Chip() != "gpiochip4" || pin.Offset() != 12 {
		t.Errorf("wrong identity: %s", pin)
	}
	if len(p.chip.line.values) != 1 || p.chip.line.values[0] != gpio.Low {
		t.Errorf("line not initialized low: %v", p.chip.line.values)
	}
}

func TestAcquireChipOpenFailed(t *testing.T) {
	p := newFakeProvider()
	p.openErr = errors.New("no such device")
	_, err := Acquire(p, "gpiochip9", 12, gpio.Low)
	if !errors.Is(err, ErrChipOpen) {
		t.Fatalf("expected ErrChipOpen, got %v", err)
	}
	// No chip was ever opened, so no line request may be attempted.
	if p.chip.requests != 0 {
		t.Errorf("line request attempted after chip open failure")
	}
}

func TestAcquireLineNotFound(t *testing.T) {
	p := newFakeProvider()
	_, err := Acquire(p, "gpiochip4", 99, gpio.Low)
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
	if p.chip.requests != 0 {
		t.Errorf("out of range offset was still requested")
	}
	if p.chip.closed != 1 {
		t.Errorf("chip close count = %d, want 1", p.chip.closed)
	}
}

func TestAcquireLineRequestFailed(t *testing.T) {
	p := newFakeProvider()
	p.chip.requestErr = errors.New("device or resource busy")
	_, err := Acquire(p, "gpiochip4", 12, gpio.Low)
	if !errors.Is(err, ErrLineRequest) {
		t.Fatalf("expected ErrLineRequest, got %v", err)
	}
	if p.chip.closed != 1 {
		t.Errorf("chip leaked after line request failure: close count = %d", p.chip.closed)
	}
}

func TestAcquirePlatformUnsupported(t *testing.T) {
	p := newFakeProvider()
	p.openErr = ErrPlatformUnsupported
	_, err := Acquire(p, "gpiochip4", 12, gpio.Low)
	if !errors.Is(err, ErrPlatformUnsupported) {
		t.Fatalf("expected ErrPlatformUnsupported, got %v", err)
	}
	if errors.Is(err, ErrChipOpen) {
		t.Errorf("platform error misreported as chip open failure: %v", err)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	p := newFakeProvider()
	pin, err := Acquire(p, "gpiochip4", 12, gpio.Low)
	if err != nil {
		t.Fatalf("Acquire() returned %v", err)
	}
	if err := pin.SetValue(gpio.High); err != nil {
		t.Fatalf("SetValue() returned %v", err)
	}

	pin.Release()
	pin.Release()

	if pin.State() != Released {
		t.Errorf("expected state %s, got %s", Released, pin.State())
	}
	if p.chip.line.closed != 1 {
		t.Errorf("line close count = %d, want 1", p.chip.line.closed)
	}
	if p.chip.closed != 1 {
		t.Errorf("chip close count = %d, want 1", p.chip.closed)
	}
	last := p.chip.line.values[len(p.chip.line.values)-1]
	if last != gpio.Low {
		t.Errorf("line not driven low on release, last value %v", last)
	}
}

func TestSetValueAfterRelease(t *testing.T) {
	p := newFakeProvider()
	pin, err := Acquire(p, "gpiochip4", 12, gpio.Low)
	if err != nil {
		t.Fatalf("Acquire() returned %v", err)
	}
	pin.Release()
	writes := len(p.chip.line.values)

	// Writes after release are silently ignored, not errors.
	if err := pin.SetValue(gpio.High); err != nil {
		t.Errorf("SetValue() after Release returned %v", err)
	}
	if len(p.chip.line.values) != writes {
		t.Errorf("write reached hardware after release")
	}
}

func TestZeroPin(t *testing.T) {
	var pin Pin
	if pin.State() != Unacquired {
		t.Errorf("zero pin state = %s, want %s", pin.State(), Unacquired)
	}
	if err := pin.SetValue(gpio.High); err != nil {
		t.Errorf("SetValue() on zero pin returned %v", err)
	}
	pin.Release()
	if pin.State() != Released {
		t.Errorf("state after Release = %s, want %s", pin.State(), Released)
	}
}
