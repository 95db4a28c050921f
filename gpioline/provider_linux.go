//go:build linux

// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Real hardware access through the kernel GPIO character device, using
// go-gpiocdev.
//
// https://docs.kernel.org/userspace-api/gpio/chardev.html

package gpioline

import (
	"github.com/warthog618/go-gpiocdev"

	"periph.io/x/conn/v3/gpio"
)

// SystemProvider returns the provider backed by /dev/gpiochip* devices.
func SystemProvider() HardwareLineProvider {
	return cdevProvider{}
}

type cdevProvider struct{}

func (cdevProvider) Open(name string) (HardwareChip, error) {
	c, err := gpiocdev.NewChip(name, gpiocdev.WithConsumer("triggerbench"))
	if err != nil {
		return nil, err
	}
	return &cdevChip{chip: c}, nil
}

type cdevChip struct {
	chip *gpiocdev.Chip
}

func (c *cdevChip) Lines() int {
	return c.chip.Lines()
}

func (c *cdevChip) RequestOutput(offset int, initial gpio.Level) (HardwareLine, error) {
	l, err := c.chip.RequestLine(offset, gpiocdev.AsOutput(levelValue(initial)))
	if err != nil {
		return nil, err
	}
	return &cdevLine{line: l}, nil
}

func (c *cdevChip) Close() error {
	return c.chip.Close()
}

type cdevLine struct {
	line *gpiocdev.Line
}

func (l *cdevLine) SetValue(level gpio.Level) error {
	return l.line.SetValue(levelValue(level))
}

func (l *cdevLine) Close() error {
	return l.line.Close()
}

func levelValue(l gpio.Level) int {
	if l == gpio.High {
		return 1
	}
	return 0
}
