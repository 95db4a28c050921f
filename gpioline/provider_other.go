//go:build !linux

// Copyright 2026 The Triggerbench Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// The GPIO character device only exists on Linux. Everywhere else the
// system provider refuses every acquisition up front.

package gpioline

// SystemProvider returns a provider whose Open always fails with
// ErrPlatformUnsupported.
func SystemProvider() HardwareLineProvider {
	return unsupportedProvider{}
}

type unsupportedProvider struct{}

func (unsupportedProvider) Open(string) (HardwareChip, error) {
	return nil, ErrPlatformUnsupported
}
