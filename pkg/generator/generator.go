/*
Copyright © 2025 SUSE LLC
SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package generator emits the systemd units that mount the EFI System
// Partition the boot loader was started from on /boot.
package generator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/suse/efi-boot-generator/pkg/efi"
	"github.com/suse/efi-boot-generator/pkg/sys"
)

const (
	Name = "efi-boot-generator"

	DefaultDest     = "/tmp"
	DefaultBootPath = "/boot"

	// LoaderPartitionStep names the skip produced when the firmware did not report an ESP
	LoaderPartitionStep = "loader-partition"
)

// Config is the execution context of a single generator run
type Config struct {
	// Dest is the directory receiving the generated units
	Dest string
	// BootPath is where the ESP gets mounted
	BootPath string
}

// DefaultConfig returns the configuration used when no output directories are given
func DefaultConfig() Config {
	return Config{Dest: DefaultDest, BootPath: DefaultBootPath}
}

// Result describes how a run ended. A run that did not generate anything
// names the step that stopped it.
type Result struct {
	Generated bool
	SkippedBy string
	Reason    string
	Device    string
}

type Generator struct {
	s    *sys.System
	vars efi.Variables
	cfg  Config
}

func New(s *sys.System, vars efi.Variables, cfg Config) *Generator {
	if cfg.Dest == "" {
		cfg.Dest = DefaultDest
	}
	if cfg.BootPath == "" {
		cfg.BootPath = DefaultBootPath
	}
	return &Generator{s: s, vars: vars, cfg: cfg}
}

// Run evaluates the environment guards, resolves the ESP partition UUID and
// writes the units. Skips are not errors, any returned error is fatal.
// Files already written are left in place on failure.
func (g *Generator) Run() (Result, error) {
	for _, guard := range g.Guards() {
		v := guard.Check()
		switch v.Outcome {
		case Continue:
			continue
		case Skip:
			g.s.Logger().Debug("%s, exiting.", v.Reason)
			return Result{SkippedBy: guard.Name, Reason: v.Reason}, nil
		default:
			return Result{}, fmt.Errorf("%s check: %w", guard.Name, v.Err)
		}
	}

	id, err := efi.LoaderDevicePartUUID(g.vars)
	if errors.Is(err, efi.ErrLoaderPartitionUnknown) {
		reason := "EFI loader partition unknown"
		g.s.Logger().Debug("%s, exiting.", reason)
		return Result{SkippedBy: LoaderPartitionStep, Reason: reason}, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("failed to read ESP partition UUID: %w", err)
	}

	what := DevicePath(id)
	if err = g.Emit(what); err != nil {
		return Result{Device: what}, err
	}

	g.s.Logger().Debug("Generated units for %s on %s in %s", what, g.cfg.BootPath, g.cfg.Dest)
	return Result{Generated: true, Device: what}, nil
}

// DevicePath returns the stable device path of the partition with the given UUID
func DevicePath(id uuid.UUID) string {
	return efi.PartUUIDDevicePath(id)
}
