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

package generator

import (
	"fmt"

	"github.com/suse/efi-boot-generator/pkg/detect"
	"github.com/suse/efi-boot-generator/pkg/sys/vfs"
	"github.com/suse/efi-boot-generator/pkg/systemd"
)

type Outcome int

const (
	// Continue lets the next guard run
	Continue Outcome = iota
	// Skip ends the run successfully without generating anything
	Skip
	// Fail ends the run with an error
	Fail
)

// Verdict is the result of a single guard
type Verdict struct {
	Outcome Outcome
	Reason  string
	Err     error
}

func proceed() Verdict {
	return Verdict{Outcome: Continue}
}

func skip(format string, args ...any) Verdict {
	return Verdict{Outcome: Skip, Reason: fmt.Sprintf(format, args...)}
}

// Guard is a named environment condition evaluated before generating
type Guard struct {
	Name  string
	Check func() Verdict
}

// Guards returns the environment guards in evaluation order
func (g *Generator) Guards() []Guard {
	return []Guard{
		{Name: "initrd", Check: g.checkInitrd},
		{Name: "container", Check: g.checkContainer},
		{Name: "efi", Check: g.checkEFIBoot},
		{Name: "boot-populated", Check: g.checkBootPath},
	}
}

func (g *Generator) checkInitrd() Verdict {
	in, name := detect.InInitrd(g.s.FS())
	if !in {
		return proceed()
	}
	if name != "" {
		return skip("In initrd (%s)", name)
	}
	return skip("In initrd")
}

func (g *Generator) checkContainer() Verdict {
	if name := detect.Container(g.s.FS()); name != "" {
		return skip("In a container (%s)", name)
	}
	return proceed()
}

func (g *Generator) checkEFIBoot() Verdict {
	if !detect.IsEFIBoot(g.s.FS()) {
		return skip("Not an EFI boot")
	}
	return proceed()
}

// checkBootPath skips when the boot path is a mount point or a non empty
// directory. A missing boot path does not prevent generation. Probing errors
// count as "not mounted" and "empty".
func (g *Generator) checkBootPath() Verdict {
	path := g.cfg.BootPath
	logger := g.s.Logger()

	exists, err := vfs.Exists(g.s.FS(), path, true)
	if err == nil && !exists {
		logger.Debug("%s does not exist, continuing.", path)
		return proceed()
	}

	mounted, err := g.s.Mounter().IsMountPoint(path)
	if err != nil {
		logger.Debug("Could not determine whether %s is a mount point, assuming it is not: %v", path, err)
		mounted = false
	}
	if mounted {
		if mps, err := g.s.Mounter().GetMountPoints(path); err == nil && len(mps) > 0 {
			return skip("%s is already a mount point (%s)", path, mps[len(mps)-1].Device)
		}
		return skip("%s is already a mount point", path)
	}

	empty, err := vfs.IsEmptyDir(g.s.FS(), path, systemd.HiddenFile)
	if err != nil {
		logger.Debug("Could not list %s, assuming it is empty: %v", path, err)
		return proceed()
	}
	if !empty {
		return skip("%s already populated", path)
	}
	return proceed()
}
