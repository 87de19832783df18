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
	"io"
	"path/filepath"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"

	"github.com/suse/efi-boot-generator/pkg/systemd"
)

const (
	FSType = "vfat"

	MountDescription     = "EFI System Partition"
	AutomountDescription = "EFI System Partition Automount"
	Documentation        = "man:systemd-efi-boot-generator(8)"
)

// MountOptions keeps the ESP private to root and lets the automount unit trigger the mount
var MountOptions = []string{"umask=0077", "noauto"}

// UnitName returns the unit name systemd expects for the given mount point and unit type
func UnitName(where, suffix string) string {
	return unit.UnitNamePathEscape(where) + "." + suffix
}

// Emit writes the mount and automount units for what and links the automount
// unit into local-fs.target. Existing files are never overwritten.
func (g *Generator) Emit(what string) error {
	dest := g.cfg.Dest
	where := g.cfg.BootPath
	mountUnit := UnitName(where, "mount")
	automountUnit := UnitName(where, "automount")

	err := systemd.CreateUnitFile(g.s, filepath.Join(dest, mountUnit), func(w io.Writer) error {
		if err := systemd.WriteHeader(w, Name); err != nil {
			return err
		}
		err := systemd.WriteSection(w,
			systemd.Option("Unit", "Description", MountDescription),
			systemd.Option("Unit", "Documentation", Documentation),
		)
		if err != nil {
			return err
		}
		if err = systemd.WriteFsckDeps(g.s, w, dest, what, where, FSType); err != nil {
			return err
		}
		if _, err = io.WriteString(w, "\n"); err != nil {
			return err
		}
		return systemd.WriteSection(w,
			systemd.Option("Mount", "What", what),
			systemd.Option("Mount", "Where", where),
			systemd.Option("Mount", "Type", FSType),
			systemd.Option("Mount", "Options", strings.Join(MountOptions, ",")),
		)
	})
	if err != nil {
		return err
	}

	err = systemd.CreateUnitFile(g.s, filepath.Join(dest, automountUnit), func(w io.Writer) error {
		if err := systemd.WriteHeader(w, Name); err != nil {
			return err
		}
		err := systemd.WriteSection(w, systemd.Option("Unit", "Description", AutomountDescription))
		if err != nil {
			return err
		}
		if _, err = io.WriteString(w, "\n"); err != nil {
			return err
		}
		return systemd.WriteSection(w, systemd.Option("Automount", "Where", where))
	})
	if err != nil {
		return err
	}

	return systemd.Link(g.s, dest, systemd.LocalFSTarget, automountUnit)
}
