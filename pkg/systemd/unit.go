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

// Package systemd holds the unit file conventions shared by generators.
package systemd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/coreos/go-systemd/v22/unit"

	"github.com/suse/efi-boot-generator/pkg/sys"
	"github.com/suse/efi-boot-generator/pkg/sys/vfs"
)

const (
	LocalFSTarget      = "local-fs.target"
	SystemDataUnitPath = "/usr/lib/systemd/system"
	FsckRootService    = "systemd-fsck-root.service"
	FsckServicePrefix  = "systemd-fsck@"

	WantsSuffix = ".wants"
)

// Option builds a unit file option for the given section
func Option(section, name, value string) *unit.UnitOption {
	return unit.NewUnitOption(section, name, value)
}

// WantsDir returns the directory holding the activation links of the given unit within dir
func WantsDir(dir, target string) string {
	return filepath.Join(dir, target+WantsSuffix)
}

// FsckUnitName returns the name of the systemd-fsck instance checking the given device
func FsckUnitName(what string) string {
	return FsckServicePrefix + unit.UnitNamePathEscape(what) + ".service"
}

// IsDevicePath reports whether the path refers to a device node or sysfs device
func IsDevicePath(path string) bool {
	return strings.HasPrefix(path, "/dev/") || strings.HasPrefix(path, "/sys/")
}

// HiddenFile reports whether a directory entry is one systemd does not consider
// when deciding if a directory is empty: dot files, lost+found, quota files and
// package manager or editor leftovers.
func HiddenFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "lost+found", "aquota.user", "aquota.group":
		return true
	}
	for _, suffix := range []string{"~", ".rpmnew", ".rpmsave", ".rpmorig", ".dpkg-old", ".dpkg-new", ".dpkg-tmp", ".swp"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// WriteHeader writes the comment marking a unit as generated by the given program
func WriteHeader(w io.Writer, generator string) error {
	_, err := fmt.Fprintf(w, "# Automatically generated by %s\n\n", generator)
	return err
}

// WriteSection serializes the given options, all of them are expected to share a section
func WriteSection(w io.Writer, opts ...*unit.UnitOption) error {
	_, err := io.Copy(w, unit.Serialize(opts))
	return err
}

// CreateUnitFile exclusively creates the unit file at path and fills it with
// the write callback. It fails if the file already exists. The file is never
// removed on failure.
func CreateUnitFile(s *sys.System, path string, write func(w io.Writer) error) (err error) {
	f, err := s.FS().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, vfs.UnitFilePerm)
	if err != nil {
		return fmt.Errorf("creating unit file %s: %w", path, err)
	}
	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = fmt.Errorf("closing unit file %s: %w", path, e)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return fmt.Errorf("writing unit file %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("writing unit file %s: %w", path, err)
	}
	return nil
}

// Link creates the relative symlink dir/<target>.wants/<name> pointing to ../<name>
func Link(s *sys.System, dir, target, name string) error {
	link := filepath.Join(WantsDir(dir, target), name)
	if err := vfs.MkdirParents(s.FS(), link, vfs.UnitDirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", link, err)
	}
	if err := s.FS().Symlink(filepath.Join("..", name), link); err != nil {
		return fmt.Errorf("creating symlink %s: %w", link, err)
	}
	return nil
}
