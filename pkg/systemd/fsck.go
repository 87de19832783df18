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

package systemd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/suse/efi-boot-generator/pkg/sys"
	"github.com/suse/efi-boot-generator/pkg/sys/vfs"
)

const FsckCheckerPrefix = "/sbin/fsck."

// WriteFsckDeps writes the [Unit] dependencies ordering the mount of what on
// where after its filesystem check. A missing checker for fstype is not an
// error, the mount is just not checked. The root filesystem is checked by
// systemd-fsck-root.service, which gets pulled in by local-fs.target instead.
func WriteFsckDeps(s *sys.System, w io.Writer, dest, what, where, fstype string) error {
	if !IsDevicePath(what) {
		s.Logger().Warn("Checking was requested for \"%s\", but it is not a device.", what)
		return nil
	}

	if fstype != "" && fstype != "auto" {
		checker := FsckCheckerPrefix + fstype
		info, err := s.FS().Stat(checker)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			s.Logger().Warn("Checking was requested for %s, but %s does not exist.", what, checker)
			return nil
		case err != nil:
			return fmt.Errorf("checking %s: %w", checker, err)
		case info.IsDir() || info.Mode().Perm()&0111 == 0:
			return fmt.Errorf("checking was requested for %s, but %s is not executable", what, checker)
		}
	}

	if filepath.Clean(where) == "/" {
		link := filepath.Join(WantsDir(dest, LocalFSTarget), FsckRootService)
		if err := vfs.MkdirParents(s.FS(), link, vfs.UnitDirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", link, err)
		}
		if err := s.FS().Symlink(filepath.Join(SystemDataUnitPath, FsckRootService), link); err != nil {
			return fmt.Errorf("creating symlink %s: %w", link, err)
		}
		return nil
	}

	fsck := FsckUnitName(what)
	_, err := fmt.Fprintf(w, "Requires=%s\nAfter=%s\n", fsck, fsck)
	return err
}
