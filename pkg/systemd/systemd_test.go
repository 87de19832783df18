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

package systemd_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/v4/vfst"

	"github.com/suse/efi-boot-generator/pkg/log"
	"github.com/suse/efi-boot-generator/pkg/sys"
	sysmock "github.com/suse/efi-boot-generator/pkg/sys/mock"
	"github.com/suse/efi-boot-generator/pkg/sys/vfs"
	"github.com/suse/efi-boot-generator/pkg/systemd"
)

func TestSystemdSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Systemd test suite")
}

const device = "/dev/disk/by-partuuid/01234567-89ab-cdef-0123-456789abcdef"

var _ = Describe("Systemd", Label("systemd"), func() {
	var s *sys.System
	var tfs vfs.FS
	var cleanup func()
	var logs *bytes.Buffer

	newSystem := func(root any) {
		var err error
		tfs, cleanup, err = sysmock.TestFS(root)
		Expect(err).NotTo(HaveOccurred())
		logs = &bytes.Buffer{}
		s, err = sys.NewSystem(sys.WithFS(tfs), sys.WithLogger(log.New(log.WithBuffer(logs))))
		Expect(err).NotTo(HaveOccurred())
	}

	AfterEach(func() {
		if cleanup != nil {
			cleanup()
		}
	})

	Describe("names", func() {
		It("escapes device paths into fsck instance names", func() {
			Expect(systemd.FsckUnitName(device)).To(Equal(
				`systemd-fsck@dev-disk-by\x2dpartuuid-01234567\x2d89ab\x2dcdef\x2d0123\x2d456789abcdef.service`,
			))
		})
		It("recognizes device paths", func() {
			Expect(systemd.IsDevicePath("/dev/sda1")).To(BeTrue())
			Expect(systemd.IsDevicePath("/sys/block/sda")).To(BeTrue())
			Expect(systemd.IsDevicePath("LABEL=EFI")).To(BeFalse())
			Expect(systemd.IsDevicePath("/device")).To(BeFalse())
		})
		It("ignores hidden and backup files", func() {
			for _, name := range []string{".keep", "lost+found", "aquota.user", "grub.cfg~", "loader.conf.rpmnew", "x.swp"} {
				Expect(systemd.HiddenFile(name)).To(BeTrue(), name)
			}
			for _, name := range []string{"EFI", "loader", "vmlinuz"} {
				Expect(systemd.HiddenFile(name)).To(BeFalse(), name)
			}
		})
		It("places activation links in the wants directory", func() {
			Expect(systemd.WantsDir("/run/gen", systemd.LocalFSTarget)).To(Equal("/run/gen/local-fs.target.wants"))
		})
	})

	Describe("WriteFsckDeps", func() {
		It("orders the mount after its filesystem check", func() {
			newSystem(map[string]any{"/sbin/fsck.vfat": &vfst.File{Perm: 0o755, Contents: []byte("#!/bin/sh\n")}})
			b := &bytes.Buffer{}
			Expect(systemd.WriteFsckDeps(s, b, "/out", device, "/boot", "vfat")).To(Succeed())
			svc := systemd.FsckUnitName(device)
			Expect(b.String()).To(Equal("Requires=" + svc + "\nAfter=" + svc + "\n"))
		})
		It("does not need a checker for auto filesystems", func() {
			newSystem(nil)
			b := &bytes.Buffer{}
			Expect(systemd.WriteFsckDeps(s, b, "/out", device, "/boot", "auto")).To(Succeed())
			Expect(b.String()).To(HavePrefix("Requires="))
		})
		It("skips the dependency if the checker is missing", func() {
			newSystem(nil)
			b := &bytes.Buffer{}
			Expect(systemd.WriteFsckDeps(s, b, "/out", device, "/boot", "vfat")).To(Succeed())
			Expect(b.Len()).To(BeZero())
			Expect(logs.String()).To(ContainSubstring("/sbin/fsck.vfat does not exist"))
		})
		It("fails if the checker is not executable", func() {
			newSystem(map[string]any{"/sbin/fsck.vfat": &vfst.File{Perm: 0o644}})
			b := &bytes.Buffer{}
			Expect(systemd.WriteFsckDeps(s, b, "/out", device, "/boot", "vfat")).NotTo(Succeed())
			Expect(b.Len()).To(BeZero())
		})
		It("skips non device sources", func() {
			newSystem(nil)
			b := &bytes.Buffer{}
			Expect(systemd.WriteFsckDeps(s, b, "/out", "LABEL=EFI", "/boot", "vfat")).To(Succeed())
			Expect(b.Len()).To(BeZero())
			Expect(logs.String()).To(ContainSubstring("it is not a device"))
		})
		It("pulls in systemd-fsck-root for the root filesystem", func() {
			newSystem(map[string]any{
				"/sbin/fsck.ext4": &vfst.File{Perm: 0o755},
				"/out":            &vfst.Dir{Perm: 0o755},
			})
			b := &bytes.Buffer{}
			Expect(systemd.WriteFsckDeps(s, b, "/out", "/dev/sda2", "/", "ext4")).To(Succeed())
			Expect(b.Len()).To(BeZero())
			target, err := vfs.ReadLink(tfs, "/out/local-fs.target.wants/systemd-fsck-root.service")
			Expect(err).NotTo(HaveOccurred())
			Expect(target).To(Equal("/usr/lib/systemd/system/systemd-fsck-root.service"))
		})
	})

	Describe("unit files", func() {
		BeforeEach(func() {
			newSystem(map[string]any{"/out": &vfst.Dir{Perm: 0o755}})
		})
		It("writes a header followed by serialized sections", func() {
			Expect(systemd.CreateUnitFile(s, "/out/test.mount", func(w io.Writer) error {
				Expect(systemd.WriteHeader(w, "test-generator")).To(Succeed())
				return systemd.WriteSection(w,
					systemd.Option("Unit", "Description", "Test"),
					systemd.Option("Unit", "After", "other.service"),
				)
			})).To(Succeed())
			data, err := tfs.ReadFile("/out/test.mount")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("# Automatically generated by test-generator\n\n[Unit]\nDescription=Test\nAfter=other.service\n"))
			info, err := tfs.Stat("/out/test.mount")
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm() & 0o133).To(Equal(os.FileMode(0)))
		})
		It("never overwrites an existing unit", func() {
			Expect(tfs.WriteFile("/out/test.mount", []byte("original"), vfs.FilePerm)).To(Succeed())
			err := systemd.CreateUnitFile(s, "/out/test.mount", func(w io.Writer) error {
				return systemd.WriteHeader(w, "test-generator")
			})
			Expect(err).To(HaveOccurred())
			data, _ := tfs.ReadFile("/out/test.mount")
			Expect(string(data)).To(Equal("original"))
		})
		It("reports callback errors", func() {
			err := systemd.CreateUnitFile(s, "/out/test.mount", func(_ io.Writer) error {
				return errors.New("formatter failed")
			})
			Expect(err).To(MatchError(ContainSubstring("formatter failed")))
		})
		It("links units into a wants directory", func() {
			Expect(systemd.Link(s, "/out", systemd.LocalFSTarget, "test.automount")).To(Succeed())
			Expect(vfs.IsDir(tfs, "/out/local-fs.target.wants")).To(BeTrue())
			target, err := vfs.ReadLink(tfs, "/out/local-fs.target.wants/test.automount")
			Expect(err).NotTo(HaveOccurred())
			Expect(target).To(Equal("../test.automount"))
			// a second link of the same name fails
			Expect(systemd.Link(s, "/out", systemd.LocalFSTarget, "test.automount")).NotTo(Succeed())
		})
	})
})
