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

package action_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/v4/vfst"
	"github.com/urfave/cli/v2"

	"github.com/suse/efi-boot-generator/internal/cli/action"
	"github.com/suse/efi-boot-generator/internal/cli/cmd"
	efimock "github.com/suse/efi-boot-generator/pkg/efi/mock"
	"github.com/suse/efi-boot-generator/pkg/generator"
	"github.com/suse/efi-boot-generator/pkg/log"
	"github.com/suse/efi-boot-generator/pkg/sys"
	sysmock "github.com/suse/efi-boot-generator/pkg/sys/mock"
	"github.com/suse/efi-boot-generator/pkg/sys/vfs"
)

var _ = Describe("Generate action", Label("generate"), func() {
	var s *sys.System
	var tfs vfs.FS
	var cleanup func()
	var err error
	var ctx *cli.Context
	var vars *efimock.EFIVariables
	var buffer *bytes.Buffer

	BeforeEach(func() {
		buffer = &bytes.Buffer{}
		tfs, cleanup, err = sysmock.TestFS(map[string]any{
			"/sys/firmware/efi/efivars":   &vfst.Dir{Perm: 0o755},
			"/run/systemd/generator.late": &vfst.Dir{Perm: 0o755},
		})
		Expect(err).NotTo(HaveOccurred())
		s, err = sys.NewSystem(
			sys.WithFS(tfs),
			sys.WithMounter(sysmock.NewMounter()),
			sys.WithLogger(log.New(log.WithBuffer(buffer))),
		)
		Expect(err).NotTo(HaveOccurred())
		vars = efimock.NewMockEFIVariables()
		vars.SetLoaderDevicePartUUID("01234567-89AB-CDEF-0123-456789ABCDEF")

		cfg, err := cmd.ParseArgs([]string{"/run/systemd/generator", "/run/systemd/generator.early", "/run/systemd/generator.late"})
		Expect(err).NotTo(HaveOccurred())

		ctx = cli.NewContext(cli.NewApp(), nil, &cli.Context{})
		if ctx.App.Metadata == nil {
			ctx.App.Metadata = map[string]any{}
		}
		ctx.App.Metadata[cmd.SystemKey] = s
		ctx.App.Metadata[cmd.ConfigKey] = cfg
	})

	AfterEach(func() {
		cleanup()
	})
	It("fails if no sys.System instance is in metadata", func() {
		ctx.App.Metadata[cmd.SystemKey] = nil
		Expect(action.NewGenerate(vars)(ctx)).NotTo(Succeed())
	})
	It("fails if no configuration is in metadata", func() {
		delete(ctx.App.Metadata, cmd.ConfigKey)
		Expect(action.NewGenerate(vars)(ctx)).NotTo(Succeed())
	})
	It("writes the units into the late generator directory", func() {
		Expect(action.NewGenerate(vars)(ctx)).To(Succeed())
		Expect(vfs.Exists(tfs, "/run/systemd/generator.late/boot.mount")).To(BeTrue())
		Expect(vfs.Exists(tfs, "/run/systemd/generator.late/boot.automount")).To(BeTrue())
		Expect(vfs.Exists(tfs, "/run/systemd/generator/boot.mount")).To(BeFalse())
	})
	It("succeeds without writing anything if the loader partition is unknown", func() {
		vars = efimock.NewMockEFIVariables()
		Expect(action.NewGenerate(vars)(ctx)).To(Succeed())
		Expect(vfs.IsEmptyDir(tfs, "/run/systemd/generator.late")).To(BeTrue())
	})
	It("fails on a second run in the same directory", func() {
		Expect(action.NewGenerate(vars)(ctx)).To(Succeed())
		Expect(action.NewGenerate(vars)(ctx)).NotTo(Succeed())
	})
	It("fails on a read-only filesystem", func() {
		rofs, err := sysmock.ReadOnlyTestFS(tfs)
		Expect(err).NotTo(HaveOccurred())
		s, err = sys.NewSystem(
			sys.WithFS(rofs),
			sys.WithMounter(sysmock.NewMounter()),
			sys.WithLogger(log.New(log.WithDiscardAll())),
		)
		Expect(err).NotTo(HaveOccurred())
		ctx.App.Metadata[cmd.SystemKey] = s
		err = action.NewGenerate(vars)(ctx)
		Expect(err).To(MatchError(ContainSubstring("creating unit file")))
	})
	It("keeps the default destination when no arguments are given", func() {
		cfg, err := cmd.ParseArgs(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(generator.DefaultConfig()))
	})
})
