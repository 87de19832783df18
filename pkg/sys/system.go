/*
Copyright © 2022-2025 SUSE LLC
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

package sys

import (
	"github.com/suse/efi-boot-generator/pkg/log"
	"github.com/suse/efi-boot-generator/pkg/sys/mounter"
	"github.com/suse/efi-boot-generator/pkg/sys/mounter/k8smounter"
	"github.com/suse/efi-boot-generator/pkg/sys/vfs"
)

type FS = vfs.FS

type Mounter interface {
	IsMountPoint(path string) (bool, error)
	GetMountPoints(path string) ([]mounter.MountPoint, error)
}

// System bundles the host facilities the generator reads from and writes to
type System struct {
	logger  log.Logger
	fs      FS
	mounter Mounter
}

type SystemOpts func(a *System) error

func WithFS(fs FS) SystemOpts {
	return func(s *System) error {
		s.fs = fs
		return nil
	}
}

func WithLogger(logger log.Logger) SystemOpts {
	return func(s *System) error {
		s.logger = logger
		return nil
	}
}

func WithMounter(mounter Mounter) SystemOpts {
	return func(r *System) error {
		r.mounter = mounter
		return nil
	}
}

func NewSystem(opts ...SystemOpts) (*System, error) {
	sysObj := &System{
		fs:      vfs.OSFS(),
		logger:  log.New(),
		mounter: k8smounter.NewMounter(mounter.Binary),
	}

	for _, o := range opts {
		err := o(sysObj)
		if err != nil {
			return nil, err
		}
	}
	return sysObj, nil
}

func (s System) FS() FS {
	return s.fs
}

func (s System) Mounter() Mounter {
	return s.mounter
}

func (s System) Logger() log.Logger {
	return s.logger
}
