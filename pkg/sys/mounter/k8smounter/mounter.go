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

package k8smounter

import (
	"github.com/suse/efi-boot-generator/pkg/sys/mounter"
	"k8s.io/mount-utils"
)

var _ mounter.Interface = (*Mounter)(nil)

type Mounter struct {
	mnt mount.Interface
}

func NewMounter(binary string) *Mounter {
	return &Mounter{
		mnt: mount.NewWithoutSystemd(binary),
	}
}

// NewFakeMounter returns a mounter backed by the k8s fake that reports the given mount points
func NewFakeMounter(mps ...mount.MountPoint) *Mounter {
	return &Mounter{
		mnt: mount.NewFakeMounter(mps),
	}
}

func (m Mounter) IsMountPoint(path string) (bool, error) {
	return m.mnt.IsMountPoint(path)
}

// GetMountPoints lists the mounts whose target is the given path, the last one being the visible one
func (m Mounter) GetMountPoints(path string) ([]mounter.MountPoint, error) {
	mntLst, err := m.mnt.List()
	if err != nil {
		return nil, err
	}
	var lst []mounter.MountPoint
	for _, mp := range mntLst {
		if mp.Path == path {
			lst = append(lst, mounter.MountPoint{
				Device: mp.Device,
				Path:   mp.Path,
				Opts:   mp.Opts,
				Type:   mp.Type,
			})
		}
	}
	return lst, nil
}
