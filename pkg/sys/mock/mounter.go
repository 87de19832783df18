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

package mock

import (
	"errors"

	"k8s.io/mount-utils"

	"github.com/suse/efi-boot-generator/pkg/sys/mounter"
	"github.com/suse/efi-boot-generator/pkg/sys/mounter/k8smounter"
)

var _ mounter.Interface = (*Mounter)(nil)

// Mounter is a fake mounter for tests that can error out.
type Mounter struct {
	*k8smounter.Mounter
	ErrorOnIsMountPoint bool
}

// NewMounter returns a Mounter backed by the k8s fake which already lists the given paths as mounted
func NewMounter(mounted ...string) *Mounter {
	var mps []mount.MountPoint
	for _, path := range mounted {
		mps = append(mps, mount.MountPoint{Device: "/dev/fake", Path: path, Type: "vfat"})
	}
	return &Mounter{Mounter: k8smounter.NewFakeMounter(mps...)}
}

// IsMountPoint will return an error if ErrorOnIsMountPoint is true. The k8s
// fake stats the path, so mount points are looked up in the mount list instead.
func (e Mounter) IsMountPoint(file string) (bool, error) {
	if e.ErrorOnIsMountPoint {
		return false, errors.New("mountinfo error")
	}
	mnts, err := e.GetMountPoints(file)
	if err != nil {
		return false, err
	}
	return len(mnts) > 0, nil
}
