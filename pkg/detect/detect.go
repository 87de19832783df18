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

// Package detect probes the execution environment of the current boot:
// initrd, container and firmware interface.
package detect

import (
	"bytes"
	"strings"

	"github.com/suse/efi-boot-generator/pkg/sys/vfs"
)

const (
	InitrdReleaseFile = "/etc/initrd-release"

	ContainerFile      = "/run/systemd/container"
	PID1EnvironFile    = "/proc/1/environ"
	PodmanMarkerFile   = "/run/.containerenv"
	DockerMarkerFile   = "/.dockerenv"
	OpenVZDir          = "/proc/vz"
	OpenVZHostDir      = "/proc/bc"
	ContainerEnvPrefix = "container="

	EFIFirmwareDir = "/sys/firmware/efi"
)

// InInitrd reports whether we are running from an initrd. The second value is
// the initrd PRETTY_NAME or NAME when the release file can be parsed.
func InInitrd(fs vfs.FS) (bool, string) {
	if ok, _ := vfs.Exists(fs, InitrdReleaseFile, true); !ok {
		return false, ""
	}

	envs, err := vfs.LoadEnvFile(fs, InitrdReleaseFile)
	if err != nil {
		return true, ""
	}
	if name := envs["PRETTY_NAME"]; name != "" {
		return true, name
	}
	return true, envs["NAME"]
}

// IsEFIBoot reports whether the kernel was booted through EFI firmware
func IsEFIBoot(fs vfs.FS) bool {
	ok, _ := vfs.IsDir(fs, EFIFirmwareDir, true)
	return ok
}

// Container returns the name of the container manager we are running under,
// or an empty string when none is detected. A probe that cannot be read
// provides no evidence.
func Container(fs vfs.FS) string {
	probes := []func(vfs.FS) string{
		containerFromOpenVZ,
		containerFromFile,
		containerFromPID1,
		containerFromMarkers,
	}
	for _, probe := range probes {
		if name := probe(fs); name != "" {
			return name
		}
	}
	return ""
}

func containerFromOpenVZ(fs vfs.FS) string {
	if vz, _ := vfs.Exists(fs, OpenVZDir); !vz {
		return ""
	}
	// /proc/bc is only present on the OpenVZ host
	if host, _ := vfs.Exists(fs, OpenVZHostDir); host {
		return ""
	}
	return "openvz"
}

func containerFromFile(fs vfs.FS) string {
	data, err := fs.ReadFile(ContainerFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func containerFromPID1(fs vfs.FS) string {
	data, err := fs.ReadFile(PID1EnvironFile)
	if err != nil {
		return ""
	}
	for _, entry := range bytes.Split(data, []byte{0}) {
		if value, ok := strings.CutPrefix(string(entry), ContainerEnvPrefix); ok && value != "" {
			return value
		}
	}
	return ""
}

func containerFromMarkers(fs vfs.FS) string {
	if ok, _ := vfs.Exists(fs, PodmanMarkerFile); ok {
		return "podman"
	}
	if ok, _ := vfs.Exists(fs, DockerMarkerFile); ok {
		return "docker"
	}
	return ""
}
