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

package efi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
)

const (
	LoaderDevicePartUUIDVar = "LoaderDevicePartUUID"

	PartUUIDDevDir = "/dev/disk/by-partuuid"
)

// ErrLoaderPartitionUnknown is returned when the boot loader did not report the partition it was loaded from
var ErrLoaderPartitionUnknown = errors.New("boot loader partition unknown")

// LoaderDevicePartUUID returns the partition UUID of the ESP the boot loader was started from.
// A missing variable or an unavailable variable store are reported as ErrLoaderPartitionUnknown.
func LoaderDevicePartUUID(vars Variables) (uuid.UUID, error) {
	data, _, err := vars.GetVariable(LoaderVendor, LoaderDevicePartUUIDVar)
	switch {
	case errors.Is(err, ErrVarNotExist), errors.Is(err, ErrVarsUnavailable):
		return uuid.Nil, ErrLoaderPartitionUnknown
	case err != nil:
		return uuid.Nil, fmt.Errorf("reading %s variable: %w", LoaderDevicePartUUIDVar, err)
	}

	id, err := decodePartUUID(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("decoding %s variable: %w", LoaderDevicePartUUIDVar, err)
	}
	return id, nil
}

// PartUUIDDevicePath returns the udev managed device path for the given partition UUID
func PartUUIDDevicePath(id uuid.UUID) string {
	return PartUUIDDevDir + "/" + id.String()
}

// decodePartUUID parses the UTF-16LE, possibly NUL terminated, string stored by the boot loader
func decodePartUUID(data []byte) (uuid.UUID, error) {
	if len(data)%2 != 0 {
		return uuid.Nil, fmt.Errorf("odd payload length %d", len(data))
	}
	raw, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return uuid.Nil, err
	}
	str := strings.TrimSpace(strings.TrimRight(string(raw), "\x00"))

	// only the canonical hyphenated form is accepted, uuid.Parse also takes urn and braced forms
	if len(str) != 36 {
		return uuid.Nil, fmt.Errorf("invalid partition UUID '%s'", str)
	}
	return uuid.Parse(str)
}
