/*
Copyright © 2021 - 2025 SUSE LLC
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
	efi "github.com/canonical/go-efilib"
)

type (
	VariableDescriptor = efi.VariableDescriptor
	VariableAttributes = efi.VariableAttributes
	GUID               = efi.GUID
)

var (
	ErrVarsUnavailable = efi.ErrVarsUnavailable
	ErrVarNotExist     = efi.ErrVarNotExist
	ErrVarPermission   = efi.ErrVarPermission

	AttributeBootserviceAccess = efi.AttributeBootserviceAccess
	AttributeRuntimeAccess     = efi.AttributeRuntimeAccess

	// LoaderVendor is the vendor namespace of the variables exported by systemd compatible boot loaders
	LoaderVendor = efi.MakeGUID(0x4a67b082, 0x0a4c, 0x41cf, 0xb6c7, [...]uint8{0x44, 0x0b, 0x29, 0xbb, 0x8c, 0x4f})
)

// Variables is the read access to the firmware variable store
type Variables interface {
	GetVariable(guid GUID, name string) (data []byte, attrs VariableAttributes, err error)
}

// Vars reads variables from the host through efivarfs
type Vars struct{}

var _ Variables = (*Vars)(nil)

func (Vars) GetVariable(guid efi.GUID, name string) (data []byte, attrs efi.VariableAttributes, err error) {
	return efi.ReadVariable(efi.DefaultVarContext, name, guid)
}
