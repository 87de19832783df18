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

package mock

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/suse/efi-boot-generator/pkg/efi"
)

type mockEFIVariable struct {
	data  []byte
	attrs efi.VariableAttributes
}

// EFIVariables implements an in-memory variable store.
type EFIVariables struct {
	store  map[efi.VariableDescriptor]mockEFIVariable
	getErr error
}

var _ efi.Variables = (*EFIVariables)(nil)

func NewMockEFIVariables() *EFIVariables {
	return &EFIVariables{
		store: make(map[efi.VariableDescriptor]mockEFIVariable),
	}
}

// WithGetError makes every read fail with the given error
func (m *EFIVariables) WithGetError(err error) *EFIVariables {
	m.getErr = err
	return m
}

// GetVariable implements EFIVariables
func (m EFIVariables) GetVariable(guid efi.GUID, name string) (data []byte, attrs efi.VariableAttributes, err error) {
	if m.getErr != nil {
		return nil, 0, m.getErr
	}
	out, ok := m.store[efi.VariableDescriptor{Name: name, GUID: guid}]
	if !ok {
		return nil, 0, efi.ErrVarNotExist
	}
	return out.data, out.attrs, nil
}

// SetVariable stores the given payload, an empty payload deletes the variable
func (m EFIVariables) SetVariable(guid efi.GUID, name string, attrs efi.VariableAttributes, data []byte) {
	if len(data) == 0 {
		delete(m.store, efi.VariableDescriptor{Name: name, GUID: guid})
		return
	}
	m.store[efi.VariableDescriptor{Name: name, GUID: guid}] = mockEFIVariable{data, attrs}
}

// SetLoaderDevicePartUUID stores the given string the way boot loaders do, as NUL terminated UTF-16LE
func (m EFIVariables) SetLoaderDevicePartUUID(value string) {
	data, _ := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(value + "\x00"))
	m.SetVariable(
		efi.LoaderVendor, efi.LoaderDevicePartUUIDVar,
		efi.AttributeBootserviceAccess|efi.AttributeRuntimeAccess, data,
	)
}
