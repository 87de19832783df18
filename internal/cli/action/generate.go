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

package action

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/suse/efi-boot-generator/internal/cli/cmd"
	"github.com/suse/efi-boot-generator/pkg/efi"
	"github.com/suse/efi-boot-generator/pkg/generator"
	"github.com/suse/efi-boot-generator/pkg/sys"
)

// NewGenerate returns the application action running the generator against the given variable store
func NewGenerate(vars efi.Variables) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if ctx.App.Metadata == nil || ctx.App.Metadata[cmd.SystemKey] == nil {
			return fmt.Errorf("error setting up initial configuration")
		}
		s := ctx.App.Metadata[cmd.SystemKey].(*sys.System)
		cfg, ok := ctx.App.Metadata[cmd.ConfigKey].(generator.Config)
		if !ok {
			return fmt.Errorf("error setting up initial configuration")
		}

		_, err := generator.New(s, vars, cfg).Run()
		return err
	}
}

// Generate runs the generator on the host EFI variables
func Generate(ctx *cli.Context) error {
	return NewGenerate(efi.Vars{})(ctx)
}
