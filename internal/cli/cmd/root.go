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

package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/sys/unix"

	"github.com/suse/efi-boot-generator/internal/cli/version"
	"github.com/suse/efi-boot-generator/pkg/generator"
	"github.com/suse/efi-boot-generator/pkg/log"
	"github.com/suse/efi-boot-generator/pkg/sys"
)

const (
	Usage = "Generate the mount units for the EFI System Partition"

	SystemKey = "system"
	ConfigKey = "config"

	// units are readable by everyone, whatever umask we were started with
	generatorUmask = 0o022
)

func UsageText(appName string) string {
	return fmt.Sprintf("%s [normal-dir early-dir late-dir]", appName)
}

// ParseArgs builds the generator configuration from the positional arguments.
// The service manager passes the normal, early and late output directories.
// Units go to the late one so they never override administrator configuration.
func ParseArgs(args []string) (generator.Config, error) {
	cfg := generator.DefaultConfig()
	switch len(args) {
	case 0:
	case 3:
		cfg.Dest = args[2]
	default:
		return cfg, fmt.Errorf("this program takes three or no arguments")
	}
	return cfg, nil
}

// Setup returns the before hook validating the arguments and preparing the system
func Setup(logger log.Logger) cli.BeforeFunc {
	return func(ctx *cli.Context) error {
		cfg, err := ParseArgs(ctx.Args().Slice())
		if err != nil {
			return err
		}

		s, err := sys.NewSystem(sys.WithLogger(logger))
		if err != nil {
			return err
		}

		unix.Umask(generatorUmask)
		logger.Debug("%s %s writing to %s", ctx.App.Name, version.Get(), cfg.Dest)

		if ctx.App.Metadata == nil {
			ctx.App.Metadata = map[string]any{}
		}
		ctx.App.Metadata[SystemKey] = s
		ctx.App.Metadata[ConfigKey] = cfg
		return nil
	}
}
