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

package main

import (
	"os"

	"github.com/suse/efi-boot-generator/internal/cli/action"
	"github.com/suse/efi-boot-generator/internal/cli/app"
	"github.com/suse/efi-boot-generator/internal/cli/cmd"
	"github.com/suse/efi-boot-generator/pkg/log"
)

func main() {
	logger := log.New(log.WithEnvironment())

	application := app.New(
		cmd.Usage,
		cmd.UsageText(app.Name()),
		cmd.Setup(logger),
		action.Generate)

	if err := application.Run(os.Args); err != nil {
		logger.Error("%s", err)
		os.Exit(1)
	}
}
