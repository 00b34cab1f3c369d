// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordhunter/internal/tui"
)

func newExploreCommand() *cli.Command {
	return &cli.Command{
		Name:         "explore",
		Usage:        "explore words interactively in the terminal",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags:        []cli.Flag{newHelpFlag()},
		Action: func(c *cli.Context) error {
			if showHelp(c) {
				return nil
			}
			r := runtimeFrom(c)
			h, err := r.hunter(c.Context)
			if err != nil {
				return err
			}
			err = tui.Run(c.Context, h, &tui.Options{
				Translate: r.cfg.Translate,
				Datamuse:  r.cfg.Datamuse,
				Language:  r.lang,
				Bundle:    r.bundle,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWordhunter, err)
			}
			return nil
		},
	}
}
