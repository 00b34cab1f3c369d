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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:         "list",
		Usage:        "list the dictionaries found in the data directories",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags:        []cli.Flag{newHelpFlag()},
		Action: func(c *cli.Context) error {
			if showHelp(c) {
				return nil
			}
			r := runtimeFrom(c)
			dicts := r.lexicon().Dictionaries()

			tbl := table.New("Name", "Words", "Synonyms", "Author", "Path").WithWriter(c.App.Writer)
			for _, d := range dicts {
				info := d.Info()
				tbl.AddRow(info.Bookname, info.WordCount, info.SynWordCount, info.Author, d.Path())
			}
			tbl.Print()

			if len(dicts) == 0 {
				return fmt.Errorf("%w: no dictionaries found in %v", ErrWordhunter, r.cfg.DataDirs)
			}
			return nil
		},
	}
}
