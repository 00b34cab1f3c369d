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
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/message"

	"github.com/ianlewis/go-wordhunter"
	"github.com/ianlewis/go-wordhunter/lexicon"
	"github.com/ianlewis/go-wordhunter/translate"
	"github.com/ianlewis/go-wordhunter/wordlist"
)

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "letters",
			Usage:   "only words with exactly `N` letters before the suffix (-1 for any)",
			Aliases: []string{"n"},
			Value:   wordlist.AnyLength,
		},
		&cli.StringFlag{
			Name:    "sort",
			Usage:   "sort `ORDER` (alpha, length or frequency)",
			Aliases: []string{"s"},
			Value:   wordlist.Alphabetical.String(),
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "print at most `N` words (0 for all)",
		},
	}
}

// query reads the search from the suffix argument and query flags.
func query(c *cli.Context) (wordhunter.Query, error) {
	if c.NArg() != 1 {
		return wordhunter.Query{}, fmt.Errorf("%w: expected one SUFFIX argument, got %d", ErrFlagParse, c.NArg())
	}
	order, err := wordlist.ParseOrder(c.String("sort"))
	if err != nil {
		return wordhunter.Query{}, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	if c.Int("letters") < wordlist.AnyLength {
		return wordhunter.Query{}, fmt.Errorf("%w: invalid letters %d", ErrFlagParse, c.Int("letters"))
	}
	return wordhunter.Query{
		Suffix:   c.Args().First(),
		Letters:  c.Int("letters"),
		Sort:     order,
		Limit:    c.Int("limit"),
		Datamuse: runtimeFrom(c).cfg.Datamuse,
	}, nil
}

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:         "search",
		Usage:        "find words ending with SUFFIX",
		ArgsUsage:    "SUFFIX",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "define",
				Usage: "also print definitions and translations",
			},
			newHelpFlag(),
		}, queryFlags()...),
		Action: func(c *cli.Context) error {
			if showHelp(c) {
				return nil
			}
			q, err := query(c)
			if err != nil {
				return err
			}
			r := runtimeFrom(c)
			h, err := r.hunter(c.Context)
			if err != nil {
				return err
			}
			res, err := h.Search(c.Context, q)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWordhunter, err)
			}
			p := r.printer()
			printWarnings(c.App.ErrWriter, res.Warnings)

			if !c.Bool("define") {
				tbl := table.New(p.Sprintf("results.word"), p.Sprintf("search.letters")).WithWriter(c.App.Writer)
				for _, m := range res.Matches {
					tbl.AddRow(m.Word, strconv.Itoa(m.Letters))
				}
				tbl.Print()
			} else {
				ex := h.Explore(c.Context, res.Words(), wordhunter.ExploreOptions{Translate: r.cfg.Translate})
				printWarnings(c.App.ErrWriter, ex.Warnings)
				printResults(c.App.Writer, p, ex.Results)
			}
			fmt.Fprintln(c.App.Writer, p.Sprintf("results.count", res.Total))
			return nil
		},
	}
}

func printResults(w io.Writer, p *message.Printer, results []wordhunter.Result) {
	tbl := table.New(
		p.Sprintf("results.word"),
		p.Sprintf("results.pos"),
		p.Sprintf("results.definition"),
		p.Sprintf("results.meaning"),
	).WithWriter(w)
	for _, r := range results {
		tbl.AddRow(r.Word, r.PartOfSpeech, r.Definition, r.Meaning)
	}
	tbl.Print()
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

func newDefineCommand() *cli.Command {
	return &cli.Command{
		Name:         "define",
		Usage:        "define and translate words",
		ArgsUsage:    "WORD...",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags:        []cli.Flag{newHelpFlag()},
		Action: func(c *cli.Context) error {
			if showHelp(c) {
				return nil
			}
			if c.NArg() == 0 {
				return fmt.Errorf("%w: expected at least one WORD", ErrFlagParse)
			}
			r := runtimeFrom(c)
			h, err := r.hunter(c.Context)
			if err != nil {
				return err
			}
			p := r.printer()
			ex := h.Explore(c.Context, c.Args().Slice(), wordhunter.ExploreOptions{Translate: r.cfg.Translate})
			printWarnings(c.App.ErrWriter, ex.Warnings)

			for i, res := range ex.Results {
				if i > 0 {
					fmt.Fprintln(c.App.Writer)
				}
				fmt.Fprintln(c.App.Writer, res.Word)
				if res.Entry == nil {
					fmt.Fprintf(c.App.Writer, "  %s\n", lexicon.None)
				} else {
					for j, s := range res.Entry.Senses {
						fmt.Fprintf(c.App.Writer, "  %d. (%s) %s\n", j+1, s.PartOfSpeech, s.Definition)
						for _, e := range s.Examples {
							fmt.Fprintf(c.App.Writer, "       %q\n", e)
						}
					}
					if len(res.Entry.Synonyms) > 0 {
						fmt.Fprintf(c.App.Writer, "  %s: %s\n", p.Sprintf("results.synonyms"), strings.Join(res.Entry.Synonyms, ", "))
					}
				}
				if r.cfg.Translate {
					fmt.Fprintf(c.App.Writer, "  %s: %s\n", p.Sprintf("results.meaning"), res.Meaning)
					fmt.Fprintf(c.App.Writer, "  %s: %s\n", p.Sprintf("results.definition"), res.DefinitionMeaning)
				}
			}
			return nil
		},
	}
}

func newTranslateCommand() *cli.Command {
	return &cli.Command{
		Name:         "translate",
		Usage:        "translate text",
		ArgsUsage:    "TEXT...",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags:        []cli.Flag{newHelpFlag()},
		Action: func(c *cli.Context) error {
			if showHelp(c) {
				return nil
			}
			if c.NArg() == 0 {
				return fmt.Errorf("%w: expected at least one TEXT", ErrFlagParse)
			}
			r := runtimeFrom(c)
			// Translation is the point of this command.
			r.cfg.Translate = true
			tr, err := r.translator()
			if err != nil {
				return err
			}
			p := r.printer()
			tbl := table.New(p.Sprintf("results.word"), p.Sprintf("results.meaning")).WithWriter(c.App.Writer)
			texts := c.Args().Slice()
			out, err := translate.All(c.Context, tr, texts, r.cfg.Workers)
			for i, text := range texts {
				tbl.AddRow(text, out[i])
			}
			tbl.Print()
			if err != nil {
				r.logger.WarnContext(c.Context, "translation failed",
					slog.Int("texts", len(texts)),
					slog.Any("error", err),
				)
				return fmt.Errorf("%w: some translations failed", ErrWordhunter)
			}
			return nil
		},
	}
}
