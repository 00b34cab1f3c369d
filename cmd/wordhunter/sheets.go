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
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"

	"github.com/ianlewis/go-wordhunter"
	"github.com/ianlewis/go-wordhunter/export"
	"github.com/ianlewis/go-wordhunter/tracer"
)

func newOutputFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Usage:   "write to `FILE` (- for standard output)",
		Aliases: []string{"o"},
		Value:   value,
	}
}

func newTracerCommand() *cli.Command {
	return &cli.Command{
		Name:         "tracer",
		Usage:        "write a handwriting tracer sheet for words ending with SUFFIX",
		ArgsUsage:    "[SUFFIX]",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags: append([]cli.Flag{
			newOutputFlag("tracer.pdf"),
			&cli.StringSliceFlag{
				Name:  "word",
				Usage: "trace `WORD` instead of searching",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "sheet `TITLE`",
			},
			&cli.IntFlag{
				Name:  "per-page",
				Usage: "`N` words per page",
				Value: tracer.DefaultWordsPerPage,
			},
			&cli.IntFlag{
				Name:  "copies",
				Usage: "`N` faint copies after each word",
				Value: tracer.DefaultCopies,
			},
			&cli.IntFlag{
				Name:  "max-pages",
				Usage: "at most `N` pages (-1 for no limit)",
				Value: tracer.DefaultMaxPages,
			},
			newHelpFlag(),
		}, queryFlags()...),
		Action: func(c *cli.Context) error {
			if showHelp(c) {
				return nil
			}
			r := runtimeFrom(c)

			words := c.StringSlice("word")
			if len(words) == 0 {
				q, err := query(c)
				if err != nil {
					return err
				}
				// Definitions are not needed for tracing.
				r.cfg.Translate = false
				h, err := r.hunter(c.Context)
				if err != nil {
					return err
				}
				res, err := h.Search(c.Context, q)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrWordhunter, err)
				}
				printWarnings(c.App.ErrWriter, res.Warnings)
				words = res.Words()
			}

			// Core PDF fonts only cover Latin-1 so localized labels need a
			// font file.
			p := r.bundle.Printer(language.English)
			if r.cfg.FontFile != "" {
				p = r.printer()
			}
			opts := &tracer.Options{
				Title:        c.String("title"),
				WordsPerPage: c.Int("per-page"),
				Copies:       c.Int("copies"),
				MaxPages:     c.Int("max-pages"),
				FontFile:     r.cfg.FontFile,
				NameLabel:    p.Sprintf("tracer.name"),
				DateLabel:    p.Sprintf("tracer.date"),
				Footer:       p.Sprintf("tracer.footer"),
			}
			if opts.Title == "" {
				opts.Title = p.Sprintf("app.title")
			}

			out, err := outputFile(c, c.String("output"))
			if err != nil {
				return err
			}
			res, err := wordhunter.Tracer(out, words, opts)
			if err != nil {
				return errors.Join(fmt.Errorf("%w: %w", ErrWordhunter, err), out.Close())
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("%w: %w", ErrWordhunter, err)
			}
			if len(res.Dropped) > 0 {
				r.logger.WarnContext(c.Context, "tracer sheet truncated",
					slog.Int("printed", res.Words),
					slog.Int("dropped", len(res.Dropped)),
				)
			}
			r.logger.InfoContext(c.Context, "wrote tracer sheet",
				slog.String("path", c.String("output")),
				slog.Int("pages", res.Pages),
				slog.Int("words", res.Words),
			)
			return nil
		},
	}
}

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:         "export",
		Usage:        "write words ending with SUFFIX with their definitions to a spreadsheet",
		ArgsUsage:    "SUFFIX",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags: append([]cli.Flag{
			newOutputFlag("words.xlsx"),
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
			ex := h.Explore(c.Context, res.Words(), wordhunter.ExploreOptions{Translate: r.cfg.Translate})
			printWarnings(c.App.ErrWriter, append(res.Warnings, ex.Warnings...))

			p := r.printer()
			opts := &export.Options{
				Sheet: p.Sprintf("export.sheet"),
				Headers: [4]string{
					p.Sprintf("results.word"),
					p.Sprintf("results.pos"),
					p.Sprintf("results.definition"),
					p.Sprintf("results.meaning"),
				},
			}

			out, err := outputFile(c, c.String("output"))
			if err != nil {
				return err
			}
			if err := wordhunter.Export(out, ex.Results, opts); err != nil {
				return errors.Join(fmt.Errorf("%w: %w", ErrWordhunter, err), out.Close())
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("%w: %w", ErrWordhunter, err)
			}
			r.logger.InfoContext(c.Context, "wrote spreadsheet",
				slog.String("path", c.String("output")),
				slog.Int("rows", len(ex.Results)),
			)
			return nil
		},
	}
}
