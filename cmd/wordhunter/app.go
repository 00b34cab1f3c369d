// Copyright 2025 Ian Lewis
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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-wordhunter"
	"github.com/ianlewis/go-wordhunter/datamuse"
	"github.com/ianlewis/go-wordhunter/internal/config"
	"github.com/ianlewis/go-wordhunter/internal/i18n"
	"github.com/ianlewis/go-wordhunter/lexicon"
	"github.com/ianlewis/go-wordhunter/translate"
	"github.com/ianlewis/go-wordhunter/wordlist"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrWordhunter is a parent error for all command errors.
var ErrWordhunter = errors.New("wordhunter")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrWordhunter)

// ErrConfig is an invalid configuration.
var ErrConfig = fmt.Errorf("%w: configuration", ErrWordhunter)

var copyrightNames = []string{
	"2021 Google LLC",
	"2026 Ian Lewis",
}

const runtimeKey = "runtime"

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// which conflicts with the arguments of our commands.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func newHelpFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:               "help",
		Usage:              "print this help text and exit",
		Aliases:            []string{"h"},
		DisableDefaultText: true,
	}
}

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

// showHelp prints the command help when --help was given.
func showHelp(c *cli.Context) bool {
	if !c.Bool("help") {
		return false
	}
	check(cli.ShowCommandHelp(c, c.Command.Name))
	return true
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, "\n"), versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrWordhunter, err)
	}
	return nil
}

// runtime holds the state shared by commands.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	bundle *i18n.Bundle
	lang   language.Tag
	lex    *lexicon.Lexicon
}

func newRuntime(c *cli.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if c.IsSet("data-dir") {
		cfg.DataDirs = c.StringSlice("data-dir")
	}
	if len(cfg.DataDirs) == 0 {
		cfg.DataDirs = dictLocations()
	}
	if c.IsSet("words-file") {
		cfg.WordsFiles = c.StringSlice("words-file")
	}
	if len(cfg.WordsFiles) == 0 {
		cfg.WordsFiles = wordsLocations()
	}
	if c.IsSet("translate") {
		cfg.Translate = c.Bool("translate")
	}
	if c.IsSet("datamuse") {
		cfg.Datamuse = c.Bool("datamuse")
	}
	if c.IsSet("font-file") {
		cfg.FontFile = c.String("font-file")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	bundle := i18n.Default()
	lang := bundle.Match(c.String("lang"), os.Getenv("LC_ALL"), os.Getenv("LANG"))

	return &runtime{
		cfg:    cfg,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, c.App.ErrWriter),
		bundle: bundle,
		lang:   lang,
	}, nil
}

func runtimeFrom(c *cli.Context) *runtime {
	//nolint:forcetypeassert // Set by the Before hook.
	return c.App.Metadata[runtimeKey].(*runtime)
}

func (r *runtime) printer() *message.Printer {
	return r.bundle.Printer(r.lang)
}

// lexicon opens the dictionaries in the data directories once. Dictionaries
// that fail to open are logged and skipped.
func (r *runtime) lexicon() *lexicon.Lexicon {
	if r.lex != nil {
		return r.lex
	}
	lex, errs := lexicon.Open(r.cfg.DataDirs, nil)
	for _, err := range errs {
		// Missing default locations are expected.
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("skipping dictionaries", slog.Any("error", err))
			continue
		}
		r.logger.Warn("opening dictionary", slog.Any("error", err))
	}
	r.logger.Debug("opened dictionaries", slog.Int("count", len(lex.Dictionaries())))
	r.lex = lex
	return lex
}

func (r *runtime) httpClient() *http.Client {
	return &http.Client{Timeout: r.cfg.HTTPTimeout}
}

// translator returns the translator chain, or nil when translation is off.
func (r *runtime) translator() (translate.Translator, error) {
	if !r.cfg.Translate {
		return nil, nil
	}
	target, err := r.cfg.Target()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	hc := r.httpClient()
	return translate.NewCache(translate.Chain{
		translate.NewGoogle(&translate.ClientOptions{
			BaseURL:    r.cfg.GoogleURL,
			HTTPClient: hc,
			Target:     target,
		}),
		translate.NewMyMemory(&translate.ClientOptions{
			BaseURL:    r.cfg.MyMemoryURL,
			HTTPClient: hc,
			Target:     target,
		}),
	}), nil
}

// hunter builds a hunter over the word lists and dictionaries.
func (r *runtime) hunter(ctx context.Context) (*wordhunter.Hunter, error) {
	lex := r.lexicon()

	sources := []wordlist.Source{&wordlist.LexiconSource{Lexicon: lex}}
	for _, p := range r.cfg.WordsFiles {
		sources = append(sources, &wordlist.FileSource{Path: p})
	}
	words := wordlist.LoadAll(ctx, r.logger, &wordlist.Options{LettersOnly: true, Lower: true}, sources...)
	if words.Len() == 0 {
		r.logger.WarnContext(ctx, "word list is empty; pass --data-dir or --words-file")
	}

	tr, err := r.translator()
	if err != nil {
		return nil, err
	}
	var dm *datamuse.Client
	if r.cfg.Datamuse {
		dm = datamuse.NewClient(r.cfg.DatamuseURL, r.httpClient())
	}

	return wordhunter.New(wordhunter.Config{
		Words:      words,
		Lexicon:    lex,
		Translator: tr,
		Datamuse:   dm,
		Workers:    r.cfg.Workers,
		Logger:     r.logger,
	}), nil
}

func (r *runtime) close() error {
	if r.lex == nil {
		return nil
	}
	return r.lex.Close()
}

func newWordhunterApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Find words by suffix, define and translate them and print tracer sheets.",
		Description: strings.Join([]string{
			"WordHunter helps children explore English vocabulary.",
			"http://github.com/ianlewis/go-wordhunter",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "data-dir",
				Usage:   "include StarDict dictionaries in `DIR` (default: standard StarDict locations)",
				Aliases: []string{"d"},
			},
			&cli.StringSliceFlag{
				Name:    "words-file",
				Usage:   "read extra words from `FILE`, one per line (default: system word list)",
				Aliases: []string{"w"},
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "interface `LANGUAGE` (en or ta)",
			},
			&cli.BoolFlag{
				Name:  "translate",
				Usage: "translate words and definitions",
			},
			&cli.BoolFlag{
				Name:  "datamuse",
				Usage: "add suggestions from the Datamuse API",
			},
			&cli.StringFlag{
				Name:  "font-file",
				Usage: "TrueType `FONT` for tracer sheets",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (debug, info, warn or error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT` (text or json)",
			},

			// Special flags are shown at the end.
			newHelpFlag(),
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError:    onUsageError,
		Before: func(c *cli.Context) error {
			r, err := newRuntime(c)
			if err != nil {
				return err
			}
			if c.App.Metadata == nil {
				c.App.Metadata = map[string]interface{}{}
			}
			c.App.Metadata[runtimeKey] = r
			return nil
		},
		After: func(c *cli.Context) error {
			r, ok := c.App.Metadata[runtimeKey].(*runtime)
			if !ok {
				return nil
			}
			if err := r.close(); err != nil {
				return fmt.Errorf("%w: closing dictionaries: %w", ErrWordhunter, err)
			}
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			newSearchCommand(),
			newDefineCommand(),
			newTranslateCommand(),
			newTracerCommand(),
			newExportCommand(),
			newListCommand(),
			newServeCommand(),
			newExploreCommand(),
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}
}

// outputFile opens path for writing. "-" is standard output.
func outputFile(c *cli.Context, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{c.App.Writer}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWordhunter, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
