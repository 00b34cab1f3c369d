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
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-wordhunter/internal/server"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:         "serve",
		Usage:        "serve the web interface",
		HideHelp:     true,
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen on `ADDR`",
				Aliases: []string{"a"},
			},
			newHelpFlag(),
		},
		Action: func(c *cli.Context) error {
			if showHelp(c) {
				return nil
			}
			r := runtimeFrom(c)
			if c.IsSet("addr") {
				r.cfg.HTTPAddr = c.String("addr")
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			h, err := r.hunter(ctx)
			if err != nil {
				return err
			}
			srv := server.New(h, &server.Options{
				Addr:      r.cfg.HTTPAddr,
				Translate: r.cfg.Translate,
				Datamuse:  r.cfg.Datamuse,
				FontFile:  r.cfg.FontFile,
				Bundle:    r.bundle,
				Logger:    r.logger,
			})
			if err := srv.ListenAndServe(ctx); err != nil {
				return fmt.Errorf("%w: %w", ErrWordhunter, err)
			}
			return nil
		},
	}
}
