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

// Package translate translates words and short phrases using public machine
// translation services.
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

const (
	// None is returned for empty input.
	None = "-"

	// Unavailable is returned in place of a translation that failed.
	Unavailable = "(translation unavailable)"

	// DefaultWorkers is the default number of concurrent translations.
	DefaultWorkers = 8
)

var (
	// ErrEmpty indicates the service returned no translation.
	ErrEmpty = errors.New("empty translation")

	// ErrStatus indicates the service responded with an error status.
	ErrStatus = errors.New("unexpected status")
)

// Translator translates text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Func adapts a function to a [Translator].
type Func func(ctx context.Context, text string) (string, error)

// Translate implements [Translator].
func (f Func) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// ClientOptions configure an HTTP translation client.
type ClientOptions struct {
	// BaseURL overrides the service endpoint.
	BaseURL string

	// HTTPClient defaults to [http.DefaultClient].
	HTTPClient *http.Client

	// Source defaults to English.
	Source language.Tag

	// Target defaults to Tamil.
	Target language.Tag
}

func (o *ClientOptions) withDefaults(baseURL string) ClientOptions {
	var opts ClientOptions
	if o != nil {
		opts = *o
	}
	if opts.BaseURL == "" {
		opts.BaseURL = baseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Source == language.Und {
		opts.Source = language.English
	}
	if opts.Target == language.Und {
		opts.Target = language.Tamil
	}
	return opts
}

// code returns the base language code services expect, e.g. "ta".
func code(t language.Tag) string {
	b, _ := t.Base()
	return b.String()
}

// Chain tries each translator in order and returns the first non-empty
// translation.
type Chain []Translator

// Translate implements [Translator].
func (c Chain) Translate(ctx context.Context, text string) (string, error) {
	var errs []error
	for _, t := range c {
		s, err := t.Translate(ctx, text)
		if err == nil && strings.TrimSpace(s) != "" {
			return s, nil
		}
		if err == nil {
			err = ErrEmpty
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return "", ErrEmpty
	}
	return "", errors.Join(errs...)
}

// All translates texts with at most workers concurrent calls. The result at
// index i is the translation of texts[i]. Empty texts and [None] translate to
// [None] without a call. Failed translations are replaced by [Unavailable]
// and their errors joined into the returned error.
func All(ctx context.Context, t Translator, texts []string, workers int) ([]string, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	out := make([]string, len(texts))
	errs := make([]error, len(texts))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" || text == None {
			out[i] = None
			continue
		}
		g.Go(func() error {
			s, err := t.Translate(ctx, text)
			if err == nil && strings.TrimSpace(s) == "" {
				err = ErrEmpty
			}
			if err != nil {
				out[i] = Unavailable
				errs[i] = fmt.Errorf("translating %q: %w", text, err)
				return nil
			}
			out[i] = s
			return nil
		})
	}
	_ = g.Wait()

	return out, errors.Join(errs...)
}
