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

package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ianlewis/go-wordhunter/datamuse"
	"github.com/ianlewis/go-wordhunter/internal/folding"
)

// Source produces words.
type Source interface {
	Load(ctx context.Context) ([]string, error)
}

// SourceFunc adapts a function to a [Source].
type SourceFunc func(ctx context.Context) ([]string, error)

// Load implements [Source].
func (f SourceFunc) Load(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// StaticSource is a fixed list of words.
type StaticSource []string

// Load implements [Source].
func (s StaticSource) Load(context.Context) ([]string, error) {
	return s, nil
}

// ReaderSource reads one word per line. Blank lines and lines starting with
// '#' are skipped.
type ReaderSource struct {
	R io.Reader
}

// Load implements [Source].
func (s *ReaderSource) Load(context.Context) ([]string, error) {
	return readLines(s.R)
}

// FileSource reads one word per line from a file.
type FileSource struct {
	Path string
}

// Load implements [Source].
func (s *FileSource) Load(context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	words, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.Path, err)
	}
	return words, nil
}

func readLines(r io.Reader) ([]string, error) {
	var words []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning words: %w", err)
	}
	return words, nil
}

// Headworder lists the words of a lexical database.
type Headworder interface {
	Headwords() []string
}

// LexiconSource loads every headword and synonym of a lexicon.
type LexiconSource struct {
	Lexicon Headworder
}

// Load implements [Source].
func (s *LexiconSource) Load(context.Context) ([]string, error) {
	return s.Lexicon.Headwords(), nil
}

// DatamuseSource loads the words matching a spelling pattern from the
// Datamuse API.
type DatamuseSource struct {
	Client  *datamuse.Client
	Pattern string
	Max     int
}

// Load implements [Source].
func (s *DatamuseSource) Load(ctx context.Context) ([]string, error) {
	res, err := s.Client.Words(ctx, datamuse.Query{Pattern: s.Pattern, Max: s.Max})
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, len(res))
	for _, w := range res {
		words = append(words, w.Word)
	}
	return words, nil
}

// Options filter the words returned by sources.
type Options struct {
	// LettersOnly drops words containing anything other than letters,
	// hyphens and apostrophes. Multi-word entries are dropped.
	LettersOnly bool

	// Lower converts words to lower case.
	Lower bool
}

// LoadAll loads every source into one set. A source that fails is logged and
// skipped so a partial word list is still returned.
func LoadAll(ctx context.Context, logger *slog.Logger, opts *Options, sources ...Source) *Set {
	if opts == nil {
		opts = &Options{}
	}
	lower := cases.Lower(language.English)

	set := NewSet()
	for i, src := range sources {
		words, err := src.Load(ctx)
		if err != nil {
			logger.WarnContext(ctx, "word source failed",
				slog.Int("source", i),
				slog.String("type", fmt.Sprintf("%T", src)),
				slog.Any("error", err),
			)
			continue
		}

		n := set.Len()
		for _, w := range words {
			w = folding.Space(w)
			if opts.LettersOnly && !lettersOnly(w) {
				continue
			}
			if opts.Lower {
				w = lower.String(w)
			}
			set.Add(w)
		}
		logger.DebugContext(ctx, "loaded words",
			slog.Int("source", i),
			slog.Int("read", len(words)),
			slog.Int("added", set.Len()-n),
		)
	}
	return set
}

func lettersOnly(w string) bool {
	letters := 0
	for _, r := range w {
		switch {
		case unicode.IsLetter(r) || unicode.Is(unicode.Mn, r):
			letters++
		case r == '-' || r == '\'':
		default:
			return false
		}
	}
	return letters > 0
}
