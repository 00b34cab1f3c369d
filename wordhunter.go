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

package wordhunter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/ianlewis/go-wordhunter/datamuse"
	"github.com/ianlewis/go-wordhunter/export"
	"github.com/ianlewis/go-wordhunter/internal/folding"
	"github.com/ianlewis/go-wordhunter/lexicon"
	"github.com/ianlewis/go-wordhunter/tracer"
	"github.com/ianlewis/go-wordhunter/translate"
	"github.com/ianlewis/go-wordhunter/wordlist"
)

// ErrEmptySuffix is returned when searching for an empty suffix.
var ErrEmptySuffix = errors.New("empty suffix")

// Config configures a [Hunter].
type Config struct {
	// Words is the word list searched by suffix.
	Words *wordlist.Set

	// Lexicon defines words. Nil means every lookup returns the sentinel.
	Lexicon lexicon.Definer

	// Translator translates words and definitions. Nil disables
	// translation.
	Translator translate.Translator

	// Datamuse adds suggestions to searches that ask for them. Nil
	// disables them.
	Datamuse *datamuse.Client

	// Workers bounds concurrent translations.
	Workers int

	Logger *slog.Logger
}

// Hunter searches, defines and translates words. A Hunter is safe for
// concurrent use.
type Hunter struct {
	words   *wordlist.Set
	index   *wordlist.Index
	lex     lexicon.Definer
	tr      translate.Translator
	dm      *datamuse.Client
	workers int
	logger  *slog.Logger
}

// New returns a Hunter. The word set must not be modified afterwards.
func New(cfg Config) *Hunter {
	words := cfg.Words
	if words == nil {
		words = wordlist.NewSet()
	}
	lex := cfg.Lexicon
	if lex == nil {
		lex = lexicon.Static{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = translate.DefaultWorkers
	}

	return &Hunter{
		words:   words,
		index:   wordlist.NewIndex(words),
		lex:     lex,
		tr:      cfg.Translator,
		dm:      cfg.Datamuse,
		workers: workers,
		logger:  logger,
	}
}

// Len returns the number of words in the word list.
func (h *Hunter) Len() int {
	return h.words.Len()
}

// Query is a suffix search.
type Query struct {
	Suffix string `json:"suffix"`

	// Letters is the exact number of letters before the suffix, or
	// [wordlist.AnyLength].
	Letters int `json:"letters"`

	Sort wordlist.Order `json:"sort"`

	// Limit caps the number of matches. Zero means no limit.
	Limit int `json:"limit,omitempty"`

	// Datamuse adds suggestions from the Datamuse API.
	Datamuse bool `json:"datamuse,omitempty"`
}

// SearchResult holds the matches of a [Query].
type SearchResult struct {
	Query   Query            `json:"query"`
	Matches []wordlist.Match `json:"matches"`

	// Total is the number of matches before the limit was applied.
	Total int `json:"total"`

	// Warnings describe external calls that failed.
	Warnings []string `json:"warnings,omitempty"`
}

// Words returns the matched words.
func (r *SearchResult) Words() []string {
	words := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		words[i] = m.Word
	}
	return words
}

// Search finds the words ending with the query suffix.
func (h *Hunter) Search(ctx context.Context, q Query) (*SearchResult, error) {
	q.Suffix = folding.Space(q.Suffix)
	if q.Suffix == "" {
		return nil, ErrEmptySuffix
	}
	if q.Letters < 0 {
		q.Letters = wordlist.AnyLength
	}

	suffixLen := utf8.RuneCountInString(folding.String(q.Suffix))
	letters := func(w string) int {
		return utf8.RuneCountInString(folding.String(w)) - suffixLen
	}

	res := &SearchResult{Query: q}
	seen := map[string]int{}
	for _, w := range h.index.Matches(q.Suffix, q.Letters) {
		seen[w] = len(res.Matches)
		res.Matches = append(res.Matches, wordlist.Match{Word: w, Letters: letters(w)})
	}

	if q.Datamuse && h.dm != nil {
		suggestions, err := h.dm.Words(ctx, datamuse.Query{
			Pattern:   datamuse.SuffixPattern(folding.String(q.Suffix), q.Letters),
			Max:       datamuse.MaxResults,
			Frequency: true,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "datamuse search failed",
				slog.String("suffix", q.Suffix),
				slog.Any("error", err),
			)
			res.Warnings = append(res.Warnings, err.Error())
		}
		for _, s := range suggestions {
			// The API pattern is looser than a suffix match for some inputs.
			if len(wordlist.FindMatchesFold([]string{s.Word}, q.Suffix, q.Letters)) == 0 {
				continue
			}
			if i, ok := seen[s.Word]; ok {
				res.Matches[i].Frequency = s.Frequency
				continue
			}
			seen[s.Word] = len(res.Matches)
			res.Matches = append(res.Matches, wordlist.Match{
				Word:      s.Word,
				Letters:   letters(s.Word),
				Frequency: s.Frequency,
			})
		}
	}

	wordlist.Sort(res.Matches, q.Sort)
	res.Total = len(res.Matches)
	if q.Limit > 0 && len(res.Matches) > q.Limit {
		res.Matches = res.Matches[:q.Limit]
	}
	if res.Matches == nil {
		res.Matches = []wordlist.Match{}
	}
	return res, nil
}

// ExploreOptions configure [Hunter.Explore].
type ExploreOptions struct {
	// Translate adds the translation of each word and its definition.
	Translate bool
}

// Result is everything found for one word.
type Result struct {
	Word string `json:"word"`

	// Entry is nil when the word was not found.
	Entry *lexicon.Entry `json:"entry,omitempty"`

	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`

	// Meaning is the translation of the word.
	Meaning string `json:"meaning"`

	// DefinitionMeaning is the translation of the definition.
	DefinitionMeaning string `json:"definitionMeaning"`
}

// Exploration holds the results of [Hunter.Explore].
type Exploration struct {
	Results  []Result `json:"results"`
	Warnings []string `json:"warnings,omitempty"`
}

// Explore looks up and optionally translates words. Missing data is filled
// with placeholders and failures are reported as warnings.
func (h *Hunter) Explore(ctx context.Context, words []string, opts ExploreOptions) *Exploration {
	ex := &Exploration{Results: make([]Result, 0, len(words))}

	for _, w := range words {
		w = folding.Space(w)
		if w == "" {
			continue
		}
		entry, err := h.lex.Define(w)
		if err != nil {
			entry = nil
			if !errors.Is(err, lexicon.ErrNotFound) {
				h.logger.WarnContext(ctx, "lookup failed", slog.String("word", w), slog.Any("error", err))
				ex.Warnings = append(ex.Warnings, err.Error())
			}
		}
		ex.Results = append(ex.Results, Result{
			Word:              w,
			Entry:             entry,
			PartOfSpeech:      entry.PartOfSpeech(),
			Definition:        entry.Definition(),
			Meaning:           translate.None,
			DefinitionMeaning: translate.None,
		})
	}

	if !opts.Translate || h.tr == nil || len(ex.Results) == 0 {
		return ex
	}

	texts := make([]string, 0, 2*len(ex.Results))
	for _, r := range ex.Results {
		texts = append(texts, r.Word, r.Definition)
	}
	translated, err := translate.All(ctx, h.tr, texts, h.workers)
	if err != nil {
		failed := 0
		for _, s := range translated {
			if s == translate.Unavailable {
				failed++
			}
		}
		h.logger.WarnContext(ctx, "translation failed",
			slog.Int("failed", failed),
			slog.Int("total", len(texts)),
			slog.Any("error", err),
		)
		ex.Warnings = append(ex.Warnings, fmt.Sprintf("%d of %d translations failed", failed, len(texts)))
	}
	for i := range ex.Results {
		ex.Results[i].Meaning = translated[2*i]
		ex.Results[i].DefinitionMeaning = translated[2*i+1]
	}
	return ex
}

// Rows converts results to spreadsheet rows.
func Rows(results []Result) []export.Row {
	rows := make([]export.Row, len(results))
	for i, r := range results {
		rows[i] = export.Row{
			Word:         r.Word,
			PartOfSpeech: r.PartOfSpeech,
			Definition:   r.Definition,
			Meaning:      r.Meaning,
		}
	}
	return rows
}

// Export writes results as a spreadsheet.
func Export(w io.Writer, results []Result, opts *export.Options) error {
	return export.Write(w, Rows(results), opts)
}

// Tracer writes a tracer sheet for words.
func Tracer(w io.Writer, words []string, opts *tracer.Options) (*tracer.Result, error) {
	return tracer.Generate(w, words, opts)
}
