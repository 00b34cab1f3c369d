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

// Package lexicon looks up words in lexical databases and returns their
// senses, parts of speech and synonyms.
package lexicon

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ianlewis/go-wordhunter/internal/folding"
	"github.com/ianlewis/go-wordhunter/lexicon/stardict"
)

// None is shown in place of data that is not available.
const None = "-"

// ErrNotFound indicates that no dictionary has an entry for the word.
var ErrNotFound = errors.New("word not found")

// Sense is one meaning of a word.
type Sense struct {
	PartOfSpeech string   `json:"partOfSpeech,omitempty"`
	Definition   string   `json:"definition"`
	Examples     []string `json:"examples,omitempty"`
}

// Entry is everything known about a word.
type Entry struct {
	Word     string   `json:"word"`
	Senses   []Sense  `json:"senses,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`

	// Sources are the names of the dictionaries the entry came from.
	Sources []string `json:"sources,omitempty"`
}

// Definition returns the first definition or [None].
func (e *Entry) Definition() string {
	if e == nil {
		return None
	}
	for _, s := range e.Senses {
		if s.Definition != "" {
			return s.Definition
		}
	}
	return None
}

// PartOfSpeech returns the distinct parts of speech joined by ", " or
// [None].
func (e *Entry) PartOfSpeech() string {
	if e == nil {
		return None
	}
	var out []string
	for _, s := range e.Senses {
		if s.PartOfSpeech != "" && !slices.Contains(out, s.PartOfSpeech) {
			out = append(out, s.PartOfSpeech)
		}
	}
	if len(out) == 0 {
		return None
	}
	return strings.Join(out, ", ")
}

// Definer looks up a word.
type Definer interface {
	Define(word string) (*Entry, error)
}

// Lexicon looks words up across a set of StarDict dictionaries.
type Lexicon struct {
	dicts []*stardict.Dictionary
}

// New returns a Lexicon over dicts. The Lexicon takes ownership of the
// dictionaries.
func New(dicts ...*stardict.Dictionary) *Lexicon {
	return &Lexicon{dicts: dicts}
}

// Open opens every dictionary found in dirs. Errors for dictionaries that
// could not be opened are returned alongside the Lexicon.
func Open(dirs []string, opts *stardict.Options) (*Lexicon, []error) {
	var dicts []*stardict.Dictionary
	var errs []error
	for _, dir := range dirs {
		d, e := stardict.OpenAll(dir, opts)
		dicts = append(dicts, d...)
		errs = append(errs, e...)
	}
	return New(dicts...), errs
}

// Dictionaries returns the dictionaries in the lexicon.
func (l *Lexicon) Dictionaries() []*stardict.Dictionary {
	return l.dicts
}

// Headwords returns the headwords and synonyms of every dictionary.
func (l *Lexicon) Headwords() []string {
	var words []string
	for _, d := range l.dicts {
		words = append(words, d.Headwords()...)
	}
	return words
}

// Define collects the articles for word from every dictionary and parses
// them into senses and synonyms.
func (l *Lexicon) Define(word string) (*Entry, error) {
	word = folding.Space(word)
	entry := &Entry{Word: word}
	seen := map[string]bool{folding.String(word): true}
	addSynonym := func(s string) {
		k := folding.String(s)
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		entry.Synonyms = append(entry.Synonyms, s)
	}

	found := false
	for _, d := range l.dicts {
		articles, err := d.Lookup(word)
		if err != nil {
			return nil, fmt.Errorf("looking up %q in %q: %w", word, d.Bookname(), err)
		}
		if len(articles) == 0 {
			continue
		}
		found = true
		entry.Sources = append(entry.Sources, d.Bookname())

		for _, a := range articles {
			senses, syns := parseGloss(a.Text())
			entry.Senses = append(entry.Senses, senses...)
			for _, s := range syns {
				addSynonym(s)
			}
		}
		for _, s := range d.Synonyms(word) {
			addSynonym(s)
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	return entry, nil
}

// Close closes every dictionary.
func (l *Lexicon) Close() error {
	var errs []error
	for _, d := range l.dicts {
		errs = append(errs, d.Close())
	}
	return errors.Join(errs...)
}

// Static is an in-memory Definer keyed by folded word.
type Static map[string]*Entry

// NewStatic returns a Static lexicon for the given entries.
func NewStatic(entries ...*Entry) Static {
	s := Static{}
	for _, e := range entries {
		s[folding.String(e.Word)] = e
	}
	return s
}

// Define implements [Definer].
func (s Static) Define(word string) (*Entry, error) {
	if e, ok := s[folding.String(word)]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, word)
}

// Headwords returns the words in the lexicon.
func (s Static) Headwords() []string {
	words := make([]string, 0, len(s))
	for _, e := range s {
		words = append(words, e.Word)
	}
	slices.Sort(words)
	return words
}
