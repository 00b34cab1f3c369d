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
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ianlewis/go-wordhunter/internal/folding"
	"github.com/ianlewis/go-wordhunter/internal/index"
)

// Set is a set of unique, non-empty words.
type Set struct {
	words map[string]struct{}

	sortedOnce sync.Once
	sorted     []string
}

// NewSet returns a set holding words.
func NewSet(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	s.Add(words...)
	return s
}

// Add adds words to the set. Empty words and words that are not valid UTF-8
// are ignored. Add must not be called after the set has been read with
// [Set.Words].
func (s *Set) Add(words ...string) {
	if s.words == nil {
		s.words = make(map[string]struct{}, len(words))
	}
	for _, w := range words {
		if w != "" && utf8.ValidString(w) {
			s.words[w] = struct{}{}
		}
	}
}

// Merge adds the words of other to s.
func (s *Set) Merge(other *Set) {
	if s.words == nil {
		s.words = make(map[string]struct{}, len(other.words))
	}
	for w := range other.words {
		s.words[w] = struct{}{}
	}
}

// Len returns the number of words.
func (s *Set) Len() int {
	return len(s.words)
}

// Contains reports whether w is in the set.
func (s *Set) Contains(w string) bool {
	_, ok := s.words[w]
	return ok
}

// Words returns the words in sorted order. The returned slice is shared and
// must not be modified.
func (s *Set) Words() []string {
	s.sortedOnce.Do(func() {
		s.sorted = make([]string, 0, len(s.words))
		for w := range s.words {
			s.sorted = append(s.sorted, w)
		}
		slices.Sort(s.sorted)
	})
	return s.sorted
}

type suffixKey struct {
	key  string
	word string

	// runes is the rune count of the folded word.
	runes int
}

func (k *suffixKey) String() string {
	return k.key
}

// Index finds the words of a set ending with a suffix without scanning the
// whole set. Words are compared in folded form.
type Index struct {
	keys  *index.Index[*suffixKey]
	words []string
}

// NewIndex builds an index over the words in s.
func NewIndex(s *Set) *Index {
	words := s.Words()
	keys := make([]*suffixKey, len(words))
	for i, w := range words {
		f := folding.String(w)
		keys[i] = &suffixKey{
			key:   reverse(f),
			word:  w,
			runes: utf8.RuneCountInString(f),
		}
	}
	return &Index{keys: index.New(keys, strings.Compare), words: words}
}

// Len returns the number of indexed words.
func (idx *Index) Len() int {
	return idx.keys.Len()
}

// Matches returns the sorted words whose folded form ends with the folded
// suffix, with exactly letters runes before it unless letters is negative.
// It returns the same words as [FindMatchesFold] over the indexed set.
func (idx *Index) Matches(suffix string, letters int) []string {
	suffix = folding.String(suffix)
	if !utf8.ValidString(suffix) {
		// A partial rune can only be matched byte-wise.
		return FindMatchesFold(idx.words, suffix, letters)
	}
	n := utf8.RuneCountInString(suffix)

	var out []string
	for _, k := range idx.keys.Prefix(reverse(suffix)) {
		if letters < 0 || k.runes-n == letters {
			out = append(out, k.word)
		}
	}
	slices.Sort(out)
	return out
}

// reverse reverses the runes of s.
func reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}
