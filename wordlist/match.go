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

// Package wordlist loads word lists and filters them by suffix.
package wordlist

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-wordhunter/internal/folding"
)

// AnyLength disables the letter count check.
const AnyLength = -1

// FindMatches returns the words that end with suffix and, when letters is
// not negative, have exactly letters runes before the suffix. Matching is
// exact. The result keeps the order of words.
func FindMatches(words []string, suffix string, letters int) []string {
	var out []string
	for _, w := range words {
		if isMatch(w, suffix, letters) {
			out = append(out, w)
		}
	}
	return out
}

// FindMatchesFold is like [FindMatches] but compares the whitespace and case
// folded forms of the words and suffix. Letters are counted in the folded
// forms.
func FindMatchesFold(words []string, suffix string, letters int) []string {
	suffix = folding.String(suffix)
	var out []string
	for _, w := range words {
		if isMatch(folding.String(w), suffix, letters) {
			out = append(out, w)
		}
	}
	return out
}

func isMatch(w, suffix string, letters int) bool {
	if !strings.HasSuffix(w, suffix) {
		return false
	}
	return letters < 0 || utf8.RuneCountInString(w)-utf8.RuneCountInString(suffix) == letters
}

// Match is a word found by a suffix search.
type Match struct {
	Word string `json:"word"`

	// Letters is the number of letters preceding the suffix.
	Letters int `json:"letters"`

	// Frequency is the number of occurrences per million words if known.
	Frequency float64 `json:"frequency,omitempty"`
}

// Order is a sort order for matches.
type Order int

const (
	// Alphabetical sorts by word.
	Alphabetical Order = iota

	// Length sorts by letter count, then by word.
	Length

	// Frequency sorts the most frequent words first, then by word.
	Frequency
)

var orderNames = []string{"alpha", "length", "frequency"}

// String implements [fmt.Stringer].
func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder parses the name of an order as returned by [Order.String].
func ParseOrder(s string) (Order, error) {
	i := slices.Index(orderNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return 0, fmt.Errorf("unknown sort order %q, want one of %s", s, strings.Join(orderNames, ", "))
	}
	return Order(i), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (o Order) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Order) UnmarshalText(b []byte) error {
	v, err := ParseOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Sort sorts matches in place.
func Sort(matches []Match, order Order) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		var c int
		switch order {
		case Length:
			c = cmp.Compare(utf8.RuneCountInString(a.Word), utf8.RuneCountInString(b.Word))
		case Frequency:
			c = cmp.Compare(b.Frequency, a.Frequency)
		case Alphabetical:
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
}
