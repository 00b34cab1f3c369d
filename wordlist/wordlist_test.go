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
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testWords = []string{
	"running", "Sing", "king", "ring", "bring", "ing", "jumping", "happily",
	"fly", "ly", "Flying", "naïveing", "",
}

func TestFindMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		suffix   string
		letters  int
		fold     bool
		expected []string
	}{
		{
			name:     "any length",
			suffix:   "ing",
			letters:  AnyLength,
			expected: []string{"running", "Sing", "king", "ring", "bring", "ing", "jumping", "Flying", "naïveing"},
		},
		{
			name:     "exact letters",
			suffix:   "ing",
			letters:  1,
			expected: []string{"Sing", "king", "ring"},
		},
		{
			name:     "word equal to suffix",
			suffix:   "ly",
			letters:  0,
			expected: []string{"ly"},
		},
		{
			name:     "letters counted in runes",
			suffix:   "ing",
			letters:  5,
			expected: []string{"naïveing"},
		},
		{
			name:     "case sensitive",
			suffix:   "ING",
			letters:  AnyLength,
			expected: nil,
		},
		{
			name:     "folded",
			suffix:   "ING",
			letters:  3,
			fold:     true,
			expected: []string{"Flying"},
		},
		{
			name:     "empty suffix",
			suffix:   "",
			letters:  2,
			expected: []string{"ly"},
		},
		{
			name:     "no matches",
			suffix:   "xyz",
			letters:  AnyLength,
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			find := FindMatches
			if test.fold {
				find = FindMatchesFold
			}
			if diff := cmp.Diff(test.expected, find(testWords, test.suffix, test.letters)); diff != "" {
				t.Errorf("matches (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Matches(t *testing.T) {
	t.Parallel()

	// Of the extra words only "a\ufffd" is valid UTF-8.
	set := NewSet(append([]string{"\xffing", "a\ufffd", "\xff"}, testWords...)...)
	idx := NewIndex(set)
	if got, want := idx.Len(), len(testWords); got != want {
		t.Fatalf("Len: got %d, want %d", got, want)
	}

	// The index must agree with a linear scan for every suffix and length.
	suffixes := []string{
		"", "g", "ing", "ING", "ly", "y", "naïveing", "ïveing", "zz",
		"\ufffd", "\xff", "\xa9ing", "\xc3\xafveing",
	}
	for _, suffix := range suffixes {
		for letters := AnyLength; letters < 10; letters++ {
			want := FindMatchesFold(set.Words(), suffix, letters)
			if diff := cmp.Diff(want, idx.Matches(suffix, letters)); diff != "" {
				t.Errorf("Matches(%q, %d) (-want, +got):\n%s", suffix, letters, diff)
			}
		}
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	s := NewSet("b", "a", "", "b", "\xffb")
	other := NewSet("c", "a")
	s.Merge(other)

	if diff := cmp.Diff([]string{"a", "b", "c"}, s.Words()); diff != "" {
		t.Errorf("Words (-want, +got):\n%s", diff)
	}
	if got, want := s.Len(), 3; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}
	if !s.Contains("c") || s.Contains("") {
		t.Errorf("Contains: unexpected result")
	}

	var zero Set
	zero.Add("x")
	if diff := cmp.Diff([]string{"x"}, zero.Words()); diff != "" {
		t.Errorf("zero value Words (-want, +got):\n%s", diff)
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{Word: "running", Letters: 4, Frequency: 50},
		{Word: "king", Letters: 1, Frequency: 80},
		{Word: "bring", Letters: 2, Frequency: 80},
		{Word: "ring", Letters: 1},
	}

	tests := []struct {
		order    Order
		expected []string
	}{
		{order: Alphabetical, expected: []string{"bring", "king", "ring", "running"}},
		{order: Length, expected: []string{"king", "ring", "bring", "running"}},
		{order: Frequency, expected: []string{"bring", "king", "running", "ring"}},
	}

	for _, test := range tests {
		t.Run(test.order.String(), func(t *testing.T) {
			t.Parallel()

			m := append([]Match(nil), matches...)
			Sort(m, test.order)
			var got []string
			for _, x := range m {
				got = append(got, x.Word)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Sort (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	for _, o := range []Order{Alphabetical, Length, Frequency} {
		got, err := ParseOrder(strings.ToUpper(o.String()))
		if err != nil {
			t.Fatalf("ParseOrder(%q): %v", o, err)
		}
		if got != o {
			t.Errorf("ParseOrder(%q): got %v", o, got)
		}
	}
	if _, err := ParseOrder("random"); err == nil {
		t.Errorf("ParseOrder(random): expected error")
	}
}

type headwords []string

func (h headwords) Headwords() []string { return h }

func TestLoadAll(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("# kids words\nSinging\n\n  ring  \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	set := LoadAll(context.Background(), logger, &Options{LettersOnly: true, Lower: true},
		&FileSource{Path: path},
		&ReaderSource{R: strings.NewReader("bring\nice cream\n")},
		&LexiconSource{Lexicon: headwords{"dog's", "well-being", "a1", "Canis"}},
		SourceFunc(func(context.Context) ([]string, error) {
			return nil, errors.New("offline")
		}),
		&FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")},
		StaticSource{"king"},
	)

	want := []string{"bring", "canis", "dog's", "king", "ring", "singing", "well-being"}
	if diff := cmp.Diff(want, set.Words()); diff != "" {
		t.Errorf("LoadAll (-want, +got):\n%s", diff)
	}
}
