// Copyright 2021 Google LLC
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

package stardict_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wordhunter/internal/testutil"
	"github.com/ianlewis/go-wordhunter/lexicon/stardict"
)

var animals = []testutil.Article{
	{Word: "dog", Text: "n 1: a domesticated carnivore"},
	{Word: "cat", Text: "n 1: a small feline"},
	{Word: "Running", Text: "n 1: the act of running"},
}

func articleTexts(t *testing.T, d *stardict.Dictionary, word string) []string {
	t.Helper()
	articles, err := d.Lookup(word)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", word, err)
	}
	var texts []string
	for _, a := range articles {
		texts = append(texts, a.Text())
	}
	return texts
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dict testutil.Dictionary
	}{
		{
			name: "plain",
			dict: testutil.Dictionary{Articles: animals},
		},
		{
			name: "64 bit offsets",
			dict: testutil.Dictionary{Articles: animals, OffsetBits: 64},
		},
		{
			name: "gzip index",
			dict: testutil.Dictionary{Articles: animals, GzipIndex: true},
		},
		{
			name: "dictzip",
			dict: testutil.Dictionary{Articles: animals, DictZip: true},
		},
		{
			name: "sametypesequence",
			dict: testutil.Dictionary{Articles: animals, SameType: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := testutil.WriteDictionary(t, t.TempDir(), test.dict)
			d, err := stardict.Open(path, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer d.Close()

			if diff := cmp.Diff("dictionary", d.Bookname()); diff != "" {
				t.Errorf("Bookname (-want, +got):\n%s", diff)
			}
			if got, want := d.Info().WordCount, int64(3); got != want {
				t.Errorf("WordCount: got %d, want %d", got, want)
			}

			want := []string{"n 1: a domesticated carnivore"}
			if diff := cmp.Diff(want, articleTexts(t, d, "dog")); diff != "" {
				t.Errorf("Lookup(dog) (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictionary_Lookup(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDictionary(t, t.TempDir(), testutil.Dictionary{
		Articles: append([]testutil.Article{
			{Word: "page", Text: "<b>page</b> one side of a leaf", Type: 'h'},
		}, animals...),
		Synonyms: map[string]string{
			"doggy":        "dog",
			"domestic dog": "dog",
		},
	})
	d, err := stardict.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "exact",
			query:    "cat",
			expected: []string{"n 1: a small feline"},
		},
		{
			name:     "folded case and space",
			query:    "  RUNNING ",
			expected: []string{"n 1: the act of running"},
		},
		{
			name:     "synonym",
			query:    "doggy",
			expected: []string{"n 1: a domesticated carnivore"},
		},
		{
			name:     "html",
			query:    "page",
			expected: []string{"page one side of a leaf"},
		},
		{
			name:     "missing",
			query:    "zebra",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, articleTexts(t, d, test.query)); diff != "" {
				t.Fatalf("Lookup (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictionary_Synonyms(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDictionary(t, t.TempDir(), testutil.Dictionary{
		Articles: animals,
		Synonyms: map[string]string{
			"doggy":        "dog",
			"domestic dog": "dog",
		},
	})
	d, err := stardict.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if diff := cmp.Diff([]string{"doggy", "domestic dog"}, d.Synonyms("dog")); diff != "" {
		t.Errorf("Synonyms(dog) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dog", "domestic dog"}, d.Synonyms("doggy")); diff != "" {
		t.Errorf("Synonyms(doggy) (-want, +got):\n%s", diff)
	}

	want := []string{"Running", "cat", "dog", "doggy", "domestic dog"}
	if diff := cmp.Diff(want, d.Headwords()); diff != "" {
		t.Errorf("Headwords (-want, +got):\n%s", diff)
	}
}

func TestOpenAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteDictionary(t, dir, testutil.Dictionary{Name: "one", Articles: animals})
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatal(err)
	}
	testutil.WriteDictionary(t, sub, testutil.Dictionary{Name: "two", Articles: animals})
	// A dictionary without its .dict file fails to open.
	broken := testutil.WriteDictionary(t, dir, testutil.Dictionary{Name: "broken", Articles: animals})
	if err := os.Remove(strings.TrimSuffix(broken, ".ifo") + ".dict"); err != nil {
		t.Fatal(err)
	}

	dicts, errs := stardict.OpenAll(dir, nil)
	defer func() {
		for _, d := range dicts {
			d.Close()
		}
	}()

	var names []string
	for _, d := range dicts {
		names = append(names, d.Bookname())
	}
	if diff := cmp.Diff([]string{"two", "one"}, names); diff != "" {
		t.Errorf("OpenAll names (-want, +got):\n%s", diff)
	}
	if len(errs) != 1 || !errors.Is(errs[0], stardict.ErrNoCompanion) {
		t.Errorf("OpenAll errors: got %v, want one ErrNoCompanion", errs)
	}
}

func TestParseInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ifo      string
		expected *stardict.Info
		err      error
	}{
		{
			name: "full",
			ifo: "StarDict's dict ifo file\nversion=3.0.0\nbookname=WordNet\nwordcount=2\n" +
				"idxfilesize=20\nidxoffsetbits=64\nauthor=Princeton\nsametypesequence=m\n",
			expected: &stardict.Info{
				Version:          "3.0.0",
				Bookname:         "WordNet",
				WordCount:        2,
				IdxFileSize:      20,
				IdxOffsetBits:    64,
				Author:           "Princeton",
				SameTypeSequence: []stardict.DataType{stardict.UTFTextType},
			},
		},
		{
			name: "offset bits ignored before 3.0.0",
			ifo:  "StarDict's dict ifo file\nversion=2.4.2\nbookname=b\nwordcount=1\nidxfilesize=1\nidxoffsetbits=64\n",
			expected: &stardict.Info{
				Version:       "2.4.2",
				Bookname:      "b",
				WordCount:     1,
				IdxFileSize:   1,
				IdxOffsetBits: 32,
			},
		},
		{
			name: "bad magic",
			ifo:  "not a dictionary\nversion=3.0.0\n",
			err:  stardict.ErrBadMagic,
		},
		{
			name: "bad version",
			ifo:  "StarDict's dict ifo file\nversion=1.0\nbookname=b\nwordcount=1\nidxfilesize=1\n",
			err:  stardict.ErrVersion,
		},
		{
			name: "bad offset bits",
			ifo:  "StarDict's dict ifo file\nversion=3.0.0\nbookname=b\nwordcount=1\nidxfilesize=1\nidxoffsetbits=16\n",
			err:  stardict.ErrInvalidOffsetBits,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			info, err := stardict.ParseInfo(strings.NewReader(test.ifo))
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("ParseInfo: got error %v, want %v", err, test.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInfo: %v", err)
			}
			if diff := cmp.Diff(test.expected, info); diff != "" {
				t.Fatalf("ParseInfo (-want, +got):\n%s", diff)
			}
		})
	}
}
