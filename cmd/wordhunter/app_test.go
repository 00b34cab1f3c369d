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
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-wordhunter/export"
	"github.com/ianlewis/go-wordhunter/internal/testutil"
)

// setup points the app at a test dictionary and word list and disables
// network access. Tests using it cannot run in parallel.
func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dictDir := filepath.Join(dir, "dic")
	if err := os.Mkdir(dictDir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	testutil.WriteDictionary(t, dictDir, testutil.Dictionary{
		Name:     "wordnet",
		Bookname: "WordNet",
		Articles: []testutil.Article{
			{Word: "king", Text: "n 1: a male sovereign; ruler of a kingdom [syn: {monarch}]"},
			{Word: "ring", Text: "n 1: a circular band"},
		},
	})

	wordsFile := filepath.Join(dir, "words")
	if err := os.WriteFile(wordsFile, []byte("# test words\nbring\nsing\nKing\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("WORDHUNTER_DATA_DIRS", dictDir)
	t.Setenv("WORDHUNTER_WORDS_FILES", wordsFile)
	t.Setenv("WORDHUNTER_TRANSLATE", "false")
	t.Setenv("WORDHUNTER_DATAMUSE", "false")
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	app := newWordhunterApp()
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"wordhunter"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestSearchCommand(t *testing.T) {
	setup(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "letters",
			args:     []string{"search", "--letters", "1", "ing"},
			contains: []string{"king", "ring", "sing", "3 words found"},
			excludes: []string{"bring"},
		},
		{
			name:     "any length",
			args:     []string{"search", "ING"},
			contains: []string{"bring", "4 words found"},
		},
		{
			name:     "define",
			args:     []string{"search", "--define", "--letters", "1", "ing"},
			contains: []string{"a male sovereign", "a circular band", "Part of speech"},
		},
		{
			name:     "tamil labels",
			args:     []string{"--lang", "ta", "search", "ing"},
			contains: []string{"சொல்"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout, stderr, err := run(t, test.args...)
			if err != nil {
				t.Fatalf("run: %v\n%s", err, stderr)
			}
			for _, s := range test.contains {
				if !strings.Contains(stdout, s) {
					t.Errorf("output does not contain %q:\n%s", s, stdout)
				}
			}
			for _, s := range test.excludes {
				if strings.Contains(stdout, s) {
					t.Errorf("output contains %q:\n%s", s, stdout)
				}
			}
		})
	}
}

func TestDefineCommand(t *testing.T) {
	setup(t)

	stdout, stderr, err := run(t, "define", "King", "zzz")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	want := "King\n" +
		"  1. (noun) a male sovereign; ruler of a kingdom\n" +
		"  Synonyms: monarch\n" +
		"\n" +
		"zzz\n" +
		"  -\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("output (-want, +got):\n%s", diff)
	}
}

func TestTranslateCommand(t *testing.T) {
	setup(t)

	var mu sync.Mutex
	seen := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		mu.Lock()
		seen[q]++
		mu.Unlock()
		if r.URL.Path == "/translate_a/single" && q == "cat" {
			_, _ = w.Write([]byte(`[[["பூனை","cat",null,null,10]],null,"en"]`))
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	t.Setenv("WORDHUNTER_GOOGLE_TRANSLATE_URL", srv.URL)
	t.Setenv("WORDHUNTER_MYMEMORY_URL", srv.URL)

	stdout, stderr, err := run(t, "translate", "cat")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "பூனை") {
		t.Errorf("output does not contain the translation:\n%s", stdout)
	}

	stdout, _, err = run(t, "translate", "cat", "dog", "bird")
	if !errors.Is(err, ErrWordhunter) {
		t.Errorf("failed translation: got %v, want ErrWordhunter", err)
	}
	if got := strings.Count(stdout, "(translation unavailable)"); got != 2 {
		t.Errorf("unavailable translations: got %d, want 2:\n%s", got, stdout)
	}
	mu.Lock()
	defer mu.Unlock()
	for _, text := range []string{"dog", "bird"} {
		if seen[text] == 0 {
			t.Errorf("%q was not translated", text)
		}
	}
}

func TestListCommand(t *testing.T) {
	setup(t)

	stdout, stderr, err := run(t, "list")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "WordNet") {
		t.Errorf("output does not list the dictionary:\n%s", stdout)
	}

	_, _, err = run(t, "--data-dir", t.TempDir(), "list")
	if !errors.Is(err, ErrWordhunter) {
		t.Errorf("empty data dir: got %v, want ErrWordhunter", err)
	}
}

func TestExportCommand(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "out.xlsx")

	if _, stderr, err := run(t, "export", "-o", path, "--letters", "1", "ing"); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	rows, err := export.Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []export.Row{
		{Word: "king", PartOfSpeech: "noun", Definition: "a male sovereign; ruler of a kingdom", Meaning: "-"},
		{Word: "ring", PartOfSpeech: "noun", Definition: "a circular band", Meaning: "-"},
		{Word: "sing", PartOfSpeech: "-", Definition: "-", Meaning: "-"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want, +got):\n%s", diff)
	}
}

func TestTracerCommand(t *testing.T) {
	dir := setup(t)

	for name, args := range map[string][]string{
		"search": {"tracer", "-o", filepath.Join(dir, "search.pdf"), "ing"},
		"words":  {"tracer", "-o", filepath.Join(dir, "words.pdf"), "--word", "cat", "--word", "dog"},
	} {
		if _, stderr, err := run(t, args...); err != nil {
			t.Fatalf("%s: run: %v\n%s", name, err, stderr)
		}
		b, err := os.ReadFile(filepath.Join(dir, name+".pdf"))
		if err != nil {
			t.Fatalf("%s: ReadFile: %v", name, err)
		}
		if !bytes.HasPrefix(b, []byte("%PDF-")) {
			t.Errorf("%s: output is not a PDF", name)
		}
	}
}

func TestFlagErrors(t *testing.T) {
	setup(t)

	for _, args := range [][]string{
		{"search"},
		{"search", "--letters", "x", "ing"},
		{"search", "--sort", "random", "ing"},
		{"define"},
		{"--no-such-flag"},
	} {
		if _, _, err := run(t, args...); !errors.Is(err, ErrFlagParse) {
			t.Errorf("%v: got %v, want ErrFlagParse", args, err)
		}
	}
}

func TestConfigError(t *testing.T) {
	setup(t)
	t.Setenv("WORDHUNTER_WORKERS", "0")

	if _, _, err := run(t, "list"); !errors.Is(err, ErrConfig) {
		t.Errorf("got %v, want ErrConfig", err)
	}
}

func TestConfigOverride(t *testing.T) {
	setup(t)
	t.Setenv("WORDHUNTER_LOG_FORMAT", "xml")

	if _, _, err := run(t, "list"); !errors.Is(err, ErrConfig) {
		t.Errorf("without override: got %v, want ErrConfig", err)
	}
	if _, stderr, err := run(t, "--log-format", "json", "list"); err != nil {
		t.Errorf("with override: %v\n%s", err, stderr)
	}
}

func TestVersionAndHelp(t *testing.T) {
	setup(t)

	stdout, _, err := run(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(stdout, "Copyright (c) 2021 Google LLC") {
		t.Errorf("--version output:\n%s", stdout)
	}

	stdout, _, err = run(t, "search", "--help")
	if err != nil {
		t.Fatalf("search --help: %v", err)
	}
	if !strings.Contains(stdout, "SUFFIX") {
		t.Errorf("search --help output:\n%s", stdout)
	}
}
