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

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/ianlewis/go-wordhunter"
	"github.com/ianlewis/go-wordhunter/lexicon"
	"github.com/ianlewis/go-wordhunter/translate"
	"github.com/ianlewis/go-wordhunter/wordlist"
)

func newModel(t *testing.T, opts *Options) Model {
	t.Helper()
	h := wordhunter.New(wordhunter.Config{
		Words: wordlist.NewSet("king", "ring", "bring", "sing"),
		Lexicon: lexicon.NewStatic(&lexicon.Entry{
			Word:   "bring",
			Senses: []lexicon.Sense{{PartOfSpeech: "verb", Definition: "take something somewhere"}},
		}),
		Translator: translate.Func(func(_ context.Context, s string) (string, error) {
			return "[" + s + "]", nil
		}),
	})
	return New(context.Background(), h, opts)
}

// send applies msg and runs any command it returns, feeding the result back.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if k, ok := msg.(tea.KeyMsg); cmd == nil || ok && k.Type == tea.KeyRunes && m.focus == focusInput {
		// Typing only schedules cursor blinks.
		return m
	}
	switch out := cmd().(type) {
	case searchMsg, defineMsg:
		next, _ = m.Update(out)
		return next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rows(m Model) []string {
	var words []string
	for _, r := range m.table.Rows() {
		words = append(words, r[0])
	}
	return words
}

func TestModel_search(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	m = send(t, m, key("ing"))
	m = send(t, m, key("enter"))

	if diff := cmp.Diff([]string{"bring", "king", "ring", "sing"}, rows(m)); diff != "" {
		t.Errorf("rows (-want, +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "4 words found") {
		t.Errorf("View does not contain the result count:\n%s", m.View())
	}

	// "-" stops at any length.
	m = send(t, m, key("tab"))
	m = send(t, m, key("-"))
	if m.letters != wordlist.AnyLength {
		t.Errorf("letters: got %d, want %d", m.letters, wordlist.AnyLength)
	}
	m = send(t, m, key("+"))
	m = send(t, m, key("+"))
	if m.letters != 1 {
		t.Errorf("letters: got %d, want 1", m.letters)
	}
	if diff := cmp.Diff([]string{"king", "ring", "sing"}, rows(m)); diff != "" {
		t.Errorf("rows (-want, +got):\n%s", diff)
	}

	m = send(t, m, key("+"))
	m = send(t, m, key("+"))
	m = send(t, m, key("+"))
	if len(rows(m)) != 0 || !strings.Contains(m.View(), "No words found.") {
		t.Errorf("expected no rows, got %v", rows(m))
	}
}

func TestModel_typeLetterKeys(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	m = send(t, m, key("-"))
	m = send(t, m, key("+"))
	m = send(t, m, key("ing"))

	if got, want := m.input.Value(), "-+ing"; got != want {
		t.Errorf("input: got %q, want %q", got, want)
	}
	if m.letters != wordlist.AnyLength {
		t.Errorf("letters: got %d, want %d", m.letters, wordlist.AnyLength)
	}
	if m.result != nil {
		t.Errorf("typing ran a search: %+v", m.result)
	}
}

func TestModel_define(t *testing.T) {
	t.Parallel()

	m := newModel(t, &Options{Translate: true})
	m = send(t, m, key("ing"))
	m = send(t, m, key("enter"))
	m = send(t, m, key("tab"))
	if m.focus != focusTable {
		t.Fatalf("focus: got %v, want table", m.focus)
	}
	m = send(t, m, key("enter"))

	if m.detail == nil {
		t.Fatal("no detail after enter")
	}
	want := wordhunter.Result{
		Word:              "bring",
		PartOfSpeech:      "verb",
		Definition:        "take something somewhere",
		Meaning:           "[bring]",
		DefinitionMeaning: "[take something somewhere]",
	}
	got := *m.detail
	got.Entry = nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("detail (-want, +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "take something somewhere") {
		t.Errorf("View does not contain the definition:\n%s", m.View())
	}

	m = send(t, m, key("down"))
	m = send(t, m, key("enter"))
	if m.detail.Word != "king" || m.detail.Definition != lexicon.None {
		t.Errorf("detail: got %+v", m.detail)
	}
}

func TestModel_quit(t *testing.T) {
	t.Parallel()

	m := newModel(t, nil)
	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("esc did not quit")
	}
}

func TestModel_language(t *testing.T) {
	t.Parallel()

	m := newModel(t, &Options{Language: language.Tamil})
	if !strings.Contains(m.View(), "மூளைக் குழந்தை அகராதி") {
		t.Errorf("View is not localized:\n%s", m.View())
	}
}
