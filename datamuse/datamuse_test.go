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

package datamuse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClient_Words(t *testing.T) {
	t.Parallel()

	queries := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/words" {
			http.NotFound(w, r)
			return
		}
		queries <- r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"word":"running","score":1500,"tags":["f:120.5"]},
			{"word":"jumping","score":900,"tags":["f:bad"]},
			{"word":"singing","score":800}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.Client())
	words, err := c.Words(context.Background(), Query{Pattern: "*ing", Max: 5000, Frequency: true})
	if err != nil {
		t.Fatalf("Words: %v", err)
	}

	if diff := cmp.Diff("max=1000&md=f&sp=%2Aing", <-queries); diff != "" {
		t.Errorf("query (-want, +got):\n%s", diff)
	}

	want := []Word{
		{Word: "running", Score: 1500, Tags: []string{"f:120.5"}, Frequency: 120.5},
		{Word: "jumping", Score: 900, Tags: []string{"f:bad"}},
		{Word: "singing", Score: 800},
	}
	if diff := cmp.Diff(want, words); diff != "" {
		t.Errorf("Words (-want, +got):\n%s", diff)
	}
}

func TestClient_Words_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  bool
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			status: true,
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"not":"a list"}`))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(test.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, srv.Client()).Words(context.Background(), Query{Pattern: "*ing"})
			if err == nil {
				t.Fatal("Words: expected error")
			}
			if got := errors.Is(err, ErrStatus); got != test.status {
				t.Errorf("errors.Is(err, ErrStatus): got %v, want %v", got, test.status)
			}
		})
	}
}

func TestSuffixPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		suffix   string
		letters  int
		expected string
	}{
		{suffix: "ing", letters: -1, expected: "*ing"},
		{suffix: "ing", letters: 0, expected: "ing"},
		{suffix: "ly", letters: 3, expected: "???ly"},
	}

	for _, test := range tests {
		if diff := cmp.Diff(test.expected, SuffixPattern(test.suffix, test.letters)); diff != "" {
			t.Errorf("SuffixPattern(%q, %d) (-want, +got):\n%s", test.suffix, test.letters, diff)
		}
	}
}
