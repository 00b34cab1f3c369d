// Copyright 2025 Ian Lewis
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

package index

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type key string

func (k key) String() string {
	return string(k)
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []key
		query    string
		expected []key
	}{
		{
			name:     "single result",
			values:   []key{"foo", "bar", "baz", "bar"},
			query:    "foo",
			expected: []key{"foo"},
		},
		{
			name:     "multiple results",
			values:   []key{"foo", "bar", "baz", "bar"},
			query:    "bar",
			expected: []key{"bar", "bar"},
		},
		{
			name:     "no results",
			values:   []key{"foo", "bar", "baz", "bar"},
			query:    "none",
			expected: nil,
		},
		{
			name:     "empty index",
			values:   nil,
			query:    "foo",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			idx := New(test.values, strings.Compare)
			if diff := cmp.Diff(test.expected, idx.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Prefix(t *testing.T) {
	t.Parallel()

	values := []key{"gni", "gninnur", "gnis", "de", "gnik", "delkcit"}

	tests := []struct {
		name     string
		prefix   string
		expected []key
	}{
		{
			name:     "several",
			prefix:   "gni",
			expected: []key{"gni", "gnik", "gninnur", "gnis"},
		},
		{
			name:     "one",
			prefix:   "del",
			expected: []key{"delkcit"},
		},
		{
			name:     "none",
			prefix:   "xyz",
			expected: nil,
		},
		{
			name:     "past end",
			prefix:   "zzz",
			expected: nil,
		},
		{
			name:     "empty prefix",
			prefix:   "",
			expected: []key{"de", "delkcit", "gni", "gnik", "gninnur", "gnis"},
		},
	}

	idx := New(values, strings.Compare)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, idx.Prefix(test.prefix)); diff != "" {
				t.Fatalf("Prefix (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Len(t *testing.T) {
	t.Parallel()

	if got, want := New([]key{"a", "b"}, strings.Compare).Len(), 2; got != want {
		t.Fatalf("Len: got %d, want %d", got, want)
	}
}
