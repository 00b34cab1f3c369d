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

// Package index implements a generic sorted array index with exact and
// prefix lookups.
package index

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Index is a sorted array of values keyed by their String method.
type Index[V fmt.Stringer] struct {
	values []V
	cmp    func(string, string) int
}

// New creates an index from the given values and comparison function. The
// input slice is copied. cmp(a, b) should return a negative number when
// a < b, a positive number when a > b and zero when they are equal.
func New[V fmt.Stringer](values []V, cmp func(string, string) int) *Index[V] {
	sorted := make([]V, len(values))
	copy(sorted, values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return cmp(a.String(), b.String())
	})

	return &Index[V]{
		values: sorted,
		cmp:    cmp,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.values)
}

// Search performs a binary search over the index and returns all values whose
// key compares equal to query.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.values), func(i int) int {
		return idx.cmp(query, idx.values[i].String())
	})
	if !found {
		return nil
	}

	j := i + 1
	for j < len(idx.values) && idx.cmp(query, idx.values[j].String()) == 0 {
		j++
	}
	return idx.values[i:j]
}

// Prefix returns all values whose key starts with prefix. Prefix lookups are
// only meaningful when cmp orders keys bytewise, as [strings.Compare] does.
func (idx *Index[V]) Prefix(prefix string) []V {
	i := sort.Search(len(idx.values), func(i int) bool {
		return idx.cmp(idx.values[i].String(), prefix) >= 0
	})

	j := i
	for j < len(idx.values) && strings.HasPrefix(idx.values[j].String(), prefix) {
		j++
	}
	if i == j {
		return nil
	}
	return idx.values[i:j]
}
