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

// Package folding provides text transformers used to normalize words before
// they are compared.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
)

// Whitespace trims leading and trailing whitespace and collapses every
// internal run of whitespace into a single ASCII space.
type Whitespace struct {
	// started is set once a non-space rune has been written.
	started bool

	// pending is set while inside an internal whitespace run.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *Whitespace) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(r) {
			if w.started {
				w.pending = true
			}
			nSrc += size
			continue
		}

		need := size
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		// Invalid bytes are copied through untouched.
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
		w.started = true
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *Whitespace) Reset() {
	*w = Whitespace{}
}

// Word returns a transformer that folds whitespace and case. Transformers are
// stateful so a new one is returned on every call.
func Word() transform.Transformer {
	return transform.Chain(&Whitespace{}, cases.Fold())
}

// Space folds only the whitespace in s.
func Space(s string) string {
	out, _, err := transform.String(&Whitespace{}, s)
	if err != nil {
		return s
	}
	return out
}

// String folds whitespace and case in s. If folding fails s is returned
// unchanged.
func String(s string) string {
	out, _, err := transform.String(Word(), s)
	if err != nil {
		return s
	}
	return out
}
