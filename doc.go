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

// Package wordhunter implements a children's vocabulary tool.
//
// A [Hunter] combines the pieces of the tool:
//  1. A word list, loaded once from dictionaries, plain text files or the
//     Datamuse API, and searched by suffix with an optional count of letters
//     before the suffix.
//  2. A lexicon of StarDict dictionaries (typically WordNet) providing
//     definitions, parts of speech and synonyms.
//  3. A translator, by default English to Tamil, used to add the meaning of
//     each word.
//
// Results can be exported to a spreadsheet and the words printed as
// handwriting tracer sheets in PDF.
//
// External services are best effort. When a lookup or translation fails the
// result carries a placeholder and a warning rather than an error.
package wordhunter
