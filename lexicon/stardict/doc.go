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

// Package stardict reads StarDict dictionaries, the on-disk format used by
// most freely available WordNet conversions.
//
// A dictionary is a set of files sharing a base name:
//  1. An .ifo file with metadata (book name, word count, offset size).
//  2. An .idx file listing each headword with the offset and size of its
//     article in the .dict file. It may be gzip compressed.
//  3. A .dict file with the article data. It may be compressed with dictzip,
//     which keeps random access possible.
//  4. An optional .syn file mapping alternate words to .idx entries.
//
// The format is described at
// https://github.com/huzheng001/stardict-3/blob/master/dict/doc/StarDictFileFormat
package stardict
