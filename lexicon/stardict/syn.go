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

package stardict

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// SynEntry is one .syn record: an alternate word pointing at an .idx entry
// by its position in the index file.
type SynEntry struct {
	Word  string
	Index uint32
}

func splitSyn(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 && len(data) >= i+5 {
		return i + 5, data[:i+5], nil
	}
	if atEOF {
		return 0, nil, fmt.Errorf("%w: trailing %d bytes in synonyms", errTruncatedRecord, len(data))
	}
	return 0, nil, nil
}

// readSyn reads every .syn record from r.
func readSyn(r io.Reader) ([]*SynEntry, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	s.Split(splitSyn)

	var entries []*SynEntry
	for s.Scan() {
		b := s.Bytes()
		i := len(b) - 5
		entries = append(entries, &SynEntry{
			Word:  string(b[:i]),
			Index: binary.BigEndian.Uint32(b[i+1:]),
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading synonyms: %w", err)
	}
	return entries, nil
}
