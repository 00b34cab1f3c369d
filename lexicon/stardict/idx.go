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

package stardict

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidOffsetBits indicates an idxoffsetbits value other than 32 or 64.
var ErrInvalidOffsetBits = errors.New("invalid idxoffsetbits")

// IndexEntry is one .idx record.
type IndexEntry struct {
	Word   string
	Offset uint64
	Size   uint32
}

// IndexScanner reads .idx records one at a time.
type IndexScanner struct {
	s          *bufio.Scanner
	offsetBits int
	entry      *IndexEntry
}

// NewIndexScanner returns a scanner over the .idx data in r. offsetBits must
// be 32 or 64.
func NewIndexScanner(r io.Reader, offsetBits int) (*IndexScanner, error) {
	if offsetBits != 32 && offsetBits != 64 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffsetBits, offsetBits)
	}
	s := &IndexScanner{
		s:          bufio.NewScanner(r),
		offsetBits: offsetBits,
	}
	s.s.Buffer(make([]byte, 0, 4096), 1<<20)
	s.s.Split(s.split)
	return s, nil
}

// Scan advances to the next record. It returns false at the end of the
// input or on error.
func (s *IndexScanner) Scan() bool {
	if !s.s.Scan() {
		return false
	}
	b := s.s.Bytes()
	i := bytes.IndexByte(b, 0)
	e := &IndexEntry{Word: string(b[:i])}
	rest := b[i+1:]
	if s.offsetBits == 64 {
		e.Offset = binary.BigEndian.Uint64(rest)
		rest = rest[8:]
	} else {
		e.Offset = uint64(binary.BigEndian.Uint32(rest))
		rest = rest[4:]
	}
	e.Size = binary.BigEndian.Uint32(rest)
	s.entry = e
	return true
}

// Entry returns the record read by the last call to Scan.
func (s *IndexScanner) Entry() *IndexEntry {
	return s.entry
}

// Err returns the first error encountered while scanning.
func (s *IndexScanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

func (s *IndexScanner) split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		size := i + 1 + s.offsetBits/8 + 4
		if len(data) >= size {
			return size, data[:size], nil
		}
	}
	if atEOF {
		return 0, nil, fmt.Errorf("%w: trailing %d bytes in index", errTruncatedRecord, len(data))
	}
	return 0, nil, nil
}

// readIndex reads every record from r in file order.
func readIndex(r io.Reader, offsetBits int) ([]*IndexEntry, error) {
	s, err := NewIndexScanner(r, offsetBits)
	if err != nil {
		return nil, err
	}
	var entries []*IndexEntry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return entries, nil
}
