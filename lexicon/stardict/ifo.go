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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const ifoMagic = "StarDict's dict ifo file"

var (
	// ErrBadMagic indicates the .ifo file does not start with the StarDict
	// magic line.
	ErrBadMagic = errors.New("bad .ifo magic")

	// ErrVersion indicates an unsupported dictionary format version.
	ErrVersion = errors.New("unsupported version")

	errMissingField = errors.New("missing field")
)

// Info is the metadata from a dictionary's .ifo file.
type Info struct {
	Version          string
	Bookname         string
	WordCount        int64
	SynWordCount     int64
	IdxFileSize      int64
	IdxOffsetBits    int
	Author           string
	Email            string
	Website          string
	Description      string
	Date             string
	SameTypeSequence []DataType
}

// ParseInfo reads .ifo metadata from r.
func ParseInfo(r io.Reader) (*Info, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading .ifo: %w", err)
		}
		return nil, ErrBadMagic
	}
	// Some dictionaries are written with a UTF-8 byte order mark.
	if strings.TrimPrefix(strings.TrimSpace(s.Text()), "\ufeff") != ifoMagic {
		return nil, ErrBadMagic
	}

	values := map[string]string{}
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("malformed .ifo line %q", line)
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading .ifo: %w", err)
	}

	info := &Info{
		Version:       values["version"],
		Bookname:      values["bookname"],
		Author:        values["author"],
		Email:         values["email"],
		Website:       values["website"],
		Description:   values["description"],
		Date:          values["date"],
		IdxOffsetBits: 32,
	}

	switch info.Version {
	case "2.4.2", "3.0.0":
	default:
		return nil, fmt.Errorf("%w: %q", ErrVersion, info.Version)
	}
	if info.Bookname == "" {
		return nil, fmt.Errorf("%w: bookname", errMissingField)
	}

	var err error
	if info.WordCount, err = parseCount(values, "wordcount", true); err != nil {
		return nil, err
	}
	if info.IdxFileSize, err = parseCount(values, "idxfilesize", true); err != nil {
		return nil, err
	}
	if info.SynWordCount, err = parseCount(values, "synwordcount", false); err != nil {
		return nil, err
	}

	// idxoffsetbits was introduced in 3.0.0 and is ignored before that.
	if bits := values["idxoffsetbits"]; bits != "" && info.Version == "3.0.0" {
		switch bits {
		case "32":
		case "64":
			info.IdxOffsetBits = 64
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidOffsetBits, bits)
		}
	}

	for _, r := range values["sametypesequence"] {
		t := DataType(r)
		if !t.valid() {
			return nil, fmt.Errorf("%w: %q", errInvalidType, r)
		}
		info.SameTypeSequence = append(info.SameTypeSequence, t)
	}

	return info, nil
}

func parseCount(values map[string]string, key string, required bool) (int64, error) {
	v, ok := values[key]
	if !ok || v == "" {
		if required {
			return 0, fmt.Errorf("%w: %s", errMissingField, key)
		}
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s: %w", key, err)
	}
	return n, nil
}
