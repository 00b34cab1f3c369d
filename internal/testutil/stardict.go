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

// Package testutil builds StarDict dictionaries on disk for tests.
package testutil

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// Article is a headword with its text definition.
type Article struct {
	Word string

	// Text is stored as a single data part of type Type.
	Text string

	// Type is the StarDict data type byte. Defaults to 'm' (utf-8 text).
	Type byte
}

// Dictionary describes a test dictionary.
type Dictionary struct {
	// Name is the base file name. Defaults to "dictionary".
	Name string

	// Bookname defaults to Name.
	Bookname string

	Articles []Article

	// Synonyms maps alternate words to headwords in Articles.
	Synonyms map[string]string

	// OffsetBits is 32 (default) or 64.
	OffsetBits int

	// GzipIndex writes the index as .idx.gz.
	GzipIndex bool

	// DictZip writes the articles as .dict.dz.
	DictZip bool

	// SameType writes the dictionary with sametypesequence set to the type of
	// the first article.
	SameType bool
}

// WriteDictionary writes d into dir and returns the path of the .ifo file.
// Articles are sorted by headword as StarDict requires.
func WriteDictionary(t *testing.T, dir string, d Dictionary) string {
	t.Helper()

	name := d.Name
	if name == "" {
		name = "dictionary"
	}
	bookname := d.Bookname
	if bookname == "" {
		bookname = name
	}
	bits := d.OffsetBits
	if bits == 0 {
		bits = 32
	}

	articles := make([]Article, len(d.Articles))
	copy(articles, d.Articles)
	for i := range articles {
		if articles[i].Type == 0 {
			articles[i].Type = 'm'
		}
	}
	slices.SortStableFunc(articles, func(a, b Article) int {
		return strings.Compare(a.Word, b.Word)
	})

	var sameType byte
	if d.SameType && len(articles) > 0 {
		sameType = articles[0].Type
	}

	var dict, idx bytes.Buffer
	positions := map[string]uint32{}
	for i, a := range articles {
		var data []byte
		if sameType == 0 {
			data = append(data, a.Type)
		}
		data = append(data, a.Text...)
		if sameType == 0 {
			data = append(data, 0)
		}

		idx.WriteString(a.Word)
		idx.WriteByte(0)
		switch bits {
		case 32:
			idx.Write(binary.BigEndian.AppendUint32(nil, uint32(dict.Len())))
		case 64:
			idx.Write(binary.BigEndian.AppendUint64(nil, uint64(dict.Len())))
		default:
			t.Fatalf("unsupported offset bits: %d", bits)
		}
		idx.Write(binary.BigEndian.AppendUint32(nil, uint32(len(data))))
		dict.Write(data)

		if _, ok := positions[a.Word]; !ok {
			positions[a.Word] = uint32(i)
		}
	}

	var syn bytes.Buffer
	synWords := make([]string, 0, len(d.Synonyms))
	for w := range d.Synonyms {
		synWords = append(synWords, w)
	}
	slices.Sort(synWords)
	for _, w := range synWords {
		pos, ok := positions[d.Synonyms[w]]
		if !ok {
			t.Fatalf("synonym %q points at unknown headword %q", w, d.Synonyms[w])
		}
		syn.WriteString(w)
		syn.WriteByte(0)
		syn.Write(binary.BigEndian.AppendUint32(nil, pos))
	}

	base := filepath.Join(dir, name)

	ifo := []string{
		"StarDict's dict ifo file",
		"version=3.0.0",
		"bookname=" + bookname,
		fmt.Sprintf("wordcount=%d", len(articles)),
		fmt.Sprintf("idxfilesize=%d", idx.Len()),
		fmt.Sprintf("idxoffsetbits=%d", bits),
	}
	if len(synWords) > 0 {
		ifo = append(ifo, fmt.Sprintf("synwordcount=%d", len(synWords)))
	}
	if sameType != 0 {
		ifo = append(ifo, "sametypesequence="+string(sameType))
	}
	writeFile(t, base+".ifo", []byte(strings.Join(ifo, "\n")+"\n"))

	if d.GzipIndex {
		writeFile(t, base+".idx.gz", gzipBytes(t, idx.Bytes()))
	} else {
		writeFile(t, base+".idx", idx.Bytes())
	}

	if len(synWords) > 0 {
		writeFile(t, base+".syn", syn.Bytes())
	}

	if d.DictZip {
		writeDictZip(t, base+".dict.dz", dict.Bytes())
	} else {
		writeFile(t, base+".dict", dict.Bytes())
	}

	return base + ".ifo"
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}

func gzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	z := gzip.NewWriter(&buf)
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeDictZip(t *testing.T, path string, b []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}
