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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/k3a/html2text"
)

var (
	errInvalidType     = errors.New("invalid data type")
	errOffsetTooLarge  = errors.New("article offset too large")
	errTruncatedRecord = errors.New("truncated article data")
)

// DataType identifies the kind of data in an article. Lower case types are
// null terminated strings. Upper case types are length prefixed file data.
type DataType byte

const (
	// UTFTextType is plain utf-8 text.
	UTFTextType = DataType('m')

	// LocaleTextType is text in a locale encoding.
	LocaleTextType = DataType('l')

	// PangoTextType is utf-8 text in Pango markup.
	PangoTextType = DataType('g')

	// PhoneticType is an English phonetic string.
	PhoneticType = DataType('t')

	// XDXFType is XDXF formatted xml.
	XDXFType = DataType('x')

	// YinBiaoOrKataType is a Yin Biao or Kana phonetic string.
	YinBiaoOrKataType = DataType('y')

	// PowerWordType is KingSoft PowerWord xml.
	PowerWordType = DataType('p')

	// MediaWikiType is MediaWiki markup.
	MediaWikiType = DataType('w')

	// HTMLType is HTML text.
	HTMLType = DataType('h')

	// WordNetType is WordNet data.
	WordNetType = DataType('n')

	// ResourceFileListType is a list of resource file names.
	ResourceFileListType = DataType('r')

	// WavType is .wav sound data.
	WavType = DataType('W')

	// PictureType is image data.
	PictureType = DataType('P')

	// ExperimentalType is reserved for experimental features.
	ExperimentalType = DataType('X')
)

func (t DataType) valid() bool {
	switch t {
	case UTFTextType, LocaleTextType, PangoTextType, PhoneticType, XDXFType,
		YinBiaoOrKataType, PowerWordType, MediaWikiType, HTMLType, WordNetType,
		ResourceFileListType, WavType, PictureType, ExperimentalType:
		return true
	}
	return false
}

// stringLike reports whether data of this type is null terminated.
func (t DataType) stringLike() bool {
	return 'a' <= t && t <= 'z'
}

// Data is one typed part of an article.
type Data struct {
	Type DataType
	Data []byte
}

// Text returns the data as plain text. Markup formats are converted to text.
// Binary and unsupported types return an empty string.
func (d *Data) Text() string {
	switch d.Type {
	case UTFTextType, PhoneticType, YinBiaoOrKataType, WordNetType, LocaleTextType:
		return string(d.Data)
	case HTMLType, PangoTextType, XDXFType:
		return html2text.HTML2Text(string(d.Data))
	default:
		return ""
	}
}

// Article is a headword and its data.
type Article struct {
	Headword string
	Data     []*Data
}

// Text joins the text of all parts of the article.
func (a *Article) Text() string {
	var parts []string
	for _, d := range a.Data {
		if t := strings.TrimSpace(d.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// readArticle reads the article for e from r.
func readArticle(r io.ReaderAt, e *IndexEntry, sametypes []DataType) (*Article, error) {
	if e.Offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", errOffsetTooLarge, e.Offset)
	}
	b := make([]byte, e.Size)
	//nolint:gosec // offset is bounds checked above.
	if _, err := r.ReadAt(b, int64(e.Offset)); err != nil {
		return nil, fmt.Errorf("reading article %q: %w", e.Word, err)
	}

	data, err := parseArticle(b, sametypes)
	if err != nil {
		return nil, fmt.Errorf("parsing article %q: %w", e.Word, err)
	}
	return &Article{
		Headword: e.Word,
		Data:     data,
	}, nil
}

// parseArticle splits raw article bytes into typed data. When sametypes is
// set the type bytes are omitted from the data and the final string-like
// part has no null terminator.
func parseArticle(b []byte, sametypes []DataType) ([]*Data, error) {
	var out []*Data
	next := func(t DataType, last bool) error {
		if t.stringLike() {
			i := bytes.IndexByte(b, 0)
			switch {
			case i >= 0:
				out = append(out, &Data{Type: t, Data: b[:i]})
				b = b[i+1:]
			case last || len(sametypes) == 0:
				out = append(out, &Data{Type: t, Data: b})
				b = nil
			default:
				return errTruncatedRecord
			}
			return nil
		}
		if len(b) < 4 {
			return errTruncatedRecord
		}
		size := int(binary.BigEndian.Uint32(b))
		if len(b) < 4+size {
			return errTruncatedRecord
		}
		out = append(out, &Data{Type: t, Data: b[4 : 4+size]})
		b = b[4+size:]
		return nil
	}

	if len(sametypes) > 0 {
		for i, t := range sametypes {
			if err := next(t, i == len(sametypes)-1); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	for len(b) > 0 {
		t := DataType(b[0])
		if !t.valid() {
			return nil, fmt.Errorf("%w: %q", errInvalidType, b[0])
		}
		b = b[1:]
		if err := next(t, false); err != nil {
			return nil, err
		}
	}
	return out, nil
}
