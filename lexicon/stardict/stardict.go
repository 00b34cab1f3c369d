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
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-wordhunter/internal/folding"
	"github.com/ianlewis/go-wordhunter/internal/index"
)

// ErrNoCompanion indicates a required .idx or .dict file was not found next
// to the .ifo file.
var ErrNoCompanion = errors.New("companion file not found")

// Options configure how a dictionary is opened.
type Options struct {
	// Fold normalizes headwords and queries before comparison. Defaults to
	// whitespace and case folding.
	Fold func(string) string
}

func (o *Options) fold() func(string) string {
	if o == nil || o.Fold == nil {
		return folding.String
	}
	return o.Fold
}

type foldedEntry struct {
	key   string
	entry *IndexEntry
	pos   int
}

func (e *foldedEntry) String() string {
	return e.key
}

type foldedSyn struct {
	key string
	syn *SynEntry
}

func (s *foldedSyn) String() string {
	return s.key
}

// Dictionary is an opened StarDict dictionary. The index and synonyms are
// held in memory; articles are read from disk on demand. A Dictionary is safe
// for concurrent use.
type Dictionary struct {
	info    *Info
	ifoPath string
	fold    func(string) string

	entries []*IndexEntry
	words   *index.Index[*foldedEntry]
	syns    []*SynEntry
	synIdx  *index.Index[*foldedSyn]

	// byEntry maps an .idx position to the synonyms pointing at it.
	byEntry map[int][]string

	// mu serializes article reads; dictzip readers are not safe for
	// concurrent use.
	mu     sync.Mutex
	dict   io.ReaderAt
	closer io.Closer
}

// Open opens the dictionary described by the .ifo file at ifoPath.
func Open(ifoPath string, opts *Options) (*Dictionary, error) {
	if ext := strings.ToLower(filepath.Ext(ifoPath)); ext != ".ifo" {
		return nil, fmt.Errorf("bad extension %q: %s", ext, ifoPath)
	}

	f, err := os.Open(ifoPath)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", ifoPath, err)
	}
	info, err := ParseInfo(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", ifoPath, err)
	}

	d := &Dictionary{
		info:    info,
		ifoPath: ifoPath,
		fold:    opts.fold(),
		byEntry: map[int][]string{},
	}

	if err := d.loadIndex(); err != nil {
		return nil, err
	}
	if err := d.loadSyn(); err != nil {
		return nil, err
	}
	if err := d.openDict(); err != nil {
		return nil, err
	}
	return d, nil
}

// OpenAll opens every dictionary found under dir. Dictionaries that fail to
// open are skipped and their errors returned alongside the ones that opened.
func OpenAll(dir string, opts *Options) ([]*Dictionary, []error) {
	var dicts []*Dictionary
	var errs []error
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".ifo" {
			return nil
		}
		d, err := Open(path, opts)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		dicts = append(dicts, d)
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return dicts, errs
}

// Info returns the dictionary metadata.
func (d *Dictionary) Info() *Info {
	return d.info
}

// Bookname returns the dictionary name.
func (d *Dictionary) Bookname() string {
	return d.info.Bookname
}

// Path returns the path of the .ifo file.
func (d *Dictionary) Path() string {
	return d.ifoPath
}

// Headwords returns every headword and synonym in file order. Duplicates
// are not removed.
func (d *Dictionary) Headwords() []string {
	words := make([]string, 0, len(d.entries)+len(d.syns))
	for _, e := range d.entries {
		words = append(words, e.Word)
	}
	for _, s := range d.syns {
		words = append(words, s.Word)
	}
	return words
}

// Lookup returns the articles for word. Synonyms resolve to the articles they
// point to. A word with no articles returns an empty slice and no error.
func (d *Dictionary) Lookup(word string) ([]*Article, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var articles []*Article
	for _, pos := range d.positions(word) {
		a, err := readArticle(d.dict, d.entries[pos], d.info.SameTypeSequence)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// Synonyms returns the alternate words listed in the .syn file for the
// entries matching word, excluding word itself.
func (d *Dictionary) Synonyms(word string) []string {
	key := d.fold(word)
	seen := map[string]bool{key: true}
	var out []string
	add := func(w string) {
		k := d.fold(w)
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, w)
	}
	for _, pos := range d.positions(word) {
		add(d.entries[pos].Word)
		for _, s := range d.byEntry[pos] {
			add(s)
		}
	}
	return out
}

// positions returns the .idx positions of entries matching word directly or
// through a synonym, without duplicates.
func (d *Dictionary) positions(word string) []int {
	key := d.fold(word)
	seen := map[int]bool{}
	var out []int
	for _, e := range d.words.Search(key) {
		if !seen[e.pos] {
			seen[e.pos] = true
			out = append(out, e.pos)
		}
	}
	if d.synIdx != nil {
		for _, s := range d.synIdx.Search(key) {
			pos := int(s.syn.Index)
			if pos < len(d.entries) && !seen[pos] {
				seen[pos] = true
				out = append(out, pos)
			}
		}
	}
	return out
}

// Close closes the .dict file.
func (d *Dictionary) Close() error {
	if d.closer == nil {
		return nil
	}
	if err := d.closer.Close(); err != nil {
		return fmt.Errorf("closing dictionary %q: %w", d.info.Bookname, err)
	}
	return nil
}

func (d *Dictionary) loadIndex() error {
	f, path, err := openCompanion(d.ifoPath, ".idx", ".idx.gz")
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := maybeGunzip(f, path)
	if err != nil {
		return err
	}
	d.entries, err = readIndex(r, d.info.IdxOffsetBits)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	folded := make([]*foldedEntry, len(d.entries))
	for i, e := range d.entries {
		folded[i] = &foldedEntry{key: d.fold(e.Word), entry: e, pos: i}
	}
	d.words = index.New(folded, strings.Compare)
	return nil
}

func (d *Dictionary) loadSyn() error {
	f, path, err := openCompanion(d.ifoPath, ".syn", ".syn.gz", ".syn.dz")
	if errors.Is(err, ErrNoCompanion) {
		// The .syn file is optional.
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := maybeGunzip(f, path)
	if err != nil {
		return err
	}
	d.syns, err = readSyn(r)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	folded := make([]*foldedSyn, len(d.syns))
	for i, s := range d.syns {
		folded[i] = &foldedSyn{key: d.fold(s.Word), syn: s}
		d.byEntry[int(s.Index)] = append(d.byEntry[int(s.Index)], s.Word)
	}
	d.synIdx = index.New(folded, strings.Compare)
	return nil
}

func (d *Dictionary) openDict() error {
	f, path, err := openCompanion(d.ifoPath, ".dict", ".dict.dz")
	if err != nil {
		return err
	}
	d.closer = f

	if strings.HasSuffix(strings.ToLower(path), ".dz") {
		z, err := dictzip.NewReader(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("opening %q: %w", path, err)
		}
		d.dict = z
		return nil
	}
	d.dict = f
	return nil
}

// openCompanion opens the first file that exists with the .ifo base name and
// one of the extensions, trying lower and upper case variants.
func openCompanion(ifoPath string, exts ...string) (*os.File, string, error) {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	for _, ext := range exts {
		for _, variant := range []string{ext, strings.ToUpper(ext)} {
			path := base + variant
			f, err := os.Open(path)
			if err == nil {
				return f, path, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, "", fmt.Errorf("opening %q: %w", path, err)
			}
		}
	}
	return nil, "", fmt.Errorf("%w: %s%s", ErrNoCompanion, base, exts[0])
}

func maybeGunzip(f *os.File, path string) (io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".gz" && ext != ".dz" {
		return f, nil
	}
	z, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return z, nil
}
