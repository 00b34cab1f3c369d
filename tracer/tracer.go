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

// Package tracer renders handwriting practice sheets as PDF. Each word is
// printed once as a bold model followed by lighter copies to trace over.
package tracer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres on A4 portrait.
const (
	pageWidth = 210.0
	margin    = 15.0

	headerTop    = 18.0
	titleTop     = 30.0
	bodyTop      = 42.0
	bodyBottom   = 276.0
	footerBottom = 287.0

	// ptToMM converts a font size in points to millimetres.
	ptToMM = 25.4 / 72
)

const (
	// DefaultWordsPerPage is the number of words on each page.
	DefaultWordsPerPage = 6

	// DefaultCopies is the number of tracing copies after each model word.
	DefaultCopies = 4

	// DefaultMaxPages caps the size of a sheet.
	DefaultMaxPages = 10

	// DefaultFontSize is the model word size in points.
	DefaultFontSize = 28.0

	// DefaultOpacity is the alpha of the tracing copies.
	DefaultOpacity = 0.35
)

// ErrFont is returned when the font file cannot be used.
var ErrFont = errors.New("loading font")

// Options configure a tracer sheet. Zero values use the defaults.
type Options struct {
	Title string

	WordsPerPage int
	Copies       int

	// MaxPages limits the number of pages. Negative means no limit.
	MaxPages int

	FontSize float64

	// FontFile is a TrueType font used for every word and label. Without
	// it the core Helvetica font is used, which only covers Latin-1.
	FontFile string

	// Opacity is the alpha of the tracing copies, between 0 and 1.
	Opacity float64

	NameLabel string
	DateLabel string
	Footer    string
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.Title == "" {
		opts.Title = "Brain-Child Dictionary"
	}
	if opts.WordsPerPage <= 0 {
		opts.WordsPerPage = DefaultWordsPerPage
	}
	if opts.Copies <= 0 {
		opts.Copies = DefaultCopies
	}
	if opts.MaxPages == 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultFontSize
	}
	if opts.Opacity <= 0 || opts.Opacity > 1 {
		opts.Opacity = DefaultOpacity
	}
	if opts.NameLabel == "" {
		opts.NameLabel = "Name"
	}
	if opts.DateLabel == "" {
		opts.DateLabel = "Date"
	}
	if opts.Footer == "" {
		opts.Footer = "Created with WordHunter"
	}
	return opts
}

// Result describes a generated sheet.
type Result struct {
	Pages int

	// Words is the number of words printed.
	Words int

	// Dropped are the words that did not fit within the page limit.
	Dropped []string
}

// Paginate splits words into pages of perPage words, keeping at most
// maxPages pages when maxPages is positive. An empty list yields one empty
// page.
func Paginate(words []string, perPage, maxPages int) [][]string {
	if perPage <= 0 {
		perPage = DefaultWordsPerPage
	}
	if maxPages > 0 && len(words) > perPage*maxPages {
		words = words[:perPage*maxPages]
	}
	if len(words) == 0 {
		return [][]string{{}}
	}

	pages := make([][]string, 0, (len(words)+perPage-1)/perPage)
	for len(words) > 0 {
		n := min(perPage, len(words))
		pages = append(pages, words[:n:n])
		words = words[n:]
	}
	return pages
}

// Generate writes a tracer sheet for words to w.
func Generate(w io.Writer, words []string, opts *Options) (*Result, error) {
	o := opts.withDefaults()

	var clean []string
	for _, word := range words {
		if word = strings.TrimSpace(word); word != "" {
			clean = append(clean, word)
		}
	}
	pages := Paginate(clean, o.WordsPerPage, o.MaxPages)

	res := &Result{Pages: len(pages)}
	for _, p := range pages {
		res.Words += len(p)
	}
	if res.Words < len(clean) {
		res.Dropped = clean[res.Words:]
	}

	s, err := newSheet(&o)
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		s.page(p)
	}

	if err := s.pdf.Output(w); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	res.Pages = s.pdf.PageCount()
	return res, nil
}

type sheet struct {
	pdf  *fpdf.Fpdf
	opts *Options
	font string

	// tr converts UTF-8 text for the selected font.
	tr func(string) string
}

func newSheet(o *Options) (*sheet, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("wordhunter", true)
	pdf.SetTitle(o.Title, true)

	s := &sheet{
		pdf:  pdf,
		opts: o,
		font: "Helvetica",
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
	}
	if o.FontFile != "" {
		s.font = "tracer"
		s.tr = func(t string) string { return t }
		pdf.AddUTF8Font(s.font, "", o.FontFile)
		pdf.AddUTF8Font(s.font, "B", o.FontFile)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrFont, o.FontFile, err)
		}
	}

	pdf.SetFooterFunc(s.footer)
	return s, nil
}

func (s *sheet) page(words []string) {
	pdf := s.pdf
	pdf.AddPage()
	s.header()

	rowH := (bodyBottom - bodyTop) / float64(s.opts.WordsPerPage)
	for i, word := range words {
		s.row(word, bodyTop+float64(i)*rowH, rowH)
	}
}

func (s *sheet) header() {
	pdf := s.pdf
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(s.font, "", 11)
	line := strings.Repeat("_", 28)
	pdf.Text(margin, headerTop, s.tr(s.opts.NameLabel+": "+line))
	date := s.tr(s.opts.DateLabel + ": " + strings.Repeat("_", 16))
	pdf.Text(pageWidth-margin-pdf.GetStringWidth(date), headerTop, date)

	pdf.SetFont(s.font, "B", 16)
	title := s.tr(strings.ToUpper(s.opts.Title))
	pdf.Text((pageWidth-pdf.GetStringWidth(title))/2, titleTop, title)

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Line(margin, titleTop+4, pageWidth-margin, titleTop+4)
}

// row draws one word in a band of height h starting at top: the model word
// in the upper half and the copies on ruled guide lines in the lower half.
func (s *sheet) row(word string, top, h float64) {
	pdf := s.pdf
	text := s.tr(word)
	width := pageWidth - 2*margin
	cell := width / float64(s.opts.Copies)

	size := s.fitFont(text, cell-4, h*0.45)

	modelBase := top + h*0.4
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(s.font, "B", size)
	pdf.Text(margin, modelBase, text)

	// Guide lines for tracing: solid top and baseline, dashed midline.
	base := top + h*0.88
	xHeight := size * ptToMM * 0.72
	pdf.SetDrawColor(170, 170, 170)
	pdf.SetLineWidth(0.2)
	pdf.Line(margin, base-xHeight, pageWidth-margin, base-xHeight)
	pdf.Line(margin, base, pageWidth-margin, base)
	pdf.SetDashPattern([]float64{1.5, 1.5}, 0)
	pdf.Line(margin, base-xHeight/2, pageWidth-margin, base-xHeight/2)
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetAlpha(s.opts.Opacity, "Normal")
	pdf.SetTextColor(110, 110, 110)
	pdf.SetFont(s.font, "", size)
	for i := range s.opts.Copies {
		pdf.Text(margin+float64(i)*cell, base-0.6, text)
	}
	pdf.SetAlpha(1, "Normal")
}

// fitFont returns the largest size up to the configured size at which text
// fits maxW and whose height fits maxH.
func (s *sheet) fitFont(text string, maxW, maxH float64) float64 {
	size := min(s.opts.FontSize, maxH/ptToMM)
	s.pdf.SetFont(s.font, "B", size)
	if w := s.pdf.GetStringWidth(text); w > maxW && w > 0 {
		size *= maxW / w
	}
	return max(size, 6)
}

func (s *sheet) footer() {
	pdf := s.pdf
	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(120, 120, 120)
	pdf.SetFont(s.font, "", 9)
	text := s.tr(s.opts.Footer)
	pdf.Text(margin, footerBottom, text)

	page := fmt.Sprintf("%d", pdf.PageNo())
	pdf.Text(pageWidth-margin-pdf.GetStringWidth(page), footerBottom, page)
}
