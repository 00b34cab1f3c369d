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

// Package export writes dictionary lookups to spreadsheets.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the name of the worksheet.
const DefaultSheet = "Words"

// ErrNoSheet is returned by [Read] for a workbook without worksheets.
var ErrNoSheet = errors.New("workbook has no sheets")

// DefaultHeaders are the column titles.
var DefaultHeaders = [4]string{"Word", "Part of speech", "Definition", "Meaning"}

// Row is one exported word.
type Row struct {
	Word         string `json:"word"`
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`

	// Meaning is the translation of the word.
	Meaning string `json:"meaning"`
}

func (r Row) values() []any {
	return []any{r.Word, r.PartOfSpeech, r.Definition, r.Meaning}
}

// Options configure the workbook.
type Options struct {
	Sheet   string
	Headers [4]string
}

var colWidths = []float64{18, 16, 60, 28}

// Write writes rows as an xlsx workbook with a bold header row.
func Write(w io.Writer, rows []Row, opts *Options) error {
	sheet := DefaultSheet
	headers := DefaultHeaders
	if opts != nil {
		if opts.Sheet != "" {
			sheet = opts.Sheet
		}
		for i, h := range opts.Headers {
			if h != "" {
				headers[i] = h
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.values()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(4, len(rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A2", last, wrap); err != nil {
			return fmt.Errorf("styling rows: %w", err)
		}
	}

	for i, width := range colWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Read reads the rows written by [Write] from the first sheet, skipping the
// header row. Missing trailing cells are read as empty strings.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(cells) <= 1 {
		return nil, nil
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, c := range cells[1:] {
		c = append(c, make([]string, max(0, 4-len(c)))...)
		rows = append(rows, Row{
			Word:         c[0],
			PartOfSpeech: c[1],
			Definition:   c[2],
			Meaning:      c[3],
		})
	}
	return rows, nil
}
