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

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ianlewis/go-wordhunter"
	"github.com/ianlewis/go-wordhunter/export"
	"github.com/ianlewis/go-wordhunter/tracer"
	"github.com/ianlewis/go-wordhunter/wordlist"
)

const (
	// LangParam selects the interface language.
	LangParam = "lang"

	// LangCookie stores the selected language.
	LangCookie = "wordhunter_lang"

	// maxLetters bounds the letters parameter.
	maxLetters = 30
)

var errBadRequest = errors.New("bad request")

// language resolves the interface language from the lang parameter, the
// language cookie and the Accept-Language header, in that order. A language
// chosen with the parameter is stored in the cookie.
func (s *Server) language(w http.ResponseWriter, r *http.Request) language.Tag {
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		tag := s.bundle.Match(v)
		http.SetCookie(w, &http.Cookie{
			Name:     LangCookie,
			Value:    tag.String(),
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
		return tag
	}
	var prefs []string
	if c, err := r.Cookie(LangCookie); err == nil {
		prefs = append(prefs, c.Value)
	}
	prefs = append(prefs, r.Header.Get("Accept-Language"))
	return s.bundle.Match(prefs...)
}

// parseQuery reads a search from the request parameters.
func (s *Server) parseQuery(r *http.Request) (wordhunter.Query, error) {
	v := r.URL.Query()
	q := wordhunter.Query{
		Suffix:   strings.TrimSpace(v.Get("suffix")),
		Letters:  wordlist.AnyLength,
		Limit:    DefaultLimit,
		Datamuse: s.opts.Datamuse,
	}
	if q.Suffix == "" {
		return q, fmt.Errorf("%w: %w", errBadRequest, wordhunter.ErrEmptySuffix)
	}

	if l := v.Get("letters"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 || n > maxLetters {
			return q, fmt.Errorf("%w: letters must be between 0 and %d", errBadRequest, maxLetters)
		}
		q.Letters = n
	}
	if o := v.Get("sort"); o != "" {
		order, err := wordlist.ParseOrder(o)
		if err != nil {
			return q, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		q.Sort = order
	}
	if l := v.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			return q, fmt.Errorf("%w: limit must be positive", errBadRequest)
		}
		q.Limit = min(n, MaxLimit)
	}
	if d := v.Get("datamuse"); d != "" {
		b, err := strconv.ParseBool(d)
		if err != nil {
			return q, fmt.Errorf("%w: datamuse must be true or false", errBadRequest)
		}
		q.Datamuse = s.opts.Datamuse && b
	}
	return q, nil
}

// translate reports whether lookups for r should be translated.
func (s *Server) translate(r *http.Request) bool {
	if v := r.URL.Query().Get("translate"); v != "" {
		b, err := strconv.ParseBool(v)
		return err == nil && b && s.opts.Translate
	}
	return s.opts.Translate
}

// lookup searches and explores the words for r.
func (s *Server) lookup(r *http.Request) (*wordhunter.SearchResult, *wordhunter.Exploration, error) {
	q, err := s.parseQuery(r)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.hunter.Search(r.Context(), q)
	if err != nil {
		return nil, nil, err
	}
	ex := s.hunter.Explore(r.Context(), res.Words(), wordhunter.ExploreOptions{Translate: s.translate(r)})
	return res, ex, nil
}

type languageOption struct {
	Tag    string
	Label  string
	Active bool
}

type sortOption struct {
	Value  string
	Label  string
	Active bool
}

type pageData struct {
	printer *message.Printer

	Lang          string
	Languages     []languageOption
	Sorts         []sortOption
	LetterChoices []int

	Query    wordhunter.Query
	Searched bool
	Total    int
	Results  []wordhunter.Result
	Warnings []string

	// Error describes a request that could not be searched.
	Error string

	TracerURL template.URL
	ExportURL template.URL
}

// T returns the localized message for key.
func (d *pageData) T(key string, args ...any) string {
	return d.printer.Sprintf(key, args...)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tag := s.language(w, r)
	data := &pageData{
		printer:       s.bundle.Printer(tag),
		Lang:          tag.String(),
		Query:         wordhunter.Query{Letters: wordlist.AnyLength},
		LetterChoices: make([]int, 0, 12),
	}
	for i := range 12 {
		data.LetterChoices = append(data.LetterChoices, i)
	}
	for _, t := range s.bundle.Tags() {
		data.Languages = append(data.Languages, languageOption{
			Tag:    t.String(),
			Label:  s.bundle.Messages(t)["language.name"],
			Active: t == tag,
		})
	}

	status := http.StatusOK
	if strings.TrimSpace(r.URL.Query().Get("suffix")) != "" {
		res, ex, err := s.lookup(r)
		if err != nil {
			status, data.Error = s.errorStatus(r, err)
			data.Query.Suffix = r.URL.Query().Get("suffix")
		} else {
			data.Searched = true
			data.Query = res.Query
			data.Total = res.Total
			data.Results = ex.Results
			data.Warnings = append(append(data.Warnings, res.Warnings...), ex.Warnings...)

			v := url.Values{}
			v.Set("suffix", res.Query.Suffix)
			if res.Query.Letters >= 0 {
				v.Set("letters", strconv.Itoa(res.Query.Letters))
			}
			v.Set("sort", res.Query.Sort.String())
			v.Set("limit", strconv.Itoa(res.Query.Limit))
			v.Set(LangParam, tag.String())
			data.TracerURL = template.URL("/tracer.pdf?" + v.Encode())
			data.ExportURL = template.URL("/export.xlsx?" + v.Encode())
		}
	}
	for _, o := range []wordlist.Order{wordlist.Alphabetical, wordlist.Length, wordlist.Frequency} {
		data.Sorts = append(data.Sorts, sortOption{
			Value:  o.String(),
			Label:  "sort." + o.String(),
			Active: o == data.Query.Sort,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.writeError(w, r, fmt.Errorf("rendering page: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.hunter.Search(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleDefine(w http.ResponseWriter, r *http.Request) {
	var words []string
	for _, v := range r.URL.Query()["word"] {
		for _, word := range strings.Split(v, ",") {
			if word = strings.TrimSpace(word); word != "" {
				words = append(words, word)
			}
		}
	}
	if len(words) == 0 {
		s.writeError(w, r, fmt.Errorf("%w: no words given", errBadRequest))
		return
	}
	if len(words) > MaxLimit {
		s.writeError(w, r, fmt.Errorf("%w: at most %d words", errBadRequest, MaxLimit))
		return
	}
	ex := s.hunter.Explore(r.Context(), words, wordhunter.ExploreOptions{Translate: s.translate(r)})
	s.writeJSON(w, r, http.StatusOK, ex)
}

func (s *Server) handleTracer(w http.ResponseWriter, r *http.Request) {
	words := r.URL.Query()["word"]
	name := "tracer"
	if len(words) == 0 {
		q, err := s.parseQuery(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		res, err := s.hunter.Search(r.Context(), q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		words = res.Words()
		name += "-" + q.Suffix
	}

	// Core PDF fonts only cover Latin-1 so localized labels need a font
	// file.
	tag := language.English
	if s.opts.FontFile != "" {
		tag = s.language(w, r)
	}
	p := s.bundle.Printer(tag)
	opts := &tracer.Options{
		Title:     p.Sprintf("app.title"),
		FontFile:  s.opts.FontFile,
		NameLabel: p.Sprintf("tracer.name"),
		DateLabel: p.Sprintf("tracer.date"),
		Footer:    p.Sprintf("tracer.footer"),
	}

	var buf bytes.Buffer
	res, err := wordhunter.Tracer(&buf, words, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(res.Dropped) > 0 {
		s.loggerFrom(r.Context()).WarnContext(r.Context(), "tracer sheet truncated",
			slog.Int("printed", res.Words),
			slog.Int("dropped", len(res.Dropped)),
		)
	}
	s.download(w, "application/pdf", name+".pdf", &buf)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res, ex, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p := s.bundle.Printer(s.language(w, r))
	opts := &export.Options{
		Sheet: p.Sprintf("export.sheet"),
		Headers: [4]string{
			p.Sprintf("results.word"),
			p.Sprintf("results.pos"),
			p.Sprintf("results.definition"),
			p.Sprintf("results.meaning"),
		},
	}

	var buf bytes.Buffer
	if err := wordhunter.Export(&buf, ex.Results, opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.download(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"words-"+res.Query.Suffix+".xlsx", &buf)
}

func (s *Server) download(w http.ResponseWriter, contentType, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

type errorResponse struct {
	Error string `json:"error"`
}

// errorStatus returns the status code and the client facing message for err.
// Server errors are logged and their details are not exposed.
func (s *Server) errorStatus(r *http.Request, err error) (int, string) {
	if errors.Is(err, errBadRequest) || errors.Is(err, wordhunter.ErrEmptySuffix) {
		return http.StatusBadRequest, err.Error()
	}
	s.loggerFrom(r.Context()).ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := s.errorStatus(r, err)
	s.writeJSON(w, r, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.loggerFrom(r.Context()).ErrorContext(r.Context(), "encoding response", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
