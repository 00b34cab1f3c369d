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

// Package i18n loads the user interface message catalogs.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog is checked against.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embedded embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every supported locale.
type Bundle struct {
	tags     []language.Tag
	messages map[language.Tag]map[string]string
	builder  *catalog.Builder
	matcher  language.Matcher
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the bundle of embedded catalogs.
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := Load(embedded)
		if err != nil {
			panic(err)
		}
		defaultBundle = b
	})
	return defaultBundle
}

// Load reads every locales/*.yaml catalog in fsys. Each catalog must define
// the same keys as the base locale.
func Load(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}
	slices.Sort(paths)

	files := map[string]catalogFile{}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", p, err)
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if f.Locale != name {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", p, f.Locale)
		}
		files[f.Locale] = f
	}

	base, ok := files[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %q not defined", BaseLocale)
	}

	// The base locale comes first so that it is the matcher's default.
	locales := []string{BaseLocale}
	for _, p := range paths {
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if name != BaseLocale {
			locales = append(locales, name)
		}
	}

	b := &Bundle{
		messages: map[language.Tag]map[string]string{},
		builder:  catalog.NewBuilder(catalog.Fallback(language.Make(BaseLocale))),
	}
	for _, locale := range locales {
		f := files[locale]
		for key := range base.Messages {
			if _, ok := f.Messages[key]; !ok {
				return nil, fmt.Errorf("catalog %q: missing key %q", locale, key)
			}
		}

		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", locale, err)
		}
		for key, msg := range f.Messages {
			if err := b.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %q: key %q: %w", locale, key, err)
			}
		}
		b.tags = append(b.tags, tag)
		b.messages[tag] = f.Messages
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Tags returns the supported languages, base locale first.
func (b *Bundle) Tags() []language.Tag {
	return b.tags
}

// Match returns the supported language that best matches values. Each value
// may be a single tag or an Accept-Language header. Values that fail to parse
// are ignored.
func (b *Bundle) Match(values ...string) language.Tag {
	var prefs []language.Tag
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(v)
		if err != nil {
			continue
		}
		prefs = append(prefs, tags...)
	}
	if len(prefs) == 0 {
		return b.tags[0]
	}
	_, i, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.tags[0]
	}
	return b.tags[i]
}

// Printer returns a printer that formats messages for tag.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// Messages returns the raw messages of tag, or of the base locale when tag is
// not supported.
func (b *Bundle) Messages(tag language.Tag) map[string]string {
	if m, ok := b.messages[tag]; ok {
		return m
	}
	return b.messages[b.tags[0]]
}
