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

// Package config reads WordHunter settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
)

// Config holds settings shared by every command. Command line flags override
// these values.
type Config struct {
	// DataDirs are searched for StarDict dictionaries.
	DataDirs []string `env:"WORDHUNTER_DATA_DIRS" envSeparator:":"`

	// WordsFiles are extra word lists, one word per line.
	WordsFiles []string `env:"WORDHUNTER_WORDS_FILES" envSeparator:":"`

	HTTPAddr string `env:"WORDHUNTER_HTTP_ADDR" envDefault:"localhost:8501"`

	Datamuse    bool   `env:"WORDHUNTER_DATAMUSE" envDefault:"false"`
	DatamuseURL string `env:"WORDHUNTER_DATAMUSE_URL" envDefault:"https://api.datamuse.com"`

	// Translate enables translation of lookups.
	Translate      bool   `env:"WORDHUNTER_TRANSLATE" envDefault:"true"`
	GoogleURL      string `env:"WORDHUNTER_GOOGLE_TRANSLATE_URL" envDefault:"https://translate.googleapis.com"`
	MyMemoryURL    string `env:"WORDHUNTER_MYMEMORY_URL" envDefault:"https://api.mymemory.translated.net"`
	TargetLanguage string `env:"WORDHUNTER_TARGET_LANGUAGE" envDefault:"ta"`

	// Workers bounds the number of concurrent translation requests.
	Workers     int           `env:"WORDHUNTER_WORKERS" envDefault:"8"`
	HTTPTimeout time.Duration `env:"WORDHUNTER_HTTP_TIMEOUT" envDefault:"10s"`

	// FontFile is a TrueType font for tracer sheets.
	FontFile string `env:"WORDHUNTER_FONT_FILE"`

	LogLevel  string `env:"WORDHUNTER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"WORDHUNTER_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the configuration from the environment. It does not validate
// it so that callers can apply overrides first and then call
// [Config.Validate].
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that the environment parser cannot.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	for name, u := range map[string]string{
		"datamuse url":         c.DatamuseURL,
		"google translate url": c.GoogleURL,
		"mymemory url":         c.MyMemoryURL,
	} {
		if _, err := url.ParseRequestURI(u); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, u, err)
		}
	}
	if _, err := c.Target(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q, want text or json", c.LogFormat)
	}
	return nil
}

// Target returns the translation target language.
func (c *Config) Target() (language.Tag, error) {
	tag, err := language.Parse(c.TargetLanguage)
	if err != nil {
		return language.Und, fmt.Errorf("invalid target language %q: %w", c.TargetLanguage, err)
	}
	return tag, nil
}
