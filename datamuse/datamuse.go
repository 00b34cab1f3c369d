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

// Package datamuse is a client for the Datamuse word-finding API.
package datamuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the public Datamuse endpoint.
const DefaultBaseURL = "https://api.datamuse.com"

// MaxResults is the largest result count the API accepts.
const MaxResults = 1000

// ErrStatus is returned when the API responds with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// Word is a single suggestion.
type Word struct {
	Word  string   `json:"word"`
	Score int      `json:"score"`
	Tags  []string `json:"tags,omitempty"`

	// Frequency is the number of occurrences per million words, parsed from
	// the "f:" tag. Zero when the tag was not requested or not present.
	Frequency float64 `json:"-"`
}

// Query describes a /words request.
type Query struct {
	// Pattern is a spelling pattern ("sp") using * and ? wildcards.
	Pattern string

	// Max is the maximum number of results. Zero uses the API default.
	Max int

	// Frequency requests word frequencies ("md=f").
	Frequency bool
}

// Client calls the Datamuse API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL uses
// [DefaultBaseURL] and a nil httpClient uses [http.DefaultClient].
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Words returns the words matching q.
func (c *Client) Words(ctx context.Context, q Query) ([]Word, error) {
	v := url.Values{}
	v.Set("sp", q.Pattern)
	if q.Max > 0 {
		v.Set("max", strconv.Itoa(min(q.Max, MaxResults)))
	}
	if q.Frequency {
		v.Set("md", "f")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/words?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("datamuse: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datamuse: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("datamuse: %w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var words []Word
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("datamuse: decoding response: %w", err)
	}
	for i := range words {
		words[i].Frequency = frequency(words[i].Tags)
	}
	return words, nil
}

func frequency(tags []string) float64 {
	for _, t := range tags {
		if f, ok := strings.CutPrefix(t, "f:"); ok {
			n, err := strconv.ParseFloat(f, 64)
			if err == nil {
				return n
			}
		}
	}
	return 0
}

// SuffixPattern returns the spelling pattern matching words that end with
// suffix. A negative letters matches any number of preceding letters,
// otherwise exactly that many.
func SuffixPattern(suffix string, letters int) string {
	if letters < 0 {
		return "*" + suffix
	}
	return strings.Repeat("?", letters) + suffix
}
