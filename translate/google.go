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

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GoogleBaseURL is the public Google Translate endpoint.
const GoogleBaseURL = "https://translate.googleapis.com"

// Google translates with the free Google Translate endpoint used by browser
// extensions.
type Google struct {
	opts ClientOptions
}

// NewGoogle returns a Google translator.
func NewGoogle(opts *ClientOptions) *Google {
	return &Google{opts: opts.withDefaults(GoogleBaseURL)}
}

// Translate implements [Translator].
func (g *Google) Translate(ctx context.Context, text string) (string, error) {
	v := url.Values{}
	v.Set("client", "gtx")
	v.Set("sl", code(g.opts.Source))
	v.Set("tl", code(g.opts.Target))
	v.Set("dt", "t")
	v.Set("q", text)

	body, err := get(ctx, g.opts.HTTPClient, g.opts.BaseURL+"/translate_a/single?"+v.Encode())
	if err != nil {
		return "", fmt.Errorf("google: %w", err)
	}

	s, err := parseGoogle(body)
	if err != nil {
		return "", fmt.Errorf("google: %w", err)
	}
	return s, nil
}

// parseGoogle extracts the translation from a response of the form
// [[["translated","source",...],...],...].
func parseGoogle(body []byte) (string, error) {
	var resp []json.RawMessage
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(resp) == 0 {
		return "", ErrEmpty
	}

	var segments [][]any
	if err := json.Unmarshal(resp[0], &segments); err != nil {
		return "", fmt.Errorf("decoding segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmpty
	}
	return strings.TrimSpace(b.String()), nil
}

func get(ctx context.Context, client *http.Client, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}
	return body, nil
}
