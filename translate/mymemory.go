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
	"net/url"
	"strings"
)

// MyMemoryBaseURL is the public MyMemory endpoint.
const MyMemoryBaseURL = "https://api.mymemory.translated.net"

// MyMemory translates with the MyMemory translation memory API.
type MyMemory struct {
	opts ClientOptions
}

// NewMyMemory returns a MyMemory translator.
func NewMyMemory(opts *ClientOptions) *MyMemory {
	return &MyMemory{opts: opts.withDefaults(MyMemoryBaseURL)}
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`

	// ResponseStatus is sent as either a number or a string.
	ResponseStatus  any    `json:"responseStatus"`
	ResponseDetails string `json:"responseDetails"`
}

// Translate implements [Translator].
func (m *MyMemory) Translate(ctx context.Context, text string) (string, error) {
	v := url.Values{}
	v.Set("q", text)
	v.Set("langpair", code(m.opts.Source)+"|"+code(m.opts.Target))

	body, err := get(ctx, m.opts.HTTPClient, m.opts.BaseURL+"/get?"+v.Encode())
	if err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}

	var resp myMemoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("mymemory: decoding response: %w", err)
	}
	if status := fmt.Sprint(resp.ResponseStatus); status != "200" {
		return "", fmt.Errorf("mymemory: %w %s: %s", ErrStatus, status, resp.ResponseDetails)
	}

	s := strings.TrimSpace(resp.ResponseData.TranslatedText)
	// Quota errors are returned as the translation text.
	if s == "" || strings.HasPrefix(s, "MYMEMORY WARNING") {
		return "", fmt.Errorf("mymemory: %w: %s", ErrEmpty, s)
	}
	return s, nil
}
