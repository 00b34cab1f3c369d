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
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes the translations of another translator. Concurrent calls
// for the same text share one underlying call. Failures are not cached.
type Cache struct {
	t Translator

	mu sync.RWMutex
	m  map[string]string

	group singleflight.Group
}

// NewCache returns a Cache in front of t.
func NewCache(t Translator) *Cache {
	return &Cache{
		t: t,
		m: map[string]string{},
	}
}

// Translate implements [Translator].
func (c *Cache) Translate(ctx context.Context, text string) (string, error) {
	c.mu.RLock()
	s, ok := c.m[text]
	c.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, err, _ := c.group.Do(text, func() (any, error) {
		s, err := c.t.Translate(ctx, text)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.m[text] = s
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
