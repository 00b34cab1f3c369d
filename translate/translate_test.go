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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

var errOffline = errors.New("offline")

func TestGoogle_Translate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/translate_a/single" || q.Get("client") != "gtx" || q.Get("sl") != "en" || q.Get("tl") != "ta" || q.Get("dt") != "t" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		switch q.Get("q") {
		case "good morning":
			_, _ = w.Write([]byte(`[[["காலை ","good ",null,null,10],["வணக்கம்","morning",null,null,10]],null,"en"]`))
		case "nothing":
			_, _ = w.Write([]byte(`[[],null,"en"]`))
		default:
			http.Error(w, "quota", http.StatusTooManyRequests)
		}
	}))
	defer srv.Close()

	g := NewGoogle(&ClientOptions{BaseURL: srv.URL, HTTPClient: srv.Client()})

	got, err := g.Translate(context.Background(), "good morning")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if diff := cmp.Diff("காலை வணக்கம்", got); diff != "" {
		t.Errorf("Translate (-want, +got):\n%s", diff)
	}

	if _, err := g.Translate(context.Background(), "nothing"); !errors.Is(err, ErrEmpty) {
		t.Errorf("Translate(nothing): got %v, want ErrEmpty", err)
	}
	if _, err := g.Translate(context.Background(), "other"); !errors.Is(err, ErrStatus) {
		t.Errorf("Translate(other): got %v, want ErrStatus", err)
	}
}

func TestMyMemory_Translate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/get" || q.Get("langpair") != "en|fr" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		switch q.Get("q") {
		case "cat":
			_, _ = w.Write([]byte(`{"responseData":{"translatedText":"chat"},"responseStatus":200}`))
		case "quota":
			_, _ = w.Write([]byte(`{"responseData":{"translatedText":"MYMEMORY WARNING: YOU USED ALL AVAILABLE FREE TRANSLATIONS"},"responseStatus":"200"}`))
		default:
			_, _ = w.Write([]byte(`{"responseData":{"translatedText":""},"responseStatus":"403","responseDetails":"INVALID LANGUAGE PAIR"}`))
		}
	}))
	defer srv.Close()

	m := NewMyMemory(&ClientOptions{BaseURL: srv.URL, HTTPClient: srv.Client(), Target: language.French})

	got, err := m.Translate(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if diff := cmp.Diff("chat", got); diff != "" {
		t.Errorf("Translate (-want, +got):\n%s", diff)
	}

	if _, err := m.Translate(context.Background(), "quota"); !errors.Is(err, ErrEmpty) {
		t.Errorf("Translate(quota): got %v, want ErrEmpty", err)
	}
	if _, err := m.Translate(context.Background(), "dog"); !errors.Is(err, ErrStatus) {
		t.Errorf("Translate(dog): got %v, want ErrStatus", err)
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	failing := Func(func(context.Context, string) (string, error) {
		return "", errOffline
	})
	empty := Func(func(context.Context, string) (string, error) {
		return " ", nil
	})
	upper := Func(func(_ context.Context, s string) (string, error) {
		return strings.ToUpper(s), nil
	})

	got, err := Chain{failing, empty, upper}.Translate(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if diff := cmp.Diff("CAT", got); diff != "" {
		t.Errorf("Translate (-want, +got):\n%s", diff)
	}

	_, err = Chain{failing, empty}.Translate(context.Background(), "cat")
	if !errors.Is(err, errOffline) || !errors.Is(err, ErrEmpty) {
		t.Errorf("Translate: got %v, want errOffline and ErrEmpty", err)
	}

	if _, err := (Chain{}).Translate(context.Background(), "cat"); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty Chain: got %v, want ErrEmpty", err)
	}
}

func TestCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	slow := Func(func(_ context.Context, s string) (string, error) {
		calls.Add(1)
		<-release
		if s == "bad" {
			return "", errOffline
		}
		return "<" + s + ">", nil
	})
	c := NewCache(slow)

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.Translate(context.Background(), "cat")
		}()
	}
	// Let the goroutines pile up on the shared call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		if r != "<cat>" {
			t.Errorf("Translate: got %q, want %q", r, "<cat>")
		}
	}
	if _, err := c.Translate(context.Background(), "cat"); err != nil {
		t.Fatalf("cached Translate: %v", err)
	}

	n := calls.Load()
	if n < 1 || n > 5 {
		t.Errorf("calls: got %d", n)
	}

	for range 2 {
		if _, err := c.Translate(context.Background(), "bad"); !errors.Is(err, errOffline) {
			t.Errorf("Translate(bad): got %v, want errOffline", err)
		}
	}
	if got, want := calls.Load(), n+2; got != want {
		t.Errorf("failures must not be cached: got %d calls, want %d", got, want)
	}
	if got, want := c.Len(), 1; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	tr := Func(func(_ context.Context, s string) (string, error) {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if s == "bad" {
			return "", errOffline
		}
		return strings.ToUpper(s), nil
	})

	texts := []string{"a", "", "bad", "b", "-", "c", "d", "e", "f"}
	got, err := All(context.Background(), tr, texts, 2)

	want := []string{"A", None, Unavailable, "B", None, "C", "D", "E", "F"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All (-want, +got):\n%s", diff)
	}
	if !errors.Is(err, errOffline) {
		t.Errorf("All: got error %v, want errOffline", err)
	}
	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrency: got %d, want <= 2", p)
	}

	got, err = All(context.Background(), tr, nil, 0)
	if err != nil || len(got) != 0 {
		t.Errorf("All(nil): got %v, %v", got, err)
	}
}
