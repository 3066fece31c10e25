// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenize

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"snake_case", "post_message", "post message"},
		{"kebab-case", "search-messages", "search messages"},
		{"camelCase", "getUserProfile", "get user profile"},
		{"PascalCase", "HTTPServer", "httpserver"},
		{"letter digit boundary", "gpt4turbo", "gpt 4 turbo"},
		{"digit letter boundary", "4chan", "4 chan"},
		{"punctuation collapse", "hello, world!!", "hello world"},
		{"already spaced", "hello world", "hello world"},
		{"leading trailing junk", "  ***hello***  ", "hello"},
		{"empty", "", ""},
		{"non-ascii drops", "café 日本語", "caf"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Normalize(c.in); got != c.want {
				t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	opts := DefaultOptions()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"basic", "post_message", []string{"post", "message"}},
		{"stopwords dropped", "the quick fox and the dog", []string{"quick", "fox", "dog"}},
		{"short tokens dropped", "a I of ab", []string{"ab"}},
		{"empty input", "", nil},
		{"non-ascii yields nothing", "日本語", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Tokenize(c.in, opts)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Tokenize(%q) = %#v, want %#v", c.in, got, c.want)
			}
		})
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	samples := []string{
		"post_message", "search-Messages", "GetUserProfile v2",
		"", "   ", "!!!", "the quick brown fox jumps over the lazy dog",
	}
	for _, s := range samples {
		a := Tokenize(s, opts)
		b := Tokenize(Normalize(s), opts)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("tokenize(normalize(%q)) = %#v, want tokenize(%q) = %#v", s, b, s, a)
		}
	}
}

func TestNormalizeForMatch(t *testing.T) {
	cases := []struct{ a, b string }{
		{"post_message", "PostMessage"},
		{"Search Messages", "search-messages"},
	}
	for _, c := range cases {
		if NormalizeForMatch(c.a) != NormalizeForMatch(c.b) {
			t.Errorf("NormalizeForMatch(%q)=%q != NormalizeForMatch(%q)=%q",
				c.a, NormalizeForMatch(c.a), c.b, NormalizeForMatch(c.b))
		}
	}
	if got := NormalizeForMatch("post message"); got != "postmessage" {
		t.Errorf("NormalizeForMatch(%q) = %q, want %q", "post message", got, "postmessage")
	}
}
