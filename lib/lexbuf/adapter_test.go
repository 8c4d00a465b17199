// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package lexbuf

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"unicode"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/syncthing/lexbuf/lib/seqs"
)

func TestBytesIterEndsAtEOF(t *testing.T) {
	lb := NewReadLexBuf(strings.NewReader("hi"))
	it := lb.Iter()

	for _, exp := range []byte("hi") {
		if c, ok := it.Next(); !ok || c != exp {
			t.Fatalf("E: %q, A: %q (%v)", exp, c, ok)
		}
	}
	for i := 0; i < 3; i++ {
		if c, ok := it.Next(); ok {
			t.Fatalf("Next #%d past the end returned %q", i, c)
		}
		if c := lb.Get(); c != EOF {
			t.Fatalf("Get past the end E: %q, A: %q", EOF, c)
		}
	}
	// Every probe past the end extended the highlight.
	if n := len(lb.Highlight()); n != 8 {
		t.Errorf("highlight length E: 8, A: %d", n)
	}
}

func TestBytesIterStopsAtZeroByte(t *testing.T) {
	lb := NewReadLexBuf(bytes.NewReader([]byte{'a', 0, 'b'}))
	if res := slices.Collect(Bytes(lb).All()); string(res) != "a" {
		t.Errorf("E: %q, A: %q", "a", res)
	}
	if lb.PastEnd() {
		t.Error("a zero byte in the data is not past the end")
	}
}

func TestExactIterReadsBinaryData(t *testing.T) {
	data := []byte{'a', 0, 'b', 0}
	lb := NewReadLexBuf(bytes.NewReader(data))
	res, err := seqs.Collect(Exact[byte](lb).All(), lb.Err)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(res, data) {
		t.Errorf("E: %q, A: %q", data, res)
	}
	lb.Unget()
	if v := lb.Validate(); !bytes.Equal(v, data) {
		t.Errorf("E: %q, A: %q", data, v)
	}
}

func TestItemsIterUsesEndIndicator(t *testing.T) {
	lb := NewSliceLexBuf([]string{"a", "b", "<eof>", "c"}, "<eof>")
	defer lb.Close()

	if res := slices.Collect(Items[string](lb).All()); !slices.Equal(res, []string{"a", "b"}) {
		t.Errorf("E: %v, A: %v", []string{"a", "b"}, res)
	}

	lb.MoveOn()
	// Exact does not care about the value.
	if res := slices.Collect(lb.Iter().All()); !slices.Equal(res, []string{"c"}) {
		t.Errorf("E: %v, A: %v", []string{"c"}, res)
	}
}

func TestNewIterContinuesFromHead(t *testing.T) {
	lb := NewReadLexBuf(strings.NewReader("abcd"))
	it := lb.Iter()
	it.Next()
	it.Next()

	if c, _ := lb.Iter().Next(); c != 'c' {
		t.Errorf("E: %q, A: %q", 'c', c)
	}
}

func TestTakeWhileOverTape(t *testing.T) {
	lb := NewReadLexBuf(strings.NewReader("count 42;"))
	isLetter := func(c byte) bool { return unicode.IsLetter(rune(c)) }
	isDigit := func(c byte) bool { return '0' <= c && c <= '9' }

	word := slices.Collect(seqs.TakeWhile(lb.Iter().All(), isLetter))
	if string(word) != "count" {
		t.Errorf("E: %q, A: %q", "count", word)
	}
	// The space that ended the word is in the highlight.
	lb.Unget()
	if v := lb.Validate(); string(v) != "count" {
		t.Errorf("E: %q, A: %q", "count", v)
	}

	lb.Get()
	lb.MoveOn()

	num := seqs.Fold(seqs.TakeWhile(lb.Iter().All(), isDigit), 0, func(acc int, c byte) int {
		return acc*10 + int(c-'0')
	})
	if num != 42 {
		t.Errorf("E: 42, A: %d", num)
	}
	lb.Unget()
	lb.MoveOn()

	if !seqs.HasPrefix(lb.Iter().All(), []byte(";")) {
		t.Error("expected a semicolon")
	}
	if _, ok := lb.Iter().Next(); ok {
		t.Error("expected end of input")
	}
}

func TestMetrics(t *testing.T) {
	pulled := testutil.ToFloat64(metricItemsPulled.WithLabelValues(storeRead))
	commits := testutil.ToFloat64(metricCommits.WithLabelValues(storeRead))
	discards := testutil.ToFloat64(metricDiscards.WithLabelValues(storeRead))
	violations := testutil.ToFloat64(metricViolations.WithLabelValues(storeRead, "shrink"))

	lb := NewReadLexBuf(strings.NewReader("abc"))
	lb.Get()
	lb.Get()
	lb.GiveUp()
	lb.Get()
	lb.MoveOn()
	expectPanic(t, ErrShrinkEmpty, lb.Shrink)

	if d := testutil.ToFloat64(metricItemsPulled.WithLabelValues(storeRead)) - pulled; d != 2 {
		t.Errorf("items pulled E: 2, A: %v", d)
	}
	if d := testutil.ToFloat64(metricCommits.WithLabelValues(storeRead)) - commits; d != 1 {
		t.Errorf("commits E: 1, A: %v", d)
	}
	if d := testutil.ToFloat64(metricDiscards.WithLabelValues(storeRead)) - discards; d != 1 {
		t.Errorf("discards E: 1, A: %v", d)
	}
	if d := testutil.ToFloat64(metricViolations.WithLabelValues(storeRead, "shrink")) - violations; d != 1 {
		t.Errorf("violations E: 1, A: %v", d)
	}
}
