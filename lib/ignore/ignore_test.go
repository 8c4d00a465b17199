// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package ignore

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"
)

func TestIgnore(t *testing.T) {
	pats := New(true)
	err := pats.Load("testdata/.stignore")
	if err != nil {
		t.Fatal(err)
	}

	var tests = []struct {
		f string
		r bool
	}{
		{"rooted.txt", true},
		{filepath.Join("sub", "rooted.txt"), false},

		{"a.tmp", true},
		{filepath.Join("dir", "a.tmp"), true},
		{"keep.tmp", false},
		{filepath.Join("dir", "keep.tmp"), false},

		{"build", false},
		{filepath.Join("build", "out.o"), true},
		{filepath.Join("src", "build", "out.o"), true},

		{"important.log", false},
		{filepath.Join("x", "important.log"), false},
		{"debug.log", true},

		{"Thumbs.db", true},
		{"THUMBS.DB", true},
		{filepath.Join("pics", "thumbs.db"), true},

		{"cache", true},
		{filepath.Join("a", "b", "cache"), true},
		{filepath.Join("cache", "x"), true},
		{filepath.Join("a", "cache", "x"), true},

		{"docs", false},
		{filepath.Join("docs", "readme"), true},
		{filepath.Join("x", "docs", "y"), true},

		{"other", false},
	}

	for i, tc := range tests {
		if r := pats.Match(tc.f); r != tc.r {
			t.Errorf("Incorrect ignoreFile() #%d (%s); E: %v, A: %v", i, tc.f, tc.r, r)
		}
	}
}

func TestExcludes(t *testing.T) {
	stignore := `
	!iex2
	!ign1/ex
	ign1
	i*2
	!ign2
	`
	pats := New(true)
	err := pats.Parse(bytes.NewBufferString(stignore), ".stignore")
	if err != nil {
		t.Fatal(err)
	}

	var tests = []struct {
		f string
		r bool
	}{
		{"ign1", true},
		{"ign2", true},
		{"ibla2", true},
		{"iex2", false},
		{filepath.Join("ign1", "ign"), true},
		{filepath.Join("ign1", "ex"), false},
		{filepath.Join("ign1", "iex2"), false},
		{filepath.Join("iex2", "ign"), false},
		{filepath.Join("foo", "bar", "ign1"), true},
		{filepath.Join("foo", "bar", "ign2"), true},
		{filepath.Join("foo", "bar", "iex2"), false},
	}

	for _, tc := range tests {
		if r := pats.Match(tc.f); r != tc.r {
			t.Errorf("Incorrect match for %s: %v != %v", tc.f, r, tc.r)
		}
	}
}

func TestBadPatterns(t *testing.T) {
	var badPatterns = []string{
		"[",
		"/[",
		"**/[",
		"#include nonexistent",
		"#include .stignore",
		"!#include makesnosense",
	}

	for _, pat := range badPatterns {
		err := New(true).Parse(bytes.NewBufferString(pat), ".stignore")
		if err == nil {
			t.Errorf("No error for pattern %q", pat)
		}
	}
}

func TestIncludeCycle(t *testing.T) {
	err := New(false).Load(filepath.Join("testdata", "cycle-a"))
	if err == nil || !strings.Contains(err.Error(), "multiple include") {
		t.Errorf("Expected include cycle error, got %v", err)
	}
}

func TestErrorHasLineNumber(t *testing.T) {
	err := New(false).Parse(bytes.NewBufferString("ok\n\n  [\n"), "x/.stignore")
	if err == nil || !strings.HasPrefix(err.Error(), "x/.stignore:3: ") {
		t.Errorf("Expected error on line 3, got %v", err)
	}
}

func TestCaseSensitivity(t *testing.T) {
	ign := New(true)
	err := ign.Parse(bytes.NewBufferString("test"), ".stignore")
	if err != nil {
		t.Error(err)
	}

	match := []string{"test"}
	dontMatch := []string{"foo"}

	switch runtime.GOOS {
	case "darwin", "windows":
		match = append(match, "TEST", "Test", "tESt")
	default:
		dontMatch = append(dontMatch, "TEST", "Test", "tESt")
	}

	for _, tc := range match {
		if !ign.Match(tc) {
			t.Errorf("Incorrect match for %q: should be matched", tc)
		}
	}

	for _, tc := range dontMatch {
		if ign.Match(tc) {
			t.Errorf("Incorrect match for %q: should not be matched", tc)
		}
	}
}

func TestNormalization(t *testing.T) {
	const (
		resumeNFC = "r\u00e9sum\u00e9.txt"
		resumeNFD = "re\u0301sume\u0301.txt"
		cafeNFC   = "caf\u00e9"
		cafeNFD   = "cafe\u0301"
	)

	ign := New(false)
	if err := ign.Parse(bytes.NewBufferString("/"+resumeNFD+"\n/"+cafeNFC+"\n"), ".stignore"); err != nil {
		t.Fatal(err)
	}
	if !ign.Match(resumeNFC) {
		t.Error("NFC path should match NFD pattern")
	}
	if !ign.Match(cafeNFD) {
		t.Error("NFD path should match NFC pattern")
	}
}

func TestCaching(t *testing.T) {
	dir := t.TempDir()
	fd1 := filepath.Join(dir, "ignore1")
	fd2 := filepath.Join(dir, "ignore2")

	if err := os.WriteFile(fd1, []byte("/x/\n#include ignore2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fd2, []byte("/y/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	pats := New(true)
	if err := pats.Load(fd1); err != nil {
		t.Fatal(err)
	}

	if pats.cached() != 0 {
		t.Fatal("Expected empty cache")
	}

	if len(pats.patterns) != 4 {
		t.Fatal("Incorrect number of patterns loaded", len(pats.patterns), "!=", 4)
	}

	// Cache some outcomes

	for _, letter := range []string{"a", "b", "x", "y"} {
		pats.Match(letter)
	}

	if pats.cached() != 4 {
		t.Fatal("Expected 4 cached results")
	}

	// Reload file, expect old outcomes to be preserved

	if err := pats.Load(fd1); err != nil {
		t.Fatal(err)
	}
	if pats.cached() != 4 {
		t.Fatal("Expected 4 cached results")
	}

	// Modify the include file, expect empty cache

	if err := os.WriteFile(fd2, []byte("/y/\n/z/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := pats.Load(fd1); err != nil {
		t.Fatal(err)
	}
	if pats.cached() != 0 {
		t.Fatal("Expected 0 cached results")
	}

	// Cache some outcomes again

	for _, letter := range []string{"b", "x", "y"} {
		pats.Match(letter)
	}

	// Verify that outcomes preserved on next load

	if err := pats.Load(fd1); err != nil {
		t.Fatal(err)
	}
	if pats.cached() != 3 {
		t.Fatal("Expected 3 cached results")
	}
}

func TestPatterns(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("patterns are case folded by default")
	}

	ign := New(false)
	if err := ign.Parse(bytes.NewBufferString("!a\r\n(?i)B/\n"), ".stignore"); err != nil {
		t.Fatal(err)
	}

	exp := []string{"!a", "!a", "!a/**", "!a/**", "(?i)b/", "(?i)b/", "(?i)b/**", "(?i)b/**"}
	if diff, equal := messagediff.PrettyDiff(exp, ign.Patterns()); !equal {
		t.Errorf("Unexpected patterns:\n%s", diff)
	}
}

func TestLineScanner(t *testing.T) {
	in := "  first \r\n\n\t \nsecond\x00line\nlast"
	sc := newLineScanner(strings.NewReader(in))

	var lines []string
	for {
		line, ok := sc.next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}

	exp := []string{"first", "", "", "second\x00line", "last"}
	if diff, equal := messagediff.PrettyDiff(exp, lines); !equal {
		t.Errorf("Unexpected lines:\n%s", diff)
	}
	if sc.line != 5 {
		t.Errorf("E: 5 lines, A: %d", sc.line)
	}
	if err := sc.err(); err != nil {
		t.Error(err)
	}
}
