// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ignore matches paths against .stignore style pattern files.
package ignore

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"
)

const cacheSize = 4096

type Pattern struct {
	pattern  string
	match    glob.Glob
	include  bool
	foldCase bool
}

func (p Pattern) String() string {
	ret := p.pattern
	if !p.include {
		ret = "!" + ret
	}
	if p.foldCase {
		ret = "(?i)" + ret
	}
	return ret
}

type Matcher struct {
	patterns  []Pattern
	withCache bool
	matches   *lru.Cache[string, bool]
	curHash   string
	mut       sync.Mutex
}

func New(withCache bool) *Matcher {
	return &Matcher{
		withCache: withCache,
	}
}

func (m *Matcher) Load(file string) error {
	// No locking, Parse() does the locking

	fd, err := os.Open(file)
	if err != nil {
		// We do a parse with empty patterns to clear out the hash, cache etc.
		m.Parse(&bytes.Buffer{}, file)
		return err
	}
	defer fd.Close()

	return m.Parse(fd, file)
}

func (m *Matcher) Parse(r io.Reader, file string) error {
	m.mut.Lock()
	defer m.mut.Unlock()

	seen := map[string]bool{file: true}
	patterns, err := parseIgnoreFile(r, file, seen)
	// Error is saved and returned at the end. We process the patterns
	// (possibly blank) anyway.

	newHash := hashPatterns(patterns)
	if newHash == m.curHash {
		// We've already loaded exactly these patterns.
		return err
	}

	l.Debugf("%s: loaded %d patterns (hash %s)", file, len(patterns), newHash)
	m.curHash = newHash
	m.patterns = patterns
	m.matches = nil
	if m.withCache {
		m.matches, _ = lru.New[string, bool](cacheSize)
	}

	return err
}

func (m *Matcher) Match(file string) (result bool) {
	if m == nil {
		return false
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	if len(m.patterns) == 0 {
		return false
	}

	file = norm.NFC.String(filepath.ToSlash(file))

	if m.matches != nil {
		if res, ok := m.matches.Get(file); ok {
			return res
		}
		defer func() {
			m.matches.Add(file, result)
		}()
	}

	var lowercaseFile string
	for _, pattern := range m.patterns {
		if pattern.foldCase {
			if lowercaseFile == "" {
				lowercaseFile = strings.ToLower(file)
			}
			if pattern.match.Match(lowercaseFile) {
				return pattern.include
			}
		} else if pattern.match.Match(file) {
			return pattern.include
		}
	}

	// Default to false.
	return false
}

// Patterns return a list of the loaded patterns, as they've been parsed
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	patterns := make([]string, len(m.patterns))
	for i, pat := range m.patterns {
		patterns[i] = pat.String()
	}
	return patterns
}

func (m *Matcher) Hash() string {
	m.mut.Lock()
	defer m.mut.Unlock()
	return m.curHash
}

func (m *Matcher) cached() int {
	m.mut.Lock()
	defer m.mut.Unlock()
	if m.matches == nil {
		return 0
	}
	return m.matches.Len()
}

func hashPatterns(patterns []Pattern) string {
	h := md5.New()
	for _, pat := range patterns {
		h.Write([]byte(pat.String()))
		h.Write([]byte("\n"))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
