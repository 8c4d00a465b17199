// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package ignore

import (
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
	"github.com/syncthing/lexbuf/lib/lexbuf"
	"github.com/syncthing/lexbuf/lib/seqs"
	"golang.org/x/text/unicode/norm"
)

const includePrefix = "#include "

// lineScanner splits its input into lines with the surrounding blanks
// removed. Both "\n" and "\r\n" end a line.
type lineScanner struct {
	lb   *lexbuf.ReadLexBuf
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{lb: lexbuf.NewReadLexBuf(r)}
}

func (s *lineScanner) all() iter.Seq[byte] {
	return lexbuf.Exact[byte](s.lb).All()
}

// next returns the next line, or false when the input is exhausted.
func (s *lineScanner) next() (string, bool) {
	lb := s.lb
	n := 0
	for range seqs.TakeWhile(s.all(), func(c byte) bool { return c != '\n' }) {
		n++
	}
	if n == 0 && lb.PastEnd() {
		return "", false
	}
	s.line++

	// The highlight is the line plus its terminator (or the item past the
	// end of input); put the terminator back.
	lb.Unget()
	h := lb.Highlight()
	lead := 0
	for lead < len(h) && isBlank(h[lead]) {
		lead++
	}
	if lead == len(h) {
		lb.Get()
		lb.MoveOn()
		return "", true
	}
	trail := 0
	for isBlank(h[len(h)-1-trail]) {
		trail++
	}

	for range lead {
		lb.Shrink()
	}
	for range trail {
		lb.Unget()
	}
	line := string(lb.Validate())

	// Skip the trailing blanks and the terminator.
	for range trail + 1 {
		lb.Get()
	}
	lb.MoveOn()
	return line, true
}

func (s *lineScanner) err() error {
	return s.lb.Err()
}

func isBlank(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func loadIgnoreFile(file string, seen map[string]bool) ([]Pattern, error) {
	if seen[file] {
		return nil, fmt.Errorf("multiple include of ignore file %q", file)
	}
	seen[file] = true

	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return parseIgnoreFile(fd, file, seen)
}

func parseIgnoreFile(fd io.Reader, currentFile string, seen map[string]bool) ([]Pattern, error) {
	var patterns []Pattern

	addPattern := func(line string) error {
		pattern := Pattern{
			include:  true,
			foldCase: runtime.GOOS == "darwin" || runtime.GOOS == "windows",
		}

		if strings.HasPrefix(line, "!") {
			line = line[1:]
			pattern.include = false
		}

		if strings.HasPrefix(line, "(?i)") {
			line = strings.ToLower(line[4:])
			pattern.foldCase = true
		}
		pattern.pattern = line

		var err error
		switch {
		case strings.HasPrefix(line, "/"):
			// Pattern is rooted in the current dir only
			pattern.match, err = glob.Compile(line[1:], '/')
			if err != nil {
				return fmt.Errorf("invalid pattern %q in ignore file", line)
			}
			patterns = append(patterns, pattern)

		case strings.HasPrefix(line, "**/"):
			// Add the pattern as is, and without **/ so it matches in current dir
			pattern.match, err = glob.Compile(line, '/')
			if err != nil {
				return fmt.Errorf("invalid pattern %q in ignore file", line)
			}
			patterns = append(patterns, pattern)

			pattern.match, err = glob.Compile(line[3:], '/')
			if err != nil {
				return fmt.Errorf("invalid pattern %q in ignore file", line)
			}
			patterns = append(patterns, pattern)

		case strings.HasPrefix(line, includePrefix):
			includeRel := line[len(includePrefix):]
			includeFile := filepath.Join(filepath.Dir(currentFile), includeRel)
			includes, err := loadIgnoreFile(includeFile, seen)
			if err != nil {
				return fmt.Errorf("include of %q: %w", includeRel, err)
			}
			patterns = append(patterns, includes...)

		default:
			// Path name or pattern, add it so it matches files both in
			// current directory and subdirs.
			pattern.match, err = glob.Compile(line, '/')
			if err != nil {
				return fmt.Errorf("invalid pattern %q in ignore file", line)
			}
			patterns = append(patterns, pattern)

			pattern.match, err = glob.Compile("**/"+line, '/')
			if err != nil {
				return fmt.Errorf("invalid pattern %q in ignore file", line)
			}
			patterns = append(patterns, pattern)
		}
		return nil
	}

	scanner := newLineScanner(fd)
	for {
		line, ok := scanner.next()
		if !ok {
			break
		}
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "//"):
			continue
		}

		line = norm.NFC.String(filepath.ToSlash(line))
		var err error
		switch {
		case strings.HasPrefix(line, "#"):
			err = addPattern(line)
		case strings.HasSuffix(line, "/**"):
			err = addPattern(line)
		case strings.HasSuffix(line, "/"):
			err = addPattern(line)
			if err == nil {
				err = addPattern(line + "**")
			}
		default:
			err = addPattern(line)
			if err == nil {
				err = addPattern(line + "/**")
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", currentFile, scanner.line, err)
		}
	}

	if err := scanner.err(); err != nil {
		return nil, fmt.Errorf("%s: %w", currentFile, err)
	}
	return patterns, nil
}
