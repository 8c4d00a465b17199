// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/syncthing/lexbuf/lib/lexbuf"
	"github.com/syncthing/lexbuf/lib/seqs"
	"github.com/syncthing/lexbuf/lib/shellwords"
)

type wordsCommand struct {
	File string `arg:"" optional:"" default:"-" help:"Input file, or - for standard input"`
}

func (c *wordsCommand) Run(opts inputOptions) error {
	in, err := opts.open(c.File)
	if err != nil {
		return err
	}
	defer in.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	return runWords(in, out)
}

func runWords(in io.Reader, out io.Writer) error {
	lb := lexbuf.NewReadLexBuf(in)
	for lineNo := 1; ; lineNo++ {
		line, ok := readLine(lb)
		if !ok {
			return lb.Err()
		}
		words, err := shellwords.Split(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, word := range words {
			if _, err := fmt.Fprintf(out, "%d\t%s\n", lineNo, word); err != nil {
				return err
			}
		}
	}
}

// readLine returns the next line without its terminating newline or
// carriage return and newline, or false at the end of input.
func readLine(lb *lexbuf.ReadLexBuf) (string, bool) {
	n := seqs.Count(seqs.TakeWhile(lexbuf.Exact[byte](lb).All(), func(c byte) bool {
		return c != '\n'
	}))
	if n == 0 && lb.PastEnd() {
		return "", false
	}
	lb.Unget()
	crlf := false
	if h := lb.Highlight(); len(h) > 0 && h[len(h)-1] == '\r' {
		lb.Unget()
		crlf = true
	}
	line := string(lb.Validate())
	lb.Get()
	if crlf {
		lb.Get()
	}
	lb.MoveOn()
	return line, true
}
