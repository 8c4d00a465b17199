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
)

type byteClass int

const (
	classSpace byteClass = iota
	classWord
	classPunct
	classOther
)

func (c byteClass) String() string {
	switch c {
	case classSpace:
		return "space"
	case classWord:
		return "word"
	case classPunct:
		return "punct"
	default:
		return "other"
	}
}

func classOf(c byte) byteClass {
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
		return classSpace
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c >= 0x80:
		return classWord
	case c > ' ' && c < 0x7f:
		return classPunct
	default:
		return classOther
	}
}

type classRun struct {
	offset int
	class  byteClass
	text   []byte
}

// classify splits the tape into maximal runs of bytes of the same class.
func classify(lb *lexbuf.ReadLexBuf, emit func(classRun) error) error {
	for {
		c := lb.Get()
		if lb.PastEnd() {
			return lb.Err()
		}
		cls := classOf(c)
		seqs.Count(seqs.TakeWhile(lexbuf.Exact[byte](lb).All(), func(c byte) bool {
			return classOf(c) == cls
		}))
		lb.Unget()

		offset := lb.Tail()
		if err := emit(classRun{offset: offset, class: cls, text: lb.Validate()}); err != nil {
			return err
		}
	}
}

type classifyCommand struct {
	File string `arg:"" optional:"" default:"-" help:"Input file, or - for standard input"`
}

func (c *classifyCommand) Run(opts inputOptions) error {
	in, err := opts.open(c.File)
	if err != nil {
		return err
	}
	defer in.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	return runClassify(in, out)
}

func runClassify(in io.Reader, out io.Writer) error {
	return classify(lexbuf.NewReadLexBuf(in), func(r classRun) error {
		_, err := fmt.Fprintf(out, "%d\t%s\t%q\n", r.offset, r.class, r.text)
		return err
	})
}
