// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package shellwords splits command lines into words the way /bin/sh does,
// without performing any kind of expansion.
package shellwords

import (
	"errors"
	"strings"

	"github.com/syncthing/lexbuf/lib/lexbuf"
	"github.com/syncthing/lexbuf/lib/seqs"
)

var (
	ErrUnterminatedSingleQuote = errors.New("unterminated single-quoted string")
	ErrUnterminatedDoubleQuote = errors.New("unterminated double-quoted string")
	ErrUnterminatedEscape      = errors.New("unterminated backslash-escape")
)

const (
	splitChars        = " \n\t"
	rawSpecials       = splitChars + `'"\`
	doubleEscapeChars = "$`\"\n\\"

	eof rune = -1
)

// Split splits input into words. Backslash escapes, single quotes and
// double quotes are supported; $'' quoting is not. Invalid UTF-8 is
// replaced by utf8.RuneError.
func Split(input string) ([]string, error) {
	lb := lexbuf.NewIterLexBuf(func(yield func(rune) bool) {
		for _, r := range input {
			if !yield(r) {
				return
			}
		}
	}, eof)
	defer lb.Close()

	words := make([]string, 0)
	for {
		c := lb.Get()
		if lb.PastEnd() {
			return words, nil
		}
		if strings.ContainsRune(splitChars, c) {
			lb.MoveOn()
			continue
		}
		lb.GiveUp()

		word, err := splitWord(lb)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
}

// splitWord reads one word starting at the head, consuming the separator
// that ends it.
func splitWord(lb *lexbuf.IterLexBuf[rune]) (string, error) {
	var sb strings.Builder
	for {
		text, c, ok := scanUntil(lb, rawSpecials)
		sb.WriteString(text)
		if !ok {
			return sb.String(), nil
		}

		var err error
		switch c {
		case '\'':
			err = singleQuoted(lb, &sb)
		case '"':
			err = doubleQuoted(lb, &sb)
		case '\\':
			err = escaped(lb, &sb)
		default:
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// scanUntil reads up to the first rune in stop and commits everything read
// including that rune. It returns the text before the stop rune and the
// stop rune itself, or false if the input ended first.
func scanUntil(lb *lexbuf.IterLexBuf[rune], stop string) (string, rune, bool) {
	for range seqs.TakeWhile(lb.Iter().All(), func(r rune) bool {
		return !strings.ContainsRune(stop, r)
	}) {
	}
	lb.Unget()
	text := string(lb.Validate())
	c := lb.Get()
	lb.MoveOn()
	return text, c, !lb.PastEnd()
}

func escaped(lb *lexbuf.IterLexBuf[rune], sb *strings.Builder) error {
	c := lb.Get()
	lb.MoveOn()
	if lb.PastEnd() {
		return ErrUnterminatedEscape
	}
	// An escaped newline is a line continuation.
	if c != '\n' {
		sb.WriteRune(c)
	}
	return nil
}

func singleQuoted(lb *lexbuf.IterLexBuf[rune], sb *strings.Builder) error {
	text, _, ok := scanUntil(lb, "'")
	if !ok {
		return ErrUnterminatedSingleQuote
	}
	sb.WriteString(text)
	return nil
}

func doubleQuoted(lb *lexbuf.IterLexBuf[rune], sb *strings.Builder) error {
	for {
		text, c, ok := scanUntil(lb, `"\`)
		if !ok {
			return ErrUnterminatedDoubleQuote
		}
		sb.WriteString(text)
		if c == '"' {
			return nil
		}

		c = lb.Get()
		if lb.PastEnd() {
			return ErrUnterminatedDoubleQuote
		}
		if !strings.ContainsRune(doubleEscapeChars, c) {
			// Not an escape; the backslash is literal and c is scanned
			// as part of the string.
			sb.WriteRune('\\')
			lb.Unget()
			continue
		}
		lb.MoveOn()
		if c != '\n' {
			sb.WriteRune(c)
		}
	}
}
