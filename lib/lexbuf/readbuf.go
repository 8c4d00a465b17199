// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package lexbuf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// EOF is returned by ReadLexBuf.Get past the end of input.
const EOF byte = 0

// ReadLexBuf is a byte tape reading from an io.Reader. A read error other
// than io.EOF ends the input as well; it is available from Err afterwards.
//
// The zero byte doubles as the end of input marker for Get and for the
// Bytes adapter. Use PastEnd, or the Exact adapter, when the input may
// legitimately contain zero bytes.
type ReadLexBuf struct {
	cursor[byte]
	r   io.ByteReader
	err error
}

var _ EndAware[byte] = (*ReadLexBuf)(nil)

// NewReadLexBuf returns a tape over r. Readers that do not implement
// io.ByteReader are wrapped in a bufio.Reader.
func NewReadLexBuf(r io.Reader) *ReadLexBuf {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	lb := &ReadLexBuf{r: br}
	lb.cursor = newCursor(storeRead, lb.readByte, EOF)
	return lb
}

func (lb *ReadLexBuf) readByte() (byte, bool) {
	c, err := lb.r.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			lb.err = fmt.Errorf("reading input at offset %d: %w", lb.off+len(lb.buf), err)
			l.Debugln("read:", lb.err)
		}
		return EOF, false
	}
	return c, true
}

// Err returns the error that ended the input, or nil if the input ended
// normally or has not ended yet.
func (lb *ReadLexBuf) Err() error {
	return lb.err
}

// Iter returns a sentinel based iterator over the tape, see Bytes.
func (lb *ReadLexBuf) Iter() *Iter[byte] {
	return Bytes(lb)
}
