// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package lexbuf

import (
	"iter"
	"slices"
)

// IterLexBuf is a tape over an iter.Seq. Past the end of the sequence Get
// returns the end indicator given at construction.
type IterLexBuf[T any] struct {
	cursor[T]
	stop func()
}

var _ EndAware[int] = (*IterLexBuf[int])(nil)
var _ EndIndicated[int] = (*IterLexBuf[int])(nil)

// NewIterLexBuf returns a tape over seq, using end as the end indicator.
// The sequence is consumed through iter.Pull; call Close to release it if
// the tape is dropped before the sequence is exhausted.
func NewIterLexBuf[T any](seq iter.Seq[T], end T) *IterLexBuf[T] {
	next, stop := iter.Pull(seq)
	lb := &IterLexBuf[T]{stop: stop}
	lb.cursor = newCursor(storeIter, next, end)
	return lb
}

// NewSliceLexBuf returns a tape over the items of s.
func NewSliceLexBuf[T any](s []T, end T) *IterLexBuf[T] {
	return NewIterLexBuf(slices.Values(s), end)
}

// Close stops the underlying sequence. Items already pulled remain
// available; everything beyond them reads as the end indicator.
func (lb *IterLexBuf[T]) Close() {
	lb.stop()
	lb.exhaust()
}

// Iter returns an iterator over the tape that detects the end of input by
// position, see Exact.
func (lb *IterLexBuf[T]) Iter() *Iter[T] {
	return Exact[T](lb)
}
