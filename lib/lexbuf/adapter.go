// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package lexbuf

import (
	"iter"
)

// Iter drives a tape as a forward only sequence. Each call to Next is a
// call to Get on the tape; reaching the end of input is reported as the
// end of the sequence, but the item read past the end stays in the
// highlight just as it would after a plain Get.
//
// An Iter does not remember having reached the end: calling Next again
// calls Get again. A new Iter on the same tape continues from the current
// head.
type Iter[T any] struct {
	lb    LexBuf[T]
	atEnd func(T) bool
}

// NewIter returns an iterator over lb that ends at the first item for
// which atEnd returns true.
func NewIter[T any](lb LexBuf[T], atEnd func(T) bool) *Iter[T] {
	return &Iter[T]{lb: lb, atEnd: atEnd}
}

// Bytes returns an iterator over a byte tape that ends at the first EOF
// byte.
func Bytes(lb LexBuf[byte]) *Iter[byte] {
	return NewIter(lb, func(c byte) bool {
		return c == EOF
	})
}

// Items returns an iterator that ends at the first item equal to the
// tape's end indicator.
func Items[T comparable](lb EndIndicated[T]) *Iter[T] {
	end := lb.EndIndicator()
	return NewIter[T](lb, func(v T) bool {
		return v == end
	})
}

// Exact returns an iterator that ends when the tape reports having read
// past the end of its source, regardless of the item value.
func Exact[T any](lb EndAware[T]) *Iter[T] {
	return NewIter[T](lb, func(T) bool {
		return lb.PastEnd()
	})
}

// Next returns the next item, or false at the end of input.
func (it *Iter[T]) Next() (T, bool) {
	v := it.lb.Get()
	if it.atEnd(v) {
		var zero T
		return zero, false
	}
	return v, true
}

// All returns the remaining items as an iter.Seq. Stopping the range loop
// early leaves the last yielded item in the highlight.
func (it *Iter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
