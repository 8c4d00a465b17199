// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package seqs contains helpers for consuming iterators.
//
// When the iterator is backed by a tape (lexbuf.Iter.All) every helper
// that stops early has already read the item it stopped at, so that item
// is part of the tape's highlight. Reading past the end of input also
// leaves one item in the highlight. In both cases a single Unget returns
// the tape to the last accepted item.
package seqs

import "iter"

// Collect returns a slice of the items from the iterator, plus the error if
// any.
func Collect[T any](it iter.Seq[T], errFn func() error) ([]T, error) {
	var s []T
	for v := range it {
		s = append(s, v)
	}
	return s, errFn()
}

// TakeWhile returns an iterator over the leading items for which pred
// returns true.
func TakeWhile[T any](it iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range it {
			if !pred(v) || !yield(v) {
				return
			}
		}
	}
}

// Find returns the first item for which pred returns true.
func Find[T any](it iter.Seq[T], pred func(T) bool) (T, bool) {
	for v := range it {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Fold combines the items, left to right, starting with init.
func Fold[T, A any](it iter.Seq[T], init A, fn func(A, T) A) A {
	acc := init
	for v := range it {
		acc = fn(acc, v)
	}
	return acc
}

// Count returns the number of items.
func Count[T any](it iter.Seq[T]) int {
	n := 0
	for range it {
		n++
	}
	return n
}

// HasPrefix returns true if the iterator starts with the given items. It
// stops reading at the first mismatch.
func HasPrefix[T comparable](it iter.Seq[T], prefix []T) bool {
	if len(prefix) == 0 {
		return true
	}
	i := 0
	for v := range it {
		if v != prefix[i] {
			return false
		}
		i++
		if i == len(prefix) {
			return true
		}
	}
	return false
}
