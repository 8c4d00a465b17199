// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lexbuf provides a read-once tape over a stream of items, to be
// used as the input layer of hand written scanners.
//
// A LexBuf can be thought of as an infinite read-only tape with two
// pointers on it, the tail and the head, delimiting the current highlight
// [tail, head). Get extends the highlight to the right, Unget shrinks it
// from the right, GiveUp empties it by moving the head back to the tail and
// MoveOn empties it by moving the tail forward to the head. Once the tail
// has moved past an item that item is gone for good.
//
// Calling Unget with an empty highlight or Shrink with an empty highlight
// is a bug in the calling scanner and panics. The panic value is an error
// wrapping ErrUngetPastTail or ErrShrinkEmpty; the tape is left untouched.
//
// A LexBuf is not safe for concurrent use. An Iter borrows its tape for as
// long as it is being iterated and nothing else may touch the tape in the
// meantime.
package lexbuf

import (
	"errors"
)

var (
	ErrUngetPastTail = errors.New("unget past tail")
	ErrShrinkEmpty   = errors.New("shrink of empty highlight")
)

// LexBuf is the tape contract.
type LexBuf[T any] interface {
	// Get returns the next item and moves the head forward, adding the
	// item to the highlight. At the end of input it returns the store's
	// end value, still moving the head.
	Get() T

	// Unget moves the head back by one item. It panics if that would move
	// the head behind the tail, i.e. if there have been more Unget than Get
	// calls since the last MoveOn, GiveUp or Shrink emptied the highlight.
	Unget()

	// MoveOn moves the tail to the head. The highlighted items are
	// committed and can not be returned to.
	MoveOn()

	// GiveUp moves the head back to the tail, so that the next Get returns
	// the first item of the abandoned highlight again.
	GiveUp()

	// Highlight returns a copy of the items in [tail, head).
	Highlight() []T

	// Shrink moves the tail forward by one item, dropping the first item
	// of the highlight. It panics if the highlight is empty.
	Shrink()
}

// EndAware is a LexBuf that knows, by position rather than by value,
// whether the item most recently returned by Get was read past the end of
// its source.
type EndAware[T any] interface {
	LexBuf[T]
	PastEnd() bool
}

// EndIndicated is a LexBuf that reports the value it returns past the end
// of its source.
type EndIndicated[T any] interface {
	LexBuf[T]
	EndIndicator() T
}

// Validate returns the current highlight and moves on.
func Validate[T any](lb LexBuf[T]) []T {
	res := lb.Highlight()
	lb.MoveOn()
	return res
}
