// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package lexbuf

import (
	"fmt"
)

// cursor holds the tail and head of a tape together with the items that
// have been pulled from the source but not yet committed. Positions are
// absolute offsets from the start of the source.
//
// buf holds the real items at positions [off, off+len(buf)). Once the
// source has run dry, endAt is the position of the first item past the end
// and every position from there on reads as the end value without being
// stored.
type cursor[T any] struct {
	pull  func() (T, bool)
	end   T
	buf   []T
	off   int
	tail  int
	head  int
	endAt int
	m     tapeMetrics
}

func newCursor[T any](kind string, pull func() (T, bool), end T) cursor[T] {
	return cursor[T]{
		pull:  pull,
		end:   end,
		endAt: -1,
		m:     newTapeMetrics(kind),
	}
}

func (c *cursor[T]) Get() T {
	if i := c.head - c.off; i < len(c.buf) {
		c.head++
		return c.buf[i]
	}
	if c.endAt < 0 {
		if v, ok := c.pull(); ok {
			c.m.pulled.Inc()
			c.buf = append(c.buf, v)
			c.head++
			return v
		}
		c.endAt = c.off + len(c.buf)
		l.Debugf("%s: end of input at position %d", c.m.kind, c.endAt)
	}
	c.head++
	return c.end
}

func (c *cursor[T]) Unget() {
	if c.head == c.tail {
		c.m.violation("unget")
		panic(fmt.Errorf("lexbuf: %s: tail=%d head=%d: %w", c.m.kind, c.tail, c.head, ErrUngetPastTail))
	}
	c.head--
}

func (c *cursor[T]) MoveOn() {
	c.m.commits.Inc()
	c.tail = c.head
	c.release()
}

func (c *cursor[T]) GiveUp() {
	c.m.discards.Inc()
	c.head = c.tail
}

func (c *cursor[T]) Highlight() []T {
	res := make([]T, 0, c.head-c.tail)
	lo, hi := c.tail-c.off, min(c.head-c.off, len(c.buf))
	if lo < hi {
		res = append(res, c.buf[lo:hi]...)
	}
	for len(res) < c.head-c.tail {
		res = append(res, c.end)
	}
	return res
}

func (c *cursor[T]) Shrink() {
	if c.head == c.tail {
		c.m.violation("shrink")
		panic(fmt.Errorf("lexbuf: %s: tail=%d head=%d: %w", c.m.kind, c.tail, c.head, ErrShrinkEmpty))
	}
	c.tail++
	c.release()
}

// Validate returns the current highlight and moves on.
func (c *cursor[T]) Validate() []T {
	return Validate[T](c)
}

// PastEnd returns true if the item most recently returned by Get lies at
// or beyond the end of the source.
func (c *cursor[T]) PastEnd() bool {
	return c.endAt >= 0 && c.head > c.endAt
}

// EndIndicator returns the value Get returns past the end of the source.
func (c *cursor[T]) EndIndicator() T {
	return c.end
}

// Tail returns the absolute position of the tail.
func (c *cursor[T]) Tail() int {
	return c.tail
}

// Head returns the absolute position of the head.
func (c *cursor[T]) Head() int {
	return c.head
}

// release drops the buffered items behind the tail.
func (c *cursor[T]) release() {
	n := min(c.tail-c.off, len(c.buf))
	if n <= 0 {
		return
	}
	m := copy(c.buf, c.buf[n:])
	clear(c.buf[m:])
	c.buf = c.buf[:m]
	c.off += n
}

// exhaust marks the source as finished at the current read position.
func (c *cursor[T]) exhaust() {
	if c.endAt < 0 {
		c.endAt = c.off + len(c.buf)
	}
}
