// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"fmt"
	"io"
	"os"

	lz4 "github.com/pierrec/lz4/v4"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type inputOptions struct {
	lz4 bool
	nfc bool
}

// open returns a reader for the named file, or standard input for "-",
// with decompression and normalization applied as requested.
func (o inputOptions) open(name string) (io.ReadCloser, error) {
	var rc io.ReadCloser = os.Stdin
	if name != "-" {
		fd, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		rc = fd
	}
	l.Debugf("input %s (lz4=%v nfc=%v)", name, o.lz4, o.nfc)
	return readCloser{o.wrap(rc), rc}, nil
}

func (o inputOptions) wrap(r io.Reader) io.Reader {
	if o.lz4 {
		r = lz4.NewReader(r)
	}
	if o.nfc {
		r = transform.NewReader(r, norm.NFC)
	}
	return r
}

type readCloser struct {
	io.Reader
	io.Closer
}
