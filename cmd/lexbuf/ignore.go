// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"fmt"

	"github.com/syncthing/lexbuf/lib/ignore"
)

type ignoreCommand struct {
	Patterns string   `arg:"" type:"existingfile" help:"Ignore file to load"`
	Paths    []string `arg:"" help:"Paths to check, relative to the ignore file's directory"`
}

func (c *ignoreCommand) Run() error {
	m := ignore.New(false)
	if err := m.Load(c.Patterns); err != nil {
		return err
	}
	for _, path := range c.Paths {
		verdict := "kept"
		if m.Match(path) {
			verdict = "ignored"
		}
		fmt.Printf("%s\t%s\n", verdict, path)
	}
	return nil
}
