// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command lexbuf runs the scanners built on lib/lexbuf over files or
// standard input.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/syncthing/lexbuf/lib/logger"
)

var l = logger.DefaultLogger.NewFacility("main", "Main package")

type CLI struct {
	LZ4     bool `name:"lz4" env:"LEXBUF_LZ4" help:"Input is compressed with LZ4 (frame format)"`
	NFC     bool `name:"nfc" env:"LEXBUF_NFC" help:"Normalize input to Unicode NFC before scanning"`
	Metrics bool `env:"LEXBUF_METRICS" help:"Print tape counters to standard error on exit"`
	Debug   bool `env:"LEXBUF_DEBUG" help:"Enable debug output for the lexbuf and ignore facilities"`

	Classify classifyCommand `cmd:"" help:"Split input into runs of bytes of the same class"`
	Words    wordsCommand    `cmd:"" help:"Split each input line into shell words"`
	Ignore   ignoreCommand   `cmd:"" help:"Check paths against an ignore file"`
}

func (cli CLI) AfterApply(kongCtx *kong.Context) error {
	if cli.Debug {
		for _, facility := range []string{"lexbuf", "ignore", "main"} {
			logger.DefaultLogger.SetDebug(facility, true)
		}
	}
	kongCtx.Bind(inputOptions{lz4: cli.LZ4, nfc: cli.NFC})
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("Scanners over a read-once lexing tape."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if cli.Metrics {
		if merr := writeMetrics(os.Stderr, prometheus.DefaultGatherer); merr != nil {
			l.Warnln("Gathering metrics:", merr)
		}
	}
	ctx.FatalIfErrorf(err)
}
