// Copyright (C) 2026 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package lexbuf

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	storeRead = "read"
	storeIter = "iter"
)

var (
	metricItemsPulled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexbuf",
		Subsystem: "tape",
		Name:      "items_pulled_total",
		Help:      "Total number of items pulled from backing sources",
	}, []string{"store"})
	metricCommits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexbuf",
		Subsystem: "tape",
		Name:      "commits_total",
		Help:      "Total number of highlights committed with MoveOn",
	}, []string{"store"})
	metricDiscards = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexbuf",
		Subsystem: "tape",
		Name:      "discards_total",
		Help:      "Total number of highlights abandoned with GiveUp",
	}, []string{"store"})
	metricViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexbuf",
		Subsystem: "tape",
		Name:      "contract_violations_total",
		Help:      "Total number of Unget or Shrink calls on an empty highlight",
	}, []string{"store", "op"})
)

func init() {
	// Register the per store counters so that they are present even when
	// zero.
	for _, kind := range []string{storeRead, storeIter} {
		metricItemsPulled.WithLabelValues(kind)
		metricCommits.WithLabelValues(kind)
		metricDiscards.WithLabelValues(kind)
	}
}

type tapeMetrics struct {
	kind     string
	pulled   prometheus.Counter
	commits  prometheus.Counter
	discards prometheus.Counter
}

func newTapeMetrics(kind string) tapeMetrics {
	return tapeMetrics{
		kind:     kind,
		pulled:   metricItemsPulled.WithLabelValues(kind),
		commits:  metricCommits.WithLabelValues(kind),
		discards: metricDiscards.WithLabelValues(kind),
	}
}

func (m tapeMetrics) violation(op string) {
	metricViolations.WithLabelValues(m.kind, op).Inc()
}
