// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "github.com/prometheus/client_golang/prometheus"

// noop satisfies every meter interface.
type noop struct{}

func (noop) Add(int64)                                  {}
func (noop) Set(int64)                                  {}
func (noop) Observe(int64)                              {}
func (noop) AddWithLabel(int64, map[string]string)      {}
func (noop) SetWithLabel(int64, map[string]string)      {}
func (noop) ObserveWithLabels(int64, map[string]string) {}

type counter struct{ c prometheus.Counter }

// Add ignores negative deltas, prometheus counters only grow.
func (m counter) Add(i int64) {
	if i > 0 {
		m.c.Add(float64(i))
	}
}

type counterVec struct{ c *prometheus.CounterVec }

func (m counterVec) AddWithLabel(i int64, labels map[string]string) {
	if i > 0 {
		m.c.With(labels).Add(float64(i))
	}
}

type gauge struct{ g prometheus.Gauge }

func (m gauge) Add(i int64) { m.g.Add(float64(i)) }
func (m gauge) Set(i int64) { m.g.Set(float64(i)) }

type gaugeVec struct{ g *prometheus.GaugeVec }

func (m gaugeVec) AddWithLabel(i int64, labels map[string]string) { m.g.With(labels).Add(float64(i)) }
func (m gaugeVec) SetWithLabel(i int64, labels map[string]string) { m.g.With(labels).Set(float64(i)) }

type histogram struct{ h prometheus.Histogram }

func (m histogram) Observe(i int64) { m.h.Observe(float64(i)) }

type histogramVec struct{ h *prometheus.HistogramVec }

func (m histogramVec) ObserveWithLabels(i int64, labels map[string]string) {
	m.h.With(labels).Observe(float64(i))
}
