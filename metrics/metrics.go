// Copyright (c) 2026 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes the accrual engine's meters. Every meter is a no-op
// until Enable is called, after which meters are backed by a private
// prometheus registry.
package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/rewards/log"
)

const namespace = "rewards"

var (
	logger = log.WithContext("pkg", "metrics")
	active atomic.Pointer[registry]
)

// Buckets for histograms, in milliseconds.
var (
	BucketOps      = []int64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
	BucketHTTPReqs = []int64{
		0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
		150, 200, 300, 400, 500, 750, 1000,
		1500, 2000, 3000, 4000, 5000, 10000,
	}
)

type (
	CountMeter        interface{ Add(int64) }
	CountVecMeter     interface{ AddWithLabel(int64, map[string]string) }
	HistogramMeter    interface{ Observe(int64) }
	HistogramVecMeter interface {
		ObserveWithLabels(int64, map[string]string)
	}
	GaugeMeter interface {
		Add(int64)
		Set(int64)
	}
	GaugeVecMeter interface {
		AddWithLabel(int64, map[string]string)
		SetWithLabel(int64, map[string]string)
	}
)

// Enable switches meter creation to prometheus. Calling it again is a no-op.
func Enable() {
	if active.Load() != nil {
		return
	}
	active.CompareAndSwap(nil, newRegistry())
}

// Enabled reports whether meters are recorded.
func Enabled() bool { return active.Load() != nil }

// HTTPHandler serves the registered meters in the prometheus text format,
// or answers 404 while metrics are disabled.
func HTTPHandler() http.Handler {
	r := active.Load()
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{ErrorLog: promLogger{}})
}

// Gatherer returns the registry backing the meters, nil while disabled.
func Gatherer() prometheus.Gatherer {
	if r := active.Load(); r != nil {
		return r.reg
	}
	return nil
}

type registry struct {
	reg    *prometheus.Registry
	lock   sync.Mutex
	meters map[string]any
}

func newRegistry() *registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)
	return &registry{reg: reg, meters: make(map[string]any)}
}

// load returns the meter registered under name, building it with create on first use.
// A name reused for a different kind of meter yields a no-op.
func load[T any](name string, create func() (prometheus.Collector, T)) T {
	r := active.Load()
	if r == nil {
		return any(noop{}).(T)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if m, ok := r.meters[name]; ok {
		if meter, ok := m.(T); ok {
			return meter
		}
		logger.Warn("metric registered with another kind", "name", name)
		return any(noop{}).(T)
	}

	collector, meter := create()
	if err := r.reg.Register(collector); err != nil {
		logger.Warn("unable to register metric", "name", name, "err", err)
		return any(noop{}).(T)
	}
	r.meters[name] = meter
	return meter
}

func Counter(name string) CountMeter {
	return load(name, func() (prometheus.Collector, CountMeter) {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		return c, counter{c}
	})
}

func CounterVec(name string, labels []string) CountVecMeter {
	return load(name, func() (prometheus.Collector, CountVecMeter) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return c, counterVec{c}
	})
}

func Gauge(name string) GaugeMeter {
	return load(name, func() (prometheus.Collector, GaugeMeter) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		return g, gauge{g}
	})
}

func GaugeVec(name string, labels []string) GaugeVecMeter {
	return load(name, func() (prometheus.Collector, GaugeVecMeter) {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
		return g, gaugeVec{g}
	})
}

func Histogram(name string, buckets []int64) HistogramMeter {
	return load(name, func() (prometheus.Collector, HistogramMeter) {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   toFloats(buckets),
		})
		return h, histogram{h}
	})
}

func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return load(name, func() (prometheus.Collector, HistogramVecMeter) {
		h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   toFloats(buckets),
		}, labels)
		return h, histogramVec{h}
	})
}

// LazyLoad defers building a meter to its first use, so package level meters
// pick up whether Enable was called by then.
func LazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter { return GaugeVec(name, labels) })
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter { return Histogram(name, buckets) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return HistogramVec(name, labels, buckets) })
}

func toFloats(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return nil
	}
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = float64(b)
	}
	return out
}

type promLogger struct{}

func (promLogger) Println(v ...any) { logger.Warn("metrics handler", "err", v) }
