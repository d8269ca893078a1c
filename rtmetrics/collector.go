/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package rtmetrics exposes passive Prometheus instrumentation for the
// engine: reactor queue depth, GSTORE slot occupancy and sweep
// duration, and ZCODEC bytes in/out. None of this instrumentation
// changes runtime behavior; a Collector with nothing scraping it costs
// a handful of atomic increments per operation and nothing else.
package rtmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the metric families the engine updates during
// normal operation. Construct one with NewCollector, register it with
// a *prometheus.Registry via Register, and pass it down to the
// asyncio, gstore and zcodec call sites that should report through it.
type Collector struct {
	reactorQueueDepth   prometheus.Gauge
	gstoreSlotOccupancy prometheus.Gauge
	gstoreSweepDuration prometheus.Histogram
	zcodecBytesIn       prometheus.Counter
	zcodecBytesOut      prometheus.Counter
}

// NewCollector builds a Collector whose metric names are prefixed with
// namespace (e.g. "fixnative"). It does not register anything with a
// registry; call Register to do that.
func NewCollector(namespace string) *Collector {
	return &Collector{
		reactorQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "asyncio",
			Name:      "reactor_queue_depth",
			Help:      "Number of pending operations queued to the reactor's worker pool.",
		}),
		gstoreSlotOccupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "gstore",
			Name:      "slot_occupancy",
			Help:      "Number of occupied slots in the GSTORE slot table.",
		}),
		gstoreSweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gstore",
			Name:      "sweep_duration_seconds",
			Help:      "Wall-clock duration of a GSTORE expiry sweep pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		zcodecBytesIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zcodec",
			Name:      "bytes_in_total",
			Help:      "Total bytes fed into the ZCODEC encoder or decoder.",
		}),
		zcodecBytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "zcodec",
			Name:      "bytes_out_total",
			Help:      "Total bytes produced by the ZCODEC encoder or decoder.",
		}),
	}
}

// Register adds every metric in c to reg. It returns ErrAlreadyRegistered
// if any of them is already registered there.
func (c *Collector) Register(reg *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		c.reactorQueueDepth,
		c.gstoreSlotOccupancy,
		c.gstoreSweepDuration,
		c.zcodecBytesIn,
		c.zcodecBytesOut,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				return ErrAlreadyRegistered.Error(err)
			}
			return err
		}
	}
	return nil
}

// SetReactorQueueDepth reports how many operations are currently
// queued to the reactor's worker pool.
func (c *Collector) SetReactorQueueDepth(n int) {
	c.reactorQueueDepth.Set(float64(n))
}

// SetGStoreSlotOccupancy reports how many slots in the GSTORE table
// are currently occupied.
func (c *Collector) SetGStoreSlotOccupancy(n int) {
	c.gstoreSlotOccupancy.Set(float64(n))
}

// ObserveGStoreSweepDuration records how long a single expiry sweep
// pass took.
func (c *Collector) ObserveGStoreSweepDuration(d time.Duration) {
	c.gstoreSweepDuration.Observe(d.Seconds())
}

// AddZCodecBytesIn accumulates bytes fed into a ZCODEC stream.
func (c *Collector) AddZCodecBytesIn(n int) {
	if n <= 0 {
		return
	}
	c.zcodecBytesIn.Add(float64(n))
}

// AddZCodecBytesOut accumulates bytes produced by a ZCODEC stream.
func (c *Collector) AddZCodecBytesOut(n int) {
	if n <= 0 {
		return
	}
	c.zcodecBytesOut.Add(float64(n))
}
