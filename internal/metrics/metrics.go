// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics exposes Prometheus metrics for the admin console: HTTP
// requests served, calls made to the data API, and workspace loads.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "folioadmin"

// Collector owns a private registry so tests can create as many as they
// need without duplicate registration panics.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	BackendCalls    *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	WorkspaceLoads *prometheus.CounterVec
}

// New creates a collector with Go runtime and process metrics included.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		BackendCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_calls_total",
				Help:      "Calls made to the data API, by table, method and status (0 = transport error).",
			},
			[]string{"table", "method", "status"},
		),
		BackendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_call_duration_seconds",
				Help:      "Data API call duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"table", "method"},
		),
		WorkspaceLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workspace_loads_total",
				Help:      "Aggregate workspace loads, by result.",
			},
			[]string{"result"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.BackendCalls,
		c.BackendDuration,
		c.WorkspaceLoads,
	)
	return c
}

// ObserveBackendCall records one data API call. It satisfies
// restapi.Observer.
func (c *Collector) ObserveBackendCall(table, method string, status int, elapsed time.Duration) {
	c.BackendCalls.WithLabelValues(table, method, strconv.Itoa(status)).Inc()
	c.BackendDuration.WithLabelValues(table, method).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request. route is the chi route pattern,
// not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveWorkspaceLoad counts an aggregate load by outcome.
func (c *Collector) ObserveWorkspaceLoad(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.WorkspaceLoads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
