// Package metrics exposes store activity as Prometheus collectors.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/vigor/pkg/domain"
	"github.com/aretw0/vigor/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records store activity.
type Collector struct {
	registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
	resets     prometheus.Counter
}

// New creates the collectors and registers them, together with the Go runtime collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vigor_dispatches_total",
				Help: "Total number of actions dispatched into the store",
			},
			[]string{"action"},
		),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vigor_resets_total",
			Help: "Total number of store resets",
		}),
	}
	c.registry.MustRegister(
		c.dispatches,
		c.resets,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, a := range domain.Actions() {
		c.dispatches.WithLabelValues(a.String())
	}
	return c
}

// Hooks returns lifecycle hooks that record dispatches and resets.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDispatch: func(_ context.Context, e *domain.DispatchEvent) {
			c.dispatches.WithLabelValues(e.Action.String()).Inc()
		},
		OnReset: func(context.Context, *domain.ResetEvent) {
			c.resets.Inc()
		},
	}
}

// Observe registers gauges that read the current energy and revision from d at scrape time.
func (c *Collector) Observe(d ports.Dispatcher) error {
	energy := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vigor_energy",
		Help: "Current energy held by the store",
	}, func() float64 {
		return d.State().Energy
	})
	revision := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vigor_revision",
		Help: "Number of transitions applied to the store",
	}, func() float64 {
		return float64(d.Revision())
	})

	if err := c.registry.Register(energy); err != nil {
		return err
	}
	return c.registry.Register(revision)
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
