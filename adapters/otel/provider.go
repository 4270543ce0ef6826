// Package otel mirrors monitor instruments into OpenTelemetry.
//
// Monitors created through NewProviderFunc keep their in-memory gauges and
// counters, so snapshots keep working, and every accepted update is also
// forwarded to an Int64UpDownCounter (gauges) or an Int64Histogram (counters)
// of the given meter. Each measurement carries the monitor.name and
// monitor.category attributes.
package otel

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ygrebnov/stopwatch/metrics"
	"github.com/ygrebnov/stopwatch/monitor"
	"github.com/ygrebnov/stopwatch/unit"
)

// DefaultInstrumentationName is the meter name used by callers that don't pick their own.
const DefaultInstrumentationName = "github.com/ygrebnov/stopwatch"

// DefaultPrefix is prepended to instrument names.
const DefaultPrefix = "stopwatch."

const Namespace = "otel"

var ErrNilMeter = errors.New(Namespace + ": nil meter")

var log = logrus.WithField("prefix", "otel")

type config struct {
	prefix string
	attrs  []attribute.KeyValue
}

// Option configures NewProviderFunc.
type Option func(*config)

// WithPrefix sets the instrument name prefix.
func WithPrefix(p string) Option {
	return func(c *config) { c.prefix = p }
}

// WithAttributes adds attributes to every measurement.
func WithAttributes(kv ...attribute.KeyValue) Option {
	return func(c *config) { c.attrs = append(c.attrs, kv...) }
}

// instruments holds the OpenTelemetry instruments shared by all monitors, one per metric name.
type instruments struct {
	meter  metric.Meter
	prefix string

	mu         sync.Mutex
	upDowns    map[string]metric.Int64UpDownCounter
	histograms map[string]metric.Int64Histogram
}

func (in *instruments) upDown(name string, cfg metrics.InstrumentConfig) (metric.Int64UpDownCounter, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if c, ok := in.upDowns[name]; ok {
		return c, nil
	}
	c, err := in.meter.Int64UpDownCounter(in.prefix+name,
		metric.WithDescription(cfg.Description),
		metric.WithUnit(ucum(cfg.Unit)),
	)
	if err != nil {
		return nil, err
	}
	in.upDowns[name] = c
	return c, nil
}

func (in *instruments) histogram(name string, cfg metrics.InstrumentConfig) (metric.Int64Histogram, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if h, ok := in.histograms[name]; ok {
		return h, nil
	}
	h, err := in.meter.Int64Histogram(in.prefix+name,
		metric.WithDescription(cfg.Description),
		metric.WithUnit(ucum(cfg.Unit)),
	)
	if err != nil {
		return nil, err
	}
	in.histograms[name] = h
	return h, nil
}

// ucum renders u as a UCUM unit string.
func ucum(u unit.Unit) string {
	if u.Dimension() == unit.Count {
		return "1"
	}
	return u.Name()
}

// NewProviderFunc returns a monitor.ProviderFunc whose providers mirror into meter.
// The well-known concurrency and performances instruments are created eagerly so
// that registration errors surface here.
func NewProviderFunc(meter metric.Meter, opts ...Option) (monitor.ProviderFunc, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	cfg := config{prefix: DefaultPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	in := &instruments{
		meter:      meter,
		prefix:     cfg.prefix,
		upDowns:    make(map[string]metric.Int64UpDownCounter),
		histograms: make(map[string]metric.Int64Histogram),
	}
	gaugeCfg := metrics.ApplyOptions(unit.Unary, metrics.WithDescription("in-flight executions"))
	if _, err := in.upDown(monitor.Concurrency, gaugeCfg); err != nil {
		return nil, err
	}
	counterCfg := metrics.ApplyOptions(unit.Nanos, metrics.WithDescription("completed execution durations"))
	if _, err := in.histogram(monitor.Performances, counterCfg); err != nil {
		return nil, err
	}

	return func(key monitor.Key) metrics.Provider {
		attrs := make([]attribute.KeyValue, 0, len(cfg.attrs)+2)
		attrs = append(attrs, cfg.attrs...)
		attrs = append(attrs,
			attribute.String("monitor.name", key.Name),
			attribute.String("monitor.category", key.Category),
		)
		return &Provider{
			basic:    metrics.NewBasicProvider(),
			in:       in,
			set:      metric.WithAttributeSet(attribute.NewSet(attrs...)),
			gauges:   make(map[string]metrics.Gauge),
			counters: make(map[string]metrics.Counter),
		}
	}, nil
}

// Provider is a metrics.Provider and metrics.Inspector backed by a metrics.BasicProvider
// and mirrored into OpenTelemetry instruments.
type Provider struct {
	basic *metrics.BasicProvider
	in    *instruments
	set   metric.MeasurementOption

	mu       sync.Mutex
	gauges   map[string]metrics.Gauge
	counters map[string]metrics.Counter
}

var (
	_ metrics.Provider  = (*Provider)(nil)
	_ metrics.Inspector = (*Provider)(nil)
)

func (p *Provider) Gauge(name string, opts ...metrics.InstrumentOption) metrics.Gauge {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.gauges[name]; ok {
		return g
	}
	g := p.basic.Gauge(name, opts...)
	ud, err := p.in.upDown(name, metrics.ApplyOptions(g.Unit(), opts...))
	if err != nil {
		log.WithError(err).WithField("gauge", name).Warn("OpenTelemetry instrument unavailable, gauge is not mirrored")
		p.gauges[name] = g
		return g
	}
	mg := &gauge{Gauge: g, ud: ud, set: p.set}
	p.gauges[name] = mg
	return mg
}

func (p *Provider) Counter(name string, opts ...metrics.InstrumentOption) metrics.Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[name]; ok {
		return c
	}
	c := p.basic.Counter(name, opts...)
	h, err := p.in.histogram(name, metrics.ApplyOptions(c.Unit(), opts...))
	if err != nil {
		log.WithError(err).WithField("counter", name).Warn("OpenTelemetry instrument unavailable, counter is not mirrored")
		p.counters[name] = c
		return c
	}
	mc := &counter{Counter: c, h: h, set: p.set}
	p.counters[name] = mc
	return mc
}

func (p *Provider) List() []metrics.InstrumentEntry { return p.basic.List() }

type gauge struct {
	metrics.Gauge
	ud  metric.Int64UpDownCounter
	set metric.MeasurementOption
}

func (g *gauge) Increment(u unit.Unit) {
	g.Gauge.Increment(u)
	if d, err := unit.Convert(1, u, g.Unit()); err == nil {
		g.ud.Add(context.Background(), d, g.set)
	}
}

func (g *gauge) Decrement(u unit.Unit) {
	g.Gauge.Decrement(u)
	if d, err := unit.Convert(1, u, g.Unit()); err == nil {
		g.ud.Add(context.Background(), -d, g.set)
	}
}

type counter struct {
	metrics.Counter
	h   metric.Int64Histogram
	set metric.MeasurementOption
}

func (c *counter) Add(value int64, u unit.Unit) error {
	if err := c.Counter.Add(value, u); err != nil {
		return err
	}
	v, err := unit.Convert(value, u, c.Unit())
	if err != nil {
		return err
	}
	c.h.Record(context.Background(), v, c.set)
	return nil
}
