package metrics

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Gauge ...
	Gauge instrument = iota
	// Counter ...
	Counter
	// Histogram ...
	Histogram
)

var (
	// ErrInstrumentNotSupported signals the specified instrument is not yet supported
	ErrInstrumentNotSupported = errors.New("instrument type unsupported")
	// ErrInstrumentTypeMismatch signal the type of the instrument is not expected
	ErrInstrumentTypeMismatch = errors.New("instrument is not of the expected type")
)

var (
	cycleCounter         *prometheus.CounterVec
	cycleTimeHistogram   *prometheus.HistogramVec
	instructionCounter   *prometheus.CounterVec
	batchCounter         *prometheus.CounterVec
	droppedMarketCounter prometheus.Counter
	matchFailureCounter  prometheus.Counter
)

// abstract prometheus types
type instrument int

// combine all possible prometheus options + way to differentiate between regular or vector type
type instrumentOpts struct {
	opts    prometheus.Opts
	buckets []float64
	vectors []string
}

type mi struct {
	gaugeV     *prometheus.GaugeVec
	gauge      prometheus.Gauge
	counterV   *prometheus.CounterVec
	counter    prometheus.Counter
	histogramV *prometheus.HistogramVec
	histogram  prometheus.Histogram
}

// InstrumentOption - vararg for instrument options setting
type InstrumentOption func(o *instrumentOpts)

// Vectors - configuration used to create a vector of a given interface, slice of label names
func Vectors(labels ...string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.vectors = labels
	}
}

// Help - set the help field on instrument
func Help(help string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Help = help
	}
}

// Namespace - set namespace
func Namespace(ns string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Namespace = ns
	}
}

// Buckets - specific to histogram type
func Buckets(b []float64) InstrumentOption {
	return func(o *instrumentOpts) {
		o.buckets = b
	}
}

// AddInstrument configure and register a new metrics instrument
func AddInstrument(t instrument, name string, opts ...InstrumentOption) (*mi, error) {
	var col prometheus.Collector
	ret := mi{}
	opt := instrumentOpts{
		opts: prometheus.Opts{
			Name: name,
		},
	}
	for _, o := range opts {
		o(&opt)
	}
	switch t {
	case Gauge:
		o := opt.gauge()
		if len(opt.vectors) == 0 {
			ret.gauge = prometheus.NewGauge(o)
			col = ret.gauge
		} else {
			ret.gaugeV = prometheus.NewGaugeVec(o, opt.vectors)
			col = ret.gaugeV
		}
	case Counter:
		o := opt.counter()
		if len(opt.vectors) == 0 {
			ret.counter = prometheus.NewCounter(o)
			col = ret.counter
		} else {
			ret.counterV = prometheus.NewCounterVec(o, opt.vectors)
			col = ret.counterV
		}
	case Histogram:
		o := opt.histogram()
		if len(opt.vectors) == 0 {
			ret.histogram = prometheus.NewHistogram(o)
			col = ret.histogram
		} else {
			ret.histogramV = prometheus.NewHistogramVec(o, opt.vectors)
			col = ret.histogramV
		}
	default:
		return nil, ErrInstrumentNotSupported
	}
	if err := prometheus.Register(col); err != nil {
		return nil, err
	}
	return &ret, nil
}

// Start enable metrics (given config)
func Start(conf Config) {
	if !conf.Enabled.Get() {
		return
	}
	if err := setupMetrics(); err != nil {
		panic("could not set up metrics")
	}
	http.Handle(conf.Path, promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", conf.Port), nil))
	}()
}

func (i instrumentOpts) gauge() prometheus.GaugeOpts {
	return prometheus.GaugeOpts(i.opts)
}

func (i instrumentOpts) counter() prometheus.CounterOpts {
	return prometheus.CounterOpts(i.opts)
}

func (i instrumentOpts) histogram() prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Name:        i.opts.Name,
		Namespace:   i.opts.Namespace,
		Subsystem:   i.opts.Subsystem,
		ConstLabels: i.opts.ConstLabels,
		Help:        i.opts.Help,
		Buckets:     i.buckets,
	}
}

// Gauge returns a prometheus Gauge instrument
func (m mi) Gauge() (prometheus.Gauge, error) {
	if m.gauge == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.gauge, nil
}

// Counter returns a prometheus Counter instrument
func (m mi) Counter() (prometheus.Counter, error) {
	if m.counter == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counter, nil
}

// CounterVec returns a prometheus CounterVec instrument
func (m mi) CounterVec() (*prometheus.CounterVec, error) {
	if m.counterV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counterV, nil
}

func (m mi) HistogramVec() (*prometheus.HistogramVec, error) {
	if m.histogramV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.histogramV, nil
}

func setupMetrics() error {
	h, err := AddInstrument(
		Counter,
		"cycles_total",
		Namespace("crank"),
		Help("Number of completed crank cycles"),
		Vectors("kind", "status"),
	)
	if err != nil {
		return err
	}
	cc, err := h.CounterVec()
	if err != nil {
		return err
	}
	cycleCounter = cc

	h, err = AddInstrument(
		Histogram,
		"cycle_duration_seconds",
		Namespace("crank"),
		Help("Duration of one crank cycle"),
		Buckets([]float64{0.1, 0.5, 1, 5, 15, 60, 300}),
		Vectors("kind"),
	)
	if err != nil {
		return err
	}
	ch, err := h.HistogramVec()
	if err != nil {
		return err
	}
	cycleTimeHistogram = ch

	h, err = AddInstrument(
		Counter,
		"instructions_total",
		Namespace("crank"),
		Help("Number of instructions submitted, by ledger program method"),
		Vectors("method"),
	)
	if err != nil {
		return err
	}
	ic, err := h.CounterVec()
	if err != nil {
		return err
	}
	instructionCounter = ic

	h, err = AddInstrument(
		Counter,
		"batches_total",
		Namespace("crank"),
		Help("Number of instruction batches submitted"),
		Vectors("status"),
	)
	if err != nil {
		return err
	}
	bc, err := h.CounterVec()
	if err != nil {
		return err
	}
	batchCounter = bc

	h, err = AddInstrument(
		Counter,
		"dropped_markets_total",
		Namespace("crank"),
		Help("Number of markets excluded from a cycle because their record could not be read"),
	)
	if err != nil {
		return err
	}
	dm, err := h.Counter()
	if err != nil {
		return err
	}
	droppedMarketCounter = dm

	h, err = AddInstrument(
		Counter,
		"order_match_failures_total",
		Namespace("crank"),
		Help("Number of per-order matching failures recovered during cycles"),
	)
	if err != nil {
		return err
	}
	mf, err := h.Counter()
	if err != nil {
		return err
	}
	matchFailureCounter = mf

	return nil
}

// CycleInc increments the cycle counter for the given crank kind and outcome.
func CycleInc(kind, status string) {
	if cycleCounter == nil {
		return
	}
	cycleCounter.WithLabelValues(kind, status).Inc()
}

// CycleTimeObserve records the duration of one cycle.
func CycleTimeObserve(kind string, d time.Duration) {
	if cycleTimeHistogram == nil {
		return
	}
	cycleTimeHistogram.WithLabelValues(kind).Observe(d.Seconds())
}

// InstructionsAdd counts instructions submitted for a ledger program method.
func InstructionsAdd(method string, n int) {
	if instructionCounter == nil {
		return
	}
	instructionCounter.WithLabelValues(method).Add(float64(n))
}

// BatchInc counts one batch submission attempt by outcome.
func BatchInc(status string) {
	if batchCounter == nil {
		return
	}
	batchCounter.WithLabelValues(status).Inc()
}

// DroppedMarketsAdd counts markets excluded from the current cycle.
func DroppedMarketsAdd(n int) {
	if droppedMarketCounter == nil {
		return
	}
	droppedMarketCounter.Add(float64(n))
}

// MatchFailureInc counts one recovered per-order matching failure.
func MatchFailureInc() {
	if matchFailureCounter == nil {
		return
	}
	matchFailureCounter.Inc()
}
