// Package observe holds the OpenTelemetry instruments recorded during a
// generation run and a small helper that reads them back for a CLI summary.
//
// Tests should build [Metrics] with [NewMetrics] over their own
// [metric.MeterProvider]. [Noop] is for callers that do not care.
package observe

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const meterName = "github.com/nathoo/duelset"

// Instrument names.
const (
	PairsDrawn       = "duelset.pairs.drawn"
	PairsSelfDropped = "duelset.pairs.self_dropped"
	RecordsWritten   = "duelset.records.written"
	GenerateDuration = "duelset.generate.duration"
)

// Metrics holds the instruments for one process. Safe for concurrent use.
type Metrics struct {
	// PairsDrawn counts index pairs drawn for side A and B, before filtering.
	PairsDrawn metric.Int64Counter

	// PairsSelfDropped counts drawn pairs discarded because a == b.
	PairsSelfDropped metric.Int64Counter

	// RecordsWritten counts labeled records produced. Use with attribute:
	//   attribute.Int("label", 0|1)
	RecordsWritten metric.Int64Counter

	// GenerateDuration tracks wall time of a full Generate call in seconds.
	GenerateDuration metric.Float64Histogram
}

var durationBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.PairsDrawn, err = m.Int64Counter(PairsDrawn,
		metric.WithDescription("Index pairs drawn before self-pair filtering."),
	); err != nil {
		return nil, err
	}
	if met.PairsSelfDropped, err = m.Int64Counter(PairsSelfDropped,
		metric.WithDescription("Drawn pairs dropped because both sides were the same creature."),
	); err != nil {
		return nil, err
	}
	if met.RecordsWritten, err = m.Int64Counter(RecordsWritten,
		metric.WithDescription("Labeled matchup records produced, by label."),
	); err != nil {
		return nil, err
	}
	if met.GenerateDuration, err = m.Float64Histogram(GenerateDuration,
		metric.WithDescription("Wall time of one dataset generation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// Noop returns instruments that record nothing.
func Noop() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider())
	return m
}

// RecordLabel adds n records with the given label.
func (m *Metrics) RecordLabel(ctx context.Context, label int, n int64) {
	if n == 0 {
		return
	}
	m.RecordsWritten.Add(ctx, n, metric.WithAttributes(attribute.Int("label", label)))
}

// Summary is a flattened snapshot of the run instruments.
type Summary struct {
	Drawn       int64
	SelfDropped int64
	Written     map[int]int64 // label → count
	Runs        uint64
	Seconds     float64 // summed generate duration
}

// Total returns the number of records across both labels.
func (s Summary) Total() int64 {
	var n int64
	for _, v := range s.Written {
		n += v
	}
	return n
}

// String renders the summary as a single line.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "drawn=%d self_dropped=%d written=%d", s.Drawn, s.SelfDropped, s.Total())
	fmt.Fprintf(&b, " y0=%d y1=%d", s.Written[0], s.Written[1])
	if s.Runs > 0 {
		fmt.Fprintf(&b, " duration=%.3fs", s.Seconds)
	}
	return b.String()
}

// Collect reads the current values of the run instruments from reader.
func Collect(ctx context.Context, reader *sdkmetric.ManualReader) (Summary, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return Summary{}, fmt.Errorf("collecting metrics: %w", err)
	}
	s := Summary{Written: map[int]int64{}}
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			switch data := met.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					switch met.Name {
					case PairsDrawn:
						s.Drawn += dp.Value
					case PairsSelfDropped:
						s.SelfDropped += dp.Value
					case RecordsWritten:
						label := 0
						if v, ok := dp.Attributes.Value("label"); ok {
							label = int(v.AsInt64())
						}
						s.Written[label] += dp.Value
					}
				}
			case metricdata.Histogram[float64]:
				if met.Name != GenerateDuration {
					continue
				}
				for _, dp := range data.DataPoints {
					s.Runs += dp.Count
					s.Seconds += dp.Sum
				}
			}
		}
	}
	return s, nil
}
