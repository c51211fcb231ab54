package stats

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vburojevic/logstat/internal/domain"
	"github.com/vburojevic/logstat/internal/filter"
	"github.com/vburojevic/logstat/internal/journal"
)

// Aggregator folds classified records into a LogReport. It holds no per-run
// state, so one Aggregator may serve concurrent Aggregate calls.
type Aggregator struct {
	classifier    *journal.Classifier
	filter        filter.Filter
	logger        *zap.Logger
	skipMalformed bool
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithLogger sets the sink for per-line diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithFilter excludes records that do not match f. Excluded records are
// counted in LogReport.Filtered.
func WithFilter(f filter.Filter) Option {
	return func(a *Aggregator) {
		a.filter = f
	}
}

// WithSkipMalformed makes lines that cannot be decoded at all count towards
// LogReport.Rejected instead of aborting the run.
func WithSkipMalformed(skip bool) Option {
	return func(a *Aggregator) {
		a.skipMalformed = skip
	}
}

// New creates an aggregator
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		classifier: journal.NewClassifier(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate consumes src to exhaustion. On a hard failure (a blank,
// oversized or undecodable line) it returns a *domain.LineError and no
// report, unless malformed lines are skipped.
func (a *Aggregator) Aggregate(ctx context.Context, src LineSource) (*domain.LogReport, error) {
	report := domain.NewLogReport()
	name := sourceName(src)

	lineNum := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !errors.Is(err, ErrLineTooLong) {
			if name != "" {
				return nil, fmt.Errorf("reading %s: %w", name, err)
			}
			return nil, fmt.Errorf("reading input: %w", err)
		}
		lineNum++

		var rec domain.Record
		if err == nil {
			rec, err = a.classifier.Classify(line)
		}
		if err != nil {
			lerr := domain.NewLineError(name, lineNum, line, err)
			if !a.skipMalformed {
				return nil, lerr
			}
			report.Rejected++
			a.logger.Warn("skipping malformed line", zap.Error(lerr))
			continue
		}

		if inv, ok := rec.(domain.Invalid); ok {
			a.logger.Debug("unrecognized record",
				zap.String("source", name),
				zap.Int("line", lineNum),
				zap.String("identifier", inv.Identifier),
				zap.String("error", inv.Error))
		}

		if a.filter != nil && !a.filter.Match(rec) {
			report.Filtered++
			continue
		}

		Fold(report, rec)
	}

	return report, nil
}

// AggregateAll aggregates each source independently, at most workers at a
// time (<= 0 means unbounded), and merges the partial reports. The first
// hard failure cancels the remaining work.
func (a *Aggregator) AggregateAll(ctx context.Context, sources []LineSource, workers int) (*domain.LogReport, error) {
	reports := make([]*domain.LogReport, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, src := range sources {
		g.Go(func() error {
			r, err := a.Aggregate(gctx, src)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := domain.NewLogReport()
	for _, r := range reports {
		merged.Merge(r)
	}
	return merged, nil
}

// Fold adds one record to the report
func Fold(report *domain.LogReport, rec domain.Record) {
	c := rec.Fields()

	report.Total.Line++
	report.Total.Facility[rec.Facility()]++
	report.Total.MessageLength += len(c.Message)

	unit, ok := domain.ServiceUnit(rec)
	if !ok {
		return
	}
	s := report.ServiceFor(unit)
	s.Line++
	s.MessageLength += len(c.Message)
	s.Priorities[c.Priority]++
}

func sourceName(src LineSource) string {
	if n, ok := src.(Named); ok {
		return n.Name()
	}
	return ""
}
