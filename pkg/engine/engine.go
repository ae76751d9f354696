// Package engine runs the enumerate-classify-filter pipeline for one
// configuration and records what it did.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/regnet-monotone/pkg/config"
	"github.com/dd0wney/regnet-monotone/pkg/enumerate"
	"github.com/dd0wney/regnet-monotone/pkg/filter"
	"github.com/dd0wney/regnet-monotone/pkg/logging"
	"github.com/dd0wney/regnet-monotone/pkg/metrics"
	"github.com/dd0wney/regnet-monotone/pkg/monotone"
	"github.com/dd0wney/regnet-monotone/pkg/network"
)

// Result is the output of one run. Space and Set are never mutated after
// Run returns.
type Result struct {
	RunID      string
	Space      *network.Space
	Set        *filter.Set
	Candidates uint64
	Duration   time.Duration
}

// Engine runs the pipeline.
type Engine struct {
	cfg     config.Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the metrics registry. The default records nothing.
func WithMetrics(r *metrics.Registry) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// New creates an engine for cfg.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildSpace returns the canonical space or the configured grid.
func (e *Engine) BuildSpace() (*network.Space, error) {
	if e.cfg.Canonical() {
		return network.Build()
	}
	return network.BuildGrid(e.cfg.Grid.MaxActivator, e.cfg.Grid.MaxRepressor)
}

// Run builds the space, enumerates every candidate and keeps the monotonic
// ones. Workers above one use the parallel filter; the result is identical.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	log := e.logger.With(logging.Component("engine"), logging.RunID(runID))

	res, err := e.run(ctx, runID, log)
	if err != nil {
		if e.metrics != nil {
			e.metrics.RecordRunError()
		}
		log.Error("run failed", logging.Error(err))
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.RecordRun(res.Space.Len(), res.Candidates, res.Set.Len(), res.Duration)
	}
	return res, nil
}

func (e *Engine) run(ctx context.Context, runID string, log logging.Logger) (*Result, error) {
	space, err := e.BuildSpace()
	if err != nil {
		return nil, fmt.Errorf("engine: build space: %w", err)
	}

	enum, err := enumerate.New(space)
	if err != nil {
		return nil, fmt.Errorf("engine: enumerate: %w", err)
	}

	log.Info("starting run",
		logging.SpaceSize(space.Len()),
		logging.Uint64("candidates", enum.Count()),
		logging.Int("workers", e.cfg.Workers),
	)

	timer := logging.StartTimer(log, "filter complete")

	var set *filter.Set
	if e.cfg.Workers > 1 {
		set, err = filter.ParallelFilter(ctx, space, enum.All(), e.cfg.Workers)
		if err != nil {
			timer.EndError(err)
			return nil, fmt.Errorf("engine: filter: %w", err)
		}
	} else {
		set = filter.Filter(space, enum.All())
	}

	duration := timer.End(logging.Count(set.Len()))

	if log.Enabled(logging.DebugLevel) {
		for c := range enum.All() {
			v := monotone.Explain(space, c)
			log.Debug("classified",
				logging.Ordinal(c.Ordinal()),
				logging.String("bits", c.String()),
				logging.Verdict(v.Monotonic),
				logging.String("reason", v.Reason.String()),
			)
		}
	}

	return &Result{
		RunID:      runID,
		Space:      space,
		Set:        set,
		Candidates: enum.Count(),
		Duration:   duration,
	}, nil
}

// Explain classifies the candidate with the given label over the
// configured space.
func (e *Engine) Explain(label string) (enumerate.Candidate, monotone.Verdict, *network.Space, error) {
	ordinal, err := enumerate.ParseLabel(label)
	if err != nil {
		return enumerate.Candidate{}, monotone.Verdict{}, nil, err
	}
	space, err := e.BuildSpace()
	if err != nil {
		return enumerate.Candidate{}, monotone.Verdict{}, nil, err
	}
	enum, err := enumerate.New(space)
	if err != nil {
		return enumerate.Candidate{}, monotone.Verdict{}, nil, err
	}
	c, err := enum.At(ordinal)
	if err != nil {
		return enumerate.Candidate{}, monotone.Verdict{}, nil, err
	}
	return c, monotone.Explain(space, c), space, nil
}
