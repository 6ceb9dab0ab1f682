package glassgen

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/glassgen/bounds"
	"github.com/hupe1980/glassgen/composition"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/property"
	"github.com/hupe1980/glassgen/sampler"
	"github.com/hupe1980/glassgen/screen"
)

// Config is the immutable description of a screening run.
type Config struct {
	// Oxides is the global oxide set every stage works on.
	Oxides oxide.Set
	// MolarMasses defaults to oxide.DefaultMolarMasses.
	MolarMasses oxide.MolarMassTable
	// Datasets contribute their upper bounds to the intersection.
	Datasets []bounds.Dataset
	Sampler  sampler.Config
	// Evaluators are run in order, once per batch.
	Evaluators property.Evaluators
	Windows    []screen.Window
}

// Validate checks the configuration without touching any data.
func (c Config) Validate() error {
	if c.Oxides.Len() == 0 {
		return oxide.ErrEmptySet
	}
	if len(c.Evaluators) == 0 {
		return ErrNoEvaluators
	}
	seen := make(map[string]bool, len(c.Evaluators))
	for _, e := range c.Evaluators {
		if seen[e.Name()] {
			return fmt.Errorf("property %s: declared twice", e.Name())
		}
		seen[e.Name()] = true
	}
	for _, w := range c.Windows {
		if w.Enabled && !seen[w.Property] {
			return fmt.Errorf("%w: window on %q", ErrUnknownProperty, w.Property)
		}
	}
	for _, d := range c.Datasets {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return c.Sampler.Validate()
}

// StageTiming is the wall time of one stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Report holds every intermediate result of a run.
type Report struct {
	// Upper is the intersected per-oxide upper bound.
	Upper []float64
	Batch *composition.Batch
	// Properties maps property names to one value per batch row.
	Properties map[string][]float64
	Result     *screen.Result
	Timings    []StageTiming
}

// Pipeline runs bounds intersection, sampling, evaluation and screening.
// A Pipeline is safe for concurrent use; runs share no state.
type Pipeline struct {
	cfg      Config
	molar    []float64
	sampler  *sampler.Sampler
	screener *screen.Screener
	opts     options
}

// New validates cfg and prepares the stages.
func New(cfg Config, optFns ...Option) (*Pipeline, error) {
	opts := applyOptions(optFns)
	if opts.workers > 0 {
		cfg.Sampler.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, translateError(err)
	}

	table := cfg.MolarMasses
	if table == nil {
		table = oxide.DefaultMolarMasses
	}
	molar, err := table.Vector(cfg.Oxides)
	if err != nil {
		return nil, err
	}

	smp, err := sampler.New(cfg.Sampler)
	if err != nil {
		return nil, err
	}
	scr, err := screen.New(cfg.Windows, screen.WithColumns(cfg.Evaluators.Names()...))
	if err != nil {
		return nil, err
	}

	return &Pipeline{cfg: cfg, molar: molar, sampler: smp, screener: scr, opts: opts}, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Bounds runs only the intersection stage.
func (p *Pipeline) Bounds() ([]float64, error) {
	upper, err := bounds.Intersect(p.cfg.Oxides, p.cfg.Datasets...)
	return upper, translateError(err)
}

// Run executes all stages in order.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	r := &Report{Properties: make(map[string][]float64, len(p.cfg.Evaluators))}

	var upper []float64
	err := p.stage(ctx, r, StageBounds, p.cfg.Oxides.Len(), func() error {
		var err error
		upper, err = bounds.Intersect(p.cfg.Oxides, p.cfg.Datasets...)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Upper = upper
	p.opts.logger.LogBounds(ctx, p.cfg.Oxides.Names(), upper, bounds.Feasible(upper))

	var batch *composition.Batch
	err = p.stage(ctx, r, StageSample, p.cfg.Sampler.Count, func() error {
		var err error
		batch, err = p.sampler.Sample(ctx, p.cfg.Oxides, upper, p.molar)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Batch = batch

	err = p.stage(ctx, r, StageEvaluate, batch.Len(), func() error {
		for _, e := range p.cfg.Evaluators {
			start := time.Now()
			values, err := e.Evaluate(ctx, batch)
			p.opts.metricsCollector.RecordEvaluate(e.Name(), batch.Len(), time.Since(start), err)
			if err != nil {
				return err
			}
			p.opts.logger.WithProperty(e.Name()).DebugContext(ctx, "property evaluated", "duration", time.Since(start))
			r.Properties[e.Name()] = values
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var res *screen.Result
	err = p.stage(ctx, r, StageScreen, batch.Len(), func() error {
		var err error
		res, err = p.screener.Screen(batch, r.Properties)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.Result = res
	p.opts.metricsCollector.RecordScreen(res.Total, res.Len())
	p.opts.logger.LogScreen(ctx, res.Len(), res.Total)

	return r, nil
}

// stage times fn and reports it to the logger and metrics collector.
func (p *Pipeline) stage(ctx context.Context, r *Report, name string, rows int, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := translateError(fn())
	d := time.Since(start)

	r.Timings = append(r.Timings, StageTiming{Stage: name, Duration: d})
	p.opts.metricsCollector.RecordStage(name, d, err)
	p.opts.logger.LogStage(ctx, name, rows, d, err)
	return err
}
