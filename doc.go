// Package glassgen searches oxide glass composition space for glasses whose
// predicted properties fall inside target windows.
//
// A Pipeline runs four stages in order:
//
//  1. Bounds: intersect the per-oxide upper bounds of every training dataset
//     (bounds.Intersect), so sampled glasses stay inside the region all
//     models were trained on.
//  2. Sample: draw random compositions on the simplex below those bounds
//     (sampler.Sampler).
//  3. Evaluate: predict every property once on the whole batch
//     (property.Evaluator).
//  4. Screen: keep the rows inside every enabled window (screen.Screener).
//
// Intermediate results are returned in a Report.
//
// # Quick Start
//
//	store := blobstore.NewLocalStore("./data")
//	reg, _ := property.LoadRegistry(ctx, store, "properties.json")
//	evals, _ := reg.Resolve(ctx, store, oxides, nil)
//
//	p, _ := glassgen.New(glassgen.Config{
//	    Oxides:     oxides,
//	    Datasets:   datasets,
//	    Sampler:    sampler.DefaultConfig(),
//	    Evaluators: evals,
//	    Windows: []screen.Window{
//	        {Property: "E", Min: 80, Max: 120, Enabled: true},
//	    },
//	}, glassgen.WithLogger(glassgen.NewTextLogger(slog.LevelInfo)))
//
//	report, _ := p.Run(ctx)
//	fmt.Println(report.Result.Len(), "of", report.Batch.Len())
//
// Runs are deterministic: the same configuration and seed always produce the
// same report, independent of the number of workers.
package glassgen
