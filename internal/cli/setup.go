package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/glassgen"
	"github.com/hupe1980/glassgen/blobstore"
	"github.com/hupe1980/glassgen/blobstore/minio"
	"github.com/hupe1980/glassgen/blobstore/s3"
	"github.com/hupe1980/glassgen/bounds"
	"github.com/hupe1980/glassgen/dataset"
	"github.com/hupe1980/glassgen/internal/config"
	"github.com/hupe1980/glassgen/normalize"
	"github.com/hupe1980/glassgen/oxide"
	"github.com/hupe1980/glassgen/property"
	"github.com/hupe1980/glassgen/sampler"
	"github.com/hupe1980/glassgen/surrogate"
)

// OpenStore builds the blob store selected by cfg.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (blobstore.BlobStore, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return blobstore.NewLocalStore(cfg.Root), nil
	case config.BackendMemory:
		return blobstore.NewMemoryStore(), nil
	case config.BackendS3:
		var optFns []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
		}
		if cfg.AccessKey != "" {
			optFns = append(optFns, awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
				func(context.Context) (aws.Credentials, error) {
					return aws.Credentials{AccessKeyID: cfg.AccessKey, SecretAccessKey: cfg.SecretKey}, nil
				})))
		}
		return s3.New(ctx, cfg.Bucket, cfg.Prefix, optFns...)
	case config.BackendMinIO:
		client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, err
		}
		return minio.NewStore(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Setup is everything a run needs, resolved from configuration.
type Setup struct {
	Store    blobstore.BlobStore
	Oxides   oxide.Set
	Registry *property.Registry
	Pipeline glassgen.Config
}

// Resolve loads datasets, coefficient tables and model artifacts.
// A property with a dataset and no normalization gets min-max parameters
// fitted to its transformed training labels. Store errors are returned
// unmodified.
func Resolve(ctx context.Context, cfg *config.Config, store blobstore.BlobStore, logger *glassgen.Logger) (*Setup, error) {
	oxides, err := oxide.NewSet(cfg.Oxides...)
	if err != nil {
		return nil, err
	}
	molar := cfg.MolarMassTable()

	coeffs := make(map[string]property.CoefficientTable, len(cfg.Coefficients))
	for _, c := range cfg.Coefficients {
		table, err := dataset.LoadCoefficients(ctx, store, c.Path, c.Column)
		if err != nil {
			return nil, err
		}
		coeffs[c.Name] = table
	}

	specs := slices.Clone(cfg.Properties)
	if cfg.Registry != "" {
		reg, err := property.LoadRegistry(ctx, store, cfg.Registry)
		if err != nil {
			return nil, err
		}
		specs = append(reg.Specs(), specs...)
	}

	// A table shared by several properties holds one label column per
	// property; each load ignores the label columns of the others.
	labels := make(map[string][]string)
	for _, s := range specs {
		if s.Dataset != "" && s.Label != "" && !slices.Contains(labels[s.Dataset], s.Label) {
			labels[s.Dataset] = append(labels[s.Dataset], s.Label)
		}
	}

	type tableKey struct{ path, label string }
	tables := make(map[tableKey]*dataset.Dataset)
	bounded := make(map[string]bool)
	var boundSets []bounds.Dataset
	for i, s := range specs {
		if s.Dataset == "" {
			continue
		}
		key := tableKey{s.Dataset, s.Label}
		ds, ok := tables[key]
		if !ok {
			ignore := slices.DeleteFunc(slices.Clone(labels[s.Dataset]), func(l string) bool { return l == s.Label })
			ds, err = dataset.Load(ctx, store, s.Dataset, dataset.Options{Label: s.Label, Ignore: ignore})
			if err != nil {
				return nil, err
			}
			tables[key] = ds
			logger.DebugContext(ctx, "dataset loaded", "dataset", s.Dataset, "label", ds.Label, "samples", ds.Len(), "oxides", ds.Oxides.Len())
		}
		if !bounded[s.Dataset] {
			bounded[s.Dataset] = true
			boundSets = append(boundSets, ds.Bounds())
		}
		if s.Normalization.Kind == "" {
			params, err := fitNormalization(ds, s, coeffs, molar)
			if err != nil {
				return nil, err
			}
			specs[i].Normalization = params
		}
	}

	reg, err := property.NewRegistry(specs...)
	if err != nil {
		return nil, err
	}
	evals, err := reg.Resolve(ctx, store, oxides, coeffs, inferenceOptions(cfg.Inference)...)
	if err != nil {
		return nil, err
	}

	return &Setup{
		Store:    store,
		Oxides:   oxides,
		Registry: reg,
		Pipeline: glassgen.Config{
			Oxides:      oxides,
			MolarMasses: molar,
			Datasets:    boundSets,
			Sampler: sampler.Config{
				Count:       cfg.Sampler.Count,
				Seed:        cfg.Sampler.Seed,
				MaxAttempts: cfg.Sampler.MaxAttempts,
				ChunkSize:   cfg.Sampler.ChunkSize,
				Workers:     cfg.Sampler.Workers,
			},
			Evaluators: evals,
			Windows:    cfg.ScreenWindows(),
		},
	}, nil
}

// inferenceOptions maps cfg onto surrogate options. cfg is validated, so the
// codec name is known.
func inferenceOptions(cfg config.InferenceConfig) []surrogate.Option {
	cd, _ := cfg.ArtifactCodec()
	return []surrogate.Option{
		surrogate.WithWorkers(cfg.Workers),
		surrogate.WithChunkSize(cfg.ChunkSize),
		surrogate.WithCodec(cd),
	}
}

// fitNormalization derives min-max parameters from the training labels of ds.
func fitNormalization(ds *dataset.Dataset, s property.Spec, coeffs map[string]property.CoefficientTable, molar oxide.MolarMassTable) (normalize.Params, error) {
	t, err := property.BuildTransform(s.Transform, ds.Oxides, coeffs)
	if err != nil {
		return normalize.Params{}, fmt.Errorf("property %s: %w", s.Name, err)
	}
	labels, err := ds.TrainingLabels(t, molar)
	if err != nil {
		return normalize.Params{}, err
	}
	n, err := normalize.FitMinMax(labels)
	if err != nil {
		return normalize.Params{}, fmt.Errorf("property %s: %w", s.Name, err)
	}
	return n.Params(), nil
}
