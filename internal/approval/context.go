// Package approval drives one loan decision end to end: form values are
// validated and encoded, scaled, classified and turned into a verdict.
//
// Everything loaded at startup lives in a read-only Context that is built
// once and handed to the Service explicitly.
package approval

import (
	"fmt"
	"time"

	"loan-approval/internal/cfg"
	"loan-approval/internal/features"
	"loan-approval/internal/ml"
	"loan-approval/internal/storage"

	"github.com/rs/zerolog/log"
)

// Context is the process-wide, read-only state a Service needs.
type Context struct {
	Builder   *features.Builder
	Predictor ml.PredictorInterface
	Manifest  storage.Manifest
	LoadedAt  time.Time
}

// NewContext checks that the builder's vectors fit the predictor.
func NewContext(builder *features.Builder, predictor ml.PredictorInterface) (*Context, error) {
	if builder == nil || predictor == nil {
		return nil, fmt.Errorf("builder and predictor are required")
	}
	if n := builder.Schema().Len(); n != predictor.Features() {
		return nil, fmt.Errorf("feature schema has %d columns but model expects %d", n, predictor.Features())
	}
	return &Context{Builder: builder, Predictor: predictor, LoadedAt: time.Now()}, nil
}

// Schema is a shortcut for the builder's schema.
func (c *Context) Schema() *features.Schema { return c.Builder.Schema() }

// Load reads the configured artifacts and assembles a Context.
func Load(settings cfg.Settings, metrics ml.MetricsInterface) (*Context, error) {
	artifacts, err := readArtifacts(settings)
	if err != nil {
		return nil, err
	}

	classifier, err := ml.DecodeClassifier(artifacts.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	scaler, err := ml.DecodeScaler(artifacts.Scaler)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	columns, err := ml.DecodeColumns(artifacts.Columns)
	if err != nil {
		return nil, fmt.Errorf("load feature columns: %w", err)
	}

	schema, err := features.NewSchema(columns, settings.OccupationPrefix, settings.DropColumns)
	if err != nil {
		return nil, fmt.Errorf("build feature schema: %w", err)
	}
	encoding, err := features.NewEncoding(settings.Encoding.Gender, settings.Encoding.Education, settings.Encoding.Marital)
	if err != nil {
		return nil, fmt.Errorf("build category encoding: %w", err)
	}
	builder, err := features.NewBuilder(schema, encoding, features.Columns{
		Age:       settings.Columns.Age,
		Gender:    settings.Columns.Gender,
		Education: settings.Columns.Education,
		Marital:   settings.Columns.Marital,
		Income:    settings.Columns.Income,
	}, features.WithRejectUnknownOccupation(settings.RejectUnknownOccupation()))
	if err != nil {
		return nil, fmt.Errorf("build feature vector builder: %w", err)
	}

	predictor, err := ml.NewWithMetrics(classifier, scaler, metrics)
	if err != nil {
		return nil, fmt.Errorf("build predictor: %w", err)
	}

	ctx, err := NewContext(builder, predictor)
	if err != nil {
		return nil, err
	}
	ctx.Manifest = artifacts.Manifest

	log.Info().
		Str("source", artifacts.Manifest.Source).
		Int("columns", schema.Len()).
		Strs("dropped", schema.Dropped()).
		Strs("occupations", schema.Occupations()).
		Msg("Model artifacts loaded")

	return ctx, nil
}

func readArtifacts(settings cfg.Settings) (*storage.Artifacts, error) {
	if settings.BundlePath != "" {
		a, err := storage.ReadBundle(settings.BundlePath)
		if err != nil {
			return nil, fmt.Errorf("read artifact bundle: %w", err)
		}
		if a.Manifest.Source == "" {
			a.Manifest.Source = settings.BundlePath
		}
		return a, nil
	}

	a, err := storage.ReadDir(settings.ModelPath, settings.ScalerPath, settings.ColumnsPath)
	if err != nil {
		return nil, fmt.Errorf("read artifacts: %w", err)
	}
	return a, nil
}
