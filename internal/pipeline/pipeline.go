// Package pipeline wires configuration into the normalize and extract stages
// so the binaries share one code path from raw rows to cleaned output.
package pipeline

import (
	"qagate/internal/config"
	"qagate/internal/extractor"
	"qagate/internal/models"
	"qagate/internal/normalizer"
)

// Pipeline runs the cleaning and extraction stages over raw export rows.
type Pipeline struct {
	normalizer *normalizer.Normalizer
	extractor  *extractor.Extractor
}

// New builds a pipeline from a validated configuration.
func New(cfg *config.Config) *Pipeline {
	steps := make([]normalizer.StepMapping, len(cfg.Process.Mappings))
	for i, m := range cfg.Process.Mappings {
		steps[i] = normalizer.StepMapping{Prefix: m.Prefix, Step: m.Step}
	}

	norm := normalizer.New(normalizer.Options{
		Steps:          steps,
		DefaultStep:    cfg.Process.Default,
		InVitroMarkers: cfg.Process.InVitroMarkers,
		Policy: normalizer.Policy{
			AllowNegativeQuantities:       cfg.Validation.AllowNegativeQuantities,
			AllowRejectedGreaterThanStart: cfg.Validation.AllowRejectedGreaterThanStart,
		},
		Outliers: normalizer.OutlierOptions{
			Enabled:         cfg.Outliers.Enabled,
			ZScoreThreshold: cfg.Outliers.ZScoreThreshold,
		},
	})

	ext := extractor.New(cfg.Extraction.SensorHeaders, cfg.Extraction.FailureHeaders)

	return &Pipeline{normalizer: norm, extractor: ext}
}

// Run cleans the raw rows and extracts failure records from their free-text
// fields. Both slices are derived from the same normalized row set.
func (p *Pipeline) Run(raws []models.RawRecord) ([]models.GateRecord, []models.FailureRecord) {
	rows := p.normalizer.Normalize(raws)
	failures := p.extractor.Extract(rows)

	return rows, failures
}
