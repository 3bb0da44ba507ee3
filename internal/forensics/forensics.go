// Package forensics holds the category-specific analysis stand-ins. All of
// them are simulations: real traceback, artifact and sentiment engines can
// replace the Simulated* types without touching the pipeline, as long as
// the report shapes stay the same.
package forensics

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/pjtries/VeritasAI/internal/models"
)

// Analyzer produces the Phase 2 forensic breakdown for a stored scan.
type Analyzer interface {
	Analyze(record *models.ScanRecord) *models.DeepDiveReport
}

// Reconstructor produces the Phase 4 reconstruction narrative for a
// stored scan.
type Reconstructor interface {
	Reconstruct(record *models.ScanRecord) *models.ReconstructionReport
}

// Extractor computes advisory content features during triage. Failures are
// telemetry-only and never abort a scan.
type Extractor interface {
	Extract(ctx context.Context, payload string) (*models.ContentFeatures, error)
}

func randInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func randFloat(min, max float64) float64 {
	v := min + rand.Float64()*(max-min)
	return float64(int(v*100)) / 100
}

// SimulatedAnalyzer synthesizes metrics within fixed per-category bounds.
type SimulatedAnalyzer struct{}

func NewSimulatedAnalyzer() *SimulatedAnalyzer {
	return &SimulatedAnalyzer{}
}

func (a *SimulatedAnalyzer) Analyze(record *models.ScanRecord) *models.DeepDiveReport {
	report := &models.DeepDiveReport{
		ScanID:         record.ID,
		Phase2Category: record.Category,
	}

	switch record.Category {
	case models.CategoryContextual:
		report.Feature = "Digital Patient Zero Traceback"
		report.Results = map[string]interface{}{
			"origin_node":                     fmt.Sprintf("t.me/channel_%d", randInt(1000, 9999)),
			"lineage_graph_nodes":             randInt(120, 450),
			"propagation_window_days":         randInt(2, 14),
			"coordinated_cluster_probability": randFloat(0.62, 0.97),
			"tide_mark_cluster_detected":      true,
			"federated_gnn_consensus":         randFloat(0.7, 0.95),
		}
	case models.CategorySynthetic:
		report.Feature = "Diffusion Artifact Lab"
		report.Results = map[string]interface{}{
			"diffusion_artifact_probability": randFloat(0.55, 0.98),
			"fft_anomaly_score":              randFloat(0.4, 0.95),
			"optical_flow_break_detected":    true,
			"generator_fingerprint":          "latent-diffusion v2 family",
			"frequency_band_outliers":        randInt(3, 17),
		}
	case models.CategoryNarrative:
		report.Feature = "Sovereigner Sentiment Analysis"
		report.Results = map[string]interface{}{
			"sentiment_amplification_score": randFloat(0.5, 0.96),
			"contradiction_count":           randInt(2, 9),
			"hallucination_likelihood":      randFloat(0.35, 0.9),
			"dominant_emotion":              "fear",
			"escalation_pattern_detected":   true,
		}
	default:
		report.Feature = "No Forensic Trace Required"
		report.Results = map[string]interface{}{
			"note": "Content cleared at triage; no forensic modules dispatched.",
		}
	}

	return report
}

// SimulatedReconstructor maps each category onto a fixed revert narrative
// with simulated latency and confidence figures.
type SimulatedReconstructor struct{}

func NewSimulatedReconstructor() *SimulatedReconstructor {
	return &SimulatedReconstructor{}
}

var revertActions = map[models.RiskCategory]string{
	models.CategoryContextual: "Severed injected context links and restored the asset to its pre-propagation baseline.",
	models.CategorySynthetic:  "Stripped generator artifacts and re-projected the media onto its unmanipulated latent representation.",
	models.CategoryNarrative:  "Neutralized emotionally escalated framing and reverted the narrative to verified source statements.",
	models.CategoryBenign:     "No manipulation detected; asset already matches its truth baseline.",
}

func (r *SimulatedReconstructor) Reconstruct(record *models.ScanRecord) *models.ReconstructionReport {
	action, ok := revertActions[record.Category]
	if !ok {
		action = revertActions[models.CategoryBenign]
	}

	return &models.ReconstructionReport{
		ScanID:                   record.ID,
		InverseDiffusionModel:    "InstantViR v2.1 (Inverse Diffusion Student)",
		LatencyMS:                randInt(240, 980),
		ReconstructionConfidence: randFloat(0.82, 0.99),
		StatusMessage:            "Ground truth baseline restored",
		RevertAction:             action,
	}
}

// SimulatedExtractor stands in for the embedding service.
type SimulatedExtractor struct{}

func NewSimulatedExtractor() *SimulatedExtractor {
	return &SimulatedExtractor{}
}

func (e *SimulatedExtractor) Extract(ctx context.Context, payload string) (*models.ContentFeatures, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("empty payload, nothing to embed")
	}

	return &models.ContentFeatures{
		EmbeddingDim: 768,
		TokenCount:   len(strings.Fields(payload)),
		Language:     "und",
	}, nil
}
