package models

import (
	"strings"
	"time"
)

// RiskCategory represents the four canonical deception risk classes
type RiskCategory string

const (
	CategoryContextual RiskCategory = "Contextual"
	CategorySynthetic  RiskCategory = "Synthetic"
	CategoryNarrative  RiskCategory = "Narrative"
	CategoryBenign     RiskCategory = "Benign"
)

// NormalizeCategory maps a provider-supplied free-text category onto the
// canonical labels. Comparison is case-insensitive; anything unrecognized
// becomes Benign.
func NormalizeCategory(raw string) RiskCategory {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "contextual":
		return CategoryContextual
	case "synthetic":
		return CategorySynthetic
	case "narrative":
		return CategoryNarrative
	default:
		return CategoryBenign
	}
}

// Scan lifecycle states
const (
	StatusCompleted = "completed"
	StatusEscalated = "escalated"
)

// ScanRecord is the durable result of a Phase 1 triage. Written once by the
// pipeline; later phases only read it.
type ScanRecord struct {
	ID              string       `json:"id"`
	Score           int          `json:"score"`
	Category        RiskCategory `json:"category"`
	Confidence      float64      `json:"confidence"`
	Explanation     string       `json:"explanation_summary"`
	RoutingDecision []string     `json:"routing_decision"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// ScanInput carries the raw content handed to triage. A file upload is
// represented only by its name; no transcription is performed.
type ScanInput struct {
	Text     string
	URL      string
	FileName string
}

// Empty reports whether no usable input was supplied.
func (in ScanInput) Empty() bool {
	return strings.TrimSpace(in.Text) == "" &&
		strings.TrimSpace(in.URL) == "" &&
		strings.TrimSpace(in.FileName) == ""
}

// TriageResult is the normalized structured output of a Phase 1
// reasoning-provider call.
type TriageResult struct {
	DeceptionScore     int     `json:"deception_score"`
	RiskCategory       string  `json:"risk_category"`
	ExplanationSummary string  `json:"explanation_summary"`
	ConfidenceScore    float64 `json:"confidence_score"`
}

// Adjudication verdicts
const (
	VerdictManipulated  = "manipulated"
	VerdictAuthentic    = "authentic"
	VerdictInconclusive = "inconclusive"
)

// VerdictReport is the Phase 3 Supreme Court output. Error is set only on
// the degraded offline path, when every reasoning provider failed.
type VerdictReport struct {
	ScanID                string  `json:"scan_id"`
	Verdict               string  `json:"verdict"`
	ReasoningLog          string  `json:"reasoning_log"`
	EvidenceHeatmap       string  `json:"evidence_heatmap"`
	ConfidenceCalibration float64 `json:"confidence_calibration"`
	AuditTrail            string  `json:"audit_trail"`
	Error                 string  `json:"error,omitempty"`
}

// DeepDiveReport is the Phase 2 forensic breakdown. Results holds
// category-specific metrics; values may be numbers, booleans or strings.
type DeepDiveReport struct {
	ScanID         string                 `json:"scan_id"`
	Feature        string                 `json:"feature"`
	Phase2Category RiskCategory           `json:"phase2_category"`
	Results        map[string]interface{} `json:"results"`
}

// ReconstructionReport is the Phase 4 firewall reconstruction narrative.
type ReconstructionReport struct {
	ScanID                   string  `json:"scan_id"`
	InverseDiffusionModel    string  `json:"inverse_diffusion_model"`
	LatencyMS                int     `json:"latency_ms"`
	ReconstructionConfidence float64 `json:"reconstruction_confidence"`
	StatusMessage            string  `json:"status_message"`
	RevertAction             string  `json:"revert_action"`
}

// ContentFeatures is advisory telemetry produced by the best-effort
// feature extraction step during triage.
type ContentFeatures struct {
	EmbeddingDim int    `json:"embedding_dim"`
	TokenCount   int    `json:"token_count"`
	Language     string `json:"language"`
}
