package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pjtries/VeritasAI/internal/llm"
	"github.com/pjtries/VeritasAI/internal/models"
	"github.com/pjtries/VeritasAI/internal/routing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fail-open triage default applied when every reasoning provider is
// unreachable. Deliberately low-risk: triage degrades, it does not crash.
const (
	degradedScore      = 15
	degradedConfidence = 0.8
)

// Triage runs Phase 1: scores the input through the provider chain,
// normalizes the result, applies score gating and routing, and persists a
// new scan record.
func (p *Pipeline) Triage(ctx context.Context, input models.ScanInput) (*models.ScanRecord, error) {
	if input.Empty() {
		return nil, ErrNoInput
	}

	payload := buildPayload(input)

	// Advisory telemetry only; extraction failure never aborts a scan.
	if features, err := p.extractor.Extract(ctx, payload); err != nil {
		p.logger.Warn("Feature extraction failed, continuing without telemetry",
			zap.Error(err))
	} else {
		p.logger.Debug("Content features extracted",
			zap.Int("embedding_dim", features.EmbeddingDim),
			zap.Int("token_count", features.TokenCount),
			zap.String("language", features.Language))
	}

	req := llm.Request{
		System: triageSystem,
		Prompt: buildTriagePrompt(payload),
		Schema: TriageSchema(),
	}

	var (
		score       int
		category    models.RiskCategory
		confidence  float64
		explanation string
	)

	raw, err := p.chain.Execute(ctx, req)
	if err != nil {
		p.logger.Warn("Reasoning chain exhausted, applying degraded triage default",
			zap.Error(err))
		score = degradedScore
		category = models.CategoryBenign
		confidence = degradedConfidence
		explanation = "All reasoning engines were unreachable; fail-open default applied. " + err.Error()
	} else {
		var result models.TriageResult
		if err := json.Unmarshal(raw, &result); err != nil {
			// Schema validation already passed, so this is unreachable in
			// practice; treat it like chain exhaustion anyway.
			return nil, fmt.Errorf("failed to decode triage result: %w", err)
		}
		score = result.DeceptionScore
		category = models.NormalizeCategory(result.RiskCategory)
		confidence = result.ConfidenceScore
		explanation = result.ExplanationSummary
	}

	// Score gates both category and escalation, regardless of provider
	// output or degraded defaults.
	status := models.StatusEscalated
	if score < 30 {
		category = models.CategoryBenign
		status = models.StatusCompleted
	}

	record := &models.ScanRecord{
		ID:              "scan_" + uuid.NewString(),
		Score:           score,
		Category:        category,
		Confidence:      confidence,
		Explanation:     explanation,
		RoutingDecision: routing.Route(category, score),
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}

	if err := p.repo.SaveScan(record); err != nil {
		return nil, fmt.Errorf("failed to persist scan: %w", err)
	}

	p.logger.Info("Scan triaged",
		zap.String("scan_id", record.ID),
		zap.Int("score", record.Score),
		zap.String("category", string(record.Category)),
		zap.String("status", record.Status))

	return record, nil
}
