package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pjtries/VeritasAI/internal/llm"
	"github.com/pjtries/VeritasAI/internal/models"

	"go.uber.org/zap"
)

// verdictWire mirrors the provider's Phase 3 output fields.
type verdictWire struct {
	Verdict               string  `json:"verdict"`
	ReasoningLog          string  `json:"reasoning_log"`
	EvidenceHeatmap       string  `json:"evidence_heatmap"`
	ConfidenceCalibration float64 `json:"confidence_calibration"`
	AuditTrail            string  `json:"audit_trail"`
}

// Adjudicate runs Phase 3: re-derives the deep-dive evidence, prompts the
// provider chain for a final verdict, and degrades to an explicit offline
// payload instead of erroring when the chain is exhausted.
func (p *Pipeline) Adjudicate(ctx context.Context, scanID string) (*models.VerdictReport, error) {
	record, err := p.repo.GetScan(scanID)
	if err != nil {
		return nil, err
	}

	// Deep dive is idempotent and cheap, so adjudication re-derives it
	// rather than depending on a prior phase-2 request having happened.
	dive := p.analyzer.Analyze(record)

	req := llm.Request{
		System: adjudicationSystem,
		Prompt: buildVerdictPrompt(record, dive),
		Schema: VerdictSchema(),
	}

	report := &models.VerdictReport{ScanID: scanID}

	raw, err := p.chain.Execute(ctx, req)
	if err != nil {
		p.logger.Warn("Reasoning chain exhausted during adjudication",
			zap.String("scan_id", scanID),
			zap.Error(err))

		report.Verdict = models.VerdictInconclusive
		report.Error = "all AI agents offline"
		report.ReasoningLog = "No reasoning provider could be reached; the court cannot deliberate."
		report.AuditTrail = err.Error()
	} else {
		var wire verdictWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("failed to decode verdict: %w", err)
		}

		report.Verdict = normalizeVerdict(wire.Verdict)
		report.ReasoningLog = wire.ReasoningLog
		report.EvidenceHeatmap = wire.EvidenceHeatmap
		report.ConfidenceCalibration = wire.ConfidenceCalibration
		report.AuditTrail = wire.AuditTrail
	}

	if err := p.repo.AppendPhase(scanID, "supreme_court", report); err != nil {
		p.logger.Warn("Failed to record verdict",
			zap.String("scan_id", scanID),
			zap.Error(err))
	}

	p.logger.Info("Scan adjudicated",
		zap.String("scan_id", scanID),
		zap.String("verdict", report.Verdict))

	return report, nil
}

// normalizeVerdict lowercases the schema-validated verdict onto the
// canonical constants.
func normalizeVerdict(raw string) string {
	switch {
	case strings.EqualFold(raw, models.VerdictManipulated):
		return models.VerdictManipulated
	case strings.EqualFold(raw, models.VerdictAuthentic):
		return models.VerdictAuthentic
	default:
		return models.VerdictInconclusive
	}
}
