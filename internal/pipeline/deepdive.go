package pipeline

import (
	"context"

	"github.com/pjtries/VeritasAI/internal/models"

	"go.uber.org/zap"
)

// DeepDive runs Phase 2: a pure derivation of category-specific forensic
// detail from the stored triage record. No provider calls.
func (p *Pipeline) DeepDive(ctx context.Context, scanID string) (*models.DeepDiveReport, error) {
	record, err := p.repo.GetScan(scanID)
	if err != nil {
		return nil, err
	}

	report := p.analyzer.Analyze(record)

	// Bookkeeping only: the report was derived successfully, so a failed
	// append is logged rather than surfaced.
	if err := p.repo.AppendPhase(scanID, "deep_dive", report); err != nil {
		p.logger.Warn("Failed to record deep-dive output",
			zap.String("scan_id", scanID),
			zap.Error(err))
	}

	p.logger.Info("Deep dive derived",
		zap.String("scan_id", scanID),
		zap.String("feature", report.Feature))

	return report, nil
}
