package pipeline

import (
	"context"

	"github.com/pjtries/VeritasAI/internal/models"

	"go.uber.org/zap"
)

// Reconstruct runs Phase 4: a pure derivation of the firewall
// reconstruction narrative from the stored category. No provider calls.
func (p *Pipeline) Reconstruct(ctx context.Context, scanID string) (*models.ReconstructionReport, error) {
	record, err := p.repo.GetScan(scanID)
	if err != nil {
		return nil, err
	}

	report := p.reconstructor.Reconstruct(record)

	if err := p.repo.AppendPhase(scanID, "firewall_reconstruction", report); err != nil {
		p.logger.Warn("Failed to record reconstruction output",
			zap.String("scan_id", scanID),
			zap.Error(err))
	}

	p.logger.Info("Reconstruction derived",
		zap.String("scan_id", scanID),
		zap.Int("latency_ms", report.LatencyMS))

	return report, nil
}
