// Package pipeline sequences the four scan phases: triage, deep dive,
// adjudication and reconstruction.
package pipeline

import (
	"context"
	"errors"

	"github.com/pjtries/VeritasAI/internal/forensics"
	"github.com/pjtries/VeritasAI/internal/llm"
	"github.com/pjtries/VeritasAI/internal/models"
	"github.com/pjtries/VeritasAI/internal/repository"

	"go.uber.org/zap"
)

// ErrNoInput is returned when triage receives no usable content.
var ErrNoInput = errors.New("no content supplied: text_content, url or file is required")

// ReasoningClient is the provider chain contract the pipeline depends on.
type ReasoningClient interface {
	Execute(ctx context.Context, req llm.Request) ([]byte, error)
	ProvidersInfo() []map[string]interface{}
}

// Pipeline orchestrates the scan phases against the scan store. All
// collaborators are injected at construction; the pipeline owns scan id
// generation and status transitions.
type Pipeline struct {
	chain         ReasoningClient
	repo          *repository.ScanRepository
	analyzer      forensics.Analyzer
	reconstructor forensics.Reconstructor
	extractor     forensics.Extractor
	logger        *zap.Logger
}

// New creates a scan pipeline.
func New(
	chain ReasoningClient,
	repo *repository.ScanRepository,
	analyzer forensics.Analyzer,
	reconstructor forensics.Reconstructor,
	extractor forensics.Extractor,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		chain:         chain,
		repo:          repo,
		analyzer:      analyzer,
		reconstructor: reconstructor,
		extractor:     extractor,
		logger:        logger,
	}
}

// GetScan looks up a stored scan record by id.
func (p *Pipeline) GetScan(scanID string) (*models.ScanRecord, error) {
	return p.repo.GetScan(scanID)
}

// ProvidersInfo exposes the reasoning chain state for the health surface.
func (p *Pipeline) ProvidersInfo() []map[string]interface{} {
	return p.chain.ProvidersInfo()
}

// Stats exposes aggregate scan counters.
func (p *Pipeline) Stats() (map[string]interface{}, error) {
	return p.repo.Stats()
}
