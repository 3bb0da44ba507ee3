package routing

import (
	"testing"

	"github.com/pjtries/VeritasAI/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRouteBelowThresholdIsEmpty(t *testing.T) {
	for _, category := range []models.RiskCategory{
		models.CategoryContextual,
		models.CategorySynthetic,
		models.CategoryNarrative,
		models.CategoryBenign,
	} {
		for _, score := range []int{0, 1, 15, 29} {
			assert.Empty(t, Route(category, score),
				"category %s score %d must not route", category, score)
		}
	}
}

func TestRouteFixedModulesPerCategory(t *testing.T) {
	tests := []struct {
		category models.RiskCategory
		want     []string
	}{
		{models.CategoryContextual, []string{
			"Digital Patient Zero Traceback",
			"TIDE-MARK Clustering",
			"Federated GNN Analysis",
		}},
		{models.CategorySynthetic, []string{
			"Diffusion Artifact Lab",
			"FFT Anomaly Detection",
			"Optical Flow Consistency",
		}},
		{models.CategoryNarrative, []string{
			"Sovereigner Sentiment Analysis",
			"Narrative Contradiction Engine",
			"LLM Hallucination Check",
		}},
	}

	for _, tt := range tests {
		for _, score := range []int{30, 55, 100} {
			assert.Equal(t, tt.want, Route(tt.category, score),
				"category %s score %d", tt.category, score)
		}
	}
}

func TestRouteBenignAndUnknownAreEmpty(t *testing.T) {
	assert.Empty(t, Route(models.CategoryBenign, 95))
	assert.Empty(t, Route(models.RiskCategory("Quantum"), 95))
}

func TestRouteReturnsCopy(t *testing.T) {
	first := Route(models.CategoryContextual, 80)
	first[0] = "mutated"

	second := Route(models.CategoryContextual, 80)
	assert.Equal(t, "Digital Patient Zero Traceback", second[0])
}
