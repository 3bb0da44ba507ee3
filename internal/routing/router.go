package routing

import "github.com/pjtries/VeritasAI/internal/models"

// escalationThreshold gates forensic routing: below it no modules are
// dispatched regardless of category.
const escalationThreshold = 30

var table = map[models.RiskCategory][]string{
	models.CategoryContextual: {
		"Digital Patient Zero Traceback",
		"TIDE-MARK Clustering",
		"Federated GNN Analysis",
	},
	models.CategorySynthetic: {
		"Diffusion Artifact Lab",
		"FFT Anomaly Detection",
		"Optical Flow Consistency",
	},
	models.CategoryNarrative: {
		"Sovereigner Sentiment Analysis",
		"Narrative Contradiction Engine",
		"LLM Hallucination Check",
	},
}

// Route returns the ordered forensic modules applicable to a category and
// score. Deterministic, no side effects.
func Route(category models.RiskCategory, score int) []string {
	if score < escalationThreshold {
		return []string{}
	}

	modules, ok := table[category]
	if !ok {
		return []string{}
	}

	out := make([]string, len(modules))
	copy(out, modules)
	return out
}
