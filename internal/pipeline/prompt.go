package pipeline

import (
	"fmt"
	"strings"

	"github.com/pjtries/VeritasAI/internal/llm"
	"github.com/pjtries/VeritasAI/internal/models"
)

const triageSystem = `You are the Phase 1 semantic triage layer of the VERITAS deception-risk engine.
You score raw content for manipulation risk across three attack surfaces:
Contextual (real media reframed with false context), Synthetic (AI-generated
or altered media) and Narrative (emotionally escalated or fabricated
storytelling). Low-risk content is Benign. You respond with JSON only.`

const adjudicationSystem = `You are the Supreme Court reasoning layer of the VERITAS deception-risk
engine. You receive the triage assessment and the deep forensic evidence for
a scan and must deliver a final verdict, resolving conflicts between the
evidence streams. You respond with JSON only.`

// TriageSchema is the strict output contract for Phase 1 calls.
func TriageSchema() *llm.Schema {
	return &llm.Schema{
		Fields: []llm.Field{
			{Name: "deception_score", Kind: llm.KindInt, Bounded: true, Min: 0, Max: 100},
			{Name: "risk_category", Kind: llm.KindString},
			{Name: "explanation_summary", Kind: llm.KindString},
			{Name: "confidence_score", Kind: llm.KindFloat, Bounded: true, Min: 0, Max: 1},
		},
	}
}

// VerdictSchema is the strict output contract for Phase 3 calls.
func VerdictSchema() *llm.Schema {
	return &llm.Schema{
		Fields: []llm.Field{
			{Name: "verdict", Kind: llm.KindString, Enum: []string{
				models.VerdictManipulated,
				models.VerdictAuthentic,
				models.VerdictInconclusive,
			}},
			{Name: "reasoning_log", Kind: llm.KindString},
			{Name: "evidence_heatmap", Kind: llm.KindString},
			{Name: "confidence_calibration", Kind: llm.KindFloat, Bounded: true, Min: 0, Max: 1},
			{Name: "audit_trail", Kind: llm.KindString},
		},
	}
}

// buildPayload flattens the scan input into a single text payload. A file
// upload only contributes a placeholder annotation: no transcription is
// performed, the stub is the documented stand-in for OCR/ASR.
func buildPayload(input models.ScanInput) string {
	var parts []string

	if text := strings.TrimSpace(input.Text); text != "" {
		parts = append(parts, text)
	}
	if url := strings.TrimSpace(input.URL); url != "" {
		parts = append(parts, "Source URL: "+url)
	}
	if name := strings.TrimSpace(input.FileName); name != "" {
		parts = append(parts,
			fmt.Sprintf("[media attachment %q - transcription not performed, audiovisual analysis pending]", name))
	}

	return strings.Join(parts, "\n")
}

// buildTriagePrompt assembles the deterministic Phase 1 prompt. The
// hashtag/comment/timestamp sections are fixed placeholders until platform
// extraction is wired in.
func buildTriagePrompt(payload string) string {
	var b strings.Builder

	b.WriteString("Assess the following content for deception risk.\n\n")
	b.WriteString("Content payload:\n")
	b.WriteString(payload)
	b.WriteString("\n\n")
	b.WriteString("Hashtags: not yet extracted\n")
	b.WriteString("Comments: not yet extracted\n")
	b.WriteString("Timestamps: not yet extracted\n\n")
	b.WriteString("Classify risk_category as one of: Contextual, Synthetic, Narrative, Benign.\n\n")
	b.WriteString(TriageSchema().Instruction())

	return b.String()
}

// buildVerdictPrompt assembles the Phase 3 prompt from the stored triage
// record and the re-derived deep-dive evidence.
func buildVerdictPrompt(record *models.ScanRecord, dive *models.DeepDiveReport) string {
	var b strings.Builder

	b.WriteString("Deliver the final verdict for this scan.\n\n")
	fmt.Fprintf(&b, "Phase 1 triage: score=%d category=%s confidence=%.2f\n",
		record.Score, record.Category, record.Confidence)
	fmt.Fprintf(&b, "Triage explanation: %s\n\n", record.Explanation)
	fmt.Fprintf(&b, "Phase 2 forensic module: %s\n", dive.Feature)
	b.WriteString("Phase 2 evidence:\n")
	for key, value := range dive.Results {
		fmt.Fprintf(&b, "- %s: %v\n", key, value)
	}
	b.WriteString("\n")
	b.WriteString(VerdictSchema().Instruction())

	return b.String()
}
