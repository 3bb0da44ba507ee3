package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSchema() *Schema {
	return &Schema{
		Fields: []Field{
			{Name: "deception_score", Kind: KindInt, Bounded: true, Min: 0, Max: 100},
			{Name: "risk_category", Kind: KindString},
			{Name: "confidence_score", Kind: KindFloat, Bounded: true, Min: 0, Max: 1},
		},
	}
}

func TestSchemaValidateAccepts(t *testing.T) {
	raw := []byte(`{"deception_score": 82, "risk_category": "narrative", "confidence_score": 0.91}`)
	assert.NoError(t, testSchema().Validate(raw))
}

func TestSchemaValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `the content looks fine to me`},
		{"missing field", `{"deception_score": 82, "confidence_score": 0.91}`},
		{"wrong type", `{"deception_score": "high", "risk_category": "narrative", "confidence_score": 0.91}`},
		{"non-integer score", `{"deception_score": 82.5, "risk_category": "narrative", "confidence_score": 0.91}`},
		{"score out of range", `{"deception_score": 130, "risk_category": "narrative", "confidence_score": 0.91}`},
		{"confidence out of range", `{"deception_score": 82, "risk_category": "narrative", "confidence_score": 1.4}`},
		{"empty string field", `{"deception_score": 82, "risk_category": "", "confidence_score": 0.91}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, testSchema().Validate([]byte(tt.raw)))
		})
	}
}

func TestSchemaValidateEnum(t *testing.T) {
	schema := &Schema{Fields: []Field{
		{Name: "verdict", Kind: KindString, Enum: []string{"manipulated", "authentic", "inconclusive"}},
	}}

	assert.NoError(t, schema.Validate([]byte(`{"verdict": "manipulated"}`)))
	assert.NoError(t, schema.Validate([]byte(`{"verdict": "Authentic"}`)), "enum match is case-insensitive")
	assert.Error(t, schema.Validate([]byte(`{"verdict": "guilty"}`)))
}

func TestSchemaInstructionNamesFields(t *testing.T) {
	instruction := testSchema().Instruction()

	assert.Contains(t, instruction, "deception_score")
	assert.Contains(t, instruction, "risk_category")
	assert.Contains(t, instruction, "confidence_score")
	assert.Contains(t, instruction, "between 0 and 100")
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, StripFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripFences("```\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, StripFences(`  {"a": 1}  `))
}
