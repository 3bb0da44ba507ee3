package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want RiskCategory
	}{
		{"Contextual", CategoryContextual},
		{"contextual", CategoryContextual},
		{"SYNTHETIC", CategorySynthetic},
		{" narrative ", CategoryNarrative},
		{"Narrative", CategoryNarrative},
		{"benign", CategoryBenign},
		{"", CategoryBenign},
		{"deepfake", CategoryBenign},
		{"synthetic media", CategoryBenign},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategory(tt.raw), "raw=%q", tt.raw)
	}
}

func TestScanInputEmpty(t *testing.T) {
	assert.True(t, ScanInput{}.Empty())
	assert.True(t, ScanInput{Text: "   "}.Empty())
	assert.False(t, ScanInput{Text: "hello"}.Empty())
	assert.False(t, ScanInput{URL: "https://example.com"}.Empty())
	assert.False(t, ScanInput{FileName: "clip.mp4"}.Empty())
}
