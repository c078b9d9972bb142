package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSafetySettings(t *testing.T) {
	tests := []struct {
		level     string
		threshold genai.HarmBlockThreshold
	}{
		{"none", genai.HarmBlockThresholdBlockNone},
		{"low", genai.HarmBlockThresholdBlockOnlyHigh},
		{"medium", genai.HarmBlockThresholdBlockMediumAndAbove},
		{"high", genai.HarmBlockThresholdBlockLowAndAbove},
		{"HIGH", genai.HarmBlockThresholdBlockLowAndAbove},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			settings, err := SafetySettings(tt.level)
			require.NoError(t, err)
			require.Len(t, settings, 4)
			for _, s := range settings {
				assert.Equal(t, tt.threshold, s.Threshold)
			}
		})
	}
}

func TestSafetySettings_UnknownLevel(t *testing.T) {
	_, err := SafetySettings("paranoid")
	require.Error(t, err)
}

func TestExtractReply(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "here is your image"},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("png-bytes")}},
				}},
			},
			{
				Content: &genai.Content{Parts: []*genai.Part{
					{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("jpeg-bytes")}},
				}},
			},
		},
	}

	reply := extractReply(resp)

	require.Len(t, reply.Images, 2)
	assert.Equal(t, "image/png", reply.Images[0].MIMEType)
	assert.Equal(t, []byte("png-bytes"), reply.Images[0].Data)
	assert.Equal(t, "image/jpeg", reply.Images[1].MIMEType)
	assert.Equal(t, "here is your image", reply.Text)
}

func TestExtractReply_SkipsEmptyParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: nil}},
			}}},
		},
	}

	reply := extractReply(resp)
	assert.Empty(t, reply.Images)
	assert.Empty(t, reply.Text)
}
