package imageops

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"gemini-image-mcp/internal/gemini"
	"gemini-image-mcp/internal/ratelimit"
)

// recordedCall captures one remote dispatch for inspection.
type recordedCall struct {
	parts []*genai.Part
	cfg   *gemini.GenerateConfig
}

// fakeRemote replays canned replies in order and records every call.
type fakeRemote struct {
	calls   []recordedCall
	replies []*gemini.Reply
	err     error
}

func (f *fakeRemote) Call(_ context.Context, parts []*genai.Part, cfg *gemini.GenerateConfig) (*gemini.Reply, error) {
	f.calls = append(f.calls, recordedCall{parts: parts, cfg: cfg})
	if f.err != nil {
		return nil, f.err
	}
	if len(f.replies) == 0 {
		return &gemini.Reply{Images: []gemini.Blob{{Data: []byte("img"), MIMEType: "image/png"}}}, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeRemote) Model() string {
	return "gemini-test"
}

func (f *fakeRemote) promptText(call int) string {
	if call >= len(f.calls) || len(f.calls[call].parts) == 0 {
		return ""
	}
	return f.calls[call].parts[0].Text
}

func newTestClient(remote *fakeRemote, maxPerMinute int) *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(remote, ratelimit.New(maxPerMinute), log)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{10, 20, 30, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestGenerate(t *testing.T) {
	pngData := testPNG(t)
	remote := &fakeRemote{replies: []*gemini.Reply{{
		Images: []gemini.Blob{
			{Data: pngData, MIMEType: "image/png"},
			{Data: []byte("second"), MIMEType: "image/jpeg"},
		},
	}}}
	c := newTestClient(remote, 10)

	images, err := c.Generate(context.Background(), GenerationRequest{
		Prompt: "a lighthouse",
		GenerationOptions: GenerationOptions{
			Style:          "watercolor",
			Quality:        "high",
			NumberOfImages: 2,
		},
	})
	require.NoError(t, err)
	require.Len(t, images, 2)

	// Prompt synthesis flows through to the remote call and the metadata.
	wantPrompt := "a lighthouse in watercolor style, high quality, detailed"
	assert.Equal(t, wantPrompt, remote.promptText(0))
	assert.Equal(t, wantPrompt, images[0].Metadata["prompt"])

	assert.Equal(t, int32(2), remote.calls[0].cfg.CandidateCount)
	assert.Equal(t, "gemini-test", images[0].Metadata["model"])
	assert.NotEmpty(t, images[0].Metadata["id"])
	assert.NotEmpty(t, images[0].Metadata["generatedAt"])
	assert.NotEqual(t, images[0].Metadata["id"], images[1].Metadata["id"])

	// The decodable payload reports its dimensions; the opaque one does not.
	assert.Equal(t, 8, images[0].Width)
	assert.Equal(t, 6, images[0].Height)
	assert.Zero(t, images[1].Width)

	decoded, err := base64.StdEncoding.DecodeString(images[1].Data)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), decoded)
}

func TestGenerate_ThreadsSeed(t *testing.T) {
	remote := &fakeRemote{}
	c := newTestClient(remote, 10)

	seed := int32(42)
	_, err := c.Generate(context.Background(), GenerationRequest{
		Prompt:            "a fox",
		GenerationOptions: GenerationOptions{Seed: &seed},
	})
	require.NoError(t, err)
	require.NotNil(t, remote.calls[0].cfg.Seed)
	assert.Equal(t, int32(42), *remote.calls[0].cfg.Seed)
}

func TestGenerate_RateLimited(t *testing.T) {
	remote := &fakeRemote{}
	c := newTestClient(remote, 1)

	_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "one"})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), GenerationRequest{Prompt: "two"})
	var rlErr *ratelimit.Error
	require.ErrorAs(t, err, &rlErr)
	assert.Positive(t, rlErr.RetryAfter)
	assert.Len(t, remote.calls, 1, "rejected call must not reach the remote")
}

func TestGenerate_RemoteFailureWrapped(t *testing.T) {
	remote := &fakeRemote{err: errors.New("quota exhausted")}
	c := newTestClient(remote, 10)

	_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "a fox"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image generation failed")
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestGenerate_NoImageData(t *testing.T) {
	remote := &fakeRemote{replies: []*gemini.Reply{{Text: "sorry, no"}}}
	c := newTestClient(remote, 10)

	_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "a fox"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image data")
}

func TestModify(t *testing.T) {
	remote := &fakeRemote{}
	c := newTestClient(remote, 10)

	src := base64.StdEncoding.EncodeToString(testPNG(t))
	img, err := c.Modify(context.Background(), ModificationRequest{
		ImageData:     src,
		Instructions:  "Make the sky purple.",
		PreserveStyle: true,
		Strength:      0.7,
	})
	require.NoError(t, err)

	assert.Contains(t, remote.promptText(0), "Preserve the original style")
	require.Len(t, remote.calls[0].parts, 2)
	require.NotNil(t, remote.calls[0].parts[1].InlineData)
	assert.Equal(t, "image/png", remote.calls[0].parts[1].InlineData.MIMEType)

	assert.Equal(t, "0.7", img.Metadata["strength"])
	assert.Contains(t, img.Metadata["instructions"], "Make the sky purple.")
}

func TestModify_InvalidPayload(t *testing.T) {
	c := newTestClient(&fakeRemote{}, 10)

	_, err := c.Modify(context.Background(), ModificationRequest{
		ImageData:    "not base64!!!",
		Instructions: "anything",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image modification failed")
}

func TestAnalyze(t *testing.T) {
	remote := &fakeRemote{replies: []*gemini.Reply{{Text: "cat: 85%\ndog: 42%"}}}
	c := newTestClient(remote, 10)

	src := base64.StdEncoding.EncodeToString(testPNG(t))
	res, err := c.Analyze(context.Background(), AnalysisRequest{
		ImageData:    src,
		AnalysisType: "objects",
	})
	require.NoError(t, err)

	require.Len(t, res.Objects, 2)
	assert.Equal(t, "cat", res.Objects[0].Name)
	assert.Equal(t, 0.85, res.Objects[0].Confidence)

	// Analysis wants a text answer, not image modalities.
	assert.Nil(t, remote.calls[0].cfg)
}

func TestAnalyze_DefaultsToDescription(t *testing.T) {
	remote := &fakeRemote{replies: []*gemini.Reply{{Text: "A quiet street."}}}
	c := newTestClient(remote, 10)

	src := base64.StdEncoding.EncodeToString(testPNG(t))
	res, err := c.Analyze(context.Background(), AnalysisRequest{ImageData: src})
	require.NoError(t, err)

	assert.Equal(t, "A quiet street.", res.Description)
	assert.Contains(t, remote.promptText(0), "medium detail")
}

func TestGenerateBatch_OrderPreserved(t *testing.T) {
	remote := &fakeRemote{replies: []*gemini.Reply{
		{Images: []gemini.Blob{{Data: []byte("a"), MIMEType: "image/png"}}},
		{Images: []gemini.Blob{{Data: []byte("b"), MIMEType: "image/png"}}},
		{Images: []gemini.Blob{{Data: []byte("c"), MIMEType: "image/png"}}},
	}}
	c := newTestClient(remote, 10)

	images, err := c.GenerateBatch(context.Background(), BatchRequest{Prompts: []string{"a", "b", "c"}})
	require.NoError(t, err)

	require.Len(t, remote.calls, 3)
	require.Len(t, images, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, remote.promptText(i))
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(want)), images[i].Data)
	}
}

func TestGenerateBatch_AbortsOnRateLimit(t *testing.T) {
	remote := &fakeRemote{}
	c := newTestClient(remote, 1)

	_, err := c.GenerateBatch(context.Background(), BatchRequest{Prompts: []string{"a", "b", "c"}})
	require.Error(t, err)

	var rlErr *ratelimit.Error
	require.ErrorAs(t, err, &rlErr)
	assert.Len(t, remote.calls, 1, "third prompt must never be attempted")
	assert.Contains(t, err.Error(), "prompt 2")
}

func TestGenerateBatch_EmptyPrompts(t *testing.T) {
	remote := &fakeRemote{}
	c := newTestClient(remote, 10)

	images, err := c.GenerateBatch(context.Background(), BatchRequest{})
	require.NoError(t, err)
	assert.Empty(t, images)
	assert.Empty(t, remote.calls)
}

func TestGenerateBatch_SharedOptionsAppliedToEveryPrompt(t *testing.T) {
	remote := &fakeRemote{replies: []*gemini.Reply{
		{Images: []gemini.Blob{{Data: []byte("a"), MIMEType: "image/png"}}},
		{Images: []gemini.Blob{{Data: []byte("b"), MIMEType: "image/png"}}},
	}}
	c := newTestClient(remote, 10)

	_, err := c.GenerateBatch(context.Background(), BatchRequest{
		Prompts: []string{"a fox", "a barn"},
		Shared:  GenerationOptions{Style: "anime", AspectRatio: "16:9"},
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		text := remote.promptText(i)
		assert.Contains(t, text, "in anime style")
		assert.Contains(t, text, "with 16:9 aspect ratio")
	}
}

func TestApplyStyleTransfer(t *testing.T) {
	remote := &fakeRemote{}
	c := newTestClient(remote, 10)

	src := base64.StdEncoding.EncodeToString(testPNG(t))
	_, err := c.ApplyStyleTransfer(context.Background(), StyleTransferRequest{
		ImageData: src,
		Style:     "cyberpunk",
		Intensity: 80,
	})
	require.NoError(t, err)

	text := remote.promptText(0)
	assert.Contains(t, text, "cyberpunk")
	assert.Contains(t, text, "80%")
	assert.NotContains(t, text, "Preserve the original style")
}

func TestOperations_NoRetry(t *testing.T) {
	remote := &fakeRemote{err: fmt.Errorf("transient")}
	c := newTestClient(remote, 10)

	_, err := c.Generate(context.Background(), GenerationRequest{Prompt: "a fox"})
	require.Error(t, err)
	assert.Len(t, remote.calls, 1)
}
