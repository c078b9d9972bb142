package imgmeta

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodeTestPNG renders a solid-color PNG in memory.
func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{200, 40, 40, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestInspect_PNG(t *testing.T) {
	data := encodeTestPNG(t, 64, 48)

	m := Inspect(data)

	if m.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want image/png", m.MIMEType)
	}
	if m.Width != 64 || m.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", m.Width, m.Height)
	}
}

func TestInspect_UndecodableData(t *testing.T) {
	m := Inspect([]byte("not an image"))

	if m.Width != 0 || m.Height != 0 {
		t.Errorf("dimensions = %dx%d, want 0x0", m.Width, m.Height)
	}
	if m.MIMEType == "" {
		t.Error("MIMEType should still be sniffed for undecodable data")
	}
}
