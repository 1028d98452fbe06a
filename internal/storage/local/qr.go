package local

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"

	"firsgate/internal/domain"
)

// DefaultQRSize is the edge length in pixels of stored QR images.
const DefaultQRSize = 300

// RenderQR encodes content at low error correction and resamples the code
// onto a size x size grayscale PNG at best compression.
func RenderQR(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("empty QR content: %w", domain.ErrQRGeneration)
	}
	code, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encoding QR: %v: %w", err, domain.ErrQRGeneration)
	}
	// Negative size renders each module as a fixed 10px block.
	src := code.Image(-10)

	dst := image.NewGray(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding PNG: %v: %w", err, domain.ErrQRGeneration)
	}
	return buf.Bytes(), nil
}
