package ai

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/disintegration/imaging"
)

const (
	// Street View thumbnails are re-encoded before upload
	defaultMaxImageWidth = 1000 // px - enough detail for bollards and signs
	jpegQuality          = 75   // balance between quality and size
)

// ImageProcessor normalizes fetched views into size-capped JPEG.
type ImageProcessor struct {
	maxWidth int
}

func NewImageProcessor(maxWidth int) *ImageProcessor {
	if maxWidth <= 0 {
		maxWidth = defaultMaxImageWidth
	}
	return &ImageProcessor{maxWidth: maxWidth}
}

// OptimizeForAI decodes any supported image, downsizes it to the width
// limit preserving aspect ratio and returns it as JPEG.
func (p *ImageProcessor) OptimizeForAI(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var optimized image.Image = img
	if img.Bounds().Dx() > p.maxWidth {
		optimized = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, optimized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}
