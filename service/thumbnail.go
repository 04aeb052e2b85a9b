package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

const (
	thumbMaxDim  = 300
	thumbQuality = 70
)

// Thumbnail re-encodes artwork bytes as a bounded JPEG preview. Non-image
// attachments (PDFs, print-ready files) have no preview and return an error
// the controller maps to 415.
func Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > thumbMaxDim || bounds.Dy() > thumbMaxDim {
		img = imaging.Fit(img, thumbMaxDim, thumbMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
