// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded raster images and produces JPEG
// thumbnails for the media library. Decoding is pure Go: JPEG, PNG and
// GIF from the standard library, WebP from golang.org/x/image.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// ThumbWidth is the maximum thumbnail width in pixels.
	ThumbWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// MaxPixels caps the decoded size to keep image bombs out of memory.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	MaxPixels = 100_000_000
)

// ErrTooLarge is returned for images with more than MaxPixels pixels.
var ErrTooLarge = errors.New("imaging: image too large")

// Info describes an image without decoding its pixels.
type Info struct {
	Width  int
	Height int
	Format string // "jpeg", "png", "gif" or "webp"
}

// Probe reads the header of data.
func Probe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("imaging: decode config: %w", err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Thumbnail scales data down to maxWidth, preserving the aspect ratio,
// and encodes the result as JPEG. Transparent areas become white.
// Returns nil when the image is already narrow enough.
func Thumbnail(data []byte, maxWidth int) ([]byte, error) {
	info, err := Probe(data)
	if err != nil {
		return nil, err
	}
	if int64(info.Width)*int64(info.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, info.Width, info.Height)
	}
	if info.Width <= maxWidth {
		return nil, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
