// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging prepares uploaded pictures for the portfolio. Images wider
// than the limit are downscaled, preserving aspect ratio; smaller ones are
// stored as uploaded. Nothing is ever upscaled.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxWidth is the widest image the portfolio ever displays.
	MaxWidth = 1600

	// jpegQuality is used when a downscaled image is re-encoded as JPEG.
	jpegQuality = 85

	// maxPixels caps decoded size to refuse decompression bombs.
	// 10000x10000 = 100 million pixels, ~400 MB as RGBA.
	maxPixels = 100_000_000
)

// ErrUnsupported is returned for data that is not a decodable image.
var ErrUnsupported = errors.New("imaging: unsupported image format")

// Image is a processed upload ready for storage.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
	Resized     bool
}

// Prepare decodes src and downscales it to maxWidth when wider. PNG stays
// PNG so transparency survives; JPEG and WebP become JPEG. GIFs are kept
// as uploaded to preserve animation.
func Prepare(src []byte, maxWidth int) (*Image, error) {
	if maxWidth <= 0 {
		maxWidth = MaxWidth
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, ErrUnsupported
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("imaging: image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	original := &Image{
		Data:   src,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	switch format {
	case "jpeg":
		original.ContentType, original.Ext = "image/jpeg", ".jpg"
	case "png":
		original.ContentType, original.Ext = "image/png", ".png"
	case "gif":
		original.ContentType, original.Ext = "image/gif", ".gif"
		return original, nil
	case "webp":
		original.ContentType, original.Ext = "image/webp", ".webp"
	default:
		return nil, ErrUnsupported
	}

	if cfg.Width <= maxWidth {
		return original, nil
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	width := maxWidth
	height := int(float64(bounds.Dy()) * float64(maxWidth) / float64(bounds.Dx()))
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	out := &Image{Width: width, Height: height, Resized: true}
	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, dst); err != nil {
			return nil, fmt.Errorf("imaging: encode png: %w", err)
		}
		out.ContentType, out.Ext = "image/png", ".png"
	} else {
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("imaging: encode jpeg: %w", err)
		}
		out.ContentType, out.Ext = "image/jpeg", ".jpg"
	}
	out.Data = buf.Bytes()
	return out, nil
}
