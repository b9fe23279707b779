// Package compress shrinks images before upload. Anything that is not a JPEG
// or PNG image is passed through untouched.
package compress

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/dmitrijs2005/gophupload/internal/client/models"
	"github.com/dmitrijs2005/gophupload/internal/common"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

const (
	DefaultMaxWidth  = 1000
	DefaultMaxHeight = 1000
	DefaultQuality   = 80
)

// ImageCompressor scales images down to fit a bounding box and re-encodes
// them. The result is held in memory.
type ImageCompressor struct{}

func NewImageCompressor() *ImageCompressor {
	return &ImageCompressor{}
}

// Compress returns f itself unless it is a JPEG or PNG image. Only images are
// read into memory.
func (c *ImageCompressor) Compress(ctx context.Context, f models.File, opts models.CompressOptions) (models.File, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", common.ErrCompression, f.Name(), err)
	}
	defer rc.Close()

	mt, err := mimetype.DetectReader(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: sniff %s: %w", common.ErrCompression, f.Name(), err)
	}
	if !mt.Is("image/jpeg") && !mt.Is("image/png") {
		return f, nil
	}

	if _, err := rc.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewind %s: %w", common.ErrCompression, f.Name(), err)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", common.ErrCompression, f.Name(), err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", common.ErrCompression, f.Name(), err)
	}

	scaled, resized := fit(img, opts.MaxWidth, opts.MaxHeight)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality(opts.Quality)})
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, scaled)
	default:
		return nil, fmt.Errorf("%w: unsupported image format %q", common.ErrCompression, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", common.ErrCompression, f.Name(), err)
	}

	if !resized && buf.Len() >= len(data) {
		return models.NewMemFile(f.Name(), data, mt.String()), nil
	}
	return models.NewMemFile(f.Name(), buf.Bytes(), mt.String()), nil
}

// fit scales img down so it fits within maxW x maxH, keeping the aspect
// ratio. Non-positive bounds are ignored. Images are never enlarged.
func fit(img image.Image, maxW, maxH int) (image.Image, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img, false
	}

	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1 {
		return img, false
	}

	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, true
}

func quality(q int) int {
	switch {
	case q <= 0:
		return DefaultQuality
	case q > 100:
		return 100
	}
	return q
}
