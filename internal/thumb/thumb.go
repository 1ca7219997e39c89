// Package thumb derives small preview images from entry media. Generation is
// best-effort: any decode failure or timeout yields a nil thumbnail, never an
// error, so entry creation is never blocked on it.
package thumb

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"time"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/latted-app/latted/internal/models"
)

// DefaultTimeout bounds one generation attempt.
const DefaultTimeout = 10 * time.Second

const maxSide = 256

// Generator produces thumbnails. The zero result is always nil on failure.
type Generator interface {
	Make(ctx context.Context, data []byte, kind models.MediaKind) []byte
}

// ImageGenerator decodes still images and scales them down. Video sources
// need a frame decoder this process does not carry, so they resolve to nil
// and the entry keeps a nil thumbnail until a future sync supplies one.
type ImageGenerator struct {
	Timeout time.Duration
}

func New() *ImageGenerator {
	return &ImageGenerator{Timeout: DefaultTimeout}
}

func (g *ImageGenerator) Make(ctx context.Context, data []byte, kind models.MediaKind) []byte {
	if kind != models.MediaImage || len(data) == 0 || ctx.Err() != nil {
		return nil
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan []byte, 1)
	go func() {
		done <- encode(data)
	}()

	select {
	case <-ctx.Done():
		return nil
	case out := <-done:
		return out
	}
}

func encode(data []byte) []byte {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	if w > h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return nil
	}
	return buf.Bytes()
}
