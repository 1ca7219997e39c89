package thumb

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latted-app/latted/internal/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestMake_ScalesImage(t *testing.T) {
	g := New()

	out := g.Make(context.Background(), pngBytes(t, 1024, 768), models.MediaImage)
	require.NotNil(t, out)

	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 256, decoded.Bounds().Dx())
	require.Equal(t, 192, decoded.Bounds().Dy())
}

func TestMake_GarbageResolvesToNil(t *testing.T) {
	g := New()
	require.Nil(t, g.Make(context.Background(), []byte("not an image"), models.MediaImage))
	require.Nil(t, g.Make(context.Background(), nil, models.MediaImage))
}

func TestMake_VideoResolvesToNil(t *testing.T) {
	g := New()
	require.Nil(t, g.Make(context.Background(), pngBytes(t, 8, 8), models.MediaVideo))
}

func TestMake_RespectsCancelledContext(t *testing.T) {
	g := &ImageGenerator{Timeout: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Nil(t, g.Make(ctx, pngBytes(t, 64, 64), models.MediaImage))
}
