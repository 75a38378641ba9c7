package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func failingWebP(io.Writer, image.Image, int) error {
	return errors.New("encoder unavailable")
}

var testCfg = Config{MaxEdge: 64, WebPQuality: 80, FallbackQuality: 90, Workers: 2}

func TestProcess_TranscodesToWebP(t *testing.T) {
	p := New(testCfg)

	res, err := p.Process(context.Background(), encodeJPEG(t, 32, 16), MIMEJPEG)
	require.NoError(t, err)

	assert.True(t, res.Transcoded)
	assert.Equal(t, MIMEWebP, res.MIME)
	assert.Equal(t, ".webp", res.Ext)
	assert.Equal(t, MIMEWebP, Sniff(res.Data))
	assert.Equal(t, 32, res.Width)
	assert.Equal(t, 16, res.Height)
}

func TestProcess_DownscalesLongestEdge(t *testing.T) {
	p := New(testCfg)

	res, err := p.Process(context.Background(), encodePNG(t, 200, 100), MIMEPNG)
	require.NoError(t, err)
	assert.Equal(t, 64, res.Width)
	assert.Equal(t, 32, res.Height)

	res, err = p.Process(context.Background(), encodePNG(t, 50, 300), MIMEPNG)
	require.NoError(t, err)
	assert.Equal(t, 64, res.Height)
	assert.LessOrEqual(t, res.Width, 11)
}

func TestProcess_FallbackKeepsOriginalFormat(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		mime string
		ext  string
	}{
		{"JPEG", func(t *testing.T) []byte { return encodeJPEG(t, 100, 50) }, MIMEJPEG, ".jpg"},
		{"PNG", func(t *testing.T) []byte { return encodePNG(t, 100, 50) }, MIMEPNG, ".png"},
		{"GIF", func(t *testing.T) []byte {
			var buf bytes.Buffer
			require.NoError(t, gif.Encode(&buf, testImage(100, 50), nil))
			return buf.Bytes()
		}, MIMEGIF, ".gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(testCfg)
			p.encodeWebP = failingWebP

			res, err := p.Process(context.Background(), tt.data(t), tt.mime)
			require.NoError(t, err)
			assert.False(t, res.Transcoded)
			assert.Equal(t, tt.mime, res.MIME)
			assert.Equal(t, tt.ext, res.Ext)
			assert.Equal(t, tt.mime, Sniff(res.Data))
			assert.Equal(t, 64, res.Width)
		})
	}
}

func TestProcess_FallbackPassesThroughSmallWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeWebP(&buf, testImage(10, 10), 80))
	original := buf.Bytes()

	p := New(testCfg)
	p.encodeWebP = failingWebP

	res, err := p.Process(context.Background(), original, MIMEWebP)
	require.NoError(t, err)
	assert.Equal(t, original, res.Data)
	assert.Equal(t, MIMEWebP, res.MIME)
}

func TestProcess_Undecodable(t *testing.T) {
	_, err := New(testCfg).Process(context.Background(), []byte("definitely not an image"), MIMEJPEG)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestProcess_RejectsTooManyPixelsBeforeDecoding(t *testing.T) {
	// A single-colour paletted PNG compresses to a few kilobytes at any size.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 3000, 3000), color.Palette{color.Black})))
	require.Less(t, buf.Len(), 64<<10)

	p := New(Config{MaxEdge: 64, MaxPixels: 1_000_000, Workers: 1})
	require.NoError(t, p.sem.Acquire(context.Background(), 1))
	defer p.sem.Release(1)

	// The worker slot is held, so only a header check can answer without blocking.
	_, err := p.Process(context.Background(), buf.Bytes(), MIMEPNG)
	assert.ErrorIs(t, err, ErrTooManyPixels)

	_, err = p.Process(context.Background(), []byte("definitely not an image"), MIMEPNG)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestProcess_AcceptsImagesWithinPixelLimit(t *testing.T) {
	p := New(Config{MaxEdge: 64, MaxPixels: 100 * 50, Workers: 1})
	res, err := p.Process(context.Background(), encodePNG(t, 100, 50), MIMEPNG)
	require.NoError(t, err)
	assert.Equal(t, 64, res.Width)
}

func TestProcess_WaitsForWorker(t *testing.T) {
	p := New(Config{MaxEdge: 64, Workers: 1})
	require.NoError(t, p.sem.Acquire(context.Background(), 1))
	defer p.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Process(ctx, encodePNG(t, 4, 4), MIMEPNG)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSniffAndAllowed(t *testing.T) {
	assert.Equal(t, MIMEJPEG, Sniff(encodeJPEG(t, 2, 2)))
	assert.Equal(t, MIMEPNG, Sniff(encodePNG(t, 2, 2)))
	assert.Equal(t, MIMEWebP, Sniff([]byte("RIFF\x00\x00\x00\x00WEBPVP8 ")))
	assert.False(t, Allowed(Sniff([]byte("%PDF-1.4"))))

	assert.True(t, Allowed("image/JPG"))
	assert.True(t, Allowed("image/png; charset=binary"))
	assert.False(t, Allowed("image/tiff"))
	assert.Equal(t, "", Extension("image/tiff"))
}
