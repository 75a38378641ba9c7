package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"
)

// Accepted upload MIME types.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEGIF  = "image/gif"
	MIMEWebP = "image/webp"
)

// ErrUndecodable is returned when the bytes are not a decodable image.
var ErrUndecodable = errors.New("image could not be decoded")

// ErrTooManyPixels is returned when the declared dimensions exceed MaxPixels.
var ErrTooManyPixels = errors.New("image dimensions exceed the pixel limit")

// Config controls normalization and transcoding.
type Config struct {
	// MaxEdge is the longest allowed edge in pixels; larger images are downscaled.
	MaxEdge int
	// MaxPixels caps width times height as declared in the image header. Zero disables the cap.
	MaxPixels int64
	// WebPQuality is the lossy quality used for the web format.
	WebPQuality int
	// FallbackQuality is used when re-encoding in the original format.
	FallbackQuality int
	// Workers bounds concurrent CPU-heavy processing.
	Workers int
}

// Result is a processed image ready to store.
type Result struct {
	Data   []byte
	MIME   string
	Ext    string
	Width  int
	Height int
	// Transcoded is false when the fallback path was taken.
	Transcoded bool
}

type webpEncoder func(w io.Writer, img image.Image, quality int) error

// Pipeline normalizes and transcodes uploaded images on a bounded worker pool.
type Pipeline struct {
	cfg        Config
	sem        *semaphore.Weighted
	encodeWebP webpEncoder
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Pipeline{
		cfg:        cfg,
		sem:        semaphore.NewWeighted(int64(cfg.Workers)),
		encodeWebP: encodeWebP,
	}
}

func encodeWebP(w io.Writer, img image.Image, quality int) (err error) {
	// The encoder is cgo-backed; a crash inside it must degrade to the fallback.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("webp encoder panic: %v", r)
		}
	}()
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: float32(quality)})
}

// Process downscales data if needed and transcodes it to WebP. When transcoding
// fails the image is re-encoded in its original format at FallbackQuality, or
// passed through untouched if it did not need resizing. Process only fails when
// the bytes cannot be decoded or ctx ends while waiting for a worker.
func (p *Pipeline) Process(ctx context.Context, data []byte, mime string) (*Result, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	resized := false
	b := img.Bounds()
	if p.cfg.MaxEdge > 0 && (b.Dx() > p.cfg.MaxEdge || b.Dy() > p.cfg.MaxEdge) {
		img = imaging.Fit(img, p.cfg.MaxEdge, p.cfg.MaxEdge, imaging.Lanczos)
		resized = true
	}
	b = img.Bounds()

	var buf bytes.Buffer
	if err := p.encodeWebP(&buf, img, p.cfg.WebPQuality); err == nil {
		return &Result{Data: buf.Bytes(), MIME: MIMEWebP, Ext: ".webp", Width: b.Dx(), Height: b.Dy(), Transcoded: true}, nil
	}

	res, err := p.fallback(img, data, mime, resized)
	if err != nil {
		return nil, err
	}
	res.Width, res.Height = b.Dx(), b.Dy()
	return res, nil
}

// checkDimensions reads only the image header, so oversized images are rejected
// before any pixel buffer is allocated.
func (p *Pipeline) checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrUndecodable, cfg.Width, cfg.Height)
	}
	if p.cfg.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > p.cfg.MaxPixels {
		return fmt.Errorf("%w: %dx%d is over %d", ErrTooManyPixels, cfg.Width, cfg.Height, p.cfg.MaxPixels)
	}
	return nil
}

func (p *Pipeline) fallback(img image.Image, original []byte, mime string, resized bool) (*Result, error) {
	var (
		buf    bytes.Buffer
		format imaging.Format
		opts   []imaging.EncodeOption
	)
	switch mime {
	case MIMEJPEG:
		format, opts = imaging.JPEG, []imaging.EncodeOption{imaging.JPEGQuality(p.cfg.FallbackQuality)}
	case MIMEPNG:
		format, opts = imaging.PNG, []imaging.EncodeOption{imaging.PNGCompressionLevel(png.BestCompression)}
	case MIMEGIF:
		format = imaging.GIF
	default:
		// No lossy WebP encoder is available on this path.
		if !resized {
			return &Result{Data: original, MIME: mime, Ext: Extension(mime)}, nil
		}
		format, opts, mime = imaging.JPEG, []imaging.EncodeOption{imaging.JPEGQuality(p.cfg.FallbackQuality)}, MIMEJPEG
	}

	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		if !resized {
			return &Result{Data: original, MIME: mime, Ext: Extension(mime)}, nil
		}
		return nil, fmt.Errorf("fallback encode: %w", err)
	}
	return &Result{Data: buf.Bytes(), MIME: mime, Ext: Extension(mime)}, nil
}

// Extension returns the file extension for an accepted MIME type.
func Extension(mime string) string {
	switch mime {
	case MIMEJPEG:
		return ".jpg"
	case MIMEPNG:
		return ".png"
	case MIMEGIF:
		return ".gif"
	case MIMEWebP:
		return ".webp"
	default:
		return ""
	}
}
