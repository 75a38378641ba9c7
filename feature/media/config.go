package media

import "listing-media/feature/media/pipeline"

// Config holds upload limits and image pipeline settings.
type Config struct {
	// MaxUploadBytes is the largest accepted upload.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" default:"10485760"`
	// MaxPhotosPerListing caps the number of photos of one listing.
	MaxPhotosPerListing int `mapstructure:"max_photos_per_listing" default:"100"`
	// MaxEdge is the longest stored edge in pixels.
	MaxEdge int `mapstructure:"max_edge" default:"2048"`
	// MaxPixels is the largest accepted width times height of an upload.
	MaxPixels int64 `mapstructure:"max_pixels" default:"40000000"`
	// WebPQuality is the transcode quality.
	WebPQuality int `mapstructure:"webp_quality" default:"80"`
	// FallbackQuality is used when transcoding fails and the original format is kept.
	FallbackQuality int `mapstructure:"fallback_quality" default:"90"`
	// TranscodeWorkers bounds concurrent image processing.
	TranscodeWorkers int `mapstructure:"transcode_workers" default:"4"`
}

// Pipeline returns the image pipeline settings.
func (c Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		MaxEdge:         c.MaxEdge,
		MaxPixels:       c.MaxPixels,
		WebPQuality:     c.WebPQuality,
		FallbackQuality: c.FallbackQuality,
		Workers:         c.TranscodeWorkers,
	}
}
