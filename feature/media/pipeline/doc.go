// Package pipeline normalizes uploaded listing photos.
//
// Images whose longest edge exceeds the configured maximum are downscaled with
// aspect ratio preserved, then encoded as lossy WebP. Transcoding is best effort:
// on failure the image is re-encoded in its original format at a slightly higher
// quality instead of failing the upload.
//
// Processing is CPU-bound, so a weighted semaphore caps how many images are
// decoded and encoded at once.
package pipeline
