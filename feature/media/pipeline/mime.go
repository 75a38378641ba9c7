package pipeline

import (
	"bytes"
	"net/http"
	"strings"
)

var allowed = map[string]bool{
	MIMEJPEG: true,
	MIMEPNG:  true,
	MIMEGIF:  true,
	MIMEWebP: true,
}

// Allowed reports whether mime is an accepted upload type.
func Allowed(mime string) bool {
	return allowed[Normalize(mime)]
}

// Normalize lower-cases mime, strips parameters and maps common aliases.
func Normalize(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if mime == "image/jpg" || mime == "image/pjpeg" {
		return MIMEJPEG
	}
	return mime
}

// Sniff detects the content type from the leading bytes.
func Sniff(data []byte) string {
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return MIMEWebP
	}
	return Normalize(http.DetectContentType(data))
}
