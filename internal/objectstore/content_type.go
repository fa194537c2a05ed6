package objectstore

import (
	"path/filepath"
	"strings"
)

const (
	headerContentType  = "Content-Type"
	contentTypeMPEG    = "audio/mpeg"
	contentTypeWAV     = "audio/wav"
	contentTypeText    = "text/plain; charset=utf-8"
	contentTypeDefault = "application/octet-stream"
)

// ContentTypeForKey maps an object key's extension to a MIME type.
func ContentTypeForKey(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".mp3":
		return contentTypeMPEG
	case ".wav":
		return contentTypeWAV
	case ".txt":
		return contentTypeText
	default:
		return contentTypeDefault
	}
}
