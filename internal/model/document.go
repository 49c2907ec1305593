package model

import (
	"net/http"
	"path"
	"strings"
)

// Media types accepted for extraction.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
)

// Document is a scanned work order fetched from a source.
type Document struct {
	Name string
	URL  string
	Data []byte
}

// MediaType returns the document's media type, taken from its extension or
// sniffed from its content.
func (d Document) MediaType() string {
	switch strings.ToLower(path.Ext(d.Name)) {
	case ".pdf":
		return MediaTypePDF
	case ".jpg", ".jpeg":
		return MediaTypeJPEG
	case ".png":
		return MediaTypePNG
	}
	mediaType := http.DetectContentType(d.Data)
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return mediaType
}
