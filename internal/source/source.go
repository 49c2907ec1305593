// Package source lists and downloads scanned work orders from a local
// directory or a Google Cloud Storage bucket.
package source

import (
	"path"
	"strings"
)

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsSupported reports whether name looks like a scan the oracle can read.
func IsSupported(name string) bool {
	return supportedExtensions[strings.ToLower(path.Ext(name))]
}
