// Package filestorage keeps uploaded and generated files on local disk and hands
// back the public URL they are served from.
package filestorage

import (
	"errors"
	"mime/multipart"
	"sort"
)

// Folders used by the portal.
const (
	FolderResourceImages = "resources/images"
	FolderResourcePDFs   = "resources/pdfs"
	FolderTeacherImages  = "teachers"
	FolderGenerated      = "generated"
)

// ErrUnsupportedType is returned for uploads whose extension a folder does not accept.
var ErrUnsupportedType = errors.New("unsupported file type")

// Storage defines the file storage operations used by the services.
type Storage interface {
	// SaveFile stores an uploaded file under folder and returns its URL.
	SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error)
	// SaveBytes stores raw bytes (generated images) under folder and returns its URL.
	SaveBytes(data []byte, ext, folder string) (string, error)
	// DeleteFile removes a file previously returned by SaveFile or SaveBytes.
	DeleteFile(fileURL string) error
	// Owns reports whether fileURL points into this storage.
	Owns(fileURL string) bool
}

var allowedExtensions = map[string]map[string]bool{
	FolderResourceImages: {".png": true, ".jpg": true, ".jpeg": true, ".webp": true},
	FolderTeacherImages:  {".png": true, ".jpg": true, ".jpeg": true, ".webp": true},
	FolderResourcePDFs:   {".pdf": true},
	FolderGenerated:      {".png": true, ".jpg": true, ".webp": true},
}

// Allowed reports whether folder accepts files with extension ext. Unknown
// folders accept anything.
func Allowed(folder, ext string) bool {
	exts, ok := allowedExtensions[folder]
	if !ok {
		return true
	}
	return exts[ext]
}

// AllowedExtensions lists the extensions folder accepts, sorted, or nil when it
// accepts anything.
func AllowedExtensions(folder string) []string {
	exts, ok := allowedExtensions[folder]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(exts))
	for ext := range exts {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
