package common

import "strings"

// MediaFileType classifies uploaded files stored in GridFS.
type MediaFileType string

const (
	MediaFileTypeImage   MediaFileType = "image"
	MediaFileTypeUnknown MediaFileType = "unknown"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (mft MediaFileType) String() string {
	return string(mft)
}

func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage
}

func DetectFileType(mimeType string) MediaFileType {
	if _, ok := allowedImageTypes[normalizeMime(mimeType)]; ok {
		return MediaFileTypeImage
	}
	return MediaFileTypeUnknown
}

// ImageExtension returns the canonical file extension for an accepted image MIME type.
func ImageExtension(mimeType string) (string, bool) {
	ext, ok := allowedImageTypes[normalizeMime(mimeType)]
	return ext, ok
}

// normalizeMime drops parameters such as "; charset=..." and lowercases the type.
func normalizeMime(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
