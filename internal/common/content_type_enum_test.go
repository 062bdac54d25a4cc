package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaFileType_IsValid(t *testing.T) {
	assert.True(t, MediaFileTypeImage.IsValid())
	assert.False(t, MediaFileTypeUnknown.IsValid())
	assert.Equal(t, "image", MediaFileTypeImage.String())
}

func TestDetectFileType(t *testing.T) {
	edgeCases := []struct {
		input    string
		expected MediaFileType
	}{
		{"image/jpeg", MediaFileTypeImage},
		{"image/png", MediaFileTypeImage},
		{"IMAGE/GIF", MediaFileTypeImage},
		{"image/webp; charset=binary", MediaFileTypeImage},
		{"image/svg+xml", MediaFileTypeUnknown},
		{"video/mp4", MediaFileTypeUnknown},
		{"", MediaFileTypeUnknown},
	}

	for _, testCase := range edgeCases {
		result := DetectFileType(testCase.input)
		assert.Equal(t, testCase.expected, result, "Failed for input: %s", testCase.input)
	}
}

func TestImageExtension(t *testing.T) {
	ext, ok := ImageExtension("image/jpeg")
	assert.True(t, ok)
	assert.Equal(t, ".jpg", ext)

	_, ok = ImageExtension("application/pdf")
	assert.False(t, ok)
}
