package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFileType(t *testing.T) {
	tests := []struct {
		contentType string
		want        FileType
	}{
		{"image/png", FileTypeImage},
		{"image/svg+xml", FileTypeImage},
		{"IMAGE/JPEG", FileTypeImage},
		{"audio/mpeg", FileTypeAudio},
		{"audio/ogg; codecs=opus", FileTypeAudio},
		{"video/mp4", FileTypeOther},
		{"application/octet-stream", FileTypeOther},
		{"imagex/png", FileTypeOther},
		{"", FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFileType(tt.contentType))
		})
	}
}
