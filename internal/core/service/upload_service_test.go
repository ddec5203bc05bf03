package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestUploadService_AcceptsImage(t *testing.T) {
	store := &stubFileStore{}
	svc := NewUploadService(store, 0)

	url, err := svc.Upload(context.Background(), ports.UploadInput{
		Filename: "my holiday photo.png",
		Size:     int64(len(pngHeader)),
		Content:  bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "-my_holiday_photo.png"))
	require.Len(t, store.saved, 1)
	for _, data := range store.saved {
		assert.Equal(t, pngHeader, data)
	}
}

func TestUploadService_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   ports.UploadInput
	}{
		{"no file", ports.UploadInput{Filename: "a.png"}},
		{"declared too large", ports.UploadInput{Filename: "a.png", Size: 64, Content: bytes.NewReader(pngHeader)}},
		{"actually too large", ports.UploadInput{Filename: "a.png", Content: bytes.NewReader(append(pngHeader, make([]byte, 64)...))}},
		{"not an image", ports.UploadInput{Filename: "a.png", Content: strings.NewReader("hello, world")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubFileStore{}
			svc := NewUploadService(store, 48)

			_, err := svc.Upload(context.Background(), tt.in)
			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Empty(t, store.saved)
		})
	}
}

func TestStoredName_StripsDirectories(t *testing.T) {
	name := storedName("../../etc/pass wd")
	assert.True(t, strings.HasSuffix(name, "-pass_wd"))
	assert.NotContains(t, name, "/")
}

func TestUploadService_TooLargeMessageFollowsLimit(t *testing.T) {
	tests := []struct {
		limit int64
		want  string
	}{
		{DefaultMaxUploadBytes, "File too large. Maximum size is 5MB."},
		{2 << 20, "File too large. Maximum size is 2MB."},
		{512 << 10, "File too large. Maximum size is 512KB."},
		{48, "File too large. Maximum size is 48 bytes."},
	}
	for _, tt := range tests {
		svc := NewUploadService(&stubFileStore{}, tt.limit)
		_, err := svc.Upload(context.Background(), ports.UploadInput{
			Filename: "a.png",
			Size:     tt.limit + 1,
			Content:  bytes.NewReader(pngHeader),
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, tt.want, verr.Fields[0].Message)
	}
}
