package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			"explicit public url",
			config.StorageConfig{Bucket: "aeon", Region: "us-east-1", PublicURL: "https://cdn.aeon.test/"},
			"https://cdn.aeon.test/uploads/key.png",
		},
		{
			"path style endpoint",
			config.StorageConfig{Bucket: "aeon", Endpoint: "http://localhost:9000", PathStyle: true},
			"http://localhost:9000/aeon/uploads/key.png",
		},
		{
			"default aws url",
			config.StorageConfig{Bucket: "aeon", Region: "eu-west-1"},
			"https://aeon.s3.eu-west-1.amazonaws.com/uploads/key.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &S3Storage{cfg: tt.cfg}
			assert.Equal(t, tt.want, s.publicURL("uploads/key.png"))
		})
	}
}

func TestBuildKeyPreservesExtension(t *testing.T) {
	s := &S3Storage{cfg: config.StorageConfig{Bucket: "aeon"}}

	key := s.buildKey("../../etc/passwd.PDF")
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "..")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "lookbook.pdf", sanitizeFilename(" lookbook.pdf "))
	assert.Equal(t, "a_b.png", sanitizeFilename("a b.png"))
	assert.Equal(t, "_etc_passwd", sanitizeFilename("../etc/passwd"))
}
