package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name     string
		imageURL string
		want     string
	}{
		{
			name:     "folder_path",
			imageURL: "https://res.cloudinary.com/demo/image/upload/v1712345678/sedulur_tani/products/kompos.jpg",
			want:     "sedulur_tani/products/kompos",
		},
		{
			name:     "no_folder",
			imageURL: "https://res.cloudinary.com/demo/image/upload/v1712345678/kompos.png",
			want:     "kompos",
		},
		{
			name:     "not_a_delivery_url",
			imageURL: "https://example.com/images/kompos.jpg",
			want:     "",
		},
		{
			name:     "empty",
			imageURL: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPublicID(tt.imageURL))
		})
	}
}

func TestSign(t *testing.T) {
	repo := NewImageRepository(CloudinaryConfig{CloudinaryAPISecret: "secret-a"})

	params := map[string]string{
		"public_id": "sedulur_tani/products/kompos",
		"timestamp": "1712345678",
	}

	first := repo.sign(params)
	second := repo.sign(params)

	assert.Len(t, first, 40, "hex-encoded SHA-1")
	assert.Equal(t, first, second, "same params must sign identically")

	other := NewImageRepository(CloudinaryConfig{CloudinaryAPISecret: "secret-b"})
	assert.NotEqual(t, first, other.sign(params), "signature depends on the secret")
}
