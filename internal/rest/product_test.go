package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProductImage(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     bool
	}{
		{name: "jpeg", filename: "kompos.jpeg", contentType: "image/jpeg", size: 1024, wantErr: false},
		{name: "jpg", filename: "kompos.jpg", contentType: "image/jpeg", size: 1024, wantErr: false},
		{name: "png", filename: "kompos.png", contentType: "image/png", size: 1024, wantErr: false},
		{name: "gif", filename: "kompos.gif", contentType: "image/gif", size: 1024, wantErr: false},
		{name: "webp", filename: "kompos.webp", contentType: "image/webp", size: 1024, wantErr: false},
		{name: "uppercase_extension", filename: "KOMPOS.JPG", contentType: "image/jpeg", size: 1024, wantErr: false},
		{name: "exactly_five_megabytes", filename: "kompos.jpg", contentType: "image/jpeg", size: 5 << 20, wantErr: false},
		{name: "over_five_megabytes", filename: "kompos.jpg", contentType: "image/jpeg", size: 5<<20 + 1, wantErr: true},
		{name: "pdf_extension", filename: "invoice.pdf", contentType: "application/pdf", size: 1024, wantErr: true},
		{name: "no_extension", filename: "kompos", contentType: "image/jpeg", size: 1024, wantErr: true},
		{name: "image_extension_but_text_content_type", filename: "kompos.jpg", contentType: "text/plain", size: 1024, wantErr: true},
		{name: "missing_content_type_falls_back_to_extension", filename: "kompos.jpg", contentType: "", size: 1024, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProductImage(tt.filename, tt.contentType, tt.size)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
