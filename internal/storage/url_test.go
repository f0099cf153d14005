package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectURL(t *testing.T) {
	tests := []struct {
		name       string
		link       string
		wantBucket string
		wantPath   string
		wantErr    bool
	}{
		{
			name:       "URL pública completa",
			link:       "https://x.supabase.co/storage/v1/object/public/documents/12345678/archivo.pdf",
			wantBucket: "documents",
			wantPath:   "12345678/archivo.pdf",
		},
		{
			name:       "ruta con subcarpetas",
			link:       "https://x.supabase.co/storage/v1/object/public/planos/12345678/a/b/plano.pdf",
			wantBucket: "planos",
			wantPath:   "12345678/a/b/plano.pdf",
		},
		{
			name:    "sin el segmento public",
			link:    "https://x.supabase.co/storage/v1/object/documents/archivo.pdf",
			wantErr: true,
		},
		{
			name:    "public al final sin bucket ni ruta",
			link:    "https://x.supabase.co/storage/v1/object/public",
			wantErr: true,
		},
		{
			name:    "bucket sin ruta de objeto",
			link:    "https://x.supabase.co/storage/v1/object/public/documents",
			wantErr: true,
		},
		{
			name:    "cadena vacía",
			link:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, path, err := ParseObjectURL(tt.link)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}
