package storage

import (
	"testing"

	"asociacion-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBucketForTipoDocumento(t *testing.T) {
	tests := []struct {
		tipo models.TipoDocumento
		want string
	}{
		{models.TipoPlanosUbicacion, "planos"},
		{models.TipoMemoriaDescriptiva, "memorias"},
		{models.TipoFicha, "documents"},
		{models.TipoContrato, "documents"},
		{models.TipoComprobantePago, "documents"},
		{"tipo inventado", "documents"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tipo), func(t *testing.T) {
			assert.Equal(t, tt.want, BucketForTipoDocumento(tt.tipo))
		})
	}
}

// La URL pública que arma el cliente tiene que poder descomponerse con
// ParseObjectURL: es el mismo enlace que después usa la eliminación.
func TestPublicURLRoundTrip(t *testing.T) {
	c := &SupabaseClient{baseURL: "https://proyecto.supabase.co"}

	link := c.PublicURL("documents", "12345678/archivo.pdf")

	bucket, path, err := ParseObjectURL(link)
	assert.NoError(t, err)
	assert.Equal(t, "documents", bucket)
	assert.Equal(t, "12345678/archivo.pdf", path)
}
