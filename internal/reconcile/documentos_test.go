package reconcile

import (
	"testing"

	"asociacion-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReciboDesdeLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "link completo de comprobante",
			link: "https://x.supabase.co/storage/v1/object/public/documents/123/B001-000123.pdf",
			want: "B001-000123",
		},
		{
			name: "sin extensión pdf queda igual",
			link: "https://x.supabase.co/storage/v1/object/public/documents/123/B001-000123",
			want: "B001-000123",
		},
		{
			name: "solo nombre de archivo",
			link: "B001-000001.pdf",
			want: "B001-000001",
		},
		{
			name: "otra extensión no se recorta",
			link: "https://x.co/public/documents/recibo.png",
			want: "recibo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReciboDesdeLink(tt.link))
		})
	}
}

func TestFiltrarDocumentos(t *testing.T) {
	linkFicha := "https://x.co/storage/v1/object/public/documents/123/ficha.pdf"
	linkVenta := "https://x.co/storage/v1/object/public/documents/123/B001-000001.pdf"
	linkEgreso := "https://x.co/storage/v1/object/public/documents/123/B001-000002.pdf"
	linkSinTipo := "https://x.co/storage/v1/object/public/documents/123/B001-000099.pdf"

	reciboTipos := map[string]string{
		"B001-000001": models.TransaccionVenta,
		"B001-000002": models.TransaccionEgreso,
	}

	docs := []models.SocioDocumento{
		{ID: 1, TipoDocumento: models.TipoFicha, LinkDocumento: &linkFicha},
		{ID: 2, TipoDocumento: models.TipoFicha, LinkDocumento: nil},            // sin link, fuera
		{ID: 3, TipoDocumento: "Carta poder", LinkDocumento: &linkFicha},        // tipo no permitido
		{ID: 4, TipoDocumento: models.TipoComprobantePago, LinkDocumento: &linkVenta},   // venta, queda
		{ID: 5, TipoDocumento: models.TipoComprobantePago, LinkDocumento: &linkEgreso},  // egreso, fuera
		{ID: 6, TipoDocumento: models.TipoComprobantePago, LinkDocumento: &linkSinTipo}, // recibo desconocido, fuera
	}

	got := FiltrarDocumentos(docs, reciboTipos)

	assert.Len(t, got, 2)

	assert.Equal(t, uint(1), got[0].ID)
	assert.Nil(t, got[0].TransactionType)

	assert.Equal(t, uint(4), got[1].ID)
	assert.NotNil(t, got[1].TransactionType)
	assert.Equal(t, models.TransaccionVenta, *got[1].TransactionType)
}

// Aplicar el filtro sobre su propio resultado no cambia nada.
func TestFiltrarDocumentosIdempotente(t *testing.T) {
	linkVenta := "https://x.co/storage/v1/object/public/documents/123/B001-000001.pdf"
	reciboTipos := map[string]string{"B001-000001": models.TransaccionVenta}

	docs := []models.SocioDocumento{
		{ID: 1, TipoDocumento: models.TipoComprobantePago, LinkDocumento: &linkVenta},
	}

	primera := FiltrarDocumentos(docs, reciboTipos)

	// reconstruir la entrada desde la salida
	redocs := make([]models.SocioDocumento, len(primera))
	for i, v := range primera {
		link := v.LinkDocumento
		redocs[i] = models.SocioDocumento{ID: v.ID, TipoDocumento: v.TipoDocumento, LinkDocumento: &link}
	}

	segunda := FiltrarDocumentos(redocs, reciboTipos)
	assert.Equal(t, primera, segunda)
}

func TestFiltrarDocumentosVacio(t *testing.T) {
	got := FiltrarDocumentos(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
