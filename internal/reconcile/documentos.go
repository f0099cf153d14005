package reconcile

import (
	"strings"

	"asociacion-backend/internal/models"
)

// Tipos de documento que se muestran en la vista de documentos. Cualquier
// otro tipo cargado históricamente queda fuera.
var tiposPermitidos = map[models.TipoDocumento]struct{}{
	models.TipoPlanosUbicacion:    {},
	models.TipoMemoriaDescriptiva: {},
	models.TipoFicha:              {},
	models.TipoContrato:           {},
	models.TipoComprobantePago:    {},
}

// DocumentoView es un documento listo para mostrar: pasó el filtro de tipo y
// link, y si es comprobante trae el tipo de transacción resuelto.
type DocumentoView struct {
	ID              uint                 `json:"id"`
	TipoDocumento   models.TipoDocumento `json:"tipo_documento"`
	LinkDocumento   string               `json:"link_documento"`
	TransactionType *string              `json:"transaction_type,omitempty"`
}

// FiltrarDocumentos aplica el filtro de dos etapas sobre los documentos
// crudos de un socio:
//
//  1. descarta tipos no permitidos y documentos sin link;
//  2. para los comprobantes de pago, extrae el serie-correlativo del nombre
//     del archivo, lo busca en el índice recibo → tipo y solo conserva el
//     documento si el tipo es Venta o Ingreso, anotándolo en el resultado.
//
// El enriquecimiento solo ocurre sobre documentos que ya pasaron la primera
// etapa. La función es idempotente sobre su propio resultado.
func FiltrarDocumentos(docs []models.SocioDocumento, reciboTipos map[string]string) []DocumentoView {
	out := make([]DocumentoView, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		if _, ok := tiposPermitidos[doc.TipoDocumento]; !ok {
			continue
		}
		if doc.LinkDocumento == nil || *doc.LinkDocumento == "" {
			continue
		}

		view := DocumentoView{
			ID:            doc.ID,
			TipoDocumento: doc.TipoDocumento,
			LinkDocumento: *doc.LinkDocumento,
		}

		if doc.TipoDocumento == models.TipoComprobantePago {
			recibo := ReciboDesdeLink(*doc.LinkDocumento)
			tipo, ok := reciboTipos[recibo]
			if !ok || !EsIngresoConfirmado(tipo) {
				continue
			}
			view.TransactionType = &tipo
		}

		out = append(out, view)
	}
	return out
}

// ReciboDesdeLink extrae el serie-correlativo del link de un comprobante:
// el último segmento de la ruta sin la extensión ".pdf".
// Ej: ".../comprobantes/B001-000123.pdf" → "B001-000123".
func ReciboDesdeLink(link string) string {
	parts := strings.Split(link, "/")
	nombre := parts[len(parts)-1]
	return strings.TrimSuffix(nombre, ".pdf")
}
