package storage

import (
	"context"
	"io"

	"asociacion-backend/internal/models"
)

// Client abstrae el almacenamiento de objetos donde viven los documentos de
// los socios. Las rutas se direccionan por bucket + ruta de objeto.
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=client.go Client
type Client interface {
	// Upload sube el contenido y devuelve la URL pública del objeto.
	Upload(ctx context.Context, bucket, path string, r io.Reader, contentType string) (string, error)
	// Remove elimina el objeto del bucket.
	Remove(ctx context.Context, bucket, path string) error
	// PublicURL arma la URL pública de un objeto sin tocar la red.
	PublicURL(bucket, path string) string
}

// BucketForTipoDocumento resuelve el bucket de cada tipo de documento con una
// tabla explícita. Los tipos sin bucket propio caen en el genérico; inferir el
// bucket desde la URL ya demostró producir desajustes (se loguean como
// advertencia al eliminar).
func BucketForTipoDocumento(tipo models.TipoDocumento) string {
	switch tipo {
	case models.TipoPlanosUbicacion:
		return "planos"
	case models.TipoMemoriaDescriptiva:
		return "memorias"
	default:
		return "documents"
	}
}
