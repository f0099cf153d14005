package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// publicMarker es el segmento fijo que precede al bucket en las URLs
// públicas del almacenamiento:
// /storage/v1/object/public/<bucket>/<ruta/del/objeto>
const publicMarker = "public"

// ParseObjectURL descompone la URL pública de un documento en bucket y ruta
// de objeto. Devuelve error si la URL no contiene el marcador esperado o si
// no queda ruta después del bucket; ese error debe bloquear cualquier
// eliminación antes de tocar el almacenamiento o la base.
func ParseObjectURL(link string) (bucket, objectPath string, err error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", fmt.Errorf("URL de documento inválida: %w", err)
	}

	segments := strings.Split(u.Path, "/")
	publicIndex := -1
	for i, seg := range segments {
		if seg == publicMarker {
			publicIndex = i
			break
		}
	}

	if publicIndex == -1 || publicIndex+2 >= len(segments) {
		return "", "", fmt.Errorf("formato de URL de documento inesperado: no se encontró el segmento %q o el bucket", publicMarker)
	}

	bucket = segments[publicIndex+1]
	objectPath = strings.Join(segments[publicIndex+2:], "/")

	if objectPath == "" {
		return "", "", fmt.Errorf("no se pudo extraer la ruta del archivo del enlace")
	}

	return bucket, objectPath, nil
}
