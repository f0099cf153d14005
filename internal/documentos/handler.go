package documentos

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"asociacion-backend/internal/audit"
	"asociacion-backend/internal/auth"
	"asociacion-backend/internal/database"
	"asociacion-backend/internal/models"
	"asociacion-backend/internal/reconcile"
	"asociacion-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Documentos obligatorios del expediente de cada socio. Si faltan, la vista
// los reporta para que el operador los reclame.
var tiposObligatorios = []models.TipoDocumento{
	models.TipoPlanosUbicacion,
	models.TipoMemoriaDescriptiva,
}

type DocumentosViewResponse struct {
	SocioID      uint                      `json:"socio_id"`
	DNI          string                    `json:"dni"`
	NombreSocio  string                    `json:"nombre_socio"`
	Pagado       bool                      `json:"pagado"`
	NumeroRecibo *string                   `json:"numero_recibo"`
	Documentos   []reconcile.DocumentoView `json:"documentos"`
	Faltantes    []models.TipoDocumento    `json:"faltantes"`
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "No se pudo obtener el usuario")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
	}

	return userID, user.Name, nil
}

// -------------------------------------------------
// GET /api/socios/:id/documentos
// Las tres lecturas (socio, documentos, libro) corren en paralelo y
// cualquier falla aborta la vista completa: un expediente a medias es peor
// que un error.
// -------------------------------------------------
func ListDocumentosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var (
			socio    models.SocioTitular
			docs     []models.SocioDocumento
			ingresos []models.Ingreso
		)

		g := new(errgroup.Group)
		g.Go(func() error {
			return database.DB.First(&socio, "id = ?", id).Error
		})
		g.Go(func() error {
			return database.DB.Where("socio_id = ?", id).Order("id asc").Find(&docs).Error
		})
		g.Go(func() error {
			return database.DB.Order("id asc").Find(&ingresos).Error
		})

		if err := g.Wait(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar el expediente del socio: "+err.Error())
		}

		reciboTipos := reconcile.BuildReciboTipoIndex(ingresos)
		porDNI := reconcile.BuildIngresosPorDNI(ingresos)

		// El expediente siempre usa la política de pago, aunque el padrón
		// corra con la de actividad; ver el paquete reconcile.
		pago := reconcile.ResolverPago(porDNI, socio.DNI)

		visibles := reconcile.FiltrarDocumentos(docs, reciboTipos)

		presentes := make(map[models.TipoDocumento]bool, len(visibles))
		for _, d := range visibles {
			presentes[d.TipoDocumento] = true
		}
		faltantes := make([]models.TipoDocumento, 0, len(tiposObligatorios))
		for _, t := range tiposObligatorios {
			if !presentes[t] {
				faltantes = append(faltantes, t)
			}
		}

		return c.JSON(DocumentosViewResponse{
			SocioID:      socio.ID,
			DNI:          socio.DNI,
			NombreSocio:  strings.TrimSpace(socio.Nombres + " " + socio.ApellidoPaterno),
			Pagado:       pago.Pagado,
			NumeroRecibo: pago.NumeroRecibo,
			Documentos:   visibles,
			Faltantes:    faltantes,
		})
	}
}

// -------------------------------------------------
// POST /api/socios/:id/documentos  (multipart: file, tipo_documento)
// -------------------------------------------------
func UploadDocumentoHandler(store storage.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var socio models.SocioTitular
		if err := database.DB.First(&socio, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Socio no encontrado")
		}

		tipo := models.TipoDocumento(strings.TrimSpace(c.FormValue("tipo_documento")))
		switch tipo {
		case models.TipoPlanosUbicacion, models.TipoMemoriaDescriptiva,
			models.TipoFicha, models.TipoContrato, models.TipoComprobantePago:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de documento no permitido")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Falta el archivo en la petición")
		}

		src, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el archivo recibido")
		}
		defer src.Close()

		bucket := storage.BucketForTipoDocumento(tipo)
		nombre := filepath.Base(fileHeader.Filename)
		objectPath := fmt.Sprintf("%s/%s_%s", socio.DNI, uuid.NewString(), nombre)

		link, err := store.Upload(c.Context(), bucket, objectPath, src, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "No se pudo subir el archivo al almacenamiento: "+err.Error())
		}

		// Un tipo por socio: si ya había fila para este tipo, se reemplaza el
		// link. El archivo anterior queda huérfano en el almacenamiento y se
		// limpia con la eliminación explícita.
		var doc models.SocioDocumento
		err = database.DB.Where("socio_id = ? AND tipo_documento = ?", socio.ID, tipo).First(&doc).Error

		accion := models.AuditActionCreate
		if err == nil {
			doc.LinkDocumento = &link
			accion = models.AuditActionUpdate
			if err := database.DB.Save(&doc).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la fila del documento")
			}
		} else {
			doc = models.SocioDocumento{
				SocioID:       socio.ID,
				TipoDocumento: tipo,
				LinkDocumento: &link,
			}
			if err := database.DB.Create(&doc).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el documento")
			}
		}

		if userID, userName, uerr := getUserInfo(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "socio_documento",
				EntityID:    doc.ID,
				Action:      accion,
				Description: fmt.Sprintf("Documento %q cargado para el socio DNI %s", tipo, socio.DNI),
				Before:      nil,
				After:       doc,
			}); logErr != nil {
				log.Printf("No se pudo escribir el log de auditoría: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// eliminarArchivo borra del almacenamiento el archivo de un documento. El
// bucket sale de la tabla de tipos; el enlace solo aporta la ruta del objeto.
// Devuelve error únicamente cuando el enlace no se puede descomponer (eso
// bloquea la eliminación completa); la falla del almacenamiento se loguea como
// advertencia y no corta la operación.
func eliminarArchivo(ctx context.Context, store storage.Client, doc *models.SocioDocumento) error {
	if doc.LinkDocumento == nil || *doc.LinkDocumento == "" {
		return nil
	}

	bucketURL, objectPath, err := storage.ParseObjectURL(*doc.LinkDocumento)
	if err != nil {
		return err
	}

	bucket := storage.BucketForTipoDocumento(doc.TipoDocumento)
	if bucketURL != bucket {
		log.Printf("[WARN] El enlace del documento %d apunta al bucket %q pero su tipo corresponde a %q; se usa el de la tabla", doc.ID, bucketURL, bucket)
	}

	if err := store.Remove(ctx, bucket, objectPath); err != nil {
		log.Printf("[WARN] No se pudo borrar el archivo %s/%s del almacenamiento: %v", bucket, objectPath, err)
	}

	return nil
}

// -------------------------------------------------
// DELETE /api/documentos/:id
//
// Eliminación en tres pasos, en este orden:
//  1. resolver el bucket desde la tabla de tipos (la URL solo se usa para
//     la ruta del objeto; si no se puede descomponer, se aborta todo);
//  2. borrar el archivo del almacenamiento (si falla, solo advertencia: un
//     archivo huérfano es recuperable, una fila huérfana no);
//  3. borrar la fila de la base (si falla, error fatal de la operación).
// -------------------------------------------------
func DeleteDocumentoHandler(store storage.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var doc models.SocioDocumento
		if err := database.DB.First(&doc, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Documento no encontrado")
		}

		if err := eliminarArchivo(c.Context(), store, &doc); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo interpretar el enlace del documento: "+err.Error())
		}

		if err := database.DB.Delete(&models.SocioDocumento{}, "id = ?", doc.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la fila del documento")
		}

		if userID, userName, uerr := getUserInfo(c); uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "socio_documento",
				EntityID:    doc.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Documento %q eliminado (socio %d)", doc.TipoDocumento, doc.SocioID),
				Before:      nil,
				After:       doc,
			}); logErr != nil {
				log.Printf("No se pudo escribir el log de auditoría: %v", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
