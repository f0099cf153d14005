package socios

import (
	"fmt"
	"log"
	"strings"

	"asociacion-backend/internal/audit"
	"asociacion-backend/internal/auth"
	"asociacion-backend/internal/config"
	"asociacion-backend/internal/database"
	"asociacion-backend/internal/models"
	"asociacion-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

type SocioRequest struct {
	DNI             string `json:"dni"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	Celular         string `json:"celular"`
	Localidad       string `json:"localidad"`
	Mz              string `json:"mz"`
	Lote            string `json:"lote"`

	FechaNacimiento    string `json:"fecha_nacimiento"`
	Edad               string `json:"edad"`
	SituacionEconomica string `json:"situacion_economica"`
	DireccionDNI       string `json:"direccion_dni"`
	RegionDNI          string `json:"region_dni"`
	ProvinciaDNI       string `json:"provincia_dni"`
	DistritoDNI        string `json:"distrito_dni"`
	RegionVivienda     string `json:"region_vivienda"`
	ProvinciaVivienda  string `json:"provincia_vivienda"`
	DistritoVivienda   string `json:"distrito_vivienda"`
	DireccionVivienda  string `json:"direccion_vivienda"`
}

type SocioResponse struct {
	ID              uint    `json:"id"`
	DNI             string  `json:"dni"`
	Nombres         string  `json:"nombres"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno string  `json:"apellido_materno"`
	Celular         string  `json:"celular"`
	Localidad       string  `json:"localidad"`
	Mz              string  `json:"mz"`
	Lote            string  `json:"lote"`
	Activo          bool    `json:"activo"`
	NumeroRecibo    *string `json:"numero_recibo"`
}

type SocioDetalleResponse struct {
	SocioResponse
	FechaNacimiento    string `json:"fecha_nacimiento"`
	Edad               string `json:"edad"`
	SituacionEconomica string `json:"situacion_economica"`
	DireccionDNI       string `json:"direccion_dni"`
	RegionDNI          string `json:"region_dni"`
	ProvinciaDNI       string `json:"provincia_dni"`
	DistritoDNI        string `json:"distrito_dni"`
	RegionVivienda     string `json:"region_vivienda"`
	ProvinciaVivienda  string `json:"provincia_vivienda"`
	DistritoVivienda   string `json:"distrito_vivienda"`
	DireccionVivienda  string `json:"direccion_vivienda"`
}

// Ayudante: datos del usuario autenticado para los logs de auditoría
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

// fetchPadron lee socios e ingresos en paralelo, en un solo ciclo de
// consulta. La falla del padrón aborta; la falla del libro solo desactiva el
// enriquecimiento de estado para este ciclo.
func fetchPadron() ([]models.SocioTitular, []models.Ingreso, error) {
	var (
		sociosList  []models.SocioTitular
		ingresos    []models.Ingreso
		ingresosErr error
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return database.DB.Order(`"apellidoPaterno" asc`).Find(&sociosList).Error
	})
	g.Go(func() error {
		ingresosErr = database.DB.Order("id asc").Find(&ingresos).Error
		return nil // la falta del libro no aborta el padrón
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if ingresosErr != nil {
		log.Printf("[WARN] No se pudo leer el libro de ingresos, el padrón sale sin estado: %v", ingresosErr)
		ingresos = nil
	}

	return sociosList, ingresos, nil
}

// resolverEstado aplica la política configurada sobre un socio.
func resolverEstado(cfg *config.Config, dni string, actividad reconcile.ActividadIndex, porDNI map[string][]reconcile.IngresoResumen) (bool, *string) {
	if cfg.SocioStatusPolicy == config.PolicyPayment {
		pago := reconcile.ResolverPago(porDNI, dni)
		return pago.Pagado, pago.NumeroRecibo
	}
	res := actividad.Resolver(dni)
	return res.Activo, res.NumeroRecibo
}

// -------------------------------------------------
// GET /api/socios?localidad=X&estado=active|inactive|all&q=texto
// -------------------------------------------------
func ListSociosHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		localidad := c.Query("localidad", "all")
		estado := c.Query("estado", "all")
		query := c.Query("q")

		sociosList, ingresos, err := fetchPadron()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al cargar los socios: "+err.Error())
		}

		// Índices frescos por ciclo de consulta
		actividad := reconcile.BuildActividadIndex(ingresos)
		porDNI := reconcile.BuildIngresosPorDNI(ingresos)

		resp := make([]SocioResponse, 0, len(sociosList))
		for i := range sociosList {
			s := &sociosList[i]

			activo, recibo := resolverEstado(cfg, s.DNI, actividad, porDNI)

			if !reconcile.MatchLocalidad(s.Localidad, localidad, cfg.LocalidadCaseSensitive) {
				continue
			}
			if !reconcile.MatchEstado(activo, estado) {
				continue
			}
			if !reconcile.MatchBusqueda(camposBusqueda(s), query) {
				continue
			}

			resp = append(resp, SocioResponse{
				ID:              s.ID,
				DNI:             s.DNI,
				Nombres:         s.Nombres,
				ApellidoPaterno: s.ApellidoPaterno,
				ApellidoMaterno: s.ApellidoMaterno,
				Celular:         s.Celular,
				Localidad:       s.Localidad,
				Mz:              s.Mz,
				Lote:            s.Lote,
				Activo:          activo,
				NumeroRecibo:    recibo,
			})
		}

		return c.JSON(resp)
	}
}

func camposBusqueda(s *models.SocioTitular) reconcile.CamposBusqueda {
	return reconcile.CamposBusqueda{
		DNI:             s.DNI,
		Nombres:         s.Nombres,
		ApellidoPaterno: s.ApellidoPaterno,
		ApellidoMaterno: s.ApellidoMaterno,
		Mz:              s.Mz,
		Lote:            s.Lote,
	}
}

// -------------------------------------------------
// GET /api/socios/localidades
// -------------------------------------------------
func ListLocalidadesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var localidades []string
		if err := database.DB.Model(&models.SocioTitular{}).
			Distinct("localidad").
			Where("localidad <> ''").
			Order("localidad asc").
			Pluck("localidad", &localidades).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las localidades")
		}

		return c.JSON(localidades)
	}
}

// -------------------------------------------------
// GET /api/socios/:id
// -------------------------------------------------
func GetSocioHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.SocioTitular
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Socio no encontrado")
		}

		var ingresos []models.Ingreso
		if err := database.DB.Where("dni = ?", s.DNI).Order("id asc").Find(&ingresos).Error; err != nil {
			log.Printf("[WARN] No se pudo leer el libro para el socio %s: %v", s.DNI, err)
			ingresos = nil
		}

		actividad := reconcile.BuildActividadIndex(ingresos)
		porDNI := reconcile.BuildIngresosPorDNI(ingresos)
		activo, recibo := resolverEstado(cfg, s.DNI, actividad, porDNI)

		return c.JSON(detalleResponse(&s, activo, recibo))
	}
}

func detalleResponse(s *models.SocioTitular, activo bool, recibo *string) SocioDetalleResponse {
	return SocioDetalleResponse{
		SocioResponse: SocioResponse{
			ID:              s.ID,
			DNI:             s.DNI,
			Nombres:         s.Nombres,
			ApellidoPaterno: s.ApellidoPaterno,
			ApellidoMaterno: s.ApellidoMaterno,
			Celular:         s.Celular,
			Localidad:       s.Localidad,
			Mz:              s.Mz,
			Lote:            s.Lote,
			Activo:          activo,
			NumeroRecibo:    recibo,
		},
		FechaNacimiento:    s.FechaNacimiento,
		Edad:               s.Edad,
		SituacionEconomica: s.SituacionEconomica,
		DireccionDNI:       s.DireccionDNI,
		RegionDNI:          s.RegionDNI,
		ProvinciaDNI:       s.ProvinciaDNI,
		DistritoDNI:        s.DistritoDNI,
		RegionVivienda:     s.RegionVivienda,
		ProvinciaVivienda:  s.ProvinciaVivienda,
		DistritoVivienda:   s.DistritoVivienda,
		DireccionVivienda:  s.DireccionVivienda,
	}
}

// -------------------------------------------------
// POST /api/socios
// -------------------------------------------------
func CreateSocioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SocioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.DNI = strings.TrimSpace(body.DNI)
		body.Nombres = strings.TrimSpace(body.Nombres)
		body.ApellidoPaterno = strings.TrimSpace(body.ApellidoPaterno)

		if body.DNI == "" || body.Nombres == "" || body.ApellidoPaterno == "" {
			return fiber.NewError(fiber.StatusBadRequest, "DNI, nombres y apellido paterno son obligatorios")
		}

		var existe models.SocioTitular
		if err := database.DB.Where("dni = ?", body.DNI).First(&existe).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ya existe un socio con ese DNI")
		}

		socio := socioFromRequest(&body)

		if err := database.DB.Create(socio).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el socio")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "socio_titular",
				EntityID:    socio.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Socio registrado: %s %s (DNI %s)", socio.Nombres, socio.ApellidoPaterno, socio.DNI),
				Before:      nil,
				After:       socio,
			}); logErr != nil {
				log.Printf("No se pudo escribir el log de auditoría: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(detalleResponse(socio, true, nil))
	}
}

func socioFromRequest(body *SocioRequest) *models.SocioTitular {
	return &models.SocioTitular{
		DNI:                body.DNI,
		Nombres:            body.Nombres,
		ApellidoPaterno:    body.ApellidoPaterno,
		ApellidoMaterno:    strings.TrimSpace(body.ApellidoMaterno),
		Celular:            strings.TrimSpace(body.Celular),
		Localidad:          strings.TrimSpace(body.Localidad),
		Mz:                 strings.TrimSpace(body.Mz),
		Lote:               strings.TrimSpace(body.Lote),
		FechaNacimiento:    body.FechaNacimiento,
		Edad:               body.Edad,
		SituacionEconomica: body.SituacionEconomica,
		DireccionDNI:       body.DireccionDNI,
		RegionDNI:          body.RegionDNI,
		ProvinciaDNI:       body.ProvinciaDNI,
		DistritoDNI:        body.DistritoDNI,
		RegionVivienda:     body.RegionVivienda,
		ProvinciaVivienda:  body.ProvinciaVivienda,
		DistritoVivienda:   body.DistritoVivienda,
		DireccionVivienda:  body.DireccionVivienda,
	}
}

// -------------------------------------------------
// PUT /api/socios/:id
// -------------------------------------------------
func UpdateSocioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var socio models.SocioTitular
		if err := database.DB.First(&socio, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Socio no encontrado")
		}

		anterior := socio

		var body SocioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.DNI = strings.TrimSpace(body.DNI)
		if body.DNI == "" || strings.TrimSpace(body.Nombres) == "" || strings.TrimSpace(body.ApellidoPaterno) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "DNI, nombres y apellido paterno son obligatorios")
		}

		// El DNI puede corregirse, pero no puede chocar con otro socio
		if body.DNI != socio.DNI {
			var existe models.SocioTitular
			if err := database.DB.Where("dni = ? AND id <> ?", body.DNI, socio.ID).First(&existe).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe un socio con ese DNI")
			}
		}

		nuevo := socioFromRequest(&body)
		nuevo.ID = socio.ID
		nuevo.CreatedAt = socio.CreatedAt

		if err := database.DB.Save(nuevo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el socio")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "socio_titular",
				EntityID:    nuevo.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Socio actualizado: %s %s (DNI %s)", nuevo.Nombres, nuevo.ApellidoPaterno, nuevo.DNI),
				Before:      anterior,
				After:       nuevo,
			}); logErr != nil {
				log.Printf("No se pudo escribir el log de auditoría: %v", logErr)
			}
		}

		return c.JSON(detalleResponse(nuevo, true, nil))
	}
}

// -------------------------------------------------
// DELETE /api/socios/:id
// Los archivos de sus documentos quedan en el almacenamiento; solo se
// eliminan la fila del socio y, en cascada, sus filas de documentos.
// -------------------------------------------------
func DeleteSocioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var socio models.SocioTitular
		if err := database.DB.First(&socio, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Socio no encontrado")
		}

		if err := database.DB.Where("socio_id = ?", socio.ID).Delete(&models.SocioDocumento{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron eliminar los documentos del socio")
		}

		if err := database.DB.Delete(&models.SocioTitular{}, "id = ?", socio.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el socio")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "socio_titular",
				EntityID:    socio.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Socio eliminado: %s %s (DNI %s)", socio.Nombres, socio.ApellidoPaterno, socio.DNI),
				Before:      nil,
				After:       socio,
			}); logErr != nil {
				log.Printf("No se pudo escribir el log de auditoría: %v", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
