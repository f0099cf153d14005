package ingresos

import (
	"fmt"
	"log"
	"time"

	"asociacion-backend/internal/audit"
	"asociacion-backend/internal/auth"
	"asociacion-backend/internal/config"
	"asociacion-backend/internal/database"
	"asociacion-backend/internal/models"
	"asociacion-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
)

type IngresoRequest struct {
	DNI             string  `json:"dni"`
	Fecha           string  `json:"fecha"` // YYYY-MM-DD
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	ReceiptNumber   string  `json:"receipt_number"`
	Descripcion     string  `json:"descripcion"`
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

// GenReceiptNumber genera el siguiente serie-correlativo de boleta
// (ej. B001-000123) contando los recibos ya emitidos con esa serie.
func GenReceiptNumber(serie string) (string, error) {
	var count int64
	if err := database.DB.Model(&models.Ingreso{}).
		Where("receipt_number LIKE ?", serie+"-%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", serie, count+1), nil
}

// -------------------------------------------------
// POST /api/ingresos
// -------------------------------------------------
func CreateIngresoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body IngresoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Amount == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El monto no puede ser cero")
		}

		switch body.TransactionType {
		case models.TransaccionVenta, models.TransaccionIngreso, models.TransaccionEgreso:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de transacción inválido")
		}

		// Los egresos se asientan en negativo; el signo es la señal que usa
		// la política de actividad.
		if body.TransactionType == models.TransaccionEgreso && body.Amount > 0 {
			body.Amount = -body.Amount
		}

		fecha := time.Now()
		if body.Fecha != "" {
			parsed, err := time.Parse("2006-01-02", body.Fecha)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, se espera YYYY-MM-DD")
			}
			fecha = parsed
		}

		ingreso := models.Ingreso{
			CompanyID:       config.CompanyID,
			BranchID:        config.BranchID,
			DNI:             body.DNI,
			Fecha:           fecha,
			Amount:          body.Amount,
			TransactionType: body.TransactionType,
			Descripcion:     body.Descripcion,
		}

		if body.ReceiptNumber != "" {
			ingreso.ReceiptNumber = &body.ReceiptNumber
		} else if body.Amount > 0 && reconcile.EsIngresoConfirmado(body.TransactionType) {
			// Recibo automático solo para ingresos confirmados: los egresos
			// y las notas sin cobro no emiten boleta
			numero, err := GenReceiptNumber(config.DefaultSerieBoleta)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el número de recibo")
			}
			ingreso.ReceiptNumber = &numero
		}

		if err := database.DB.Create(&ingreso).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el asiento")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "ingreso",
				EntityID:    ingreso.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Asiento %s por %.2f (DNI %s)", ingreso.TransactionType, ingreso.Amount, ingreso.DNI),
				Before:      nil,
				After:       ingreso,
			}); logErr != nil {
				log.Printf("No se pudo escribir el log de auditoría: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(ingreso)
	}
}

// -------------------------------------------------
// GET /api/ingresos?from=YYYY-MM-DD&to=YYYY-MM-DD&dni=X&tipo=Venta
// -------------------------------------------------
func ListIngresosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Ingreso{})

		if from := c.Query("from"); from != "" {
			fecha, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Parámetro from inválido, se espera YYYY-MM-DD")
			}
			q = q.Where("fecha >= ?", fecha)
		}
		if to := c.Query("to"); to != "" {
			fecha, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Parámetro to inválido, se espera YYYY-MM-DD")
			}
			// incluir el día completo
			q = q.Where("fecha < ?", fecha.AddDate(0, 0, 1))
		}
		if dni := c.Query("dni"); dni != "" {
			q = q.Where("dni = ?", dni)
		}
		if tipo := c.Query("tipo"); tipo != "" {
			q = q.Where("transaction_type = ?", tipo)
		}

		var ingresos []models.Ingreso
		if err := q.Order("fecha desc, id desc").Find(&ingresos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el libro de ingresos")
		}

		return c.JSON(ingresos)
	}
}

// -------------------------------------------------
// DELETE /api/ingresos/:id
// -------------------------------------------------
func DeleteIngresoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ingreso models.Ingreso
		if err := database.DB.First(&ingreso, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Asiento no encontrado")
		}

		if err := database.DB.Delete(&models.Ingreso{}, "id = ?", ingreso.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el asiento")
		}

		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "ingreso",
				EntityID:    ingreso.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Asiento eliminado: %s por %.2f (DNI %s)", ingreso.TransactionType, ingreso.Amount, ingreso.DNI),
				Before:      nil,
				After:       ingreso,
			}); logErr != nil {
				log.Printf("No se pudo escribir el log de auditoría: %v", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type ResumenMensualResponse struct {
	Anio          int     `json:"anio"`
	Mes           int     `json:"mes"`
	TotalIngresos float64 `json:"total_ingresos"`
	TotalEgresos  float64 `json:"total_egresos"`
	Neto          float64 `json:"neto"`
	Asientos      int64   `json:"asientos"`
}

// -------------------------------------------------
// GET /api/ingresos/resumen?anio=2026&mes=8
// -------------------------------------------------
func ResumenMensualHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		anio, mes := now.Year(), int(now.Month())
		if v := c.Query("anio"); v != "" {
			if _, err := fmt.Sscan(v, &anio); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Parámetro anio inválido")
			}
		}
		if v := c.Query("mes"); v != "" {
			if _, err := fmt.Sscan(v, &mes); err != nil || mes < 1 || mes > 12 {
				return fiber.NewError(fiber.StatusBadRequest, "Parámetro mes inválido")
			}
		}

		desde := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
		hasta := desde.AddDate(0, 1, 0)

		var ingresos []models.Ingreso
		if err := database.DB.
			Where("fecha >= ? AND fecha < ?", desde, hasta).
			Find(&ingresos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen mensual")
		}

		resp := ResumenMensualResponse{Anio: anio, Mes: mes, Asientos: int64(len(ingresos))}
		for i := range ingresos {
			monto := ingresos[i].Amount
			if monto >= 0 {
				resp.TotalIngresos += monto
			} else {
				resp.TotalEgresos += -monto
			}
		}
		resp.Neto = resp.TotalIngresos - resp.TotalEgresos

		return c.JSON(resp)
	}
}
