package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"asociacion-backend/internal/database"
	"asociacion-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// El campo jsonb de PostgreSQL necesita el literal "null", no cadena vacía
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el log de auditoría: %w", err)
	}

	return nil
}

// UndoLog revierte la operación registrada en un log de auditoría.
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log no encontrado: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("esta operación ya fue revertida")
	}

	switch log.Action {
	case models.AuditActionCreate:
		// Un create se revierte eliminando la entidad
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("no se pudo eliminar la entidad: %w", err)
		}

	case models.AuditActionUpdate:
		// Un update se revierte restaurando el estado anterior
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("no se pudo restaurar la entidad: %w", err)
		}

	case models.AuditActionDelete:
		// Un delete se revierte recreando la entidad.
		// OJO: si la entidad era un documento, el archivo en el
		// almacenamiento ya no existe; solo vuelve la fila.
		if err := recreateEntity(log.EntityType, log.AfterData); err != nil {
			return fmt.Errorf("no se pudo recrear la entidad: %w", err)
		}

	default:
		return fmt.Errorf("este tipo de operación no se puede revertir")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("no se pudo actualizar el log: %w", err)
	}

	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Revertido: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el log de reversión: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "socio_titular":
		return database.DB.Delete(&models.SocioTitular{}, "id = ?", entityID).Error
	case "socio_documento":
		return database.DB.Delete(&models.SocioDocumento{}, "id = ?", entityID).Error
	case "ingreso":
		return database.DB.Delete(&models.Ingreso{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}

func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "socio_titular":
		var socio models.SocioTitular
		if err := json.Unmarshal([]byte(dataJSON), &socio); err != nil {
			return err
		}
		socio.ID = 0
		return database.DB.Create(&socio).Error

	case "socio_documento":
		var doc models.SocioDocumento
		if err := json.Unmarshal([]byte(dataJSON), &doc); err != nil {
			return err
		}
		doc.ID = 0
		return database.DB.Create(&doc).Error

	case "ingreso":
		var ing models.Ingreso
		if err := json.Unmarshal([]byte(dataJSON), &ing); err != nil {
			return err
		}
		ing.ID = 0
		return database.DB.Create(&ing).Error

	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}

func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "socio_titular":
		var socio models.SocioTitular
		if err := json.Unmarshal([]byte(dataJSON), &socio); err != nil {
			return err
		}
		return database.DB.Model(&models.SocioTitular{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"dni":               socio.DNI,
			"nombres":           socio.Nombres,
			"apellidoPaterno":   socio.ApellidoPaterno,
			"apellidoMaterno":   socio.ApellidoMaterno,
			"celular":           socio.Celular,
			"localidad":         socio.Localidad,
			"mz":                socio.Mz,
			"lote":              socio.Lote,
			"fechaNacimiento":   socio.FechaNacimiento,
			"edad":              socio.Edad,
			"situacionEconomica": socio.SituacionEconomica,
			"direccionDNI":      socio.DireccionDNI,
			"regionDNI":         socio.RegionDNI,
			"provinciaDNI":      socio.ProvinciaDNI,
			"distritoDNI":       socio.DistritoDNI,
			"regionVivienda":    socio.RegionVivienda,
			"provinciaVivienda": socio.ProvinciaVivienda,
			"distritoVivienda":  socio.DistritoVivienda,
			"direccionVivienda": socio.DireccionVivienda,
		}).Error

	case "socio_documento":
		var doc models.SocioDocumento
		if err := json.Unmarshal([]byte(dataJSON), &doc); err != nil {
			return err
		}
		return database.DB.Model(&models.SocioDocumento{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"socio_id":       doc.SocioID,
			"tipo_documento": doc.TipoDocumento,
			"link_documento": doc.LinkDocumento,
		}).Error

	case "ingreso":
		var ing models.Ingreso
		if err := json.Unmarshal([]byte(dataJSON), &ing); err != nil {
			return err
		}
		return database.DB.Model(&models.Ingreso{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"company_id":       ing.CompanyID,
			"branch_id":        ing.BranchID,
			"dni":              ing.DNI,
			"fecha":            ing.Fecha,
			"amount":           ing.Amount,
			"transaction_type": ing.TransactionType,
			"receipt_number":   ing.ReceiptNumber,
			"descripcion":      ing.Descripcion,
		}).Error

	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}
