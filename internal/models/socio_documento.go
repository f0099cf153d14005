package models

import "time"

type TipoDocumento string

// Conjunto cerrado de tipos de documento que maneja la asociación.
const (
	TipoPlanosUbicacion    TipoDocumento = "Planos de ubicación"
	TipoMemoriaDescriptiva TipoDocumento = "Memoria descriptiva"
	TipoFicha              TipoDocumento = "Ficha"
	TipoContrato           TipoDocumento = "Contrato"
	TipoComprobantePago    TipoDocumento = "Comprobante de Pago"
)

// SocioDocumento: fila de documento subido para un socio. LinkDocumento
// apunta al almacenamiento de objetos; puede quedar en NULL si el archivo
// todavía no fue cargado.
type SocioDocumento struct {
	ID            uint          `gorm:"primaryKey"`
	SocioID       uint          `gorm:"index;not null"`
	TipoDocumento TipoDocumento `gorm:"column:tipo_documento;size:50;not null"`
	LinkDocumento *string       `gorm:"column:link_documento;size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SocioDocumento) TableName() string {
	return "socio_documentos"
}
