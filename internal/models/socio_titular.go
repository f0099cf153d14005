package models

import "time"

// SocioTitular: padrón de socios titulares de la asociación.
// Los nombres de columna se mantienen tal cual existen en el esquema
// hospedado (camelCase), por eso los tags de columna explícitos.
type SocioTitular struct {
	ID              uint   `gorm:"primaryKey"`
	DNI             string `gorm:"column:dni;size:15;index;not null"`
	Nombres         string `gorm:"column:nombres;size:150;not null"`
	ApellidoPaterno string `gorm:"column:apellidoPaterno;size:100;not null"`
	ApellidoMaterno string `gorm:"column:apellidoMaterno;size:100"`
	Celular         string `gorm:"column:celular;size:20"`
	Localidad       string `gorm:"column:localidad;size:100;index"`
	Mz              string `gorm:"column:mz;size:10"`   // manzana
	Lote            string `gorm:"column:lote;size:10"` // lote dentro de la manzana

	// Datos ampliados del padrón (solo exportación y ficha del socio)
	FechaNacimiento    string `gorm:"column:fechaNacimiento;size:20"`
	Edad               string `gorm:"column:edad;size:10"`
	SituacionEconomica string `gorm:"column:situacionEconomica;size:50"`
	DireccionDNI       string `gorm:"column:direccionDNI;size:255"`
	RegionDNI          string `gorm:"column:regionDNI;size:100"`
	ProvinciaDNI       string `gorm:"column:provinciaDNI;size:100"`
	DistritoDNI        string `gorm:"column:distritoDNI;size:100"`
	RegionVivienda     string `gorm:"column:regionVivienda;size:100"`
	ProvinciaVivienda  string `gorm:"column:provinciaVivienda;size:100"`
	DistritoVivienda   string `gorm:"column:distritoVivienda;size:100"`
	DireccionVivienda  string `gorm:"column:direccionVivienda;size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Documentos []SocioDocumento `gorm:"foreignKey:SocioID"`
}

func (SocioTitular) TableName() string {
	return "socio_titulares"
}
