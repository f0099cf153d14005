package models

import "time"

// Tipos de transacción reconocidos como ingreso confirmado. El campo es
// texto libre en el libro: pueden existir otros valores ("Devolución",
// "Ajuste", etc.) cargados históricamente.
const (
	TransaccionVenta   = "Venta"
	TransaccionIngreso = "Ingreso"
	TransaccionEgreso  = "Egreso"
)

// Ingreso: asiento del libro de ingresos/egresos. No pertenece al socio;
// la relación se resuelve por DNI al momento de la consulta.
type Ingreso struct {
	ID              uint      `gorm:"primaryKey"`
	CompanyID       uint      `gorm:"index;not null"`
	BranchID        uint      `gorm:"index;not null"`
	DNI             string    `gorm:"column:dni;size:15;index"`
	Fecha           time.Time `gorm:"index;not null"` // día del asiento
	Amount          float64   `gorm:"not null"`       // con signo: egresos en negativo
	TransactionType string    `gorm:"column:transaction_type;size:50;not null"`
	ReceiptNumber   *string   `gorm:"column:receipt_number;size:30;index"` // serie-correlativo, ej. B001-000123
	Descripcion     string    `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Ingreso) TableName() string {
	return "ingresos"
}
