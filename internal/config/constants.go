package config

// Identificadores fijos de la asociación. El sistema opera sobre una sola
// empresa y una sola sede; no hay multi-tenancy.
const (
	CompanyID uint = 1
	BranchID  uint = 1
)

// Valores por defecto de facturación heredados del sistema de boletas.
const (
	DefaultSerieBoleta      = "B001"
	DefaultMoneda           = "PEN"
	DefaultTipoOperacion    = "01" // venta interna
	DefaultFormaPago        = "Contado"
	DefaultItemCode         = "SERV001"
	DefaultSunatProductCode = "00001"
	DefaultSerieNCBoleta    = "BC01"
	DefaultSerieNCFactura   = "FC01"
)
