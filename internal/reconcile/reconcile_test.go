package reconcile

import (
	"testing"

	"asociacion-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolverActividad(t *testing.T) {
	tests := []struct {
		name       string
		ingresos   []models.Ingreso
		dni        string
		wantActivo bool
		wantRecibo *string
	}{
		{
			name: "positivo con recibo es activo",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: 100, TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("R-1")},
			},
			dni:        "123",
			wantActivo: true,
			wantRecibo: strPtr("R-1"),
		},
		{
			name: "solo negativos es inactivo",
			ingresos: []models.Ingreso{
				{DNI: "456", Amount: -50, TransactionType: models.TransaccionEgreso},
			},
			dni:        "456",
			wantActivo: false,
		},
		{
			name:       "sin asientos es activo",
			ingresos:   nil,
			dni:        "789",
			wantActivo: true,
		},
		{
			name: "dni vacío es activo aunque haya asientos vacíos",
			ingresos: []models.Ingreso{
				{DNI: "", Amount: -100, TransactionType: models.TransaccionEgreso},
			},
			dni:        "",
			wantActivo: true,
		},
		{
			name: "positivo y negativo mezclados gana el positivo",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: -30, TransactionType: models.TransaccionEgreso},
				{DNI: "123", Amount: 80, TransactionType: models.TransaccionIngreso, ReceiptNumber: strPtr("R-9")},
			},
			dni:        "123",
			wantActivo: true,
			wantRecibo: strPtr("R-9"),
		},
		{
			name: "gana el último recibo positivo del recorrido",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: 10, TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("R-1")},
				{DNI: "123", Amount: 20, TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("R-2")},
			},
			dni:        "123",
			wantActivo: true,
			wantRecibo: strPtr("R-2"),
		},
		{
			name: "positivo sin recibo no pisa el recibo anterior",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: 10, TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("R-1")},
				{DNI: "123", Amount: 20, TransactionType: models.TransaccionVenta},
			},
			dni:        "123",
			wantActivo: true,
			wantRecibo: strPtr("R-1"),
		},
		{
			name: "solo asientos en cero es activo",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: 0, TransactionType: models.TransaccionIngreso},
			},
			dni:        "123",
			wantActivo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildActividadIndex(tt.ingresos)
			got := idx.Resolver(tt.dni)

			assert.Equal(t, tt.wantActivo, got.Activo)
			if tt.wantRecibo == nil {
				assert.Nil(t, got.NumeroRecibo)
			} else {
				assert.NotNil(t, got.NumeroRecibo)
				assert.Equal(t, *tt.wantRecibo, *got.NumeroRecibo)
			}
		})
	}
}

func TestResolverPago(t *testing.T) {
	tests := []struct {
		name       string
		ingresos   []models.Ingreso
		dni        string
		wantPagado bool
		wantRecibo *string
	}{
		{
			name: "venta con recibo es pagado",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: 100, TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("R-1")},
			},
			dni:        "123",
			wantPagado: true,
			wantRecibo: strPtr("R-1"),
		},
		{
			name: "egreso con recibo no paga",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: -100, TransactionType: models.TransaccionEgreso, ReceiptNumber: strPtr("R-1")},
			},
			dni:        "123",
			wantPagado: false,
		},
		{
			name: "venta sin recibo no paga",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: 100, TransactionType: models.TransaccionVenta},
			},
			dni:        "123",
			wantPagado: false,
		},
		{
			name:       "sin asientos no paga",
			ingresos:   nil,
			dni:        "123",
			wantPagado: false,
		},
		{
			name:       "dni vacío nunca paga",
			ingresos:   []models.Ingreso{{DNI: "", Amount: 100, TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("R-1")}},
			dni:        "",
			wantPagado: false,
		},
		{
			name: "gana el primer recibo válido del recorrido",
			ingresos: []models.Ingreso{
				{DNI: "123", Amount: -10, TransactionType: models.TransaccionEgreso, ReceiptNumber: strPtr("R-0")},
				{DNI: "123", Amount: 50, TransactionType: models.TransaccionIngreso, ReceiptNumber: strPtr("R-1")},
				{DNI: "123", Amount: 60, TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("R-2")},
			},
			dni:        "123",
			wantPagado: true,
			wantRecibo: strPtr("R-1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			porDNI := BuildIngresosPorDNI(tt.ingresos)
			got := ResolverPago(porDNI, tt.dni)

			assert.Equal(t, tt.wantPagado, got.Pagado)
			if tt.wantRecibo == nil {
				assert.Nil(t, got.NumeroRecibo)
			} else {
				assert.NotNil(t, got.NumeroRecibo)
				assert.Equal(t, *tt.wantRecibo, *got.NumeroRecibo)
			}
		})
	}
}

// Las dos políticas no coinciden a propósito: un socio sin asientos es Activo
// para el padrón pero No Pagado para el expediente.
func TestPoliticasDivergenSinAsientos(t *testing.T) {
	var ingresos []models.Ingreso

	actividad := BuildActividadIndex(ingresos).Resolver("123")
	pago := ResolverPago(BuildIngresosPorDNI(ingresos), "123")

	assert.True(t, actividad.Activo)
	assert.False(t, pago.Pagado)
}

func TestBuildReciboTipoIndex(t *testing.T) {
	ingresos := []models.Ingreso{
		{DNI: "1", TransactionType: models.TransaccionVenta, ReceiptNumber: strPtr("B001-000001")},
		{DNI: "2", TransactionType: models.TransaccionEgreso, ReceiptNumber: strPtr("B001-000002")},
		{DNI: "3", TransactionType: models.TransaccionVenta},         // sin recibo, se ignora
		{DNI: "4", TransactionType: "", ReceiptNumber: strPtr("X")}, // sin tipo, se ignora
		// recibo repetido: la última fila pisa a la primera
		{DNI: "5", TransactionType: models.TransaccionIngreso, ReceiptNumber: strPtr("B001-000001")},
	}

	idx := BuildReciboTipoIndex(ingresos)

	assert.Equal(t, models.TransaccionIngreso, idx["B001-000001"])
	assert.Equal(t, models.TransaccionEgreso, idx["B001-000002"])
	assert.NotContains(t, idx, "X")
	assert.Len(t, idx, 2)
}

func TestEsIngresoConfirmado(t *testing.T) {
	assert.True(t, EsIngresoConfirmado(models.TransaccionVenta))
	assert.True(t, EsIngresoConfirmado(models.TransaccionIngreso))
	assert.False(t, EsIngresoConfirmado(models.TransaccionEgreso))
	assert.False(t, EsIngresoConfirmado(""))
	assert.False(t, EsIngresoConfirmado("venta")) // sensible a mayúsculas
}
