// Package reconcile deriva el estado de cada socio a partir del libro de
// ingresos/egresos. Todas las funciones son puras: operan sobre los datos ya
// leídos en el ciclo de consulta y no tocan la base ni el almacenamiento.
//
// Conviven dos políticas que NO coinciden entre sí:
//
//   - Actividad: el padrón de socios marca Activo/Inactivo según el signo de
//     los asientos. Un socio sin asientos es Activo (no tener historial no es
//     morosidad).
//   - Pago: la vista de documentos marca Pagado/No Pagado según exista un
//     recibo válido de tipo Venta o Ingreso.
//
// La divergencia viene del sistema original y se mantiene a propósito; ver
// DESIGN.md antes de unificarlas.
package reconcile

import "asociacion-backend/internal/models"

// ResultadoActividad es el estado derivado para un socio bajo la política de
// actividad.
type ResultadoActividad struct {
	Activo       bool
	NumeroRecibo *string
}

type estadoDNI struct {
	tienePositivo        bool
	tieneNegativo        bool
	total                int
	ultimoReciboPositivo *string
}

// ActividadIndex agrupa el libro completo por DNI. Se construye una vez por
// ciclo de consulta y se descarta al terminar.
type ActividadIndex map[string]*estadoDNI

func BuildActividadIndex(ingresos []models.Ingreso) ActividadIndex {
	idx := make(ActividadIndex)
	for i := range ingresos {
		ing := &ingresos[i]
		if ing.DNI == "" {
			continue
		}
		est, ok := idx[ing.DNI]
		if !ok {
			est = &estadoDNI{}
			idx[ing.DNI] = est
		}
		switch {
		case ing.Amount > 0:
			est.tienePositivo = true
			// gana el último recibo positivo del recorrido
			if ing.ReceiptNumber != nil && *ing.ReceiptNumber != "" {
				est.ultimoReciboPositivo = ing.ReceiptNumber
			}
		case ing.Amount < 0:
			est.tieneNegativo = true
		}
		est.total++
	}
	return idx
}

// Resolver aplica la política de actividad para un DNI. Un DNI vacío o sin
// asientos resuelve siempre Activo.
func (idx ActividadIndex) Resolver(dni string) ResultadoActividad {
	if dni == "" {
		return ResultadoActividad{Activo: true}
	}
	est, ok := idx[dni]
	if !ok || est.total == 0 {
		return ResultadoActividad{Activo: true}
	}
	if est.tienePositivo {
		return ResultadoActividad{Activo: true, NumeroRecibo: est.ultimoReciboPositivo}
	}
	if est.tieneNegativo {
		return ResultadoActividad{Activo: false}
	}
	// solo asientos en cero: sin señal de morosidad
	return ResultadoActividad{Activo: true}
}

// ResultadoPago es el estado derivado para un socio bajo la política de pago.
type ResultadoPago struct {
	Pagado       bool
	NumeroRecibo *string
}

// IngresoResumen es la proyección mínima de un asiento que necesita la
// política de pago.
type IngresoResumen struct {
	ReceiptNumber   *string
	TransactionType string
}

// BuildIngresosPorDNI agrupa los asientos por DNI preservando el orden de
// lectura del libro; la política de pago depende de ese orden.
func BuildIngresosPorDNI(ingresos []models.Ingreso) map[string][]IngresoResumen {
	porDNI := make(map[string][]IngresoResumen)
	for i := range ingresos {
		ing := &ingresos[i]
		if ing.DNI == "" {
			continue
		}
		porDNI[ing.DNI] = append(porDNI[ing.DNI], IngresoResumen{
			ReceiptNumber:   ing.ReceiptNumber,
			TransactionType: ing.TransactionType,
		})
	}
	return porDNI
}

// ResolverPago aplica la política de pago: gana el PRIMER asiento con recibo
// no vacío y tipo Venta o Ingreso. Sin coincidencias es No Pagado.
func ResolverPago(porDNI map[string][]IngresoResumen, dni string) ResultadoPago {
	if dni == "" {
		return ResultadoPago{}
	}
	for _, ing := range porDNI[dni] {
		if ing.ReceiptNumber != nil && *ing.ReceiptNumber != "" && EsIngresoConfirmado(ing.TransactionType) {
			return ResultadoPago{Pagado: true, NumeroRecibo: ing.ReceiptNumber}
		}
	}
	return ResultadoPago{}
}

// BuildReciboTipoIndex construye el índice recibo → tipo de transacción usado
// por el filtro de documentos. Si un número de recibo aparece repetido, la
// última fila leída pisa a las anteriores.
func BuildReciboTipoIndex(ingresos []models.Ingreso) map[string]string {
	idx := make(map[string]string)
	for i := range ingresos {
		ing := &ingresos[i]
		if ing.ReceiptNumber != nil && *ing.ReceiptNumber != "" && ing.TransactionType != "" {
			idx[*ing.ReceiptNumber] = ing.TransactionType
		}
	}
	return idx
}

// EsIngresoConfirmado reporta si el tipo de transacción representa un ingreso
// confirmado de la asociación.
func EsIngresoConfirmado(tipo string) bool {
	return tipo == models.TransaccionVenta || tipo == models.TransaccionIngreso
}
