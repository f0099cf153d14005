package reconcile

import "strings"

// CamposBusqueda son los campos de un socio sobre los que opera la búsqueda
// libre del padrón.
type CamposBusqueda struct {
	DNI             string
	Nombres         string
	ApellidoPaterno string
	ApellidoMaterno string
	Mz              string
	Lote            string
}

// MatchBusqueda evalúa la búsqueda libre: la consulta (recortada, sin
// distinguir mayúsculas) coincide si es subcadena del DNI, la manzana o el
// lote, O si cada palabra de la consulta es subcadena del nombre completo
// concatenado. Las palabras se exigen todas (AND), por eso "garcia maria" y
// "maria garcia" encuentran al mismo socio.
func MatchBusqueda(c CamposBusqueda, query string) bool {
	search := strings.ToLower(strings.TrimSpace(query))
	if search == "" {
		return true
	}

	dni := strings.ToLower(c.DNI)
	mz := strings.ToLower(c.Mz)
	lote := strings.ToLower(c.Lote)
	fullName := strings.ToLower(strings.TrimSpace(c.Nombres + " " + c.ApellidoPaterno + " " + c.ApellidoMaterno))

	if strings.Contains(dni, search) || strings.Contains(mz, search) || strings.Contains(lote, search) {
		return true
	}

	for _, term := range strings.Fields(search) {
		if !strings.Contains(fullName, term) {
			return false
		}
	}
	return true
}

// MatchLocalidad evalúa el filtro de localidad por igualdad. Un filtro vacío
// o "all" deja pasar todo.
func MatchLocalidad(localidad, filtro string, caseSensitive bool) bool {
	if filtro == "" || filtro == "all" {
		return true
	}
	if caseSensitive {
		return localidad == filtro
	}
	return strings.EqualFold(localidad, filtro)
}

// MatchEstado evalúa el filtro tri-estado sobre el resultado de actividad.
func MatchEstado(activo bool, filtro string) bool {
	switch filtro {
	case "active":
		return activo
	case "inactive":
		return !activo
	default: // "all" o vacío
		return true
	}
}
