package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBusqueda(t *testing.T) {
	maria := CamposBusqueda{
		DNI:             "12345678",
		Nombres:         "María Elena",
		ApellidoPaterno: "García",
		ApellidoMaterno: "Lopez",
		Mz:              "B",
		Lote:            "14",
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"consulta vacía deja pasar", "", true},
		{"solo espacios deja pasar", "   ", true},
		{"subcadena del dni", "3456", true},
		{"manzana exacta", "b", true},
		{"lote", "14", true},
		{"una palabra del nombre", "garcía", true},
		{"palabras sin tilde no coinciden", "maria", false},
		{"palabras en cualquier orden", "garcía maría", true},
		{"palabras en orden natural", "maría garcía", true},
		{"una palabra que no está", "maría pérez", false},
		{"texto sin relación", "zzz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchBusqueda(maria, tt.query), "query=%q", tt.query)
		})
	}
}

// El orden de las palabras no importa: se exigen todas por separado.
func TestMatchBusquedaConmutaTokens(t *testing.T) {
	socio := CamposBusqueda{Nombres: "Juan Carlos", ApellidoPaterno: "Quispe", ApellidoMaterno: "Mamani"}

	assert.Equal(t,
		MatchBusqueda(socio, "quispe juan"),
		MatchBusqueda(socio, "juan quispe"),
	)
	assert.True(t, MatchBusqueda(socio, "mamani carlos"))
}

func TestMatchLocalidad(t *testing.T) {
	tests := []struct {
		name          string
		localidad     string
		filtro        string
		caseSensitive bool
		want          bool
	}{
		{"filtro all deja pasar", "Santa Rosa", "all", false, true},
		{"filtro vacío deja pasar", "Santa Rosa", "", false, true},
		{"igualdad exacta", "Santa Rosa", "Santa Rosa", true, true},
		{"distinta con case sensitive", "Santa Rosa", "santa rosa", true, false},
		{"igual sin case sensitive", "Santa Rosa", "santa rosa", false, true},
		{"localidad distinta no pasa", "Santa Rosa", "El Mirador", false, false},
		{"subcadena no alcanza, es igualdad", "Santa Rosa Norte", "Santa Rosa", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLocalidad(tt.localidad, tt.filtro, tt.caseSensitive))
		})
	}
}

func TestMatchEstado(t *testing.T) {
	assert.True(t, MatchEstado(true, "active"))
	assert.False(t, MatchEstado(false, "active"))
	assert.True(t, MatchEstado(false, "inactive"))
	assert.False(t, MatchEstado(true, "inactive"))
	assert.True(t, MatchEstado(true, "all"))
	assert.True(t, MatchEstado(false, "all"))
	assert.True(t, MatchEstado(false, ""))
	assert.True(t, MatchEstado(false, "cualquier-cosa"))
}
