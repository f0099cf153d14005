package socios

import (
	"strings"
	"testing"

	"asociacion-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filaDePrueba() FilaExport {
	return FilaExport{
		Socio: models.SocioTitular{
			DNI:             "12345678",
			Nombres:         "María",
			ApellidoPaterno: "García",
			ApellidoMaterno: "Lopez",
			Celular:         "999888777",
			Localidad:       "Santa Rosa",
			Mz:              "B",
			Lote:            "14",
		},
		Activo:       true,
		NumeroRecibo: "B001-000123",
	}
}

func TestBuildCSVCabecera(t *testing.T) {
	csv := BuildCSV(nil)

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 1)

	cols := strings.Split(lines[0], ",")
	assert.Len(t, cols, 21)
	assert.Equal(t, `"DNI"`, cols[0])
	assert.Equal(t, `"N° Recibo de Pago"`, cols[9])
	assert.Equal(t, `"Dirección Vivienda"`, cols[20])
}

func TestBuildCSVFilas(t *testing.T) {
	csv := BuildCSV([]FilaExport{filaDePrueba()})

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 2)

	fila := lines[1]
	assert.True(t, strings.HasPrefix(fila, `"12345678","María","García"`))
	assert.Contains(t, fila, `"Activo"`)
	assert.Contains(t, fila, `"B001-000123"`)

	// Todos los campos van entre comillas, también los vacíos
	cols := strings.Split(fila, ",")
	require.Len(t, cols, 21)
	for _, col := range cols {
		assert.True(t, strings.HasPrefix(col, `"`), "columna sin abrir comillas: %s", col)
		assert.True(t, strings.HasSuffix(col, `"`), "columna sin cerrar comillas: %s", col)
	}
	assert.Equal(t, `""`, cols[10]) // fecha de nacimiento vacía
}

func TestBuildCSVEscapaComillas(t *testing.T) {
	fila := filaDePrueba()
	fila.Socio.Localidad = `Sector "El Mirador"`

	csv := BuildCSV([]FilaExport{fila})

	assert.Contains(t, csv, `"Sector ""El Mirador"""`)
}

func TestBuildCSVEstadoInactivo(t *testing.T) {
	fila := filaDePrueba()
	fila.Activo = false
	fila.NumeroRecibo = ""

	csv := BuildCSV([]FilaExport{fila})

	assert.Contains(t, csv, `"Inactivo"`)
	assert.NotContains(t, csv, `"B001-000123"`)
}

func TestBuildXLSX(t *testing.T) {
	f, err := BuildXLSX([]FilaExport{filaDePrueba()})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Socios")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "DNI", rows[0][0])
	assert.Equal(t, "12345678", rows[1][0])
	assert.Equal(t, "Activo", rows[1][8])
	assert.Equal(t, "B001-000123", rows[1][9])
}
