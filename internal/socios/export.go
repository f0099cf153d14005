package socios

import (
	"bytes"
	"fmt"
	"strings"

	"asociacion-backend/internal/config"
	"asociacion-backend/internal/models"
	"asociacion-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// FilaExport es un socio ya reconciliado y filtrado, listo para exportar.
type FilaExport struct {
	Socio        models.SocioTitular
	Activo       bool
	NumeroRecibo string
}

// Cabecera fija del padrón exportado. El orden es contractual: las planillas
// de la asociación se arman contra estas columnas.
var cabeceraExport = []string{
	"DNI",
	"Nombres",
	"Apellido Paterno",
	"Apellido Materno",
	"Celular",
	"Localidad",
	"Manzana (Mz)",
	"Lote",
	"Estado",
	"N° Recibo de Pago",
	"Fecha de Nacimiento",
	"Edad",
	"Situación Económica",
	"Dirección DNI",
	"Región DNI",
	"Provincia DNI",
	"Distrito DNI",
	"Región Vivienda",
	"Provincia Vivienda",
	"Distrito Vivienda",
	"Dirección Vivienda",
}

func valoresFila(f *FilaExport) []string {
	s := &f.Socio

	estado := "Activo"
	if !f.Activo {
		estado = "Inactivo"
	}

	return []string{
		s.DNI,
		s.Nombres,
		s.ApellidoPaterno,
		s.ApellidoMaterno,
		s.Celular,
		s.Localidad,
		s.Mz,
		s.Lote,
		estado,
		f.NumeroRecibo,
		s.FechaNacimiento,
		s.Edad,
		s.SituacionEconomica,
		s.DireccionDNI,
		s.RegionDNI,
		s.ProvinciaDNI,
		s.DistritoDNI,
		s.RegionVivienda,
		s.ProvinciaVivienda,
		s.DistritoVivienda,
		s.DireccionVivienda,
	}
}

// BuildCSV arma el CSV del padrón. Todos los campos van entre comillas,
// siempre, con las comillas internas duplicadas; encoding/csv solo comilla
// condicionalmente y las planillas receptoras esperan el formato fijo.
func BuildCSV(filas []FilaExport) string {
	var b strings.Builder

	escribirFila := func(valores []string) {
		for i, v := range valores {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	escribirFila(cabeceraExport)
	for i := range filas {
		escribirFila(valoresFila(&filas[i]))
	}

	return b.String()
}

// BuildXLSX arma el libro de Excel del padrón con una sola hoja.
func BuildXLSX(filas []FilaExport) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Socios"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("no se pudo nombrar la hoja: %w", err)
	}

	cabecera := make([]interface{}, len(cabeceraExport))
	for i, h := range cabeceraExport {
		cabecera[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cabecera); err != nil {
		return nil, fmt.Errorf("no se pudo escribir la cabecera: %w", err)
	}

	for i := range filas {
		valores := valoresFila(&filas[i])
		fila := make([]interface{}, len(valores))
		for j, v := range valores {
			fila[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &fila); err != nil {
			return nil, fmt.Errorf("no se pudo escribir la fila %d: %w", i+2, err)
		}
	}

	return f, nil
}

// filasExport lee el padrón, lo reconcilia y aplica los mismos filtros que el
// listado (localidad, estado, búsqueda libre).
func filasExport(cfg *config.Config, c *fiber.Ctx) ([]FilaExport, error) {
	localidad := c.Query("localidad", "all")
	estado := c.Query("estado", "all")
	query := c.Query("q")

	sociosList, ingresos, err := fetchPadron()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar los socios: "+err.Error())
	}

	actividad := reconcile.BuildActividadIndex(ingresos)
	porDNI := reconcile.BuildIngresosPorDNI(ingresos)

	filas := make([]FilaExport, 0, len(sociosList))
	for i := range sociosList {
		s := &sociosList[i]

		activo, recibo := resolverEstado(cfg, s.DNI, actividad, porDNI)

		if !reconcile.MatchLocalidad(s.Localidad, localidad, cfg.LocalidadCaseSensitive) {
			continue
		}
		if !reconcile.MatchEstado(activo, estado) {
			continue
		}
		if !reconcile.MatchBusqueda(camposBusqueda(s), query) {
			continue
		}

		numeroRecibo := ""
		if recibo != nil {
			numeroRecibo = *recibo
		}

		filas = append(filas, FilaExport{Socio: *s, Activo: activo, NumeroRecibo: numeroRecibo})
	}

	return filas, nil
}

// -------------------------------------------------
// GET /api/socios/export/csv
// -------------------------------------------------
func ExportCSVHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := filasExport(cfg, c)
		if err != nil {
			return err
		}

		// Sin filas no se entrega archivo: el aviso evita planillas vacías
		if len(filas) == 0 {
			return c.JSON(fiber.Map{
				"message": "No hay socios para exportar con los filtros aplicados",
			})
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="socios_titulares.csv"`)
		return c.SendString(BuildCSV(filas))
	}
}

// -------------------------------------------------
// GET /api/socios/export/xlsx
// -------------------------------------------------
func ExportXLSXHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := filasExport(cfg, c)
		if err != nil {
			return err
		}

		if len(filas) == 0 {
			return c.JSON(fiber.Map{
				"message": "No hay socios para exportar con los filtros aplicados",
			})
		}

		f, err := BuildXLSX(filas)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo de Excel")
		}
		defer f.Close()

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo escribir el archivo de Excel")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="socios_titulares.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
