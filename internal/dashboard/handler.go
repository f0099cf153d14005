package dashboard

import (
	"time"

	"asociacion-backend/internal/config"
	"asociacion-backend/internal/database"
	"asociacion-backend/internal/models"
	"asociacion-backend/internal/reconcile"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

type PuntoMensual struct {
	Mes      string  `json:"mes"` // YYYY-MM
	Ingresos float64 `json:"ingresos"`
	Egresos  float64 `json:"egresos"`
}

type ResumenResponse struct {
	TotalSocios     int            `json:"total_socios"`
	SociosActivos   int            `json:"socios_activos"`
	SociosInactivos int            `json:"socios_inactivos"`
	Localidades     int64          `json:"localidades"`
	Serie           []PuntoMensual `json:"serie"`
}

// -------------------------------------------------
// GET /api/dashboard/resumen?meses=6
// Tablero de la asociación: conteo de socios por estado y la serie mensual
// de ingresos/egresos de los últimos meses.
// -------------------------------------------------
func ResumenHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		meses := c.QueryInt("meses", 6)
		if meses < 1 || meses > 24 {
			return fiber.NewError(fiber.StatusBadRequest, "Parámetro meses fuera de rango (1-24)")
		}

		var (
			sociosList  []models.SocioTitular
			ingresos    []models.Ingreso
			localidades int64
		)

		g := new(errgroup.Group)
		g.Go(func() error {
			return database.DB.Find(&sociosList).Error
		})
		g.Go(func() error {
			return database.DB.Order("id asc").Find(&ingresos).Error
		})
		g.Go(func() error {
			return database.DB.Model(&models.SocioTitular{}).
				Where("localidad <> ''").
				Distinct("localidad").
				Count(&localidades).Error
		})

		if err := g.Wait(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar el tablero: "+err.Error())
		}

		actividad := reconcile.BuildActividadIndex(ingresos)
		porDNI := reconcile.BuildIngresosPorDNI(ingresos)

		resp := ResumenResponse{TotalSocios: len(sociosList), Localidades: localidades}
		for i := range sociosList {
			var activo bool
			if cfg.SocioStatusPolicy == config.PolicyPayment {
				activo = reconcile.ResolverPago(porDNI, sociosList[i].DNI).Pagado
			} else {
				activo = actividad.Resolver(sociosList[i].DNI).Activo
			}
			if activo {
				resp.SociosActivos++
			} else {
				resp.SociosInactivos++
			}
		}

		resp.Serie = serieMensual(ingresos, meses, time.Now())

		return c.JSON(resp)
	}
}

// serieMensual agrupa el libro en cubetas mensuales terminando en el mes de
// referencia. Los meses sin asientos salen en cero para que el gráfico no
// tenga huecos.
func serieMensual(ingresos []models.Ingreso, meses int, ref time.Time) []PuntoMensual {
	inicio := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(meses - 1), 0)

	porMes := make(map[string]*PuntoMensual, meses)
	serie := make([]PuntoMensual, meses)
	for i := 0; i < meses; i++ {
		mes := inicio.AddDate(0, i, 0).Format("2006-01")
		serie[i] = PuntoMensual{Mes: mes}
		porMes[mes] = &serie[i]
	}

	for i := range ingresos {
		ing := &ingresos[i]
		punto, ok := porMes[ing.Fecha.Format("2006-01")]
		if !ok {
			continue
		}
		if ing.Amount >= 0 {
			punto.Ingresos += ing.Amount
		} else {
			punto.Egresos += -ing.Amount
		}
	}

	return serie
}
