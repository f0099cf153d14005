package main

import (
	"errors"
	"log"

	"asociacion-backend/internal/admin"
	"asociacion-backend/internal/audit"
	"asociacion-backend/internal/auth"
	"asociacion-backend/internal/config"
	"asociacion-backend/internal/dashboard"
	"asociacion-backend/internal/database"
	"asociacion-backend/internal/documentos"
	"asociacion-backend/internal/ingresos"
	"asociacion-backend/internal/models"
	"asociacion-backend/internal/socios"
	"asociacion-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	database.Init(cfg)

	store := storage.NewSupabaseClient(cfg)

	app := fiber.New(fiber.Config{
		AppName: "asociacion-backend",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Error inesperado del servidor"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Rutas públicas
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register-admin", auth.RegisterAdminHandler(cfg))
	authGroup.Post("/login", auth.LoginHandler(cfg))

	// Todo lo demás exige sesión
	api := app.Group("/api", auth.JWTMiddleware(cfg))
	api.Get("/auth/me", auth.MeHandler())

	soloAdmin := auth.RequireRole(models.RoleAdmin)
	cualquierRol := auth.RequireRole(models.RoleAdmin, models.RoleOperador)

	// Padrón de socios
	api.Get("/socios", cualquierRol, socios.ListSociosHandler(cfg))
	api.Get("/socios/localidades", cualquierRol, socios.ListLocalidadesHandler())
	api.Get("/socios/export/csv", cualquierRol, socios.ExportCSVHandler(cfg))
	api.Get("/socios/export/xlsx", cualquierRol, socios.ExportXLSXHandler(cfg))
	api.Get("/socios/:id", cualquierRol, socios.GetSocioHandler(cfg))
	api.Post("/socios", cualquierRol, socios.CreateSocioHandler())
	api.Put("/socios/:id", cualquierRol, socios.UpdateSocioHandler())
	api.Delete("/socios/:id", soloAdmin, socios.DeleteSocioHandler())

	// Expediente documental
	api.Get("/socios/:id/documentos", cualquierRol, documentos.ListDocumentosHandler())
	api.Post("/socios/:id/documentos", cualquierRol, documentos.UploadDocumentoHandler(store))
	api.Delete("/documentos/:id", soloAdmin, documentos.DeleteDocumentoHandler(store))

	// Libro de ingresos/egresos
	api.Get("/ingresos", cualquierRol, ingresos.ListIngresosHandler())
	api.Get("/ingresos/resumen", cualquierRol, ingresos.ResumenMensualHandler())
	api.Post("/ingresos", cualquierRol, ingresos.CreateIngresoHandler())
	api.Delete("/ingresos/:id", soloAdmin, ingresos.DeleteIngresoHandler())

	// Tablero
	api.Get("/dashboard/resumen", cualquierRol, dashboard.ResumenHandler(cfg))

	// Auditoría
	api.Get("/audit-logs", soloAdmin, audit.ListAuditLogsHandler())
	api.Post("/audit-logs/:id/undo", soloAdmin, audit.UndoAuditLogHandler())

	// Gestión de cuentas
	api.Post("/admin/cuentas", soloAdmin, admin.CreateCuentaHandler())
	api.Get("/admin/cuentas", soloAdmin, admin.ListCuentasHandler())
	api.Delete("/admin/cuentas/:id", soloAdmin, admin.DeleteCuentaHandler())

	log.Printf("Servidor escuchando en el puerto %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("El servidor no pudo iniciar: %v", err)
	}
}
