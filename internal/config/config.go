package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Política de conciliación usada para el estado del padrón de socios.
// "activity" deriva Activo/Inactivo del signo de los asientos del libro;
// "payment" deriva Pagado/No Pagado del primer recibo válido.
// La vista de documentos usa SIEMPRE la política de pago; la divergencia
// entre ambas vistas es intencional (ver DESIGN.md).
const (
	PolicyActivity = "activity"
	PolicyPayment  = "payment"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Almacenamiento de objetos (documentos de socios)
	StorageBaseURL    string // ej. https://<proyecto>.supabase.co
	StorageServiceKey string

	// Política de estado para el listado de socios (activity|payment)
	SocioStatusPolicy string

	// Comparación de localidad en los filtros
	LocalidadCaseSensitive bool
}

func Load() *Config {
	// .env es opcional: en producción las variables llegan del entorno
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No se encontró archivo .env, se usan las variables del entorno.")
	}

	cfg := &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=asociacion port=5432 sslmode=disable"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		CORSOrigins:            getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StorageBaseURL:         getEnv("STORAGE_BASE_URL", ""),
		StorageServiceKey:      getEnv("STORAGE_SERVICE_KEY", ""),
		SocioStatusPolicy:      getEnv("SOCIO_STATUS_POLICY", PolicyActivity),
		LocalidadCaseSensitive: getEnv("LOCALIDAD_CASE_SENSITIVE", "false") == "true",
	}

	// Controles de seguridad para producción
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] La variable de entorno JWT_SECRET no está definida. Es obligatoria.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET debe tener al menos 32 caracteres.")
	}
	if cfg.SocioStatusPolicy != PolicyActivity && cfg.SocioStatusPolicy != PolicyPayment {
		log.Fatalf("[FATAL] SOCIO_STATUS_POLICY inválida: %q (valores: activity|payment)", cfg.SocioStatusPolicy)
	}
	if cfg.StorageBaseURL == "" {
		log.Println("[WARN] STORAGE_BASE_URL no definida: la subida y eliminación de documentos fallará.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto, define tu dominio en producción.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
