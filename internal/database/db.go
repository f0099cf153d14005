package database

import (
	"log"

	"asociacion-backend/internal/config"
	"asociacion-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.SocioTitular{},
		&models.SocioDocumento{},
		&models.Ingreso{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	// El padrón histórico tiene filas con DNI vacío; el índice único solo
	// aplica a los DNI reales. AutoMigrate no sabe expresar esto.
	if DB.Migrator().HasTable(&models.SocioTitular{}) {
		if err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_socio_titulares_dni
			ON socio_titulares (dni) WHERE dni <> ''`).Error; err != nil {
			log.Printf("No se pudo crear el índice único parcial de dni: %v", err)
		}
	}

	log.Println("Conexión a la base de datos establecida. Migración completada.")
}
