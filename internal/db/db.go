package db

import (
	"log"
	"time"

	"github.com/cortedigital/salon-api/internal/config"
	"github.com/cortedigital/salon-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.BarberPrice{},
		&models.Appointment{},
		&models.Review{},
		&models.InventoryItem{},
		&models.Notification{},
		&models.Conversation{},
		&models.ChatMessage{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedServices(db)

	return db
}

// seedServices garante o catálogo básico de serviços em bancos vazios.
func seedServices(db *gorm.DB) {
	var count int64
	db.Model(&models.Service{}).Count(&count)
	if count > 0 {
		return
	}

	db.Create(&[]models.Service{
		{Name: "Corte", Description: "Corte de cabelo tradicional", DurationMin: 30, Price: 40, Category: "Cabelo"},
		{Name: "Barba", Description: "Barba completa com toalha quente", DurationMin: 30, Price: 30, Category: "Barba"},
		{Name: "Corte + Barba", Description: "Combo corte e barba", DurationMin: 60, Price: 60, Category: "Combo"},
	})
}
