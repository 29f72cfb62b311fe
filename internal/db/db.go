package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/shubhkakadia/cabipro-sub001/internal/models"
	"github.com/shubhkakadia/cabipro-sub001/internal/tenant"
)

func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	sqlDB, _ := gdb.DB()
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("❌ Database ping failed: %v", err)
	}

	if err := gdb.Use(tenant.Plugin{}); err != nil {
		log.Fatalf("❌ Failed to install tenant scope plugin: %v", err)
	}

	log.Println("✅ Database connected successfully")
	return gdb
}

// AutoMigrate creates/updates the schema for every table this layer owns.
func AutoMigrate(gdb *gorm.DB) {
	if err := gdb.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Admin{},
		&models.Session{},
		&models.AdminSession{},
		&models.Client{},
		&models.Project{},
		&models.Lot{},
		&models.Supplier{},
		&models.PurchaseOrder{},
		&models.AuthAudit{},
	); err != nil {
		log.Fatalf("❌ Auto-migration failed: %v", err)
	}
}
