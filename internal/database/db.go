package database

import (
	"log"

	"dairyline-backend/internal/config"
	"dairyline-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	// Legacy milk_entries carried the vendor reference in either supplier_id
	// or vendor_id. Backfill vendor_id once (BEFORE AutoMigrate adds the NOT
	// NULL constraint), then drop the legacy column so only the single typed
	// key remains.
	if DB.Migrator().HasTable(&models.MilkEntry{}) && DB.Migrator().HasColumn(&models.MilkEntry{}, "supplier_id") {
		log.Println("Backfilling milk_entries.vendor_id from legacy supplier_id...")

		if !DB.Migrator().HasColumn(&models.MilkEntry{}, "vendor_id") {
			if err := DB.Exec("ALTER TABLE milk_entries ADD COLUMN vendor_id BIGINT").Error; err != nil {
				log.Printf("Adding vendor_id column failed (may already exist): %v", err)
			}
		}

		DB.Exec("UPDATE milk_entries SET vendor_id = supplier_id WHERE vendor_id IS NULL AND supplier_id IS NOT NULL")

		// Entries with neither reference cannot be scoped to any vendor.
		var orphanCount int64
		DB.Raw("SELECT COUNT(*) FROM milk_entries WHERE vendor_id IS NULL").Scan(&orphanCount)
		if orphanCount > 0 {
			DB.Exec("DELETE FROM milk_entries WHERE vendor_id IS NULL")
			log.Printf("WARNING: removed %d milk entries with no vendor reference", orphanCount)
		}

		if err := DB.Exec("ALTER TABLE milk_entries DROP COLUMN supplier_id").Error; err != nil {
			log.Printf("Dropping legacy supplier_id failed: %v", err)
		} else {
			log.Println("Legacy supplier_id column dropped")
		}
	}

	err = DB.AutoMigrate(
		&models.AdminUser{},
		&models.Vendor{},
		&models.Customer{},
		&models.MilkEntry{},
		&models.Product{},
		&models.Sale{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected. Migration complete.")
}
