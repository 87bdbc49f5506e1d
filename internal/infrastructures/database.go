package infrastructures

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/topnet/fleetfuel-core/internal/app/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	db, err := gorm.Open(postgres.Open(os.Getenv("DATABASE_URL")), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Vehicle{},
		&models.Driver{},
		&models.CostCenter{},
		&models.FuelStation{},
		&models.FuelTransaction{},
		&models.FuelPriceSnapshot{},
		&models.Alert{},
		&models.AuditLog{},
	)
	if err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	return db
}
