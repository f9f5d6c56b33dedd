package postgres

import (
	"gorm.io/gorm"

	"parcelhub/internal/adapters/out/postgres/branchrepo"
	"parcelhub/internal/adapters/out/postgres/parcelrepo"
	"parcelhub/internal/adapters/out/postgres/schedulerepo"
	"parcelhub/internal/adapters/out/postgres/shipmentrepo"
	"parcelhub/internal/adapters/out/postgres/vehiclerepo"
)

// Migrate creates or updates the schema for every aggregate table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&branchrepo.BranchDTO{},
		&vehiclerepo.VehicleDTO{},
		&schedulerepo.ScheduleDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.PaymentDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.LoadDTO{},
	)
}
