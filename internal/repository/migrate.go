package repository

import "gorm.io/gorm"

// Migrate creates the schema. The partial unique index backstops the
// at-most-one-open-request invariant at the database level; the keyed lock
// in the scheduler enforces it in-process.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&equipmentModel{},
		&failureModel{},
		&predictionModel{},
		&maintenanceModel{},
		&userModel{},
	)
	if err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_maintenance
		 ON maintenance_requests (equipment_id)
		 WHERE status IN ('scheduled', 'in_progress')`,
	).Error
}
