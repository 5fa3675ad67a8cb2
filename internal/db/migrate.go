package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MATHANGI2003/pms/internal/models"
)

// Migrate brings the schema up to date from the model structs, including the
// composite unique index on attendance (username, date) that enforces one
// session per employee per day. Runtime queries go through pgx; gorm is only
// opened for the migration and closed again.
func Migrate(databaseURL string) error {
	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open gorm db: %w", err)
	}

	err = gormDB.AutoMigrate(
		&models.Admin{},
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.Department{},
		&models.Leave{},
		&models.MonthlyPayroll{},
		&models.PayrollEntry{},
		&models.OnsiteEmployee{},
		&models.LoginRecord{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("get gorm sql db: %w", err)
	}
	return sqlDB.Close()
}
