package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/qms/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250901_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.PurchaseOrder{},
					&models.GateEntry{}, &models.WeighbridgeRecord{}, &models.UnloadingRecord{},
					&models.SampleRecord{}, &models.QCResult{}, &models.GNR{},
					&models.AccountsPayment{}, &models.ActivityLog{})
			},
		},
		{
			ID: "20250901_add_role_index_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.RoleMembership{}, &models.RoleCounter{})
			},
		},
	})
	return m.Migrate()
}
