package migrations

import (
	"github.com/fabiobufalari/communication-service/internal/repository"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "000001_create_notifications",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.NotificationModel{}); err != nil {
					return err
				}
				indexes := []string{
					`CREATE INDEX IF NOT EXISTS idx_notifications_created_at_id ON notifications (created_at DESC, id DESC)`,
					`CREATE INDEX IF NOT EXISTS idx_notifications_status ON notifications (status)`,
					`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient)`,
				}
				for _, sql := range indexes {
					if err := tx.Exec(sql).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.NotificationModel{})
			},
		},
	})

	return m.Migrate()
}
