package database

import (
	"reviewdesk/internal/repository"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repository.AccountRow{},
		&repository.ClientProfileRow{},
		&repository.WorkerProfileRow{},
		&repository.LegacyClientRow{},
		&repository.LegacyProviderRow{},
		&repository.PlatformReviewRow{},
		&repository.WorkerClientReviewRow{},
		&repository.LegacyWorkerReviewRow{},
		&repository.ReviewReplyRow{},
		&repository.VoteRow{},
	)
}
