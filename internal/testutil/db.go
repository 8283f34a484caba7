// Package testutil holds database fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"reviewdesk/internal/database"
	"reviewdesk/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Base is a fixed instant fixtures are offset from.
var Base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// At returns Base shifted by the given number of minutes.
func At(minutes int) time.Time { return Base.Add(time.Duration(minutes) * time.Minute) }

func Ptr[T any](v T) *T { return &v }

func Insert(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
}

func PlatformReview(id, author, target string, createdAt time.Time) *repository.PlatformReviewRow {
	return &repository.PlatformReviewRow{
		ID:        id,
		AuthorID:  author,
		TargetID:  target,
		Rating:    5,
		Content:   "platform review " + id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func WorkerClientReview(id, clientProfile, workerProfile string, createdAt time.Time) *repository.WorkerClientReviewRow {
	return &repository.WorkerClientReviewRow{
		ID:              id,
		ClientProfileID: clientProfile,
		WorkerProfileID: workerProfile,
		Score:           4,
		Comment:         "worker client review " + id,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
}

func LegacyReview(id, worker, reviewer string, createdAt time.Time) *repository.LegacyWorkerReviewRow {
	return &repository.LegacyWorkerReviewRow{
		ID:             id,
		WorkerID:       worker,
		ReviewerUserID: reviewer,
		Note:           Ptr(3),
		Comment:        Ptr("legacy review " + id),
		CreatedAt:      createdAt,
	}
}

func Reply(id, source, reviewID, role, sender, content string, createdAt time.Time) *repository.ReviewReplyRow {
	return &repository.ReviewReplyRow{
		ID:         id,
		Source:     source,
		ReviewID:   reviewID,
		SenderRole: role,
		SenderRef:  sender,
		Content:    content,
		CreatedAt:  createdAt,
	}
}
