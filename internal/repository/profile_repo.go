package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRow is an authentication account.
type AccountRow struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	FullName  *string   `gorm:"column:full_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (AccountRow) TableName() string { return "users" }

func (r *AccountRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r AccountRow) DisplayName() string {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) != "" {
		return strings.TrimSpace(*r.FullName)
	}
	local, _, _ := strings.Cut(r.Email, "@")
	return strings.TrimSpace(local)
}

type ClientProfileRow struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"column:user_id;uniqueIndex;not null"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ClientProfileRow) TableName() string { return "client_profiles" }

func (r *ClientProfileRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r ClientProfileRow) DisplayName() string {
	return joinName(r.FirstName, r.LastName)
}

type WorkerProfileRow struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	UserID      string    `gorm:"column:user_id;uniqueIndex;not null"`
	DisplayName *string   `gorm:"column:display_name"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (WorkerProfileRow) TableName() string { return "worker_profiles" }

func (r *WorkerProfileRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Name prefers the public display name over the legal name.
func (r WorkerProfileRow) Name() string {
	if r.DisplayName != nil && strings.TrimSpace(*r.DisplayName) != "" {
		return strings.TrimSpace(*r.DisplayName)
	}
	return joinName(r.FirstName, r.LastName)
}

// LegacyClientRow and LegacyProviderRow are the pre-migration directories.
// Old reviews still reference their ids.
type LegacyClientRow struct {
	ID   string `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name string `gorm:"column:name"`
}

func (LegacyClientRow) TableName() string { return "legacy_clients" }

type LegacyProviderRow struct {
	ID           string  `gorm:"column:id;primaryKey;type:varchar(36)"`
	BusinessName *string `gorm:"column:business_name"`
	ContactName  string  `gorm:"column:contact_name"`
}

func (LegacyProviderRow) TableName() string { return "legacy_providers" }

func (r LegacyProviderRow) DisplayName() string {
	if r.BusinessName != nil && strings.TrimSpace(*r.BusinessName) != "" {
		return strings.TrimSpace(*r.BusinessName)
	}
	return strings.TrimSpace(r.ContactName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// ProfileRepository looks up display names across the account, profile and
// legacy directories. Every lookup returns "" when nothing usable matches.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ClientProfileName matches ref against the profile id or its owning account.
func (r *ProfileRepository) ClientProfileName(ctx context.Context, ref string) (string, error) {
	var row ClientProfileRow
	ok, err := r.findOne(ctx, &row, "id = ? OR user_id = ?", ref, ref)
	if err != nil || !ok {
		return "", err
	}
	return row.DisplayName(), nil
}

func (r *ProfileRepository) WorkerProfileName(ctx context.Context, ref string) (string, error) {
	var row WorkerProfileRow
	ok, err := r.findOne(ctx, &row, "id = ? OR user_id = ?", ref, ref)
	if err != nil || !ok {
		return "", err
	}
	return row.Name(), nil
}

func (r *ProfileRepository) AccountName(ctx context.Context, ref string) (string, error) {
	var row AccountRow
	ok, err := r.findOne(ctx, &row, "id = ?", ref)
	if err != nil || !ok {
		return "", err
	}
	return row.DisplayName(), nil
}

func (r *ProfileRepository) LegacyClientName(ctx context.Context, ref string) (string, error) {
	var row LegacyClientRow
	ok, err := r.findOne(ctx, &row, "id = ?", ref)
	if err != nil || !ok {
		return "", err
	}
	return strings.TrimSpace(row.Name), nil
}

func (r *ProfileRepository) LegacyProviderName(ctx context.Context, ref string) (string, error) {
	var row LegacyProviderRow
	ok, err := r.findOne(ctx, &row, "id = ?", ref)
	if err != nil || !ok {
		return "", err
	}
	return row.DisplayName(), nil
}

func (r *ProfileRepository) findOne(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	tx := r.db.WithContext(ctx).Where(query, args...).Limit(1).Find(dest)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
