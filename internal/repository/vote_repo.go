package repository

import (
	"context"
	"errors"
	"time"

	"reviewdesk/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRow is one ledger entry. The composite primary key enforces at most one
// vote per (reply, voter).
type VoteRow struct {
	ReplyID   string    `gorm:"column:reply_id;primaryKey;type:varchar(36)"`
	VoterID   string    `gorm:"column:voter_id;primaryKey;type:varchar(36)"`
	VoteKind  string    `gorm:"column:vote_kind;type:varchar(16);not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (VoteRow) TableName() string { return "review_reply_votes" }

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Toggle applies one vote click inside a single transaction: lock the voter's
// row, compute the transition, upsert or delete, then recount from the
// ledger. Counts are never maintained incrementally.
func (r *VoteRepository) Toggle(ctx context.Context, replyID, voterID string, kind domain.VoteKind) (domain.MyVote, domain.VoteCounts, error) {
	var (
		mine   domain.MyVote
		counts domain.VoteCounts
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current := domain.NoVote()

		var row VoteRow
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reply_id = ? AND voter_id = ?", replyID, voterID).
			Limit(1).
			Find(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			current = domain.SomeVote(domain.VoteKind(row.VoteKind))
		}

		next, mutation := current.Set(kind)

		switch mutation {
		case domain.MutationDelete:
			// Conditional on the kind so a concurrent switch by the same
			// voter is never erased.
			if err := tx.Where("reply_id = ? AND voter_id = ? AND vote_kind = ?", replyID, voterID, string(kind)).
				Delete(&VoteRow{}).Error; err != nil {
				return err
			}
		case domain.MutationUpsert:
			now := time.Now().UTC()
			entry := VoteRow{
				ReplyID:   replyID,
				VoterID:   voterID,
				VoteKind:  string(kind),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "reply_id"}, {Name: "voter_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"vote_kind", "updated_at"}),
			}).Create(&entry).Error; err != nil {
				return err
			}
		default:
			return errors.New("unknown vote mutation")
		}

		byReply, err := countVotes(tx, []string{replyID})
		if err != nil {
			return err
		}

		mine = next
		counts = byReply[replyID]
		return nil
	})
	if err != nil {
		return domain.NoVote(), domain.VoteCounts{}, err
	}
	return mine, counts, nil
}

// CountsByReplies aggregates ledger rows per reply. Replies with no votes are
// absent from the result.
func (r *VoteRepository) CountsByReplies(ctx context.Context, replyIDs []string) (map[string]domain.VoteCounts, error) {
	return countVotes(r.db.WithContext(ctx), replyIDs)
}

// KindsByVoter returns the voter's current kind for each reply that has one.
func (r *VoteRepository) KindsByVoter(ctx context.Context, replyIDs []string, voterID string) (map[string]domain.VoteKind, error) {
	out := make(map[string]domain.VoteKind, len(replyIDs))
	if len(replyIDs) == 0 {
		return out, nil
	}

	var rows []VoteRow
	err := r.db.WithContext(ctx).
		Where("voter_id = ? AND reply_id IN ?", voterID, replyIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ReplyID] = domain.VoteKind(row.VoteKind)
	}
	return out, nil
}

type voteCountRow struct {
	ReplyID  string
	VoteKind string
	N        int64
}

func countVotes(db *gorm.DB, replyIDs []string) (map[string]domain.VoteCounts, error) {
	out := make(map[string]domain.VoteCounts, len(replyIDs))
	if len(replyIDs) == 0 {
		return out, nil
	}

	var rows []voteCountRow
	err := db.Model(&VoteRow{}).
		Select("reply_id, vote_kind, COUNT(*) AS n").
		Where("reply_id IN ?", replyIDs).
		Group("reply_id, vote_kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := out[row.ReplyID]
		c.Add(domain.VoteKind(row.VoteKind), row.N)
		out[row.ReplyID] = c
	}
	return out, nil
}

// DeleteOrphans removes votes attached to replies that no longer exist.
func (r *VoteRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("reply_id NOT IN (?)", r.db.Model(&ReviewReplyRow{}).Select("id")).
		Delete(&VoteRow{})
	return res.RowsAffected, res.Error
}
