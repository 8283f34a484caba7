package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"reviewdesk/internal/domain"
	"reviewdesk/internal/repository"
	"reviewdesk/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteToggleTransitions(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVoteRepository(db)
	ctx := context.Background()

	mine, counts, err := repo.Toggle(ctx, "reply-1", "voter-1", domain.VoteLike)
	require.NoError(t, err)
	kind, ok := mine.Kind()
	assert.True(t, ok)
	assert.Equal(t, domain.VoteLike, kind)
	assert.Equal(t, domain.VoteCounts{Like: 1}, counts)

	// switching replaces the row in place
	mine, counts, err = repo.Toggle(ctx, "reply-1", "voter-1", domain.VoteUseful)
	require.NoError(t, err)
	kind, _ = mine.Kind()
	assert.Equal(t, domain.VoteUseful, kind)
	assert.Equal(t, domain.VoteCounts{Useful: 1}, counts)

	var n int64
	require.NoError(t, db.Model(&repository.VoteRow{}).Where("reply_id = ?", "reply-1").Count(&n).Error)
	assert.Equal(t, int64(1), n)

	// repeating the held kind clears the vote
	mine, counts, err = repo.Toggle(ctx, "reply-1", "voter-1", domain.VoteUseful)
	require.NoError(t, err)
	assert.True(t, mine.IsNone())
	assert.Equal(t, domain.VoteCounts{}, counts)

	require.NoError(t, db.Model(&repository.VoteRow{}).Where("reply_id = ?", "reply-1").Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestVoteCountsAndKindsByVoter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVoteRepository(db)
	ctx := context.Background()

	_, _, err := repo.Toggle(ctx, "r1", "a", domain.VoteLike)
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, "r1", "b", domain.VoteLike)
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, "r1", "c", domain.VoteNotUseful)
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, "r2", "a", domain.VoteUseful)
	require.NoError(t, err)

	counts, err := repo.CountsByReplies(ctx, []string{"r1", "r2", "r3"})
	require.NoError(t, err)
	assert.Equal(t, domain.VoteCounts{Like: 2, NotUseful: 1}, counts["r1"])
	assert.Equal(t, domain.VoteCounts{Useful: 1}, counts["r2"])
	_, present := counts["r3"]
	assert.False(t, present)

	kinds, err := repo.KindsByVoter(ctx, []string{"r1", "r2", "r3"}, "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.VoteKind{"r1": domain.VoteLike, "r2": domain.VoteUseful}, kinds)

	empty, err := repo.CountsByReplies(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVoteToggleConcurrentVoters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVoteRepository(db)
	ctx := context.Background()

	const voters = 20
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := domain.VoteKinds[i%len(domain.VoteKinds)]
			if _, _, err := repo.Toggle(ctx, "hot", fmt.Sprintf("voter-%02d", i), kind); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	counts, err := repo.CountsByReplies(ctx, []string{"hot"})
	require.NoError(t, err)
	assert.Equal(t, int64(voters), counts["hot"].Total())
	assert.Equal(t, int64(7), counts["hot"].Like)
	assert.Equal(t, int64(7), counts["hot"].Useful)
	assert.Equal(t, int64(6), counts["hot"].NotUseful)
}

func TestVoteToggleConcurrentSameVoter(t *testing.T) {
	for _, tc := range []struct {
		name  string
		kinds []domain.VoteKind
	}{
		{"identical clicks", []domain.VoteKind{domain.VoteLike, domain.VoteLike, domain.VoteLike, domain.VoteLike, domain.VoteLike, domain.VoteLike, domain.VoteLike}},
		{"mixed kinds", []domain.VoteKind{domain.VoteLike, domain.VoteUseful, domain.VoteNotUseful, domain.VoteLike, domain.VoteUseful, domain.VoteNotUseful}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			repo := repository.NewVoteRepository(db)
			ctx := context.Background()

			var wg sync.WaitGroup
			errs := make(chan error, len(tc.kinds))
			for _, kind := range tc.kinds {
				wg.Add(1)
				go func(kind domain.VoteKind) {
					defer wg.Done()
					mine, counts, err := repo.Toggle(ctx, "hot", "same-voter", kind)
					if err != nil {
						errs <- err
						return
					}
					if counts.Total() > 1 {
						errs <- fmt.Errorf("one voter counted %d times", counts.Total())
					}
					if mine.IsNone() != (counts.Total() == 0) {
						errs <- fmt.Errorf("my vote %v disagrees with counts %+v", mine, counts)
					}
				}(kind)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			var rows []repository.VoteRow
			require.NoError(t, db.Where("reply_id = ? AND voter_id = ?", "hot", "same-voter").Find(&rows).Error)
			assert.LessOrEqual(t, len(rows), 1)

			counts, err := repo.CountsByReplies(ctx, []string{"hot"})
			require.NoError(t, err)
			assert.Equal(t, int64(len(rows)), counts["hot"].Total())
		})
	}
}

func TestVoteDeleteOrphans(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewVoteRepository(db)
	ctx := context.Background()

	testutil.Insert(t, db, testutil.Reply("alive", "platform_review", "rev", "client", "c", "hi", testutil.At(0)))
	_, _, err := repo.Toggle(ctx, "alive", "v1", domain.VoteLike)
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, "gone", "v1", domain.VoteLike)
	require.NoError(t, err)

	removed, err := repo.DeleteOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	counts, err := repo.CountsByReplies(ctx, []string{"alive", "gone"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["alive"].Like)
	assert.Zero(t, counts["gone"].Total())
}
