package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"reviewdesk/internal/config"
	"reviewdesk/internal/database"
	"reviewdesk/internal/domain"
	"reviewdesk/internal/logger"
	jwtsvc "reviewdesk/internal/pkg/jwt"
	"reviewdesk/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Cleanup old data
	log.Info().Msg("cleaning old data")
	for _, table := range []string{
		"review_reply_votes",
		"review_replies",
		"worker_reviews",
		"worker_client_reviews",
		"platform_reviews",
		"legacy_providers",
		"legacy_clients",
		"worker_profiles",
		"client_profiles",
		"users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatal().Err(err).Str("table", table).Msg("cleanup failed")
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	// ================== ACCOUNTS ==================
	admin := repository.AccountRow{Email: "admin@reviewdesk.local", FullName: ptr("Desk Admin")}
	mustCreate(db, &admin)

	clientNames := [][2]string{{"Amina", "Diallo"}, {"Lucas", "Martin"}, {"Chloe", "Bernard"}}
	var clients []repository.ClientProfileRow
	for i, n := range clientNames {
		acc := repository.AccountRow{Email: fmt.Sprintf("client%d@reviewdesk.local", i+1)}
		mustCreate(db, &acc)
		p := repository.ClientProfileRow{UserID: acc.ID, FirstName: n[0], LastName: n[1]}
		mustCreate(db, &p)
		clients = append(clients, p)
	}

	workerNames := []struct {
		display *string
		first   string
		last    string
	}{
		{ptr("Clean & Co"), "Hugo", "Petit"},
		{nil, "Ines", "Moreau"},
		{ptr("Tap Masters"), "Yanis", "Roux"},
	}
	var workers []repository.WorkerProfileRow
	for i, n := range workerNames {
		acc := repository.AccountRow{Email: fmt.Sprintf("worker%d@reviewdesk.local", i+1)}
		mustCreate(db, &acc)
		p := repository.WorkerProfileRow{UserID: acc.ID, DisplayName: n.display, FirstName: n.first, LastName: n.last}
		mustCreate(db, &p)
		workers = append(workers, p)
	}

	// ================== LEGACY DIRECTORIES ==================
	legacyClient := repository.LegacyClientRow{ID: "legacy-client-1", Name: "Old Client"}
	legacyProvider := repository.LegacyProviderRow{ID: "legacy-provider-1", ContactName: "Old Provider"}
	mustCreate(db, &legacyClient)
	mustCreate(db, &legacyProvider)

	// ================== REVIEWS ==================
	comments := []string{
		"Very professional, arrived on time.",
		"Good work but left a mess.",
		"Would book again!",
		"Average experience overall.",
		"Excellent communication and result.",
	}
	statuses := []*string{nil, ptr("pending"), ptr("published"), ptr("hidden"), ptr("rejected")}

	var platform []repository.PlatformReviewRow
	for i := 0; i < 8; i++ {
		c := clients[i%len(clients)]
		w := workers[i%len(workers)]
		at := now.Add(-time.Duration(rng.Intn(60*24*30)) * time.Minute)
		row := repository.PlatformReviewRow{
			AuthorID:  c.UserID,
			TargetID:  w.UserID,
			Rating:    1 + rng.Intn(5),
			Title:     ptr(fmt.Sprintf("Job #%d", i+1)),
			Content:   comments[rng.Intn(len(comments))],
			Status:    statuses[i%len(statuses)],
			IsPublic:  i%len(statuses) == 2,
			CreatedAt: at,
			UpdatedAt: at,
		}
		mustCreate(db, &row)
		platform = append(platform, row)
	}

	for i := 0; i < 6; i++ {
		at := now.Add(-time.Duration(rng.Intn(60*24*30)) * time.Minute)
		row := repository.WorkerClientReviewRow{
			ClientProfileID:  clients[i%len(clients)].ID,
			WorkerProfileID:  workers[i%len(workers)].ID,
			ServiceRequestID: ptr(fmt.Sprintf("sr-%03d", i+1)),
			Score:            1 + rng.Intn(5),
			Comment:          comments[rng.Intn(len(comments))],
			Status:           statuses[(i+1)%len(statuses)],
			CreatedAt:        at,
			UpdatedAt:        at,
		}
		mustCreate(db, &row)
	}

	for i := 0; i < 4; i++ {
		at := now.Add(-time.Duration(90+i) * 24 * time.Hour)
		row := repository.LegacyWorkerReviewRow{
			WorkerID:       legacyProvider.ID,
			ReviewerUserID: legacyClient.ID,
			Note:           ptr(3 + i%3),
			Comment:        ptr(comments[i%len(comments)]),
			CreatedAt:      at,
		}
		mustCreate(db, &row)
	}

	// ================== REPLIES & VOTES ==================
	votes := repository.NewVoteRepository(db)
	kinds := domain.VoteKinds
	ctx := context.Background()

	for i, rev := range platform[:4] {
		w := workers[i%len(workers)]
		reply := repository.ReviewReplyRow{
			Source:     string(domain.SourcePlatformReview),
			ReviewID:   rev.ID,
			SenderRole: string(domain.RoleWorker),
			SenderRef:  w.UserID,
			Content:    "Thank you for the feedback!",
			CreatedAt:  rev.CreatedAt.Add(2 * time.Hour),
		}
		mustCreate(db, &reply)

		for _, c := range clients {
			if rng.Intn(2) == 0 {
				continue
			}
			if _, _, err := votes.Toggle(ctx, reply.ID, c.UserID, kinds[rng.Intn(len(kinds))]); err != nil {
				log.Fatal().Err(err).Msg("vote seed failed")
			}
		}
	}

	// ================== DEV TOKENS ==================
	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	printToken(tokens, "admin", admin.ID, domain.TokenRoleAdmin)
	printToken(tokens, "client", clients[0].UserID, domain.TokenRoleClient)
	printToken(tokens, "worker", workers[0].UserID, domain.TokenRoleWorker)

	log.Info().
		Int("platform_reviews", len(platform)).
		Int("worker_client_reviews", 6).
		Int("worker_reviews", 4).
		Msg("seed completed")
}

func mustCreate(db *gorm.DB, value any) {
	if err := db.Create(value).Error; err != nil {
		log.Fatal().Err(err).Msgf("create %T failed", value)
	}
}

func printToken(tokens *jwtsvc.Service, label, userID, role string) {
	token, err := tokens.GenerateToken(userID, role)
	if err != nil {
		log.Fatal().Err(err).Str("role", role).Msg("token generation failed")
	}
	log.Info().Str("user_id", userID).Str("token", token).Msgf("%s token", label)
}

func ptr[T any](v T) *T { return &v }
