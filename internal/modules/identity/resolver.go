// Package identity turns opaque actor references into display names.
package identity

import (
	"context"
	"strings"

	"reviewdesk/internal/domain"

	"github.com/rs/zerolog/log"
)

type lookupFunc func(ctx context.Context, ref string) (string, error)

type step struct {
	table  string
	lookup lookupFunc
}

// Resolver probes an ordered chain of directories per role. The first
// non-empty name wins; a reference nobody knows gets the role placeholder.
type Resolver struct {
	chains map[domain.ActorRole][]step
}

func NewResolver(profiles ProfileLookup) *Resolver {
	return &Resolver{
		chains: map[domain.ActorRole][]step{
			domain.RoleClient: {
				{table: "client_profiles", lookup: profiles.ClientProfileName},
				{table: "users", lookup: profiles.AccountName},
				{table: "legacy_clients", lookup: profiles.LegacyClientName},
			},
			domain.RoleWorker: {
				{table: "worker_profiles", lookup: profiles.WorkerProfileName},
				{table: "users", lookup: profiles.AccountName},
				{table: "legacy_providers", lookup: profiles.LegacyProviderName},
			},
			domain.RoleSystem: {
				{table: "users", lookup: profiles.AccountName},
			},
		},
	}
}

// Resolve never fails. Lookup faults are logged and treated as a miss so a
// broken directory degrades names instead of the whole page.
func (r *Resolver) Resolve(ctx context.Context, ref string, role domain.ActorRole) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Placeholder(role)
	}

	chain, ok := r.chains[role]
	if !ok {
		chain = r.chains[domain.RoleSystem]
	}

	for _, s := range chain {
		name, err := s.lookup(ctx, ref)
		if err != nil {
			log.Warn().
				Err(err).
				Str("ref", ref).
				Str("role", string(role)).
				Str("table", s.table).
				Msg("identity lookup failed")
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return domain.Placeholder(role)
}

// Batch memoises Resolve for the lifetime of one request. It is not safe for
// concurrent use.
type Batch struct {
	resolver *Resolver
	memo     map[batchKey]string
}

type batchKey struct {
	ref  string
	role domain.ActorRole
}

func (r *Resolver) NewBatch() *Batch {
	return &Batch{resolver: r, memo: make(map[batchKey]string)}
}

func (b *Batch) Resolve(ctx context.Context, ref string, role domain.ActorRole) string {
	key := batchKey{ref: ref, role: role}
	if name, ok := b.memo[key]; ok {
		return name
	}
	name := b.resolver.Resolve(ctx, ref, role)
	b.memo[key] = name
	return name
}

// Decorate fills the display fields of each review in place.
func (b *Batch) Decorate(ctx context.Context, reviews []domain.Review) {
	for i := range reviews {
		reviews[i].ClientDisplay = b.Resolve(ctx, reviews[i].ClientRef, domain.RoleClient)
		reviews[i].WorkerDisplay = b.Resolve(ctx, reviews[i].WorkerRef, domain.RoleWorker)
	}
}
