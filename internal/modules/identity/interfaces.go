package identity

import "context"

// ProfileLookup is the read side of the account, profile and legacy
// directories. Each method returns "" when the reference does not match.
type ProfileLookup interface {
	ClientProfileName(ctx context.Context, ref string) (string, error)
	WorkerProfileName(ctx context.Context, ref string) (string, error)
	AccountName(ctx context.Context, ref string) (string, error)
	LegacyClientName(ctx context.Context, ref string) (string, error)
	LegacyProviderName(ctx context.Context, ref string) (string, error)
}
