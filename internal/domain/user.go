package domain

// Role values carried in access tokens.
const (
	TokenRoleAdmin  = "admin"
	TokenRoleClient = "client"
	TokenRoleWorker = "worker"
)

// Display name placeholders used when a reference cannot be resolved.
const (
	PlaceholderClient = "Client"
	PlaceholderWorker = "Prestataire"
	PlaceholderSystem = "Utilisateur"
)

// Placeholder returns the display name used for an unresolvable reference.
func Placeholder(role ActorRole) string {
	switch role {
	case RoleClient:
		return PlaceholderClient
	case RoleWorker:
		return PlaceholderWorker
	}
	return PlaceholderSystem
}
