package permissions

// Roles form a closed set; keep in sync with the DB enum default in auth.User.
const (
	RoleUser      = "USER"
	RoleRedacteur = "REDACTEUR"
	RoleAdmin     = "ADMIN"
)

var Roles = []string{RoleUser, RoleRedacteur, RoleAdmin}

// Actor is the authenticated identity resolved for a request.
// A nil *Actor means the request is anonymous.
type Actor struct {
	ID       string
	Username string
	Role     string
}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func IsAdmin(actor *Actor) bool {
	return actor != nil && actor.Role == RoleAdmin
}

func IsSelf(actorID, targetID string) bool {
	return actorID != "" && targetID != "" && actorID == targetID
}

// CanManageUser grants admins power over every account except their own.
// Self-exemption keeps an admin from demoting, deactivating or deleting
// themselves through the management surface.
func CanManageUser(actor *Actor, targetID string) bool {
	if !IsAdmin(actor) {
		return false
	}
	return !IsSelf(actor.ID, targetID)
}

// CanEditOwn grants an account holder access to their own profile fields,
// regardless of role.
func CanEditOwn(actor *Actor, targetID string) bool {
	if actor == nil {
		return false
	}
	return IsSelf(actor.ID, targetID)
}
