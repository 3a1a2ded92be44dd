package domain

// Permission levels issued at login. Level 1 is super-admin and bypasses
// every navigation allow-set; any non-admin role collapses to level 2.
const (
	PermissionAdmin = 1
	PermissionStaff = 2
)

// Permissions wraps the coarse permission level granted once at login.
type Permissions struct {
	Level int `json:"permissions"`
}

// Session is the authenticated state carried across requests and persisted
// between restarts. Invariant: Token is non-empty iff User is non-nil, so
// SetUser and SetToken must always be paired (login) or cleared together
// (ClearAuth).
type Session struct {
	User        *User        `json:"user"`
	Token       string       `json:"token"`
	Permissions *Permissions `json:"permissions"`
}

func (s *Session) SetUser(u *User) {
	s.User = u
}

func (s *Session) SetToken(token string) {
	s.Token = token
}

func (s *Session) SetPermissions(p *Permissions) {
	s.Permissions = p
}

// ClearAuth resets the session to its signed-out state.
func (s *Session) ClearAuth() {
	s.User = nil
	s.Token = ""
	s.Permissions = nil
}

// Authenticated reports whether the session holds a login artifact. It does
// not verify the token; the inventory API does that on every call.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// PermissionLevel returns the granted level, or 0 when signed out.
func (s *Session) PermissionLevel() int {
	if s == nil || s.Permissions == nil {
		return 0
	}
	return s.Permissions.Level
}

// PermissionsForRole derives the permission level from the role the API
// issued: "admin" maps to the super-admin level, everything else to staff.
func PermissionsForRole(role string) *Permissions {
	if role == RoleAdmin {
		return &Permissions{Level: PermissionAdmin}
	}
	return &Permissions{Level: PermissionStaff}
}
