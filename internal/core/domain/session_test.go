package domain

import "testing"

func sampleUser() *User {
	return &User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: RoleAdmin}
}

// The session invariant: token present iff user present, for any sequence of
// paired setter calls and clears.
func TestSessionInvariant(t *testing.T) {
	s := &Session{}

	if s.Authenticated() {
		t.Fatalf("empty session must not be authenticated")
	}

	s.SetUser(sampleUser())
	s.SetToken("tok-1")
	s.SetPermissions(PermissionsForRole(RoleAdmin))

	if !s.Authenticated() {
		t.Fatalf("session with user and token must be authenticated")
	}
	if (s.Token != "") != (s.User != nil) {
		t.Fatalf("invariant broken after login: token=%q user=%v", s.Token, s.User)
	}

	s.ClearAuth()
	if s.User != nil || s.Token != "" || s.Permissions != nil {
		t.Fatalf("ClearAuth left residue: %+v", s)
	}
	if (s.Token != "") != (s.User != nil) {
		t.Fatalf("invariant broken after clear")
	}

	// Login again after a clear.
	s.SetUser(sampleUser())
	s.SetToken("tok-2")
	s.SetPermissions(PermissionsForRole(RoleStaff))
	if !s.Authenticated() {
		t.Fatalf("re-login must authenticate")
	}
}

func TestPermissionsForRole(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{RoleAdmin, PermissionAdmin},
		{RoleStaff, PermissionStaff},
		{"manager", PermissionStaff},
		{"", PermissionStaff},
	}
	for _, tc := range tests {
		if got := PermissionsForRole(tc.role).Level; got != tc.want {
			t.Errorf("PermissionsForRole(%q) = %d, want %d", tc.role, got, tc.want)
		}
	}
}

func TestPermissionLevelNilSafe(t *testing.T) {
	var s *Session
	if s.PermissionLevel() != 0 {
		t.Fatalf("nil session must report level 0")
	}
	if s.Authenticated() {
		t.Fatalf("nil session must not be authenticated")
	}
	if (&Session{}).PermissionLevel() != 0 {
		t.Fatalf("session without permissions must report level 0")
	}
}
