package navigation

import (
	"testing"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
)

func titles(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestVisibleSuperAdminSeesEverything(t *testing.T) {
	got := titles(Visible(domain.PermissionAdmin))
	want := []string{"Dashboard", "Product", "Category", "Suppliers", "Transaction", "Audit log"}
	if len(got) != len(want) {
		t.Fatalf("admin sees %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("admin entry %d = %q, want %q (order must be preserved)", i, got[i], want[i])
		}
	}
}

func TestVisibleStaffSeesAllowSetOnly(t *testing.T) {
	got := titles(Visible(domain.PermissionStaff))
	want := []string{"Category", "Suppliers"}
	if len(got) != len(want) {
		t.Fatalf("staff sees %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("staff entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVisibleUnknownLevelSeesNothing(t *testing.T) {
	if got := Visible(0); len(got) != 0 {
		t.Fatalf("level 0 sees %v, want nothing", titles(got))
	}
	if got := Visible(7); len(got) != 0 {
		t.Fatalf("level 7 sees %v, want nothing", titles(got))
	}
}

func TestVisibleForNilSession(t *testing.T) {
	if got := VisibleFor(nil); len(got) != 0 {
		t.Fatalf("nil session sees %v, want nothing", titles(got))
	}
}
