// Package navigation computes the sidebar entries visible to a session.
package navigation

import (
	"slices"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
)

// Entry is one sidebar item with the permission levels allowed to see it.
type Entry struct {
	Title  string
	Target string
	Allow  []int
}

// entries is the sidebar in display order. The allow-sets are finer-grained
// than the two levels login actually issues; only level 2 entries are
// reachable by non-admins today, the rest are admin-only via the override.
var entries = []Entry{
	{Title: "Dashboard", Target: "/dashboard", Allow: []int{1}},
	{Title: "Product", Target: "/dashboard/product", Allow: []int{3}},
	{Title: "Category", Target: "/dashboard/category", Allow: []int{2}},
	{Title: "Suppliers", Target: "/dashboard/suppliers", Allow: []int{2}},
	{Title: "Transaction", Target: "/dashboard/transactions", Allow: []int{1}},
	{Title: "Audit log", Target: "/dashboard/audit-log", Allow: []int{1}},
}

// Visible returns the ordered subset of sidebar entries the permission level
// may see. Super-admin is checked first: level 1 sees every entry, including
// those whose allow-set does not contain 1. That override is intentional.
func Visible(level int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if level == domain.PermissionAdmin {
			out = append(out, e)
			continue
		}
		if slices.Contains(e.Allow, level) {
			out = append(out, e)
		}
	}
	return out
}

// VisibleFor is a convenience over Visible taking the session directly.
// A nil (signed-out) session sees nothing.
func VisibleFor(sess *domain.Session) []Entry {
	return Visible(sess.PermissionLevel())
}
