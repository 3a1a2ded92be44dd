package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inventrack/dashboard-gateway/internal/core/domain"
	"github.com/inventrack/dashboard-gateway/internal/core/ports"
)

// fakeAPI is an in-memory inventory API speaking the envelope contract for
// the category endpoints. It rejects requests without the expected bearer
// token the way the real API does.
type fakeAPI struct {
	mu         sync.Mutex
	nextID     int
	listCalls  int
	categories []domain.Category
	token      string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/category/getCategories", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listCalls++
		writeEnvelope(w, true, "", f.categories)
	})
	mux.HandleFunc("/api/category/createCategory", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		var in ports.CategoryInput
		json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, c := range f.categories {
			if c.Name == in.Name {
				writeEnvelope(w, false, "category already exists", nil)
				return
			}
		}
		f.nextID++
		f.categories = append(f.categories, domain.Category{
			ID:          idString(f.nextID),
			Name:        in.Name,
			Description: in.Description,
		})
		writeEnvelope(w, true, "Category created", nil)
	})
	mux.HandleFunc("/api/category/updateCategory/", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/category/updateCategory/")
		var in ports.CategoryInput
		json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, c := range f.categories {
			if c.ID == id {
				f.categories[i].Name = in.Name
				f.categories[i].Description = in.Description
				writeEnvelope(w, true, "Category updated", nil)
				return
			}
		}
		writeEnvelope(w, false, "category not found", nil)
	})
	mux.HandleFunc("/api/category/deleteCategory/", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/category/deleteCategory/")
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, c := range f.categories {
			if c.ID == id {
				f.categories = append(f.categories[:i], f.categories[i+1:]...)
				writeEnvelope(w, true, "Category deleted", nil)
				return
			}
		}
		writeEnvelope(w, false, "category not found", nil)
	})
	return mux
}

func (f *fakeAPI) authorized(w http.ResponseWriter, r *http.Request) bool {
	if f.token == "" || r.Header.Get("Authorization") == "Bearer "+f.token {
		return true
	}
	w.WriteHeader(http.StatusUnauthorized)
	writeEnvelope(w, false, "unauthorized", nil)
	return false
}

func writeEnvelope(w http.ResponseWriter, success bool, message string, data any) {
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func idString(n int) string {
	return "cat-" + string(rune('0'+n))
}

// Create, edit, and delete a category against the fake API, reading the list
// after each write. Every read after a write must reflect the mutation, which
// exercises the write-path cache invalidation end to end.
func TestInventoryCategoryRoundTrip(t *testing.T) {
	api := &fakeAPI{token: "tok-1"}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	inv := NewInventory(NewClient(srv.URL, 0, zerolog.Nop()), zerolog.Nop())
	ctx := WithToken(context.Background(), "tok-1")

	got, err := inv.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("initial list = %+v, want empty", got)
	}

	if err := inv.CreateCategory(ctx, ports.CategoryInput{Name: "Beverages", Description: "Drinks"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	got, err = inv.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories after create: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Beverages" {
		t.Fatalf("list after create = %+v", got)
	}
	id := got[0].ID

	if err := inv.UpdateCategory(ctx, id, ports.CategoryInput{Name: "Drinks", Description: "Renamed"}); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	got, err = inv.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories after update: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Drinks" || got[0].Description != "Renamed" {
		t.Fatalf("list after update = %+v", got)
	}

	if err := inv.DeleteCategory(ctx, id); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	got, err = inv.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("list after delete = %+v, want empty", got)
	}
}

// A rejected write must not invalidate the cache: the next read is a hit.
func TestInventoryRejectedWriteKeepsCache(t *testing.T) {
	api := &fakeAPI{}
	api.categories = []domain.Category{{ID: "cat-1", Name: "Beverages"}}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	inv := NewInventory(NewClient(srv.URL, 0, zerolog.Nop()), zerolog.Nop())
	ctx := context.Background()

	if _, err := inv.Categories(ctx); err != nil {
		t.Fatalf("Categories: %v", err)
	}

	err := inv.CreateCategory(ctx, ports.CategoryInput{Name: "Beverages"})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("duplicate create err = %v, want ErrRejected", err)
	}
	var ue *Error
	if !errors.As(err, &ue) || ue.Message != "category already exists" {
		t.Fatalf("err = %v, want API message carried through", err)
	}

	if _, err := inv.Categories(ctx); err != nil {
		t.Fatalf("Categories after rejected write: %v", err)
	}
	api.mu.Lock()
	calls := api.listCalls
	api.mu.Unlock()
	if calls != 1 {
		t.Fatalf("list calls = %d, want 1 (rejected write must not invalidate)", calls)
	}
}

func TestInventoryLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "secret" {
			writeEnvelope(w, false, "invalid credentials", nil)
			return
		}
		writeEnvelope(w, true, "Login successful", map[string]any{
			"token": "jwt-abc",
			"user":  map[string]any{"_id": "u1", "name": "Alice", "email": in.Email, "role": "admin"},
		})
	}))
	defer srv.Close()

	inv := NewInventory(NewClient(srv.URL, 0, zerolog.Nop()), zerolog.Nop())

	res, err := inv.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "jwt-abc" || res.User == nil || res.User.Role != domain.RoleAdmin {
		t.Fatalf("LoginResult = %+v", res)
	}

	if _, err := inv.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, ErrRejected) {
		t.Fatalf("bad password err = %v, want ErrRejected", err)
	}
}

// An accepted login whose envelope is missing the token or the user is
// treated as a rejection, never as a half-built session.
func TestInventoryLoginMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, true, "Login successful", map[string]any{"token": ""})
	}))
	defer srv.Close()

	inv := NewInventory(NewClient(srv.URL, 0, zerolog.Nop()), zerolog.Nop())
	if _, err := inv.Login(context.Background(), "a@b.c", "pw"); !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}
