// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Integration tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"physiocms/internal/blocks"
	"physiocms/internal/database"
	"physiocms/internal/middleware"
	"physiocms/internal/models"
	"physiocms/internal/session"
	"physiocms/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "physiocms")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "physiocms")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds the database-backed handler groups. The page cache and
// the site engine are left out; the Invalidator tolerates both missing.
type testEnv struct {
	DB       *sql.DB
	Pages    *Pages
	Themes   *Themes
	SiteDocs *SiteDocs
	System   *System
	User     *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testDB(t)

	cacheLog := store.NewCacheLogStore(db)
	iv := NewInvalidator(nil, cacheLog, nil)

	email := "handler-" + uuid.NewString() + "@test.local"
	user, err := store.NewUserStore(db).Create(t.Context(), email, "secret", "Handler Test", models.RoleEditor)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", user.ID) })

	return &testEnv{
		DB:       db,
		Pages:    NewPages(store.NewPageStore(db), iv),
		Themes:   NewThemes(store.NewThemeStore(db), store.NewBrandSettingsStore(db), iv),
		SiteDocs: NewSiteDocs(store.NewSiteDocStore(db), iv),
		System:   NewSystem(cacheLog, iv),
		User:     user,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParams sets chi URL parameters on the request.
func withChiURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with v encoded as the JSON body.
func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if v != nil {
		if err := json.NewEncoder(&body).Encode(v); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes the recorder's JSON body into a new T.
func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

// paletteBlock returns a block of type t with the palette defaults as props.
func paletteBlock(t *testing.T, typ string) models.Block {
	t.Helper()
	for _, d := range blocks.Palette() {
		if d.Type == typ {
			return models.Block{ID: uuid.New(), Type: typ, Props: d.Defaults}
		}
	}
	t.Fatalf("no palette entry for %q", typ)
	return models.Block{}
}

func uniqueSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
