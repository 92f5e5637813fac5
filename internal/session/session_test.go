// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"physiocms/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient connects to Valkey DB 15 or skips the test.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		if keys, _ := client.Keys(ctx, keyPrefix+"*").Result(); len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

// sessionCookie returns the session cookie set on w.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// requestWith builds a request carrying c.
func requestWith(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	r.AddCookie(c)
	return r
}

func TestSessionRoundTrip(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)
	ctx := t.Context()

	in := &Data{
		UserID:      uuid.New(),
		Email:       "empfang@physio.local",
		DisplayName: "Empfang",
		Role:        models.RoleEditor,
	}
	w := httptest.NewRecorder()
	id, err := store.Create(ctx, w, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 2*idLength {
		t.Errorf("id length: got %d, want %d", len(id), 2*idLength)
	}

	c := sessionCookie(t, w)
	if !c.HttpOnly || c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie flags: HttpOnly=%v Secure=%v SameSite=%v", c.HttpOnly, c.Secure, c.SameSite)
	}
	if c.MaxAge != int(DefaultTTL.Seconds()) {
		t.Errorf("MaxAge: got %d, want %d", c.MaxAge, int(DefaultTTL.Seconds()))
	}

	got, err := store.Get(ctx, requestWith(c))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(in, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
	if got.Authenticated() {
		t.Error("a fresh session has not passed 2FA yet")
	}
}

func TestSessionSecondFactor(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)
	ctx := t.Context()

	w := httptest.NewRecorder()
	data := &Data{UserID: uuid.New(), Email: "admin@physio.local", Role: models.RoleAdmin}
	if _, err := store.Create(ctx, w, data); err != nil {
		t.Fatalf("Create: %v", err)
	}
	r := requestWith(sessionCookie(t, w))

	data.TwoFADone = true
	if err := store.Update(ctx, r, data); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get(ctx, r)
	if err != nil || got == nil {
		t.Fatalf("Get: %v, %v", got, err)
	}
	if !got.Authenticated() || !got.IsAdmin() {
		t.Errorf("after 2FA: Authenticated=%v IsAdmin=%v", got.Authenticated(), got.IsAdmin())
	}
}

func TestSessionTouchExtendsTTL(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := t.Context()

	w := httptest.NewRecorder()
	id, err := store.Create(ctx, w, &Data{UserID: uuid.New(), Role: models.RoleEditor})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client.Expire(ctx, keyPrefix+id, time.Minute)

	tw := httptest.NewRecorder()
	if err := store.Touch(ctx, tw, requestWith(sessionCookie(t, w))); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if ttl := client.TTL(ctx, keyPrefix+id).Val(); ttl < DefaultTTL-time.Minute {
		t.Errorf("TTL after touch: got %s, want about %s", ttl, DefaultTTL)
	}
	sessionCookie(t, tw)
}

func TestSessionDestroy(t *testing.T) {
	store := NewStore(testValkeyClient(t), true)
	ctx := t.Context()

	w := httptest.NewRecorder()
	if _, err := store.Create(ctx, w, &Data{UserID: uuid.New(), TwoFADone: true}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	c := sessionCookie(t, w)
	if !c.Secure {
		t.Error("secure store should set Secure cookies")
	}

	dw := httptest.NewRecorder()
	if err := store.Destroy(ctx, dw, requestWith(c)); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if cleared := sessionCookie(t, dw); cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Errorf("cleared cookie: MaxAge=%d Value=%q", cleared.MaxAge, cleared.Value)
	}

	got, err := store.Get(ctx, requestWith(c))
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if got != nil {
		t.Error("session should be gone after Destroy")
	}
}

func TestSessionUnknownID(t *testing.T) {
	store := NewStore(testValkeyClient(t), false)

	got, err := store.Get(t.Context(), requestWith(&http.Cookie{Name: CookieName, Value: "deadbeef"}))
	if err != nil || got != nil {
		t.Errorf("Get unknown id: got %v, %v; want nil, nil", got, err)
	}
}

// Without a cookie no call reaches Valkey, so a nil client is fine.
func TestSessionWithoutCookie(t *testing.T) {
	store := NewStore(nil, false)
	ctx := context.Background()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	if got, err := store.Get(ctx, r); got != nil || err != nil {
		t.Errorf("Get: got %v, %v", got, err)
	}
	if err := store.Update(ctx, r, &Data{}); !errors.Is(err, ErrNoCookie) {
		t.Errorf("Update: got %v, want ErrNoCookie", err)
	}
	if err := store.Touch(ctx, w, r); !errors.Is(err, ErrNoCookie) {
		t.Errorf("Touch: got %v, want ErrNoCookie", err)
	}
	if err := store.Destroy(ctx, w, r); err != nil {
		t.Errorf("Destroy: %v", err)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no cookie should be written")
	}
}

func TestDataRoles(t *testing.T) {
	tests := []struct {
		name      string
		data      *Data
		wantAuth  bool
		wantAdmin bool
	}{
		{"nil", nil, false, false},
		{"password only", &Data{Role: models.RoleAdmin}, false, false},
		{"editor", &Data{Role: models.RoleEditor, TwoFADone: true}, true, false},
		{"admin", &Data{Role: models.RoleAdmin, TwoFADone: true}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Authenticated(); got != tt.wantAuth {
				t.Errorf("Authenticated: got %v, want %v", got, tt.wantAuth)
			}
			if got := tt.data.IsAdmin(); got != tt.wantAdmin {
				t.Errorf("IsAdmin: got %v, want %v", got, tt.wantAdmin)
			}
		})
	}
}
