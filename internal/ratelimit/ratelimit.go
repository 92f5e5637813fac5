// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ratelimit provides sliding-window rate limiters. The Valkey
// limiter is shared by every server instance and survives restarts; the
// in-memory limiter is a single-process fallback used when Valkey is not
// wired in (and in tests).
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"physiocms/internal/brand"
)

// Limiter decides whether another event for key fits in the window.
// Allow records the event only when it returns true, so rejected
// attempts do not extend a client's lockout. Release takes back the
// newest recorded event, for callers whose guarded action failed after
// Allow.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// ContactKey derives the limiter key for a contact form submission. The
// email is hashed so addresses never appear in Valkey keys or logs.
func ContactKey(email string, b brand.Brand) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email)) + "|" + string(b)))
	return "contact:" + hex.EncodeToString(sum[:])
}

// Memory is an in-process sliding-window limiter. State is lost on
// restart and not shared between instances. mu guards the map and the
// events of every key.
type Memory struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	stop    sync.Once
}

// NewMemory creates a limiter that allows limit events per window.
// It starts a background goroutine that prunes idle keys; call Stop to end it.
func NewMemory(limit int, window time.Duration) *Memory {
	m := &Memory{
		clients: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	interval := window
	if interval > 5*time.Minute {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.cleanup()
			case <-m.stopCh:
				return
			}
		}
	}()

	return m
}

// Stop terminates the background cleanup goroutine. Safe to call twice.
func (m *Memory) Stop() {
	m.stop.Do(func() { close(m.stopCh) })
}

// Allow implements Limiter. It never returns an error.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	events := recent(m.clients[key], now.Add(-m.window))
	if len(events) >= m.limit {
		m.clients[key] = events
		return false, nil
	}
	m.clients[key] = append(events, now)
	return true, nil
}

// Release implements Limiter. It never returns an error.
func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := m.clients[key]
	switch len(events) {
	case 0:
	case 1:
		delete(m.clients, key)
	default:
		m.clients[key] = events[:len(events)-1]
	}
	return nil
}

// cleanup removes keys with no event inside the window.
func (m *Memory) cleanup() {
	cutoff := m.now().Add(-m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, events := range m.clients {
		events = recent(events, cutoff)
		if len(events) == 0 {
			delete(m.clients, key)
			continue
		}
		m.clients[key] = events
	}
}

// recent filters events in place, keeping those after cutoff.
func recent(events []time.Time, cutoff time.Time) []time.Time {
	valid := events[:0]
	for _, ts := range events {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	return valid
}
