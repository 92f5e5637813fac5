// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import "testing"

func TestNewWithoutConfig(t *testing.T) {
	c, err := New("", "fsn1", "", "", "media", "")
	if err != nil || c != nil {
		t.Fatalf("New() = %v, %v; want nil, nil", c, err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New("https://fsn1.example.com", "fsn1", "key", "secret", "", ""); err == nil {
		t.Fatal("expected error for empty bucket")
	}
}

func TestFileURL(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		want      string
	}{
		{"path style", "", "https://fsn1.example.com/media/2026/03/a.jpg"},
		{"cdn", "https://cdn.example.com", "https://cdn.example.com/2026/03/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("https://fsn1.example.com/", "fsn1", "key", "secret", "media", tt.publicURL)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := c.FileURL("2026/03/a.jpg"); got != tt.want {
				t.Errorf("FileURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
