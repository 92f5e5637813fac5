// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import "testing"

func TestParseVideo(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		ok       bool
		platform string
		embed    string
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true, "youtube",
			"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?playsinline=1&rel=0"},
		{"youtube short link with time", "https://youtu.be/dQw4w9WgXcQ?t=1m30s", true, "youtube",
			"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?playsinline=1&rel=0&start=90"},
		{"youtube shorts", "https://youtube.com/shorts/dQw4w9WgXcQ", true, "youtube",
			"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?playsinline=1&rel=0"},
		{"vimeo", "https://vimeo.com/76979871", true, "vimeo", "https://player.vimeo.com/video/76979871?dnt=1"},
		{"vimeo player", "https://player.vimeo.com/video/76979871", true, "vimeo", "https://player.vimeo.com/video/76979871?dnt=1"},
		{"mp4 file", "https://cdn.example.com/clip.mp4", true, "file", "https://cdn.example.com/clip.mp4"},
		{"local file", "/media/clip.webm", true, "file", "/media/clip.webm"},
		{"plain http", "http://www.youtube.com/watch?v=dQw4w9WgXcQ", false, "", ""},
		{"other host", "https://example.com/video", false, "", ""},
		{"youtube without id", "https://www.youtube.com/watch", false, "", ""},
		{"empty", "", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ParseVideo(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseVideo(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if v.Platform != tt.platform {
				t.Errorf("Platform = %q, want %q", v.Platform, tt.platform)
			}
			if v.EmbedURL != tt.embed {
				t.Errorf("EmbedURL = %q, want %q", v.EmbedURL, tt.embed)
			}
		})
	}
}
