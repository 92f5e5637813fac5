// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Video is a resolved video source for the video block.
type Video struct {
	Platform string // youtube, vimeo or file
	EmbedURL string
	Source   string
}

// IsFile reports whether the video plays through a <video> element.
func (v Video) IsFile() bool { return v.Platform == "file" }

var (
	videoTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
	videoIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
	vimeoIDPattern   = regexp.MustCompile(`^\d{5,12}$`)
	videoExtensions  = map[string]bool{".mp4": true, ".webm": true, ".ogg": true, ".mov": true}
)

// ParseVideo resolves a YouTube or Vimeo page URL to its privacy-friendly
// embed URL, or accepts a direct https/site-relative video file.
func ParseVideo(raw string) (Video, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Video{}, false
	}

	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		if videoExtensions[strings.ToLower(path.Ext(raw))] {
			return Video{Platform: "file", EmbedURL: raw, Source: raw}, true
		}
		return Video{}, false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return Video{}, false
	}

	if v, ok := parseYouTube(u, raw); ok {
		return v, true
	}
	if v, ok := parseVimeo(u, raw); ok {
		return v, true
	}
	if videoExtensions[strings.ToLower(path.Ext(u.Path))] {
		return Video{Platform: "file", EmbedURL: u.String(), Source: raw}, true
	}
	return Video{}, false
}

func parseYouTube(u *url.URL, source string) (Video, bool) {
	host := strings.ToLower(u.Hostname())
	var id string

	switch {
	case host == "youtu.be":
		id = strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)[0]
	case isHostOrSubdomain(host, "youtube.com"), isHostOrSubdomain(host, "youtube-nocookie.com"):
		p := strings.Trim(u.Path, "/")
		switch {
		case p == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(p, "shorts/"), strings.HasPrefix(p, "embed/"), strings.HasPrefix(p, "live/"):
			id = strings.SplitN(p[strings.IndexByte(p, '/')+1:], "/", 2)[0]
		}
	default:
		return Video{}, false
	}

	if !videoIDPattern.MatchString(id) {
		return Video{}, false
	}

	q := url.Values{}
	q.Set("rel", "0")
	q.Set("playsinline", "1")
	if start := youTubeStart(u); start > 0 {
		q.Set("start", strconv.Itoa(start))
	}
	return Video{
		Platform: "youtube",
		EmbedURL: fmt.Sprintf("https://www.youtube-nocookie.com/embed/%s?%s", id, q.Encode()),
		Source:   source,
	}, true
}

func youTubeStart(u *url.URL) int {
	q := u.Query()
	value := q.Get("start")
	if value == "" {
		value = q.Get("t")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return max(n, 0)
	}

	total := 0
	for _, m := range videoTimePattern.FindAllStringSubmatch(value, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func parseVimeo(u *url.URL, source string) (Video, bool) {
	host := strings.ToLower(u.Hostname())
	if !isHostOrSubdomain(host, "vimeo.com") {
		return Video{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if host == "player.vimeo.com" && len(segments) >= 2 && segments[0] == "video" {
		segments = segments[1:]
	}
	id := segments[len(segments)-1]
	if len(segments) > 1 && vimeoIDPattern.MatchString(segments[0]) {
		id = segments[0]
	}
	if !vimeoIDPattern.MatchString(id) {
		return Video{}, false
	}
	return Video{
		Platform: "vimeo",
		EmbedURL: "https://player.vimeo.com/video/" + id + "?dnt=1",
		Source:   source,
	}, true
}

func isHostOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
