// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"strings"
	"testing"
)

func TestIsColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#fff", true},
		{"#0A7B83", true},
		{"#0a7b83cc", true},
		{"rgb(10, 20, 30)", true},
		{"rgba(10,20,30,0.5)", true},
		{"hsl(180 50% 40%)", true},
		{"hsla(180, 50%, 40%, .3)", true},
		{"var(--brand-primary)", true},
		{"red", false},
		{"#ggg", false},
		{"rgb(1,2,3);background:url(x)", false},
		{"var(--x);}", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsColor(tt.in); got != tt.want {
			t.Errorf("IsColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsCSSValue(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1.25rem", true},
		{"'Source Sans 3', sans-serif", true},
		{"red; display:none", false},
		{"x}body{", false},
		{"</style>", false},
		{"url(https://evil)", false},
		{"expression(alert(1))", false},
		{"a /* b", false},
	}
	for _, tt := range tests {
		if got := IsCSSValue(tt.in); got != tt.want {
			t.Errorf("IsCSSValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSectionCSSLayers(t *testing.T) {
	s := &Style{Section: &SectionStyle{
		Padding: "lg",
		Shadow:  "md",
		Background: &Background{
			Color:          "#ffffff",
			Gradient:       "linear-gradient(180deg, #000 0%, #fff 100%)",
			Image:          "/media/bg.jpg",
			Overlay:        "#000000",
			OverlayOpacity: 0.4,
			Parallax:       true,
		},
	}}
	css := string(s.SectionCSS())

	overlay := strings.Index(css, "color-mix(in srgb, #000000 40%, transparent)")
	grad := strings.Index(css, "linear-gradient(180deg")
	img := strings.Index(css, `url("/media/bg.jpg")`)
	if overlay < 0 || grad < 0 || img < 0 {
		t.Fatalf("missing layer in %q", css)
	}
	if !(overlay < grad && grad < img) {
		t.Errorf("layers out of order (overlay, gradient, image) in %q", css)
	}
	for _, want := range []string{
		"background-color: #ffffff",
		"background-attachment: fixed",
		"background-size: cover",
		"padding: 6rem 0",
		"box-shadow: ",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("SectionCSS() missing %q in %q", want, css)
		}
	}
}

func TestSectionCSSNoParallax(t *testing.T) {
	s := &Style{Section: &SectionStyle{Background: &Background{Image: "/media/bg.jpg"}}}
	if strings.Contains(string(s.SectionCSS()), "background-attachment") {
		t.Error("background-attachment set without parallax")
	}
}

func TestSectionCSSColorOnly(t *testing.T) {
	s := &Style{Section: &SectionStyle{Background: &Background{Color: "var(--surface)"}}}
	if got, want := string(s.SectionCSS()), "background-color: var(--surface)"; got != want {
		t.Errorf("SectionCSS() = %q, want %q", got, want)
	}
}

func TestInvalidStyleRendersNothing(t *testing.T) {
	s := &Style{
		Fields:  map[string]FieldStyle{"heading": {Color: "red;} body{display:none"}},
		Section: &SectionStyle{Background: &Background{Color: "#fff;x"}},
	}
	if css := s.FieldCSS("heading"); css != "" {
		t.Errorf("FieldCSS() = %q, want empty", css)
	}
	if css := s.SectionCSS(); css != "" {
		t.Errorf("SectionCSS() = %q, want empty", css)
	}
}

func TestFieldCSS(t *testing.T) {
	s := &Style{Fields: map[string]FieldStyle{
		"heading": {Color: "#123456", FontSize: "2.5rem", FontWeight: "700", TextAlign: "center"},
	}}
	got := string(s.FieldCSS("heading"))
	want := "color: #123456; font-size: 2.5rem; font-weight: 700; text-align: center"
	if got != want {
		t.Errorf("FieldCSS() = %q, want %q", got, want)
	}
	if s.FieldCSS("missing") != "" {
		t.Error("FieldCSS() for unstyled field should be empty")
	}
	var nilStyle *Style
	if nilStyle.FieldCSS("heading") != "" || nilStyle.SectionCSS() != "" || nilStyle.Animation() != "" {
		t.Error("nil style should render nothing")
	}
}

func TestAnimation(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"fade-up", "fade-up"},
		{"none", ""},
		{"explode", ""},
	}
	for _, tt := range tests {
		s := &Style{Section: &SectionStyle{Animation: tt.in}}
		if got := s.Animation(); got != tt.want {
			t.Errorf("Animation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
