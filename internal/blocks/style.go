// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"physiocms/internal/validation"
)

// Style holds the per-block styling overrides stored in props.style.
type Style struct {
	Fields  map[string]FieldStyle `json:"fields,omitempty"`
	Section *SectionStyle         `json:"section,omitempty"`
}

// FieldStyle overrides typography of one text field (heading, text, ...).
type FieldStyle struct {
	Color         string `json:"color,omitempty"`
	FontFamily    string `json:"fontFamily,omitempty"`
	FontSize      string `json:"fontSize,omitempty"`
	FontWeight    string `json:"fontWeight,omitempty"`
	TextAlign     string `json:"textAlign,omitempty"`
	LetterSpacing string `json:"letterSpacing,omitempty"`
}

// SectionStyle styles the <section> wrapping a block.
type SectionStyle struct {
	Background *Background `json:"background,omitempty"`
	Padding    string      `json:"padding,omitempty"`
	Shadow     string      `json:"shadow,omitempty"`
	Animation  string      `json:"animation,omitempty"`
}

// Background describes the layered section background.
type Background struct {
	Color          string  `json:"color,omitempty"`
	Gradient       string  `json:"gradient,omitempty"`
	Image          string  `json:"image,omitempty"`
	Overlay        string  `json:"overlay,omitempty"`
	OverlayOpacity float64 `json:"overlayOpacity,omitempty"`
	Parallax       bool    `json:"parallax,omitempty"`
	Position       string  `json:"position,omitempty"`
	Size           string  `json:"size,omitempty"`
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor  = regexp.MustCompile(`^(?:rgba?|hsla?)\(\s*-?[0-9.]+(?:deg|%)?(?:\s*[,/ ]\s*-?[0-9.]+%?){2,3}\s*\)$`)
	cssVar     = regexp.MustCompile(`^var\(--[a-z0-9-]+\)$`)
	length     = regexp.MustCompile(`^-?(?:\d+|\d*\.\d+)(?:px|rem|em|%|vw|vh|ch)$`)
	fontFamily = regexp.MustCompile(`^[A-Za-z0-9 ,'-]+$`)
	gradient   = regexp.MustCompile(`^(?:repeating-)?(?:linear|radial|conic)-gradient\([a-zA-Z0-9#%.,()\s-]+\)$`)
	position   = regexp.MustCompile(`^(?:(?:left|right|top|bottom|center|\d{1,3}%)\s?){1,2}$`)
)

// Section option sets.
var (
	paddings = map[string]string{
		"none": "0",
		"sm":   "2rem 0",
		"md":   "4rem 0",
		"lg":   "6rem 0",
		"xl":   "8rem 0",
	}
	shadows = map[string]string{
		"none": "none",
		"sm":   "0 1px 3px rgba(0,0,0,.12)",
		"md":   "0 4px 12px rgba(0,0,0,.15)",
		"lg":   "0 12px 32px rgba(0,0,0,.18)",
	}
	animations = map[string]bool{
		"none": true, "fade-in": true, "fade-up": true, "zoom-in": true,
		"slide-left": true, "slide-right": true,
	}
	textAligns  = map[string]bool{"left": true, "center": true, "right": true, "justify": true}
	fontWeights = map[string]bool{
		"normal": true, "bold": true, "100": true, "200": true, "300": true, "400": true,
		"500": true, "600": true, "700": true, "800": true, "900": true,
	}
	bgSizes = map[string]bool{"cover": true, "contain": true, "auto": true}
)

// IsColor reports whether s is a hex, rgb()/rgba()/hsl()/hsla() or
// var(--token) color.
func IsColor(s string) bool {
	return hexColor.MatchString(s) || funcColor.MatchString(s) || cssVar.MatchString(s)
}

func isLength(s string) bool {
	return length.MatchString(s) || cssVar.MatchString(s)
}

// IsCSSValue reports whether s is safe to place as a single CSS
// declaration value: no characters that could end the declaration, open
// a block or leave the style attribute.
func IsCSSValue(s string) bool {
	if s == "" || len(s) > 200 {
		return false
	}
	if strings.ContainsAny(s, ";{}<>\"\\`") || strings.Contains(s, "/*") {
		return false
	}
	lower := strings.ToLower(s)
	return !strings.Contains(lower, "url(") && !strings.Contains(lower, "expression(") && !strings.Contains(lower, "javascript:")
}

// Validate checks every override and returns the first problem.
func (s *Style) Validate() error {
	if s == nil {
		return nil
	}

	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.Fields[name].validate("style.fields." + name); err != nil {
			return err
		}
	}

	if s.Section != nil {
		return s.Section.validate("style.section")
	}
	return nil
}

func (f FieldStyle) validate(prefix string) error {
	switch {
	case f.Color != "" && !IsColor(f.Color):
		return validation.Errorf(prefix+".color", "Ungültige Farbe „%s“.", f.Color)
	case f.FontFamily != "" && !fontFamily.MatchString(f.FontFamily) && !cssVar.MatchString(f.FontFamily):
		return validation.Errorf(prefix+".fontFamily", "Ungültige Schriftart „%s“.", f.FontFamily)
	case f.FontSize != "" && !isLength(f.FontSize):
		return validation.Errorf(prefix+".fontSize", "Ungültige Schriftgröße „%s“.", f.FontSize)
	case f.FontWeight != "" && !fontWeights[f.FontWeight]:
		return validation.Errorf(prefix+".fontWeight", "Ungültige Schriftstärke „%s“.", f.FontWeight)
	case f.TextAlign != "" && !textAligns[f.TextAlign]:
		return validation.Errorf(prefix+".textAlign", "Ungültige Ausrichtung „%s“.", f.TextAlign)
	case f.LetterSpacing != "" && f.LetterSpacing != "normal" && !isLength(f.LetterSpacing):
		return validation.Errorf(prefix+".letterSpacing", "Ungültiger Zeichenabstand „%s“.", f.LetterSpacing)
	}
	return nil
}

func (s *SectionStyle) validate(prefix string) error {
	if s.Padding != "" && paddings[s.Padding] == "" {
		return validation.Errorf(prefix+".padding", "Ungültiger Abstand „%s“.", s.Padding)
	}
	if s.Shadow != "" && shadows[s.Shadow] == "" {
		return validation.Errorf(prefix+".shadow", "Ungültiger Schatten „%s“.", s.Shadow)
	}
	if s.Animation != "" && !animations[s.Animation] {
		return validation.Errorf(prefix+".animation", "Ungültige Animation „%s“.", s.Animation)
	}

	bg := s.Background
	if bg == nil {
		return nil
	}
	prefix += ".background"
	switch {
	case bg.Color != "" && !IsColor(bg.Color):
		return validation.Errorf(prefix+".color", "Ungültige Farbe „%s“.", bg.Color)
	case bg.Overlay != "" && !IsColor(bg.Overlay):
		return validation.Errorf(prefix+".overlay", "Ungültige Farbe „%s“.", bg.Overlay)
	case bg.OverlayOpacity < 0 || bg.OverlayOpacity > 1:
		return validation.Errorf(prefix+".overlayOpacity", "Deckkraft muss zwischen 0 und 1 liegen.")
	case bg.Gradient != "" && (!gradient.MatchString(bg.Gradient) || !IsCSSValue(bg.Gradient)):
		return validation.Errorf(prefix+".gradient", "Ungültiger Farbverlauf.")
	case bg.Image != "" && !validation.IsSrc(bg.Image):
		return validation.Errorf(prefix+".image", "Ungültige Bildadresse.")
	case bg.Position != "" && !position.MatchString(bg.Position):
		return validation.Errorf(prefix+".position", "Ungültige Position „%s“.", bg.Position)
	case bg.Size != "" && !bgSizes[bg.Size]:
		return validation.Errorf(prefix+".size", "Ungültige Größe „%s“.", bg.Size)
	}
	return nil
}

// FieldCSS renders the overrides of one field as an inline style value.
// Values that fail validation are skipped.
func (s *Style) FieldCSS(field string) template.CSS {
	if s == nil {
		return ""
	}
	f, ok := s.Fields[field]
	if !ok || f.validate("") != nil {
		return ""
	}

	var decls []string
	add := func(prop, value string) {
		if value != "" {
			decls = append(decls, prop+": "+value)
		}
	}
	add("color", f.Color)
	add("font-family", f.FontFamily)
	add("font-size", f.FontSize)
	add("font-weight", f.FontWeight)
	add("text-align", f.TextAlign)
	add("letter-spacing", f.LetterSpacing)
	return template.CSS(strings.Join(decls, "; "))
}

// SectionCSS composes the section's inline style. Background layers are
// stacked overlay over gradient over image, with the color underneath;
// parallax pins the layers with background-attachment: fixed.
func (s *Style) SectionCSS() template.CSS {
	if s == nil || s.Section == nil || s.Section.validate("") != nil {
		return ""
	}
	sec := s.Section

	var decls []string
	if bg := sec.Background; bg != nil {
		decls = append(decls, backgroundDecls(bg)...)
	}
	if p := paddings[sec.Padding]; p != "" {
		decls = append(decls, "padding: "+p)
	}
	if sh := shadows[sec.Shadow]; sh != "" {
		decls = append(decls, "box-shadow: "+sh)
	}
	return template.CSS(strings.Join(decls, "; "))
}

// Animation returns the entrance animation name for the client runtime,
// or "" when none is set.
func (s *Style) Animation() string {
	if s == nil || s.Section == nil || s.Section.Animation == "none" || !animations[s.Section.Animation] {
		return ""
	}
	return s.Section.Animation
}

func backgroundDecls(bg *Background) []string {
	var layers []string
	if bg.Overlay != "" {
		opacity := bg.OverlayOpacity
		if opacity == 0 {
			opacity = 0.5
		}
		tint := fmt.Sprintf("color-mix(in srgb, %s %s%%, transparent)", bg.Overlay,
			strconv.FormatFloat(opacity*100, 'f', -1, 64))
		layers = append(layers, "linear-gradient("+tint+", "+tint+")")
	}
	if bg.Gradient != "" {
		layers = append(layers, bg.Gradient)
	}
	if bg.Image != "" {
		layers = append(layers, `url("`+bg.Image+`")`)
	}

	var decls []string
	if bg.Color != "" {
		decls = append(decls, "background-color: "+bg.Color)
	}
	if len(layers) == 0 {
		return decls
	}

	decls = append(decls, "background-image: "+strings.Join(layers, ", "))
	pos := bg.Position
	if pos == "" {
		pos = "center"
	}
	size := bg.Size
	if size == "" {
		size = "cover"
	}
	decls = append(decls, "background-position: "+pos, "background-size: "+size, "background-repeat: no-repeat")
	if bg.Parallax {
		decls = append(decls, "background-attachment: fixed")
	}
	return decls
}
