// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"physiocms/internal/brand"
	"physiocms/internal/markdown"
	"physiocms/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// renderFunc renders the inner markup of one block.
type renderFunc func(r *Renderer, w io.Writer, v *view) error

// view is the data handed to block templates.
type view struct {
	ID    string
	Type  string
	Brand brand.Brand
	Props Props
	Style *Style

	HTML  template.HTML // text blocks
	Video Video         // video blocks
}

// Renderer turns page blocks into HTML sections.
type Renderer struct {
	tmpl      *template.Template
	renderers map[string]renderFunc
}

var safeType = regexp.MustCompile(`^[a-z0-9-]{1,40}$`)

// NewRenderer parses the embedded block templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"fieldStyle": func(s *Style, field string) template.CSS {
			return s.FieldCSS(field)
		},
		"stars": func(n int) string {
			n = min(max(n, 0), 5)
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
	}

	tmpl, err := template.New("blocks").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse block templates: %w", err)
	}

	r := &Renderer{tmpl: tmpl, renderers: make(map[string]renderFunc, len(palette))}
	for _, def := range palette {
		r.renderers[def.Type] = renderTemplate
	}
	r.renderers[TypeText] = renderText
	r.renderers[TypeVideo] = renderVideo
	return r, nil
}

// Render writes every block in order, each wrapped in its section.
func (r *Renderer) Render(w io.Writer, b brand.Brand, blocks []models.Block) error {
	for _, blk := range blocks {
		if err := r.RenderBlock(w, b, blk); err != nil {
			return err
		}
	}
	return nil
}

// RenderHTML renders blocks into a trusted HTML fragment.
func (r *Renderer) RenderHTML(b brand.Brand, blocks []models.Block) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, b, blocks); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderBlock renders a single block. Unknown types and props that no
// longer decode are replaced by an HTML comment so one broken block does
// not take the page down.
func (r *Renderer) RenderBlock(w io.Writer, b brand.Brand, blk models.Block) error {
	render, ok := r.renderers[blk.Type]
	if !ok {
		slog.Warn("unknown block type", "type", blk.Type, "block_id", blk.ID)
		return warnComment(w, "unbekannter Blocktyp", blk.Type)
	}

	props, err := Decode(blk.Type, blk.Props)
	if err != nil {
		slog.Warn("undecodable block props", "type", blk.Type, "block_id", blk.ID, "error", err)
		return warnComment(w, "ungültige Blockdaten", blk.Type)
	}

	v := &view{
		ID:    blk.ID.String(),
		Type:  blk.Type,
		Brand: b,
		Props: props,
		Style: props.BlockStyle(),
	}

	var inner bytes.Buffer
	if err := render(r, &inner, v); err != nil {
		return fmt.Errorf("render %s block %s: %w", blk.Type, blk.ID, err)
	}

	return r.tmpl.ExecuteTemplate(w, "section", sectionView{
		ID:         v.ID,
		Type:       v.Type,
		SectionCSS: v.Style.SectionCSS(),
		Animation:  v.Style.Animation(),
		Parallax:   v.Style.parallax(),
		Inner:      template.HTML(inner.String()),
	})
}

type sectionView struct {
	ID         string
	Type       string
	SectionCSS template.CSS
	Animation  string
	Parallax   bool
	Inner      template.HTML
}

func renderTemplate(r *Renderer, w io.Writer, v *view) error {
	return r.tmpl.ExecuteTemplate(w, v.Type, v)
}

func renderText(r *Renderer, w io.Writer, v *view) error {
	html, err := markdown.ToHTML(v.Props.(*TextProps).Markdown)
	if err != nil {
		return err
	}
	v.HTML = template.HTML(html)
	return renderTemplate(r, w, v)
}

func renderVideo(r *Renderer, w io.Writer, v *view) error {
	video, ok := ParseVideo(v.Props.(*VideoProps).URL)
	if !ok {
		slog.Warn("unsupported video url", "block_id", v.ID)
		return warnComment(w, "nicht unterstützte Videoadresse", v.Type)
	}
	v.Video = video
	return renderTemplate(r, w, v)
}

func warnComment(w io.Writer, msg, blockType string) error {
	if !safeType.MatchString(blockType) {
		blockType = "?"
	}
	_, err := fmt.Fprintf(w, "<!-- %s: %s -->\n", msg, blockType)
	return err
}

func (s *Style) parallax() bool {
	return s != nil && s.Section != nil && s.Section.Background != nil && s.Section.Background.Parallax
}
