// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks defines the fixed palette of content blocks, validates
// their props and renders them to HTML for the public site and previews.
package blocks

import (
	"encoding/json"
	"slices"
)

// Block types.
const (
	TypeHero         = "hero"
	TypeText         = "text"
	TypeImage        = "image"
	TypeGallery      = "gallery"
	TypeFAQ          = "faq"
	TypeTestimonials = "testimonials"
	TypeTeam         = "team"
	TypeCTA          = "cta"
	TypeFeatures     = "features"
	TypeServices     = "services"
	TypeContact      = "contact"
	TypeVideo        = "video"
	TypeQuote        = "quote"
	TypeSpacer       = "spacer"
	TypeDivider      = "divider"
)

// Definition describes one palette entry as shown in the editor.
type Definition struct {
	Type     string          `json:"type"`
	Label    string          `json:"label"`
	Category string          `json:"category"`
	Defaults json.RawMessage `json:"defaults"`

	newProps func() Props
}

var palette = []Definition{
	{TypeHero, "Hero", "layout", json.RawMessage(`{"heading":"Überschrift","subheading":"","align":"center","buttons":[]}`),
		func() Props { return &HeroProps{} }},
	{TypeText, "Text", "content", json.RawMessage(`{"markdown":"Neuer Textabschnitt."}`),
		func() Props { return &TextProps{} }},
	{TypeImage, "Bild", "media", json.RawMessage(`{"src":"/static/placeholder.svg","alt":""}`),
		func() Props { return &ImageProps{} }},
	{TypeGallery, "Galerie", "media", json.RawMessage(`{"columns":3,"images":[{"src":"/static/placeholder.svg","alt":""}]}`),
		func() Props { return &GalleryProps{} }},
	{TypeFAQ, "Häufige Fragen", "content", json.RawMessage(`{"heading":"Häufige Fragen","items":[{"question":"Frage?","answer":"Antwort."}]}`),
		func() Props { return &FAQProps{} }},
	{TypeTestimonials, "Stimmen", "content", json.RawMessage(`{"heading":"Das sagen unsere Patienten","items":[{"quote":"Zitat","author":"Name"}]}`),
		func() Props { return &TestimonialsProps{} }},
	{TypeTeam, "Team", "content", json.RawMessage(`{"heading":"Unser Team","members":[{"name":"Name","role":"Physiotherapeut:in"}]}`),
		func() Props { return &TeamProps{} }},
	{TypeCTA, "Handlungsaufruf", "layout", json.RawMessage(`{"heading":"Jetzt Termin vereinbaren","button":{"label":"Kontakt","href":"/kontakt","variant":"primary"}}`),
		func() Props { return &CTAProps{} }},
	{TypeFeatures, "Merkmale", "content", json.RawMessage(`{"heading":"","items":[{"title":"Merkmal","text":""}]}`),
		func() Props { return &FeaturesProps{} }},
	{TypeServices, "Leistungen", "content", json.RawMessage(`{"heading":"Unsere Leistungen","items":[{"title":"Leistung","text":""}]}`),
		func() Props { return &ServicesProps{} }},
	{TypeContact, "Kontakt", "forms", json.RawMessage(`{"heading":"Kontakt","showForm":true}`),
		func() Props { return &ContactProps{} }},
	{TypeVideo, "Video", "media", json.RawMessage(`{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`),
		func() Props { return &VideoProps{} }},
	{TypeQuote, "Zitat", "content", json.RawMessage(`{"text":"Zitat","author":""}`),
		func() Props { return &QuoteProps{} }},
	{TypeSpacer, "Abstand", "layout", json.RawMessage(`{"size":"md"}`),
		func() Props { return &SpacerProps{} }},
	{TypeDivider, "Trennlinie", "layout", json.RawMessage(`{"variant":"line"}`),
		func() Props { return &DividerProps{} }},
}

var byType = func() map[string]*Definition {
	m := make(map[string]*Definition, len(palette))
	for i := range palette {
		m[palette[i].Type] = &palette[i]
	}
	return m
}()

// Palette returns a copy of the palette in editor order.
func Palette() []Definition {
	return slices.Clone(palette)
}

// Known reports whether t is a palette block type.
func Known(t string) bool {
	_, ok := byType[t]
	return ok
}
