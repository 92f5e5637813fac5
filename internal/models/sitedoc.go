// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// DocKind names a per-brand JSON document.
type DocKind string

const (
	DocNavigation DocKind = "navigation"
	DocFooter     DocKind = "footer"
)

// NavConfig is the header navigation of one brand. Items may carry one
// level of children for dropdown menus.
type NavConfig struct {
	Items []NavItem `json:"items" validate:"max=12,dive"`
	CTA   *NavLink  `json:"cta,omitempty" validate:"omitempty"`
}

// NavItem is a top-level navigation entry.
type NavItem struct {
	Label    string    `json:"label" validate:"required,max=80"`
	Href     string    `json:"href" validate:"required,max=500,href"`
	Children []NavLink `json:"children,omitempty" validate:"max=20,dive"`
}

// NavLink is a leaf link used for dropdown children, footer columns and
// legal links.
type NavLink struct {
	Label    string `json:"label" validate:"required,max=80"`
	Href     string `json:"href" validate:"required,max=500,href"`
	External bool   `json:"external,omitempty"`
}

// FooterConfig is the footer document of one brand.
type FooterConfig struct {
	Columns    []FooterColumn `json:"columns" validate:"max=6,dive"`
	Contact    FooterContact  `json:"contact"`
	Social     []SocialLink   `json:"social,omitempty" validate:"max=10,dive"`
	LegalLinks []NavLink      `json:"legal_links,omitempty" validate:"max=10,dive"`
	Copyright  string         `json:"copyright,omitempty" validate:"max=200"`
}

// FooterColumn groups footer links under a heading.
type FooterColumn struct {
	Title string    `json:"title" validate:"required,max=80"`
	Links []NavLink `json:"links" validate:"max=20,dive"`
}

// FooterContact is the practice address block.
type FooterContact struct {
	Phone   string `json:"phone,omitempty" validate:"max=40"`
	Email   string `json:"email,omitempty" validate:"omitempty,email,max=200"`
	Address string `json:"address,omitempty" validate:"max=300"`
	Hours   string `json:"hours,omitempty" validate:"max=300"`
}

// SocialLink is a link to a social network profile.
type SocialLink struct {
	Network string `json:"network" validate:"required,oneof=instagram facebook linkedin youtube tiktok xing"`
	URL     string `json:"url" validate:"required,url,startswith=https://,max=500"`
}
