// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

// Base carries the fields every block type shares.
type Base struct {
	Style *Style `json:"style,omitempty" validate:"-"`
}

// BlockStyle returns the block's style overrides, possibly nil.
func (b *Base) BlockStyle() *Style { return b.Style }

// Props is implemented by every typed block props struct.
type Props interface {
	BlockStyle() *Style
}

// Button is a call-to-action link.
type Button struct {
	Label   string `json:"label" validate:"required,max=60"`
	Href    string `json:"href" validate:"required,href"`
	Variant string `json:"variant,omitempty" validate:"omitempty,oneof=primary secondary outline"`
}

type HeroProps struct {
	Base
	Heading    string   `json:"heading" validate:"required,max=200"`
	Subheading string   `json:"subheading,omitempty" validate:"max=300"`
	Image      string   `json:"image,omitempty" validate:"omitempty,src"`
	ImageAlt   string   `json:"imageAlt,omitempty" validate:"max=300"`
	Align      string   `json:"align,omitempty" validate:"omitempty,oneof=left center right"`
	Buttons    []Button `json:"buttons,omitempty" validate:"max=3,dive"`
}

type TextProps struct {
	Base
	Markdown string `json:"markdown" validate:"required,max=50000"`
}

type ImageProps struct {
	Base
	Src     string `json:"src" validate:"required,src"`
	Alt     string `json:"alt,omitempty" validate:"max=300"`
	Caption string `json:"caption,omitempty" validate:"max=300"`
	Href    string `json:"href,omitempty" validate:"omitempty,href"`
}

type GalleryImage struct {
	Src     string `json:"src" validate:"required,src"`
	Alt     string `json:"alt,omitempty" validate:"max=300"`
	Caption string `json:"caption,omitempty" validate:"max=300"`
}

type GalleryProps struct {
	Base
	Heading string         `json:"heading,omitempty" validate:"max=200"`
	Columns int            `json:"columns,omitempty" validate:"omitempty,min=1,max=6"`
	Images  []GalleryImage `json:"images" validate:"required,min=1,max=60,dive"`
}

type FAQItem struct {
	Question string `json:"question" validate:"required,max=300"`
	Answer   string `json:"answer" validate:"required,max=5000"`
}

type FAQProps struct {
	Base
	Heading string    `json:"heading,omitempty" validate:"max=200"`
	Items   []FAQItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type Testimonial struct {
	Quote  string `json:"quote" validate:"required,max=2000"`
	Author string `json:"author" validate:"required,max=120"`
	Role   string `json:"role,omitempty" validate:"max=120"`
	Image  string `json:"image,omitempty" validate:"omitempty,src"`
	Rating int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type TestimonialsProps struct {
	Base
	Heading string        `json:"heading,omitempty" validate:"max=200"`
	Items   []Testimonial `json:"items" validate:"required,min=1,max=50,dive"`
}

type TeamMember struct {
	Name  string `json:"name" validate:"required,max=120"`
	Role  string `json:"role,omitempty" validate:"max=120"`
	Bio   string `json:"bio,omitempty" validate:"max=2000"`
	Image string `json:"image,omitempty" validate:"omitempty,src"`
}

type TeamProps struct {
	Base
	Heading string       `json:"heading,omitempty" validate:"max=200"`
	Members []TeamMember `json:"members" validate:"required,min=1,max=50,dive"`
}

type CTAProps struct {
	Base
	Heading string `json:"heading" validate:"required,max=200"`
	Text    string `json:"text,omitempty" validate:"max=1000"`
	Button  Button `json:"button" validate:"required"`
}

type Feature struct {
	Title string `json:"title" validate:"required,max=120"`
	Text  string `json:"text,omitempty" validate:"max=1000"`
	Icon  string `json:"icon,omitempty" validate:"max=40"`
}

type FeaturesProps struct {
	Base
	Heading string    `json:"heading,omitempty" validate:"max=200"`
	Intro   string    `json:"intro,omitempty" validate:"max=1000"`
	Items   []Feature `json:"items" validate:"required,min=1,max=24,dive"`
}

type Service struct {
	Title string `json:"title" validate:"required,max=120"`
	Text  string `json:"text,omitempty" validate:"max=2000"`
	Image string `json:"image,omitempty" validate:"omitempty,src"`
	Href  string `json:"href,omitempty" validate:"omitempty,href"`
	Price string `json:"price,omitempty" validate:"max=40"`
}

type ServicesProps struct {
	Base
	Heading string    `json:"heading,omitempty" validate:"max=200"`
	Items   []Service `json:"items" validate:"required,min=1,max=24,dive"`
}

type ContactProps struct {
	Base
	Heading     string `json:"heading,omitempty" validate:"max=200"`
	Text        string `json:"text,omitempty" validate:"max=2000"`
	ShowForm    bool   `json:"showForm,omitempty"`
	Phone       string `json:"phone,omitempty" validate:"max=40"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Address     string `json:"address,omitempty" validate:"max=300"`
	SubmitLabel string `json:"submitLabel,omitempty" validate:"max=60"`
}

type VideoProps struct {
	Base
	URL     string `json:"url" validate:"required,max=500"`
	Title   string `json:"title,omitempty" validate:"max=200"`
	Caption string `json:"caption,omitempty" validate:"max=300"`
}

type QuoteProps struct {
	Base
	Text   string `json:"text" validate:"required,max=2000"`
	Author string `json:"author,omitempty" validate:"max=120"`
	Source string `json:"source,omitempty" validate:"max=200"`
}

type SpacerProps struct {
	Base
	Size string `json:"size" validate:"required,oneof=xs sm md lg xl"`
}

type DividerProps struct {
	Base
	Variant string `json:"variant,omitempty" validate:"omitempty,oneof=line dots wave"`
}
