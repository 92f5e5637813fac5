// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validation wraps go-playground/validator with the custom tags
// used by PhysioCMS documents and turns validation failures into German
// messages for the admin UI and the public contact form.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the process-wide validator with custom tags
// registered. Field names in errors use the json tag.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterValidation("href", func(fl validator.FieldLevel) bool {
			return IsHref(fl.Field().String())
		})
		v.RegisterValidation("src", func(fl validator.FieldLevel) bool {
			return IsSrc(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates s and returns a *Error describing the first failure.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fromFieldError(verrs[0])
	}
	return err
}

// Error is a single validation failure with a German message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds an *Error for field.
func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// fromFieldError turns the validator's namespace ("NavConfig.items[0].label")
// into a path relative to the document root ("items[0].label").
func fromFieldError(fe validator.FieldError) *Error {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	return &Error{Field: field, Message: message(field, fe)}
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_with", "required_without":
		return fmt.Sprintf("Feld „%s“ ist erforderlich.", field)
	case "max":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Feld „%s“ darf höchstens %s Einträge enthalten.", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Feld „%s“ darf höchstens %s Zeichen lang sein.", field, fe.Param())
		}
		return fmt.Sprintf("Feld „%s“ darf höchstens %s sein.", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Feld „%s“ braucht mindestens %s Einträge.", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Feld „%s“ muss mindestens %s Zeichen lang sein.", field, fe.Param())
		}
		return fmt.Sprintf("Feld „%s“ muss mindestens %s sein.", field, fe.Param())
	case "email":
		return fmt.Sprintf("Feld „%s“ enthält keine gültige E-Mail-Adresse.", field)
	case "url", "startswith":
		return fmt.Sprintf("Feld „%s“ muss eine https-Adresse sein.", field)
	case "href":
		return fmt.Sprintf("Feld „%s“ enthält keinen gültigen Link.", field)
	case "src":
		return fmt.Sprintf("Feld „%s“ enthält keine gültige Bildadresse.", field)
	case "oneof":
		return fmt.Sprintf("Feld „%s“ muss einer der Werte %s sein.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Feld „%s“ ist ungültig.", field)
	}
}

// IsHref reports whether s is a link the site may render: a site-relative
// path, an in-page anchor, mailto:, tel: or an https URL.
func IsHref(s string) bool {
	switch {
	case s == "":
		return false
	case strings.ContainsAny(s, " \t\r\n\"'<>\\"):
		return false
	case strings.HasPrefix(s, "//"):
		return false
	case strings.HasPrefix(s, "/"), strings.HasPrefix(s, "#"):
		return true
	case strings.HasPrefix(s, "mailto:"):
		return len(s) > len("mailto:") && strings.Contains(s, "@")
	case strings.HasPrefix(s, "tel:"):
		return len(s) > len("tel:")
	}
	return isHTTPS(s)
}

// IsSrc reports whether s may be used as an image or video source: a
// site-relative path or an https URL.
func IsSrc(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n\"'<>\\()") || strings.HasPrefix(s, "//") {
		return false
	}
	if strings.HasPrefix(s, "/") {
		return true
	}
	return isHTTPS(s)
}

func isHTTPS(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme == "https" && u.Host != ""
}
