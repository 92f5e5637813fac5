// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"

	"physiocms/internal/validation"
)

// MaxPropsBytes caps the encoded size of a single block's props.
const MaxPropsBytes = 64 << 10

// Decode parses props into the typed struct for t without validating
// field contents.
func Decode(t string, props json.RawMessage) (Props, error) {
	def, ok := byType[t]
	if !ok {
		return nil, validation.Errorf("type", "Unbekannter Blocktyp „%s“.", t)
	}

	trimmed := bytes.TrimSpace(props)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, validation.Errorf("props", "Blockeigenschaften müssen ein JSON-Objekt sein.")
	}

	p := def.newProps()
	if err := json.Unmarshal(trimmed, p); err != nil {
		return nil, validation.Errorf("props", "Blockeigenschaften sind ungültig: %v", err)
	}
	return p, nil
}

// Validate checks that t is a palette type and props carries the fields
// that type requires, including style overrides. Errors are
// *validation.Error values.
func Validate(t string, props json.RawMessage) error {
	if len(props) > MaxPropsBytes {
		return validation.Errorf("props", "Blockeigenschaften sind zu groß (höchstens %d KiB).", MaxPropsBytes>>10)
	}

	p, err := Decode(t, props)
	if err != nil {
		return err
	}
	if err := validation.Struct(p); err != nil {
		return prefixed(err, "props.")
	}
	if err := p.BlockStyle().Validate(); err != nil {
		return prefixed(err, "props.")
	}

	if v, ok := p.(*VideoProps); ok {
		if _, ok := ParseVideo(v.URL); !ok {
			return validation.Errorf("props.url", "Nur YouTube-, Vimeo- oder Videodatei-Adressen (https) sind erlaubt.")
		}
	}
	return nil
}

func prefixed(err error, prefix string) error {
	if verr, ok := err.(*validation.Error); ok {
		return &validation.Error{Field: prefix + verr.Field, Message: verr.Message}
	}
	return fmt.Errorf("validate props: %w", err)
}
