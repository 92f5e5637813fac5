// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"html/template"
	"regexp"
	"sort"
	"strings"

	"physiocms/internal/blocks"
	"physiocms/internal/validation"
)

// maxTokens caps the number of custom properties per preset.
const maxTokens = 200

var tokenName = regexp.MustCompile(`^--[a-z0-9-]{1,64}$`)

// ValidateTokens checks theme token names and values.
func ValidateTokens(tokens map[string]string) error {
	if len(tokens) > maxTokens {
		return validation.Errorf("tokens", "Höchstens %d Design-Tokens erlaubt.", maxTokens)
	}
	for _, name := range sortedKeys(tokens) {
		if !tokenName.MatchString(name) {
			return validation.Errorf("tokens", "Ungültiger Token-Name „%s“ (erwartet --name).", name)
		}
		if !blocks.IsCSSValue(tokens[name]) {
			return validation.Errorf("tokens."+name, "Ungültiger Wert für „%s“.", name)
		}
	}
	return nil
}

// ThemeCSS renders tokens as a :root rule. Invalid entries are dropped.
func ThemeCSS(tokens map[string]string) template.CSS {
	if len(tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(":root {")
	for _, name := range sortedKeys(tokens) {
		value := tokens[name]
		if !tokenName.MatchString(name) || !blocks.IsCSSValue(value) {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString(";")
	}
	sb.WriteString(" }")
	return template.CSS(sb.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
