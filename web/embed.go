// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web embeds the static assets served at /static/: the public
// site stylesheet and runtime, and the preview bridge script.
package web

import "embed"

//go:embed all:static
var StaticFS embed.FS
