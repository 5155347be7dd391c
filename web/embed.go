// Package web embeds the HTML templates and static assets served by the
// budget planner.
package web

import "embed"

//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/*
var StaticFS embed.FS
