// Package web holds the page template and static assets compiled into the
// binary.
package web

import "embed"

// TemplatesFS embeds the HTML templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the stylesheet and script served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
