// Package templates embeds the HTML views and static assets served by the server.
package templates

import "embed"

// FS holds the views and, under static/, the assets served at /static.
//
//go:embed *.html layouts/*.html auth/*.html classes/*.html static/*
var FS embed.FS
