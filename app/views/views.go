// Package views embeds the HTML templates and static assets of the blog.
package views

import "embed"

//go:embed layout.html posts/*.html shared/*.html static
var FS embed.FS
