// Package templates embeds the resume layouts and JSON schemas.
package templates

import "embed"

//go:embed resume.html style.css schema/*.json
var FS embed.FS
