// Package appfs exposes assets embedded in the binary: database
// migrations and email templates.
package appfs

import "embed"

//go:embed migrations all:templates/email
var FS embed.FS
