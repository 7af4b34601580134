// Package locales embeds the translation files for the API's user-facing
// error messages.
package locales

import "embed"

//go:embed *.yaml
var fs embed.FS

func FS() embed.FS {
	return fs
}
