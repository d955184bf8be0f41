// Package data provides embedded translation catalogs.
package data

import "embed"

// dataFS embeds all gettext catalogs from the data directory at build time.
//
//go:embed *.po
var dataFS embed.FS

// FS returns the embedded filesystem containing the catalogs.
func FS() embed.FS {
	return dataFS
}
