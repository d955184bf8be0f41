// Package locale translates report text using embedded gettext catalogs.
package locale

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/samdwyer/donjon/data"
)

// Fallback is the language used when a catalog is missing.
const Fallback = "en"

// Catalog translates message ids for one language.
type Catalog struct {
	lang string
	po   *gotext.Po
}

// Load returns the catalog for lang, falling back to English.
// Region suffixes such as "de_DE.UTF-8" are ignored.
func Load(lang string) (*Catalog, error) {
	lang = normalize(lang)

	content, err := data.FS().ReadFile(lang + ".po")
	if err != nil {
		if lang == Fallback {
			return nil, fmt.Errorf("failed to read %s catalog: %w", lang, err)
		}
		return Load(Fallback)
	}

	po := gotext.NewPo()
	po.Parse(content)
	return &Catalog{lang: lang, po: po}, nil
}

// MustLoad loads a catalog, panicking on error.
func MustLoad(lang string) *Catalog {
	c, err := Load(lang)
	if err != nil {
		panic(err)
	}
	return c
}

// Lang returns the catalog's language code.
func (c *Catalog) Lang() string {
	return c.lang
}

// Get translates a message id, returning it unchanged when untranslated.
func (c *Catalog) Get(msgid string) string {
	if c == nil || c.po == nil {
		return msgid
	}
	return c.po.Get(msgid)
}

func normalize(lang string) string {
	if lang == "" {
		return Fallback
	}
	if i := strings.IndexAny(lang, "_.-@"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}
