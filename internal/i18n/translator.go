// Package i18n renders bot messages in the requester's or guild's language.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator looks message keys up in an in-memory catalog. Unknown locales
// fall back to English, unknown keys are printed as is.
type Translator struct {
	cat     *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

// New builds a Translator with the bundled languages.
func New() (*Translator, error) {
	dicts := []struct {
		tag  language.Tag
		msgs map[string]string
	}{
		{language.English, english}, // first: fallback for unmatched locales
		{language.German, german},
		{language.Russian, russian},
	}

	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	tags := make([]language.Tag, 0, len(dicts))
	for _, d := range dicts {
		for key, msg := range d.msgs {
			if err := cat.SetString(d.tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to add %s/%s: %w", d.tag, key, err)
			}
		}
		tags = append(tags, d.tag)
	}

	return &Translator{
		cat:     cat,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}, nil
}

// Translate renders key for a Discord locale code such as "en-US" or "de".
func (t *Translator) Translate(locale, key string, args ...any) string {
	p := message.NewPrinter(t.Match(locale), message.Catalog(t.cat))
	return p.Sprintf(key, args...)
}

// Match returns the supported language closest to locale.
func (t *Translator) Match(locale string) language.Tag {
	if locale == "" {
		return t.tags[0]
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return t.tags[0]
	}
	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No {
		return t.tags[0]
	}
	return t.tags[idx]
}
