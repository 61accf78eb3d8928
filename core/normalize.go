package core

import (
	"strings"
	"unicode/utf8"

	"github.com/huangsam/simbook/schema"
)

// NormalizeContact returns a copy of c that the store will accept as a new record.
// The ID is cleared, dashes are stripped from the number and the name is cut
// to limit characters. A limit of 0 leaves the name unchanged.
func NormalizeContact(c schema.Contact, limit int) schema.Contact {
	name := c.Name
	if limit > 0 && utf8.RuneCountInString(name) > limit {
		name = string([]rune(name)[:limit])
	}
	return schema.Contact{
		Name:   name,
		Number: strings.ReplaceAll(c.Number, "-", ""),
	}
}

// PreviewContact pairs c with its normalized form.
func PreviewContact(c schema.Contact, limit int) schema.NormalizedContact {
	normalized := NormalizeContact(c, limit)
	return schema.NormalizedContact{
		Original:   c,
		Normalized: normalized,
		Truncated:  normalized.Name != c.Name,
	}
}
