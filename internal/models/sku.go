package models

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const skuDateLayout = "20060102"

// GenerateSKU builds "prod-<YYYYMMDD>-<slug>" from a title and the creation
// time, taken in UTC. Two products with the same title created on the same
// UTC day get the same SKU; the unique index on products.sku rejects the
// second one.
func GenerateSKU(title string, createdAt time.Time) string {
	return "prod-" + createdAt.UTC().Format(skuDateLayout) + "-" + Slugify(title)
}

// Slugify lower-cases s, folds accented letters to ASCII and collapses every
// run of other characters into a single hyphen. Leading and trailing hyphens
// are dropped.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
