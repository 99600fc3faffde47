package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"plush-store/models"
)

// Nearly every product name starts with this marketing prefix, so sorting
// on the raw name would collapse the whole grid under "P".
const displayPrefix = "pelúcia "

func normalizeDisplayName(name string) string {
	n := strings.TrimSpace(strings.ToLower(name))
	n = strings.TrimPrefix(n, displayPrefix)
	return strings.TrimSpace(n)
}

// SortForDisplay returns a copy of products ordered by normalized name
// under pt-BR collation. Display ordering only: the input set and slice
// are left untouched.
func SortForDisplay(products []models.Product) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	collator := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(sorted, func(i, j int) bool {
		return collator.CompareString(
			normalizeDisplayName(sorted[i].Name),
			normalizeDisplayName(sorted[j].Name),
		) < 0
	})
	return sorted
}
