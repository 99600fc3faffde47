package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"plush-store/models"
)

func TestNormalizeDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Pelúcia Stitch", "stitch"},
		{"PELÚCIA Angel 30cm", "angel 30cm"},
		{"Capivara Deitada", "capivara deitada"},
		{"  Pelúcia Urso  ", "urso"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeDisplayName(tt.name))
	}
}

func TestSortForDisplay_IgnoresMarketingPrefix(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Pelúcia Stitch"},
		{ID: "2", Name: "Capivara Deitada"},
		{ID: "3", Name: "Pelúcia Angel"},
	}

	sorted := SortForDisplay(products)

	assert.Equal(t, []string{"3", "2", "1"}, productIDs(sorted))
}

func TestSortForDisplay_DoesNotMutateInput(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Pelúcia Zebra"},
		{ID: "2", Name: "Pelúcia Angel"},
	}

	sorted := SortForDisplay(products)

	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, []string{"2", "1"}, productIDs(sorted))
	assert.ElementsMatch(t, products, sorted)
}

func TestSortForDisplay_AccentAwareOrdering(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Pelúcia Único"},
		{ID: "2", Name: "Pelúcia Urso"},
	}

	sorted := SortForDisplay(products)

	// pt-BR collation puts "único" right after "u", not after "z".
	assert.Equal(t, []string{"1", "2"}, productIDs(sorted))
}
