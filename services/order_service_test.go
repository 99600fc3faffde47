package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plush-store/models"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "R$ 0,00"},
		{89.90, "R$ 89,90"},
		{131.8, "R$ 131,80"},
		{221.70, "R$ 221,70"},
		{1234.56, "R$ 1.234,56"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBRL(tt.value))
	}
}

func TestBuildOrderMessage_StitchAngelScenario(t *testing.T) {
	items := models.CartSnapshot{
		{Product: models.Product{ID: "a", Name: "Pelúcia Stitch", Price: 89.90}, Quantity: 1},
		{Product: models.Product{ID: "b", Name: "Pelúcia Angel", Price: 65.90}, Quantity: 2},
	}

	message := BuildOrderMessage(items)

	assert.True(t, strings.HasPrefix(message, "Olá! Gostaria de fazer um pedido:\n\n"))
	assert.Contains(t, message, "1x Pelúcia Stitch - R$ 89,90")
	assert.Contains(t, message, "2x Pelúcia Angel - R$ 131,80")
	assert.True(t, strings.HasSuffix(message, "Total: R$ 221,70"))

	// Lines come out in snapshot order.
	stitchIdx := strings.Index(message, "Pelúcia Stitch")
	angelIdx := strings.Index(message, "Pelúcia Angel")
	assert.Less(t, stitchIdx, angelIdx)
}

func TestBuildOrderMessage_EmptyCart(t *testing.T) {
	message := BuildOrderMessage(models.CartSnapshot{})

	assert.True(t, strings.HasSuffix(message, "Total: R$ 0,00"))
}

func TestBuildOrderMessage_DoesNotMutateSnapshot(t *testing.T) {
	items := models.CartSnapshot{
		{Product: models.Product{ID: "a", Name: "Pelúcia Stitch", Price: 89.90}, Quantity: 3},
	}

	BuildOrderMessage(items)

	assert.Equal(t, 3, items[0].Quantity)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("5586994173176", "Olá! Pedido: 1x Pelúcia Stitch")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5586994173176?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Olá! Pedido: 1x Pelúcia Stitch", parsed.Query().Get("text"))
}
