package services

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"plush-store/models"
)

const orderGreeting = "Olá! Gostaria de fazer um pedido:"

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a price the way the store displays it: R$ symbol,
// comma decimals and dot grouping ("R$ 1.234,56").
func FormatBRL(value float64) string {
	return brl.Sprintf("R$ %.2f", value)
}

// BuildOrderMessage turns a cart snapshot into the order text sent over
// WhatsApp: a greeting, one line per item with its subtotal in snapshot
// order, and the cart total. It does not mutate the cart.
func BuildOrderMessage(items models.CartSnapshot) string {
	var b strings.Builder
	b.WriteString(orderGreeting)
	b.WriteString("\n\n")

	var total float64
	for _, item := range items {
		subtotal := item.Product.Price * float64(item.Quantity)
		total += subtotal
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.Product.Name, FormatBRL(subtotal))
	}

	b.WriteString("\n")
	b.WriteString("Total: " + FormatBRL(total))

	return b.String()
}

// WhatsAppLink builds the deep link that opens a chat with the store
// pre-filled with the order message. Opening it is the client's job.
func WhatsAppLink(phoneNumber, orderMessage string) string {
	query := url.Values{"text": {orderMessage}}
	return "https://wa.me/" + phoneNumber + "?" + query.Encode()
}
