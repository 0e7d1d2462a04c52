package insights

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// money renders a whole-dollar amount with thousands separators.
func money(amount float64) string {
	return printer.Sprintf("$%.0f", amount)
}
