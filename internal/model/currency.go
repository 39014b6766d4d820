package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount with Indonesian digit grouping, e.g. "Rp 65.000".
func FormatRupiah(amount int64) string {
	return idPrinter.Sprintf("Rp %d", amount)
}
