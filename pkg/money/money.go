// Package money formatea valores monetarios en reais con la convención pt-BR.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format devuelve "R$ 1.500,50"; los negativos llevan el signo delante: "-R$ 20,00".
func Format(d decimal.Decimal) string {
	v := d.Round(2)
	if v.IsNegative() {
		return "-" + Format(v.Neg())
	}
	return "R$ " + printer.Sprintf("%.2f", v.InexactFloat64())
}
