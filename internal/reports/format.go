// Package reports строит сводки по заказам: статистику, финансы, товары, периоды и выгрузку в Excel.
package reports

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currency = "сум"

var printer = message.NewPrinter(language.English)

// Money форматирует сумму с разделителем тысяч: 100000 -> "100,000 сум"
func Money(amount int64) string {
	return printer.Sprintf("%d %s", amount, currency)
}

// MoneyDecimal округляет дробную сумму до целого и форматирует её как Money
func MoneyDecimal(amount decimal.Decimal) string {
	return Money(amount.Round(0).IntPart())
}

// Average делит сумму на количество, для нулевого делителя возвращает ноль
func Average(total int64, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(count)))
}
