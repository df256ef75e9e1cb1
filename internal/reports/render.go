package reports

import (
	"fmt"
	"strings"

	"github.com/denmor86/ya-orderbot/internal/pricing"
)

const (
	topProductsInStats = 5
	topCustomers       = 10
	financeDays        = 7
	periodLastOrders   = 5
)

func unknownWarning(b *strings.Builder, count int) {
	if count == 0 {
		return
	}
	fmt.Fprintf(b, "\n⚠️ Заказов с товаром не из прайса: %d (выручка по ним не учтена)\n", count)
}

func writeProductStats(b *strings.Builder, products []ProductStats, withAverage bool) {
	for _, p := range products {
		fmt.Fprintf(b, "📦 %s:\n", p.Product)
		fmt.Fprintf(b, "   • Количество: %d шт.\n", p.Quantity)
		fmt.Fprintf(b, "   • Выручка: %s\n", Money(p.Revenue))
		fmt.Fprintf(b, "   • Прибыль: %s\n", Money(p.Profit))
		if withAverage {
			fmt.Fprintf(b, "   • Средняя цена: %s\n", MoneyDecimal(p.AveragePrice()))
		}
		b.WriteString("\n")
	}
}

// RenderStatistics - текст общей статистики с топ-5 товаров
func RenderStatistics(s Statistics) string {
	var b strings.Builder
	b.WriteString("📊 Статистика заказов:\n\n")
	fmt.Fprintf(&b, "📦 Всего заказов: %d\n", s.Total)
	fmt.Fprintf(&b, "✅ Одобрено: %d\n", s.Approved)
	fmt.Fprintf(&b, "❌ Отклонено: %d\n", s.Rejected)
	fmt.Fprintf(&b, "⏳ Ожидает: %d\n", s.Pending)
	fmt.Fprintf(&b, "📦 Всего товаров: %d\n\n", s.TotalQuantity)
	b.WriteString("📈 Популярные товары:\n")
	for _, p := range s.TopProducts(topProductsInStats) {
		fmt.Fprintf(&b, "• %s: %d шт.\n", p.Product, p.Quantity)
	}
	unknownWarning(&b, s.UnknownProducts)
	return b.String()
}

// RenderCustomers - топ-10 клиентов по числу заказов
func RenderCustomers(s Statistics) string {
	var b strings.Builder
	b.WriteString("📱 Топ 10 частых клиентов:\n\n")
	for i, c := range s.TopCustomers(topCustomers) {
		fmt.Fprintf(&b, "%d. %s: %d заказов\n", i+1, c.Phone, c.Orders)
	}
	return b.String()
}

// RenderFinance - финансовая сводка с разбивкой по товарам и последним 7 дням
func RenderFinance(f Finance) string {
	var b strings.Builder
	b.WriteString("💰 Финансовая сводка:\n\n")
	fmt.Fprintf(&b, "📈 Общая выручка: %s\n", Money(f.Revenue))
	fmt.Fprintf(&b, "💵 Общая прибыль: %s\n", Money(f.Profit))
	fmt.Fprintf(&b, "📊 Средняя дневная выручка: %s\n", MoneyDecimal(f.AvgDailyRevenue))
	fmt.Fprintf(&b, "📊 Средняя дневная прибыль: %s\n\n", MoneyDecimal(f.AvgDailyProfit))
	b.WriteString("📈 Статистика по товарам:\n")
	writeProductStats(&b, f.Products, false)
	b.WriteString("📅 Последние 7 дней:\n")
	for _, day := range f.LastDays(financeDays) {
		fmt.Fprintf(&b, "📅 %s: 💰 %s | 💵 %s\n", day.Day, Money(day.Revenue), Money(day.Profit))
	}
	unknownWarning(&b, f.UnknownProducts)
	return b.String()
}

// RenderProducts - одобренные продажи по товарам со средней ценой
func RenderProducts(products []ProductStats) string {
	var b strings.Builder
	b.WriteString("📈 Топ товаров:\n\n")
	writeProductStats(&b, products, true)
	unknown := 0
	for _, p := range products {
		if !pricing.Known(p.Product) {
			unknown++
		}
	}
	if unknown > 0 {
		fmt.Fprintf(&b, "⚠️ Товаров не из прайса: %d (выручка по ним не учтена)\n", unknown)
	}
	return b.String()
}

// RenderPeriod - сводка за период с последними 5 заказами
func RenderPeriod(r PeriodReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Статистика за период: %s\n\n", strings.ToLower(r.Period.Label()))
	fmt.Fprintf(&b, "📦 Всего заказов: %d\n", len(r.Orders))
	fmt.Fprintf(&b, "📦 Всего товаров: %d\n", r.Quantity)
	fmt.Fprintf(&b, "💰 Выручка: %s\n", Money(r.Revenue))
	fmt.Fprintf(&b, "💵 Прибыль: %s\n\n", Money(r.Profit))
	b.WriteString("📈 Статистика по товарам:\n")
	writeProductStats(&b, r.Products, false)
	b.WriteString("📋 Последние заказы:\n")
	for _, order := range r.Last(periodLastOrders) {
		quote := pricing.QuoteOrder(order.Product, order.Quantity)
		fmt.Fprintf(&b, "🆔 %s | 📦 %s x%d | 💰 %s | 📝 %s\n",
			order.ID, order.Product, order.Quantity, Money(quote.Price), order.Status)
	}
	unknownWarning(&b, r.UnknownProducts)
	return b.String()
}
