package reports

import (
	"sort"
	"time"

	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/pricing"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// ProductStats - продажи товара по одобренным заказам
type ProductStats struct {
	Product  string
	Quantity int
	Revenue  int64
	Profit   int64
}

// AveragePrice - средняя выручка за единицу товара
func (p ProductStats) AveragePrice() decimal.Decimal {
	return Average(p.Revenue, p.Quantity)
}

// DayStats - выручка и прибыль за календарный день
type DayStats struct {
	Day     string
	Revenue int64
	Profit  int64
}

// Finance - финансовая сводка по одобренным заказам
type Finance struct {
	Revenue         int64
	Profit          int64
	AvgDailyRevenue decimal.Decimal
	AvgDailyProfit  decimal.Decimal
	// Products в порядке первого появления товара
	Products []ProductStats
	// Days отсортированы от последнего дня к первому
	Days            []DayStats
	UnknownProducts int
}

// LastDays возвращает не более n последних дней с продажами
func (f Finance) LastDays(n int) []DayStats {
	if len(f.Days) <= n {
		return f.Days
	}
	return f.Days[:n]
}

// ComputeFinance считает выручку и прибыль только по одобренным заказам.
// Дни определяются по времени создания в часовом поясе loc; заказы с неразборчивым временем
// учитываются в итогах, но не в разбивке по дням.
func ComputeFinance(orders []models.Order, loc *time.Location) Finance {
	if loc == nil {
		loc = time.UTC
	}
	var finance Finance
	days := make(map[string]*DayStats)

	for _, order := range FilterByStatus(orders, models.StatusApproved) {
		quote := pricing.QuoteOrder(order.Product, order.Quantity)
		finance.Revenue += quote.Price
		finance.Profit += quote.Profit
		if !pricing.Known(order.Product) {
			finance.UnknownProducts++
		}

		if created, err := models.ParseCreatedAt(order.CreatedAt); err == nil {
			key := created.In(loc).Format(dayLayout)
			day, ok := days[key]
			if !ok {
				day = &DayStats{Day: key}
				days[key] = day
			}
			day.Revenue += quote.Price
			day.Profit += quote.Profit
		}
	}

	finance.Products = productStats(orders)
	for _, day := range days {
		finance.Days = append(finance.Days, *day)
	}
	sort.Slice(finance.Days, func(i, j int) bool {
		return finance.Days[i].Day > finance.Days[j].Day
	})

	finance.AvgDailyRevenue = Average(finance.Revenue, len(finance.Days))
	finance.AvgDailyProfit = Average(finance.Profit, len(finance.Days))
	return finance
}

// ComputeProducts возвращает статистику одобренных продаж, отсортированную по количеству
func ComputeProducts(orders []models.Order) []ProductStats {
	products := productStats(orders)
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Quantity > products[j].Quantity
	})
	return products
}

func productStats(orders []models.Order) []ProductStats {
	index := make(map[string]int)
	var out []ProductStats
	for _, order := range FilterByStatus(orders, models.StatusApproved) {
		quote := pricing.QuoteOrder(order.Product, order.Quantity)
		i, ok := index[order.Product]
		if !ok {
			i = len(out)
			index[order.Product] = i
			out = append(out, ProductStats{Product: order.Product})
		}
		out[i].Quantity += order.Quantity
		out[i].Revenue += quote.Price
		out[i].Profit += quote.Profit
	}
	return out
}
