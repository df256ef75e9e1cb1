package reports

import (
	"errors"
	"time"

	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/pricing"
)

// Period - окно отчёта за период
type Period string

const (
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
)

// Periods в порядке отображения в меню
var Periods = []Period{PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth}

var ErrUnknownPeriod = errors.New("unknown period")

var periodLabels = map[Period]string{
	PeriodToday:     "Сегодня",
	PeriodYesterday: "Вчера",
	PeriodWeek:      "Неделя",
	PeriodMonth:     "Месяц",
}

func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := periodLabels[p]; !ok {
		return "", ErrUnknownPeriod
	}
	return p, nil
}

// Label - подпись периода для меню и заголовков
func (p Period) Label() string {
	return periodLabels[p]
}

// Window возвращает границы периода [start, end] относительно now в часовом поясе loc
func (p Period) Window(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch p {
	case PeriodYesterday:
		return midnight.AddDate(0, 0, -1), midnight
	case PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodMonth:
		return now.AddDate(0, 0, -30), now
	default:
		return midnight, now
	}
}

// PeriodReport - сводка по заказам, созданным в окне периода
type PeriodReport struct {
	Period   Period
	Start    time.Time
	End      time.Time
	Orders   []models.Order
	Quantity int
	// Revenue и Profit считаются только по одобренным заказам
	Revenue         int64
	Profit          int64
	Products        []ProductStats
	UnknownProducts int
}

// Last возвращает не более n последних заказов периода в порядке бэкенда
func (r PeriodReport) Last(n int) []models.Order {
	if len(r.Orders) <= n {
		return r.Orders
	}
	return r.Orders[len(r.Orders)-n:]
}

// FilterByWindow оставляет заказы, созданные в [start, end]. Заказы с неразборчивым временем отбрасываются.
func FilterByWindow(orders []models.Order, start, end time.Time) []models.Order {
	var out []models.Order
	for _, order := range orders {
		created, err := models.ParseCreatedAt(order.CreatedAt)
		if err != nil {
			continue
		}
		if created.Before(start) || created.After(end) {
			continue
		}
		out = append(out, order)
	}
	return out
}

// ComputePeriod строит сводку за период
func ComputePeriod(orders []models.Order, period Period, now time.Time, loc *time.Location) PeriodReport {
	start, end := period.Window(now, loc)
	report := PeriodReport{
		Period: period,
		Start:  start,
		End:    end,
		Orders: FilterByWindow(orders, start, end),
	}
	for _, order := range report.Orders {
		report.Quantity += order.Quantity
		if order.Status != models.StatusApproved {
			continue
		}
		quote := pricing.QuoteOrder(order.Product, order.Quantity)
		report.Revenue += quote.Price
		report.Profit += quote.Profit
		if !pricing.Known(order.Product) {
			report.UnknownProducts++
		}
	}
	report.Products = productStats(report.Orders)
	return report
}
