package services

import (
	"context"
	"fmt"
	"time"

	"github.com/denmor86/ya-orderbot/internal/client"
	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/reports"
)

const PageSize = 5

// OrdersPage - страница списка заказов одного статуса
type OrdersPage struct {
	Status     models.Status
	Page       int
	TotalPages int
	Orders     []models.Order
}

func (p OrdersPage) HasPrev() bool {
	return p.Page > 1
}

func (p OrdersPage) HasNext() bool {
	return p.Page < p.TotalPages
}

// Export - файл выгрузки
type Export struct {
	Filename string
	Data     []byte
}

// Console - запросы администратора только на чтение: списки, поиск, отчёты и выгрузки
type Console struct {
	Backend  client.OrdersBackend
	Location *time.Location
	now      func() time.Time
}

func NewConsole(backend client.OrdersBackend, loc *time.Location) *Console {
	if loc == nil {
		loc = time.UTC
	}
	return &Console{Backend: backend, Location: loc, now: time.Now}
}

func (c *Console) allOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := c.Backend.ListOrders(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (c *Console) Statistics(ctx context.Context) (reports.Statistics, error) {
	orders, err := c.allOrders(ctx)
	if err != nil {
		return reports.Statistics{}, err
	}
	return reports.ComputeStatistics(orders), nil
}

func (c *Console) Finance(ctx context.Context) (reports.Finance, error) {
	orders, err := c.allOrders(ctx)
	if err != nil {
		return reports.Finance{}, err
	}
	return reports.ComputeFinance(orders, c.Location), nil
}

func (c *Console) Products(ctx context.Context) ([]reports.ProductStats, error) {
	orders, err := c.allOrders(ctx)
	if err != nil {
		return nil, err
	}
	return reports.ComputeProducts(orders), nil
}

func (c *Console) Period(ctx context.Context, period reports.Period) (reports.PeriodReport, error) {
	orders, err := c.allOrders(ctx)
	if err != nil {
		return reports.PeriodReport{}, err
	}
	return reports.ComputePeriod(orders, period, c.now(), c.Location), nil
}

// Page возвращает страницу заказов статуса; номер страницы приводится к допустимому диапазону
func (c *Console) Page(ctx context.Context, status models.Status, page int) (OrdersPage, error) {
	orders, err := c.Backend.ListOrders(ctx, &status)
	if err != nil {
		return OrdersPage{}, fmt.Errorf("failed to list %s orders: %w", status, err)
	}
	return Paginate(orders, status, page), nil
}

// Paginate режет список на страницы по PageSize
func Paginate(orders []models.Order, status models.Status, page int) OrdersPage {
	total := (len(orders) + PageSize - 1) / PageSize
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	result := OrdersPage{Status: status, Page: page, TotalPages: total}
	if total == 0 {
		return result
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(orders))
	result.Orders = orders[start:end]
	return result
}

// Search ищет заказ по идентификатору
func (c *Console) Search(ctx context.Context, id models.OrderID) (*models.Order, error) {
	order, err := c.Backend.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}

// ExportAll - выгрузка всех заказов в Excel
func (c *Console) ExportAll(ctx context.Context) (Export, error) {
	orders, err := c.allOrders(ctx)
	if err != nil {
		return Export{}, err
	}
	return c.export("statistics", orders)
}

// ExportPeriod - выгрузка заказов, созданных за период
func (c *Console) ExportPeriod(ctx context.Context, period reports.Period) (Export, error) {
	orders, err := c.allOrders(ctx)
	if err != nil {
		return Export{}, err
	}
	start, end := period.Window(c.now(), c.Location)
	return c.export("period_"+string(period), reports.FilterByWindow(orders, start, end))
}

func (c *Console) export(prefix string, orders []models.Order) (Export, error) {
	data, err := reports.BuildWorkbook(orders, c.Location)
	if err != nil {
		return Export{}, fmt.Errorf("failed to build workbook: %w", err)
	}
	return Export{Filename: reports.ExportFilename(prefix, c.now().In(c.Location)), Data: data}, nil
}
