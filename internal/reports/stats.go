package reports

import (
	"sort"

	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/pricing"
)

// ProductQuantity - суммарное количество товара
type ProductQuantity struct {
	Product  string
	Quantity int
}

// CustomerOrders - количество заказов клиента, клиент определяется телефоном
type CustomerOrders struct {
	Phone  string
	Orders int
}

// Statistics - общая статистика по всем заказам
type Statistics struct {
	Total         int
	Pending       int
	Approved      int
	Rejected      int
	TotalQuantity int
	// Products отсортированы по убыванию количества
	Products []ProductQuantity
	// Customers отсортированы по убыванию числа заказов
	Customers       []CustomerOrders
	UnknownProducts int
}

// ComputeStatistics считает статистику по заказам любых статусов
func ComputeStatistics(orders []models.Order) Statistics {
	stats := Statistics{Total: len(orders)}

	products := make(map[string]int)
	var productOrder []string
	customers := make(map[string]int)
	var customerOrder []string

	for _, order := range orders {
		switch order.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}
		stats.TotalQuantity += order.Quantity

		if _, ok := products[order.Product]; !ok {
			productOrder = append(productOrder, order.Product)
		}
		products[order.Product] += order.Quantity

		if _, ok := customers[order.Phone]; !ok {
			customerOrder = append(customerOrder, order.Phone)
		}
		customers[order.Phone]++

		if !pricing.Known(order.Product) {
			stats.UnknownProducts++
		}
	}

	for _, name := range productOrder {
		stats.Products = append(stats.Products, ProductQuantity{Product: name, Quantity: products[name]})
	}
	sort.SliceStable(stats.Products, func(i, j int) bool {
		return stats.Products[i].Quantity > stats.Products[j].Quantity
	})

	for _, phone := range customerOrder {
		stats.Customers = append(stats.Customers, CustomerOrders{Phone: phone, Orders: customers[phone]})
	}
	sort.SliceStable(stats.Customers, func(i, j int) bool {
		return stats.Customers[i].Orders > stats.Customers[j].Orders
	})

	return stats
}

// TopProducts возвращает не более n самых продаваемых товаров
func (s Statistics) TopProducts(n int) []ProductQuantity {
	if len(s.Products) <= n {
		return s.Products
	}
	return s.Products[:n]
}

// TopCustomers возвращает не более n самых частых клиентов
func (s Statistics) TopCustomers(n int) []CustomerOrders {
	if len(s.Customers) <= n {
		return s.Customers
	}
	return s.Customers[:n]
}

// FilterByStatus оставляет заказы с указанным статусом, сохраняя порядок бэкенда
func FilterByStatus(orders []models.Order, status models.Status) []models.Order {
	var out []models.Order
	for _, order := range orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}
