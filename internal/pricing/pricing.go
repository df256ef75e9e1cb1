// Package pricing считает выручку и прибыль заказа по статическому прайсу.
package pricing

// Product - позиция прайса
type Product struct {
	Name  string
	Label string
	Price int64
	Cost  int64
}

// Margin - прибыль с единицы товара
func (p Product) Margin() int64 {
	return p.Price - p.Cost
}

// Quote - выручка и прибыль заказа
type Quote struct {
	Price  int64
	Profit int64
}

var catalog = []Product{
	{Name: "Katta gulqand", Label: "Большой Гулканд", Price: 50000, Cost: 25000},
	{Name: "Ortacha gulqand", Label: "Средний Гулканд", Price: 40000, Cost: 20000},
}

func lookup(name string) (Product, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// QuoteOrder возвращает выручку и прибыль для количества товара.
// Для неизвестного товара возвращается нулевая оценка, а не ошибка.
func QuoteOrder(product string, quantity int) Quote {
	p, _ := lookup(product)
	price := p.Price * int64(quantity)
	cost := p.Cost * int64(quantity)
	return Quote{Price: price, Profit: price - cost}
}

// Known сообщает, есть ли товар в прайсе
func Known(product string) bool {
	_, ok := lookup(product)
	return ok
}

// Catalog возвращает копию прайса
func Catalog() []Product {
	out := make([]Product, len(catalog))
	copy(out, catalog)
	return out
}
