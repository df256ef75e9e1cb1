package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status - статус заказа на стороне бэкенда
type Status string

// Статусы заказов
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses - все известные статусы в порядке отображения
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

// ParseStatus проверяет, что строка является известным статусом
func ParseStatus(s string) (Status, bool) {
	for _, status := range Statuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

var ErrOrderIDRequired = errors.New("order id is required")

// OrderID - непрозрачный идентификатор заказа. Бэкенд может отдавать его строкой или числом.
type OrderID string

func (id *OrderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OrderID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("order id must be string or number: %w", err)
	}
	*id = OrderID(n.String())
	return nil
}

func (id OrderID) String() string {
	return string(id)
}

// Order - модель заказа покупателя, как её отдаёт бэкенд
type Order struct {
	ID        OrderID `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Status    Status  `json:"status"`
	CreatedAt string  `json:"created_at"`
	Receipt   string  `json:"receipt"`
}

// Validate проверяет поля, без которых заказ нельзя обработать
func (o Order) Validate() error {
	if o.ID == "" {
		return ErrOrderIDRequired
	}
	return nil
}

// StatusUpdate - тело PATCH запроса смены статуса
type StatusUpdate struct {
	Status Status `json:"status"`
}

const DisplayTimeLayout = "02.01.2006 15:04:05"

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseCreatedAt разбирает ISO-8601 время создания заказа, в том числе с суффиксом Z
func ParseCreatedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}

// FormatTimestamp возвращает время в виде 02.01.2006 15:04:05 или исходную строку, если её не разобрать
func FormatTimestamp(value string) string {
	t, err := ParseCreatedAt(value)
	if err != nil {
		return value
	}
	return t.Format(DisplayTimeLayout)
}
